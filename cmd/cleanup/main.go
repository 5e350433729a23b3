package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/DavidGamba/go-getoptions"
	"go.uber.org/zap"

	"tigerlife/internal/database"
	"tigerlife/internal/pkg/logger"
	"tigerlife/internal/repository"
)

type options struct {
	DSN          string
	Days         int
	SkipSessions bool
}

func parseCommandLine() *options {
	o := &options{}
	opt := getoptions.New()

	opt.Bool("help", false, opt.Alias("h", "?"))
	opt.StringVar(&o.DSN, "db", os.Getenv("DATABASE_URL"),
		opt.Description("postgres:// DSN or sqlite file (defaults to DATABASE_URL)"))
	opt.IntVar(&o.Days, "days", 30,
		opt.Alias("d"),
		opt.Description("delete read notifications older than this many days"))
	opt.BoolVar(&o.SkipSessions, "skip-sessions", false,
		opt.Description("keep expired sessions"))

	_, err := opt.Parse(os.Args[1:])
	if opt.Called("help") {
		fmt.Fprint(os.Stderr, opt.Help())
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n\n", err)
		fmt.Fprint(os.Stderr, opt.Help(getoptions.HelpSynopsis))
		os.Exit(1)
	}
	return o
}

func main() {
	o := parseCommandLine()
	if o.DSN == "" {
		log.Fatal("DATABASE_URL or --db is required")
	}
	if o.Days < 1 {
		log.Fatal("--days must be at least 1")
	}

	zl, err := logger.New(os.Getenv("APP_ENV"))
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zl.Sync() }()

	db, err := database.Connect(o.DSN, zl)
	if err != nil {
		zl.Fatal("db connect failed", zap.Error(err))
	}

	ctx := context.Background()
	now := time.Now().UTC()

	cutoff := now.AddDate(0, 0, -o.Days)
	notifications, err := repository.NewNotificationRepository(db).DeleteReadOlderThan(ctx, cutoff)
	if err != nil {
		zl.Fatal("cleanup notifications failed", zap.Error(err))
	}

	var sessions int64
	if !o.SkipSessions {
		sessions, err = repository.NewSessionRepository(db).DeleteExpired(ctx, now)
		if err != nil {
			zl.Fatal("cleanup sessions failed", zap.Error(err))
		}
	}

	zl.Info("cleanup completed",
		zap.Int64("notifications", notifications),
		zap.Int64("sessions", sessions),
		zap.Time("cutoff", cutoff),
	)
}

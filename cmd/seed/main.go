package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/DavidGamba/go-getoptions"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"tigerlife/internal/database"
	"tigerlife/internal/domain"
	"tigerlife/internal/pkg/logger"
	"tigerlife/internal/repository"
)

type options struct {
	DSN      string
	Password string
	Reset    bool
	Verbose  bool
}

func parseCommandLine() *options {
	o := &options{}
	opt := getoptions.New()

	opt.Bool("help", false, opt.Alias("h", "?"))
	opt.StringVar(&o.DSN, "db", envOr("DATABASE_URL", "tigerlife.db"),
		opt.Description("postgres:// DSN or sqlite file to seed"))
	opt.StringVar(&o.Password, "password", "tiger1234",
		opt.Alias("p"),
		opt.Description("password given to every seeded account"))
	opt.BoolVar(&o.Reset, "reset", false,
		opt.Description("delete existing rows before seeding"))
	opt.BoolVar(&o.Verbose, "verbose", false, opt.Alias("v"))

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

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

type student struct {
	First, Last, Email, GNumber string
	Admin                       bool
}

var students = []student{
	{"Tess", "Admin", "admin@tigerlife.edu", "G00000001", true},
	{"Ada", "Lovelace", "ada@tigerlife.edu", "G00000002", false},
	{"Grace", "Hopper", "grace@tigerlife.edu", "G00000003", false},
	{"Alan", "Turing", "alan@tigerlife.edu", "G00000004", false},
}

func main() {
	o := parseCommandLine()

	env := "production"
	if o.Verbose {
		env = "dev"
	}
	zl, err := logger.New(env)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zl.Sync() }()

	db, err := database.Connect(o.DSN, zl)
	if err != nil {
		zl.Fatal("db connect failed", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		zl.Fatal("migrate failed", zap.Error(err))
	}

	if o.Reset {
		if err := reset(db); err != nil {
			zl.Fatal("reset failed", zap.Error(err))
		}
		zl.Info("existing rows deleted")
	}

	if err := seed(context.Background(), db, o.Password, zl); err != nil {
		zl.Fatal("seed failed", zap.Error(err))
	}
	zl.Info("seed completed", zap.Int("users", len(students)), zap.String("password", o.Password))
}

func reset(db *gorm.DB) error {
	// Children first.
	tables := []string{
		"bookings", "services_table", "marketplace_items", "events",
		`"Messages"`, `"Notifications"`, "organization_members", "organizations",
		"verified_ids", "sessions", "user_table", "auth_accounts",
	}
	for _, t := range tables {
		if err := db.Exec("DELETE FROM " + t).Error; err != nil {
			return fmt.Errorf("clear %s: %w", t, err)
		}
	}
	return nil
}

func seed(ctx context.Context, db *gorm.DB, password string, zl *zap.Logger) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	accounts := repository.NewAccountRepository(db)
	users := repository.NewUserRepository(db)
	orgs := repository.NewOrganizationRepository(db)
	members := repository.NewMembershipRepository(db)
	events := repository.NewEventRepository(db)
	items := repository.NewMarketplaceRepository(db)
	offerings := repository.NewServiceRepository(db)

	ids := make([]int64, 0, len(students))
	for _, s := range students {
		res, err := accounts.Create(ctx, &domain.AuthAccount{Email: s.Email, PasswordHash: string(hash)})
		if err != nil {
			return fmt.Errorf("account %s: %w", s.Email, err)
		}
		_, err = users.Create(ctx, &domain.User{
			ID:        res.ID,
			FirstName: s.First,
			LastName:  s.Last,
			Email:     s.Email,
			GNumber:   s.GNumber,
			Verified:  true,
			IsAdmin:   s.Admin,
		})
		if err != nil {
			return fmt.Errorf("user %s: %w", s.Email, err)
		}
		ids = append(ids, res.ID)
		zl.Debug("user created", zap.String("email", s.Email), zap.Int64("user_id", res.ID))
	}

	club := &domain.Organization{
		Name:        "Computing Society",
		Type:        domain.OrgOfficialStudent,
		Description: "Talks, hack nights and study groups.",
		Verified:    true,
		CreatedBy:   ids[1],
	}
	if _, err := orgs.Create(ctx, club); err != nil {
		return fmt.Errorf("organization: %w", err)
	}
	pending := &domain.Organization{
		Name:      "Chess Club",
		Type:      domain.OrgGeneral,
		CreatedBy: ids[2],
	}
	if _, err := orgs.Create(ctx, pending); err != nil {
		return fmt.Errorf("organization: %w", err)
	}

	seats := []domain.OrganizationMember{
		{UserID: ids[1], OrganizationID: club.ID, Role: domain.RoleAdmin, Verified: true},
		{UserID: ids[3], OrganizationID: club.ID, Role: domain.RoleMember},
		{UserID: ids[2], OrganizationID: pending.ID, Role: domain.RoleAdmin, Verified: true},
	}
	for i := range seats {
		if _, err := members.Create(ctx, &seats[i]); err != nil {
			return fmt.Errorf("membership: %w", err)
		}
	}

	_, err = events.Create(ctx, &domain.Event{
		Title:          "Intro to Go night",
		Description:    "Bring a laptop.",
		Date:           time.Now().Add(7 * 24 * time.Hour).UTC().Truncate(time.Hour),
		Location:       "Library 204",
		OrganizationID: club.ID,
		CreatorID:      ids[1],
	})
	if err != nil {
		return fmt.Errorf("event: %w", err)
	}

	_, err = items.Create(ctx, &domain.MarketplaceItem{
		SellerID:    ids[2],
		Title:       "Calculus textbook",
		Description: "8th edition, light highlighting.",
		Price:       35,
		Category:    "books",
		Condition:   "good",
		Images:      []string{},
	})
	if err != nil {
		return fmt.Errorf("listing: %w", err)
	}

	_, err = offerings.Create(ctx, &domain.Service{
		ProviderID:  ids[3],
		Title:       "Algorithms tutoring",
		Description: "One hour sessions before exams.",
		Price:       20,
		Category:    "tutoring",
		Images:      []string{},
	})
	if err != nil {
		return fmt.Errorf("service: %w", err)
	}
	return nil
}

// Package app wires repositories, services and handlers into the HTTP API.
package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"tigerlife/internal/config"
	"tigerlife/internal/gateway"
	"tigerlife/internal/middleware"
	"tigerlife/internal/modules/auth"
	"tigerlife/internal/modules/checkout"
	"tigerlife/internal/modules/event"
	"tigerlife/internal/modules/marketplace"
	"tigerlife/internal/modules/messaging"
	"tigerlife/internal/modules/notification"
	"tigerlife/internal/modules/organization"
	"tigerlife/internal/modules/services"
	"tigerlife/internal/modules/user"
	"tigerlife/internal/pkg/jwt"
	"tigerlife/internal/pkg/logger"
	"tigerlife/internal/realtime"
	"tigerlife/internal/repository"
	"tigerlife/internal/storage"
)

// Deps are the external collaborators of the API. Publisher is optional.
type Deps struct {
	DB        *gorm.DB
	Store     gateway.ObjectStore
	Functions gateway.FunctionInvoker
	Publisher notification.Publisher
}

// App holds the router and the long-lived pieces main has to shut down.
type App struct {
	Router *gin.Engine
	Hub    *realtime.Hub
}

func New(cfg *config.Config, deps Deps, log *zap.Logger) *App {
	log = logger.OrNop(log)
	db := deps.DB

	users := repository.NewUserRepository(db)
	accounts := repository.NewAccountRepository(db)
	sessions := repository.NewSessionRepository(db)
	verifiedIDs := repository.NewVerifiedIDRepository(db)
	orgs := repository.NewOrganizationRepository(db)
	members := repository.NewMembershipRepository(db)
	events := repository.NewEventRepository(db)
	items := repository.NewMarketplaceRepository(db)
	offerings := repository.NewServiceRepository(db)
	messages := repository.NewMessageRepository(db)
	notifications := repository.NewNotificationRepository(db)

	tokens := jwt.New(cfg.JWTSecret, cfg.JWTTTL)
	uploader := storage.NewUploader(deps.Store, log.Named("storage"))
	hub := realtime.NewHub(log.Named("realtime"))

	notifySvc := notification.NewService(notifications, log.Named("notification"), hub)
	if deps.Publisher != nil {
		notifySvc.AddSink(notification.NewMQSink(deps.Publisher))
	}

	authSvc := auth.NewService(accounts, users, sessions, tokens, log.Named("auth"))
	userSvc := user.NewService(users, accounts, verifiedIDs, uploader, deps.Functions, log.Named("user"))
	orgSvc := organization.NewService(orgs, members, users, notifySvc, log.Named("organization"))
	eventSvc := event.NewService(events, orgSvc, uploader, notifySvc, log.Named("event"))
	marketSvc := marketplace.NewService(items, uploader, notifySvc, log.Named("marketplace"))
	serviceSvc := services.NewService(offerings, uploader, notifySvc, log.Named("services"))
	messageSvc := messaging.NewService(messages, users, notifySvc, log.Named("messaging"))
	checkoutSvc := checkout.NewService(items, deps.Functions, notifySvc, log.Named("checkout"))

	poller := realtime.NewPoller(notifySvc, messageSvc, realtime.Intervals{
		UnreadCount:   cfg.Polling.UnreadCount,
		Messages:      cfg.Polling.Messages,
		Conversations: cfg.Polling.Conversations,
		Notifications: cfg.Polling.Notifications,
	}, log.Named("poller"))

	authHandler := auth.NewHandler(authSvc)
	userHandler := user.NewHandler(userSvc)
	orgHandler := organization.NewHandler(orgSvc)
	eventHandler := event.NewHandler(eventSvc)
	marketHandler := marketplace.NewHandler(marketSvc)
	serviceHandler := services.NewHandler(serviceSvc)
	messageHandler := messaging.NewHandler(messageSvc)
	checkoutHandler := checkout.NewHandler(checkoutSvc)
	notifyHandler := notification.NewHandler(notifySvc)
	wsHandler := realtime.NewHandler(hub, poller, cfg.CORSAllowedOrigins, log.Named("ws"))

	r := gin.New()
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestLogger(log.Named("http")))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if cfg.Storage.Driver == config.StorageDisk && strings.HasPrefix(cfg.Storage.PublicURL, "/") {
		r.Static(cfg.Storage.PublicURL, cfg.Storage.Dir)
	}

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)
		orgHandler.RegisterPublicRoutes(v1)
		eventHandler.RegisterPublicRoutes(v1)
		marketHandler.RegisterPublicRoutes(v1)
		serviceHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("")
		protected.Use(middleware.JWTAuth(tokens, sessions))
		{
			authHandler.RegisterProtectedRoutes(protected)
			userHandler.RegisterProtectedRoutes(protected)
			orgHandler.RegisterProtectedRoutes(protected)
			eventHandler.RegisterProtectedRoutes(protected)
			marketHandler.RegisterProtectedRoutes(protected)
			serviceHandler.RegisterProtectedRoutes(protected)
			messageHandler.RegisterRoutes(protected)
			checkoutHandler.RegisterRoutes(protected)
			notifyHandler.RegisterRoutes(protected)
			wsHandler.RegisterProtectedRoutes(protected)
		}
	}

	return &App{Router: r, Hub: hub}
}

// NewObjectStore builds the configured storage backend.
func NewObjectStore(ctx context.Context, cfg config.StorageConfig) (gateway.ObjectStore, error) {
	switch cfg.Driver {
	case config.StorageDisk:
		return storage.NewDiskStore(cfg.Dir, cfg.PublicURL), nil
	case config.StorageS3:
		store, err := storage.NewS3Store(ctx, storage.S3Options{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

package auth

import (
	"context"
	"time"

	"tigerlife/internal/domain"
	"tigerlife/internal/gateway"
)

type AccountRepository interface {
	Create(ctx context.Context, a *domain.AuthAccount) (gateway.InsertResult, error)
	GetByEmail(ctx context.Context, email string) (*domain.AuthAccount, error)
	Delete(ctx context.Context, id int64) error
}

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) (gateway.InsertResult, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ExistsByGNumber(ctx context.Context, gNumber string) (bool, error)
}

type SessionRepository interface {
	Create(ctx context.Context, s *domain.Session) error
	Delete(ctx context.Context, id string) error
}

type tokenIssuer interface {
	GenerateToken(userID int64, sessionID string, isAdmin bool) (string, error)
	TTL() time.Duration
}

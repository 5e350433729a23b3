package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"tigerlife/internal/database"
	"tigerlife/internal/domain"
	"tigerlife/internal/pkg/apperr"
	"tigerlife/internal/pkg/logger"
	"tigerlife/internal/pkg/sanitize"
	"tigerlife/internal/pkg/validator"
)

// Service contains the signup and session logic.
type Service struct {
	accounts AccountRepository
	users    UserRepository
	sessions SessionRepository
	tokens   tokenIssuer
	log      *zap.Logger
	now      func() time.Time
}

func NewService(
	accounts AccountRepository,
	users UserRepository,
	sessions SessionRepository,
	tokens tokenIssuer,
	log *zap.Logger,
) *Service {
	return &Service{
		accounts: accounts,
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		log:      logger.OrNop(log),
		now:      time.Now,
	}
}

// Signup creates the credentials first and the profile second. If the
// profile insert fails the credentials are deleted again; a failure of
// that cleanup is only logged.
func (s *Service) Signup(ctx context.Context, req SignupRequest) (*domain.User, error) {
	req.FirstName = sanitize.Text(req.FirstName)
	req.LastName = sanitize.Text(req.LastName)
	req.GNumber = strings.ToUpper(strings.TrimSpace(req.GNumber))
	if err := validator.Check(req); err != nil {
		return nil, err
	}
	email, err := validator.NormalizeEmail(req.Email)
	if err != nil {
		return nil, ErrInvalidEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	account := &domain.AuthAccount{Email: email, PasswordHash: string(hash)}
	res, err := s.accounts.Create(ctx, account)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, apperr.Remote(err, "failed to create account")
	}

	user := &domain.User{
		ID:        res.ID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     email,
		GNumber:   req.GNumber,
	}
	if _, err := s.users.Create(ctx, user); err != nil {
		if delErr := s.accounts.Delete(ctx, res.ID); delErr != nil {
			s.log.Warn("compensating account delete failed",
				zap.Int64("user_id", res.ID),
				zap.Error(delErr),
			)
		}
		if database.IsUniqueViolation(err) {
			return nil, ErrUserAlreadyExists
		}
		return nil, apperr.Remote(err, "failed to create user profile")
	}
	return user, nil
}

// Login checks the password, opens a session and returns a token bound to it.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, apperr.Remote(err, "failed to load account")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByID(ctx, account.ID)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, apperr.Remote(err, "failed to load user")
	}

	expires := s.now().Add(s.tokens.TTL()).UTC()
	session := &domain.Session{ID: uuid.NewString(), UserID: user.ID, ExpiresAt: expires}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, apperr.Remote(err, "failed to create session")
	}

	token, err := s.tokens.GenerateToken(user.ID, session.ID, user.IsAdmin)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, ExpiresAt: expires, User: user}, nil
}

func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return apperr.Remote(err, "failed to end session")
	}
	return nil
}

// UserExists reports whether a profile with gNumber is registered.
func (s *Service) UserExists(ctx context.Context, gNumber string) (bool, error) {
	if !validator.IsGNumber(gNumber) {
		return false, ErrInvalidGNumber
	}
	ok, err := s.users.ExistsByGNumber(ctx, gNumber)
	if err != nil {
		return false, apperr.Remote(err, "failed to look up user")
	}
	return ok, nil
}

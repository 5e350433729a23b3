package user

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"

	"tigerlife/internal/database"
	"tigerlife/internal/domain"
	"tigerlife/internal/gateway"
	"tigerlife/internal/pkg/apperr"
	"tigerlife/internal/pkg/logger"
	"tigerlife/internal/pkg/sanitize"
	"tigerlife/internal/pkg/validator"
	"tigerlife/internal/storage"
)

const mfaSecretBytes = 20

var mfaEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

type Service struct {
	users     UserRepository
	accounts  AccountRepository
	verified  VerifiedIDRepository
	images    ImageStore
	functions gateway.FunctionInvoker
	log       *zap.Logger
}

func NewService(
	users UserRepository,
	accounts AccountRepository,
	verified VerifiedIDRepository,
	images ImageStore,
	functions gateway.FunctionInvoker,
	log *zap.Logger,
) *Service {
	return &Service{
		users:     users,
		accounts:  accounts,
		verified:  verified,
		images:    images,
		functions: functions,
		log:       logger.OrNop(log),
	}
}

// GetUsers returns the public directory of users.
func (s *Service) GetUsers(ctx context.Context) ([]domain.UserSummary, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperr.Remote(err, "failed to load users")
	}
	out := make([]domain.UserSummary, 0, len(users))
	for i := range users {
		out = append(out, users[i].Summary())
	}
	return out, nil
}

func (s *Service) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, apperr.Remote(err, "failed to load user")
	}
	return u, nil
}

// UpdateProfile applies the non-nil fields of req. A new avatar is stored
// first and removed again when the profile write fails.
func (s *Service) UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) (*domain.User, error) {
	if _, err := s.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	patch := map[string]any{}
	if req.FirstName != nil {
		v := sanitize.Text(*req.FirstName)
		req.FirstName = &v
		patch["first_name"] = v
	}
	if req.LastName != nil {
		v := sanitize.Text(*req.LastName)
		req.LastName = &v
		patch["last_name"] = v
	}
	if req.Bio != nil {
		v := sanitize.Text(*req.Bio)
		req.Bio = &v
		patch["bio"] = v
	}
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	var avatar *storage.Uploaded
	if req.Avatar != "" {
		up, err := s.images.Upload(ctx, gateway.BucketAvatars, userID, req.Avatar)
		if err != nil {
			return nil, uploadError(err, "failed to upload avatar")
		}
		avatar = up
		patch["avatar"] = up.URL
	}

	if len(patch) > 0 {
		if err := s.users.Update(ctx, userID, patch); err != nil {
			if avatar != nil {
				s.images.Discard(ctx, []storage.Uploaded{*avatar})
			}
			return nil, apperr.Remote(err, "failed to update profile")
		}
	}
	return s.GetUser(ctx, userID)
}

// UpdateEmail changes the login email and the profile email together. If
// the profile write fails the account email is put back.
func (s *Service) UpdateEmail(ctx context.Context, userID int64, email string) (*domain.User, error) {
	normalized, err := validator.NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	account, err := s.accounts.GetByID(ctx, userID)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, apperr.Remote(err, "failed to load account")
	}
	if account.Email == normalized {
		return s.GetUser(ctx, userID)
	}

	if err := s.accounts.Update(ctx, userID, map[string]any{"email": normalized}); err != nil {
		return nil, emailWriteError(err)
	}
	if err := s.users.Update(ctx, userID, map[string]any{"email": normalized}); err != nil {
		if revertErr := s.accounts.Update(ctx, userID, map[string]any{"email": account.Email}); revertErr != nil {
			s.log.Warn("failed to restore account email",
				zap.Int64("user_id", userID),
				zap.Error(revertErr),
			)
		}
		return nil, emailWriteError(err)
	}
	return s.GetUser(ctx, userID)
}

func (s *Service) UpdatePassword(ctx context.Context, userID int64, req UpdatePasswordRequest) error {
	if err := validator.Check(req); err != nil {
		return err
	}
	account, err := s.accounts.GetByID(ctx, userID)
	if err != nil {
		if database.IsNotFound(err) {
			return ErrUserNotFound
		}
		return apperr.Remote(err, "failed to load account")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return ErrWrongPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.accounts.Update(ctx, userID, map[string]any{"password_hash": string(hash)}); err != nil {
		return apperr.Remote(err, "failed to update password")
	}
	return nil
}

// UpdateSettings merges settings into the stored map. A nil value removes
// the key.
func (s *Service) UpdateSettings(ctx context.Context, userID int64, settings map[string]any) (datatypes.JSONMap, error) {
	if len(settings) == 0 {
		return nil, ErrEmptySettings
	}
	u, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	merged := datatypes.JSONMap{}
	for k, v := range u.Settings {
		merged[k] = v
	}
	for k, v := range settings {
		if v == nil {
			delete(merged, k)
			continue
		}
		merged[k] = v
	}

	if err := s.users.Update(ctx, userID, map[string]any{"settings": merged}); err != nil {
		return nil, apperr.Remote(err, "failed to update settings")
	}
	return merged, nil
}

// EnableMFA stores a fresh secret and returns it. The secret is not
// readable through the API afterwards.
func (s *Service) EnableMFA(ctx context.Context, userID int64) (*MFASetup, error) {
	buf := make([]byte, mfaSecretBytes)
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}
	secret := mfaEncoding.EncodeToString(buf)

	err := s.accounts.Update(ctx, userID, map[string]any{
		"mfa_enabled": true,
		"mfa_secret":  secret,
	})
	if err != nil {
		if database.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, apperr.Remote(err, "failed to enable MFA")
	}
	return &MFASetup{Secret: secret}, nil
}

// VerifyID stores the ID photo, asks the text extraction function to read
// it and marks the user verified when their G-number appears in the text.
// The photo is removed again on every failure after the upload.
func (s *Service) VerifyID(ctx context.Context, userID int64, imageDataURL string) (*VerifyIDResult, error) {
	if strings.TrimSpace(imageDataURL) == "" {
		return nil, ErrMissingImage
	}
	u, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.Verified {
		return nil, ErrAlreadyVerified
	}

	img, err := s.images.Upload(ctx, gateway.BucketIDs, userID, imageDataURL)
	if err != nil {
		return nil, uploadError(err, "failed to upload ID image")
	}
	discard := func() { s.images.Discard(ctx, []storage.Uploaded{*img}) }

	var extracted extractIDTextResult
	payload := extractIDTextPayload{Bucket: img.Bucket, Key: img.Key, ImageURL: img.URL}
	if err := s.functions.Invoke(ctx, gateway.FnExtractIDText, payload, &extracted); err != nil {
		discard()
		return nil, apperr.Remote(err, "failed to read ID image")
	}
	if !containsGNumber(extracted.Text, u.GNumber) {
		discard()
		return nil, ErrIDMismatch
	}

	_, err = s.verified.Create(ctx, &domain.VerifiedID{
		UserID:        userID,
		GNumber:       u.GNumber,
		ImageURL:      img.URL,
		ExtractedText: extracted.Text,
	})
	if err != nil {
		discard()
		if database.IsUniqueViolation(err) {
			return nil, ErrAlreadyVerified
		}
		return nil, apperr.Remote(err, "failed to record verification")
	}
	if err := s.users.Update(ctx, userID, map[string]any{"verified": true}); err != nil {
		return nil, apperr.Remote(err, "failed to mark user verified")
	}

	u.Verified = true
	return &VerifyIDResult{User: u, ImageURL: img.URL}, nil
}

func (s *Service) MakeUserAdmin(ctx context.Context, actorID, userID int64) (*domain.User, error) {
	actor, err := s.GetUser(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin {
		return nil, ErrNotSystemAdmin
	}
	if err := s.users.Update(ctx, userID, map[string]any{"is_admin": true}); err != nil {
		if database.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, apperr.Remote(err, "failed to grant admin rights")
	}
	return s.GetUser(ctx, userID)
}

// containsGNumber matches case-insensitively with all whitespace dropped.
func containsGNumber(text, gNumber string) bool {
	if gNumber == "" {
		return false
	}
	squash := func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}
	haystack := strings.ToUpper(strings.Map(squash, text))
	return strings.Contains(haystack, strings.ToUpper(gNumber))
}

func uploadError(err error, msg string) error {
	if errors.Is(err, apperr.ErrValidation) {
		return err
	}
	return apperr.Remote(err, msg)
}

func emailWriteError(err error) error {
	if database.IsUniqueViolation(err) {
		return ErrEmailTaken
	}
	if database.IsNotFound(err) {
		return ErrUserNotFound
	}
	return apperr.Remote(err, "failed to update email")
}

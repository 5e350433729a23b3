package user

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"tigerlife/internal/database"
	"tigerlife/internal/domain"
	"tigerlife/internal/gateway"
	"tigerlife/internal/pkg/apperr"
	"tigerlife/internal/repository"
	"tigerlife/internal/storage"
)

type memStore struct {
	uploads int
	fail    bool
	removed []string
}

func (s *memStore) Upload(_ context.Context, bucket, key string, _ []byte, _ string) (string, error) {
	if s.fail {
		return "", errors.New("bucket unavailable")
	}
	s.uploads++
	return "https://cdn.test/" + bucket + "/" + key, nil
}

func (s *memStore) Remove(_ context.Context, bucket, key string) error {
	s.removed = append(s.removed, bucket+"/"+key)
	return nil
}

type fakeFunctions struct {
	text string
	err  error
}

func (f *fakeFunctions) Invoke(_ context.Context, name string, _ any, out any) error {
	if f.err != nil {
		return f.err
	}
	body, _ := json.Marshal(extractIDTextResult{Text: f.text})
	return json.Unmarshal(body, out)
}

var pngDataURL = "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("\x89PNG\r\n\x1a\nfake"))

type fixture struct {
	db    *gorm.DB
	store *memStore
	fn    *fakeFunctions
	svc   *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.Connect(":memory:", nil)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	f := &fixture{db: db, store: &memStore{}, fn: &fakeFunctions{}}
	f.svc = NewService(
		repository.NewUserRepository(db),
		repository.NewAccountRepository(db),
		repository.NewVerifiedIDRepository(db),
		storage.NewUploader(f.store, nil),
		f.fn,
		nil,
	)
	return f
}

func (f *fixture) seed(t *testing.T, id int64, email, gNumber, password string) {
	t.Helper()
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	_, err = repository.NewAccountRepository(f.db).Create(ctx, &domain.AuthAccount{ID: id, Email: email, PasswordHash: string(hash)})
	require.NoError(t, err)
	_, err = repository.NewUserRepository(f.db).Create(ctx, &domain.User{ID: id, FirstName: "User", Email: email, GNumber: gNumber})
	require.NoError(t, err)
}

func ptr(s string) *string { return &s }

func TestUpdateProfile_SanitisesAndStoresAvatar(t *testing.T) {
	f := newFixture(t)
	f.seed(t, 1, "ada@campus.edu", "G00000001", "password1")

	u, err := f.svc.UpdateProfile(context.Background(), 1, UpdateProfileRequest{
		FirstName: ptr("<b>Ada</b>"),
		Bio:       ptr("Maths"),
		Avatar:    pngDataURL,
	})

	require.NoError(t, err)
	assert.Equal(t, "Ada", u.FirstName)
	require.NotNil(t, u.Avatar)
	assert.Contains(t, *u.Avatar, "/"+gateway.BucketAvatars+"/1/")
	assert.Equal(t, 1, f.store.uploads)
}

func TestUpdateProfile_MalformedAvatarIsValidation(t *testing.T) {
	f := newFixture(t)
	f.seed(t, 1, "ada@campus.edu", "G00000001", "password1")

	_, err := f.svc.UpdateProfile(context.Background(), 1, UpdateProfileRequest{Avatar: "data:image/png;base64,@@@"})

	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestUpdateEmail_UpdatesBothRecords(t *testing.T) {
	f := newFixture(t)
	f.seed(t, 1, "ada@campus.edu", "G00000001", "password1")
	ctx := context.Background()

	u, err := f.svc.UpdateEmail(ctx, 1, "Countess@Campus.EDU")
	require.NoError(t, err)
	assert.Equal(t, "countess@campus.edu", u.Email)

	account, err := repository.NewAccountRepository(f.db).GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "countess@campus.edu", account.Email)
}

func TestUpdateEmail_TakenIsConflict(t *testing.T) {
	f := newFixture(t)
	f.seed(t, 1, "ada@campus.edu", "G00000001", "password1")
	f.seed(t, 2, "bob@campus.edu", "G00000002", "password2")

	_, err := f.svc.UpdateEmail(context.Background(), 1, "bob@campus.edu")

	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestUpdatePassword_RequiresCurrentPassword(t *testing.T) {
	f := newFixture(t)
	f.seed(t, 1, "ada@campus.edu", "G00000001", "password1")
	ctx := context.Background()

	err := f.svc.UpdatePassword(ctx, 1, UpdatePasswordRequest{CurrentPassword: "nope", NewPassword: "password2"})
	assert.ErrorIs(t, err, ErrWrongPassword)

	require.NoError(t, f.svc.UpdatePassword(ctx, 1, UpdatePasswordRequest{CurrentPassword: "password1", NewPassword: "password2"}))

	account, err := repository.NewAccountRepository(f.db).GetByID(ctx, 1)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("password2")))
}

func TestUpdateSettings_MergesAndRemoves(t *testing.T) {
	f := newFixture(t)
	f.seed(t, 1, "ada@campus.edu", "G00000001", "password1")
	ctx := context.Background()

	_, err := f.svc.UpdateSettings(ctx, 1, map[string]any{"theme": "dark", "digest": "weekly"})
	require.NoError(t, err)

	merged, err := f.svc.UpdateSettings(ctx, 1, map[string]any{"digest": nil, "lang": "en"})
	require.NoError(t, err)
	assert.Equal(t, "dark", merged["theme"])
	assert.Equal(t, "en", merged["lang"])
	assert.NotContains(t, merged, "digest")

	u, err := f.svc.GetUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "dark", u.Settings["theme"])

	_, err = f.svc.UpdateSettings(ctx, 1, nil)
	assert.ErrorIs(t, err, ErrEmptySettings)
}

func TestEnableMFA_StoresSecret(t *testing.T) {
	f := newFixture(t)
	f.seed(t, 1, "ada@campus.edu", "G00000001", "password1")
	ctx := context.Background()

	setup, err := f.svc.EnableMFA(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, setup.Secret, 32)

	account, err := repository.NewAccountRepository(f.db).GetByID(ctx, 1)
	require.NoError(t, err)
	assert.True(t, account.MFAEnabled)
	require.NotNil(t, account.MFASecret)
	assert.Equal(t, setup.Secret, *account.MFASecret)
}

func TestVerifyID_MatchingTextVerifiesUser(t *testing.T) {
	f := newFixture(t)
	f.seed(t, 1, "ada@campus.edu", "G00000001", "password1")
	f.fn.text = "STUDENT ID\nAda Lovelace\ng 0000 0001"

	res, err := f.svc.VerifyID(context.Background(), 1, pngDataURL)

	require.NoError(t, err)
	assert.True(t, res.User.Verified)
	assert.Empty(t, f.store.removed)

	var count int64
	require.NoError(t, f.db.Model(&domain.VerifiedID{}).Where("user_id = ?", 1).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	_, err = f.svc.VerifyID(context.Background(), 1, pngDataURL)
	assert.ErrorIs(t, err, ErrAlreadyVerified)
}

func TestVerifyID_MismatchRemovesImage(t *testing.T) {
	f := newFixture(t)
	f.seed(t, 1, "ada@campus.edu", "G00000001", "password1")
	f.fn.text = "STUDENT ID G99999999"

	_, err := f.svc.VerifyID(context.Background(), 1, pngDataURL)

	assert.ErrorIs(t, err, ErrIDMismatch)
	assert.Len(t, f.store.removed, 1)

	u, err := f.svc.GetUser(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, u.Verified)
}

func TestVerifyID_ExtractionFailureIsRemote(t *testing.T) {
	f := newFixture(t)
	f.seed(t, 1, "ada@campus.edu", "G00000001", "password1")
	f.fn.err = errors.New("function timed out")

	_, err := f.svc.VerifyID(context.Background(), 1, pngDataURL)

	assert.ErrorIs(t, err, apperr.ErrRemote)
	assert.Len(t, f.store.removed, 1)
}

func TestMakeUserAdmin(t *testing.T) {
	f := newFixture(t)
	f.seed(t, 1, "ada@campus.edu", "G00000001", "password1")
	f.seed(t, 2, "bob@campus.edu", "G00000002", "password2")
	ctx := context.Background()

	_, err := f.svc.MakeUserAdmin(ctx, 2, 1)
	assert.ErrorIs(t, err, ErrNotSystemAdmin)

	require.NoError(t, f.db.Model(&domain.User{}).Where("id = ?", 1).Update("is_admin", true).Error)

	u, err := f.svc.MakeUserAdmin(ctx, 1, 2)
	require.NoError(t, err)
	assert.True(t, u.IsAdmin)

	_, err = f.svc.MakeUserAdmin(ctx, 1, 99)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

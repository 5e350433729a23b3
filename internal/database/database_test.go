package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"tigerlife/internal/domain"
)

func TestMigrate_CreatesEveryTable(t *testing.T) {
	db, err := Connect(":memory:", nil)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db), "migrate is repeatable")

	for _, table := range []string{
		"auth_accounts", "sessions", "user_table", "verified_ids",
		"organizations", "organization_members", "events",
		"marketplace_items", "services_table", "bookings",
		"Messages", "Notifications",
	} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}

func TestMigrate_MembershipPairIsUnique(t *testing.T) {
	db, err := Connect(":memory:", nil)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	first := &domain.OrganizationMember{UserID: 1, OrganizationID: 2, Role: domain.RoleMember}
	require.NoError(t, db.Create(first).Error)

	err = db.Create(&domain.OrganizationMember{UserID: 1, OrganizationID: 2, Role: domain.RoleMember}).Error
	assert.True(t, IsUniqueViolation(err), "got %v", err)
}

func TestIsUniqueViolation(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{gorm.ErrDuplicatedKey, true},
		{fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), true},
		{&pgconn.PgError{Code: "23503"}, false},
		{errors.New("UNIQUE constraint failed: user_table.email"), true},
		{errors.New("connection refused"), false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, IsUniqueViolation(tc.err), "%v", tc.err)
	}
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(fmt.Errorf("load: %w", gorm.ErrRecordNotFound)))
	assert.False(t, IsNotFound(errors.New("boom")))
}

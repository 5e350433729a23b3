package domain

import (
	"time"

	"gorm.io/datatypes"
)

// User is the campus profile row. Its ID equals the AuthAccount ID created
// at signup.
type User struct {
	ID        int64             `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	FirstName string            `gorm:"column:first_name;not null" json:"first_name"`
	LastName  string            `gorm:"column:last_name;not null" json:"last_name"`
	Email     string            `gorm:"column:email;uniqueIndex;not null" json:"email"`
	GNumber   string            `gorm:"column:g_number;uniqueIndex;not null" json:"g_number"`
	Verified  bool              `gorm:"column:verified;not null;default:false" json:"verified"`
	IsAdmin   bool              `gorm:"column:is_admin;not null;default:false" json:"is_admin"`
	Avatar    *string           `gorm:"column:avatar" json:"avatar,omitempty"`
	Bio       *string           `gorm:"column:bio" json:"bio,omitempty"`
	Rating    *float64          `gorm:"column:rating" json:"rating,omitempty"`
	Settings  datatypes.JSONMap `gorm:"column:settings" json:"settings,omitempty"`
	JoinedAt  time.Time         `gorm:"column:joined_at;autoCreateTime" json:"joined_at"`
}

func (User) TableName() string { return "user_table" }

func (u *User) DisplayName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// UserSummary is the public display record used in lists and conversations.
type UserSummary struct {
	ID        int64   `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Avatar    *string `json:"avatar,omitempty"`
	Verified  bool    `json:"verified"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Avatar:    u.Avatar,
		Verified:  u.Verified,
	}
}

// AuthAccount holds credentials; it is the first phase of signup.
type AuthAccount struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	Email        string    `gorm:"column:email;uniqueIndex;not null"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	MFAEnabled   bool      `gorm:"column:mfa_enabled;not null;default:false"`
	MFASecret    *string   `gorm:"column:mfa_secret"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (AuthAccount) TableName() string { return "auth_accounts" }

// Session backs a login; deleting it logs the token out.
type Session struct {
	ID        string    `gorm:"column:id;primaryKey"`
	UserID    int64     `gorm:"column:user_id;index;not null"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Session) TableName() string { return "sessions" }

// VerifiedID records a successful student ID check.
type VerifiedID struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	UserID        int64     `gorm:"column:user_id;uniqueIndex;not null"`
	GNumber       string    `gorm:"column:g_number;not null"`
	ImageURL      string    `gorm:"column:image_url"`
	ExtractedText string    `gorm:"column:extracted_text"`
	VerifiedAt    time.Time `gorm:"column:verified_at;autoCreateTime"`
}

func (VerifiedID) TableName() string { return "verified_ids" }

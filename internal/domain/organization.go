package domain

import "time"

type OrganizationType string

const (
	OrgAdminFaculty    OrganizationType = "admin_faculty"
	OrgOfficialStudent OrganizationType = "official_student"
	OrgGeneral         OrganizationType = "general"
)

func (t OrganizationType) Valid() bool {
	switch t {
	case OrgAdminFaculty, OrgOfficialStudent, OrgGeneral:
		return true
	}
	return false
}

type Organization struct {
	ID          int64            `gorm:"column:id;primaryKey" json:"id"`
	Name        string           `gorm:"column:name;not null" json:"name"`
	Type        OrganizationType `gorm:"column:type;not null;index" json:"type"`
	Description string           `gorm:"column:description" json:"description"`
	Verified    bool             `gorm:"column:verified;not null;default:false;index" json:"verified"`
	CreatedBy   int64            `gorm:"column:created_by" json:"created_by"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Organization) TableName() string { return "organizations" }

type MemberRole string

const (
	RoleAdmin  MemberRole = "admin"
	RoleMember MemberRole = "member"
)

// OrganizationMember is unique per (user_id, organization_id).
type OrganizationMember struct {
	ID             int64      `gorm:"column:id;primaryKey" json:"id"`
	UserID         int64      `gorm:"column:user_id;not null;uniqueIndex:idx_org_member_pair" json:"user_id"`
	OrganizationID int64      `gorm:"column:organization_id;not null;uniqueIndex:idx_org_member_pair;index" json:"organization_id"`
	Role           MemberRole `gorm:"column:role;not null;default:member" json:"role"`
	Verified       bool       `gorm:"column:verified;not null;default:false" json:"verified"`
	JoinedAt       time.Time  `gorm:"column:joined_at;autoCreateTime" json:"joined_at"`
}

func (OrganizationMember) TableName() string { return "organization_members" }

// CanCreateEvents is the compound gate: verified member of a verified organization.
func (m *OrganizationMember) CanCreateEvents(org *Organization) bool {
	return m != nil && org != nil && m.Verified && org.Verified && m.OrganizationID == org.ID
}

// Membership is a membership row joined with its organization.
type Membership struct {
	OrganizationMember
	Organization Organization `json:"organization"`
}

// MemberWithUser is a membership row joined with the member's public profile.
type MemberWithUser struct {
	OrganizationMember
	User             UserSummary `json:"user"`
	OrganizationName string      `json:"organization_name"`
}

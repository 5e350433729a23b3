package organization

import (
	"context"

	"tigerlife/internal/domain"
	"tigerlife/internal/gateway"
)

type OrganizationRepository interface {
	Create(ctx context.Context, o *domain.Organization) (gateway.InsertResult, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Organization, error)
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Organization, error)
	List(ctx context.Context) ([]domain.Organization, error)
	ListByType(ctx context.Context, t domain.OrganizationType) ([]domain.Organization, error)
	ListPending(ctx context.Context) ([]domain.Organization, error)
	SetVerified(ctx context.Context, id int64) error
}

type MembershipRepository interface {
	Create(ctx context.Context, m *domain.OrganizationMember) (gateway.InsertResult, error)
	Get(ctx context.Context, userID, orgID int64) (*domain.OrganizationMember, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.OrganizationMember, error)
	ListByOrganization(ctx context.Context, orgID int64) ([]domain.OrganizationMember, error)
	ListAdmins(ctx context.Context, orgID int64) ([]domain.OrganizationMember, error)
	AdminOrganizationIDs(ctx context.Context, userID int64) ([]int64, error)
	ListPending(ctx context.Context, orgIDs []int64) ([]domain.OrganizationMember, error)
	SetVerified(ctx context.Context, userID, orgID int64) error
}

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByIDs(ctx context.Context, ids []int64) ([]domain.User, error)
}

// Notifier is the part of the notification emitter this module uses.
type Notifier interface {
	NotifyOrganization(ctx context.Context, userID, orgID int64, title, message string) error
}

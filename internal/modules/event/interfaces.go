package event

import (
	"context"

	"tigerlife/internal/domain"
	"tigerlife/internal/gateway"
	"tigerlife/internal/storage"
)

type EventRepository interface {
	Create(ctx context.Context, e *domain.Event) (gateway.InsertResult, error)
	List(ctx context.Context) ([]domain.Event, error)
	ListByOrganization(ctx context.Context, orgID int64) ([]domain.Event, error)
}

// Authorizer is implemented by organization.Service.
type Authorizer interface {
	AuthorizeEventCreation(ctx context.Context, userID, orgID int64) (*domain.Organization, error)
}

type ImageUploader interface {
	Upload(ctx context.Context, bucket string, ownerID int64, dataURL string) (*storage.Uploaded, error)
}

type Notifier interface {
	NotifyOrganization(ctx context.Context, userID, orgID int64, title, message string) error
}

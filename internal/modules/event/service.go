package event

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"tigerlife/internal/domain"
	"tigerlife/internal/gateway"
	"tigerlife/internal/pkg/apperr"
	"tigerlife/internal/pkg/logger"
	"tigerlife/internal/pkg/sanitize"
	"tigerlife/internal/pkg/validator"
	"tigerlife/internal/workflow"
)

type Service struct {
	events EventRepository
	auth   Authorizer
	images ImageUploader
	notify Notifier
	log    *zap.Logger
}

func NewService(events EventRepository, auth Authorizer, images ImageUploader, notify Notifier, log *zap.Logger) *Service {
	return &Service{
		events: events,
		auth:   auth,
		images: images,
		notify: notify,
		log:    logger.OrNop(log),
	}
}

// CreateEvent stores an event for a verified member of a verified
// organization. Unlike listings, a failed image upload does not abort: the
// event is stored without an image and the caller gets a warning.
func (s *Service) CreateEvent(ctx context.Context, creatorID int64, req CreateEventRequest) (*workflow.Outcome[*domain.Event], error) {
	req.Title = sanitize.Text(req.Title)
	req.Description = sanitize.Text(req.Description)
	req.Location = sanitize.Text(req.Location)
	if err := validator.Check(req); err != nil {
		return nil, err
	}
	if req.Date.IsZero() {
		return nil, ErrMissingDate
	}

	org, err := s.auth.AuthorizeEventCreation(ctx, creatorID, req.OrganizationID)
	if err != nil {
		return nil, err
	}

	ev := &domain.Event{
		Title:          req.Title,
		Description:    req.Description,
		Date:           req.Date.UTC(),
		Location:       req.Location,
		OrganizationID: org.ID,
		CreatorID:      creatorID,
	}
	var warnings []string
	switch {
	case req.Image != "":
		up, err := s.images.Upload(ctx, gateway.BucketEvents, creatorID, req.Image)
		if err != nil {
			s.log.Warn("event image upload failed",
				zap.Int64("user_id", creatorID),
				zap.Int64("organization_id", org.ID),
				zap.Error(err),
			)
			warnings = append(warnings, WarnImageSkipped)
		} else {
			ev.ImageURL = &up.URL
		}
	case req.ImageURL != "":
		u := req.ImageURL
		ev.ImageURL = &u
	}

	res, err := s.events.Create(ctx, ev)
	if err != nil {
		return nil, apperr.Remote(err, "failed to create event")
	}
	ev.ID = res.ID
	ev.CreatedAt = res.CreatedAt

	out := workflow.New(ev, s.log)
	for _, w := range warnings {
		out.Warn(w)
	}
	out.Attempt(ctx, "notify_creator", func(ctx context.Context) error {
		return s.notify.NotifyOrganization(ctx, creatorID, org.ID,
			"Event created",
			fmt.Sprintf("%s is now listed for %s", ev.Title, org.Name),
		)
	}, zap.Int64("user_id", creatorID), zap.Int64("event_id", ev.ID))
	return out, nil
}

// UploadEventImage stores one image in the events bucket and returns its URL.
func (s *Service) UploadEventImage(ctx context.Context, creatorID int64, dataURL string) (string, error) {
	if dataURL == "" {
		return "", ErrMissingImage
	}
	up, err := s.images.Upload(ctx, gateway.BucketEvents, creatorID, dataURL)
	if err != nil {
		if errors.Is(err, apperr.ErrValidation) {
			return "", err
		}
		return "", apperr.Remote(err, "failed to upload event image")
	}
	return up.URL, nil
}

func (s *Service) GetEvents(ctx context.Context) ([]domain.Event, error) {
	events, err := s.events.List(ctx)
	if err != nil {
		return nil, apperr.Remote(err, "failed to load events")
	}
	return events, nil
}

func (s *Service) GetOrganizationEvents(ctx context.Context, orgID int64) ([]domain.Event, error) {
	events, err := s.events.ListByOrganization(ctx, orgID)
	if err != nil {
		return nil, apperr.Remote(err, "failed to load organization events")
	}
	return events, nil
}

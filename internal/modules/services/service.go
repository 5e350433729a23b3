package services

import (
	"context"

	"go.uber.org/zap"

	"tigerlife/internal/database"
	"tigerlife/internal/domain"
	"tigerlife/internal/gateway"
	"tigerlife/internal/pkg/apperr"
	"tigerlife/internal/pkg/logger"
	"tigerlife/internal/pkg/sanitize"
	"tigerlife/internal/pkg/validator"
	"tigerlife/internal/storage"
	"tigerlife/internal/workflow"
)

type Service struct {
	repo   ServiceRepository
	images ImageUploader
	notify Notifier
	log    *zap.Logger
}

func NewService(repo ServiceRepository, images ImageUploader, notify Notifier, log *zap.Logger) *Service {
	return &Service{repo: repo, images: images, notify: notify, log: logger.OrNop(log)}
}

// ListService follows the same contract as a marketplace listing: a failed
// upload aborts before anything is stored.
func (s *Service) ListService(ctx context.Context, providerID int64, req ListServiceRequest) (*workflow.Outcome[*domain.Service], error) {
	if providerID <= 0 {
		return nil, ErrMissingProvider
	}
	req.Title = sanitize.Text(req.Title)
	req.Description = sanitize.Text(req.Description)
	req.Category = sanitize.Text(req.Category)
	if err := validator.Check(req); err != nil {
		return nil, err
	}
	if len(req.Images) > maxImages {
		return nil, ErrTooManyImages
	}

	uploaded, err := s.images.UploadAll(ctx, gateway.BucketServices, providerID, req.Images)
	if err != nil {
		return nil, storage.UploadFailed(err)
	}

	svc := &domain.Service{
		ProviderID:  providerID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Images:      storage.URLs(uploaded),
	}
	res, err := s.repo.Create(ctx, svc)
	if err != nil {
		s.images.Discard(ctx, uploaded)
		return nil, apperr.Remote(err, "failed to create service")
	}
	svc.ID = res.ID
	svc.CreatedAt = res.CreatedAt

	out := workflow.New(svc, s.log)
	out.Attempt(ctx, "notify_provider", func(ctx context.Context) error {
		return s.notify.NotifyService(ctx, providerID, svc.ID, svc.Title)
	}, zap.Int64("user_id", providerID), zap.Int64("service_id", svc.ID))
	return out, nil
}

func (s *Service) GetServices(ctx context.Context) ([]domain.Service, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.Remote(err, "failed to load services")
	}
	return list, nil
}

func (s *Service) GetService(ctx context.Context, id int64) (*domain.Service, error) {
	svc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, ErrServiceNotFound
		}
		return nil, apperr.Remote(err, "failed to load service")
	}
	return svc, nil
}

// BookService records a booking and notifies both sides independently.
func (s *Service) BookService(ctx context.Context, bookerID, serviceID int64, req BookServiceRequest) (*workflow.Outcome[*domain.Booking], error) {
	req.Note = sanitize.Text(req.Note)
	if err := validator.Check(req); err != nil {
		return nil, err
	}
	svc, err := s.GetService(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if svc.ProviderID == bookerID {
		return nil, ErrBookOwnService
	}

	b := &domain.Booking{
		ServiceID:    svc.ID,
		BookerID:     bookerID,
		ProviderID:   svc.ProviderID,
		ScheduledFor: req.ScheduledFor,
		Note:         req.Note,
	}
	res, err := s.repo.CreateBooking(ctx, b)
	if err != nil {
		return nil, apperr.Remote(err, "failed to create booking")
	}
	b.ID = res.ID
	b.CreatedAt = res.CreatedAt

	out := workflow.New(b, s.log)
	out.Attempt(ctx, "notify_booking", func(ctx context.Context) error {
		return s.notify.NotifyBooking(ctx, bookerID, svc.ProviderID, b.ID, svc.Title)
	}, zap.Int64("user_id", bookerID), zap.Int64("booking_id", b.ID))
	return out, nil
}

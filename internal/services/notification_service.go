package services

import (
	"context"

	"github.com/lcamargo/puzzlefeed/internal/errors"
	"github.com/lcamargo/puzzlefeed/internal/logger"
	"github.com/lcamargo/puzzlefeed/internal/models"
	"github.com/lcamargo/puzzlefeed/internal/repository"
)

// NotificationService handles the notification inbox
type NotificationService interface {
	List(ctx context.Context, playerID int64, limit, offset int) ([]models.Notification, int, error)
	MarkRead(ctx context.Context, playerID int64, id string) error
	MarkAllRead(ctx context.Context, playerID int64) error
}

type notificationService struct {
	notifyRepo repository.NotificationRepository
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notifyRepo repository.NotificationRepository) NotificationService {
	return &notificationService{notifyRepo: notifyRepo}
}

// List returns notifications unread-first plus the unread count.
func (s *notificationService) List(ctx context.Context, playerID int64, limit, offset int) ([]models.Notification, int, error) {
	log := logger.FromContext(ctx)

	notifications, err := s.notifyRepo.ListForPlayer(ctx, playerID, limit, offset)
	if err != nil {
		log.Error("failed to list notifications: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}
	unread, err := s.notifyRepo.CountUnread(ctx, playerID)
	if err != nil {
		log.Error("failed to count unread notifications: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}
	return notifications, unread, nil
}

func (s *notificationService) MarkRead(ctx context.Context, playerID int64, id string) error {
	log := logger.FromContext(ctx)
	if err := s.notifyRepo.MarkRead(ctx, playerID, id); err != nil {
		log.Error("failed to mark notification read: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, playerID int64) error {
	log := logger.FromContext(ctx)
	if err := s.notifyRepo.MarkAllRead(ctx, playerID); err != nil {
		log.Error("failed to mark notifications read: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}

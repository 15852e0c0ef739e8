package service

import (
	"context"
	"encoding/json"
	"fmt"

	"bouncearound.com/daycare/internal/entity"
	notifRepo "bouncearound.com/daycare/internal/modules/notification/repository"
	userRepo "bouncearound.com/daycare/internal/modules/user/repository"
	"bouncearound.com/daycare/pkg/apperror"
	commonDto "bouncearound.com/daycare/pkg/dto"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	TypeIncident        = "incident"
	TypeComplianceAlert = "compliance_alert"
)

// Channel is the redis pub/sub channel carrying live notifications for a user.
func Channel(userID uuid.UUID) string {
	return fmt.Sprintf("user_notifications:%s", userID.String())
}

// Notifier is what other modules need to raise notifications.
type Notifier interface {
	CreateNotification(ctx context.Context, notification *entity.Notification) error
	// NotifyAdmins copies the template to every active admin.
	NotifyAdmins(ctx context.Context, template entity.Notification) error
}

type NotificationService interface {
	Notifier
	GetNotifications(ctx context.Context, userID uuid.UUID, page commonDto.PageQuery) (*commonDto.Paginated[entity.Notification], error)
	MarkAsRead(ctx context.Context, userID, id uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
}

type notificationService struct {
	repo        notifRepo.NotificationRepository
	userRepo    userRepo.UserRepository
	redisClient *redis.Client
}

func NewNotificationService(repo notifRepo.NotificationRepository, userRepo userRepo.UserRepository, redisClient *redis.Client) NotificationService {
	return &notificationService{
		repo:        repo,
		userRepo:    userRepo,
		redisClient: redisClient,
	}
}

func (s *notificationService) CreateNotification(ctx context.Context, notification *entity.Notification) error {
	if err := s.repo.Create(ctx, notification); err != nil {
		return err
	}
	s.publish(ctx, notification)
	return nil
}

func (s *notificationService) NotifyAdmins(ctx context.Context, template entity.Notification) error {
	admins, err := s.userRepo.FindActiveAdmins(ctx)
	if err != nil {
		return err
	}

	batch := make([]entity.Notification, 0, len(admins))
	for _, admin := range admins {
		n := template
		n.ID = uuid.Nil
		n.UserID = admin.ID
		batch = append(batch, n)
	}
	if err := s.repo.CreateBatch(ctx, batch); err != nil {
		return err
	}

	for i := range batch {
		s.publish(ctx, &batch[i])
	}
	return nil
}

func (s *notificationService) publish(ctx context.Context, notification *entity.Notification) {
	if s.redisClient == nil {
		return
	}
	payload, err := json.Marshal(notification)
	if err != nil {
		return
	}
	if err := s.redisClient.Publish(ctx, Channel(notification.UserID), payload).Err(); err != nil {
		log.Warn().Err(err).Str("user_id", notification.UserID.String()).Msg("failed to publish notification")
	}
}

func (s *notificationService) GetNotifications(ctx context.Context, userID uuid.UUID, page commonDto.PageQuery) (*commonDto.Paginated[entity.Notification], error) {
	page.Normalize(20)
	notifications, total, err := s.repo.GetByUserID(ctx, userID, page)
	if err != nil {
		return nil, err
	}
	return commonDto.NewPaginated(notifications, page, total), nil
}

func (s *notificationService) MarkAsRead(ctx context.Context, userID, id uuid.UUID) error {
	found, err := s.repo.MarkAsRead(ctx, userID, id)
	if err != nil {
		return err
	}
	if !found {
		return apperror.NotFound(fmt.Sprintf("Notification with ID %s not found", id))
	}
	return nil
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.MarkAllAsRead(ctx, userID)
}

func (s *notificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

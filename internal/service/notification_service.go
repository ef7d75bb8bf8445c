package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"articlegen-be/internal/dto"
	"articlegen-be/internal/entity"
	"articlegen-be/internal/pkg/logger"
	"articlegen-be/internal/pkg/mailer"
	"articlegen-be/internal/repository/specification"
	"articlegen-be/internal/repository/unitofwork"
	"articlegen-be/pkg/apperror"
	"articlegen-be/pkg/events"
	pktNats "articlegen-be/pkg/nats"
)

// NotificationDelivery is how real-time pushes reach the user, typically
// the websocket hub.
type NotificationDelivery interface {
	Send(userID uuid.UUID, notification entity.Notification)
}

type INotificationService interface {
	Start()
	List(ctx context.Context, userId uuid.UUID) ([]*dto.NotificationResponse, error)
	MarkRead(ctx context.Context, userId, id uuid.UUID) error
}

type notificationService struct {
	uowFactory   unitofwork.RepositoryFactory
	subscriber   *pktNats.Subscriber
	delivery     NotificationDelivery
	emailService mailer.IEmailService
	clientURL    string
	logger       logger.ILogger
}

func NewNotificationService(
	uowFactory unitofwork.RepositoryFactory,
	sub *pktNats.Subscriber,
	delivery NotificationDelivery,
	emailService mailer.IEmailService,
	clientURL string,
	log logger.ILogger,
) INotificationService {
	return &notificationService{
		uowFactory:   uowFactory,
		subscriber:   sub,
		delivery:     delivery,
		emailService: emailService,
		clientURL:    clientURL,
		logger:       log,
	}
}

// Start begins listening to the event bus with a durable consumer.
func (s *notificationService) Start() {
	if s.subscriber == nil {
		s.logger.Warn("NotificationService", "No event subscriber configured, notifications disabled", nil)
		return
	}
	err := s.subscriber.Subscribe("events.>", "notif-service-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to start notification subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("NotificationService", "Notification service started, listening to events.>", nil)
}

func (s *notificationService) handleEvent(ctx context.Context, event events.Event) error {
	// NATS subjects include the stream prefix.
	typeCode := strings.TrimPrefix(event.EventType(), "events.")
	s.logger.Info("NotificationService", "Processing event", map[string]interface{}{"type": typeCode})

	switch typeCode {
	case events.TypeArticleCompleted:
		return s.handleArticleCompleted(ctx, event)
	case events.TypeSourceIngested:
		return s.handleSourceIngested(ctx, event)
	default:
		return nil
	}
}

func payloadUUID(payload map[string]interface{}, key string) (uuid.UUID, bool) {
	// JetStream round-trips payloads through JSON, so UUIDs arrive as strings.
	switch v := payload[key].(type) {
	case string:
		id, err := uuid.Parse(v)
		return id, err == nil
	case uuid.UUID:
		return v, true
	default:
		return uuid.Nil, false
	}
}

func (s *notificationService) handleArticleCompleted(ctx context.Context, event events.Event) error {
	payload := event.Payload()
	userId, ok := payloadUUID(payload, "user_id")
	if !ok {
		return nil
	}
	articleId, _ := payloadUUID(payload, "article_id")
	title, _ := payload["title"].(string)

	notif := entity.Notification{
		Id:        uuid.New(),
		UserId:    userId,
		Type:      events.TypeArticleCompleted,
		Title:     "Article ready",
		Body:      fmt.Sprintf("Your article %q has been generated.", title),
		CreatedAt: time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.NotificationRepository().Create(ctx, &notif); err != nil {
		return err
	}

	if s.delivery != nil {
		s.delivery.Send(userId, notif)
	}

	if s.emailService != nil {
		user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
		if err == nil && user != nil {
			articleURL := fmt.Sprintf("%s/articles/%s", s.clientURL, articleId)
			go func() {
				if mailErr := s.emailService.SendArticleReady(user.Email, title, articleURL); mailErr != nil {
					s.logger.Warn("NotificationService", "Failed to send article-ready email", map[string]interface{}{"error": mailErr.Error()})
				}
			}()
		}
	}

	return nil
}

func (s *notificationService) handleSourceIngested(ctx context.Context, event events.Event) error {
	payload := event.Payload()
	userId, ok := payloadUUID(payload, "user_id")
	if !ok {
		return nil
	}
	title, _ := payload["title"].(string)

	notif := entity.Notification{
		Id:        uuid.New(),
		UserId:    userId,
		Type:      events.TypeSourceIngested,
		Title:     "Source indexed",
		Body:      fmt.Sprintf("%q is ready for retrieval.", title),
		CreatedAt: time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.NotificationRepository().Create(ctx, &notif); err != nil {
		return err
	}

	if s.delivery != nil {
		s.delivery.Send(userId, notif)
	}
	return nil
}

func (s *notificationService) List(ctx context.Context, userId uuid.UUID) ([]*dto.NotificationResponse, error) {
	if userId == uuid.Nil {
		return nil, apperror.Unauthenticated("identity not found")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	notifications, err := uow.NotificationRepository().FindAll(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}

	resp := make([]*dto.NotificationResponse, len(notifications))
	for i, n := range notifications {
		resp[i] = &dto.NotificationResponse{
			Id:        n.Id,
			Type:      n.Type,
			Title:     n.Title,
			Body:      n.Body,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		}
	}
	return resp, nil
}

func (s *notificationService) MarkRead(ctx context.Context, userId, id uuid.UUID) error {
	if userId == uuid.Nil {
		return apperror.Unauthenticated("identity not found")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	notifications, err := uow.NotificationRepository().FindAll(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if len(notifications) == 0 {
		return apperror.NotFound("notification")
	}

	return uow.NotificationRepository().MarkRead(ctx, id)
}

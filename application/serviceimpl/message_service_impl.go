package serviceimpl

import (
	"context"
	"sort"
	"strings"
	"time"

	"heritage-archive/domain/models"
	"heritage-archive/domain/repositories"
	"heritage-archive/domain/services"
	"heritage-archive/pkg/apperror"
	"heritage-archive/pkg/logger"
)

const maxMessageLength = 4000

type MessageServiceImpl struct {
	messageRepo repositories.MessageRepository
	profileRepo repositories.ProfileRepository
	publisher   services.EventPublisher
}

func NewMessageService(
	messageRepo repositories.MessageRepository,
	profileRepo repositories.ProfileRepository,
	publisher services.EventPublisher,
) services.MessageService {
	return &MessageServiceImpl{
		messageRepo: messageRepo,
		profileRepo: profileRepo,
		publisher:   publisher,
	}
}

func (s *MessageServiceImpl) Send(ctx context.Context, userID, content string) (*models.Message, error) {
	if userID == "" {
		return nil, apperror.Unauthorized("authentication required")
	}
	content, err := cleanContent(content, maxMessageLength)
	if err != nil {
		return nil, err
	}

	msg := &models.Message{UserID: userID, Content: content}
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		s.publisher.Publish(services.ModerationEvent{
			Type:     "message_received",
			TargetID: msg.ID,
			ActorID:  userID,
		})
	}
	return msg, nil
}

func (s *MessageServiceImpl) ListMine(ctx context.Context, userID string) ([]models.Message, error) {
	if userID == "" {
		return nil, apperror.Unauthorized("authentication required")
	}
	return s.messageRepo.ListByUser(ctx, userID)
}

func (s *MessageServiceImpl) Reply(ctx context.Context, actorID, userID, content string) (*models.Message, error) {
	if _, err := requireAdmin(ctx, s.profileRepo, actorID); err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, apperror.BadRequest("user id is required")
	}
	content, err := cleanContent(content, maxMessageLength)
	if err != nil {
		return nil, err
	}
	if _, err := s.profileRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	msg := &models.Message{UserID: userID, Content: content, IsFromAdmin: true}
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, err
	}

	logger.Info(logger.CategoryAPI, "message_reply", "Admin replied to member", map[string]interface{}{
		"admin_id": actorID,
		"user_id":  userID,
	})
	return msg, nil
}

// Threads groups every message by account, most recently active thread first.
func (s *MessageServiceImpl) Threads(ctx context.Context, actorID string) ([]services.MessageThread, error) {
	if _, err := requireAdmin(ctx, s.profileRepo, actorID); err != nil {
		return nil, err
	}

	all, err := s.messageRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	byUser := make(map[string]*services.MessageThread)
	var order []string
	for _, m := range all {
		thread, ok := byUser[m.UserID]
		if !ok {
			thread = &services.MessageThread{UserID: m.UserID}
			byUser[m.UserID] = thread
			order = append(order, m.UserID)
		}
		if thread.Profile == nil && m.Profile != nil {
			thread.Profile = m.Profile
		}
		thread.Messages = append(thread.Messages, m)
	}

	threads := make([]services.MessageThread, 0, len(order))
	for _, id := range order {
		threads = append(threads, *byUser[id])
	}
	sort.SliceStable(threads, func(i, j int) bool {
		return lastMessageAt(threads[i]).After(lastMessageAt(threads[j]))
	})
	return threads, nil
}

func lastMessageAt(t services.MessageThread) time.Time {
	if n := len(t.Messages); n > 0 {
		return t.Messages[n-1].CreatedAt
	}
	return time.Time{}
}

func cleanContent(content string, max int) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", apperror.BadRequest("content is required")
	}
	if len([]rune(content)) > max {
		return "", apperror.BadRequest("content is too long")
	}
	return content, nil
}

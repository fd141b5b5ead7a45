package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dataarena/dataarena-backend/internal/data/repos"
	"github.com/dataarena/dataarena-backend/internal/domain"
	"github.com/dataarena/dataarena-backend/internal/platform/logger"
)

type ContactService interface {
	SubmitMessage(ctx context.Context, name, email, message string) (*domain.ContactMessage, error)
}

type contactService struct {
	log         *logger.Logger
	contactRepo repos.ContactMessageRepo
}

func NewContactService(baseLog *logger.Logger, contactRepo repos.ContactMessageRepo) ContactService {
	return &contactService{
		log:         baseLog.With("service", "ContactService"),
		contactRepo: contactRepo,
	}
}

func (cs *contactService) SubmitMessage(ctx context.Context, name, email, message string) (*domain.ContactMessage, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	message = strings.TrimSpace(message)
	if name == "" {
		return nil, missingField("name")
	}
	if email == "" {
		return nil, missingField("email")
	}
	if message == "" {
		return nil, missingField("message")
	}

	msg := &domain.ContactMessage{
		ID:      uuid.New(),
		Name:    name,
		Email:   email,
		Message: message,
	}
	if _, err := cs.contactRepo.Create(ctx, nil, msg); err != nil {
		return nil, fmt.Errorf("create contact message: %w", err)
	}
	cs.log.Info("Contact message received", "message_id", msg.ID)
	return msg, nil
}

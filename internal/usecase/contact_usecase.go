package usecase

import (
	"context"
	"strings"
	"time"

	"gamerverse/internal/domain/entity"
	"gamerverse/internal/domain/repository"
	"gamerverse/internal/infrastructure/task"
)

type ContactUseCase struct {
	contactRepo repository.ContactMessageRepository
	roles       *RoleUseCase
	notifier    Notifier
	runner      *task.Runner
	now         func() time.Time
}

func NewContactUseCase(contactRepo repository.ContactMessageRepository, roles *RoleUseCase, notifier Notifier, runner *task.Runner) *ContactUseCase {
	return &ContactUseCase{
		contactRepo: contactRepo,
		roles:       roles,
		notifier:    notifierOrNop(notifier),
		runner:      runner,
		now:         time.Now,
	}
}

type ContactInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

func (uc *ContactUseCase) Submit(ctx context.Context, input ContactInput) (*entity.ContactMessage, error) {
	msg := &entity.ContactMessage{
		Name:      strings.TrimSpace(input.Name),
		Email:     strings.TrimSpace(input.Email),
		Subject:   strings.TrimSpace(input.Subject),
		Message:   strings.TrimSpace(input.Message),
		CreatedAt: uc.now().UnixMilli(),
	}
	if msg.Subject == "" {
		msg.Subject = "General enquiry"
	}

	if err := uc.contactRepo.Create(ctx, msg); err != nil {
		return nil, err
	}

	dispatch(uc.runner, "mail.contact_received", msg.Email, func(ctx context.Context) error {
		return uc.notifier.ContactReceived(ctx, msg)
	})
	return msg, nil
}

func (uc *ContactUseCase) ListMessages(ctx context.Context, actor *entity.Identity, limit int) ([]*entity.ContactMessage, error) {
	if err := uc.roles.RequireAdmin(ctx, actor); err != nil {
		return nil, err
	}
	return uc.contactRepo.List(ctx, limit)
}

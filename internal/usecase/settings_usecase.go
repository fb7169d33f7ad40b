package usecase

import (
	"context"
	"net/url"
	"strings"

	"gamerverse/internal/domain/entity"
	"gamerverse/internal/domain/repository"
	"gamerverse/internal/infrastructure/task"
	"gamerverse/pkg/errors"
)

type SettingsUseCase struct {
	paymentRepo repository.PaymentConfigRepository
	roles       *RoleUseCase
	runner      *task.Runner
}

func NewSettingsUseCase(paymentRepo repository.PaymentConfigRepository, roles *RoleUseCase, runner *task.Runner) *SettingsUseCase {
	return &SettingsUseCase{
		paymentRepo: paymentRepo,
		roles:       roles,
		runner:      runner,
	}
}

func (uc *SettingsUseCase) GetPaymentConfig(ctx context.Context) (*entity.PaymentConfig, error) {
	return uc.paymentRepo.Get(ctx)
}

func validatePaymentConfig(cfg *entity.PaymentConfig) (*entity.PaymentConfig, error) {
	qr := strings.TrimSpace(cfg.QRCodeURL)
	u, err := url.Parse(qr)
	if qr == "" || err != nil || (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
		return nil, errors.BadRequest("QR code URL must be an absolute http(s) URL", err)
	}
	return &entity.PaymentConfig{QRCodeURL: qr}, nil
}

// ReplacePaymentConfig overwrites payment_qr/current with exactly cfg.
func (uc *SettingsUseCase) ReplacePaymentConfig(ctx context.Context, actor *entity.Identity, cfg *entity.PaymentConfig) (*entity.PaymentConfig, error) {
	if err := uc.roles.RequireAdmin(ctx, actor); err != nil {
		return nil, err
	}
	clean, err := validatePaymentConfig(cfg)
	if err != nil {
		return nil, err
	}

	if err := uc.paymentRepo.Replace(ctx, clean); err != nil {
		return nil, err
	}
	return clean, nil
}

// ReplacePaymentConfigAsync authorizes and validates synchronously, then
// writes on the task runner. The returned task reports the write outcome.
func (uc *SettingsUseCase) ReplacePaymentConfigAsync(ctx context.Context, actor *entity.Identity, cfg *entity.PaymentConfig) (*task.Task, error) {
	if err := uc.roles.RequireAdmin(ctx, actor); err != nil {
		return nil, err
	}
	clean, err := validatePaymentConfig(cfg)
	if err != nil {
		return nil, err
	}
	if uc.runner == nil {
		return nil, errors.Internal("Background tasks are not available", nil)
	}

	return uc.runner.Submit("payment_config.replace", actor.UID, func(ctx context.Context) error {
		return uc.paymentRepo.Replace(ctx, clean)
	}), nil
}

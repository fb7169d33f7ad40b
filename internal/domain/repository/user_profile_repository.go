package repository

import (
	"context"

	"gamerverse/internal/domain/entity"
)

type UserProfileRepository interface {
	GetByUID(ctx context.Context, uid string) (*entity.UserProfile, error)
	// CreateIfAbsent writes profile only when users/{uid} does not exist yet.
	CreateIfAbsent(ctx context.Context, profile *entity.UserProfile) (created bool, err error)
	MergeProfile(ctx context.Context, uid string, update entity.ProfileUpdate) error
	SetAdmin(ctx context.Context, uid string, isAdmin bool) error
}

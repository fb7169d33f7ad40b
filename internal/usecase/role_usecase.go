package usecase

import (
	"context"

	"gamerverse/internal/domain/entity"
	"gamerverse/internal/domain/repository"
	"gamerverse/pkg/errors"
	"gamerverse/pkg/logger"
)

// RoleUseCase decides admin privilege from users/{uid}.isAdmin.
type RoleUseCase struct {
	profiles repository.UserProfileRepository
	cache    RoleCache
}

func NewRoleUseCase(profiles repository.UserProfileRepository, cache RoleCache) *RoleUseCase {
	return &RoleUseCase{
		profiles: profiles,
		cache:    cache,
	}
}

// Resolve returns a resolved role or an error, never the loading state. A
// missing profile document means "not admin". Store errors are returned so
// callers can fail closed.
func (uc *RoleUseCase) Resolve(ctx context.Context, id *entity.Identity) (entity.RoleResolution, error) {
	if id == nil {
		return entity.ResolvedRole(false), nil
	}

	if uc.cache != nil {
		isAdmin, found, err := uc.cache.Get(ctx, id)
		if err != nil {
			logger.Warn("Role cache read failed for %s: %v", id.UID, err)
		} else if found {
			return entity.ResolvedRole(isAdmin), nil
		}
	}

	isAdmin := false
	profile, err := uc.profiles.GetByUID(ctx, id.UID)
	switch {
	case err == nil:
		isAdmin = profile.IsAdmin
	case errors.Is(err, errors.CodeNotFound):
		logger.Debug("No profile for %s yet, resolving as non-admin", id.UID)
	default:
		return entity.RoleResolution{}, err
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, id, isAdmin); err != nil {
			logger.Warn("Role cache write failed for %s: %v", id.UID, err)
		}
	}

	return entity.ResolvedRole(isAdmin), nil
}

func (uc *RoleUseCase) RequireAdmin(ctx context.Context, id *entity.Identity) error {
	if id == nil {
		return errors.Unauthorized("Authentication required", nil)
	}

	role, err := uc.Resolve(ctx, id)
	if err != nil {
		return err
	}
	if !role.GrantsAdmin() {
		return errors.Forbidden("Admin access required", nil)
	}
	return nil
}

// Invalidate drops cached resolutions so a changed flag applies on the next
// request instead of the next token refresh.
func (uc *RoleUseCase) Invalidate(ctx context.Context, uid string) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.InvalidateUser(ctx, uid); err != nil {
		logger.Warn("Role cache invalidation failed for %s: %v", uid, err)
	}
}

package usecase

import (
	"context"
	"regexp"
	"strings"

	"gamerverse/internal/domain/entity"
	"gamerverse/internal/domain/repository"
	"gamerverse/internal/infrastructure/task"
	"gamerverse/pkg/errors"
	"gamerverse/pkg/logger"
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.]{3,30}$`)
	phonePattern    = regexp.MustCompile(`^\+?[0-9 ()-]{6,20}$`)
)

type UserUseCase struct {
	profiles repository.UserProfileRepository
	roles    *RoleUseCase
	identity IdentityProvider
	runner   *task.Runner
}

func NewUserUseCase(profiles repository.UserProfileRepository, roles *RoleUseCase, identity IdentityProvider, runner *task.Runner) *UserUseCase {
	return &UserUseCase{
		profiles: profiles,
		roles:    roles,
		identity: identity,
		runner:   runner,
	}
}

// EnsureProfile creates users/{uid} on first sign-in. An existing profile is
// left exactly as it is, admin flag included.
func (uc *UserUseCase) EnsureProfile(ctx context.Context, id *entity.Identity) (*entity.UserProfile, bool, error) {
	if id == nil || id.UID == "" {
		return nil, false, errors.Unauthorized("Authentication required", nil)
	}

	created, err := uc.profiles.CreateIfAbsent(ctx, entity.NewUserProfile(id))
	if err != nil {
		return nil, false, err
	}

	profile, err := uc.profiles.GetByUID(ctx, id.UID)
	if err != nil {
		return nil, created, err
	}
	return profile, created, nil
}

func (uc *UserUseCase) GetProfile(ctx context.Context, uid string) (*entity.UserProfile, error) {
	return uc.profiles.GetByUID(ctx, uid)
}

type UpdateProfileInput struct {
	DisplayName *string
	Username    *string
	PhoneNumber *string
}

func (in UpdateProfileInput) normalize() (entity.ProfileUpdate, error) {
	trim := func(s *string) *string {
		if s == nil {
			return nil
		}
		v := strings.TrimSpace(*s)
		return &v
	}
	update := entity.ProfileUpdate{
		DisplayName: trim(in.DisplayName),
		Username:    trim(in.Username),
		PhoneNumber: trim(in.PhoneNumber),
	}

	if update.IsEmpty() {
		return update, errors.BadRequest("Nothing to update", nil)
	}
	if update.DisplayName != nil && (len(*update.DisplayName) < 2 || len(*update.DisplayName) > 50) {
		return update, errors.BadRequest("Display name must be between 2 and 50 characters", nil)
	}
	if update.Username != nil && *update.Username != "" && !usernamePattern.MatchString(*update.Username) {
		return update, errors.BadRequest("Username may only contain letters, digits, dots and underscores (3-30)", nil)
	}
	if update.PhoneNumber != nil && *update.PhoneNumber != "" && !phonePattern.MatchString(*update.PhoneNumber) {
		return update, errors.BadRequest("Phone number is invalid", nil)
	}
	return update, nil
}

// UpdateProfile merges the editable fields into users/{uid}. The admin flag
// cannot be expressed in the input and is never written here.
func (uc *UserUseCase) UpdateProfile(ctx context.Context, uid string, input UpdateProfileInput) error {
	update, err := input.normalize()
	if err != nil {
		return err
	}
	return uc.applyProfileUpdate(ctx, uid, update)
}

// UpdateProfileAsync validates now and performs the write on the task runner.
func (uc *UserUseCase) UpdateProfileAsync(ctx context.Context, uid string, input UpdateProfileInput) (*task.Task, error) {
	update, err := input.normalize()
	if err != nil {
		return nil, err
	}
	if uc.runner == nil {
		return nil, errors.Internal("Background tasks are not available", nil)
	}

	return uc.runner.Submit("profile.update", uid, func(ctx context.Context) error {
		return uc.applyProfileUpdate(ctx, uid, update)
	}), nil
}

func (uc *UserUseCase) applyProfileUpdate(ctx context.Context, uid string, update entity.ProfileUpdate) error {
	if err := uc.profiles.MergeProfile(ctx, uid, update); err != nil {
		return err
	}

	if update.DisplayName != nil && uc.identity != nil {
		if err := uc.identity.UpdateDisplayName(ctx, uid, *update.DisplayName); err != nil {
			logger.Warn("Profile saved but auth display name update failed for %s: %v", uid, err)
		}
	}
	return nil
}

// SetAdmin changes another user's admin flag. Only admins may call it and
// nobody can revoke their own flag.
func (uc *UserUseCase) SetAdmin(ctx context.Context, actor *entity.Identity, targetUID string, isAdmin bool) error {
	if err := uc.roles.RequireAdmin(ctx, actor); err != nil {
		return err
	}
	if actor.UID == targetUID && !isAdmin {
		return errors.BadRequest("Admins cannot revoke their own access", nil)
	}

	if err := uc.AssignAdmin(ctx, targetUID, isAdmin); err != nil {
		return err
	}
	logger.Info("Admin %s set isAdmin=%t for %s", actor.UID, isAdmin, targetUID)
	return nil
}

// AssignAdmin writes the flag without an actor check. Used by the bootstrap
// command line tool.
func (uc *UserUseCase) AssignAdmin(ctx context.Context, uid string, isAdmin bool) error {
	if uid == "" {
		return errors.BadRequest("User id is required", nil)
	}
	if err := uc.profiles.SetAdmin(ctx, uid, isAdmin); err != nil {
		return err
	}
	uc.roles.Invalidate(ctx, uid)
	return nil
}

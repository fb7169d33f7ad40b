package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"gamerverse/internal/domain/entity"
	"gamerverse/internal/domain/repository"
	"gamerverse/pkg/errors"
	"gamerverse/pkg/logger"
)

type firestoreUserProfileRepository struct {
	client *firestore.Client
}

func NewFirestoreUserProfileRepository(client *firestore.Client) repository.UserProfileRepository {
	return &firestoreUserProfileRepository{
		client: client,
	}
}

func (r *firestoreUserProfileRepository) GetByUID(ctx context.Context, uid string) (*entity.UserProfile, error) {
	doc, err := userDoc(r.client, uid).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, errors.NotFound("User profile", err)
		}
		return nil, storeError("Failed to get user profile", err)
	}

	var profile entity.UserProfile
	if err := doc.DataTo(&profile); err != nil {
		return nil, errors.Internal("Failed to parse user profile", err)
	}
	if profile.UID == "" {
		profile.UID = doc.Ref.ID
	}

	return &profile, nil
}

func (r *firestoreUserProfileRepository) CreateIfAbsent(ctx context.Context, profile *entity.UserProfile) (bool, error) {
	ref := userDoc(r.client, profile.UID)

	_, err := ref.Get(ctx)
	if err == nil {
		return false, nil
	}
	if !isNotFound(err) {
		return false, storeError("Failed to check user profile", err)
	}

	// Create fails with AlreadyExists when a concurrent sign-in won the race.
	if _, err := ref.Create(ctx, profile); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return false, nil
		}
		return false, storeError("Failed to create user profile", err)
	}

	logger.Info("Created profile for user %s", profile.UID)
	return true, nil
}

func (r *firestoreUserProfileRepository) MergeProfile(ctx context.Context, uid string, update entity.ProfileUpdate) error {
	data := make(map[string]interface{})
	if update.DisplayName != nil {
		data["displayName"] = *update.DisplayName
	}
	if update.Username != nil {
		data["username"] = *update.Username
	}
	if update.PhoneNumber != nil {
		data["phoneNumber"] = *update.PhoneNumber
	}
	if len(data) == 0 {
		return nil
	}

	logger.Debug("Merging profile fields for %s: %v", uid, data)

	if _, err := userDoc(r.client, uid).Set(ctx, data, firestore.MergeAll); err != nil {
		return storeError("Failed to update user profile", err)
	}
	return nil
}

func (r *firestoreUserProfileRepository) SetAdmin(ctx context.Context, uid string, isAdmin bool) error {
	_, err := userDoc(r.client, uid).Update(ctx, []firestore.Update{{Path: "isAdmin", Value: isAdmin}})
	if err != nil {
		if isNotFound(err) {
			return errors.NotFound("User profile", err)
		}
		return storeError("Failed to update admin flag", err)
	}
	return nil
}

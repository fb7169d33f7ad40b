package firebase

import (
	"context"
	"time"

	"firebase.google.com/go/v4/auth"

	"gamerverse/internal/domain/entity"
)

// TokenVerifier is the part of *auth.Client the HTTP layer needs.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

type FirebaseAuthClient struct {
	client *auth.Client
}

func NewFirebaseAuthClient(client *auth.Client) *FirebaseAuthClient {
	return &FirebaseAuthClient{
		client: client,
	}
}

func (f *FirebaseAuthClient) VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error) {
	return f.client.VerifyIDToken(ctx, idToken)
}

func (f *FirebaseAuthClient) UpdateDisplayName(ctx context.Context, uid, displayName string) error {
	params := (&auth.UserToUpdate{}).DisplayName(displayName)

	_, err := f.client.UpdateUser(ctx, uid, params)
	return err
}

func (f *FirebaseAuthClient) LookupUIDByEmail(ctx context.Context, email string) (string, error) {
	user, err := f.client.GetUserByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return user.UID, nil
}

// IdentityFromToken copies the claims the storefront cares about.
func IdentityFromToken(token *auth.Token) *entity.Identity {
	id := &entity.Identity{
		UID:       token.UID,
		IssuedAt:  time.Unix(token.IssuedAt, 0),
		ExpiresAt: time.Unix(token.Expires, 0),
	}
	if v, ok := token.Claims["email"].(string); ok {
		id.Email = v
	}
	if v, ok := token.Claims["name"].(string); ok {
		id.DisplayName = v
	}
	if v, ok := token.Claims["picture"].(string); ok {
		id.PhotoURL = v
	}
	return id
}

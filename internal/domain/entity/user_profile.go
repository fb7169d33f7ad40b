package entity

import "time"

type UserProfile struct {
	UID         string `json:"uid" firestore:"uid"`
	Email       string `json:"email" firestore:"email"`
	DisplayName string `json:"display_name" firestore:"displayName"`
	Username    string `json:"username,omitempty" firestore:"username,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty" firestore:"phoneNumber,omitempty"`
	PhotoURL    string `json:"photo_url,omitempty" firestore:"photoURL,omitempty"`
	IsAdmin     bool   `json:"is_admin" firestore:"isAdmin"`
}

// NewUserProfile is the document written on first sign-in. It never grants
// admin.
func NewUserProfile(id *Identity) *UserProfile {
	return &UserProfile{
		UID:         id.UID,
		Email:       id.Email,
		DisplayName: id.DisplayName,
		PhotoURL:    id.PhotoURL,
		IsAdmin:     false,
	}
}

// ProfileUpdate holds the user-editable profile fields. A nil field is left
// untouched.
type ProfileUpdate struct {
	DisplayName *string
	Username    *string
	PhoneNumber *string
}

func (u ProfileUpdate) IsEmpty() bool {
	return u.DisplayName == nil && u.Username == nil && u.PhoneNumber == nil
}

// Identity is the verified caller, taken from a Firebase ID token.
type Identity struct {
	UID         string
	Email       string
	DisplayName string
	PhotoURL    string
	IssuedAt    time.Time
	ExpiresAt   time.Time
}

// SessionKey changes whenever the client refreshes its ID token.
func (i *Identity) SessionKey() string {
	return i.UID + ":" + i.IssuedAt.UTC().Format("20060102T150405")
}

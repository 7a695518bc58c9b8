package domain

import "time"

// User is an authenticated account created on first Google sign-in.
// ProviderID is the provider-specific subject id; it is stored but never
// serialized in API responses. IsAdmin is derived from the admin allow-list
// at creation time and is immutable through normal flows.
type User struct {
	ID          string    `bson:"id" json:"id"`
	Email       string    `bson:"email" json:"email"`
	Name        string    `bson:"name" json:"name"`
	AvatarURL   string    `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`
	Provider    string    `bson:"provider" json:"provider"`
	ProviderID  string    `bson:"provider_id" json:"-"`
	IsAdmin     bool      `bson:"is_admin" json:"is_admin"`
	ReviewCount int       `bson:"review_count" json:"review_count"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

// SessionUser is the typed session payload carried in the signed cookie.
type SessionUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Provider  string `json:"provider"`
	IsAdmin   bool   `json:"is_admin"`
}

// SessionUserFrom builds the session payload for a user.
func SessionUserFrom(u *User) *SessionUser {
	return &SessionUser{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
		Provider:  u.Provider,
		IsAdmin:   u.IsAdmin,
	}
}

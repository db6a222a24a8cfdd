package user

import "time"

// User is the durable local representation of an authenticated principal.
// Subject is the identity provider's stable subject identifier and serves as
// the primary key; rows are created lazily on first successful verification
// and never re-synced from the provider afterwards.
type User struct {
	Subject   string    `json:"subject"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateUserInput struct {
	Subject string
	Email   string
}

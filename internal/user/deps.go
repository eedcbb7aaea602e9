package user

import "context"

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

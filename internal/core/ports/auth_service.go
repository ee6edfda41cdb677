package ports

import (
	"context"

	"github.com/ineludible/trazos-api/internal/core/domain"
)

// RegisterInput carries the self-registration form.
type RegisterInput struct {
	Signature  string
	FullName   string
	Age        int
	BirthDay   int
	BirthMonth int
	Link       string
	Motivation string
}

// AuthService implements signature-based registration and login. The
// signature is the sole credential; there is no password.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	// Login looks the signature up and returns a signed token plus the user.
	Login(ctx context.Context, signature string) (string, *domain.User, error)
}

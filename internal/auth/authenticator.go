// Package auth provides account registration, credential verification and
// JWT session tokens for the API surface.
package auth

import (
	"context"

	"github.com/yuetlam/splitter/internal/models"
)

// Authenticator is the interface for authentication implementations, so the
// service layer stays independent of the credential scheme (password today,
// OAuth or passkeys later).
type Authenticator interface {
	// Register creates a new user account with the given email and
	// credential.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate verifies the user's credentials and returns the user if
	// successful.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks if the credential meets the
	// implementation's requirements.
	ValidateCredential(credential string) error
}

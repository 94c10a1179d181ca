package repository

import "context"

// SecretRepository provides access to the shared membership secret.
// Get must read the current value from storage; callers rely on rotation
// taking effect on the next pipeline run.
type SecretRepository interface {
	Get(ctx context.Context) (string, error)
	// Seed stores the secret only when none has been provisioned yet.
	Seed(ctx context.Context, secret string) error
}

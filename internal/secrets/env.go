package secrets

import (
	"context"
	"fmt"
	"os"
)

// EnvProvider reads the credential from an environment variable.
// Intended for local development; production uses ManagerProvider.
type EnvProvider struct {
	Var string
}

// GetCredential returns the variable's value, or ErrCredentialNotFound when
// it is unset or empty.
func (p EnvProvider) GetCredential(_ context.Context) (string, error) {
	if v := os.Getenv(p.Var); v != "" {
		return v, nil
	}
	return "", fmt.Errorf("%w: env %s is empty", ErrCredentialNotFound, p.Var)
}

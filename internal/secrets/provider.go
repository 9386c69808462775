// Package secrets provides credential retrieval for the catalog API key.
package secrets

import (
	"context"
	"errors"
)

// Sentinel errors for credential retrieval.
var (
	// ErrCredentialNotFound indicates no credential is stored under the
	// configured name.
	ErrCredentialNotFound = errors.New("credential not found")

	// ErrCredentialAccessDenied indicates the process is not allowed to read
	// the credential.
	ErrCredentialAccessDenied = errors.New("credential access denied")
)

// Provider retrieves the catalog API credential. Any failure is treated as
// fatal by the batch runner: no stage runs without a credential.
type Provider interface {
	GetCredential(ctx context.Context) (string, error)
}

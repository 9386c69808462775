package secrets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	"github.com/aws/smithy-go"
)

// secretsAPI is the subset of the Secrets Manager client we call.
type secretsAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// ManagerProvider reads the catalog API key from AWS Secrets Manager.
type ManagerProvider struct {
	client     secretsAPI
	secretName string
}

// NewManagerProvider creates a provider using the default AWS config chain.
func NewManagerProvider(ctx context.Context, secretName string) (*ManagerProvider, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &ManagerProvider{
		client:     secretsmanager.NewFromConfig(cfg),
		secretName: secretName,
	}, nil
}

// GetCredential retrieves the secret string.
func (p *ManagerProvider) GetCredential(ctx context.Context) (string, error) {
	out, err := p.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: &p.secretName,
	})
	if err != nil {
		return "", wrapSecretError(p.secretName, err)
	}
	if out.SecretString == nil || *out.SecretString == "" {
		return "", fmt.Errorf("%w: %s has no string value", ErrCredentialNotFound, p.secretName)
	}
	return *out.SecretString, nil
}

// wrapSecretError maps SDK error types onto the package sentinels.
func wrapSecretError(name string, err error) error {
	var notFound *types.ResourceNotFoundException
	if errors.As(err, &notFound) {
		return fmt.Errorf("%w: %s", ErrCredentialNotFound, name)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		if code == "AccessDeniedException" || strings.Contains(code, "UnauthorizedAccess") {
			return fmt.Errorf("%w: %s", ErrCredentialAccessDenied, name)
		}
	}

	return fmt.Errorf("get secret %s: %w", name, err)
}

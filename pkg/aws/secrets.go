package aws

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

type secretValueAPI interface {
	GetSecretValue(ctx context.Context, in *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// SecretsClient resolves startup secrets from Secrets Manager.
type SecretsClient struct {
	api secretValueAPI
}

func NewSecretsClient(cfg sdkaws.Config) *SecretsClient {
	return &SecretsClient{api: secretsmanager.NewFromConfig(cfg)}
}

// SessionSecret returns the signing key stored under secretID. A plain string secret is
// the key itself; a key/value secret must hold it under field.
func (s *SecretsClient) SessionSecret(ctx context.Context, secretID, field string) (string, error) {
	out, err := s.api.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{SecretId: sdkaws.String(secretID)})
	if err != nil {
		return "", fmt.Errorf("read secret %s: %w", secretID, err)
	}
	raw := strings.TrimSpace(sdkaws.ToString(out.SecretString))
	if raw == "" {
		return "", fmt.Errorf("secret %s has no string value", secretID)
	}
	if !strings.HasPrefix(raw, "{") {
		return raw, nil
	}

	var fields map[string]string
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return "", fmt.Errorf("secret %s: decode key/value: %w", secretID, err)
	}
	if v := fields[field]; v != "" {
		return v, nil
	}
	return "", fmt.Errorf("secret %s has no %q field", secretID, field)
}

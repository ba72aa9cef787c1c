package aws

import (
	"context"
	"errors"
	"testing"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSecrets struct {
	value *string
	err   error
	asked string
}

func (f *fakeSecrets) GetSecretValue(_ context.Context, in *secretsmanager.GetSecretValueInput, _ ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	f.asked = sdkaws.ToString(in.SecretId)
	if f.err != nil {
		return nil, f.err
	}
	return &secretsmanager.GetSecretValueOutput{SecretString: f.value}, nil
}

func TestSessionSecret(t *testing.T) {
	tests := []struct {
		name    string
		value   *string
		err     error
		want    string
		wantErr string
	}{
		{name: "plain string", value: sdkaws.String(" s3cret \n"), want: "s3cret"},
		{name: "key value", value: sdkaws.String(`{"SESSION_SECRET":"kv-secret","OTHER":"x"}`), want: "kv-secret"},
		{name: "key value without field", value: sdkaws.String(`{"OTHER":"x"}`), wantErr: `no "SESSION_SECRET" field`},
		{name: "empty", value: sdkaws.String(""), wantErr: "no string value"},
		{name: "binary only", value: nil, wantErr: "no string value"},
		{name: "api failure", err: errors.New("access denied"), wantErr: "access denied"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeSecrets{value: tt.value, err: tt.err}
			s := &SecretsClient{api: api}

			got, err := s.SessionSecret(context.Background(), "storefront/session", "SESSION_SECRET")
			assert.Equal(t, "storefront/session", api.asked)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

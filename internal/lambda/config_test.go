package lambda

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/christophergentle/weton-predictor/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSSM struct {
	values map[string]string
	err    error
	input  *ssm.GetParametersInput
}

func (f *fakeSSM) GetParameters(_ context.Context, in *ssm.GetParametersInput, _ ...func(*ssm.Options)) (*ssm.GetParametersOutput, error) {
	f.input = in
	if f.err != nil {
		return nil, f.err
	}

	out := &ssm.GetParametersOutput{}
	for _, name := range in.Names {
		if v, ok := f.values[name]; ok {
			out.Parameters = append(out.Parameters, types.Parameter{Name: aws.String(name), Value: aws.String(v)})
		} else {
			out.InvalidParameters = append(out.InvalidParameters, name)
		}
	}
	return out, nil
}

func TestLoadConfigDefaults(t *testing.T) {
	client := &fakeSSM{}
	cfg, err := (&SSMConfigLoader{client: client}).LoadConfig(context.Background())
	require.NoError(t, err)

	assert.Equal(t, config.Default(), cfg)
	assert.True(t, aws.ToBool(client.input.WithDecryption))
	assert.Len(t, client.input.Names, 7)
}

func TestLoadConfigOverrides(t *testing.T) {
	client := &fakeSSM{values: map[string]string{
		paramBackend:     config.BackendHuggingFace,
		paramModel:       "indobenchmark/indobert",
		paramToken:       "hf_secret",
		paramTimeoutSecs: "5",
		paramDefaultDate: "2000-02-29",
		paramLogLevel:    "debug",
	}}

	cfg, err := (&SSMConfigLoader{client: client}).LoadConfig(context.Background())
	require.NoError(t, err)

	assert.Equal(t, config.BackendHuggingFace, cfg.Classifier.Backend)
	assert.Equal(t, "indobenchmark/indobert", cfg.Classifier.Model)
	assert.Equal(t, "hf_secret", cfg.Classifier.Token)
	assert.Equal(t, config.Default().Classifier.Endpoint, cfg.Classifier.Endpoint)
	assert.Equal(t, 5*time.Second, cfg.Classifier.Timeout)
	assert.Equal(t, "2000-02-29", cfg.Server.DefaultDate)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadConfigInvalid(t *testing.T) {
	client := &fakeSSM{values: map[string]string{paramBackend: "openai"}}

	_, err := (&SSMConfigLoader{client: client}).LoadConfig(context.Background())

	var cfgErr *config.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, []string{"openai"}, cfgErr.Details)
}

func TestLoadConfigClientError(t *testing.T) {
	client := &fakeSSM{err: errors.New("access denied")}

	_, err := (&SSMConfigLoader{client: client}).LoadConfig(context.Background())
	assert.EqualError(t, err, "access denied")
}

func TestParseIntWithDefault(t *testing.T) {
	tests := []struct {
		value string
		want  int
	}{
		{"", 30},
		{"12", 12},
		{"abc", 30},
		{"0", 30},
		{"-4", 30},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, parseIntWithDefault(tt.value, 30), "value %q", tt.value)
	}
}

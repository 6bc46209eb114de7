package lambda

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/christophergentle/weton-predictor/internal/config"
)

const (
	paramBackend     = "/weton/classifier/backend"
	paramModel       = "/weton/classifier/model"
	paramEndpoint    = "/weton/classifier/endpoint"
	paramToken       = "/weton/classifier/token"
	paramTimeoutSecs = "/weton/classifier/timeout_seconds"
	paramDefaultDate = "/weton/settings/default_date"
	paramLogLevel    = "/weton/logging/level"
)

// ssmAPI is the subset of the SSM client used to load configuration.
type ssmAPI interface {
	GetParameters(ctx context.Context, params *ssm.GetParametersInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersOutput, error)
}

// SSMConfigLoader handles loading configuration from SSM Parameter Store
type SSMConfigLoader struct {
	client ssmAPI
}

// NewSSMConfigLoader creates a new SSM configuration loader
func NewSSMConfigLoader(ctx context.Context) (*SSMConfigLoader, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}

	return &SSMConfigLoader{
		client: ssm.NewFromConfig(cfg),
	}, nil
}

// LoadConfig loads configuration from SSM Parameter Store. Every parameter is
// optional; missing ones keep the value from config.Default.
func (s *SSMConfigLoader) LoadConfig(ctx context.Context) (*config.Config, error) {
	parameterNames := []string{
		paramBackend,
		paramModel,
		paramEndpoint,
		paramToken,
		paramTimeoutSecs,
		paramDefaultDate,
		paramLogLevel,
	}

	result, err := s.client.GetParameters(ctx, &ssm.GetParametersInput{
		Names:          parameterNames,
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}

	if len(result.InvalidParameters) > 0 {
		slog.Info("SSM parameters not set, using defaults", "parameters", result.InvalidParameters)
	}

	params := make(map[string]string)
	for _, param := range result.Parameters {
		if param.Name != nil && param.Value != nil {
			params[*param.Name] = *param.Value
		}
	}

	cfg := config.Default()
	setIfPresent(&cfg.Classifier.Backend, params[paramBackend])
	setIfPresent(&cfg.Classifier.Model, params[paramModel])
	setIfPresent(&cfg.Classifier.Endpoint, params[paramEndpoint])
	setIfPresent(&cfg.Classifier.Token, params[paramToken])
	setIfPresent(&cfg.Server.DefaultDate, params[paramDefaultDate])
	setIfPresent(&cfg.Logging.Level, params[paramLogLevel])
	cfg.Classifier.Timeout = time.Duration(parseIntWithDefault(params[paramTimeoutSecs], int(cfg.Classifier.Timeout/time.Second))) * time.Second

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setIfPresent(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

// parseIntWithDefault parses an integer with a default value
func parseIntWithDefault(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return defaultValue
	}

	return parsed
}

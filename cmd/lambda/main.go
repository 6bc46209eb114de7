package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	lambdapkg "github.com/christophergentle/weton-predictor/internal/lambda"
	"github.com/christophergentle/weton-predictor/internal/logging"
)

func main() {
	ctx := context.Background()

	// Load configuration from SSM Parameter Store
	configLoader, err := lambdapkg.NewSSMConfigLoader(ctx)
	if err != nil {
		log.Fatalf("Failed to create SSM config loader: %v", err)
	}

	cfg, err := configLoader.LoadConfig(ctx)
	if err != nil {
		log.Fatalf("Failed to load configuration from SSM: %v", err)
	}

	logging.InitLogger(cfg.Logging.Level, "json")

	handler := lambdapkg.NewWetonHandler(cfg)
	lambda.Start(handler.HandleRequest)
}

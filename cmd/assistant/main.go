package main

import (
	"context"

	"meety/cmd/internal/app"
	"meety/cmd/internal/config"
	"meety/cmd/internal/lexv2"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/labstack/gommon/log"
)

func main() {
	application, err := app.New(context.Background(), config.Load())
	if err != nil {
		log.Fatalf("failed to initialize assistant handler: %v", err)
	}

	lambda.Start(lexv2.Handler(application.Assistant))
}

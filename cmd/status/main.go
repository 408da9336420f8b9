package main

import (
	"context"

	"meety/cmd/internal/app"
	"meety/cmd/internal/config"
	"meety/cmd/internal/lambdahttp"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/labstack/gommon/log"
)

func main() {
	cfg := config.Load()
	application, err := app.New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("failed to initialize status handler: %v", err)
	}
	if cfg.OperatorSecret == "" {
		log.Warn("OPERATOR_JWT_SECRET is not set, status changes are not authenticated")
	}

	lambda.Start(lambdahttp.NewMeetingHandler(application.Meetings, cfg.OperatorSecret).UpdateStatus)
}

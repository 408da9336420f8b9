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
		log.Fatalf("failed to initialize pending handler: %v", err)
	}

	lambda.Start(lambdahttp.NewMeetingHandler(application.Meetings, cfg.OperatorSecret).ListPending)
}

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
	application, err := app.New(context.Background(), config.Load())
	if err != nil {
		log.Fatalf("failed to initialize chat handler: %v", err)
	}
	if application.Chat == nil {
		log.Fatal("chat handler needs BOT_ID")
	}

	lambda.Start(lambdahttp.NewChatHandler(application.Chat).Send)
}

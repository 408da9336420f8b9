package main

import (
	"meety/cmd/internal/lambdahttp"

	"github.com/aws/aws-lambda-go/lambda"
)

func main() {
	lambda.Start(lambdahttp.PreflightOnly)
}

// Package lambdahttp adapts the meeting and chat services to API Gateway
// HTTP API (payload v2) events.
package lambdahttp

import (
	"encoding/base64"
	"encoding/json"
	"maps"
	"net/http"

	"meety/cmd/internal/utils/apierror"

	"github.com/aws/aws-lambda-go/events"
	"github.com/labstack/gommon/log"
)

type (
	Request  = events.APIGatewayV2HTTPRequest
	Response = events.APIGatewayV2HTTPResponse
)

var corsHeaders = map[string]string{
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Headers": "Content-Type,Authorization,X-Amz-Date,X-Api-Key,X-Amz-Security-Token,Accept,Origin",
	"Access-Control-Allow-Methods": "OPTIONS,POST,GET",
	"Access-Control-Max-Age":       "300",
	"Content-Type":                 "application/json",
}

// Headers returns a fresh copy of the CORS headers every response carries.
func Headers() map[string]string {
	return maps.Clone(corsHeaders)
}

func IsPreflight(req Request) bool {
	return req.RequestContext.HTTP.Method == http.MethodOptions
}

// Preflight answers an OPTIONS request with the CORS headers and no body.
func Preflight() Response {
	return Response{StatusCode: http.StatusOK, Headers: Headers(), Body: ""}
}

func JSON(code int, body any) Response {
	raw, err := json.Marshal(body)
	if err != nil {
		log.Errorf("failed to encode response body: %v", err)
		return Error(apierror.InternalServerError)
	}
	return Response{StatusCode: code, Headers: Headers(), Body: string(raw)}
}

func Error(apierr apierror.ErrorResponse) Response {
	raw, _ := json.Marshal(map[string]string{"error": apierr.Error()})
	return Response{StatusCode: apierr.Code(), Headers: Headers(), Body: string(raw)}
}

func Raw(code int, contentType, body string) Response {
	headers := Headers()
	headers["Content-Type"] = contentType
	return Response{StatusCode: code, Headers: headers, Body: body}
}

func decodeBody(req Request, dst any) error {
	body := []byte(req.Body)
	if req.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			return err
		}
		body = decoded
	}
	return json.Unmarshal(body, dst)
}

// header looks a request header up case-insensitively. HTTP APIs lowercase
// header names but test events and other proxies may not.
func header(req Request, name string) string {
	if v, ok := req.Headers[name]; ok {
		return v
	}
	for k, v := range req.Headers {
		if http.CanonicalHeaderKey(k) == http.CanonicalHeaderKey(name) {
			return v
		}
	}
	return ""
}

package lambdahttp

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"meety/cmd/internal/domain/entity"
	"meety/cmd/internal/service"
	"meety/cmd/internal/utils/apierror"

	"github.com/aws/aws-lambda-go/events"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMeetings struct {
	approved []*entity.Meeting
	pending  []*entity.Meeting
	apierr   apierror.ErrorResponse

	gotRange  [2]string
	gotUpdate *service.StatusUpdateRequest
	operator  string
}

func (f *fakeMeetings) ListPending(context.Context) ([]*entity.Meeting, apierror.ErrorResponse) {
	return f.pending, f.apierr
}

func (f *fakeMeetings) ListApproved(_ context.Context, start, end string) ([]*entity.Meeting, apierror.ErrorResponse) {
	f.gotRange = [2]string{start, end}
	return f.approved, f.apierr
}

func (f *fakeMeetings) UpdateStatus(_ context.Context, req *service.StatusUpdateRequest, operator string) (*entity.Meeting, apierror.ErrorResponse) {
	f.gotUpdate = req
	f.operator = operator
	if f.apierr != nil {
		return nil, f.apierr
	}
	return &entity.Meeting{MeetingID: req.MeetingID, Status: entity.Status(req.NewStatus)}, nil
}

func request(method, body string) Request {
	req := events.APIGatewayV2HTTPRequest{Body: body}
	req.RequestContext.HTTP.Method = method
	return req
}

func assertCORS(t *testing.T, resp Response) {
	t.Helper()
	for k, v := range corsHeaders {
		if k == "Content-Type" {
			continue
		}
		assert.Equal(t, v, resp.Headers[k], k)
	}
}

func TestPreflightShortCircuits(t *testing.T) {
	svc := &fakeMeetings{apierr: apierror.InternalServerError}
	h := NewMeetingHandler(svc, "secret")
	chat := NewChatHandler(nil)
	ctx := context.Background()
	opts := request(http.MethodOptions, "")

	for name, handle := range map[string]func(context.Context, Request) (Response, error){
		"approved":  h.ListApproved,
		"pending":   h.ListPending,
		"status":    h.UpdateStatus,
		"chat":      chat.Send,
		"preflight": PreflightOnly,
	} {
		resp, err := handle(ctx, opts)
		require.NoError(t, err, name)
		assert.Equal(t, http.StatusOK, resp.StatusCode, name)
		assert.Empty(t, resp.Body, name)
		assert.Equal(t, "300", resp.Headers["Access-Control-Max-Age"], name)
		assertCORS(t, resp)
	}
	assert.Nil(t, svc.gotUpdate)
}

func TestListApproved(t *testing.T) {
	svc := &fakeMeetings{approved: []*entity.Meeting{{MeetingID: "a1", Date: "2025-03-10", StartTime: "09:00", EndTime: "10:00", Status: entity.StatusApproved}}}
	req := request(http.MethodGet, "")
	req.QueryStringParameters = map[string]string{"startDate": "2025-03-10", "endDate": "2025-03-12"}

	resp, err := NewMeetingHandler(svc, "").ListApproved(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, [2]string{"2025-03-10", "2025-03-12"}, svc.gotRange)
	assertCORS(t, resp)

	var got []entity.Meeting
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "a1", got[0].MeetingID)
}

func TestListApprovedAsCalendar(t *testing.T) {
	svc := &fakeMeetings{approved: []*entity.Meeting{{MeetingID: "a1", Date: "2025-03-10", StartTime: "09:00", EndTime: "10:00", Status: entity.StatusApproved}}}
	req := request(http.MethodGet, "")
	req.QueryStringParameters = map[string]string{"startDate": "2025-03-10", "endDate": "2025-03-12", "format": "ics"}

	h := NewMeetingHandler(svc, "")
	h.now = func() time.Time { return time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC) }
	resp, err := h.ListApproved(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/calendar; charset=utf-8", resp.Headers["Content-Type"])
	assert.Contains(t, resp.Body, "UID:a1@meety")
	assertCORS(t, resp)
}

func TestListErrorsAndEmpty(t *testing.T) {
	h := NewMeetingHandler(&fakeMeetings{apierr: apierror.NewMissingParamError("startDate")}, "")
	resp, err := h.ListApproved(context.Background(), request(http.MethodGet, ""))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, `{"error": "Missing required parameter: startDate"}`, resp.Body)
	assertCORS(t, resp)

	resp, err = NewMeetingHandler(&fakeMeetings{}, "").ListPending(context.Background(), request(http.MethodGet, ""))
	require.NoError(t, err)
	assert.Equal(t, "[]", resp.Body)
}

func TestUpdateStatus(t *testing.T) {
	svc := &fakeMeetings{}
	h := NewMeetingHandler(svc, "")

	resp, err := h.UpdateStatus(context.Background(), request(http.MethodPost, `{"meetingId": "m1", "newStatus": "approved"}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, &service.StatusUpdateRequest{MeetingID: "m1", NewStatus: "approved"}, svc.gotUpdate)
	assert.Empty(t, svc.operator)

	encoded := request(http.MethodPost, base64.StdEncoding.EncodeToString([]byte(`{"meetingId": "m2", "newStatus": "cancelled"}`)))
	encoded.IsBase64Encoded = true
	_, err = h.UpdateStatus(context.Background(), encoded)
	require.NoError(t, err)
	assert.Equal(t, "m2", svc.gotUpdate.MeetingID)

	resp, err = h.UpdateStatus(context.Background(), request(http.MethodPost, `{"meetingId":`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	svc.apierr = apierror.MeetingNotFoundError
	resp, err = h.UpdateStatus(context.Background(), request(http.MethodPost, `{"meetingId": "ghost", "newStatus": "approved"}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"error": "Meeting not found"}`, resp.Body)
}

func signed(t *testing.T, secret, sub string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   sub,
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	raw, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return raw
}

func TestUpdateStatusWithOperatorSecret(t *testing.T) {
	svc := &fakeMeetings{}
	h := NewMeetingHandler(svc, "s3cret")
	body := `{"meetingId": "m1", "newStatus": "approved"}`

	resp, err := h.UpdateStatus(context.Background(), request(http.MethodPost, body))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Nil(t, svc.gotUpdate)

	bad := request(http.MethodPost, body)
	bad.Headers = map[string]string{"authorization": "Bearer " + signed(t, "other", "ops", time.Now().Add(time.Hour))}
	resp, err = h.UpdateStatus(context.Background(), bad)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	good := request(http.MethodPost, body)
	good.Headers = map[string]string{"Authorization": "Bearer " + signed(t, "s3cret", "ops@example.com", time.Now().Add(time.Hour))}
	resp, err = h.UpdateStatus(context.Background(), good)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ops@example.com", svc.operator)
}

type fakeChat struct {
	got *service.ChatRequest
}

func (f *fakeChat) Send(_ context.Context, req *service.ChatRequest) (*service.ChatResponse, apierror.ErrorResponse) {
	f.got = req
	if strings.TrimSpace(req.Message) == "" {
		return nil, apierror.NewMissingParamError("message")
	}
	return &service.ChatResponse{Message: "echo: " + req.Message, DialogState: "ElicitIntent"}, nil
}

func TestChatSend(t *testing.T) {
	chat := &fakeChat{}
	h := NewChatHandler(chat)

	resp, err := h.Send(context.Background(), request(http.MethodPost, `{"userId": "u1", "message": "hello"}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "u1", chat.got.UserID)
	assert.JSONEq(t, `{"message": "echo: hello", "dialogState": "ElicitIntent", "sessionAttributes": null, "slots": null}`, resp.Body)

	resp, err = h.Send(context.Background(), request(http.MethodPost, `{"message": ""}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = h.Send(context.Background(), request(http.MethodPost, `not json`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assertCORS(t, resp)
}

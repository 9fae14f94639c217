package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	contractx "github.com/petersparlor/parlor-fulfillment/dialogue/contract"
	statex "github.com/petersparlor/parlor-fulfillment/dialogue/state"
)

type fakeService struct {
	resp contractx.WebhookResponse
	err  error
	reqs []contractx.WebhookRequest
}

func (f *fakeService) Handle(ctx context.Context, req contractx.WebhookRequest) (contractx.WebhookResponse, error) {
	f.reqs = append(f.reqs, req)
	if f.err != nil {
		return contractx.WebhookResponse{}, f.err
	}
	return f.resp, nil
}

func newTestServer(t *testing.T, svc TurnService) *Server {
	t.Helper()
	s, err := NewServer(svc, Config{Port: 8080, Mode: gin.TestMode})
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	return s
}

func post(t *testing.T, s *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/fulfillment", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	return rec
}

func webhookBody(intent string) string {
	return fmt.Sprintf(`{
		"session": "projects/parlor/agent/sessions/s1",
		"queryResult": {
			"intent": {"displayName": %q},
			"parameters": {"scoops": 2}
		}
	}`, intent)
}

func TestFulfillmentOK(t *testing.T) {
	t.Parallel()

	svc := &fakeService{resp: contractx.WebhookResponse{
		FulfillmentText: "Okay, you want 2 scoops!",
		OutputContexts: []statex.Context{
			{Name: "projects/parlor/agent/sessions/s1/contexts/awaiting_flavors", LifespanCount: 1},
		},
	}}
	s := newTestServer(t, svc)

	rec := post(t, s, webhookBody("TakeScoops"))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp contractx.WebhookResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.Contains(resp.FulfillmentText, "2 scoops") {
		t.Fatalf("fulfillmentText = %q", resp.FulfillmentText)
	}
	if len(resp.OutputContexts) != 1 {
		t.Fatalf("outputContexts = %+v", resp.OutputContexts)
	}

	if len(svc.reqs) != 1 {
		t.Fatalf("service called %d times, want 1", len(svc.reqs))
	}
	if got := svc.reqs[0].QueryResult.Intent.DisplayName; got != "TakeScoops" {
		t.Fatalf("forwarded intent = %q", got)
	}
	// JSON numbers arrive as floats; the dialogue layer owns the coercion.
	if got := svc.reqs[0].QueryResult.Parameters["scoops"]; got != float64(2) {
		t.Fatalf("forwarded scoops = %v (%T)", got, got)
	}
}

func TestFulfillmentUnknownIntentDefersToPlatform(t *testing.T) {
	t.Parallel()

	svc := &fakeService{err: fmt.Errorf("%w: %q", contractx.ErrUnknownIntent, "OrderPizza")}
	s := newTestServer(t, svc)

	rec := post(t, s, webhookBody("OrderPizza"))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp contractx.WebhookResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.FulfillmentText != "" || len(resp.OutputContexts) != 0 {
		t.Fatalf("expected empty fulfillment, got %+v", resp)
	}
}

func TestFulfillmentBadInput(t *testing.T) {
	t.Parallel()

	svc := &fakeService{err: fmt.Errorf("%w: awaiting_flavors", statex.ErrContextNotFound)}
	s := newTestServer(t, svc)

	rec := post(t, s, webhookBody("TakeFlavors"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestFulfillmentPersistenceFailure(t *testing.T) {
	t.Parallel()

	svc := &fakeService{err: errors.New("append order: connection refused")}
	s := newTestServer(t, svc)

	rec := post(t, s, webhookBody("PlaceOrder"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "connection refused") {
		t.Fatal("store internals leaked into the response body")
	}
}

func TestFulfillmentMalformedPayload(t *testing.T) {
	t.Parallel()

	svc := &fakeService{}
	s := newTestServer(t, svc)

	rec := post(t, s, `{"session": `)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if len(svc.reqs) != 0 {
		t.Fatal("service called with malformed payload")
	}
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, &fakeService{})
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

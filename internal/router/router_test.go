package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"gemini-chat-backend/internal/handlers"
	"gemini-chat-backend/internal/services"
)

type echoProvider struct {
	sent []string
	err  error
}

func (p *echoProvider) StartSession(ctx context.Context) (services.Session, error) {
	return p, nil
}

func (p *echoProvider) Send(ctx context.Context, text string) (string, error) {
	p.sent = append(p.sent, text)
	if p.err != nil {
		return "", p.err
	}
	return text, nil
}

func newTestRouter(p services.Provider) http.Handler {
	svc := services.NewChatService(p, time.Second, time.Minute)
	return New(handlers.NewChatHandler(svc, zap.NewNop()), []string{"http://localhost:3000"}, zap.NewNop())
}

func TestChatRoute_EchoRoundTrip(t *testing.T) {
	p := &echoProvider{}
	r := newTestRouter(p)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"hi","chat_history":[]}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var body struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body.Response != "hi" {
		t.Errorf("Expected 'hi', got %q", body.Response)
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Error("Expected X-Request-ID on response")
	}
}

func TestChatRoute_ReplaysUserHistory(t *testing.T) {
	p := &echoProvider{}
	r := newTestRouter(p)

	body := `{"message":"3","chat_history":[
		{"role":"user","content":"1"},
		{"role":"assistant","content":"ignored"},
		{"role":"user","content":"2"}]}`
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body)))

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}
	if strings.Join(p.sent, ",") != "1,2,3" {
		t.Errorf("Expected sends [1 2 3], got %v", p.sent)
	}
}

func TestChatRoute_ProviderErrorDetail(t *testing.T) {
	p := &echoProvider{err: errors.New("403 PERMISSION_DENIED")}
	r := newTestRouter(p)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"hi"}`)))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500, got %d", rr.Code)
	}
	var body map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body["detail"] != "403 PERMISSION_DENIED" {
		t.Errorf("Expected detail '403 PERMISSION_DENIED', got %v", body["detail"])
	}
	if _, ok := body["response"]; ok {
		t.Error("Expected no response field on failure")
	}
}

func TestChatRoute_CORS(t *testing.T) {
	r := newTestRouter(&echoProvider{})

	tests := []struct {
		origin  string
		allowed bool
	}{
		{"http://localhost:3000", true},
		{"http://example.com", false},
	}

	for _, tc := range tests {
		t.Run(tc.origin, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"hi"}`))
			req.Header.Set("Origin", tc.origin)
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			got := rr.Header().Get("Access-Control-Allow-Origin")
			if tc.allowed && got != tc.origin {
				t.Errorf("Expected Access-Control-Allow-Origin %q, got %q", tc.origin, got)
			}
			if !tc.allowed && got != "" {
				t.Errorf("Expected no CORS header, got %q", got)
			}
		})
	}
}

func TestChatRoute_MethodNotAllowed(t *testing.T) {
	r := newTestRouter(&echoProvider{})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/chat", nil))

	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405, got %d", rr.Code)
	}
}

func TestHealthRoute(t *testing.T) {
	r := newTestRouter(&echoProvider{})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rr.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rr.Code)
	}
}

package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/varaher/prana/internal/services"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	t.Setenv("OPENAI_KEY", "test-key")

	svcs, err := services.InitializeServices()
	if err != nil {
		t.Fatalf("Failed to initialize services: %v", err)
	}

	server := httptest.NewServer(setupRouter(svcs))
	t.Cleanup(server.Close)
	return server
}

func TestMainServer(t *testing.T) {
	server := newTestServer(t)

	t.Run("chat stream rejects missing messages", func(t *testing.T) {
		resp, err := http.Post(server.URL+"/v1/chat/stream", "application/json", strings.NewReader(`{
			"systemPrompt": "be concise"
		}`))
		if err != nil {
			t.Fatalf("Failed to make request: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, resp.StatusCode)
		}

		var body struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("Failed to decode error body: %v", err)
		}
		if body.Error != "Messages array is required" {
			t.Errorf("Expected 'Messages array is required', got %q", body.Error)
		}
	})

	t.Run("records endpoints unavailable without database", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/v1/medications/user/4060f843-7a50-4be2-a0a8-42e204c400d3")
		if err != nil {
			t.Fatalf("Failed to make request: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusServiceUnavailable {
			t.Errorf("Expected status code %d, got %d", http.StatusServiceUnavailable, resp.StatusCode)
		}
	})

	t.Run("reports unavailable without database", func(t *testing.T) {
		resp, err := http.Post(server.URL+"/v1/reports", "application/json", strings.NewReader(`{
			"user_id": "4060f843-7a50-4be2-a0a8-42e204c400d3"
		}`))
		if err != nil {
			t.Fatalf("Failed to make request: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusServiceUnavailable {
			t.Errorf("Expected status code %d, got %d", http.StatusServiceUnavailable, resp.StatusCode)
		}
	})

	t.Run("medication lookup unavailable without database", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/v1/medications/4060f843-7a50-4be2-a0a8-42e204c400d3")
		if err != nil {
			t.Fatalf("Failed to make request: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusServiceUnavailable {
			t.Errorf("Expected status code %d, got %d", http.StatusServiceUnavailable, resp.StatusCode)
		}
	})

	t.Run("reminders work without redis", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/v1/reminders/4060f843-7a50-4be2-a0a8-42e204c400d3")
		if err != nil {
			t.Fatalf("Failed to make request: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Errorf("Expected status code %d, got %d", http.StatusOK, resp.StatusCode)
		}
	})

	t.Run("invalid endpoint", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/invalid")
		if err != nil {
			t.Fatalf("Failed to make request: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("Expected status code %d, got %d", http.StatusNotFound, resp.StatusCode)
		}
	})
}

// Package testutil provides test helpers shared across the SDK's test
// suites, chiefly a mock Devigo API server with per-route call counting so
// interceptor behavior (exactly one refresh, exactly one retry) can be
// asserted precisely.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

// Default fixture values used by the mock API's auth endpoints.
const (
	DefaultUsername       = "admin"
	DefaultPassword       = "swordfish"
	DefaultAccessToken    = "access-token-1"
	DefaultRefreshToken   = "refresh-token-1"
	DefaultRefreshedToken = "access-token-2"
)

// MockAPI is an httptest-backed Devigo API with the auth endpoints wired
// up and room for per-test resource routes. Every request is counted by
// method and path.
//
// The zero-configuration behavior: DefaultUsername/DefaultPassword log in
// and yield DefaultAccessToken/DefaultRefreshToken; the refresh endpoint
// exchanges DefaultRefreshToken for DefaultRefreshedToken; the whoami
// endpoint accepts either access token as a bearer.
type MockAPI struct {
	Server *httptest.Server

	// Knobs tests flip before issuing requests.
	FailRefresh bool           // Refresh endpoint answers 401
	OmitTokens  bool           // Login answers with the profile only
	User        map[string]any // Profile returned by login and whoami

	router chi.Router

	mu    sync.Mutex
	calls map[string]int
}

// NewMockAPI starts a mock API server and registers cleanup with t.
func NewMockAPI(t *testing.T) *MockAPI {
	t.Helper()

	m := &MockAPI{
		calls: make(map[string]int),
		User: map[string]any{
			"id":       1,
			"username": DefaultUsername,
			"email":    "admin@devigo.example",
		},
	}

	r := chi.NewRouter()
	r.Use(m.countCalls)
	r.Post("/auth/admin/login/", m.handleLogin)
	r.Post("/auth/token/refresh/", m.handleRefresh)
	r.Get("/auth/admin/check/", m.handleWhoami)
	m.router = r

	m.Server = httptest.NewServer(r)
	t.Cleanup(m.Server.Close)
	return m
}

// URL returns the base URL of the mock server.
func (m *MockAPI) URL() string {
	return m.Server.URL
}

// Handle registers an additional route on the mock server. Registered
// handlers are counted like the built-in ones.
func (m *MockAPI) Handle(method, pattern string, handler http.HandlerFunc) {
	m.router.Method(method, pattern, handler)
}

// Calls returns how many requests hit the given method and exact path.
func (m *MockAPI) Calls(method, path string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method+" "+path]
}

// TotalCalls returns how many requests reached the server at all.
func (m *MockAPI) TotalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, n := range m.calls {
		total += n
	}
	return total
}

// BearerToken extracts the bearer token of a request, or "".
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return token
	}
	return ""
}

// WriteJSON writes a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func (m *MockAPI) countCalls(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.mu.Lock()
		m.calls[r.Method+" "+r.URL.Path]++
		m.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (m *MockAPI) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		WriteJSON(w, http.StatusBadRequest, map[string]string{"detail": "Malformed request body"})
		return
	}
	if creds.Username != DefaultUsername || creds.Password != DefaultPassword {
		WriteJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Invalid credentials"})
		return
	}

	if m.OmitTokens {
		WriteJSON(w, http.StatusOK, map[string]any{"user": m.User})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"access":  DefaultAccessToken,
		"refresh": DefaultRefreshToken,
		"user":    m.User,
	})
}

func (m *MockAPI) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Refresh string `json:"refresh"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Refresh != DefaultRefreshToken || m.FailRefresh {
		WriteJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Token is invalid or expired"})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"access": DefaultRefreshedToken})
}

func (m *MockAPI) handleWhoami(w http.ResponseWriter, r *http.Request) {
	token := BearerToken(r)
	if token != DefaultAccessToken && token != DefaultRefreshedToken {
		WriteJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Authentication credentials were not provided"})
		return
	}
	WriteJSON(w, http.StatusOK, m.User)
}

package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := New(srv.URL + "/")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return client
}

func TestNewRejectsInvalidBaseURL(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "   ", "ftp://example.com", "://bad"} {
		if _, err := New(raw); err == nil {
			t.Fatalf("New(%q) error = nil, want error", raw)
		}
	}
}

func TestLoginPostsCredentials(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != PathLogin {
			t.Errorf("request = %s %s, want POST %s", r.Method, r.URL.Path, PathLogin)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("content type = %q, want application/json", got)
		}
		var body LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body.Email != "jane@example.com" || body.Password != "secret1" {
			t.Errorf("body = %+v", body)
		}
		_ = json.NewEncoder(w).Encode(LoginResponse{Message: "Welcome back", Token: "tok-123"})
	})

	resp, err := client.Login(context.Background(), LoginRequest{Email: "jane@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if resp.Token != "tok-123" || resp.Message != "Welcome back" {
		t.Fatalf("Login() = %+v", resp)
	}
}

func TestSignupSendsNestedShape(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if got := body["user"]["first_name"]; got != "Jane" {
			t.Errorf("user.first_name = %v, want Jane", got)
		}
		industry, _ := body["company"]["industry"].(map[string]any)
		if industry["value"] != "Apps" || industry["label"] != "Apps" {
			t.Errorf("company.industry = %v", industry)
		}
		if body["company"]["early_pay_intent"] != true {
			t.Errorf("company.early_pay_intent = %v, want true", body["company"]["early_pay_intent"])
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"message":"Account created."}`))
	})

	resp, err := client.Signup(context.Background(), SignupRequest{
		User: SignupUser{FirstName: "Jane"},
		Company: SignupCompany{
			EarlyPayIntent: true,
			Industry:       ValueLabel{Value: "Apps", Label: "Apps"},
		},
	})
	if err != nil {
		t.Fatalf("Signup() error = %v", err)
	}
	if resp.Message != "Account created." {
		t.Fatalf("Signup().Message = %q", resp.Message)
	}
}

func TestUserSendsBearerToken(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("authorization = %q, want Bearer tok-123", got)
		}
		_, _ = w.Write([]byte(`{"user":{"first_name":"Jane","company":{"name":"ABC"}}}`))
	})

	raw, err := client.User(context.Background(), "tok-123")
	if err != nil {
		t.Fatalf("User() error = %v", err)
	}
	if !strings.Contains(string(raw), `"first_name":"Jane"`) {
		t.Fatalf("User() = %s", raw)
	}
}

func TestUserRequiresToken(t *testing.T) {
	t.Parallel()

	client, err := New("http://127.0.0.1:1")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	_, err = client.User(context.Background(), " ")
	if !IsUnauthorized(err) {
		t.Fatalf("User() error = %v, want unauthorized", err)
	}
}

func TestFailureMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{name: "message field", status: http.StatusUnauthorized, body: `{"message":"Invalid credentials"}`, want: "Invalid credentials"},
		{name: "error field", status: http.StatusBadRequest, body: `{"error":"Email taken"}`, want: "Email taken"},
		{name: "status text", status: http.StatusInternalServerError, body: `oops`, want: "Internal Server Error"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})
			_, err := client.Login(context.Background(), LoginRequest{})
			var apiErr *Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("Login() error = %v, want *Error", err)
			}
			if apiErr.StatusCode != tc.status {
				t.Fatalf("status = %d, want %d", apiErr.StatusCode, tc.status)
			}
			if got := Message(err); got != tc.want {
				t.Fatalf("Message() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestNetworkFailureMessage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client, err := New(url)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	_, err = client.Login(context.Background(), LoginRequest{})
	if got := Message(err); got != "Network Error" {
		t.Fatalf("Message() = %q, want %q", got, "Network Error")
	}
}

func TestMessageForForeignErrors(t *testing.T) {
	t.Parallel()

	if got := Message(nil); got != "" {
		t.Fatalf("Message(nil) = %q, want empty", got)
	}
	if got := Message(errors.New("boom")); got != "Network Error" {
		t.Fatalf("Message(foreign) = %q, want Network Error", got)
	}
}

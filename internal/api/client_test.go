package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyara/voyara-client/internal/models"
)

type staticTokenSource struct {
	token string
	err   error
}

func (s staticTokenSource) Token() (string, error) { return s.token, s.err }

type staticUserSource struct {
	user models.User
	err  error
}

func (s staticUserSource) User() (models.User, error) { return s.user, s.err }

func TestBearerCredentials_SetsAuthorizationHeader(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL}, BearerCredentials{Source: staticTokenSource{token: "tok-123"}}, nil)
	require.NoError(t, client.Get(context.Background(), "/ping", nil))
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestIdentityHeaderCredentials_SetsUserHeaders(t *testing.T) {
	var gotID, gotEmail string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = r.Header.Get("X-User-ID")
		gotEmail = r.Header.Get("X-User-Email")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	creds := IdentityHeaderCredentials{Source: staticUserSource{
		user: models.User{ID: "user-1", Email: "sam@example.com"},
	}}
	client := New(Config{BaseURL: server.URL}, creds, nil)
	require.NoError(t, client.Get(context.Background(), "/ping", nil))
	assert.Equal(t, "user-1", gotID)
	assert.Equal(t, "sam@example.com", gotEmail)
}

func TestMissingCredentialsFailBeforeSending(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer server.Close()

	tests := []struct {
		name  string
		creds Credentials
	}{
		{"no token stored", BearerCredentials{Source: staticTokenSource{err: errors.New("not logged in")}}},
		{"no user stored", IdentityHeaderCredentials{Source: staticUserSource{err: errors.New("not logged in")}}},
		{"user without email", IdentityHeaderCredentials{Source: staticUserSource{user: models.User{ID: "user-1"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := New(Config{BaseURL: server.URL}, tt.creds, nil)
			err := client.Get(context.Background(), "/ping", nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "authentication failed")
		})
	}
	assert.Zero(t, hits, "credential failures must be synchronous, before any request")
}

func TestWithCredentials_DoesNotMutateOriginal(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	original := New(Config{BaseURL: server.URL}, BearerCredentials{Source: staticTokenSource{token: "tok-123"}}, nil)
	public := original.WithCredentials(AnonymousCredentials{})

	require.NoError(t, public.Get(context.Background(), "/ping", nil))
	assert.Empty(t, gotAuth)

	require.NoError(t, original.Get(context.Background(), "/ping", nil))
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestDo_DecodesErrorEnvelopes(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		expected string
	}{
		{"error field", http.StatusUnauthorized, `{"error":"Unauthorized"}`, "Unauthorized"},
		{"message field", http.StatusBadRequest, `{"message":"Schedule cannot be started"}`, "Schedule cannot be started"},
		{"error wins over message", http.StatusBadRequest, `{"error":"first","message":"second"}`, "first"},
		{"non-json body", http.StatusBadGateway, `upstream exploded`, genericErrorMessage},
		{"empty body", http.StatusInternalServerError, ``, genericErrorMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := New(Config{BaseURL: server.URL}, nil, nil)
			err := client.Get(context.Background(), "/x", nil)
			require.Error(t, err)

			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.expected, apiErr.Message)
			assert.Equal(t, tt.expected, UserMessage(err))
		})
	}
}

func TestUserMessage_NonAPIError(t *testing.T) {
	assert.Equal(t, genericErrorMessage, UserMessage(errors.New("dial tcp: refused")))
}

func TestIsNotFoundAndIsUnauthorized(t *testing.T) {
	notFound := newError(http.StatusNotFound, nil)
	unauthorized := newError(http.StatusUnauthorized, nil)

	assert.True(t, IsNotFound(notFound))
	assert.False(t, IsNotFound(unauthorized))
	assert.True(t, IsUnauthorized(unauthorized))
	assert.False(t, IsUnauthorized(errors.New("plain")))
}

func TestDo_SendsJSONBodyAndDecodesResponse(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var in payload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		_ = json.NewEncoder(w).Encode(map[string]string{"name": in.Name + "!"})
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL, UserAgent: "voyara-client/1.0"}, nil, nil)
	var out payload
	require.NoError(t, client.Post(context.Background(), "/echo", payload{Name: "hi"}, &out))
	assert.Equal(t, "hi!", out.Name)
}

func TestDo_NilOutDiscardsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"whatever": true}`))
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL}, nil, nil)
	assert.NoError(t, client.Get(context.Background(), "/x", nil))
}

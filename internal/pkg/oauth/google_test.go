package oauth

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestGenerateState(t *testing.T) {
	svc := NewGoogleService("client-1", "secret", "http://cb", []string{"email"})

	a := svc.GenerateState("agent-1")
	b := svc.GenerateState("agent-1")
	require.NotEmpty(t, a)
	assert.NotEqual(t, a, b)

	// The suffix digests the user agent, so it is stable per agent and
	// never contains the raw agent string.
	aParts := strings.Split(a, ".")
	bParts := strings.Split(b, ".")
	require.Len(t, aParts, 2)
	assert.Equal(t, aParts[1], bParts[1])
	assert.NotContains(t, a, "agent-1")

	other := strings.Split(svc.GenerateState("agent-2"), ".")
	assert.NotEqual(t, aParts[1], other[1])
}

func TestAuthURLCarriesState(t *testing.T) {
	svc := NewGoogleService("client-1", "secret", "http://cb", []string{"email"})

	u, err := url.Parse(svc.AuthURL("state-123"))
	require.NoError(t, err)

	q := u.Query()
	assert.Equal(t, "state-123", q.Get("state"))
	assert.Equal(t, "client-1", q.Get("client_id"))
	assert.Equal(t, "http://cb", q.Get("redirect_uri"))
}

func TestProfileDecodesUserinfo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"g-1","email":"ayu@example.com","verified_email":true,"name":"Ayu Lestari"}`)
	}))
	defer server.Close()

	svc := NewGoogleService("client-1", "secret", "http://cb", nil).(*googleService)
	svc.userinfoURL = server.URL

	token := &oauth2.Token{AccessToken: "token-1", Expiry: time.Now().Add(time.Hour)}
	p, err := svc.Profile(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, "g-1", p.GoogleID)
	assert.Equal(t, "ayu@example.com", p.Email)
	assert.True(t, p.EmailVerified)
	assert.Equal(t, "Ayu Lestari", p.Name)
}

func TestProfileRejectsNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	svc := NewGoogleService("client-1", "secret", "http://cb", nil).(*googleService)
	svc.userinfoURL = server.URL

	token := &oauth2.Token{AccessToken: "token-1", Expiry: time.Now().Add(time.Hour)}
	_, err := svc.Profile(context.Background(), token)
	assert.Error(t, err)
}

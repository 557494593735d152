package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokenInfoServer(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("id_token") {
		case "good":
			json.NewEncoder(w).Encode(map[string]string{
				"aud":            "client-1",
				"email":          "ann@example.com",
				"email_verified": "true",
				"name":           "Ann Lee",
				"picture":        "https://lh3.googleusercontent.com/a/photo=s96-c",
			})
		case "unverified":
			json.NewEncoder(w).Encode(map[string]string{
				"aud":            "client-1",
				"email":          "ann@example.com",
				"email_verified": "false",
			})
		default:
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": "invalid_token"})
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGoogleVerifier(t *testing.T) {
	srv := newTokenInfoServer(t)
	ctx := context.Background()

	v := NewGoogleVerifier(srv.URL, "client-1")
	defer v.Close()

	profile, err := v.Verify(ctx, "good")
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", profile.Email)
	assert.Equal(t, "Ann Lee", profile.Name)

	_, err = v.Verify(ctx, "unverified")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = v.Verify(ctx, "garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGoogleVerifierAudience(t *testing.T) {
	srv := newTokenInfoServer(t)

	v := NewGoogleVerifier(srv.URL, "someone-else")
	defer v.Close()

	_, err := v.Verify(context.Background(), "good")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"resty.dev/v3"
)

const DefaultGoogleEndpoint = "https://oauth2.googleapis.com/tokeninfo"

var ErrInvalidToken = errors.New("google token is invalid")

type GoogleProfile struct {
	Email   string
	Name    string
	Picture string
}

type tokenInfo struct {
	Audience      string `json:"aud"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// GoogleVerifier checks Google ID tokens against the token-info endpoint.
type GoogleVerifier struct {
	client   *resty.Client
	endpoint string
	clientID string
}

// NewGoogleVerifier verifies tokens at endpoint. An empty clientID accepts any audience.
func NewGoogleVerifier(endpoint string, clientID string) *GoogleVerifier {
	if endpoint == "" {
		endpoint = DefaultGoogleEndpoint
	}

	return &GoogleVerifier{
		client:   resty.New().SetTimeout(5 * time.Second),
		endpoint: endpoint,
		clientID: clientID,
	}
}

func (v *GoogleVerifier) Verify(ctx context.Context, idToken string) (*GoogleProfile, error) {
	var info tokenInfo
	res, err := v.client.R().
		WithContext(ctx).
		SetQueryParam("id_token", idToken).
		SetResult(&info).
		Get(v.endpoint)
	if err != nil {
		return nil, fmt.Errorf("google token-info request: %w", err)
	}
	if res.IsError() {
		return nil, ErrInvalidToken
	}

	if v.clientID != "" && info.Audience != v.clientID {
		return nil, ErrInvalidToken
	}
	if info.Email == "" || info.EmailVerified != "true" {
		return nil, ErrInvalidToken
	}

	return &GoogleProfile{
		Email:   info.Email,
		Name:    info.Name,
		Picture: info.Picture,
	}, nil
}

func (v *GoogleVerifier) Close() error {
	return v.client.Close()
}

package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/BloggingApp/blog-service/internal/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignUpValidation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name  string
		input dto.SignUpRequest
		want  error
	}{
		{"missing fullname", dto.SignUpRequest{Email: "a@b.com", Password: "secret"}, ErrFullnameRequired},
		{"short fullname", dto.SignUpRequest{Fullname: "Jo", Email: "a@b.com", Password: "secret"}, ErrFullnameTooShort},
		{"missing email", dto.SignUpRequest{Fullname: "Jordan Lee", Password: "secret1"}, ErrEmailRequired},
		{"invalid email", dto.SignUpRequest{Fullname: "Jordan Lee", Email: "bad-email", Password: "secret1"}, ErrEmailInvalid},
		{"email without tld", dto.SignUpRequest{Fullname: "Jordan Lee", Email: "jordan@localhost", Password: "secret1"}, ErrEmailInvalid},
		{"two at signs", dto.SignUpRequest{Fullname: "Jordan Lee", Email: "a@b@c.com", Password: "secret1"}, ErrEmailInvalid},
		{"space in email", dto.SignUpRequest{Fullname: "Jordan Lee", Email: "jo rdan@x.com", Password: "secret1"}, ErrEmailInvalid},
		{"missing password", dto.SignUpRequest{Fullname: "Jordan Lee", Email: "a@b.com"}, ErrPasswordRequired},
		{"short password", dto.SignUpRequest{Fullname: "Jordan Lee", Email: "a@b.com", Password: "abc"}, ErrPasswordTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Auth.SignUp(f.ctx, tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestValidEmail(t *testing.T) {
	accepted := []string{
		"jordan@example.com",
		"a..b@c.com",
		"john.@x.com",
		".john@x.com",
		"a@x.com.",
		"jo,e@x.com",
		"a@b..com",
	}
	for _, email := range accepted {
		assert.True(t, validEmail(email), email)
	}

	rejected := []string{"", "bad-email", "jordan@localhost", "@x.com", "a@.com ", "a@b@c.com", "jo rdan@x.com"}
	for _, email := range rejected {
		assert.False(t, validEmail(email), email)
	}
}

func TestSignUpAndSignIn(t *testing.T) {
	f := newFixture(t)

	res, err := f.svc.Auth.SignUp(f.ctx, dto.SignUpRequest{Fullname: "Jordan Lee", Email: "Jordan@Example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.Equal(t, "jordan", res.Username)
	assert.Equal(t, "Jordan Lee", res.Fullname)
	assert.True(t, strings.HasPrefix(res.ProfileImg, "https://api.dicebear.com/"))

	_, err = f.svc.Auth.SignUp(f.ctx, dto.SignUpRequest{Fullname: "Someone Else", Email: "jordan@example.com", Password: "secret2"})
	assert.ErrorIs(t, err, ErrEmailExists)

	_, err = f.svc.Auth.SignIn(f.ctx, dto.SignInRequest{Email: "nobody@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrEmailNotFound)

	_, err = f.svc.Auth.SignIn(f.ctx, dto.SignInRequest{Email: "jordan@example.com", Password: "wrong-pass"})
	assert.ErrorIs(t, err, ErrIncorrectPassword)

	signedIn, err := f.svc.Auth.SignIn(f.ctx, dto.SignInRequest{Email: "JORDAN@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "jordan", signedIn.Username)

	id, err := f.svc.Auth.VerifyAccessToken(signedIn.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "jordan@example.com", f.user(t, id).PersonalInfo.Email)
}

func TestSignUpDerivesUniqueUsernames(t *testing.T) {
	f := newFixture(t)

	usernames := make(map[string]struct{})
	for _, email := range []string{"sam@one.com", "sam@two.com", "sam@three.com"} {
		res, err := f.svc.Auth.SignUp(f.ctx, dto.SignUpRequest{Fullname: "Sam Smith", Email: email, Password: "secret1"})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(res.Username, "sam"))
		usernames[res.Username] = struct{}{}
	}

	assert.Len(t, usernames, 3)
	assert.Contains(t, usernames, "sam")
}

func TestGoogleAuth(t *testing.T) {
	f := newFixture(t)
	f.google.profile = &identity.GoogleProfile{
		Email:   "Casey@Gmail.com",
		Name:    "Casey Doe",
		Picture: "https://lh3.googleusercontent.com/a/photo=s96-c",
	}

	first, err := f.svc.Auth.GoogleAuth(f.ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, "casey", first.Username)
	assert.Equal(t, "Casey Doe", first.Fullname)
	assert.Equal(t, "https://lh3.googleusercontent.com/a/photo=s384-c", first.ProfileImg)

	again, err := f.svc.Auth.GoogleAuth(f.ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, first.Username, again.Username)

	_, err = f.svc.Auth.SignIn(f.ctx, dto.SignInRequest{Email: "casey@gmail.com", Password: "anything"})
	assert.ErrorIs(t, err, ErrGoogleAccount)

	id, err := f.svc.Auth.VerifyAccessToken(first.AccessToken)
	require.NoError(t, err)
	err = f.svc.Auth.ChangePassword(f.ctx, id, dto.ChangePasswordRequest{CurrentPassword: "x", NewPassword: "secret9"})
	assert.ErrorIs(t, err, ErrGooglePasswordChange)

	f.signUp(t, "Robin Roe", "robin@gmail.com")
	f.google.profile = &identity.GoogleProfile{Email: "robin@gmail.com", Name: "Robin Roe"}
	_, err = f.svc.Auth.GoogleAuth(f.ctx, "token")
	assert.ErrorIs(t, err, ErrNotGoogleAccount)

	f.google.err = errors.New("token expired")
	_, err = f.svc.Auth.GoogleAuth(f.ctx, "token")
	assert.ErrorIs(t, err, ErrGoogleAuthFailed)
}

func TestChangePassword(t *testing.T) {
	f := newFixture(t)
	id := f.signUp(t, "Jordan Lee", "jordan@example.com")

	err := f.svc.Auth.ChangePassword(f.ctx, id, dto.ChangePasswordRequest{CurrentPassword: "secret1", NewPassword: "abc"})
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	err = f.svc.Auth.ChangePassword(f.ctx, id, dto.ChangePasswordRequest{CurrentPassword: "wrong-pass", NewPassword: "secret2"})
	assert.ErrorIs(t, err, ErrIncorrectCurrentPassword)

	require.NoError(t, f.svc.Auth.ChangePassword(f.ctx, id, dto.ChangePasswordRequest{CurrentPassword: "secret1", NewPassword: "secret2"}))

	_, err = f.svc.Auth.SignIn(f.ctx, dto.SignInRequest{Email: "jordan@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrIncorrectPassword)

	_, err = f.svc.Auth.SignIn(f.ctx, dto.SignInRequest{Email: "jordan@example.com", Password: "secret2"})
	assert.NoError(t, err)
}

func TestVerifyAccessToken(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Auth.VerifyAccessToken("")
	assert.ErrorIs(t, err, ErrNoAccessToken)

	_, err = f.svc.Auth.VerifyAccessToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidAccessToken)
}

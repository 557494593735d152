package service

import (
	"testing"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/repository/redisrepo"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateProfileValidation(t *testing.T) {
	f := newFixture(t)
	userID := f.signUp(t, "Jordan Lee", "jordan@example.com")
	f.signUp(t, "Robin Roe", "robin@example.com")

	long := make([]byte, MAX_BIO_LENGTH+1)
	for i := range long {
		long[i] = 'b'
	}

	tests := []struct {
		name    string
		input   dto.UpdateProfileRequest
		wantErr error
		wantMsg string
	}{
		{name: "short username", input: dto.UpdateProfileRequest{Username: "jo"}, wantErr: ErrUsernameTooShort},
		{name: "long bio", input: dto.UpdateProfileRequest{Username: "jordan", Bio: string(long)}, wantErr: ErrBioTooLong},
		{name: "taken username", input: dto.UpdateProfileRequest{Username: "robin"}, wantErr: ErrUsernameTaken},
		{
			name:    "wrong platform host",
			input:   dto.UpdateProfileRequest{Username: "jordan", SocialLinks: model.SocialLinks{Youtube: "https://vimeo.com/jordan"}},
			wantMsg: "youtube link is invalid. You must enter a full link",
		},
		{
			name:    "not a full link",
			input:   dto.UpdateProfileRequest{Username: "jordan", SocialLinks: model.SocialLinks{Github: "github.com/jordan"}},
			wantMsg: "github link is invalid. You must enter a full link",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.User.UpdateProfile(f.ctx, userID, tt.input)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			var serviceErr *Error
			require.ErrorAs(t, err, &serviceErr)
			assert.Equal(t, KindInvalid, serviceErr.Kind)
			assert.Equal(t, tt.wantMsg, serviceErr.Message)
		})
	}
}

func TestUpdateProfile(t *testing.T) {
	f := newFixture(t)
	userID := f.signUp(t, "Jordan Lee", "jordan@example.com")

	cached, err := f.svc.UserCache.FindByID(f.ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "jordan", cached.Username)
	assert.True(t, f.redis.Exists(redisrepo.UserCacheKey(userID.String())))

	username, err := f.svc.User.UpdateProfile(f.ctx, userID, dto.UpdateProfileRequest{
		Username: " jordan_lee ",
		Bio:      "Writes about Go.",
		SocialLinks: model.SocialLinks{
			Github:  "https://github.com/jordan",
			Website: "https://jordan.dev",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "jordan_lee", username)
	assert.False(t, f.redis.Exists(redisrepo.UserCacheKey(userID.String())))

	profile, err := f.svc.User.FindProfile(f.ctx, "jordan_lee")
	require.NoError(t, err)
	assert.Equal(t, "Writes about Go.", profile.PersonalInfo.Bio)
	assert.Equal(t, "https://github.com/jordan", profile.SocialLinks.Github)

	img, err := f.svc.User.UpdateProfileImg(f.ctx, userID, "https://bucket.example.com/me.jpeg")
	require.NoError(t, err)
	assert.Equal(t, "https://bucket.example.com/me.jpeg", img)

	cached, err = f.svc.UserCache.FindByID(f.ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "jordan_lee", cached.Username)
	assert.Equal(t, img, cached.ProfileImg)

	_, err = f.svc.User.FindProfile(f.ctx, "jordan")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSearchUsers(t *testing.T) {
	f := newFixture(t)
	f.signUp(t, "Jordan Lee", "jordan@example.com")
	f.signUp(t, "Jordana Cruz", "jordana@example.com")
	f.signUp(t, "Robin Roe", "robin@example.com")

	users, err := f.svc.User.Search(f.ctx, "jord")
	require.NoError(t, err)
	require.Len(t, users, 2)

	usernames := []string{users[0].PersonalInfo.Username, users[1].PersonalInfo.Username}
	assert.ElementsMatch(t, []string{"jordan", "jordana"}, usernames)

	empty, err := f.svc.User.Search(f.ctx, "  ")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestUserCacheFindMany(t *testing.T) {
	f := newFixture(t)
	jordan := f.signUp(t, "Jordan Lee", "jordan@example.com")
	robin := f.signUp(t, "Robin Roe", "robin@example.com")

	_, err := f.svc.UserCache.FindByID(f.ctx, jordan)
	require.NoError(t, err)

	users, err := f.svc.UserCache.FindMany(f.ctx, []uuid.UUID{jordan, robin, jordan, uuid.New()})
	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, "robin", users[robin].Username)
	assert.True(t, f.redis.Exists(redisrepo.UserCacheKey(robin.String())))

	_, err = f.svc.UserCache.FindByID(f.ctx, uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUploadURL(t *testing.T) {
	f := newFixture(t)

	url, err := f.svc.Upload.UploadURL(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, "https://bucket.example.com/upload", url)
}

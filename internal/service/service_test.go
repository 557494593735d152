package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/BloggingApp/blog-service/internal/config"
	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/BloggingApp/blog-service/internal/identity"
	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/repository"
	"github.com/BloggingApp/blog-service/internal/repository/memory"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingPublisher struct {
	mu   sync.Mutex
	msgs []dto.MQNotificationCreatedMsg
}

func (p *recordingPublisher) PublishJSON(ctx context.Context, queue string, v any) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if msg, ok := v.(dto.MQNotificationCreatedMsg); ok {
		p.msgs = append(p.msgs, msg)
	}
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	types := make([]string, 0, len(p.msgs))
	for _, msg := range p.msgs {
		types = append(types, msg.Type)
	}
	return types
}

type fakeGoogle struct {
	profile *identity.GoogleProfile
	err     error
}

func (g *fakeGoogle) Verify(ctx context.Context, idToken string) (*identity.GoogleProfile, error) {
	if g.err != nil {
		return nil, g.err
	}
	return g.profile, nil
}

type fakePresigner struct {
	url string
}

func (p fakePresigner) UploadURL(ctx context.Context) (string, error) {
	return p.url, nil
}

type fixture struct {
	ctx       context.Context
	svc       *Service
	repo      *repository.Repository
	publisher *recordingPublisher
	google    *fakeGoogle
	redis     *miniredis.Miniredis
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	repo := repository.New(memory.New(), rdb)
	publisher := &recordingPublisher{}
	google := &fakeGoogle{}

	svc := New(zap.NewNop(), repo, publisher, Options{
		Auth:      config.AuthConfig{AccessSecret: []byte("test-secret")},
		Google:    google,
		Presigner: fakePresigner{url: "https://bucket.example.com/upload"},
	})

	return &fixture{
		ctx:       context.Background(),
		svc:       svc,
		repo:      repo,
		publisher: publisher,
		google:    google,
		redis:     mr,
	}
}

// signUp registers a user and returns its id.
func (f *fixture) signUp(t *testing.T, fullname string, email string) uuid.UUID {
	t.Helper()

	res, err := f.svc.Auth.SignUp(f.ctx, dto.SignUpRequest{Fullname: fullname, Email: email, Password: "secret1"})
	require.NoError(t, err)

	id, err := f.svc.Auth.VerifyAccessToken(res.AccessToken)
	require.NoError(t, err)
	return id
}

func publishRequest(title string, tags ...string) dto.CreatePostRequest {
	if len(tags) == 0 {
		tags = []string{"go"}
	}
	return dto.CreatePostRequest{
		Title:  title,
		Des:    "about " + title,
		Banner: "https://bucket.example.com/banner.jpeg",
		Tags:   tags,
		Content: model.Content{Blocks: []model.Block{
			{Type: "paragraph", Data: json.RawMessage(`{"text":"hello"}`)},
		}},
	}
}

func (f *fixture) publish(t *testing.T, authorID uuid.UUID, title string, tags ...string) *model.Post {
	t.Helper()

	blogID, err := f.svc.Post.Save(f.ctx, authorID, publishRequest(title, tags...))
	require.NoError(t, err)
	return f.post(t, blogID)
}

func (f *fixture) post(t *testing.T, blogID string) *model.Post {
	t.Helper()

	post, err := f.repo.Store.Post.FindByBlogID(f.ctx, blogID)
	require.NoError(t, err)
	return post
}

func (f *fixture) user(t *testing.T, id uuid.UUID) *model.User {
	t.Helper()

	user, err := f.repo.Store.User.FindByID(f.ctx, id)
	require.NoError(t, err)
	return user
}

// Package client is a Go client for the blog service HTTP API.
package client

import (
	"context"
	"fmt"
	"time"

	"github.com/BloggingApp/blog-service/pkg/pagination"
	"resty.dev/v3"
)

// APIError is a non-2xx answer from the service.
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"error"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("blog service: %d %s", e.Status, e.Message)
}

type Client struct {
	client *resty.Client
}

func New(baseURL string) *Client {
	return &Client{
		client: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(10 * time.Second),
	}
}

func (c *Client) Close() error {
	return c.client.Close()
}

func (c *Client) r(ctx context.Context) *resty.Request {
	return c.client.R().WithContext(ctx).SetError(&APIError{})
}

// post sends body to path and decodes the answer into result.
func post[T any](r *resty.Request, path string, body any) (*T, error) {
	var result T
	res, err := r.SetBody(body).SetResult(&result).Post(path)
	if err != nil {
		return nil, err
	}
	if err := apiError(res); err != nil {
		return nil, err
	}
	return &result, nil
}

func get[T any](r *resty.Request, path string) (*T, error) {
	var result T
	res, err := r.SetResult(&result).Get(path)
	if err != nil {
		return nil, err
	}
	if err := apiError(res); err != nil {
		return nil, err
	}
	return &result, nil
}

func apiError(res *resty.Response) error {
	if !res.IsError() {
		return nil
	}

	apiErr, ok := res.Error().(*APIError)
	if !ok || apiErr.Message == "" {
		apiErr = &APIError{Message: res.String()}
	}
	apiErr.Status = res.StatusCode()
	return apiErr
}

func (c *Client) SignUp(ctx context.Context, fullname string, email string, password string) (*Session, error) {
	auth, err := post[Auth](c.r(ctx), "/signup", map[string]string{
		"fullname": fullname,
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	return c.session(auth), nil
}

func (c *Client) SignIn(ctx context.Context, email string, password string) (*Session, error) {
	auth, err := post[Auth](c.r(ctx), "/signin", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	return c.session(auth), nil
}

// GoogleAuth exchanges a Google ID token for a session.
func (c *Client) GoogleAuth(ctx context.Context, idToken string) (*Session, error) {
	auth, err := post[Auth](c.r(ctx), "/google-auth", map[string]string{"access_token": idToken})
	if err != nil {
		return nil, err
	}
	return c.session(auth), nil
}

func (c *Client) session(auth *Auth) *Session {
	return &Session{client: c, Auth: *auth}
}

func (c *Client) Blog(ctx context.Context, blogID string) (*Blog, error) {
	return getBlog(c.r(ctx), blogID, false, "")
}

func (c *Client) LatestBlogs(ctx context.Context, state *pagination.State[Blog]) (*pagination.State[Blog], error) {
	page := state.NextPage()
	blogs, err := post[blogsResponse](c.r(ctx), "/latest-blogs", map[string]int{"page": page})
	if err != nil {
		return nil, err
	}

	var total *countResponse
	if page == 1 {
		if total, err = post[countResponse](c.r(ctx), "/all-latest-blogs-count", nil); err != nil {
			return nil, err
		}
	}
	return merge(state, page, blogs.Blogs, total), nil
}

func (c *Client) TrendingBlogs(ctx context.Context) ([]Blog, error) {
	blogs, err := get[blogsResponse](c.r(ctx), "/trending-blogs")
	if err != nil {
		return nil, err
	}
	return blogs.Blogs, nil
}

// SearchBlogs pages through blogs matching the query. Exactly one of tag,
// query or author should be set.
func (c *Client) SearchBlogs(ctx context.Context, q SearchQuery, state *pagination.State[Blog]) (*pagination.State[Blog], error) {
	q.Page = state.NextPage()
	blogs, err := post[blogsResponse](c.r(ctx), "/search-blogs", q)
	if err != nil {
		return nil, err
	}

	var total *countResponse
	if q.Page == 1 {
		if total, err = post[countResponse](c.r(ctx), "/search-blogs-count", q); err != nil {
			return nil, err
		}
	}
	return merge(state, q.Page, blogs.Blogs, total), nil
}

func (c *Client) SearchUsers(ctx context.Context, query string) ([]Author, error) {
	users, err := post[usersResponse](c.r(ctx), "/search-users", map[string]string{"query": query})
	if err != nil {
		return nil, err
	}
	return users.Users, nil
}

func (c *Client) Profile(ctx context.Context, username string) (*Profile, error) {
	return post[Profile](c.r(ctx), "/get-profile", map[string]string{"username": username})
}

// Comments lists top-level comments of the blog with the given _id.
func (c *Client) Comments(ctx context.Context, postID string, skip int) ([]Comment, error) {
	comments, err := post[[]Comment](c.r(ctx), "/get-blog-comments", map[string]any{"blog_id": postID, "skip": skip})
	if err != nil {
		return nil, err
	}
	return *comments, nil
}

func (c *Client) Replies(ctx context.Context, commentID string, skip int) ([]Comment, error) {
	replies, err := post[repliesResponse](c.r(ctx), "/get-replies", map[string]any{"_id": commentID, "skip": skip})
	if err != nil {
		return nil, err
	}
	return replies.Replies, nil
}

func getBlog(r *resty.Request, blogID string, draft bool, mode string) (*Blog, error) {
	res, err := post[blogResponse](r, "/get-blog", map[string]any{
		"blog_id": blogID,
		"draft":   draft,
		"mode":    mode,
	})
	if err != nil {
		return nil, err
	}
	return &res.Blog, nil
}

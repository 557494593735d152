package client

import (
	"context"

	"github.com/BloggingApp/blog-service/pkg/pagination"
	"resty.dev/v3"
)

// Session performs requests as a signed-in user.
type Session struct {
	client *Client
	Auth   Auth
}

func (s *Session) r(ctx context.Context) *resty.Request {
	return s.client.r(ctx).SetAuthToken(s.Auth.AccessToken)
}

func (s *Session) ChangePassword(ctx context.Context, currentPassword string, newPassword string) error {
	_, err := post[struct{}](s.r(ctx), "/change-password", map[string]string{
		"currentPassword": currentPassword,
		"newPassword":     newPassword,
	})
	return err
}

func (s *Session) UploadURL(ctx context.Context) (string, error) {
	res, err := get[struct {
		UploadURL string `json:"uploadURL"`
	}](s.r(ctx), "/get-upload-url")
	if err != nil {
		return "", err
	}
	return res.UploadURL, nil
}

// SaveBlog creates or updates a blog and returns its blog_id.
func (s *Session) SaveBlog(ctx context.Context, input BlogInput) (string, error) {
	res, err := post[struct {
		ID string `json:"id"`
	}](s.r(ctx), "/create-blog", input)
	if err != nil {
		return "", err
	}
	return res.ID, nil
}

// Blog reads a blog as this user, which is required for own drafts.
func (s *Session) Blog(ctx context.Context, blogID string) (*Blog, error) {
	return getBlog(s.r(ctx), blogID, false, "")
}

// EditBlog loads a blog for the editor without counting a read.
func (s *Session) EditBlog(ctx context.Context, blogID string, draft bool) (*Blog, error) {
	return getBlog(s.r(ctx), blogID, draft, "edit")
}

func (s *Session) DeleteBlog(ctx context.Context, blogID string) error {
	_, err := post[struct{}](s.r(ctx), "/delete-blog", map[string]string{"blog_id": blogID})
	return err
}

// WrittenBlogs pages through the user's own published blogs or drafts.
func (s *Session) WrittenBlogs(ctx context.Context, draft bool, query string, state *pagination.State[Blog]) (*pagination.State[Blog], error) {
	page := state.NextPage()
	body := map[string]any{
		"page":  page,
		"draft": draft,
		"query": query,
	}
	if state != nil && page > 1 {
		body["deletedDocCount"] = state.DeletedDocCount
	}

	blogs, err := post[blogsResponse](s.r(ctx), "/user-written-blogs", body)
	if err != nil {
		return nil, err
	}

	var total *countResponse
	if page == 1 {
		if total, err = post[countResponse](s.r(ctx), "/user-written-blogs-count", body); err != nil {
			return nil, err
		}
	}
	return merge(state, page, blogs.Blogs, total), nil
}

// Like toggles the like given the state the user saw before clicking and
// returns the new state.
func (s *Session) Like(ctx context.Context, postID string, likedBefore bool) (bool, error) {
	res, err := post[struct {
		LikedByUser bool `json:"liked_by_user"`
	}](s.r(ctx), "/like-blog", map[string]any{"_id": postID, "isLikedByUser": likedBefore})
	if err != nil {
		return false, err
	}
	return res.LikedByUser, nil
}

func (s *Session) IsLiked(ctx context.Context, postID string) (bool, error) {
	res, err := post[struct {
		Result bool `json:"result"`
	}](s.r(ctx), "/isliked-by-user", map[string]string{"_id": postID})
	if err != nil {
		return false, err
	}
	return res.Result, nil
}

func (s *Session) AddComment(ctx context.Context, input CommentInput) (*CreatedComment, error) {
	return post[CreatedComment](s.r(ctx), "/add-comment", input)
}

// DeleteComment removes the comment and all of its replies.
func (s *Session) DeleteComment(ctx context.Context, commentID string) error {
	_, err := post[struct{}](s.r(ctx), "/delete-comment", map[string]string{"_id": commentID})
	return err
}

func (s *Session) HasNewNotifications(ctx context.Context) (bool, error) {
	res, err := get[struct {
		Available bool `json:"new_notification_available"`
	}](s.r(ctx), "/new-notification")
	if err != nil {
		return false, err
	}
	return res.Available, nil
}

// Notifications pages through the user's notifications. Fetching a page
// marks it as seen.
func (s *Session) Notifications(ctx context.Context, filter string, state *pagination.State[Notification]) (*pagination.State[Notification], error) {
	page := state.NextPage()
	body := map[string]any{
		"page":   page,
		"filter": filter,
	}
	if state != nil && page > 1 {
		body["deletedDocCount"] = state.DeletedDocCount
	}

	res, err := post[notificationsResponse](s.r(ctx), "/notifications", body)
	if err != nil {
		return nil, err
	}

	var total *countResponse
	if page == 1 {
		if total, err = post[countResponse](s.r(ctx), "/all-notifications-count", map[string]string{"filter": filter}); err != nil {
			return nil, err
		}
	}
	return merge(state, page, res.Notifications, total), nil
}

func (s *Session) UpdateProfileImg(ctx context.Context, url string) (string, error) {
	res, err := post[struct {
		ProfileImg string `json:"profile_img"`
	}](s.r(ctx), "/update-profile-img", map[string]string{"url": url})
	if err != nil {
		return "", err
	}
	s.Auth.ProfileImg = res.ProfileImg
	return res.ProfileImg, nil
}

func (s *Session) UpdateProfile(ctx context.Context, username string, bio string, links SocialLinks) (string, error) {
	res, err := post[struct {
		Username string `json:"username"`
	}](s.r(ctx), "/update-profile", map[string]any{
		"username":     username,
		"bio":          bio,
		"social_links": links,
	})
	if err != nil {
		return "", err
	}
	s.Auth.Username = res.Username
	return res.Username, nil
}

package client

import (
	"encoding/json"
	"time"

	"github.com/BloggingApp/blog-service/pkg/pagination"
)

type Auth struct {
	AccessToken string `json:"access_token"`
	ProfileImg  string `json:"profile_img"`
	Username    string `json:"username"`
	Fullname    string `json:"fullname"`
}

type AuthorInfo struct {
	Fullname   string `json:"fullname"`
	Username   string `json:"username"`
	ProfileImg string `json:"profile_img"`
}

type Author struct {
	ID           string     `json:"_id"`
	PersonalInfo AuthorInfo `json:"personal_info"`
}

type Activity struct {
	TotalLikes          int64 `json:"total_likes"`
	TotalComments       int64 `json:"total_comments"`
	TotalReads          int64 `json:"total_reads"`
	TotalParentComments int64 `json:"total_parent_comments"`
}

type Blog struct {
	ID          string          `json:"_id"`
	BlogID      string          `json:"blog_id"`
	Title       string          `json:"title"`
	Banner      string          `json:"banner"`
	Des         string          `json:"des"`
	Content     json.RawMessage `json:"content"`
	Tags        []string        `json:"tags"`
	Activity    Activity        `json:"activity"`
	Draft       bool            `json:"draft"`
	PublishedAt time.Time       `json:"publishedAt"`
	Author      Author          `json:"author"`
}

// BlogInput creates a blog, or updates the blog whose blog_id is ID.
type BlogInput struct {
	ID      string          `json:"id,omitempty"`
	Title   string          `json:"title"`
	Des     string          `json:"des"`
	Banner  string          `json:"banner"`
	Tags    []string        `json:"tags"`
	Content json.RawMessage `json:"content,omitempty"`
	Draft   bool            `json:"draft"`
}

type SearchQuery struct {
	Tag           string `json:"tag,omitempty"`
	Query         string `json:"query,omitempty"`
	Author        string `json:"author,omitempty"`
	Page          int    `json:"page"`
	Limit         int    `json:"limit,omitempty"`
	EliminateBlog string `json:"eliminate_blog,omitempty"`
}

type Comment struct {
	ID          string    `json:"_id"`
	PostID      string    `json:"blog_id"`
	Comment     string    `json:"comment"`
	Children    []string  `json:"children"`
	IsReply     bool      `json:"isReply"`
	Parent      string    `json:"parent,omitempty"`
	CommentedAt time.Time `json:"commentedAt"`
	CommentedBy Author    `json:"commented_by"`
}

type CommentInput struct {
	PostID         string `json:"_id"`
	Comment        string `json:"comment"`
	ReplyingTo     string `json:"replying_to,omitempty"`
	NotificationID string `json:"notification_id,omitempty"`
}

type CreatedComment struct {
	ID          string    `json:"_id"`
	Comment     string    `json:"comment"`
	CommentedAt time.Time `json:"commentedAt"`
	UserID      string    `json:"user_id"`
	Children    []string  `json:"children"`
}

type CommentRef struct {
	ID      string `json:"_id"`
	Comment string `json:"comment"`
}

type Notification struct {
	ID        string    `json:"_id"`
	Type      string    `json:"type"`
	Seen      bool      `json:"seen"`
	CreatedAt time.Time `json:"createdAt"`
	Blog      struct {
		ID     string `json:"_id"`
		BlogID string `json:"blog_id"`
		Title  string `json:"title"`
	} `json:"blog"`
	User             Author      `json:"user"`
	Comment          *CommentRef `json:"comment,omitempty"`
	RepliedOnComment *CommentRef `json:"replied_on_comment,omitempty"`
	Reply            *CommentRef `json:"reply,omitempty"`
}

type SocialLinks struct {
	Youtube   string `json:"youtube"`
	Instagram string `json:"instagram"`
	Facebook  string `json:"facebook"`
	Twitter   string `json:"twitter"`
	Github    string `json:"github"`
	Website   string `json:"website"`
}

type Profile struct {
	ID           string `json:"_id"`
	PersonalInfo struct {
		Fullname   string `json:"fullname"`
		Email      string `json:"email"`
		Username   string `json:"username"`
		Bio        string `json:"bio"`
		ProfileImg string `json:"profile_img"`
	} `json:"personal_info"`
	SocialLinks SocialLinks `json:"social_links"`
	AccountInfo struct {
		TotalPosts int64 `json:"total_posts"`
		TotalReads int64 `json:"total_reads"`
	} `json:"account_info"`
	JoinedAt time.Time `json:"joinedAt"`
}

type blogsResponse struct {
	Blogs []Blog `json:"blogs"`
}

type blogResponse struct {
	Blog Blog `json:"blog"`
}

type countResponse struct {
	TotalDocs int64 `json:"totalDocs"`
}

type usersResponse struct {
	Users []Author `json:"users"`
}

type repliesResponse struct {
	Replies []Comment `json:"replies"`
}

type notificationsResponse struct {
	Notifications []Notification `json:"notifications"`
}

// merge folds a fetched page into the feed; total is only fetched with page 1.
func merge[T any](s *pagination.State[T], page int, items []T, total *countResponse) *pagination.State[T] {
	var totalDocs int64
	if total != nil {
		totalDocs = total.TotalDocs
	}
	return pagination.Merge(s, page, items, totalDocs)
}

package model

import (
	"time"

	"github.com/google/uuid"
)

type PersonalInfo struct {
	Fullname   string `json:"fullname"`
	Email      string `json:"email"`
	Password   string `json:"-"`
	Username   string `json:"username"`
	Bio        string `json:"bio"`
	ProfileImg string `json:"profile_img"`
}

type SocialLinks struct {
	Youtube   string `json:"youtube"`
	Instagram string `json:"instagram"`
	Facebook  string `json:"facebook"`
	Twitter   string `json:"twitter"`
	Github    string `json:"github"`
	Website   string `json:"website"`
}

type SocialLink struct {
	Platform string
	URL      string
}

// Entries returns the links in a stable platform order.
func (l SocialLinks) Entries() []SocialLink {
	return []SocialLink{
		{Platform: "youtube", URL: l.Youtube},
		{Platform: "instagram", URL: l.Instagram},
		{Platform: "facebook", URL: l.Facebook},
		{Platform: "twitter", URL: l.Twitter},
		{Platform: "github", URL: l.Github},
		{Platform: "website", URL: l.Website},
	}
}

type AccountInfo struct {
	TotalPosts int64 `json:"total_posts"`
	TotalReads int64 `json:"total_reads"`
}

// User serializes to the public profile: credentials, the federated flag and
// the post list never leave the service.
type User struct {
	ID           uuid.UUID    `json:"_id"`
	PersonalInfo PersonalInfo `json:"personal_info"`
	SocialLinks  SocialLinks  `json:"social_links"`
	AccountInfo  AccountInfo  `json:"account_info"`
	GoogleAuth   bool         `json:"-"`
	Blogs        []uuid.UUID  `json:"-"`
	JoinedAt     time.Time    `json:"joinedAt"`
}

func (u User) Cached() CachedUser {
	return CachedUser{
		ID:         u.ID,
		Fullname:   u.PersonalInfo.Fullname,
		Username:   u.PersonalInfo.Username,
		ProfileImg: u.PersonalInfo.ProfileImg,
	}
}

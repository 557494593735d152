package model

import "github.com/google/uuid"

// CachedUser is the author projection kept in redis and used to populate listings.
type CachedUser struct {
	ID         uuid.UUID `json:"id"`
	Fullname   string    `json:"fullname"`
	Username   string    `json:"username"`
	ProfileImg string    `json:"profile_img"`
}

type AuthorInfo struct {
	Fullname   string `json:"fullname"`
	Username   string `json:"username"`
	ProfileImg string `json:"profile_img"`
}

type UserAuthor struct {
	ID           uuid.UUID  `json:"_id"`
	PersonalInfo AuthorInfo `json:"personal_info"`
}

func (u CachedUser) Author() UserAuthor {
	return UserAuthor{
		ID: u.ID,
		PersonalInfo: AuthorInfo{
			Fullname:   u.Fullname,
			Username:   u.Username,
			ProfileImg: u.ProfileImg,
		},
	}
}

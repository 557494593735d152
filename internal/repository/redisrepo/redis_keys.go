package redisrepo

import "fmt"

const (
	USER_CACHE_KEY     = "user-cache:%s" // <userID>
	TRENDING_POSTS_KEY = "trending-posts"
)

func UserCacheKey(userID string) string {
	return fmt.Sprintf(USER_CACHE_KEY, userID)
}

func TrendingPostsKey() string {
	return TRENDING_POSTS_KEY
}

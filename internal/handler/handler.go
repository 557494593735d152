package handler

import (
	"net/http"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/BloggingApp/blog-service/internal/metrics"
	"github.com/BloggingApp/blog-service/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/spf13/viper"
)

const userIDKey = "user-id"

type Handler struct {
	services *service.Service
}

func New(services *service.Service) *Handler {
	return &Handler{
		services: services,
	}
}

func (h *Handler) InitRoutes() *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery(), metrics.Middleware)
	r.Use(cors.New(corsConfig(viper.GetString("client.origin"))))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.StatusResponse{Status: "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// auth
	r.POST("/signup", h.authSignUp)
	r.POST("/signin", h.authSignIn)
	r.POST("/google-auth", h.authGoogle)
	r.POST("/change-password", h.authMiddleware, h.authChangePassword)

	// blogs
	r.GET("/get-upload-url", h.authMiddleware, h.uploadURL)
	r.POST("/latest-blogs", h.postsLatest)
	r.POST("/all-latest-blogs-count", h.postsLatestCount)
	r.GET("/trending-blogs", h.postsTrending)
	r.POST("/search-blogs", h.postsSearch)
	r.POST("/search-blogs-count", h.postsSearchCount)
	r.POST("/create-blog", h.authMiddleware, h.postsSave)
	r.POST("/get-blog", h.notRequiredAuthMiddleware, h.postsGet)
	r.POST("/delete-blog", h.authMiddleware, h.postsDelete)
	r.POST("/user-written-blogs", h.authMiddleware, h.postsUserWritten)
	r.POST("/user-written-blogs-count", h.authMiddleware, h.postsUserWrittenCount)

	// likes
	r.POST("/like-blog", h.authMiddleware, h.postsLike)
	r.POST("/isliked-by-user", h.authMiddleware, h.postsIsLiked)

	// comments
	r.POST("/add-comment", h.authMiddleware, h.commentsCreate)
	r.POST("/get-blog-comments", h.commentsGet)
	r.POST("/get-replies", h.commentsGetReplies)
	r.POST("/delete-comment", h.authMiddleware, h.commentsDelete)

	// users
	r.POST("/search-users", h.usersSearch)
	r.POST("/get-profile", h.usersGetProfile)
	r.POST("/update-profile-img", h.authMiddleware, h.usersUpdateProfileImg)
	r.POST("/update-profile", h.authMiddleware, h.usersUpdateProfile)

	// notifications
	r.GET("/new-notification", h.authMiddleware, h.notificationsHasNew)
	r.POST("/notifications", h.authMiddleware, h.notificationsGet)
	r.POST("/all-notifications-count", h.authMiddleware, h.notificationsCount)

	return r
}

// corsConfig allows the configured client origin, or every origin when none is set.
func corsConfig(origin string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"POST", "GET"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}
	if origin == "" {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = []string{origin}
	}
	return cfg
}

// getUserID returns the caller resolved by authMiddleware.
func (h *Handler) getUserID(c *gin.Context) uuid.UUID {
	return c.MustGet(userIDKey).(uuid.UUID)
}

// getOptionalUserID returns nil for anonymous callers.
func (h *Handler) getOptionalUserID(c *gin.Context) *uuid.UUID {
	value, exists := c.Get(userIDKey)
	if !exists {
		return nil
	}

	userID, ok := value.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

package handler

import (
	"net/http"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) uploadURL(c *gin.Context) {
	url, err := h.services.Upload.UploadURL(c.Request.Context())
	if err != nil {
		newErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UploadURLResponse{UploadURL: url})
}

func (h *Handler) postsLatest(c *gin.Context) {
	var input dto.PageRequest
	if !bindJSON(c, &input) {
		return
	}

	posts, err := h.services.Post.Latest(c.Request.Context(), input.Page)
	if err != nil {
		newErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PostsResponse{Blogs: posts})
}

func (h *Handler) postsLatestCount(c *gin.Context) {
	count, err := h.services.Post.LatestCount(c.Request.Context())
	if err != nil {
		newErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CountResponse{TotalDocs: count})
}

func (h *Handler) postsTrending(c *gin.Context) {
	posts, err := h.services.Post.Trending(c.Request.Context())
	if err != nil {
		newErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PostsResponse{Blogs: posts})
}

func (h *Handler) postsSearch(c *gin.Context) {
	var input dto.SearchPostsRequest
	if !bindJSON(c, &input) {
		return
	}

	posts, err := h.services.Post.Search(c.Request.Context(), input)
	if err != nil {
		newErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PostsResponse{Blogs: posts})
}

func (h *Handler) postsSearchCount(c *gin.Context) {
	var input dto.SearchPostsRequest
	if !bindJSON(c, &input) {
		return
	}

	count, err := h.services.Post.SearchCount(c.Request.Context(), input)
	if err != nil {
		newErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CountResponse{TotalDocs: count})
}

func (h *Handler) postsSave(c *gin.Context) {
	userID := h.getUserID(c)

	var input dto.CreatePostRequest
	if !bindJSON(c, &input) {
		return
	}

	blogID, err := h.services.Post.Save(c.Request.Context(), userID, input)
	if err != nil {
		newErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CreatePostResponse{ID: blogID})
}

func (h *Handler) postsGet(c *gin.Context) {
	var input dto.GetPostRequest
	if !bindJSON(c, &input) {
		return
	}

	post, err := h.services.Post.Get(c.Request.Context(), h.getOptionalUserID(c), input)
	if err != nil {
		newErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.GetPostResponse{Blog: post})
}

func (h *Handler) postsDelete(c *gin.Context) {
	userID := h.getUserID(c)

	var input dto.DeletePostRequest
	if !bindJSON(c, &input) {
		return
	}

	if err := h.services.Post.Delete(c.Request.Context(), userID, input.BlogID); err != nil {
		newErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StatusResponse{Status: "done"})
}

func (h *Handler) postsUserWritten(c *gin.Context) {
	userID := h.getUserID(c)

	var input dto.UserPostsRequest
	if !bindJSON(c, &input) {
		return
	}

	posts, err := h.services.Post.UserWritten(c.Request.Context(), userID, input)
	if err != nil {
		newErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PostsResponse{Blogs: posts})
}

func (h *Handler) postsUserWrittenCount(c *gin.Context) {
	userID := h.getUserID(c)

	var input dto.UserPostsRequest
	if !bindJSON(c, &input) {
		return
	}

	count, err := h.services.Post.UserWrittenCount(c.Request.Context(), userID, input)
	if err != nil {
		newErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CountResponse{TotalDocs: count})
}

func (h *Handler) postsLike(c *gin.Context) {
	userID := h.getUserID(c)

	var input dto.LikePostRequest
	if !bindJSON(c, &input) {
		return
	}

	liked, err := h.services.Like.Like(c.Request.Context(), userID, input.ID, input.IsLikedByUser)
	if err != nil {
		newErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LikeResponse{LikedByUser: liked})
}

func (h *Handler) postsIsLiked(c *gin.Context) {
	userID := h.getUserID(c)

	var input dto.PostIDRequest
	if !bindJSON(c, &input) {
		return
	}

	liked, err := h.services.Like.IsLiked(c.Request.Context(), userID, input.ID)
	if err != nil {
		newErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.IsLikedResponse{Result: liked})
}

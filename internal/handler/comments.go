package handler

import (
	"net/http"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) commentsCreate(c *gin.Context) {
	userID := h.getUserID(c)

	var input dto.CreateCommentRequest
	if !bindJSON(c, &input) {
		return
	}

	createdComment, err := h.services.Comment.Create(c.Request.Context(), userID, input)
	if err != nil {
		newErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, createdComment)
}

func (h *Handler) commentsGet(c *gin.Context) {
	var input dto.GetCommentsRequest
	if !bindJSON(c, &input) {
		return
	}

	comments, err := h.services.Comment.FindPostComments(c.Request.Context(), input.PostID, input.Skip)
	if err != nil {
		newErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}

func (h *Handler) commentsGetReplies(c *gin.Context) {
	var input dto.GetRepliesRequest
	if !bindJSON(c, &input) {
		return
	}

	replies, err := h.services.Comment.FindReplies(c.Request.Context(), input.ID, input.Skip)
	if err != nil {
		newErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RepliesResponse{Replies: replies})
}

func (h *Handler) commentsDelete(c *gin.Context) {
	userID := h.getUserID(c)

	var input dto.CommentIDRequest
	if !bindJSON(c, &input) {
		return
	}

	if err := h.services.Comment.Delete(c.Request.Context(), userID, input.ID); err != nil {
		newErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StatusResponse{Status: "done"})
}

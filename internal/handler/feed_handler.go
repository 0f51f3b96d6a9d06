package handler

import (
	"errors"
	"net/http"

	"github.com/egyakin/egyakin-api/internal/middleware"
	"github.com/egyakin/egyakin-api/internal/model"
	"github.com/egyakin/egyakin-api/internal/service"
	"github.com/gin-gonic/gin"
)

// FeedHandler handles feed post endpoints
type FeedHandler struct {
	feedService *service.FeedService
}

func NewFeedHandler(feedService *service.FeedService) *FeedHandler {
	return &FeedHandler{feedService: feedService}
}

// CreatePost godoc
// @Summary Publish a feed post
// @Tags Feed
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body model.CreatePostRequest true "Post"
// @Success 201 {object} model.Envelope
// @Failure 403 {object} model.Envelope
// @Failure 404 {object} model.Envelope
// @Router /posts [post]
func (h *FeedHandler) CreatePost(c *gin.Context) {
	doctorID := middleware.GetDoctorID(c)

	var req model.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.Fail(err.Error()))
		return
	}

	post, err := h.feedService.CreatePost(c.Request.Context(), doctorID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGroupNotFound):
			c.JSON(http.StatusNotFound, model.Fail("Group not found"))
		case errors.Is(err, service.ErrNotGroupMember):
			c.JSON(http.StatusForbidden, model.Fail("You are not a member of this group"))
		default:
			c.JSON(http.StatusInternalServerError, model.Fail("Failed to create post"))
		}
		return
	}

	c.JSON(http.StatusCreated, model.OK(post))
}

package handler

import (
	"errors"
	"net/http"

	"github.com/egyakin/egyakin-api/internal/middleware"
	"github.com/egyakin/egyakin-api/internal/model"
	"github.com/egyakin/egyakin-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GroupHandler handles group, invitation and join-request endpoints
type GroupHandler struct {
	groupService *service.GroupService
}

func NewGroupHandler(groupService *service.GroupService) *GroupHandler {
	return &GroupHandler{groupService: groupService}
}

// Create godoc
// @Summary Create a group
// @Tags Groups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body model.CreateGroupRequest true "Group"
// @Success 201 {object} model.Envelope
// @Failure 400 {object} model.Envelope
// @Router /groups [post]
func (h *GroupHandler) Create(c *gin.Context) {
	doctorID := middleware.GetDoctorID(c)

	var req model.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.Fail(err.Error()))
		return
	}

	group, err := h.groupService.Create(doctorID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.Fail("Failed to create group"))
		return
	}

	c.JSON(http.StatusCreated, model.OK(group))
}

// Invite godoc
// @Summary Invite a doctor into a group (owner only)
// @Tags Groups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Group ID"
// @Param body body model.InviteDoctorRequest true "Invitation"
// @Success 201 {object} model.Envelope
// @Failure 403 {object} model.Envelope
// @Failure 404 {object} model.Envelope
// @Router /groups/{id}/invitations [post]
func (h *GroupHandler) Invite(c *gin.Context) {
	doctorID := middleware.GetDoctorID(c)

	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, model.Fail("Invalid group ID"))
		return
	}

	var req model.InviteDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.Fail(err.Error()))
		return
	}

	invitation, err := h.groupService.Invite(c.Request.Context(), doctorID, groupID, req.DoctorID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGroupNotFound):
			c.JSON(http.StatusNotFound, model.Fail("Group not found"))
		case errors.Is(err, service.ErrDoctorNotFound):
			c.JSON(http.StatusNotFound, model.Fail("Doctor not found"))
		case errors.Is(err, service.ErrNotGroupOwner):
			c.JSON(http.StatusForbidden, model.Fail("Only the group owner may invite"))
		default:
			c.JSON(http.StatusInternalServerError, model.Fail("Failed to create invitation"))
		}
		return
	}

	c.JSON(http.StatusCreated, model.OK(invitation))
}

// AcceptInvitation godoc
// @Summary Accept a group invitation addressed to the caller
// @Tags Groups
// @Produce json
// @Security BearerAuth
// @Param id path string true "Invitation ID"
// @Success 200 {object} model.Envelope
// @Failure 400 {object} model.Envelope
// @Failure 404 {object} model.Envelope
// @Router /invitations/{id}/accept [put]
func (h *GroupHandler) AcceptInvitation(c *gin.Context) {
	doctorID := middleware.GetDoctorID(c)

	invitationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, model.Fail("Invalid invitation ID"))
		return
	}

	if err := h.groupService.AcceptInvitation(c.Request.Context(), doctorID, invitationID); err != nil {
		switch {
		case errors.Is(err, service.ErrInvitationNotFound):
			c.JSON(http.StatusNotFound, model.Fail("Invitation not found"))
		case errors.Is(err, service.ErrInvitationClosed):
			c.JSON(http.StatusBadRequest, model.Fail("Invitation has already been answered"))
		default:
			c.JSON(http.StatusInternalServerError, model.Fail("Failed to accept invitation"))
		}
		return
	}

	c.JSON(http.StatusOK, model.OKMessage("Invitation accepted"))
}

// RequestJoin godoc
// @Summary Ask the group owner to join a group
// @Tags Groups
// @Produce json
// @Security BearerAuth
// @Param id path string true "Group ID"
// @Success 200 {object} model.Envelope
// @Failure 404 {object} model.Envelope
// @Router /groups/{id}/join-requests [post]
func (h *GroupHandler) RequestJoin(c *gin.Context) {
	doctorID := middleware.GetDoctorID(c)

	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, model.Fail("Invalid group ID"))
		return
	}

	if err := h.groupService.RequestJoin(c.Request.Context(), doctorID, groupID); err != nil {
		if errors.Is(err, service.ErrGroupNotFound) {
			c.JSON(http.StatusNotFound, model.Fail("Group not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, model.Fail("Failed to send join request"))
		return
	}

	c.JSON(http.StatusOK, model.OKMessage("Join request sent"))
}

// Delete godoc
// @Summary Delete a group (owner only)
// @Description Also removes all notifications about the group.
// @Tags Groups
// @Produce json
// @Security BearerAuth
// @Param id path string true "Group ID"
// @Success 200 {object} model.Envelope
// @Failure 403 {object} model.Envelope
// @Failure 404 {object} model.Envelope
// @Router /groups/{id} [delete]
func (h *GroupHandler) Delete(c *gin.Context) {
	doctorID := middleware.GetDoctorID(c)

	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, model.Fail("Invalid group ID"))
		return
	}

	if err := h.groupService.Delete(doctorID, groupID); err != nil {
		switch {
		case errors.Is(err, service.ErrGroupNotFound):
			c.JSON(http.StatusNotFound, model.Fail("Group not found"))
		case errors.Is(err, service.ErrNotGroupOwner):
			c.JSON(http.StatusForbidden, model.Fail("Only the group owner may delete"))
		default:
			c.JSON(http.StatusInternalServerError, model.Fail("Failed to delete group"))
		}
		return
	}

	c.JSON(http.StatusOK, model.OKMessage("Group deleted"))
}

package handlers

import (
	"conduit-api/helper"
	"conduit-api/services"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileService services.ProfileService
	Helper         *helper.HTTPHelper
}

func NewProfileHandler(profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, Helper: &helper.HTTPHelper{}}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.profileService.GetProfile(c.Param("username"), currentUserID(c))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Profile retrieved successfully", profile)
}

func (h *ProfileHandler) FollowUser(c *gin.Context) {
	profile, err := h.profileService.Follow(currentUserID(c), c.Param("username"))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Successfully followed the user", profile)
}

func (h *ProfileHandler) UnfollowUser(c *gin.Context) {
	profile, err := h.profileService.Unfollow(currentUserID(c), c.Param("username"))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Successfully unfollowed the user", profile)
}

package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	profileUC "github.com/eduhire/eduhire-api/internal/application/usecase/profile"
	"github.com/eduhire/eduhire-api/pkg/apperror"
	"github.com/eduhire/eduhire-api/pkg/logger"
)

type ProfileHandler struct {
	updateProfileUseCase *profileUC.UpdateProfileUseCase
	publicProfileUseCase *profileUC.PublicProfileUseCase
	activityUseCase      *profileUC.ActivityUseCase
	logger               logger.Logger
}

func NewProfileHandler(
	updateUC *profileUC.UpdateProfileUseCase,
	publicUC *profileUC.PublicProfileUseCase,
	activityUC *profileUC.ActivityUseCase,
	log logger.Logger,
) *ProfileHandler {
	return &ProfileHandler{
		updateProfileUseCase: updateUC,
		publicProfileUseCase: publicUC,
		activityUseCase:      activityUC,
		logger:               log,
	}
}

// UpdateProfile merges a partial payload into the stored profile and
// echoes the full updated document back.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No token, authorization denied"})
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperror.NewInvalidInput("invalid JSON body for profile update", err)
		c.Error(appErr)
		return
	}

	input := profileUC.UpdateProfileInput{
		UserID: userID,
		Update: req.ToDomainUpdate(),
	}
	output, err := h.updateProfileUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToUserDTO(output.User))
}

func (h *ProfileHandler) GetActivity(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No token, authorization denied"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	input := profileUC.ActivityInput{
		UserID: userID,
		Limit:  limit,
		Offset: offset,
	}
	output, err := h.activityUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ActivityResponse{Activity: output.Entries})
}

func (h *ProfileHandler) GetPublicProfile(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid user id", err))
		return
	}

	output, err := h.publicProfileUseCase.Execute(c.Request.Context(), profileUC.PublicProfileInput{UserID: userID})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, output.Profile)
}

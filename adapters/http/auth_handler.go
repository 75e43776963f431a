package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	authUC "github.com/eduhire/eduhire-api/internal/application/usecase/auth"
	"github.com/eduhire/eduhire-api/internal/domain/user"
	"github.com/eduhire/eduhire-api/pkg/apperror"
	"github.com/eduhire/eduhire-api/pkg/logger"
)

type AuthHandler struct {
	registerUseCase    *authUC.RegisterUseCase
	loginUseCase       *authUC.LoginUseCase
	socialAuthUseCase  *authUC.SocialAuthUseCase
	currentUserUseCase *authUC.CurrentUserUseCase
	logger             logger.Logger
}

func NewAuthHandler(
	registerUC *authUC.RegisterUseCase,
	loginUC *authUC.LoginUseCase,
	socialUC *authUC.SocialAuthUseCase,
	currentUC *authUC.CurrentUserUseCase,
	log logger.Logger,
) *AuthHandler {
	return &AuthHandler{
		registerUseCase:    registerUC,
		loginUseCase:       loginUC,
		socialAuthUseCase:  socialUC,
		currentUserUseCase: currentUC,
		logger:             log,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	input := authUC.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}

	output, err := h.registerUseCase.Execute(c.Request.Context(), input)
	if err != nil {

		// The register route reports a duplicate as a plain 400, the
		// shape the clients were built against.
		if errors.Is(err, apperror.ErrConflict) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists"})
			return
		}

		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, TokenResponse{Token: output.Token})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	input := authUC.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	}

	output, err := h.loginUseCase.Execute(c.Request.Context(), input)
	if err != nil {

		if errors.Is(err, authUC.ErrInvalidCredentials) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Credentials"})
			return
		}

		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, TokenResponse{Token: output.Token})
}

func (h *AuthHandler) SocialAuth(c *gin.Context) {
	provider := user.AuthProvider(c.Param("provider"))
	switch provider {
	case user.ProviderGoogle, user.ProviderFacebook:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported auth provider"})
		return
	}

	var req SocialAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	input := authUC.SocialAuthInput{
		Provider:    provider,
		Email:       req.Email,
		ProfileSeed: req.Profile,
	}

	output, err := h.socialAuthUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, TokenResponse{Token: output.Token})
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No token, authorization denied"})
		return
	}

	output, err := h.currentUserUseCase.Execute(c.Request.Context(), authUC.CurrentUserInput{UserID: userID})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToUserDTO(output.User))
}

package api

import (
	"net/http"

	reqdto "lastbite/internal/handler/dto/request"
	resdto "lastbite/internal/handler/dto/response"
	"lastbite/internal/handler/httperr"
	"lastbite/internal/pkg/cookie"
	"lastbite/internal/usecase"

	"github.com/gin-gonic/gin"
)

// AuthHandler mints tokens for local development. Production tokens come
// from the identity provider sharing JWT_SECRET.
type AuthHandler struct {
	issuer usecase.TokenIssuer
}

func NewAuthHandler(issuer usecase.TokenIssuer) *AuthHandler {
	return &AuthHandler{issuer: issuer}
}

// @Summary Issue development token
// @Description Only routed in debug mode
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.DevTokenRequest true "Token request"
// @Success 200 {object} resdto.TokenResponse
// @Failure 400 {object} httperr.Response
// @Router /api/dev/tokens [post]
func (h *AuthHandler) IssueDevToken(c *gin.Context) {
	var req reqdto.DevTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	token, err := h.issuer.IssueToken(req.UserID, req.Role)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Token generation failed", nil)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cookie.AccessTokenName, token, 0, "/", "", false, true)
	c.JSON(http.StatusOK, resdto.TokenResponse{AccessToken: token})
}

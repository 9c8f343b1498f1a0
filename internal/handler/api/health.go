package api

import (
	"net/http"

	resdto "lastbite/internal/handler/dto/response"
	"lastbite/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	q queries.ListingQueries
}

func NewHealthHandler(q queries.ListingQueries) *HealthHandler {
	return &HealthHandler{q: q}
}

// @Summary Health check
// @Description Liveness plus the number of listings held by the engine
// @Tags health
// @Produce json
// @Success 200 {object} resdto.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, resdto.FromHealthView(h.q.Health(c.Request.Context())))
}

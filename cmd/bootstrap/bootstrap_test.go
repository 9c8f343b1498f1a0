//go:build e2e

package bootstrap_test

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"lastbite/cmd/bootstrap"
	"lastbite/cmd/bootstrap/components"
	"lastbite/internal/domain/user"
	resdto "lastbite/internal/handler/dto/response"
	"lastbite/internal/pkg/config"
	"lastbite/internal/testutil/authtest"
	"lastbite/internal/testutil/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/fx"
)

type AppSuite struct {
	suite.Suite
	cfg    config.Config
	jwt    *authtest.JWTHelper
	router *gin.Engine
	app    *fx.App
}

func TestAppSuite(t *testing.T) {
	suite.Run(t, new(AppSuite))
}

func (s *AppSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	dir := s.T().TempDir()

	cfg := config.NewTestConfig()
	cfg.Journal = config.JournalConfig{Enabled: true, Dir: filepath.Join(dir, "journal")}
	cfg.Archive.Driver = config.ArchiveDriverSQLite
	cfg.Archive.SQLitePath = filepath.Join(dir, "archive.db")

	s.cfg = cfg
	s.jwt = authtest.NewJWTHelper(cfg.JWT)
	s.start()
}

func (s *AppSuite) TearDownTest() {
	s.stop()
}

func (s *AppSuite) start() {
	var router *gin.Engine
	s.app = fx.New(
		fx.Provide(func() config.Config { return s.cfg }),
		fx.Provide(func() *gin.Engine { return gin.New() }),
		bootstrap.LoggerModule,
		bootstrap.JWTModule,
		components.PersistenceModule,
		components.EngineModule,
		components.UseCaseModule,
		components.HandlerModule,
		fx.Populate(&router),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.Require().NoError(s.app.Start(ctx))
	s.router = router
}

func (s *AppSuite) stop() {
	if s.app == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.Require().NoError(s.app.Stop(ctx))
	s.app = nil
}

func (s *AppSuite) createListing(token string, quantity int) uuid.UUID {
	rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/listings", map[string]any{
		"lat":        40.0,
		"lon":        -75.0,
		"tags":       []string{"bakery"},
		"quantity":   quantity,
		"expires_at": time.Now().Add(time.Hour).UTC().Format(time.RFC3339),
	}, token)
	var created resdto.ListingResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &created)
	return created.ID
}

func (s *AppSuite) TestJournalSurvivesRestart() {
	t := s.T()
	producerToken := s.jwt.GenerateToken(t, uuid.New(), user.RoleProducer)
	consumerToken := s.jwt.GenerateToken(t, uuid.New(), user.RoleConsumer)

	id := s.createListing(producerToken, 5)
	rec := httptest.PerformRequest(t, s.router, http.MethodPost, "/api/listings/"+id.String()+"/claims", map[string]any{"quantity": 2}, consumerToken)
	httptest.AssertSuccessResponse(t, rec, http.StatusOK, nil)

	s.stop()
	s.start()

	rec = httptest.PerformRequest(t, s.router, http.MethodGet, "/api/listings/"+id.String(), nil, "")
	var got resdto.ListingResponse
	httptest.AssertSuccessResponse(t, rec, http.StatusOK, &got)
	assert.Equal(t, 3, got.Remaining)
	assert.Equal(t, "active", got.Status)

	rec = httptest.PerformRequest(t, s.router, http.MethodGet, "/api/listings/search?lat=40.001&lon=-75.001&radius=500", nil, "")
	var found resdto.SearchResponse
	httptest.AssertSuccessResponse(t, rec, http.StatusOK, &found)
	require.Len(t, found.Results, 1)
	assert.Equal(t, id, found.Results[0].ID)
}

func (s *AppSuite) TestClaimedListingIsArchived() {
	t := s.T()
	producer := uuid.New()
	producerToken := s.jwt.GenerateToken(t, producer, user.RoleProducer)
	consumerToken := s.jwt.GenerateToken(t, uuid.New(), user.RoleConsumer)

	id := s.createListing(producerToken, 2)
	rec := httptest.PerformRequest(t, s.router, http.MethodPost, "/api/listings/"+id.String()+"/claims", map[string]any{"quantity": 2}, consumerToken)
	var claimed resdto.ClaimResponse
	httptest.AssertSuccessResponse(t, rec, http.StatusOK, &claimed)
	assert.Equal(t, 0, claimed.Remaining)
	assert.Equal(t, "claimed", claimed.Status)

	require.Eventually(t, func() bool {
		rec := httptest.PerformRequest(t, s.router, http.MethodGet, "/api/producers/me/history", nil, producerToken)
		var history []*resdto.ListingResponse
		if rec.Code != http.StatusOK {
			return false
		}
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &history)
		return len(history) == 1 && history[0].ID == id && history[0].Status == "claimed"
	}, 2*time.Second, 20*time.Millisecond)

	rec = httptest.PerformRequest(t, s.router, http.MethodGet, "/health", nil, "")
	var health resdto.HealthResponse
	httptest.AssertSuccessResponse(t, rec, http.StatusOK, &health)
	assert.Equal(t, 0, health.Indexed)
}

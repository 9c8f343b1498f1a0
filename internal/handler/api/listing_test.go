//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"lastbite/internal/domain/listing"
	"lastbite/internal/domain/user"
	"lastbite/internal/handler/api"
	resdto "lastbite/internal/handler/dto/response"
	"lastbite/internal/handler/middleware"
	"lastbite/internal/handler/validation"
	"lastbite/internal/pkg/errs"
	"lastbite/internal/testutil"
	"lastbite/internal/testutil/builder"
	"lastbite/internal/testutil/httptest"
	commandsmock "lastbite/internal/testutil/mock/commands"
	queriesmock "lastbite/internal/testutil/mock/queries"
	"lastbite/internal/usecase/commands"
	"lastbite/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ListingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockListingCommands
	mockQueries  *queriesmock.MockListingQueries
	handler      *api.ListingHandler
	userID       uuid.UUID
}

func (s *ListingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.Require().NoError(validation.Register())
	s.router = gin.New()
	s.router.Use(middleware.ErrorHandler())

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockListingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockListingQueries(s.mockCtrl)
	s.handler = api.NewListingHandler(s.mockCommands, s.mockQueries)
	s.userID = uuid.New()

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("user_id", s.userID)
		c.Set("user_role", user.RoleProducer)
		c.Next()
	}

	s.router.POST("/api/listings", authMiddleware, s.handler.Create)
	s.router.GET("/api/listings/search", s.handler.Search)
	s.router.GET("/api/listings/:id", s.handler.Get)
	s.router.POST("/api/listings/:id/claims", authMiddleware, s.handler.Claim)
	s.router.GET("/api/producers/me/history", authMiddleware, s.handler.History)
}

func (s *ListingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestListingHandlerSuite(t *testing.T) {
	suite.Run(t, new(ListingHandlerTestSuite))
}

type testCaseListing struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

func createBody() map[string]any {
	return map[string]any{
		"lat":          40.0,
		"lon":          -75.0,
		"tags":         []string{"bakery"},
		"quantity":     5,
		"discount_pct": 50,
		"expires_at":   builder.DefaultNow.Add(2 * time.Hour).Format(time.RFC3339),
	}
}

func viewFor(l *listing.Listing) *queries.ListingView {
	return queries.NewListingView(l)
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *ListingHandlerTestSuite) TestCreate() {
	url := "/api/listings"
	l := builder.NewListingBuilder().MustBuild()
	view := viewFor(l)
	result := &commands.CreateListingResult{ListingID: l.ID(), ExpiresAt: l.ExpiresAt()}

	s.Run("success: returns 201 Created with Location", func() {
		s.mockCommands.EXPECT().CreateListing(gomock.Any(), gomock.Any(), s.userID).
			DoAndReturn(func(_ any, req commands.CreateListingRequest, _ uuid.UUID) (*commands.CreateListingResult, error) {
				s.Equal(40.0, req.Lat)
				s.Equal(5, req.Quantity)
				s.Equal([]string{"bakery"}, req.Tags)
				return result, nil
			}).Times(1)
		s.mockQueries.EXPECT().GetListing(gomock.Any(), l.ID()).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, createBody(), "bearer-token")

		var body resdto.ListingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(l.ID(), body.ID)
		s.Equal("active", body.Status)
		s.Equal([]string{"bakery"}, body.Tags)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Location": "/api/listings/" + l.ID().String()})
	})

	malformed := []testCaseListing{
		{name: "missing lat", mutate: testutil.Field("lat", nil), expectCode: http.StatusBadRequest},
		{name: "missing lon", mutate: testutil.Field("lon", nil), expectCode: http.StatusBadRequest},
		{name: "missing quantity", mutate: testutil.Field("quantity", nil), expectCode: http.StatusBadRequest},
		{name: "missing expires_at", mutate: testutil.Field("expires_at", nil), expectCode: http.StatusBadRequest},
		{name: "latitude out of range", mutate: testutil.Field("lat", 91.0), expectCode: http.StatusBadRequest},
		{name: "longitude out of range", mutate: testutil.Field("lon", -181.0), expectCode: http.StatusBadRequest},
		{name: "blank tag", mutate: testutil.Field("tags", []string{" "}), expectCode: http.StatusBadRequest},
		{name: "tag too long", mutate: testutil.Field("tags", []string{strings.Repeat("t", 33)}), expectCode: http.StatusBadRequest},
		{name: "quantity not a number", mutate: testutil.Field("quantity", "five"), expectCode: http.StatusBadRequest},
	}

	s.Run("error: 400 Bad Request on malformed body", func() {
		for _, tc := range malformed {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, testutil.DtoMap(s.T(), createBody(), tc.mutate), "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "Invalid request")
			})
		}
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, createBody(), "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "expiry outside the window",
				commandsError:  errs.Mark(listing.ErrInvalidWindow, commands.ErrInvalidListing),
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "Invalid availability window",
			},
			{
				name:           "non-positive quantity",
				commandsError:  errs.Mark(listing.ErrInvalidQuantity, commands.ErrInvalidListing),
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "Invalid quantity",
			},
			{
				name:           "discount out of range",
				commandsError:  errs.Mark(listing.ErrInvalidDiscount, commands.ErrInvalidListing),
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "Invalid discount",
			},
			{
				name:           "invalid tags",
				commandsError:  errs.Mark(listing.ErrInvalidTags, commands.ErrInvalidListing),
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Invalid listing",
			},
			{
				name:           "journal unavailable",
				commandsError:  errs.Mark(errors.New("disk full"), errs.ErrJournalWriteFailed),
				expectedStatus: http.StatusServiceUnavailable,
				expectedMsg:    "Storage unavailable",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("boom"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CreateListing(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, createBody(), "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestSearch
// ================================================================================

func (s *ListingHandlerTestSuite) TestSearch() {
	l := builder.NewListingBuilder().WithTags("bakery", "vegan").MustBuild()
	hit := &queries.SearchHit{ListingView: *viewFor(l), DistanceMeters: 140.1, MatchedTags: []string{"vegan"}}

	s.Run("success: returns ranked hits", func() {
		s.mockQueries.EXPECT().Search(gomock.Any(), queries.SearchRequest{
			Lat: 40.001, Lon: -75.001, RadiusMeters: 500, Tags: []string{"vegan", "dairy"}, MaxResults: 10,
		}).Return([]*queries.SearchHit{hit}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/api/listings/search?lat=40.001&lon=-75.001&radius=500&tags=vegan,dairy&limit=10", nil, "")

		var body resdto.SearchResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body.Results, 1)
		s.Equal(1, body.Count)
		s.Equal(l.ID(), body.Results[0].ID)
		s.InDelta(140.1, body.Results[0].DistanceMeters, 0.001)
		s.Equal([]string{"vegan"}, body.Results[0].MatchedTags)
		s.Equal(l.ExpiresAt().Unix(), body.Results[0].ExpiresAt.Unix())
	})

	s.Run("success: empty result is an empty array", func() {
		s.mockQueries.EXPECT().Search(gomock.Any(), gomock.Any()).Return([]*queries.SearchHit{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/listings/search?lat=1&lon=1&radius=10", nil, "")

		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
		s.JSONEq(`{"count":0,"results":[]}`, rec.Body.String())
	})

	bad := []struct {
		name  string
		query string
	}{
		{name: "missing lat", query: "lon=1&radius=10"},
		{name: "missing radius", query: "lat=1&lon=1"},
		{name: "negative radius", query: "lat=1&lon=1&radius=-5"},
		{name: "latitude out of range", query: "lat=100&lon=1&radius=10"},
		{name: "limit above cap", query: "lat=1&lon=1&radius=10&limit=501"},
	}
	s.Run("error: 400 Bad Request on malformed query", func() {
		for _, tc := range bad {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/listings/search?"+tc.query, nil, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid search query")
			})
		}
	})

	s.Run("error: radius above the engine maximum", func() {
		s.mockQueries.EXPECT().Search(gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(errors.New("radius"), queries.ErrInvalidQuery)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/listings/search?lat=1&lon=1&radius=900000", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid search query")
	})
}

// ================================================================================
// TestGet
// ================================================================================

func (s *ListingHandlerTestSuite) TestGet() {
	l := builder.NewListingBuilder().MustBuild()

	s.Run("success", func() {
		s.mockQueries.EXPECT().GetListing(gomock.Any(), l.ID()).Return(viewFor(l), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/listings/"+l.ID().String(), nil, "")

		var body resdto.ListingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(l.ID(), body.ID)
		s.Equal(l.ProducerID(), body.ProducerID)
		s.Equal(5, body.Remaining)
	})

	s.Run("error: invalid id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/listings/not-a-uuid", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})

	s.Run("error: not found", func() {
		s.mockQueries.EXPECT().GetListing(gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(errors.New("missing"), queries.ErrListingNotFound)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/listings/"+uuid.NewString(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Listing not found")
	})
}

// ================================================================================
// TestClaim
// ================================================================================

func (s *ListingHandlerTestSuite) TestClaim() {
	id := uuid.New()
	url := "/api/listings/" + id.String() + "/claims"

	s.Run("success: committed claim returns 200", func() {
		s.mockCommands.EXPECT().ClaimListing(gomock.Any(), commands.ClaimListingRequest{ListingID: id, Quantity: 3}, s.userID).
			Return(&commands.ClaimListingResult{Committed: true, Remaining: 2, Status: "active"}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"quantity": 3}, "bearer-token")

		var body resdto.ClaimResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(resdto.ClaimResponse{Committed: true, Remaining: 2, Status: "active"}, body)
	})

	s.Run("rejection: 409 with reason", func() {
		s.mockCommands.EXPECT().ClaimListing(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&commands.ClaimListingResult{Reason: "insufficient_quantity", Remaining: 2, Status: "active"}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"quantity": 3}, "bearer-token")

		s.Equal(http.StatusConflict, rec.Code)
		s.JSONEq(`{"committed":false,"reason":"insufficient_quantity","remaining":2,"status":"active"}`, rec.Body.String())
	})

	s.Run("error: missing quantity", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"quantity": 1}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			err            error
			expectedStatus int
			expectedMsg    string
		}{
			{"zero quantity", errs.Mark(listing.ErrInvalidQuantity, commands.ErrInvalidClaim), http.StatusUnprocessableEntity, "Invalid quantity"},
			{"unknown listing", errs.Mark(errors.New("missing"), commands.ErrListingNotFound), http.StatusNotFound, "Listing not found"},
			{"client gave up", errs.Mark(errors.New("canceled"), commands.ErrClaimAborted), http.StatusServiceUnavailable, "Claim aborted"},
			{"unexpected", errors.New("boom"), http.StatusInternalServerError, "Internal error"},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().ClaimListing(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tc.err).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"quantity": 1}, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestHistory
// ================================================================================

func (s *ListingHandlerTestSuite) TestHistory() {
	l := builder.NewListingBuilder().MustBuild()
	archived := viewFor(l)
	archived.Archived = true

	s.Run("success", func() {
		s.mockQueries.EXPECT().History(gomock.Any(), s.userID, 5).Return([]*queries.ListingView{archived}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/producers/me/history?limit=5", nil, "bearer-token")

		var body []resdto.ListingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body, 1)
		s.True(body[0].Archived)
	})

	s.Run("error: archive unavailable", func() {
		s.mockQueries.EXPECT().History(gomock.Any(), s.userID, 0).Return(nil, errs.Mark(errors.New("disk gone"), errs.ErrArchiveFailed)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/producers/me/history", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusServiceUnavailable, "Archive unavailable")
	})

	s.Run("error: limit out of range", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/producers/me/history?limit=1000", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid limit")
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/producers/me/history", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})
}

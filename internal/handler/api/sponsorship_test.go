//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"sponsorship-api/internal/handler/api"
	resdto "sponsorship-api/internal/handler/dto/response"
	"sponsorship-api/internal/pkg/errs"
	"sponsorship-api/tests/common/builder"
	"sponsorship-api/tests/common/httptest"
	"sponsorship-api/tests/common/testutil"
	commandsmock "sponsorship-api/tests/mock/commands"
	queriesmock "sponsorship-api/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type SponsorshipHandlerTestSuite struct {
	suite.Suite
	router        *gin.Engine
	mockCtrl      *gomock.Controller
	mockIntake    *commandsmock.MockIntakeCommands
	mockAllocator *commandsmock.MockAllocator
	mockQueries   *queriesmock.MockGrantQueries
	handler       *api.SponsorshipHandler
}

func (s *SponsorshipHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockIntake = commandsmock.NewMockIntakeCommands(s.mockCtrl)
	s.mockAllocator = commandsmock.NewMockAllocator(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockGrantQueries(s.mockCtrl)
	s.handler = api.NewSponsorshipHandler(s.mockIntake, s.mockAllocator, s.mockQueries)

	s.router.POST("/sponsorships/requests", s.handler.SubmitRequest)
	s.router.GET("/sponsorships/current/:placement/:slot", s.handler.Current)
	s.router.POST("/checkout/sponsorships", s.handler.CheckoutGrant)
}

func (s *SponsorshipHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSponsorshipHandlerSuite(t *testing.T) {
	suite.Run(t, new(SponsorshipHandlerTestSuite))
}

func (s *SponsorshipHandlerTestSuite) TestSubmitRequest() {
	url := "/sponsorships/requests"
	body := builder.NewRequestBuilder().BuildDTO()

	s.Run("success: returns 201 Created with request id", func() {
		id := uuid.New()
		s.mockIntake.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(id, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")

		var response map[string]string
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(id.String(), response["id"])
		s.Equal("/api/admin/requests/"+id.String(), rec.Header().Get("Location"))
	})

	s.Run("error: 400 Bad Request when required fields missing", func() {
		for _, field := range []string{"requester_email", "product_ref", "placement", "duration_days"} {
			broken := testutil.DtoMap(s.T(), body, testutil.Field(field, nil))
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, broken, "")
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
		}
	})

	s.Run("error: 400 Bad Request for unknown placement", func() {
		s.mockIntake.EXPECT().Submit(gomock.Any(), gomock.Any()).
			Return(uuid.Nil, errs.ErrInvalidSlot).Times(1)

		broken := testutil.DtoMap(s.T(), body, testutil.Field("placement", "home_bottom"))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, broken, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid placement or slot index")
	})

	s.Run("error: 400 Bad Request for non-positive duration", func() {
		s.mockIntake.EXPECT().Submit(gomock.Any(), gomock.Any()).
			Return(uuid.Nil, errs.ErrInvalidDuration).Times(1)

		broken := testutil.DtoMap(s.T(), body, testutil.Field("duration_days", -1))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, broken, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Duration must be a positive number of days")
	})
}

func (s *SponsorshipHandlerTestSuite) TestCurrent() {
	s.Run("success: returns occupying grant", func() {
		view := builder.NewGrantBuilder().BuildReadModel()
		s.mockQueries.EXPECT().Current(gomock.Any(), "home_top", 0, nil).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/sponsorships/current/home_top/0", nil, "")

		var response resdto.CurrentSponsorResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Require().NotNil(response.Grant)
		s.Equal(view.ProductID, response.Grant.ProductID)
		s.Equal("home_top", response.Placement)
		s.Equal(0, response.SlotIndex)
	})

	s.Run("success: vacant slot returns null grant", func() {
		s.mockQueries.EXPECT().Current(gomock.Any(), "home_right", 2, nil).Return(nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/sponsorships/current/home_right/2", nil, "")

		var response resdto.CurrentSponsorResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Nil(response.Grant)
	})

	s.Run("error: 400 Bad Request for non-numeric slot", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/sponsorships/current/home_top/left", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid slot index")
	})

	s.Run("error: 400 Bad Request for slot outside placement", func() {
		s.mockQueries.EXPECT().Current(gomock.Any(), "home_top", 2, nil).
			Return(nil, errs.ErrInvalidSlot).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/sponsorships/current/home_top/2", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid placement or slot index")
	})
}

func (s *SponsorshipHandlerTestSuite) TestCheckoutGrant() {
	url := "/checkout/sponsorships"
	body := map[string]any{
		"product_id":       "prod-123",
		"placement":        "home_right",
		"duration_days":    7,
		"amount_usd_cents": 19900,
	}

	s.Run("success: returns 201 Created with the grant", func() {
		grantID := uuid.New()
		view := builder.NewGrantBuilder().BuildReadModel()
		s.mockAllocator.EXPECT().Allocate(gomock.Any(), gomock.Any()).Return(grantID, nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), grantID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")

		var response resdto.GrantResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(view.ProductID, response.ProductID)
	})

	s.Run("error: 503 Service Unavailable when retries are exhausted", func() {
		s.mockAllocator.EXPECT().Allocate(gomock.Any(), gomock.Any()).
			Return(uuid.Nil, errs.ErrOverlapViolation).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusServiceUnavailable, "Slot is contended")
	})

	s.Run("error: 400 Bad Request when amount missing", func() {
		broken := testutil.DtoMap(s.T(), body, testutil.Field("amount_usd_cents", nil))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, broken, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})
}

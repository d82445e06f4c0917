//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"sponsorship-api/internal/handler/api"
	resdto "sponsorship-api/internal/handler/dto/response"
	"sponsorship-api/internal/pkg/errs"
	"sponsorship-api/internal/usecase/commands"
	"sponsorship-api/internal/usecase/queries"
	"sponsorship-api/tests/common/builder"
	"sponsorship-api/tests/common/httptest"
	commandsmock "sponsorship-api/tests/mock/commands"
	queriesmock "sponsorship-api/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AdminHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockCtrl        *gomock.Controller
	mockCommands    *commandsmock.MockSponsorshipCommands
	mockReqQueries  *queriesmock.MockRequestQueries
	mockGrantQuries *queriesmock.MockGrantQueries
	handler         *api.AdminHandler
}

func (s *AdminHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockSponsorshipCommands(s.mockCtrl)
	s.mockReqQueries = queriesmock.NewMockRequestQueries(s.mockCtrl)
	s.mockGrantQuries = queriesmock.NewMockGrantQueries(s.mockCtrl)
	s.handler = api.NewAdminHandler(s.mockCommands, s.mockReqQueries, s.mockGrantQuries)

	s.router.GET("/admin/requests", s.handler.ListRequests)
	s.router.GET("/admin/requests/:id", s.handler.GetRequest)
	s.router.POST("/admin/requests/:id/process", s.handler.ProcessRequest)
	s.router.POST("/admin/requests/:id/reject", s.handler.RejectRequest)
	s.router.GET("/admin/grants/:placement/:slot", s.handler.ListGrants)
	s.router.DELETE("/admin/grants/:id", s.handler.DeleteGrant)
}

func (s *AdminHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAdminHandlerSuite(t *testing.T) {
	suite.Run(t, new(AdminHandlerTestSuite))
}

func processBody() map[string]any {
	return map[string]any{
		"product_id":    "prod-123",
		"placement":     "home_top",
		"slot_index":    0,
		"duration_days": 7,
	}
}

func (s *AdminHandlerTestSuite) TestListRequests() {
	s.Run("success: returns all requests", func() {
		views := []*queries.RequestView{
			builder.NewRequestBuilder().BuildReadModel(),
			builder.NewRequestBuilder().WithSlot(1).BuildReadModel(),
		}
		s.mockReqQueries.EXPECT().List(gomock.Any(), nil).Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/requests", nil, "")

		var response []resdto.RequestResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 2)
	})

	s.Run("success: status filter is forwarded", func() {
		pending := "pending"
		s.mockReqQueries.EXPECT().List(gomock.Any(), &pending).
			Return([]*queries.RequestView{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/requests?status=pending", nil, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 Bad Request for unknown status", func() {
		bogus := "archived"
		s.mockReqQueries.EXPECT().List(gomock.Any(), &bogus).
			Return(nil, queries.ErrInvalidStatusFilter).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/requests?status=archived", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Unknown status filter")
	})
}

func (s *AdminHandlerTestSuite) TestGetRequest() {
	s.Run("success: returns the request", func() {
		view := builder.NewRequestBuilder().BuildReadModel()
		s.mockReqQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/requests/"+view.ID.String(), nil, "")

		var response resdto.RequestResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(view.ID, response.ID)
	})

	s.Run("error: 404 Not Found for unknown id", func() {
		id := uuid.New()
		s.mockReqQueries.EXPECT().GetByID(gomock.Any(), id).
			Return(nil, errs.ErrRequestNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/requests/"+id.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Request not found")
	})

	s.Run("error: 400 Bad Request for malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/requests/not-a-uuid", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid ID format")
	})
}

func (s *AdminHandlerTestSuite) TestProcessRequest() {
	requestID := uuid.New()
	url := "/admin/requests/" + requestID.String() + "/process"

	s.Run("success: returns the created grant", func() {
		grantView := builder.NewGrantBuilder().BuildReadModel()
		s.mockCommands.EXPECT().Process(gomock.Any(), gomock.Any()).
			Return(&commands.ProcessResult{RequestID: requestID, GrantID: grantView.ID}, nil).Times(1)
		s.mockGrantQuries.EXPECT().GetByID(gomock.Any(), grantView.ID).Return(grantView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, processBody(), "")

		var response resdto.GrantResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(grantView.ID, response.ID)
	})

	s.Run("error: 409 Conflict when request already settled", func() {
		s.mockCommands.EXPECT().Process(gomock.Any(), gomock.Any()).
			Return(nil, errs.ErrAlreadyProcessed).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, processBody(), "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "already been processed")
	})

	s.Run("error: 404 Not Found for unknown request", func() {
		s.mockCommands.EXPECT().Process(gomock.Any(), gomock.Any()).
			Return(nil, errs.ErrRequestNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, processBody(), "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Request not found")
	})

	s.Run("error: 503 Service Unavailable when slot races exhaust retries", func() {
		s.mockCommands.EXPECT().Process(gomock.Any(), gomock.Any()).
			Return(nil, errs.ErrOverlapViolation).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, processBody(), "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusServiceUnavailable, "Slot is contended")
	})

	s.Run("error: 400 Bad Request for invalid slot", func() {
		s.mockCommands.EXPECT().Process(gomock.Any(), gomock.Any()).
			Return(nil, errs.ErrInvalidSlot).Times(1)

		body := processBody()
		body["slot_index"] = 5
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid placement or slot index")
	})
}

func (s *AdminHandlerTestSuite) TestRejectRequest() {
	requestID := uuid.New()
	url := "/admin/requests/" + requestID.String() + "/reject"

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().Reject(gomock.Any(), requestID, gomock.Any()).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"note": "not a fit"}, "")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("success: body is optional", func() {
		s.mockCommands.EXPECT().Reject(gomock.Any(), requestID, nil).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 409 Conflict when already settled", func() {
		s.mockCommands.EXPECT().Reject(gomock.Any(), requestID, gomock.Any()).
			Return(errs.ErrAlreadyProcessed).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"note": "late"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "already been processed")
	})
}

func (s *AdminHandlerTestSuite) TestListGrants() {
	s.Run("success: returns slot schedule", func() {
		views := []*queries.GrantView{builder.NewGrantBuilder().BuildReadModel()}
		s.mockGrantQuries.EXPECT().ListBySlot(gomock.Any(), "home_right", 1).Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/grants/home_right/1", nil, "")

		var response []resdto.GrantResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 1)
	})

	s.Run("error: 400 Bad Request for unknown placement", func() {
		s.mockGrantQuries.EXPECT().ListBySlot(gomock.Any(), "footer", 0).
			Return(nil, errs.ErrInvalidSlot).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/grants/footer/0", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid placement or slot index")
	})
}

func (s *AdminHandlerTestSuite) TestDeleteGrant() {
	grantID := uuid.New()
	url := "/admin/grants/" + grantID.String()

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().DeleteGrant(gomock.Any(), grantID).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 404 Not Found for unknown grant", func() {
		s.mockCommands.EXPECT().DeleteGrant(gomock.Any(), grantID).
			Return(errs.ErrGrantNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Grant not found")
	})
}

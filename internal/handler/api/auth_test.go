//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"sponsorship-api/internal/domain/user"
	"sponsorship-api/internal/handler/api"
	resdto "sponsorship-api/internal/handler/dto/response"
	"sponsorship-api/internal/pkg/config"
	"sponsorship-api/internal/pkg/cookie"
	"sponsorship-api/internal/usecase/commands"
	"sponsorship-api/internal/usecase/queries"
	"sponsorship-api/tests/common/httptest"
	"sponsorship-api/tests/common/testutil"
	commandsmock "sponsorship-api/tests/mock/commands"
	queriesmock "sponsorship-api/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockAuthCommands
	mockQueries  *queriesmock.MockUserQueries
	handler      *api.AuthHandler
}

func (s *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockAuthCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockUserQueries(s.mockCtrl)
	cfg := config.NewTestConfig()
	s.handler = api.NewAuthHandler(s.mockCommands, s.mockQueries, cfg.JWT, cfg.Cookie)

	s.router.POST("/auth/login", s.handler.Login)
	s.router.POST("/auth/logout", s.handler.Logout)
	s.router.GET("/auth/me", func(c *gin.Context) {
		// Stand in for the auth middleware
		if c.GetHeader("Authorization") != "" {
			c.Set("user_id", uuid.New())
		}
		s.handler.Me(c)
	})
}

func (s *AuthHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

func (s *AuthHandlerTestSuite) TestLogin() {
	url := "/auth/login"
	body := map[string]any{"email": "admin@example.com", "password": "secret"}

	s.Run("success: returns 200 OK and sets token cookies", func() {
		userID := uuid.New()
		s.mockCommands.EXPECT().Login(gomock.Any(), "admin@example.com", "secret").
			Return(&commands.LoginResult{
				UserID: userID,
				Role:   user.RoleAdmin,
				TokenPair: &commands.TokenPair{
					AccessToken:  "access-token",
					RefreshToken: "refresh-token",
				},
			}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")

		var response resdto.LoginResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(userID, response.UserID)
		s.Equal("admin", response.Role)

		access := httptest.ExtractCookie(rec, cookie.AccessTokenCookieName)
		s.Require().NotNil(access)
		s.Equal("access-token", access.Value)
		s.True(access.HttpOnly)
	})

	s.Run("error: 401 Unauthorized for bad credentials", func() {
		s.mockCommands.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrInvalidCredentials).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid email or password")
	})

	s.Run("error: 403 Forbidden for deactivated account", func() {
		s.mockCommands.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrUserInactive).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Account is deactivated")
	})

	s.Run("error: 400 Bad Request for malformed email", func() {
		broken := testutil.DtoMap(s.T(), body, testutil.Field("email", "not-an-email"))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, broken, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})
}

func (s *AuthHandlerTestSuite) TestLogout() {
	rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/logout", nil, "")
	s.Equal(http.StatusNoContent, rec.Code)

	access := httptest.ExtractCookie(rec, cookie.AccessTokenCookieName)
	s.Require().NotNil(access)
	s.Empty(access.Value)
	s.Negative(access.MaxAge)
}

func (s *AuthHandlerTestSuite) TestMe() {
	s.Run("success: returns the profile", func() {
		view := &queries.AuthorizedUserView{
			ID:       uuid.New(),
			Email:    "admin@example.com",
			Role:     "admin",
			IsActive: true,
		}
		s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any()).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/auth/me", nil, "some-token")

		var response resdto.MeResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(view.Email, response.Email)
	})

	s.Run("error: 401 Unauthorized without user context", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/auth/me", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Authentication required")
	})
}

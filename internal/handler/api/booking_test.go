//go:build unit

package api_test

import (
	"fmt"
	"net/http"
	"testing"

	"booking-engine/internal/handler/api"
	resdto "booking-engine/internal/handler/dto/response"
	"booking-engine/internal/pkg/errs"
	"booking-engine/tests/common/builder"
	"booking-engine/tests/common/httptest"
	commandsmock "booking-engine/tests/mock/commands"
	queriesmock "booking-engine/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.BookingHandler
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries)

	s.router.POST("/bookings", s.handler.CreateBooking)
	s.router.GET("/bookings/:reference", s.handler.GetBooking)
	s.router.POST("/bookings/:reference/cancel", s.handler.CancelBooking)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

// ================================================================================
// TestCreateBooking
// ================================================================================

func (s *BookingHandlerTestSuite) TestCreateBooking() {
	url := "/bookings"

	b := builder.NewBookingBuilder()
	returnView, err := b.BuildView()
	s.Require().NoError(err)

	s.Run("success: returns 201 Created for valid request", func() {
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, b.BuildCreateRequestMap())

		var got resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &got)
		s.Equal(returnView.Reference, got.Reference)
		s.Equal("confirmed", got.Status)
	})

	s.Run("error: malformed body returns 400", func() {
		body := b.BuildCreateRequestMap()
		body["product_type"] = "cruise"

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body)
		httptest.AssertPlainErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	missing := []string{"product_id", "product_type", "check_in", "quantity", "guest"}
	for _, field := range missing {
		s.Run(fmt.Sprintf("error: missing %s returns 400", field), func() {
			body := b.BuildCreateRequestMap()
			delete(body, field)

			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body)
			httptest.AssertPlainErrorResponse(s.T(), rec, http.StatusBadRequest, "")
		})
	}

	s.Run("error: malformed date returns 400", func() {
		body := b.BuildCreateRequestMap()
		body["check_in"] = "01-10-2026"

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body)
		httptest.AssertPlainErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: unconfigured dates return 404", func() {
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).
			Return(nil, errs.ErrNotConfigured).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, b.BuildCreateRequestMap())
		httptest.AssertPlainErrorResponse(s.T(), rec, http.StatusNotFound, "No inventory configured")
	})

	s.Run("error: sold-out dates return 409", func() {
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).
			Return(nil, errs.ErrCapacityUnavailable).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, b.BuildCreateRequestMap())
		httptest.AssertPlainErrorResponse(s.T(), rec, http.StatusConflict, "Insufficient capacity")
	})

	s.Run("error: invalid domain request returns 400", func() {
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).
			Return(nil, errs.ErrInvalidRequest).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, b.BuildCreateRequestMap())
		httptest.AssertPlainErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: persistence failure returns 500", func() {
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).
			Return(nil, errs.ErrPersistenceFailed).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, b.BuildCreateRequestMap())
		httptest.AssertPlainErrorResponse(s.T(), rec, http.StatusInternalServerError, "")
	})
}

// ================================================================================
// TestGetBooking
// ================================================================================

func (s *BookingHandlerTestSuite) TestGetBooking() {
	b := builder.NewBookingBuilder()
	returnView, err := b.BuildView()
	s.Require().NoError(err)

	s.Run("success: returns 200 with booking", func() {
		s.mockQueries.EXPECT().GetBooking(gomock.Any(), returnView.Reference).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+returnView.Reference, nil)

		var got resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &got)
		s.Equal(returnView.Reference, got.Reference)
	})

	s.Run("error: unknown reference returns 404", func() {
		s.mockQueries.EXPECT().GetBooking(gomock.Any(), "BK-0000000000").
			Return(nil, errs.ErrBookingNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/BK-0000000000", nil)
		httptest.AssertPlainErrorResponse(s.T(), rec, http.StatusNotFound, "not found")
	})
}

// ================================================================================
// TestCancelBooking
// ================================================================================

func (s *BookingHandlerTestSuite) TestCancelBooking() {
	b := builder.NewBookingBuilder()
	returnView, err := b.BuildView()
	s.Require().NoError(err)
	url := "/bookings/" + returnView.Reference + "/cancel"

	s.Run("success: returns 200 with cancelled booking", func() {
		s.mockCommands.EXPECT().CancelBooking(gomock.Any(), returnView.Reference).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil)

		var got resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &got)
	})

	s.Run("error: unknown reference returns 404", func() {
		s.mockCommands.EXPECT().CancelBooking(gomock.Any(), returnView.Reference).
			Return(nil, errs.ErrBookingNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil)
		httptest.AssertPlainErrorResponse(s.T(), rec, http.StatusNotFound, "not found")
	})

	s.Run("error: already cancelled returns 409", func() {
		s.mockCommands.EXPECT().CancelBooking(gomock.Any(), returnView.Reference).
			Return(nil, errs.ErrBookingNotCancelable).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil)
		httptest.AssertPlainErrorResponse(s.T(), rec, http.StatusConflict, "not in a cancelable state")
	})
}

//go:build unit

package api_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"resortly/internal/domain/booking"
	"resortly/internal/domain/coupon"
	"resortly/internal/domain/user"
	"resortly/internal/handler/api"
	reqdto "resortly/internal/handler/dto/request"
	resdto "resortly/internal/handler/dto/response"
	"resortly/internal/usecase/commands"
	"resortly/internal/usecase/queries"
	"resortly/tests/common/httptest"
	"resortly/tests/common/testutil"
	commandsmock "resortly/tests/mock/commands"
	queriesmock "resortly/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
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
	currentUser  uuid.UUID
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries)
	s.currentUser = uuid.New()

	// Stand-in for the auth middleware.
	s.router.Use(func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			c.Set("user_id", s.currentUser)
			c.Set("user_role", user.RoleGuest)
		}
		c.Next()
	})

	s.router.POST("/bookings", s.handler.Create)
	s.router.GET("/bookings", s.handler.List)
	s.router.POST("/bookings/quote", s.handler.Quote)
	s.router.GET("/bookings/:id", s.handler.Get)
	s.router.POST("/bookings/:id/items", s.handler.AddItems)
	s.router.POST("/bookings/:id/check-in", s.handler.CheckIn)
	s.router.POST("/bookings/:id/check-out", s.handler.CheckOut)
	s.router.POST("/bookings/:id/cancel", s.handler.Cancel)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func (s *BookingHandlerTestSuite) createRequest() reqdto.CreateBookingRequest {
	checkIn := time.Now().Add(72 * time.Hour).UTC().Truncate(time.Second)
	return reqdto.CreateBookingRequest{
		CheckIn:  checkIn,
		CheckOut: checkIn.Add(48 * time.Hour),
		Items: []reqdto.ItemSelectionRequest{
			{ItemID: "itm-pool-pass", Quantity: 2},
		},
	}
}

func (s *BookingHandlerTestSuite) TestCreate() {
	url := "/bookings"
	reqBody := s.createRequest()

	s.Run("success: returns 201 with the booking id", func() {
		newID := uuid.New()
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), s.currentUser).
			Return(newID, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "token")

		var response resdto.CreateBookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(newID, response.ID)
	})

	s.Run("error: 401 without authentication", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "not authenticated")
	})

	s.Run("error: 404 when an item is unknown", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), s.currentUser).
			Return(uuid.Nil, commands.ErrItemNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Catalog item not found")
	})

	s.Run("error: 422 on coupon rejection", func() {
		cases := []struct {
			name     string
			cmdErr   error
			contains string
		}{
			{name: "inactive", cmdErr: coupon.ErrCouponInactive, contains: "not active"},
			{name: "expired", cmdErr: coupon.ErrCouponExpired, contains: "expired"},
			{name: "exhausted", cmdErr: coupon.ErrCouponExhausted, contains: "usage limit"},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), s.currentUser).
					Return(uuid.Nil, tc.cmdErr).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, tc.contains)
			})
		}
	})

	s.Run("error: 400 on validation failures", func() {
		cases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing checkIn", mutate: testutil.Field("checkIn", nil)},
			{name: "missing items", mutate: testutil.Field("items", nil)},
			{name: "empty items", mutate: testutil.Field("items", []any{})},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				body := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "token")
				s.Equal(http.StatusBadRequest, rec.Code)
			})
		}
	})
}

func (s *BookingHandlerTestSuite) TestQuote() {
	url := "/bookings/quote"
	reqBody := reqdto.QuoteRequest{
		Items: []reqdto.ItemSelectionRequest{{ItemID: "itm-pool-pass", Quantity: 2}},
	}

	s.Run("success: returns the full breakdown", func() {
		breakdown := booking.NewPriceBreakdown(1000, 150, 0.12, 150)
		s.mockQueries.EXPECT().Quote(gomock.Any(), gomock.Any(), s.currentUser).
			Return(&breakdown, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "token")

		var response resdto.QuoteResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.InDelta(1000, response.Subtotal, 1e-9)
		s.InDelta(150, response.Discount, 1e-9)
		s.InDelta(1102, response.FinalAmount, 1e-9)
	})

	s.Run("error: 404 when the coupon is unknown", func() {
		s.mockQueries.EXPECT().Quote(gomock.Any(), gomock.Any(), s.currentUser).
			Return(nil, queries.ErrCouponNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Coupon not found")
	})
}

func (s *BookingHandlerTestSuite) TestGet() {
	bookingID := uuid.New()
	url := "/bookings/" + bookingID.String()

	s.Run("success: returns the booking view", func() {
		view := &queries.BookingView{
			ID:       bookingID,
			UserID:   s.currentUser,
			Currency: "INR",
			Amount:   224,
		}
		s.mockQueries.EXPECT().GetByID(gomock.Any(), bookingID, s.currentUser, user.RoleGuest).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "token")

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(bookingID, response.ID)
		s.InDelta(224, response.Amount, 1e-9)
	})

	s.Run("error: 403 when the booking belongs to someone else", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), bookingID, s.currentUser, user.RoleGuest).
			Return(nil, queries.ErrForbidden).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Access denied")
	})

	s.Run("error: 400 on a malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/not-a-uuid", nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid booking ID")
	})
}

func (s *BookingHandlerTestSuite) TestList() {
	s.Run("success: returns own bookings", func() {
		items := []*queries.BookingListItem{
			{ID: uuid.New(), Currency: "INR", Amount: 224},
			{ID: uuid.New(), Currency: "INR", Amount: 500, IsCancelled: true},
		}
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), s.currentUser).
			Return(items, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings", nil, "token")

		var response []*resdto.BookingListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 2)
		s.Equal(items[0].ID, response[0].ID)
		s.True(response[1].IsCancelled)
	})

	s.Run("success: empty list stays a JSON array", func() {
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), s.currentUser).
			Return(nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings", nil, "token")

		s.Equal(http.StatusOK, rec.Code)
		s.Equal("[]", rec.Body.String())
	})
}

func (s *BookingHandlerTestSuite) TestAddItems() {
	bookingID := uuid.New()
	url := fmt.Sprintf("/bookings/%s/items", bookingID)
	reqBody := reqdto.AddItemsRequest{
		Items: []reqdto.ItemSelectionRequest{{ItemID: "itm-spa", Quantity: 1}},
	}

	s.Run("success: returns 204", func() {
		s.mockCommands.EXPECT().AddItems(gomock.Any(), bookingID, gomock.Any(), s.currentUser, user.RoleGuest).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 409 on a closed booking", func() {
		s.mockCommands.EXPECT().AddItems(gomock.Any(), bookingID, gomock.Any(), s.currentUser, user.RoleGuest).
			Return(booking.ErrBookingClosed).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "cancelled or checked out")
	})
}

func (s *BookingHandlerTestSuite) TestCheckInCheckOut() {
	bookingID := uuid.New()

	s.Run("success: check-in then check-out", func() {
		s.mockCommands.EXPECT().CheckIn(gomock.Any(), bookingID, s.currentUser, user.RoleGuest).
			Return(nil).Times(1)
		s.mockCommands.EXPECT().CheckOut(gomock.Any(), bookingID, s.currentUser, user.RoleGuest).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, fmt.Sprintf("/bookings/%s/check-in", bookingID), nil, "token")
		s.Equal(http.StatusNoContent, rec.Code)

		rec = httptest.PerformRequest(s.T(), s.router, http.MethodPost, fmt.Sprintf("/bookings/%s/check-out", bookingID), nil, "token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 409 on lifecycle conflicts", func() {
		cases := []struct {
			name     string
			path     string
			expect   func()
			contains string
		}{
			{
				name: "double check-in",
				path: fmt.Sprintf("/bookings/%s/check-in", bookingID),
				expect: func() {
					s.mockCommands.EXPECT().CheckIn(gomock.Any(), bookingID, s.currentUser, user.RoleGuest).
						Return(booking.ErrAlreadyCheckedIn).Times(1)
				},
				contains: "already checked in",
			},
			{
				name: "check-out before check-in",
				path: fmt.Sprintf("/bookings/%s/check-out", bookingID),
				expect: func() {
					s.mockCommands.EXPECT().CheckOut(gomock.Any(), bookingID, s.currentUser, user.RoleGuest).
						Return(booking.ErrNotCheckedIn).Times(1)
				},
				contains: "not been checked in",
			},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				tc.expect()
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, tc.path, nil, "token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, tc.contains)
			})
		}
	})
}

func (s *BookingHandlerTestSuite) TestCancel() {
	bookingID := uuid.New()
	url := fmt.Sprintf("/bookings/%s/cancel", bookingID)

	s.Run("success: returns the refund decision", func() {
		decision := &booking.RefundDecision{Eligible: true, RefundPercent: 50, RefundAmount: 500}
		s.mockCommands.EXPECT().Cancel(gomock.Any(), bookingID, s.currentUser, user.RoleGuest).
			Return(decision, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "token")

		var response resdto.CancelBookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.True(response.Eligible)
		s.Equal(50, response.RefundPercent)
		s.InDelta(500, response.RefundAmount, 1e-9)
	})

	s.Run("error: 409 when already cancelled", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), bookingID, s.currentUser, user.RoleGuest).
			Return(nil, booking.ErrAlreadyCancelled).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "already cancelled")
	})

	s.Run("error: 409 when no policy is active", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), bookingID, s.currentUser, user.RoleGuest).
			Return(nil, commands.ErrNoActivePolicy).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "No active cancellation policy")
	})
}

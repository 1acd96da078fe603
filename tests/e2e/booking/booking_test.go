//go:build e2e

package booking_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"resortly/internal/domain/user"
	reqdto "resortly/internal/handler/dto/request"
	resdto "resortly/internal/handler/dto/response"
	"resortly/tests/common/httptest"
	"resortly/tests/e2e"
	"resortly/tests/e2e/common/helper"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

const bookingsURL = "/api/bookings"

type bookingSuite struct {
	e2e.SharedSuite
	jwtHelper *helper.JWTTestHelper
	guestID   uuid.UUID
	token     string
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(bookingSuite))
}

func (s *bookingSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwtHelper = helper.NewJWTTestHelper(s.Config.JWT)
}

func (s *bookingSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
	s.guestID, s.token = s.jwtHelper.CreateVerifiedUser(s.T(), s.DB, "guest@example.com", user.RoleGuest)
}

func (s *bookingSuite) createRequest() reqdto.CreateBookingRequest {
	checkIn := time.Now().Add(72 * time.Hour).UTC().Truncate(time.Second)
	return reqdto.CreateBookingRequest{
		CheckIn:  checkIn,
		CheckOut: checkIn.Add(48 * time.Hour),
		Items: []reqdto.ItemSelectionRequest{
			{ItemID: "itm-pool-pass", Quantity: 2}, // 200
			{ItemID: "itm-safari", Quantity: 1},    // 250
		},
	}
}

func (s *bookingSuite) createBooking(req reqdto.CreateBookingRequest) uuid.UUID {
	rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, bookingsURL, req, s.token)

	var resp resdto.CreateBookingResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &resp)
	return resp.ID
}

func (s *bookingSuite) TestValuation() {
	s.Run("quote applies the coupon, tax and insurance without persisting", func() {
		code := "SUMMER20"
		quoteBody := reqdto.QuoteRequest{
			Items: []reqdto.ItemSelectionRequest{
				{ItemID: "itm-pool-pass", Quantity: 2},
				{ItemID: "itm-safari", Quantity: 1},
			},
			CouponCode:    &code,
			WithInsurance: true,
		}
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, bookingsURL+"/quote", quoteBody, s.token)

		var quote resdto.QuoteResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &quote)
		// 450 subtotal, 20% = 90 discount, (450-90)*1.12 + 150 insurance.
		s.InDelta(450, quote.Subtotal, 1e-9)
		s.InDelta(90, quote.Discount, 1e-9)
		s.InDelta(553.20, quote.FinalAmount, 1e-9)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, bookingsURL, nil, s.token)
		var list []*resdto.BookingListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &list)
		s.Empty(list)
	})

	s.Run("create prices the booking against current catalog rows", func() {
		req := s.createRequest()
		code := "SUMMER20"
		req.CouponCode = &code
		bookingID := s.createBooking(req)

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet,
			fmt.Sprintf("%s/%s", bookingsURL, bookingID), nil, s.token)

		var view resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &view)
		s.Equal(s.guestID, view.UserID)
		s.InDelta(450, view.OriginalPrice, 1e-9)
		s.InDelta(360, view.DiscountedPrice, 1e-9)
		s.InDelta(403.20, view.Amount, 1e-9)
		s.Len(view.SelectedItems, 2)
		s.Require().NotNil(view.CouponCode)
		s.Equal("SUMMER20", *view.CouponCode)
	})

	s.Run("unknown catalog item fails the whole booking", func() {
		req := s.createRequest()
		req.Items = append(req.Items, reqdto.ItemSelectionRequest{ItemID: "itm-ghost", Quantity: 1})

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, bookingsURL, req, s.token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Catalog item not found")
	})

	s.Run("single-use coupon is claimed exactly once", func() {
		code := "ONEUSE"
		req := s.createRequest()
		req.CouponCode = &code
		s.createBooking(req)

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, bookingsURL, req, s.token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "usage limit")
	})
}

func (s *bookingSuite) TestLifecycle() {
	s.Run("add-ons are charged at the tax rate onto the stored amount", func() {
		bookingID := s.createBooking(s.createRequest())

		addBody := reqdto.AddItemsRequest{
			Items: []reqdto.ItemSelectionRequest{{ItemID: "itm-spa", Quantity: 1}},
		}
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
			fmt.Sprintf("%s/%s/items", bookingsURL, bookingID), addBody, s.token)
		s.Equal(http.StatusNoContent, rec.Code)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet,
			fmt.Sprintf("%s/%s", bookingsURL, bookingID), nil, s.token)
		var view resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &view)
		// 450*1.12 plus the 150 add-on at the same rate.
		s.InDelta(672, view.Amount, 1e-9)
		s.Len(view.AddOns, 1)
	})

	s.Run("check-in and check-out follow strict order", func() {
		bookingID := s.createBooking(s.createRequest())

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
			fmt.Sprintf("%s/%s/check-out", bookingsURL, bookingID), nil, s.token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "not been checked in")

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
			fmt.Sprintf("%s/%s/check-in", bookingsURL, bookingID), nil, s.token)
		s.Equal(http.StatusNoContent, rec.Code)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
			fmt.Sprintf("%s/%s/check-in", bookingsURL, bookingID), nil, s.token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "already checked in")

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
			fmt.Sprintf("%s/%s/check-out", bookingsURL, bookingID), nil, s.token)
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("cancellation refunds by the active policy and runs once", func() {
		bookingID := s.createBooking(s.createRequest())

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
			fmt.Sprintf("%s/%s/cancel", bookingsURL, bookingID), nil, s.token)

		var decision resdto.CancelBookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &decision)
		// 72 hours out, the widest tier refunds everything.
		s.True(decision.Eligible)
		s.Equal(100, decision.RefundPercent)
		s.InDelta(504, decision.RefundAmount, 1e-9)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
			fmt.Sprintf("%s/%s/cancel", bookingsURL, bookingID), nil, s.token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "already cancelled")

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet,
			fmt.Sprintf("%s/%s", bookingsURL, bookingID), nil, s.token)
		var view resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &view)
		s.True(view.IsCancelled)
		s.True(view.IsRefunded)
		s.NotNil(view.RefundID)
	})

	s.Run("another guest cannot touch the booking", func() {
		bookingID := s.createBooking(s.createRequest())
		_, otherToken := s.jwtHelper.CreateVerifiedUser(s.T(), s.DB, "other@example.com", user.RoleGuest)

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet,
			fmt.Sprintf("%s/%s", bookingsURL, bookingID), nil, otherToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Access denied")

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
			fmt.Sprintf("%s/%s/cancel", bookingsURL, bookingID), nil, otherToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Access denied")

		// An admin can.
		_, adminToken := s.jwtHelper.CreateVerifiedUser(s.T(), s.DB, "admin@example.com", user.RoleAdmin)
		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet,
			fmt.Sprintf("%s/%s", bookingsURL, bookingID), nil, adminToken)
		s.Equal(http.StatusOK, rec.Code)
	})
}

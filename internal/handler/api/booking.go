package api

import (
	"errors"
	"net/http"

	"resortly/internal/domain/booking"
	"resortly/internal/domain/catalog"
	"resortly/internal/domain/coupon"
	"resortly/internal/domain/user"
	reqdto "resortly/internal/handler/dto/request"
	resdto "resortly/internal/handler/dto/response"
	"resortly/internal/handler/httperr"
	"resortly/internal/handler/middleware"
	"resortly/internal/usecase/commands"
	"resortly/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	bookingCommands commands.BookingCommands
	bookingQueries  queries.BookingQueries
}

func NewBookingHandler(bookingCommands commands.BookingCommands, bookingQueries queries.BookingQueries) *BookingHandler {
	return &BookingHandler{
		bookingCommands: bookingCommands,
		bookingQueries:  bookingQueries,
	}
}

// @Summary Create booking
// @Description Price the selected items and create a booking
// @Tags bookings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.CreateBookingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	id, err := h.bookingCommands.Create(c.Request.Context(), req, userID)
	if err != nil {
		h.writeValuationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.CreateBookingResponse{ID: id})
}

// @Summary Price quote
// @Description Run the valuation without creating a booking
// @Tags bookings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.QuoteRequest true "Quote request"
// @Success 200 {object} resdto.QuoteResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings/quote [post]
func (h *BookingHandler) Quote(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req reqdto.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	breakdown, err := h.bookingQueries.Quote(c.Request.Context(), req, userID)
	if err != nil {
		h.writeValuationError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromPriceBreakdown(breakdown))
}

// @Summary Get booking
// @Tags bookings
// @Security BearerAuth
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	userID, role, bookingID, ok := h.requestScope(c)
	if !ok {
		return
	}

	view, err := h.bookingQueries.GetByID(c.Request.Context(), bookingID, userID, role)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		case errors.Is(err, queries.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	resp, err := resdto.FromBookingView(view)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary List own bookings
// @Tags bookings
// @Security BearerAuth
// @Produce json
// @Success 200 {array} resdto.BookingListResponse
// @Router /bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	items, err := h.bookingQueries.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	out := make([]*resdto.BookingListResponse, 0, len(items))
	for _, item := range items {
		resp, err := resdto.FromBookingListItem(item)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		out = append(out, resp)
	}
	c.JSON(http.StatusOK, out)
}

// @Summary Add items to booking
// @Description Charge extra items onto an open booking
// @Tags bookings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body reqdto.AddItemsRequest true "Add items request"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/items [post]
func (h *BookingHandler) AddItems(c *gin.Context) {
	userID, role, bookingID, ok := h.requestScope(c)
	if !ok {
		return
	}

	var req reqdto.AddItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.bookingCommands.AddItems(c.Request.Context(), bookingID, req, userID, role); err != nil {
		switch {
		case errors.Is(err, booking.ErrBookingClosed):
			c.JSON(http.StatusConflict, gin.H{"error": "Booking is cancelled or checked out"})
		default:
			h.writeLifecycleError(c, err)
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Check in
// @Tags bookings
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/check-in [post]
func (h *BookingHandler) CheckIn(c *gin.Context) {
	userID, role, bookingID, ok := h.requestScope(c)
	if !ok {
		return
	}

	if err := h.bookingCommands.CheckIn(c.Request.Context(), bookingID, userID, role); err != nil {
		h.writeLifecycleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Check out
// @Tags bookings
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/check-out [post]
func (h *BookingHandler) CheckOut(c *gin.Context) {
	userID, role, bookingID, ok := h.requestScope(c)
	if !ok {
		return
	}

	if err := h.bookingCommands.CheckOut(c.Request.Context(), bookingID, userID, role); err != nil {
		h.writeLifecycleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Cancel booking
// @Description Cancel and compute the refund under the active policy
// @Tags bookings
// @Security BearerAuth
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.CancelBookingResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c *gin.Context) {
	userID, role, bookingID, ok := h.requestScope(c)
	if !ok {
		return
	}

	decision, err := h.bookingCommands.Cancel(c.Request.Context(), bookingID, userID, role)
	if err != nil {
		h.writeLifecycleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRefundDecision(decision))
}

func (h *BookingHandler) requestScope(c *gin.Context) (uuid.UUID, user.Role, uuid.UUID, bool) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return uuid.Nil, "", uuid.Nil, false
	}
	role, ok := middleware.CurrentRole(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return uuid.Nil, "", uuid.Nil, false
	}
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return uuid.Nil, "", uuid.Nil, false
	}
	return userID, role, bookingID, true
}

func (h *BookingHandler) writeValuationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrItemNotFound), errors.Is(err, queries.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Catalog item not found"})
	case errors.Is(err, commands.ErrCouponNotFound), errors.Is(err, queries.ErrCouponNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Coupon not found"})
	case errors.Is(err, catalog.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be at least 1"})
	case errors.Is(err, booking.ErrInvalidStay):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Check-out must be after check-in"})
	case errors.Is(err, coupon.ErrCouponInactive):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Coupon is not active"})
	case errors.Is(err, coupon.ErrCouponExpired):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Coupon has expired"})
	case errors.Is(err, coupon.ErrCouponExhausted):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Coupon usage limit reached"})
	case errors.Is(err, coupon.ErrCouponInvalidAmount):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Coupon cannot apply to this amount"})
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

func (h *BookingHandler) writeLifecycleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
	case errors.Is(err, commands.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
	case errors.Is(err, commands.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Catalog item not found"})
	case errors.Is(err, commands.ErrNoActivePolicy):
		c.JSON(http.StatusConflict, gin.H{"error": "No active cancellation policy"})
	case errors.Is(err, booking.ErrAlreadyCancelled):
		c.JSON(http.StatusConflict, gin.H{"error": "Booking is already cancelled"})
	case errors.Is(err, booking.ErrAlreadyCheckedIn):
		c.JSON(http.StatusConflict, gin.H{"error": "Booking is already checked in"})
	case errors.Is(err, booking.ErrAlreadyCheckedOut):
		c.JSON(http.StatusConflict, gin.H{"error": "Booking is already checked out"})
	case errors.Is(err, booking.ErrNotCheckedIn):
		c.JSON(http.StatusConflict, gin.H{"error": "Booking has not been checked in"})
	case errors.Is(err, booking.ErrBookingClosed):
		c.JSON(http.StatusConflict, gin.H{"error": "Booking is cancelled or checked out"})
	case errors.Is(err, catalog.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be at least 1"})
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

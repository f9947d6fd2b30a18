package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domain "github.com/jazyl/booking-service/internal/domain/booking"
	"github.com/jazyl/booking-service/internal/dto"
	"github.com/jazyl/booking-service/internal/httperr"
	"github.com/jazyl/booking-service/internal/httpresp"
	"github.com/jazyl/booking-service/internal/middleware"
	"github.com/jazyl/booking-service/internal/timezone"
	usecase "github.com/jazyl/booking-service/internal/usecase/booking"
)

type BookingHandler struct {
	slots      *usecase.GetAvailableSlots
	create     *usecase.CreateBooking
	confirm    *usecase.ConfirmBooking
	cancel     *usecase.CancelBooking
	complete   *usecase.CompleteBooking
	noShow     *usecase.MarkNoShow
	list       *usecase.ListBookings
	myBookings *usecase.ListMyBookings
	byToken    *usecase.GetByCancellationToken
}

func NewBookingHandler(
	slots *usecase.GetAvailableSlots,
	create *usecase.CreateBooking,
	confirm *usecase.ConfirmBooking,
	cancel *usecase.CancelBooking,
	complete *usecase.CompleteBooking,
	noShow *usecase.MarkNoShow,
	list *usecase.ListBookings,
	myBookings *usecase.ListMyBookings,
	byToken *usecase.GetByCancellationToken,
) *BookingHandler {
	return &BookingHandler{
		slots:      slots,
		create:     create,
		confirm:    confirm,
		cancel:     cancel,
		complete:   complete,
		noShow:     noShow,
		list:       list,
		myBookings: myBookings,
		byToken:    byToken,
	}
}

// ======================================================
// AVAILABILITY (public)
// ======================================================

// GET /api/availability/slots?master_id=&service_id=&date=YYYY-MM-DD
func (h *BookingHandler) AvailableSlots(c *gin.Context) {
	tenant := middleware.CurrentTenant(c)

	masterID, err1 := uuid.Parse(c.Query("master_id"))
	serviceID, err2 := uuid.Parse(c.Query("service_id"))
	date, err3 := time.ParseInLocation("2006-01-02", c.Query("date"), timezone.Location(tenant.Timezone))
	if err1 != nil || err2 != nil || err3 != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "master_id, service_id and date are required")
		return
	}

	slots, err := h.slots.Execute(c.Request.Context(), domain.AvailabilityInput{
		TenantID:  tenant.ID,
		MasterID:  masterID,
		ServiceID: serviceID,
		Date:      date,
	})
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"date":  c.Query("date"),
		"slots": slots,
	})
}

// ======================================================
// CREATE (public)
// ======================================================

// POST /api/bookings
func (h *BookingHandler) Create(c *gin.Context) {
	tenant := middleware.CurrentTenant(c)

	var req dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, err.Error())
		return
	}

	b, err := h.create.Execute(c.Request.Context(), usecase.CreateBookingInput{
		TenantID:    tenant.ID,
		MasterID:    req.MasterID,
		ServiceID:   req.ServiceID,
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		ClientPhone: req.ClientPhone,
		Date:        req.Date,
		Notes:       req.Notes,
	})
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	httpresp.Created(c, dto.BookingCreatedResponse{
		Booking:           b,
		ConfirmationToken: b.ConfirmationToken,
		CancellationToken: b.CancellationToken,
	})
}

// ======================================================
// TOKEN FLOWS (public, no tenant header needed)
// ======================================================

// POST /api/bookings/:id/confirm?token=
func (h *BookingHandler) Confirm(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.NotFound(c, httperr.CodeNotFound, "booking not found")
		return
	}

	b, err := h.confirm.Execute(c.Request.Context(), bookingID, c.Query("token"))
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	httpresp.OK(c, b)
}

// POST /api/bookings/:id/cancel?token=
func (h *BookingHandler) Cancel(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.NotFound(c, httperr.CodeNotFound, "booking not found")
		return
	}

	// Reason body is optional.
	var req dto.CancelBookingRequest
	_ = c.ShouldBindJSON(&req)

	b, err := h.cancel.Execute(c.Request.Context(), bookingID, c.Query("token"), req.Reason)
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	httpresp.OK(c, b)
}

// GET /api/bookings/:id?cancellation_token=
//
// Backs the cancellation page: the booking summary plus whether the cancel
// button should be enabled. The token is the only credential.
func (h *BookingHandler) GetByToken(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.NotFound(c, httperr.CodeNotFound, "booking not found")
		return
	}

	item, err := h.byToken.Execute(c.Request.Context(), bookingID, c.Query("cancellation_token"))
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	httpresp.OK(c, item)
}

// ======================================================
// MY BOOKINGS (public)
// ======================================================

// GET /api/my-bookings?email=
func (h *BookingHandler) MyBookings(c *gin.Context) {
	tenant := middleware.CurrentTenant(c)

	items, err := h.myBookings.Execute(c.Request.Context(), tenant.ID, c.Query("email"))
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	httpresp.List(c, items)
}

// ======================================================
// STAFF
// ======================================================

// GET /api/admin/bookings?date_from=&date_to=&master_id=&status=
func (h *BookingHandler) ListStaff(c *gin.Context) {
	tenantID := middleware.AuthTenantID(c)

	filter, err := parseBookingFilter(c)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, err.Error())
		return
	}

	bookings, err := h.list.Execute(c.Request.Context(), tenantID, filter)
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	httpresp.List(c, bookings)
}

// POST /api/admin/bookings/:id/complete
func (h *BookingHandler) Complete(c *gin.Context) {
	h.staffTransition(c, func(tenantID, userID, bookingID uuid.UUID) (any, error) {
		return h.complete.Execute(c.Request.Context(), tenantID, userID, bookingID)
	})
}

// POST /api/admin/bookings/:id/no-show
func (h *BookingHandler) NoShow(c *gin.Context) {
	h.staffTransition(c, func(tenantID, userID, bookingID uuid.UUID) (any, error) {
		return h.noShow.Execute(c.Request.Context(), tenantID, userID, bookingID)
	})
}

func (h *BookingHandler) staffTransition(
	c *gin.Context,
	fn func(tenantID, userID, bookingID uuid.UUID) (any, error),
) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.NotFound(c, httperr.CodeNotFound, "booking not found")
		return
	}

	b, err := fn(middleware.AuthTenantID(c), middleware.AuthUserID(c), bookingID)
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	c.JSON(http.StatusOK, b)
}

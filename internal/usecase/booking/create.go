package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jazyl/booking-service/internal/audit"
	domain "github.com/jazyl/booking-service/internal/domain/booking"
	"github.com/jazyl/booking-service/internal/httperr"
	"github.com/jazyl/booking-service/internal/models"
	"github.com/jazyl/booking-service/internal/notify"
	"github.com/jazyl/booking-service/internal/timezone"
	"github.com/jazyl/booking-service/internal/tokens"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	TenantID  uuid.UUID
	MasterID  uuid.UUID
	ServiceID uuid.UUID

	ClientName  string
	ClientEmail string
	ClientPhone string

	// "2006-01-02 15:04:05" in the tenant's local time zone.
	Date  string
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	notifier *notify.Dispatcher
	now      func() time.Time
}

func NewCreateBooking(
	repo domain.Repository,
	auditDisp *audit.Dispatcher,
	notifier *notify.Dispatcher,
) *CreateBooking {
	return &CreateBooking{
		repo:     repo,
		audit:    auditDisp,
		notifier: notifier,
		now:      time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute re-validates the requested interval against the same rules the
// slot calculator applies, then inserts atomically. A conflict at write
// time means another guest took the slot between querying and booking; the
// caller is told to re-pick a time.
func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	tenant, err := uc.repo.GetTenantByID(ctx, in.TenantID)
	if err != nil || !tenant.IsActive {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	loc := timezone.Location(tenant.Timezone)

	start, err := parseDateTime(in.Date, loc)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeValidation)
	}

	master, err := uc.repo.GetMaster(ctx, in.TenantID, in.MasterID)
	if err != nil || !master.IsActive {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	service, err := uc.repo.GetService(ctx, in.TenantID, in.ServiceID)
	if err != nil || !service.IsActive {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	end := start.Add(time.Duration(service.Duration) * time.Minute)

	if err := uc.validateInterval(ctx, tenant, master.ID, start, end); err != nil {
		return nil, err
	}

	client, err := uc.repo.GetOrCreateClient(
		ctx,
		in.TenantID,
		in.ClientName,
		in.ClientPhone,
		in.ClientEmail,
	)
	if err != nil {
		return nil, err
	}

	b := &models.Booking{
		TenantID:  in.TenantID,
		MasterID:  master.ID,
		ClientID:  client.ID,
		ServiceID: service.ID,

		Date:    start,
		EndTime: end,
		Price:   service.Price,

		Status: string(domain.InitialStatus()),
		Notes:  in.Notes,

		ConfirmationToken: tokens.New(),
		CancellationToken: tokens.New(),
	}

	if err := uc.repo.CreateBookingIfFree(ctx, b); err != nil {
		if httperr.IsExclusionConflict(err) || httperr.IsBusiness(err, httperr.CodeSlotUnavailable) {
			uc.audit.Dispatch(audit.Event{
				TenantID: in.TenantID,
				Action:   "booking_conflict",
				Entity:   "booking",
				Metadata: map[string]any{
					"master_id": master.ID,
					"date":      start,
				},
			})
			return nil, httperr.ErrBusiness(httperr.CodeSlotUnavailable)
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		TenantID: in.TenantID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	uc.notifier.EnqueueConfirmation(notify.BookingEmail{
		To:            client.Email,
		ClientName:    client.FullName(),
		TenantName:    tenant.Name,
		TenantAddress: tenant.Address,
		TenantPhone:   tenant.Phone,
		Subdomain:     tenant.Subdomain,
		MasterName:    master.DisplayName,
		ServiceName:   service.Name,
		Date:          start,
		Price:         b.Price,
		BookingID:     b.ID,
		ConfirmToken:  b.ConfirmationToken,
		CancelToken:   b.CancellationToken,
	})

	return b, nil
}

// validateInterval applies the slot calculator's rules at write time:
// advance window, working schedule, grid alignment, blocks and active
// bookings. Everything a stale client could get wrong maps to
// slot_unavailable so the frontend re-queries availability.
func (uc *CreateBooking) validateInterval(
	ctx context.Context,
	tenant *models.Tenant,
	masterID uuid.UUID,
	start time.Time,
	end time.Time,
) error {

	settings := normalizeSettings(tenant.BookingSettings.Data())
	now := uc.now().In(start.Location())

	if start.Before(now.Add(time.Duration(settings.MinAdvanceHours) * time.Hour)) {
		return httperr.ErrBusiness(httperr.CodeSlotUnavailable)
	}
	if start.After(now.AddDate(0, 0, settings.MaxAdvanceDays).Add(24 * time.Hour)) {
		return httperr.ErrBusiness(httperr.CodeSlotUnavailable)
	}

	sched, err := uc.repo.GetSchedule(ctx, masterID, scheduleDay(start))
	if err != nil || !sched.IsWorking {
		return httperr.ErrBusiness(httperr.CodeSlotUnavailable)
	}

	workStart, okStart := parseHM(sched.StartTime, start)
	workEnd, okEnd := parseHM(sched.EndTime, start)
	if !okStart || !okEnd {
		return httperr.ErrBusiness(httperr.CodeSlotUnavailable)
	}

	if start.Before(workStart) || end.After(workEnd) {
		return httperr.ErrBusiness(httperr.CodeSlotUnavailable)
	}

	// Starts must sit on the tenant-wide slot grid.
	grid := time.Duration(settings.SlotDuration) * time.Minute
	if start.Sub(workStart)%grid != 0 {
		return httperr.ErrBusiness(httperr.CodeSlotUnavailable)
	}

	blocks, err := uc.repo.ListBlockTimes(ctx, masterID, start, end)
	if err != nil {
		return err
	}
	if overlapsBlock(blocks, start, end) {
		return httperr.ErrBusiness(httperr.CodeSlotUnavailable)
	}

	return nil
}

func parseDateTime(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02 15:04:05", s, loc)
	if err != nil {
		t, err = time.ParseInLocation("2006-01-02 15:04", s, loc)
	}
	return t, err
}

package booking

import (
	"context"
	"time"

	domain "github.com/jazyl/booking-service/internal/domain/booking"
	"github.com/jazyl/booking-service/internal/httperr"
	"github.com/jazyl/booking-service/internal/models"
	"github.com/jazyl/booking-service/internal/timezone"
)

type GetAvailableSlots struct {
	repo domain.Repository
	now  func() time.Time
}

func NewGetAvailableSlots(repo domain.Repository) *GetAvailableSlots {
	return &GetAvailableSlots{
		repo: repo,
		now:  time.Now,
	}
}

// Execute computes the bookable start times ("HH:MM", ascending) for a
// master, service and calendar day. Candidates start on the tenant-wide
// slot grid but consume the full service duration, so a long service can
// span several grid cells and must still end before the schedule closes.
// No-availability conditions return an empty slice, never an error.
func (uc *GetAvailableSlots) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]string, error) {

	tenant, err := uc.repo.GetTenantByID(ctx, in.TenantID)
	if err != nil || !tenant.IsActive {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	master, err := uc.repo.GetMaster(ctx, in.TenantID, in.MasterID)
	if err != nil || !master.IsActive {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	service, err := uc.repo.GetService(ctx, in.TenantID, in.ServiceID)
	if err != nil || !service.IsActive {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	settings := normalizeSettings(tenant.BookingSettings.Data())
	loc := timezone.Location(tenant.Timezone)
	now := uc.now().In(loc)

	dayStart := time.Date(
		in.Date.Year(), in.Date.Month(), in.Date.Day(),
		0, 0, 0, 0,
		loc,
	)
	dayEnd := dayStart.Add(24 * time.Hour)

	// Past days and days beyond the booking horizon have no slots at all.
	if dayEnd.Before(now) {
		return []string{}, nil
	}
	horizon := now.AddDate(0, 0, settings.MaxAdvanceDays)
	if dayStart.After(horizon) {
		return []string{}, nil
	}

	sched, err := uc.repo.GetSchedule(ctx, in.MasterID, scheduleDay(dayStart))
	if err != nil || !sched.IsWorking {
		return []string{}, nil
	}

	workStart, okStart := parseHM(sched.StartTime, dayStart)
	workEnd, okEnd := parseHM(sched.EndTime, dayStart)
	if !okStart || !okEnd || !workStart.Before(workEnd) {
		return []string{}, nil
	}

	bookings, err := uc.repo.ListActiveBookings(ctx, in.MasterID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	blocks, err := uc.repo.ListBlockTimes(ctx, in.MasterID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	duration := time.Duration(service.Duration) * time.Minute
	grid := time.Duration(settings.SlotDuration) * time.Minute
	minAllowed := now.Add(time.Duration(settings.MinAdvanceHours) * time.Hour)

	var slots []string

	for cur := workStart; !cur.Add(duration).After(workEnd); cur = cur.Add(grid) {
		if cur.Before(minAllowed) {
			continue
		}

		slotEnd := cur.Add(duration)

		if overlapsBooking(bookings, cur, slotEnd) {
			continue
		}
		if overlapsBlock(blocks, cur, slotEnd) {
			continue
		}

		slots = append(slots, cur.Format(domain.SlotTimeFormat))
	}

	if slots == nil {
		return []string{}, nil
	}
	return slots, nil
}

// --------------------------------------------------
// Helpers shared by the availability and create paths
// --------------------------------------------------

func normalizeSettings(s models.BookingSettings) models.BookingSettings {
	def := models.DefaultBookingSettings()
	if s.SlotDuration <= 0 {
		s.SlotDuration = def.SlotDuration
	}
	if s.MinAdvanceHours < 0 {
		s.MinAdvanceHours = def.MinAdvanceHours
	}
	if s.MaxAdvanceDays <= 0 {
		s.MaxAdvanceDays = def.MaxAdvanceDays
	}
	if s.CancellationHours <= 0 {
		s.CancellationHours = def.CancellationHours
	}
	return s
}

// scheduleDay maps a calendar day to the Monday-indexed weekday stored on
// master schedules (0 = Monday .. 6 = Sunday).
func scheduleDay(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// parseHM anchors a stored "HH:MM" wall time on the given day. A malformed
// value written outside the schedule API reports false so the day reads as
// closed instead of silently starting at midnight.
func parseHM(hm string, day time.Time) (time.Time, bool) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(
		day.Year(), day.Month(), day.Day(),
		t.Hour(), t.Minute(), 0, 0,
		day.Location(),
	), true
}

func overlapsBooking(bookings []models.Booking, start, end time.Time) bool {
	for i := range bookings {
		if domain.Overlaps(&bookings[i], start, end) {
			return true
		}
	}
	return false
}

func overlapsBlock(blocks []models.BlockTime, start, end time.Time) bool {
	for _, bl := range blocks {
		if start.Before(bl.EndTime) && end.After(bl.StartTime) {
			return true
		}
	}
	return false
}

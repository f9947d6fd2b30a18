package booking

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	domain "github.com/jazyl/booking-service/internal/domain/booking"
	"github.com/jazyl/booking-service/internal/httperr"
	"github.com/jazyl/booking-service/internal/models"
)

// ======================================================
// In-memory repository for use case tests
// ======================================================

type scheduleKey struct {
	masterID uuid.UUID
	day      int
}

type fakeRepo struct {
	tenants   map[uuid.UUID]*models.Tenant
	masters   map[uuid.UUID]*models.Master
	services  map[uuid.UUID]*models.Service
	schedules map[scheduleKey]*models.MasterSchedule
	blocks    []models.BlockTime
	clients   []*models.Client
	bookings  map[uuid.UUID]*models.Booking
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		tenants:   map[uuid.UUID]*models.Tenant{},
		masters:   map[uuid.UUID]*models.Master{},
		services:  map[uuid.UUID]*models.Service{},
		schedules: map[scheduleKey]*models.MasterSchedule{},
		bookings:  map[uuid.UUID]*models.Booking{},
	}
}

func (r *fakeRepo) GetTenantByID(_ context.Context, id uuid.UUID) (*models.Tenant, error) {
	t, ok := r.tenants[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (r *fakeRepo) GetMaster(_ context.Context, tenantID, masterID uuid.UUID) (*models.Master, error) {
	m, ok := r.masters[masterID]
	if !ok || m.TenantID != tenantID {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (r *fakeRepo) GetService(_ context.Context, tenantID, serviceID uuid.UUID) (*models.Service, error) {
	s, ok := r.services[serviceID]
	if !ok || s.TenantID != tenantID {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *fakeRepo) GetSchedule(_ context.Context, masterID uuid.UUID, dayOfWeek int) (*models.MasterSchedule, error) {
	s, ok := r.schedules[scheduleKey{masterID, dayOfWeek}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *fakeRepo) ListBlockTimes(_ context.Context, masterID uuid.UUID, start, end time.Time) ([]models.BlockTime, error) {
	var out []models.BlockTime
	for _, b := range r.blocks {
		if b.MasterID == masterID && b.StartTime.Before(end) && b.EndTime.After(start) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeRepo) GetOrCreateClient(_ context.Context, tenantID uuid.UUID, name, phone, email string) (*models.Client, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, c := range r.clients {
		if c.TenantID == tenantID && (c.Email == email || c.Phone == phone) {
			return c, nil
		}
	}
	parts := strings.SplitN(strings.TrimSpace(name), " ", 2)
	c := &models.Client{
		ID:        uuid.New(),
		TenantID:  tenantID,
		FirstName: parts[0],
		Phone:     phone,
		Email:     email,
	}
	if len(parts) == 2 {
		c.LastName = parts[1]
	}
	r.clients = append(r.clients, c)
	return c, nil
}

func (r *fakeRepo) CreateBookingIfFree(_ context.Context, b *models.Booking) error {
	for _, other := range r.bookings {
		if other.MasterID != b.MasterID || !domain.Status(other.Status).IsActive() {
			continue
		}
		if domain.Overlaps(other, b.Date, b.EndTime) {
			return httperr.ErrBusiness(httperr.CodeSlotUnavailable)
		}
	}
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	stored := *b
	r.bookings[b.ID] = &stored
	return nil
}

func (r *fakeRepo) ListActiveBookings(_ context.Context, masterID uuid.UUID, start, end time.Time) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.MasterID != masterID || !domain.Status(b.Status).IsActive() {
			continue
		}
		if !b.Date.Before(start) && b.Date.Before(end) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeRepo) GetBookingByID(_ context.Context, id uuid.UUID) (*models.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeRepo) GetBooking(_ context.Context, tenantID, id uuid.UUID) (*models.Booking, error) {
	b, ok := r.bookings[id]
	if !ok || b.TenantID != tenantID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeRepo) UpdateBooking(_ context.Context, b *models.Booking) error {
	if _, ok := r.bookings[b.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *fakeRepo) ListBookings(_ context.Context, tenantID uuid.UUID, filter domain.BookingFilter) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.TenantID != tenantID {
			continue
		}
		if filter.DateFrom != nil && b.Date.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && !b.Date.Before(*filter.DateTo) {
			continue
		}
		if filter.MasterID != nil && b.MasterID != *filter.MasterID {
			continue
		}
		if filter.Status != nil && b.Status != string(*filter.Status) {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

func (r *fakeRepo) ListBookingsByClientEmail(_ context.Context, tenantID uuid.UUID, email string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.TenantID != tenantID {
			continue
		}
		for _, c := range r.clients {
			if c.ID == b.ClientID && c.Email == strings.ToLower(email) {
				out = append(out, *b)
			}
		}
	}
	return out, nil
}

var _ domain.Repository = (*fakeRepo)(nil)

// ======================================================
// Shared fixture
// ======================================================

type fixture struct {
	repo    *fakeRepo
	tenant  *models.Tenant
	master  *models.Master
	service *models.Service
}

// newFixture builds an active UTC tenant with default booking settings, one
// active master and one 45-minute service.
func newFixture() *fixture {
	repo := newFakeRepo()

	tenant := &models.Tenant{
		ID:              uuid.New(),
		Subdomain:       "downtown",
		Name:            "Downtown Cuts",
		Timezone:        "UTC",
		BookingSettings: datatypes.NewJSONType(models.DefaultBookingSettings()),
		IsActive:        true,
	}
	repo.tenants[tenant.ID] = tenant

	master := &models.Master{
		ID:          uuid.New(),
		TenantID:    tenant.ID,
		DisplayName: "Alex",
		IsActive:    true,
	}
	repo.masters[master.ID] = master

	service := &models.Service{
		ID:       uuid.New(),
		TenantID: tenant.ID,
		Name:     "Haircut + Beard",
		Price:    50,
		Duration: 45,
		IsActive: true,
	}
	repo.services[service.ID] = service

	return &fixture{repo: repo, tenant: tenant, master: master, service: service}
}

func (f *fixture) setSettings(s models.BookingSettings) {
	f.tenant.BookingSettings = datatypes.NewJSONType(s)
}

func (f *fixture) setSchedule(day int, start, end string, working bool) {
	f.repo.schedules[scheduleKey{f.master.ID, day}] = &models.MasterSchedule{
		ID:        uuid.New(),
		MasterID:  f.master.ID,
		DayOfWeek: day,
		StartTime: start,
		EndTime:   end,
		IsWorking: working,
	}
}

func (f *fixture) addBooking(start, end time.Time, status domain.Status) *models.Booking {
	b := &models.Booking{
		ID:        uuid.New(),
		TenantID:  f.tenant.ID,
		MasterID:  f.master.ID,
		ServiceID: f.service.ID,
		Date:      start,
		EndTime:   end,
		Status:    string(status),
	}
	f.repo.bookings[b.ID] = b
	return b
}

func (f *fixture) addBlock(start, end time.Time, reason string) {
	f.repo.blocks = append(f.repo.blocks, models.BlockTime{
		ID:        uuid.New(),
		MasterID:  f.master.ID,
		StartTime: start,
		EndTime:   end,
		Reason:    reason,
	})
}

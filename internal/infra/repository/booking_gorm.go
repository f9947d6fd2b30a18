package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/jazyl/booking-service/internal/domain/booking"
	"github.com/jazyl/booking-service/internal/httperr"
	"github.com/jazyl/booking-service/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Tenant
// --------------------------------------------------

func (r *BookingGormRepository) GetTenantByID(
	ctx context.Context,
	id uuid.UUID,
) (*models.Tenant, error) {

	var tenant models.Tenant
	if err := r.db.WithContext(ctx).First(&tenant, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}

// --------------------------------------------------
// Master / Service
// --------------------------------------------------

func (r *BookingGormRepository) GetMaster(
	ctx context.Context,
	tenantID uuid.UUID,
	masterID uuid.UUID,
) (*models.Master, error) {

	var master models.Master
	if err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", masterID, tenantID).
		First(&master).Error; err != nil {
		return nil, err
	}
	return &master, nil
}

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	tenantID uuid.UUID,
	serviceID uuid.UUID,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", serviceID, tenantID).
		First(&service).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

// --------------------------------------------------
// Schedule
// --------------------------------------------------

func (r *BookingGormRepository) GetSchedule(
	ctx context.Context,
	masterID uuid.UUID,
	dayOfWeek int,
) (*models.MasterSchedule, error) {

	var sched models.MasterSchedule
	if err := r.db.WithContext(ctx).
		Where("master_id = ? AND day_of_week = ?", masterID, dayOfWeek).
		First(&sched).Error; err != nil {
		return nil, err
	}
	return &sched, nil
}

func (r *BookingGormRepository) ListBlockTimes(
	ctx context.Context,
	masterID uuid.UUID,
	start time.Time,
	end time.Time,
) ([]models.BlockTime, error) {

	var blocks []models.BlockTime
	if err := r.db.WithContext(ctx).
		Where(
			"master_id = ? AND start_time < ? AND end_time > ?",
			masterID, end, start,
		).
		Order("start_time ASC").
		Find(&blocks).Error; err != nil {
		return nil, err
	}
	return blocks, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *BookingGormRepository) GetOrCreateClient(
	ctx context.Context,
	tenantID uuid.UUID,
	name string,
	phone string,
	email string,
) (*models.Client, error) {

	email = strings.ToLower(strings.TrimSpace(email))

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND (email = ? OR phone = ?)", tenantID, email, phone).
		First(&client).Error

	if err == nil {
		return &client, nil
	}

	first, last := splitName(name)
	client = models.Client{
		TenantID:  tenantID,
		FirstName: first,
		LastName:  last,
		Phone:     phone,
		Email:     email,
	}

	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		// idx_clients_tenant_email: a concurrent first booking by the same
		// guest won the insert, take their row.
		if httperr.IsUniqueViolation(err) {
			var existing models.Client
			if readErr := r.db.WithContext(ctx).
				Where("tenant_id = ? AND email = ?", tenantID, email).
				First(&existing).Error; readErr == nil {
				return &existing, nil
			}
		}
		return nil, err
	}

	return &client, nil
}

func splitName(name string) (string, string) {
	parts := strings.SplitN(strings.TrimSpace(name), " ", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return parts[0], ""
}

// --------------------------------------------------
// Booking (create / conflict)
// --------------------------------------------------

// CreateBookingIfFree locks conflicting rows, re-checks the interval and
// inserts in one transaction. The bookings_no_overlap exclusion constraint
// is the storage-level backstop when replicas race at READ COMMITTED.
func (r *BookingGormRepository) CreateBookingIfFree(
	ctx context.Context,
	b *models.Booking,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		// Postgres forbids FOR UPDATE on aggregates, so the re-check
		// fetches the conflicting rows themselves.
		var conflicts []models.Booking
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"master_id = ? AND status IN ? AND date < ? AND end_time > ?",
				b.MasterID,
				[]string{string(domain.StatusPending), string(domain.StatusConfirmed)},
				b.EndTime,
				b.Date,
			).
			Limit(1).
			Find(&conflicts).Error; err != nil {
			return err
		}

		if len(conflicts) > 0 {
			return httperr.ErrBusiness(httperr.CodeSlotUnavailable)
		}

		return tx.Create(b).Error
	})
}

func (r *BookingGormRepository) ListActiveBookings(
	ctx context.Context,
	masterID uuid.UUID,
	start time.Time,
	end time.Time,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Select("id", "date", "end_time", "status").
		Where(
			"master_id = ? AND status IN ? AND date >= ? AND date < ?",
			masterID,
			[]string{string(domain.StatusPending), string(domain.StatusConfirmed)},
			start, end,
		).
		Order("date ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// --------------------------------------------------
// Booking (state change)
// --------------------------------------------------

func (r *BookingGormRepository) GetBookingByID(
	ctx context.Context,
	id uuid.UUID,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Master").
		Preload("Service").
		First(&b, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	tenantID uuid.UUID,
	id uuid.UUID,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Master").
		Preload("Service").
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Save(b).Error
}

// --------------------------------------------------
// Booking (queries)
// --------------------------------------------------

func (r *BookingGormRepository) ListBookings(
	ctx context.Context,
	tenantID uuid.UUID,
	filter domain.BookingFilter,
) ([]models.Booking, error) {

	q := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Master").
		Preload("Service").
		Where("tenant_id = ?", tenantID)

	if filter.DateFrom != nil {
		q = q.Where("date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		q = q.Where("date < ?", *filter.DateTo)
	}
	if filter.MasterID != nil {
		q = q.Where("master_id = ?", *filter.MasterID)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", string(*filter.Status))
	}

	var bookings []models.Booking
	if err := q.Order("date ASC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingGormRepository) ListBookingsByClientEmail(
	ctx context.Context,
	tenantID uuid.UUID,
	email string,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Master").
		Preload("Service").
		Joins("JOIN clients ON clients.id = bookings.client_id").
		Where("bookings.tenant_id = ? AND clients.email = ?", tenantID, strings.ToLower(email)).
		Order("bookings.date DESC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)

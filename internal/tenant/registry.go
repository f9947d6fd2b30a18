package tenant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/jazyl/booking-service/internal/httperr"
	"github.com/jazyl/booking-service/internal/models"
	"github.com/jazyl/booking-service/internal/timezone"
)

// cacheTTL bounds staleness after out-of-band DB edits; writes through the
// registry invalidate immediately.
const cacheTTL = 5 * time.Minute

var subdomainRe = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?$`)

// Subdomains claimed by the platform itself.
var reservedSubdomains = map[string]bool{
	"www":   true,
	"api":   true,
	"app":   true,
	"admin": true,
	"mail":  true,
}

// ======================================================
// REGISTRY
// ======================================================

// Registry resolves and manages tenants. Subdomain lookups sit on the hot
// path of every public request, so they go through a redis cache; a nil
// redis client degrades to plain DB reads.
type Registry struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewRegistry(db *gorm.DB, rdb *redis.Client) *Registry {
	return &Registry{db: db, redis: rdb}
}

func cacheKey(subdomain string) string {
	return fmt.Sprintf("tenant:subdomain:%s", subdomain)
}

// ======================================================
// LOOKUPS
// ======================================================

// BySubdomain resolves an active tenant by its subdomain, cache-aside.
func (r *Registry) BySubdomain(ctx context.Context, subdomain string) (*models.Tenant, error) {
	subdomain = strings.ToLower(strings.TrimSpace(subdomain))
	if !subdomainRe.MatchString(subdomain) {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	if t := r.fromCache(ctx, subdomain); t != nil {
		return t, nil
	}

	var t models.Tenant
	err := r.db.WithContext(ctx).
		Where("subdomain = ? AND is_active = ?", subdomain, true).
		First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeNotFound)
		}
		return nil, err
	}

	r.toCache(ctx, &t)
	return &t, nil
}

func (r *Registry) ByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	var t models.Tenant
	err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeNotFound)
		}
		return nil, err
	}
	return &t, nil
}

func (r *Registry) fromCache(ctx context.Context, subdomain string) *models.Tenant {
	if r.redis == nil {
		return nil
	}

	data, err := r.redis.Get(ctx, cacheKey(subdomain)).Bytes()
	if err != nil {
		return nil
	}

	var t models.Tenant
	if json.Unmarshal(data, &t) != nil {
		return nil
	}
	return &t
}

func (r *Registry) toCache(ctx context.Context, t *models.Tenant) {
	if r.redis == nil {
		return
	}
	data, err := json.Marshal(t)
	if err != nil {
		return
	}
	// Cache errors never fail a lookup.
	r.redis.Set(ctx, cacheKey(t.Subdomain), data, cacheTTL)
}

func (r *Registry) invalidate(ctx context.Context, subdomain string) {
	if r.redis == nil {
		return
	}
	r.redis.Del(ctx, cacheKey(subdomain))
}

// ======================================================
// WRITES
// ======================================================

// Create registers a tenant, filling default working hours and settings
// for zero-valued fields.
func (r *Registry) Create(ctx context.Context, t *models.Tenant) error {
	t.Subdomain = strings.ToLower(strings.TrimSpace(t.Subdomain))

	if !subdomainRe.MatchString(t.Subdomain) || reservedSubdomains[t.Subdomain] {
		return httperr.ErrBusiness(httperr.CodeValidation)
	}
	if t.Timezone == "" {
		t.Timezone = timezone.DefaultTimezone
	}
	if !timezone.IsValid(t.Timezone) {
		return httperr.ErrBusiness(httperr.CodeValidation)
	}

	if len(t.WorkingHours.Data()) == 0 {
		t.WorkingHours = datatypes.NewJSONType(models.DefaultWorkingHours())
	}
	if t.BookingSettings.Data() == (models.BookingSettings{}) {
		t.BookingSettings = datatypes.NewJSONType(models.DefaultBookingSettings())
	}
	if t.NotificationSettings.Data().ReminderHours == nil {
		t.NotificationSettings = datatypes.NewJSONType(models.DefaultNotificationSettings())
	}
	t.IsActive = true

	return r.db.WithContext(ctx).Create(t).Error
}

// Update persists tenant changes and drops the cache entry so the next
// public request sees them.
func (r *Registry) Update(ctx context.Context, t *models.Tenant) error {
	if t.Timezone != "" && !timezone.IsValid(t.Timezone) {
		return httperr.ErrBusiness(httperr.CodeValidation)
	}
	if err := r.db.WithContext(ctx).Save(t).Error; err != nil {
		return err
	}
	r.invalidate(ctx, t.Subdomain)
	return nil
}

// Deactivate soft-disables a tenant; its subdomain stops resolving.
func (r *Registry) Deactivate(ctx context.Context, id uuid.UUID) error {
	t, err := r.ByID(ctx, id)
	if err != nil {
		return err
	}

	t.IsActive = false
	if err := r.db.WithContext(ctx).Save(t).Error; err != nil {
		return err
	}
	r.invalidate(ctx, t.Subdomain)
	return nil
}

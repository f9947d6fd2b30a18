package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/jazyl/booking-service/internal/domain/booking"
	"github.com/jazyl/booking-service/internal/httperr"
	"github.com/jazyl/booking-service/internal/httpresp"
	"github.com/jazyl/booking-service/internal/middleware"
	"github.com/jazyl/booking-service/internal/models"
	"github.com/jazyl/booking-service/internal/tenant"
	"github.com/jazyl/booking-service/internal/timezone"
)

type DashboardHandler struct {
	db       *gorm.DB
	registry *tenant.Registry
}

func NewDashboardHandler(db *gorm.DB, registry *tenant.Registry) *DashboardHandler {
	return &DashboardHandler{db: db, registry: registry}
}

// GET /api/admin/dashboard/today
//
// Today's numbers in the tenant's local day: bookings by status, completed
// revenue and the next upcoming appointments.
func (h *DashboardHandler) Today(c *gin.Context) {
	tenantID := middleware.AuthTenantID(c)

	t, err := h.registry.ByID(c.Request.Context(), tenantID)
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	loc := timezone.Location(t.Timezone)
	now := time.Now().In(loc)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.Add(24 * time.Hour)

	type statusCount struct {
		Status string
		Count  int64
	}
	var counts []statusCount
	if err := h.db.
		Model(&models.Booking{}).
		Select("status, COUNT(*) as count").
		Where("tenant_id = ? AND date >= ? AND date < ?", tenantID, dayStart, dayEnd).
		Group("status").
		Scan(&counts).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to load dashboard")
		return
	}

	byStatus := map[string]int64{}
	var total int64
	for _, sc := range counts {
		byStatus[sc.Status] = sc.Count
		total += sc.Count
	}

	var revenue float64
	h.db.
		Model(&models.Booking{}).
		Select("COALESCE(SUM(price), 0)").
		Where(
			"tenant_id = ? AND status = ? AND date >= ? AND date < ?",
			tenantID, string(domain.StatusCompleted), dayStart, dayEnd,
		).
		Scan(&revenue)

	var upcoming []models.Booking
	h.db.
		Preload("Client").
		Preload("Master").
		Preload("Service").
		Where(
			"tenant_id = ? AND status IN ? AND date >= ? AND date < ?",
			tenantID,
			[]string{string(domain.StatusPending), string(domain.StatusConfirmed)},
			now, dayEnd,
		).
		Order("date ASC").
		Limit(10).
		Find(&upcoming)

	httpresp.OK(c, gin.H{
		"date":      dayStart.Format("2006-01-02"),
		"total":     total,
		"by_status": byStatus,
		"revenue":   revenue,
		"upcoming":  upcoming,
	})
}

package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jazyl/booking-service/internal/httperr"
	"github.com/jazyl/booking-service/internal/httpresp"
	"github.com/jazyl/booking-service/internal/middleware"
	"github.com/jazyl/booking-service/internal/models"
)

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

// GET /api/admin/audit-logs?action=&limit=
func (h *AuditLogsHandler) List(c *gin.Context) {
	tenantID := middleware.AuthTenantID(c)

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	q := h.db.Where("tenant_id = ?", tenantID)
	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to list audit logs")
		return
	}

	httpresp.List(c, logs)
}

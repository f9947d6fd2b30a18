package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jazyl/booking-service/internal/httperr"
	"github.com/jazyl/booking-service/internal/httpresp"
	"github.com/jazyl/booking-service/internal/middleware"
	"github.com/jazyl/booking-service/internal/models"
)

type ClientHandler struct {
	db *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{db: db}
}

// ======================================================
// LIST CLIENTS (staff)
// ======================================================

// GET /api/admin/clients?query=
func (h *ClientHandler) List(c *gin.Context) {
	tenantID := middleware.AuthTenantID(c)

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Where("tenant_id = ?", tenantID)

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like, like,
		)
	}

	var clients []models.Client
	if err := q.
		Order("created_at DESC").
		Find(&clients).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to list clients")
		return
	}

	httpresp.List(c, clients)
}

package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jazyl/booking-service/internal/httperr"
	"github.com/jazyl/booking-service/internal/httpresp"
	"github.com/jazyl/booking-service/internal/middleware"
	"github.com/jazyl/booking-service/internal/models"
	"github.com/jazyl/booking-service/internal/tenant"
)

type MeHandler struct {
	db       *gorm.DB
	registry *tenant.Registry
}

func NewMeHandler(db *gorm.DB, registry *tenant.Registry) *MeHandler {
	return &MeHandler{db: db, registry: registry}
}

// GET /api/admin/me
func (h *MeHandler) GetMe(c *gin.Context) {
	userID := middleware.AuthUserID(c)

	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		httperr.NotFound(c, httperr.CodeNotFound, "user not found")
		return
	}

	t, err := h.registry.ByID(c.Request.Context(), user.TenantID)
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"user":   user,
		"tenant": t,
	})
}

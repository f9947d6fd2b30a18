package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jazyl/booking-service/internal/httperr"
	"github.com/jazyl/booking-service/internal/httpresp"
	"github.com/jazyl/booking-service/internal/middleware"
	"github.com/jazyl/booking-service/internal/models"
)

type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

type serviceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Duration    int     `json:"duration" binding:"required,gt=0"`
	IsPopular   bool    `json:"is_popular"`
	IsActive    *bool   `json:"is_active"`
}

// ======================================================
// PUBLIC
// ======================================================

// GET /api/services
func (h *ServiceHandler) ListPublic(c *gin.Context) {
	tenant := middleware.CurrentTenant(c)

	var services []models.Service
	if err := h.db.
		Where("tenant_id = ? AND is_active = ?", tenant.ID, true).
		Order("is_popular DESC, name ASC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to list services")
		return
	}

	httpresp.List(c, services)
}

// ======================================================
// STAFF CRUD
// ======================================================

// GET /api/admin/services
func (h *ServiceHandler) List(c *gin.Context) {
	var services []models.Service
	if err := h.db.
		Where("tenant_id = ?", middleware.AuthTenantID(c)).
		Order("name ASC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to list services")
		return
	}
	httpresp.List(c, services)
}

// POST /api/admin/services
func (h *ServiceHandler) Create(c *gin.Context) {
	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, err.Error())
		return
	}

	s := models.Service{
		TenantID:    middleware.AuthTenantID(c),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Duration:    req.Duration,
		IsPopular:   req.IsPopular,
		IsActive:    true,
	}

	if err := h.db.Create(&s).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to create service")
		return
	}

	httpresp.Created(c, s)
}

// PUT /api/admin/services/:id
func (h *ServiceHandler) Update(c *gin.Context) {
	s, ok := h.tenantService(c)
	if !ok {
		return
	}

	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, err.Error())
		return
	}

	s.Name = req.Name
	s.Description = req.Description
	s.Price = req.Price
	s.Duration = req.Duration
	s.IsPopular = req.IsPopular
	if req.IsActive != nil {
		s.IsActive = *req.IsActive
	}

	if err := h.db.Save(s).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to update service")
		return
	}

	httpresp.OK(c, s)
}

// DELETE /api/admin/services/:id deactivates; existing bookings keep their
// price snapshot.
func (h *ServiceHandler) Deactivate(c *gin.Context) {
	s, ok := h.tenantService(c)
	if !ok {
		return
	}

	s.IsActive = false
	if err := h.db.Save(s).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to deactivate service")
		return
	}

	httpresp.OK(c, s)
}

func (h *ServiceHandler) tenantService(c *gin.Context) (*models.Service, bool) {
	serviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.NotFound(c, httperr.CodeNotFound, "service not found")
		return nil, false
	}

	var s models.Service
	if err := h.db.
		Where("id = ? AND tenant_id = ?", serviceID, middleware.AuthTenantID(c)).
		First(&s).Error; err != nil {
		httperr.NotFound(c, httperr.CodeNotFound, "service not found")
		return nil, false
	}
	return &s, true
}

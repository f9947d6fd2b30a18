package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/jazyl/booking-service/internal/httperr"
	"github.com/jazyl/booking-service/internal/httpresp"
	"github.com/jazyl/booking-service/internal/middleware"
	"github.com/jazyl/booking-service/internal/models"
	"github.com/jazyl/booking-service/internal/schedule"
	"github.com/jazyl/booking-service/internal/uploads"
)

type MasterHandler struct {
	db        *gorm.DB
	schedules *schedule.Store
	uploader  *uploads.Uploader
}

func NewMasterHandler(db *gorm.DB, schedules *schedule.Store, uploader *uploads.Uploader) *MasterHandler {
	return &MasterHandler{db: db, schedules: schedules, uploader: uploader}
}

// tenantMaster loads a master scoped to the authenticated tenant.
func (h *MasterHandler) tenantMaster(c *gin.Context) (*models.Master, bool) {
	masterID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.NotFound(c, httperr.CodeNotFound, "master not found")
		return nil, false
	}

	var m models.Master
	if err := h.db.
		Where("id = ? AND tenant_id = ?", masterID, middleware.AuthTenantID(c)).
		First(&m).Error; err != nil {
		httperr.NotFound(c, httperr.CodeNotFound, "master not found")
		return nil, false
	}
	return &m, true
}

// ======================================================
// PUBLIC
// ======================================================

// GET /api/masters
func (h *MasterHandler) ListPublic(c *gin.Context) {
	tenant := middleware.CurrentTenant(c)

	var masters []models.Master
	if err := h.db.
		Where("tenant_id = ? AND is_active = ? AND is_visible = ?", tenant.ID, true, true).
		Order("display_name ASC").
		Find(&masters).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to list masters")
		return
	}

	httpresp.List(c, masters)
}

// GET /api/masters/:id
func (h *MasterHandler) GetPublic(c *gin.Context) {
	tenant := middleware.CurrentTenant(c)

	masterID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.NotFound(c, httperr.CodeNotFound, "master not found")
		return
	}

	var m models.Master
	if err := h.db.
		Preload("Schedules").
		Where(
			"id = ? AND tenant_id = ? AND is_active = ? AND is_visible = ?",
			masterID, tenant.ID, true, true,
		).
		First(&m).Error; err != nil {
		httperr.NotFound(c, httperr.CodeNotFound, "master not found")
		return
	}

	httpresp.OK(c, m)
}

// ======================================================
// STAFF CRUD
// ======================================================

type masterRequest struct {
	UserID         uuid.UUID `json:"user_id"`
	DisplayName    string    `json:"display_name" binding:"required"`
	Description    string    `json:"description"`
	Specialization []string  `json:"specialization"`
	IsActive       *bool     `json:"is_active"`
	IsVisible      *bool     `json:"is_visible"`
}

// GET /api/admin/masters
func (h *MasterHandler) List(c *gin.Context) {
	var masters []models.Master
	if err := h.db.
		Preload("Schedules").
		Where("tenant_id = ?", middleware.AuthTenantID(c)).
		Order("display_name ASC").
		Find(&masters).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to list masters")
		return
	}
	httpresp.List(c, masters)
}

// POST /api/admin/masters
func (h *MasterHandler) Create(c *gin.Context) {
	var req masterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, err.Error())
		return
	}

	m := models.Master{
		TenantID:       middleware.AuthTenantID(c),
		UserID:         req.UserID,
		DisplayName:    req.DisplayName,
		Description:    req.Description,
		Specialization: datatypes.NewJSONType(req.Specialization),
		IsActive:       true,
		IsVisible:      true,
	}

	if err := h.db.Create(&m).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to create master")
		return
	}

	httpresp.Created(c, m)
}

// PUT /api/admin/masters/:id
func (h *MasterHandler) Update(c *gin.Context) {
	m, ok := h.tenantMaster(c)
	if !ok {
		return
	}

	var req masterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, err.Error())
		return
	}

	m.DisplayName = req.DisplayName
	m.Description = req.Description
	m.Specialization = datatypes.NewJSONType(req.Specialization)
	if req.IsActive != nil {
		m.IsActive = *req.IsActive
	}
	if req.IsVisible != nil {
		m.IsVisible = *req.IsVisible
	}

	if err := h.db.Save(m).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to update master")
		return
	}

	httpresp.OK(c, m)
}

// DELETE /api/admin/masters/:id
//
// Deactivation, not deletion: history keeps pointing at the master.
func (h *MasterHandler) Deactivate(c *gin.Context) {
	m, ok := h.tenantMaster(c)
	if !ok {
		return
	}

	m.IsActive = false
	m.IsVisible = false
	if err := h.db.Save(m).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to deactivate master")
		return
	}

	httpresp.OK(c, m)
}

// POST /api/admin/masters/:id/photo  (multipart "file")
func (h *MasterHandler) UploadPhoto(c *gin.Context) {
	m, ok := h.tenantMaster(c)
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "file is required")
		return
	}

	src, err := file.Open()
	if err != nil {
		httperr.Internal(c, "internal_error", "failed to read upload")
		return
	}
	defer src.Close()

	url, err := h.uploader.UploadImage(c.Request.Context(), "masters/"+m.ID.String(), src)
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	if m.PhotoURL != "" {
		_ = h.uploader.Delete(c.Request.Context(), m.PhotoURL)
	}

	m.PhotoURL = url
	if err := h.db.Save(m).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to update master")
		return
	}

	httpresp.OK(c, gin.H{"photo_url": url})
}

// ======================================================
// SCHEDULE
// ======================================================

// GET /api/admin/masters/:id/schedule
func (h *MasterHandler) GetSchedule(c *gin.Context) {
	m, ok := h.tenantMaster(c)
	if !ok {
		return
	}

	rows, err := h.schedules.ListWeekly(c.Request.Context(), m.ID)
	if err != nil {
		httperr.Internal(c, "internal_error", "failed to load schedule")
		return
	}

	httpresp.List(c, rows)
}

// PUT /api/admin/masters/:id/schedule
func (h *MasterHandler) PutSchedule(c *gin.Context) {
	m, ok := h.tenantMaster(c)
	if !ok {
		return
	}

	var days []schedule.WeekdayHours
	if err := c.ShouldBindJSON(&days); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, err.Error())
		return
	}

	if err := h.schedules.ReplaceWeekly(c.Request.Context(), m.ID, days); err != nil {
		httperr.Handle(c, err)
		return
	}

	rows, err := h.schedules.ListWeekly(c.Request.Context(), m.ID)
	if err != nil {
		httperr.Internal(c, "internal_error", "failed to load schedule")
		return
	}
	httpresp.List(c, rows)
}

// ======================================================
// BLOCK TIMES
// ======================================================

type blockRequest struct {
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
	Reason    string    `json:"reason"`
}

// GET /api/admin/masters/:id/blocks?from=&to=
func (h *MasterHandler) ListBlocks(c *gin.Context) {
	m, ok := h.tenantMaster(c)
	if !ok {
		return
	}

	from := time.Now().AddDate(0, 0, -1)
	to := time.Now().AddDate(0, 1, 0)
	if raw := c.Query("from"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			from = t
		}
	}
	if raw := c.Query("to"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			to = t.Add(24 * time.Hour)
		}
	}

	blocks, err := h.schedules.ListBlocks(c.Request.Context(), m.ID, from, to)
	if err != nil {
		httperr.Internal(c, "internal_error", "failed to list blocks")
		return
	}
	httpresp.List(c, blocks)
}

// POST /api/admin/masters/:id/blocks
func (h *MasterHandler) CreateBlock(c *gin.Context) {
	m, ok := h.tenantMaster(c)
	if !ok {
		return
	}

	var req blockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, err.Error())
		return
	}

	block := models.BlockTime{
		MasterID:  m.ID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Reason:    req.Reason,
	}
	if err := h.schedules.CreateBlock(c.Request.Context(), &block); err != nil {
		httperr.Handle(c, err)
		return
	}

	httpresp.Created(c, block)
}

// DELETE /api/admin/masters/:id/blocks/:blockId
func (h *MasterHandler) DeleteBlock(c *gin.Context) {
	m, ok := h.tenantMaster(c)
	if !ok {
		return
	}

	blockID, err := uuid.Parse(c.Param("blockId"))
	if err != nil {
		httperr.NotFound(c, httperr.CodeNotFound, "block not found")
		return
	}

	if err := h.schedules.DeleteBlock(c.Request.Context(), m.ID, blockID); err != nil {
		httperr.Handle(c, err)
		return
	}

	httpresp.OK(c, gin.H{"deleted": true})
}

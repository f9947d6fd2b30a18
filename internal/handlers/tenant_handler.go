package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/jazyl/booking-service/internal/httperr"
	"github.com/jazyl/booking-service/internal/httpresp"
	"github.com/jazyl/booking-service/internal/middleware"
	"github.com/jazyl/booking-service/internal/models"
	"github.com/jazyl/booking-service/internal/tenant"
	"github.com/jazyl/booking-service/internal/uploads"
)

type TenantHandler struct {
	registry *tenant.Registry
	uploader *uploads.Uploader
}

func NewTenantHandler(registry *tenant.Registry, uploader *uploads.Uploader) *TenantHandler {
	return &TenantHandler{registry: registry, uploader: uploader}
}

// ======================================================
// PUBLIC
// ======================================================

// GET /api/tenants/subdomain/:subdomain
//
// The booking frontend's first call: resolves which shop it is serving.
func (h *TenantHandler) ResolveSubdomain(c *gin.Context) {
	t, err := h.registry.BySubdomain(c.Request.Context(), c.Param("subdomain"))
	if err != nil {
		httperr.Handle(c, err)
		return
	}
	httpresp.OK(c, t)
}

// ======================================================
// STAFF
// ======================================================

// GET /api/admin/tenant
func (h *TenantHandler) Get(c *gin.Context) {
	t, err := h.registry.ByID(c.Request.Context(), middleware.AuthTenantID(c))
	if err != nil {
		httperr.Handle(c, err)
		return
	}
	httpresp.OK(c, t)
}

type updateTenantRequest struct {
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	Timezone       string `json:"timezone"`
	PrimaryColor   string `json:"primary_color"`
	SecondaryColor string `json:"secondary_color"`

	WorkingHours    map[string]models.WorkingDay `json:"working_hours"`
	BookingSettings *models.BookingSettings      `json:"booking_settings"`
}

// PUT /api/admin/tenant
func (h *TenantHandler) Update(c *gin.Context) {
	var req updateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, err.Error())
		return
	}

	t, err := h.registry.ByID(c.Request.Context(), middleware.AuthTenantID(c))
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	if req.Name != "" {
		t.Name = req.Name
	}
	if req.Phone != "" {
		t.Phone = req.Phone
	}
	if req.Address != "" {
		t.Address = req.Address
	}
	if req.Timezone != "" {
		t.Timezone = req.Timezone
	}
	if req.PrimaryColor != "" {
		t.PrimaryColor = req.PrimaryColor
	}
	if req.SecondaryColor != "" {
		t.SecondaryColor = req.SecondaryColor
	}
	if req.WorkingHours != nil {
		t.WorkingHours = datatypes.NewJSONType(req.WorkingHours)
	}
	if req.BookingSettings != nil {
		if req.BookingSettings.SlotDuration <= 0 ||
			req.BookingSettings.MinAdvanceHours < 0 ||
			req.BookingSettings.MaxAdvanceDays <= 0 {
			httperr.BadRequest(c, httperr.CodeValidation, "invalid booking settings")
			return
		}
		t.BookingSettings = datatypes.NewJSONType(*req.BookingSettings)
	}

	if err := h.registry.Update(c.Request.Context(), t); err != nil {
		httperr.Handle(c, err)
		return
	}

	httpresp.OK(c, t)
}

// POST /api/admin/tenant/logo  (multipart "file")
func (h *TenantHandler) UploadLogo(c *gin.Context) {
	t, err := h.registry.ByID(c.Request.Context(), middleware.AuthTenantID(c))
	if err != nil {
		httperr.Handle(c, err)
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

	url, err := h.uploader.UploadImage(c.Request.Context(), "logos/"+t.ID.String(), src)
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	if t.LogoURL != "" {
		_ = h.uploader.Delete(c.Request.Context(), t.LogoURL)
	}

	t.LogoURL = url
	if err := h.registry.Update(c.Request.Context(), t); err != nil {
		httperr.Handle(c, err)
		return
	}

	httpresp.OK(c, gin.H{"logo_url": url})
}

package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/jazyl/booking-service/internal/config"
	"github.com/jazyl/booking-service/internal/httperr"
	"github.com/jazyl/booking-service/internal/models"
	"github.com/jazyl/booking-service/internal/tenant"
	"github.com/jazyl/booking-service/internal/validators"
)

type AuthHandler struct {
	db       *gorm.DB
	registry *tenant.Registry
	config   *config.Config
}

func NewAuthHandler(db *gorm.DB, registry *tenant.Registry, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, registry: registry, config: cfg}
}

// --------- Requests ---------

type RegisterRequest struct {
	TenantName      string `json:"tenant_name" binding:"required"`
	TenantSubdomain string `json:"tenant_subdomain" binding:"required"`
	TenantPhone     string `json:"tenant_phone"`
	TenantAddress   string `json:"tenant_address"`
	TenantTimezone  string `json:"tenant_timezone"`

	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

// Register creates a tenant with its owner account and signs them in.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, err.Error())
		return
	}

	subdomain := strings.ToLower(strings.TrimSpace(req.TenantSubdomain))

	var count int64
	h.db.Model(&models.Tenant{}).Where("subdomain = ?", subdomain).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, httperr.CodeValidation, "subdomain already taken")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, httperr.CodeValidation, "email domain does not resolve")
		return
	}

	t := &models.Tenant{
		Name:      req.TenantName,
		Subdomain: subdomain,
		Email:     email,
		Phone:     req.TenantPhone,
		Address:   req.TenantAddress,
		Timezone:  req.TenantTimezone,
	}
	if err := h.registry.Create(c.Request.Context(), t); err != nil {
		httperr.Handle(c, err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "internal_error", "failed to hash password")
		return
	}

	user := models.User{
		TenantID:     t.ID,
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        req.Phone,
		Role:         models.RoleOwner,
	}
	if err := h.db.Create(&user).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to create user")
		return
	}

	token, err := h.generateToken(&user)
	if err != nil {
		httperr.Internal(c, "internal_error", "failed to generate token")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":   user,
		"tenant": t,
		"token":  token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.Where("email = ? AND is_active = ?", email, true).First(&user).Error; err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "invalid email or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "invalid email or password")
		return
	}

	t, err := h.registry.ByID(c.Request.Context(), user.TenantID)
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	token, err := h.generateToken(&user)
	if err != nil {
		httperr.Internal(c, "internal_error", "failed to generate token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":   user,
		"tenant": t,
		"token":  token,
	})
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":      user.ID.String(),
		"tenantId": user.TenantID.String(),
		"role":     user.Role,
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}

package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jazyl/booking-service/internal/models"
	"github.com/jazyl/booking-service/internal/tenant"
)

const contextTenant = "tenant"

// TenantResolver resolves the tenant for public endpoints from the
// X-Tenant-Subdomain or X-Tenant-ID header. The subdomain header wins when
// both are present.
func TenantResolver(registry *tenant.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		var (
			t   *models.Tenant
			err error
		)

		if sub := c.GetHeader("X-Tenant-Subdomain"); sub != "" {
			t, err = registry.BySubdomain(c.Request.Context(), sub)
		} else if raw := c.GetHeader("X-Tenant-ID"); raw != "" {
			id, parseErr := uuid.Parse(raw)
			if parseErr != nil {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"detail": "tenant not found"})
				return
			}
			t, err = registry.ByID(c.Request.Context(), id)
		} else {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": "tenant header required"})
			return
		}

		if err != nil || !t.IsActive {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"detail": "tenant not found"})
			return
		}

		c.Set(contextTenant, t)
		c.Next()
	}
}

// CurrentTenant returns the tenant resolved by TenantResolver.
func CurrentTenant(c *gin.Context) *models.Tenant {
	v, _ := c.Get(contextTenant)
	t, _ := v.(*models.Tenant)
	return t
}

package middleware

import (
	"context"
	"net/http"
	"strings"

	tenantRepo "groomify/database/repository/tenant"
	"groomify/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by TenantAuthMiddleware.
const (
	CtxTenantID = "tenantID"
	CtxSubject  = "subject"
)

// TenantAuthMiddleware resolves the caller's tenant from the JWT tenant_id
// claim, verifies that the tenant is live, and threads the id into the
// request context. Every tenant-scoped handler reads it from there and the
// id travels as an explicit parameter from then on.
func TenantAuthMiddleware(tenants tenantRepo.TenantRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		subject, tenantID, err := utils.ExtractTenantFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		tenant, err := tenants.GetByID(context.Background(), tenantID)
		if err != nil || !tenant.Active {
			utils.JSONError(c, http.StatusNotFound, utils.CodeTenantNotFound, "tenant not found or inactive")
			c.Abort()
			return
		}

		c.Set(CtxTenantID, tenantID)
		c.Set(CtxSubject, subject)
		c.Next()
	}
}

// TenantID reads the tenant id resolved by TenantAuthMiddleware.
func TenantID(c *gin.Context) string {
	return c.GetString(CtxTenantID)
}

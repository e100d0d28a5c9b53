package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	tenantRepo "groomify/database/repository/tenant"
	"groomify/models"
	"groomify/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const tenantTokenTTL = 30 * 24 * time.Hour

// TenantHandler onboards tenants and issues their API tokens.
type TenantHandler struct {
	Repo tenantRepo.TenantRepository
}

func NewTenantHandler(repo tenantRepo.TenantRepository) *TenantHandler {
	return &TenantHandler{Repo: repo}
}

// Register handles POST /api/tenants/register. It creates the tenant and
// returns the bearer token every other endpoint requires.
func (h *TenantHandler) Register(c *gin.Context) {
	var in struct {
		Name      string `json:"name" binding:"required"`
		Subdomain string `json:"subdomain" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, utils.CodeValidation, "name and subdomain are required")
		return
	}

	tenant := &models.Tenant{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Subdomain: strings.ToLower(strings.TrimSpace(in.Subdomain)),
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.Repo.Create(c.Request.Context(), tenant); err != nil {
		if errors.Is(err, tenantRepo.ErrDuplicate) {
			utils.JSONError(c, http.StatusBadRequest, utils.CodeValidation, "subdomain already registered")
			return
		}
		utils.JSONServiceError(c, err)
		return
	}

	token, err := utils.GenerateToken("tenant-admin", tenant.ID, tenantTokenTTL)
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"tenant": tenant, "token": token})
}

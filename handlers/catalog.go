package handlers

import (
	"net/http"

	"groomify/middleware"
	"groomify/services/catalog"
	"groomify/utils"

	"github.com/gin-gonic/gin"
)

// CatalogHandler exposes the tenant catalog endpoints.
type CatalogHandler struct {
	Service catalog.CatalogService
}

func NewCatalogHandler(service catalog.CatalogService) *CatalogHandler {
	return &CatalogHandler{Service: service}
}

func (h *CatalogHandler) CreateCustomer(c *gin.Context) {
	var in catalog.CustomerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, utils.CodeValidation, "invalid input: "+err.Error())
		return
	}
	customer, err := h.Service.CreateCustomer(c.Request.Context(), middleware.TenantID(c), in)
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func (h *CatalogHandler) GetCustomer(c *gin.Context) {
	customer, err := h.Service.GetCustomer(c.Request.Context(), middleware.TenantID(c), c.Param("id"))
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *CatalogHandler) CreatePet(c *gin.Context) {
	var in catalog.PetInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, utils.CodeValidation, "invalid input: "+err.Error())
		return
	}
	pet, err := h.Service.CreatePet(c.Request.Context(), middleware.TenantID(c), in)
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pet)
}

func (h *CatalogHandler) GetPet(c *gin.Context) {
	pet, err := h.Service.GetPet(c.Request.Context(), middleware.TenantID(c), c.Param("id"))
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pet)
}

func (h *CatalogHandler) CreateService(c *gin.Context) {
	var in catalog.ServiceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, utils.CodeValidation, "invalid input: "+err.Error())
		return
	}
	service, err := h.Service.CreateService(c.Request.Context(), middleware.TenantID(c), in)
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, service)
}

func (h *CatalogHandler) GetService(c *gin.Context) {
	service, err := h.Service.GetService(c.Request.Context(), middleware.TenantID(c), c.Param("id"))
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, service)
}

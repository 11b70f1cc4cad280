package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/esantostaype/task-automation-sub001/internal/errors"
	"github.com/esantostaype/task-automation-sub001/internal/repository"
)

// CatalogHandler exposes task types, brands and categories.
type CatalogHandler struct {
	catalogRepo repository.CatalogRepository
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogRepo repository.CatalogRepository) *CatalogHandler {
	return &CatalogHandler{
		catalogRepo: catalogRepo,
	}
}

// ListTypes returns every task type
func (h *CatalogHandler) ListTypes(c *gin.Context) {
	types, err := h.catalogRepo.ListTypes()
	if err != nil {
		apierrors.InternalError(c, "Failed to list types")
		return
	}
	c.JSON(http.StatusOK, gin.H{"types": types})
}

// ListBrands returns every brand in creation order
func (h *CatalogHandler) ListBrands(c *gin.Context) {
	brands, err := h.catalogRepo.ListBrands()
	if err != nil {
		apierrors.InternalError(c, "Failed to list brands")
		return
	}
	c.JSON(http.StatusOK, gin.H{"brands": brands})
}

// ListCategories returns every task category with its type and tier
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalogRepo.ListCategories()
	if err != nil {
		apierrors.InternalError(c, "Failed to list categories")
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

package v1

import (
	"net/http"

	"github.com/currybox/currybox/internal/logger"
	"github.com/currybox/currybox/internal/service"
	"github.com/currybox/currybox/internal/types"
	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	service service.CatalogService
	log     *logger.Logger
}

func NewCatalogHandler(service service.CatalogService, log *logger.Logger) *CatalogHandler {
	return &CatalogHandler{service: service, log: log}
}

// @Summary Get the full menu
// @Tags Catalog
// @Produce json
// @Success 200 {object} dto.CatalogResponse
// @Router /catalog [get]
func (h *CatalogHandler) Get(c *gin.Context) {
	resp, err := h.service.GetCatalog(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary List one category's items
// @Tags Catalog
// @Produce json
// @Param category path string true "Category" Enums(bunny, family, side, sauce, drink)
// @Success 200 {object} dto.CatalogItemsResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /catalog/items/{category} [get]
func (h *CatalogHandler) GetItems(c *gin.Context) {
	resp, err := h.service.GetItems(c.Request.Context(), types.ItemCategory(c.Param("category")))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

package v1

import (
	"net/http"

	"github.com/currybox/currybox/internal/api/dto"
	ierr "github.com/currybox/currybox/internal/errors"
	"github.com/currybox/currybox/internal/logger"
	"github.com/currybox/currybox/internal/service"
	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	service service.CartService
	log     *logger.Logger
}

func NewCartHandler(service service.CartService, log *logger.Logger) *CartHandler {
	return &CartHandler{service: service, log: log}
}

// @Summary Get the cart
// @Tags Cart
// @Produce json
// @Success 200 {object} dto.CartResponse
// @Router /cart [get]
func (h *CartHandler) Get(c *gin.Context) {
	resp, err := h.service.Get(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Add an item from the catalog
// @Description Merges into an existing line for the same product; the result reports how much was actually added
// @Tags Cart
// @Accept json
// @Produce json
// @Param request body dto.AddCartItemRequest true "Item"
// @Success 200 {object} dto.AddCartItemResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	var req dto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(err)
		return
	}

	resp, err := h.service.AddItem(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Remove a cart line
// @Tags Cart
// @Produce json
// @Param id path string true "Line ID"
// @Success 200 {object} dto.CartResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /cart/items/{id} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	lineID := c.Param("id")
	if lineID == "" {
		c.Error(ierr.NewError("line id is required").
			WithHint("A cart line id is required").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.RemoveItem(c.Request.Context(), lineID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Set a cart line's quantity
// @Description Zero removes the line; quantities above the item's maximum are clamped
// @Tags Cart
// @Accept json
// @Produce json
// @Param id path string true "Line ID"
// @Param request body dto.UpdateCartItemRequest true "Quantity"
// @Success 200 {object} dto.CartResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /cart/items/{id} [put]
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	lineID := c.Param("id")
	var req dto.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(err)
		return
	}

	resp, err := h.service.UpdateQuantity(c.Request.Context(), lineID, &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Empty the cart
// @Tags Cart
// @Produce json
// @Success 200 {object} dto.CartResponse
// @Router /cart/clear [post]
func (h *CartHandler) Clear(c *gin.Context) {
	resp, err := h.service.Clear(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Apply a promo code
// @Description The code is validated externally and stored verbatim; an invalid code is stored with its error message
// @Tags Cart
// @Accept json
// @Produce json
// @Param request body dto.ApplyPromoRequest true "Code"
// @Success 200 {object} dto.CartResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /cart/promo [post]
func (h *CartHandler) ApplyPromo(c *gin.Context) {
	var req dto.ApplyPromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(err)
		return
	}

	resp, err := h.service.ApplyPromo(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Remove the active promo code
// @Tags Cart
// @Produce json
// @Success 200 {object} dto.CartResponse
// @Router /cart/promo [delete]
func (h *CartHandler) RemovePromo(c *gin.Context) {
	resp, err := h.service.RemovePromo(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Merge the signed-in shopper's saved cart
// @Tags Cart
// @Produce json
// @Success 200 {object} dto.CartResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /cart/sync [post]
func (h *CartHandler) Sync(c *gin.Context) {
	resp, err := h.service.SyncFromSaved(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

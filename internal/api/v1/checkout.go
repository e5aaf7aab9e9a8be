package v1

import (
	"net/http"

	"github.com/currybox/currybox/internal/api/dto"
	"github.com/currybox/currybox/internal/logger"
	"github.com/currybox/currybox/internal/service"
	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	service service.CheckoutService
	log     *logger.Logger
}

func NewCheckoutHandler(service service.CheckoutService, log *logger.Logger) *CheckoutHandler {
	return &CheckoutHandler{service: service, log: log}
}

// @Summary Get the checkout state
// @Tags Checkout
// @Produce json
// @Success 200 {object} dto.CheckoutStateResponse
// @Router /checkout [get]
func (h *CheckoutHandler) Get(c *gin.Context) {
	resp, err := h.service.Get(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Update checkout fields
// @Description Partial update; only provided fields are applied
// @Tags Checkout
// @Accept json
// @Produce json
// @Param request body dto.UpdateCheckoutRequest true "Fields"
// @Success 200 {object} dto.CheckoutStateResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /checkout [put]
func (h *CheckoutHandler) Update(c *gin.Context) {
	var req dto.UpdateCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(err)
		return
	}

	resp, err := h.service.Update(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Reset the checkout
// @Tags Checkout
// @Produce json
// @Success 200 {object} dto.CheckoutStateResponse
// @Router /checkout/reset [post]
func (h *CheckoutHandler) Reset(c *gin.Context) {
	resp, err := h.service.Reset(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Place the order
// @Description Charges the shopper and creates the order. When order creation fails after the charge, the response reports reconciling true and the record is created in the background.
// @Tags Checkout
// @Produce json
// @Success 200 {object} dto.PlaceOrderResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /checkout/order [post]
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	resp, err := h.service.PlaceOrder(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

package v1

import (
	"context"
	"net/http"

	"github.com/currybox/currybox/internal/api/dto"
	"github.com/currybox/currybox/internal/logger"
	"github.com/currybox/currybox/internal/service"
	"github.com/currybox/currybox/internal/types"
	"github.com/gin-gonic/gin"
)

type BuilderHandler struct {
	service service.BuilderService
	log     *logger.Logger
}

func NewBuilderHandler(service service.BuilderService, log *logger.Logger) *BuilderHandler {
	return &BuilderHandler{service: service, log: log}
}

// @Summary Start a new box configurator
// @Description Begins a fresh builder for the given flow, replacing any in-progress one
// @Tags Builder
// @Accept json
// @Produce json
// @Param request body dto.StartBuilderRequest true "Start request"
// @Success 200 {object} dto.BuilderStateResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /builder/start [post]
func (h *BuilderHandler) Start(c *gin.Context) {
	var req dto.StartBuilderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(err)
		return
	}

	resp, err := h.service.Start(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Get the configurator state
// @Tags Builder
// @Produce json
// @Success 200 {object} dto.BuilderStateResponse
// @Router /builder [get]
func (h *BuilderHandler) Get(c *gin.Context) {
	resp, err := h.service.Get(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Navigate to a step
// @Description Backward moves always succeed; forward moves are gated
// @Tags Builder
// @Accept json
// @Produce json
// @Param request body dto.GoToStepRequest true "Target step"
// @Success 200 {object} dto.BuilderStateResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /builder/steps/go [post]
func (h *BuilderHandler) GoToStep(c *gin.Context) {
	var req dto.GoToStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(err)
		return
	}
	if err := req.Validate(); err != nil {
		c.Error(err)
		return
	}

	resp, err := h.service.GoToStep(c.Request.Context(), types.BuilderStep(req.Step))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Advance to the next step
// @Tags Builder
// @Produce json
// @Success 200 {object} dto.BuilderStateResponse
// @Router /builder/steps/next [post]
func (h *BuilderHandler) NextStep(c *gin.Context) {
	resp, err := h.service.NextStep(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Go back one step
// @Tags Builder
// @Produce json
// @Success 200 {object} dto.BuilderStateResponse
// @Router /builder/steps/prev [post]
func (h *BuilderHandler) PrevStep(c *gin.Context) {
	resp, err := h.service.PrevStep(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Add one of a side, sauce or drink
// @Tags Builder
// @Accept json
// @Produce json
// @Param request body dto.BuilderItemRequest true "Item"
// @Success 200 {object} dto.BuilderStateResponse
// @Router /builder/items/increment [post]
func (h *BuilderHandler) IncrementItem(c *gin.Context) {
	h.itemAction(c, h.service.IncrementItem)
}

// @Summary Remove one of a side, sauce or drink
// @Tags Builder
// @Accept json
// @Produce json
// @Param request body dto.BuilderItemRequest true "Item"
// @Success 200 {object} dto.BuilderStateResponse
// @Router /builder/items/decrement [post]
func (h *BuilderHandler) DecrementItem(c *gin.Context) {
	h.itemAction(c, h.service.DecrementItem)
}

// @Summary Add a curry selection
// @Tags Builder
// @Accept json
// @Produce json
// @Param request body dto.CurryRequest true "Curry"
// @Success 200 {object} dto.BuilderStateResponse
// @Router /builder/curries/add [post]
func (h *BuilderHandler) AddCurry(c *gin.Context) {
	h.curryAction(c, h.service.AddCurry)
}

// @Summary Remove a curry selection entirely
// @Tags Builder
// @Accept json
// @Produce json
// @Param request body dto.CurryRequest true "Curry"
// @Success 200 {object} dto.BuilderStateResponse
// @Router /builder/curries/remove [post]
func (h *BuilderHandler) RemoveCurry(c *gin.Context) {
	h.curryAction(c, h.service.RemoveCurry)
}

// @Summary Add one to a curry selection
// @Tags Builder
// @Accept json
// @Produce json
// @Param request body dto.CurryRequest true "Curry"
// @Success 200 {object} dto.BuilderStateResponse
// @Router /builder/curries/increment [post]
func (h *BuilderHandler) IncrementCurry(c *gin.Context) {
	h.curryAction(c, h.service.IncrementCurry)
}

// @Summary Remove one from a curry selection
// @Tags Builder
// @Accept json
// @Produce json
// @Param request body dto.CurryRequest true "Curry"
// @Success 200 {object} dto.BuilderStateResponse
// @Router /builder/curries/decrement [post]
func (h *BuilderHandler) DecrementCurry(c *gin.Context) {
	h.curryAction(c, h.service.DecrementCurry)
}

// @Summary Change a curry's spice level
// @Tags Builder
// @Accept json
// @Produce json
// @Param request body dto.CurryRequest true "Curry"
// @Success 200 {object} dto.BuilderStateResponse
// @Router /builder/curries/spice [put]
func (h *BuilderHandler) UpdateCurrySpice(c *gin.Context) {
	h.curryAction(c, h.service.UpdateCurrySpice)
}

// @Summary Replace the box notes
// @Tags Builder
// @Accept json
// @Produce json
// @Param request body dto.BuilderNotesRequest true "Notes"
// @Success 200 {object} dto.BuilderStateResponse
// @Router /builder/notes [put]
func (h *BuilderHandler) SetNotes(c *gin.Context) {
	var req dto.BuilderNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(err)
		return
	}

	resp, err := h.service.SetNotes(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Skip the bunny builder
// @Description Only available when the active flow marks the step skippable
// @Tags Builder
// @Produce json
// @Success 200 {object} dto.BuilderStateResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /builder/skip-bunny-builder [post]
func (h *BuilderHandler) SkipBunnyBuilder(c *gin.Context) {
	resp, err := h.service.SkipBunnyBuilder(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Reset the configurator
// @Tags Builder
// @Produce json
// @Success 200 {object} dto.BuilderStateResponse
// @Router /builder/reset [post]
func (h *BuilderHandler) Reset(c *gin.Context) {
	resp, err := h.service.Reset(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Add the configured box to the cart
// @Description Flattens the selection into priced cart lines and resets the builder
// @Tags Builder
// @Produce json
// @Success 200 {object} dto.CartResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /builder/add-to-cart [post]
func (h *BuilderHandler) AddToCart(c *gin.Context) {
	resp, err := h.service.AddToCart(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BuilderHandler) itemAction(c *gin.Context, fn func(ctx context.Context, req *dto.BuilderItemRequest) (*dto.BuilderStateResponse, error)) {
	var req dto.BuilderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(err)
		return
	}

	resp, err := fn(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BuilderHandler) curryAction(c *gin.Context, fn func(ctx context.Context, req *dto.CurryRequest) (*dto.BuilderStateResponse, error)) {
	var req dto.CurryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(err)
		return
	}

	resp, err := fn(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/store-scheduler/internal/dto"
	"github.com/BruksfildServices01/store-scheduler/internal/httperr"
	"github.com/BruksfildServices01/store-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/store-scheduler/internal/middleware"
	ucavailability "github.com/BruksfildServices01/store-scheduler/internal/usecase/availability"
)

type AvailabilityHandler struct {
	set *ucavailability.SetWeeklyAvailability
	get *ucavailability.GetWeeklyAvailability
}

func NewAvailabilityHandler(
	set *ucavailability.SetWeeklyAvailability,
	get *ucavailability.GetWeeklyAvailability,
) *AvailabilityHandler {
	return &AvailabilityHandler{set: set, get: get}
}

type SetAvailabilityRequest struct {
	StoreID        uint                        `json:"store_id" binding:"required"`
	Availabilities []dto.AvailabilityWindowDTO `json:"availabilities" binding:"required"`
}

// Set replaces the store's whole weekly schedule.
func (h *AvailabilityHandler) Set(c *gin.Context) {
	var req SetAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	windows := make([]ucavailability.WindowInput, 0, len(req.Availabilities))
	for _, a := range req.Availabilities {
		windows = append(windows, ucavailability.WindowInput{
			Weekday:   a.Weekday,
			StartTime: a.StartTime,
			EndTime:   a.EndTime,
		})
	}

	saved, err := h.set.Execute(c.Request.Context(), req.StoreID, middleware.UserID(c), windows)
	if err != nil {
		respond(c, err)
		return
	}

	httpresp.Created(c, dto.NewAvailabilityDTOs(saved))
}

func (h *AvailabilityHandler) Get(c *gin.Context) {
	storeID, ok := paramID(c, "storeId")
	if !ok {
		return
	}

	rows, err := h.get.Execute(c.Request.Context(), storeID)
	if err != nil {
		respond(c, err)
		return
	}

	httpresp.OK(c, dto.NewAvailabilityDTOs(rows))
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/store-scheduler/internal/dto"
	"github.com/BruksfildServices01/store-scheduler/internal/httperr"
	"github.com/BruksfildServices01/store-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/store-scheduler/internal/middleware"
	ucappointment "github.com/BruksfildServices01/store-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentUseCases struct {
	Create       *ucappointment.CreateAppointment
	UpdateStatus *ucappointment.UpdateStatus
	ListForUser  *ucappointment.ListForUser
	ListForStore *ucappointment.ListForStore
	ListBooked   *ucappointment.ListBooked
}

type AppointmentHandler struct {
	uc       AppointmentUseCases
	settings ucappointment.Settings
}

func NewAppointmentHandler(uc AppointmentUseCases, settings ucappointment.Settings) *AppointmentHandler {
	return &AppointmentHandler{
		uc:       uc,
		settings: settings,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	StoreID         uint   `json:"store_id" binding:"required"`
	AppointmentTime string `json:"appointment_time" binding:"required"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,min=1"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ap, err := h.uc.Create.Execute(c.Request.Context(), ucappointment.CreateAppointmentInput{
		StoreID:         req.StoreID,
		UserID:          middleware.UserID(c),
		AppointmentTime: req.AppointmentTime,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		respond(c, err)
		return
	}

	httpresp.Created(c, dto.NewAppointmentDTO(*ap, h.settings.Location(&ap.Store)))
}

// ======================================================
// LISTS
// ======================================================

func (h *AppointmentHandler) ListMine(c *gin.Context) {
	apps, err := h.uc.ListForUser.Execute(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respond(c, err)
		return
	}

	out := make([]dto.AppointmentDTO, 0, len(apps))
	for _, ap := range apps {
		out = append(out, dto.NewAppointmentDTO(ap, h.settings.Location(&ap.Store)))
	}
	httpresp.OK(c, out)
}

func (h *AppointmentHandler) ListForStore(c *gin.Context) {
	storeID, ok := paramID(c, "storeId")
	if !ok {
		return
	}

	store, apps, err := h.uc.ListForStore.Execute(c.Request.Context(), storeID, middleware.UserID(c))
	if err != nil {
		respond(c, err)
		return
	}

	httpresp.OK(c, renderAll(apps, h.settings.Location(store)))
}

func (h *AppointmentHandler) ListBooked(c *gin.Context) {
	storeID, ok := paramID(c, "storeId")
	if !ok {
		return
	}

	slots, err := h.uc.ListBooked.Execute(c.Request.Context(), storeID)
	if err != nil {
		respond(c, err)
		return
	}
	httpresp.OK(c, slots)
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ap, err := h.uc.UpdateStatus.Execute(c.Request.Context(), id, middleware.UserID(c), req.Status)
	if err != nil {
		respond(c, err)
		return
	}

	httpresp.OK(c, dto.NewAppointmentDTO(*ap, h.settings.Location(&ap.Store)))
}

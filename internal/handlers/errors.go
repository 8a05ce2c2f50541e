package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/store-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/store-scheduler/internal/dto"
	"github.com/BruksfildServices01/store-scheduler/internal/httperr"
	"github.com/BruksfildServices01/store-scheduler/internal/models"
)

// respond writes err, adding the accepted values to invalid status errors.
func respond(c *gin.Context, err error) {
	if httperr.IsKind(err, httperr.KindInvalidStatus) {
		c.AbortWithStatusJSON(http.StatusBadRequest, httperr.HTTPError{
			Code:        "invalid_status",
			Message:     err.Error(),
			ValidValues: domain.TargetNames(),
		})
		return
	}
	httperr.Respond(c, err)
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", name+" must be a positive integer")
		return 0, false
	}
	return uint(id), true
}

func pagination(c *gin.Context, def, max int) (page, limit, offset int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(def)))
	if limit <= 0 || limit > max {
		limit = def
	}
	return page, limit, (page - 1) * limit
}

func renderAll(apps []models.Appointment, loc *time.Location) []dto.AppointmentDTO {
	out := make([]dto.AppointmentDTO, 0, len(apps))
	for _, ap := range apps {
		out = append(out, dto.NewAppointmentDTO(ap, loc))
	}
	return out
}

package dto

import (
	"time"

	"github.com/BruksfildServices01/store-scheduler/internal/models"
	"github.com/BruksfildServices01/store-scheduler/internal/timezone"
)

type AppointmentDTO struct {
	ID              uint   `json:"id"`
	StoreID         uint   `json:"store_id"`
	StoreName       string `json:"store_name,omitempty"`
	UserID          uint   `json:"user_id"`
	UserName        string `json:"user_name,omitempty"`
	UserEmail       string `json:"user_email,omitempty"`
	AppointmentTime string `json:"appointment_time"`
	DurationMinutes int    `json:"duration_minutes"`
	Status          string `json:"status"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

// BookedSlotDTO is the public, anonymous view of an occupied slot.
type BookedSlotDTO struct {
	ID              uint   `json:"id"`
	AppointmentTime string `json:"appointment_time"`
	DurationMinutes int    `json:"duration_minutes"`
	Status          string `json:"status"`
}

func NewBookedSlotDTO(ap models.Appointment, loc *time.Location) BookedSlotDTO {
	return BookedSlotDTO{
		ID:              ap.ID,
		AppointmentTime: timezone.FormatLocal(ap.AppointmentTime, loc),
		DurationMinutes: ap.DurationMinutes,
		Status:          ap.Status,
	}
}

// NewAppointmentDTO renders ap with times in loc. Preloaded Store and User
// fill the descriptive fields when present.
func NewAppointmentDTO(ap models.Appointment, loc *time.Location) AppointmentDTO {
	return AppointmentDTO{
		ID:              ap.ID,
		StoreID:         ap.StoreID,
		StoreName:       ap.Store.Name,
		UserID:          ap.UserID,
		UserName:        ap.User.FullName,
		UserEmail:       ap.User.Email,
		AppointmentTime: timezone.FormatLocal(ap.AppointmentTime, loc),
		DurationMinutes: ap.DurationMinutes,
		Status:          ap.Status,
		CreatedAt:       ap.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:       ap.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

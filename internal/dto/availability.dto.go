package dto

import "github.com/BruksfildServices01/store-scheduler/internal/models"

type AvailabilityWindowDTO struct {
	Weekday   string `json:"weekday" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

type AvailabilityDTO struct {
	ID        uint   `json:"id"`
	StoreID   uint   `json:"store_id"`
	Weekday   string `json:"weekday"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func NewAvailabilityDTOs(rows []models.StoreAvailability) []AvailabilityDTO {
	out := make([]AvailabilityDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, AvailabilityDTO{
			ID:        r.ID,
			StoreID:   r.StoreID,
			Weekday:   r.Weekday,
			StartTime: r.StartTime,
			EndTime:   r.EndTime,
		})
	}
	return out
}

package appointment

import "github.com/BruksfildServices01/store-scheduler/internal/httperr"

var (
	ErrInPast              = httperr.ErrConflict("appointment_in_past", "Cannot book an appointment in the past")
	ErrOutsideAvailability = httperr.ErrConflict("outside_availability", "Store is not available at this time")
	ErrSlotBooked          = httperr.ErrConflict("slot_already_booked", "This time slot is already booked")

	ErrInvalidStatus = httperr.ErrInvalidStatus("invalid_status", "Invalid status")

	ErrNotStoreOwner       = httperr.ErrForbidden("not_store_owner", "Not authorized to manage this store")
	ErrAppointmentNotFound = httperr.ErrNotFound("appointment_not_found", "Appointment not found")
	ErrStoreNotFound       = httperr.ErrNotFound("store_not_found", "Store not found")

	ErrInvalidDuration = httperr.ErrValidation("invalid_duration", "duration_minutes must be a positive number of minutes")
	ErrInvalidTime     = httperr.ErrValidation("invalid_appointment_time", "appointment_time must be an ISO-8601 local date-time")
	ErrInvalidWeekday  = httperr.ErrValidation("invalid_weekday", "weekday must be one of Monday..Sunday")
	ErrInvalidClock    = httperr.ErrValidation("invalid_time_of_day", "start_time and end_time must be HH:MM or HH:MM:SS")
	ErrEmptyWindow     = httperr.ErrValidation("invalid_window", "start_time must be before end_time")
)

package appointment

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/store-scheduler/internal/audit"
	"github.com/BruksfildServices01/store-scheduler/internal/cache"
	domain "github.com/BruksfildServices01/store-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/store-scheduler/internal/models"
	"github.com/BruksfildServices01/store-scheduler/internal/notify"
)

type UpdateStatus struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	notifier notify.Notifier
	booked   cache.BookedCache
	settings Settings
}

func NewUpdateStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
	notifier notify.Notifier,
	booked cache.BookedCache,
	settings Settings,
) *UpdateStatus {
	return &UpdateStatus{
		repo:     repo,
		audit:    audit,
		notifier: notifier,
		booked:   booked,
		settings: settings,
	}
}

// Execute sets an owner decision on an appointment. Checks run in order:
// status value, appointment existence, store ownership.
func (uc *UpdateStatus) Execute(
	ctx context.Context,
	appointmentID uint,
	ownerID uint,
	status string,
) (*models.Appointment, error) {

	if _, err := domain.ParseTarget(status); err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	prev, err := domain.Transition(ap, ap.Store.UserID, ownerID, status)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointmentStatus(ctx, ap); err != nil {
		return nil, err
	}

	if err := uc.booked.Invalidate(ctx, ap.StoreID); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Uint("store_id", ap.StoreID).Msg("booked cache invalidate failed")
	}

	uc.audit.Dispatch(audit.Event{
		StoreID:  ap.StoreID,
		UserID:   &ownerID,
		Action:   audit.ActionAppointmentStatusChanged,
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]string{
			"from": string(prev),
			"to":   ap.Status,
		},
	})

	uc.notifier.AppointmentStatusChanged(mailFor(ap, uc.settings.Location(&ap.Store)))

	return ap, nil
}

package appointment

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/store-scheduler/internal/audit"
	"github.com/BruksfildServices01/store-scheduler/internal/cache"
	domain "github.com/BruksfildServices01/store-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/store-scheduler/internal/models"
	"github.com/BruksfildServices01/store-scheduler/internal/notify"
	"github.com/BruksfildServices01/store-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	StoreID         uint
	UserID          uint
	AppointmentTime string
	DurationMinutes int
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	notifier notify.Notifier
	booked   cache.BookedCache
	settings Settings
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	notifier notify.Notifier,
	booked cache.BookedCache,
	settings Settings,
) *CreateAppointment {
	return &CreateAppointment{
		repo:     repo,
		audit:    audit,
		notifier: notifier,
		booked:   booked,
		settings: settings,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute admits and stores a pending appointment. The returned record
// carries its Store so callers can render times in the store timezone.
func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	ap, err := uc.create(ctx, in)
	observeAdmission(err)
	if err != nil {
		return nil, err
	}

	uc.afterCreate(ctx, ap)
	return ap, nil
}

func (uc *CreateAppointment) create(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1️⃣ Input
	// --------------------------------------------------
	if in.DurationMinutes <= 0 {
		return nil, domain.ErrInvalidDuration
	}

	store, err := uc.repo.GetStore(ctx, in.StoreID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Wall clock in the store timezone
	// --------------------------------------------------
	loc := uc.settings.Location(store)
	start, err := timezone.ParseLocal(in.AppointmentTime, loc)
	if err != nil {
		return nil, domain.ErrInvalidTime
	}

	ap := &models.Appointment{
		StoreID:         store.ID,
		UserID:          in.UserID,
		AppointmentTime: start.UTC(),
		DurationMinutes: in.DurationMinutes,
		Status:          string(domain.InitialStatus()),
	}

	// --------------------------------------------------
	// 3️⃣ Admission + insert, serialized per store
	// --------------------------------------------------
	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		if _, err := tx.LockStore(ctx, store.ID); err != nil {
			return err
		}

		rows, err := tx.ListWindowsForDay(ctx, store.ID, domain.WeekdayOf(start))
		if err != nil {
			return err
		}

		existing, err := tx.ListBlockingAppointments(ctx, store.ID, blockingStatuses(uc.settings.Policy))
		if err != nil {
			return err
		}

		if err := domain.Admit(domain.AdmissionRequest{
			Start:           start,
			DurationMinutes: in.DurationMinutes,
			Now:             uc.settings.nowIn(loc),
			Windows:         toWindows(rows),
			Existing:        toBookings(existing, loc),
		}, uc.settings.Policy); err != nil {
			return err
		}

		return tx.CreateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	ap.Store = *store
	return ap, nil
}

// afterCreate runs the best-effort side effects. None of them can fail
// the request.
func (uc *CreateAppointment) afterCreate(ctx context.Context, ap *models.Appointment) {
	lg := zerolog.Ctx(ctx)

	if err := uc.booked.Invalidate(ctx, ap.StoreID); err != nil {
		lg.Warn().Err(err).Uint("store_id", ap.StoreID).Msg("booked cache invalidate failed")
	}

	uc.audit.Dispatch(audit.Event{
		StoreID:  ap.StoreID,
		UserID:   &ap.UserID,
		Action:   audit.ActionAppointmentCreated,
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"appointment_time": ap.AppointmentTime.Format(time.RFC3339),
			"duration_minutes": ap.DurationMinutes,
		},
	})

	user, err := uc.repo.GetUser(ctx, ap.UserID)
	if err != nil {
		lg.Warn().Err(err).Uint("user_id", ap.UserID).Msg("load requester for notification")
		return
	}
	ap.User = *user

	uc.notifier.AppointmentRequested(mailFor(ap, uc.settings.Location(&ap.Store)))
}

// ======================================================
// HELPERS
// ======================================================

func blockingStatuses(p domain.Policy) []domain.Status {
	if p.Strict {
		return []domain.Status{domain.StatusApproved, domain.StatusPending}
	}
	return []domain.Status{domain.StatusApproved}
}

// toWindows skips rows that fail validation; they can never match.
func toWindows(rows []models.StoreAvailability) []domain.Window {
	out := make([]domain.Window, 0, len(rows))
	for _, r := range rows {
		w, err := domain.NewWindow(r.Weekday, r.StartTime, r.EndTime)
		if err != nil {
			continue
		}
		out = append(out, w)
	}
	return out
}

func toBookings(apps []models.Appointment, loc *time.Location) []domain.Booking {
	out := make([]domain.Booking, 0, len(apps))
	for _, a := range apps {
		out = append(out, domain.Booking{
			ID:              a.ID,
			Start:           a.AppointmentTime.In(loc),
			DurationMinutes: a.DurationMinutes,
			Status:          domain.Status(a.Status),
		})
	}
	return out
}

func mailFor(ap *models.Appointment, loc *time.Location) notify.AppointmentMail {
	return notify.AppointmentMail{
		To:              ap.User.Email,
		UserName:        ap.User.FullName,
		StoreName:       ap.Store.Name,
		Start:           ap.AppointmentTime.In(loc),
		DurationMinutes: ap.DurationMinutes,
		Status:          ap.Status,
	}
}

package appointment

import (
	"context"

	"github.com/BruksfildServices01/store-scheduler/internal/models"
)

type Repository interface {
	// -------- Store / User --------
	GetStore(
		ctx context.Context,
		id uint,
	) (*models.Store, error)

	GetUser(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	// -------- Admission --------

	// Transaction runs fn against a repository bound to one database
	// transaction. fn's error rolls the transaction back.
	Transaction(
		ctx context.Context,
		fn func(tx Repository) error,
	) error

	// LockStore loads the store and holds a row lock on it until the
	// surrounding transaction ends.
	LockStore(
		ctx context.Context,
		id uint,
	) (*models.Store, error)

	ListWindowsForDay(
		ctx context.Context,
		storeID uint,
		weekday string,
	) ([]models.StoreAvailability, error)

	ListBlockingAppointments(
		ctx context.Context,
		storeID uint,
		statuses []Status,
	) ([]models.Appointment, error)

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- State change --------
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	UpdateAppointmentStatus(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Listing --------
	ListAppointmentsForUser(
		ctx context.Context,
		userID uint,
	) ([]models.Appointment, error)

	ListAppointmentsForStore(
		ctx context.Context,
		storeID uint,
	) ([]models.Appointment, error)

	ListBookedAppointments(
		ctx context.Context,
		storeID uint,
	) ([]models.Appointment, error)
}

type AvailabilityRepository interface {
	GetStore(
		ctx context.Context,
		id uint,
	) (*models.Store, error)

	// ReplaceWindows discards every window of storeID and inserts rows,
	// atomically.
	ReplaceWindows(
		ctx context.Context,
		storeID uint,
		rows []models.StoreAvailability,
	) ([]models.StoreAvailability, error)

	ListWindows(
		ctx context.Context,
		storeID uint,
	) ([]models.StoreAvailability, error)
}

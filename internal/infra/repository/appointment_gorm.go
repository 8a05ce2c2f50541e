package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/store-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/store-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Store / User
// --------------------------------------------------

func (r *AppointmentGormRepository) GetStore(
	ctx context.Context,
	id uint,
) (*models.Store, error) {
	return getStore(r.db.WithContext(ctx), id)
}

func (r *AppointmentGormRepository) GetUser(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// --------------------------------------------------
// Admission
// --------------------------------------------------

func (r *AppointmentGormRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AppointmentGormRepository{db: tx})
	})
}

// LockStore takes SELECT ... FOR UPDATE on the store row. SQLite has no
// row locks; its single-writer transaction gives the same serialization.
func (r *AppointmentGormRepository) LockStore(
	ctx context.Context,
	id uint,
) (*models.Store, error) {

	q := r.db.WithContext(ctx)
	if q.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return getStore(q, id)
}

func (r *AppointmentGormRepository) ListWindowsForDay(
	ctx context.Context,
	storeID uint,
	weekday string,
) ([]models.StoreAvailability, error) {

	var rows []models.StoreAvailability
	if err := r.db.WithContext(ctx).
		Where("store_id = ? AND weekday = ?", storeID, weekday).
		Order("start_time ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *AppointmentGormRepository) ListBlockingAppointments(
	ctx context.Context,
	storeID uint,
	statuses []domain.Status,
) ([]models.Appointment, error) {

	names := make([]string, 0, len(statuses))
	for _, s := range statuses {
		names = append(names, string(s))
	}

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("id", "store_id", "appointment_time", "duration_minutes", "status").
		Where("store_id = ? AND status IN ?", storeID, names).
		Order("appointment_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(ap).Error
}

// --------------------------------------------------
// State change
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Store").
		Preload("User").
		First(&ap, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrAppointmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointmentStatus(
	ctx context.Context,
	ap *models.Appointment,
) error {
	// Model(ap) lets gorm write the new updated_at back onto ap
	return r.db.WithContext(ctx).
		Model(ap).
		Update("status", ap.Status).Error
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointmentsForUser(
	ctx context.Context,
	userID uint,
) ([]models.Appointment, error) {
	return r.listAppointments(ctx, "user_id = ?", userID)
}

func (r *AppointmentGormRepository) ListAppointmentsForStore(
	ctx context.Context,
	storeID uint,
) ([]models.Appointment, error) {
	return r.listAppointments(ctx, "store_id = ?", storeID)
}

func (r *AppointmentGormRepository) ListBookedAppointments(
	ctx context.Context,
	storeID uint,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("id", "appointment_time", "duration_minutes", "status").
		Where(
			"store_id = ? AND status IN ?",
			storeID,
			[]string{string(domain.StatusPending), string(domain.StatusApproved)},
		).
		Order("appointment_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) listAppointments(
	ctx context.Context,
	where string,
	arg uint,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Store").
		Preload("User").
		Where(where, arg).
		Order("appointment_time DESC").
		Order("id DESC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func getStore(q *gorm.DB, id uint) (*models.Store, error) {
	var store models.Store
	err := q.First(&store, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrStoreNotFound
	}
	if err != nil {
		return nil, err
	}
	return &store, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)

package repository

import (
	"context"
	"sort"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/store-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/store-scheduler/internal/models"
)

type AvailabilityGormRepository struct {
	db *gorm.DB
}

func NewAvailabilityGormRepository(db *gorm.DB) *AvailabilityGormRepository {
	return &AvailabilityGormRepository{db: db}
}

func (r *AvailabilityGormRepository) GetStore(
	ctx context.Context,
	id uint,
) (*models.Store, error) {
	return getStore(r.db.WithContext(ctx), id)
}

func (r *AvailabilityGormRepository) ReplaceWindows(
	ctx context.Context,
	storeID uint,
	rows []models.StoreAvailability,
) ([]models.StoreAvailability, error) {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("store_id = ?", storeID).
			Delete(&models.StoreAvailability{}).Error; err != nil {
			return err
		}

		if len(rows) == 0 {
			return nil
		}

		for i := range rows {
			rows[i].ID = 0
			rows[i].StoreID = storeID
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return nil, err
	}

	sortWindows(rows)
	return rows, nil
}

func (r *AvailabilityGormRepository) ListWindows(
	ctx context.Context,
	storeID uint,
) ([]models.StoreAvailability, error) {

	var rows []models.StoreAvailability
	if err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	sortWindows(rows)
	return rows, nil
}

// sortWindows orders by calendar weekday, then by start time.
func sortWindows(rows []models.StoreAvailability) {
	sort.SliceStable(rows, func(i, j int) bool {
		wi, wj := domain.WeekdayIndex(rows[i].Weekday), domain.WeekdayIndex(rows[j].Weekday)
		if wi != wj {
			return wi < wj
		}
		return rows[i].StartTime < rows[j].StartTime
	})
}

var _ domain.AvailabilityRepository = (*AvailabilityGormRepository)(nil)

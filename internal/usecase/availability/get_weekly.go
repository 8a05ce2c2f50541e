package availability

import (
	"context"

	domain "github.com/BruksfildServices01/store-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/store-scheduler/internal/models"
)

type GetWeeklyAvailability struct {
	repo domain.AvailabilityRepository
}

func NewGetWeeklyAvailability(repo domain.AvailabilityRepository) *GetWeeklyAvailability {
	return &GetWeeklyAvailability{repo: repo}
}

// Execute lists a store's windows, Monday first, then by start time.
func (uc *GetWeeklyAvailability) Execute(
	ctx context.Context,
	storeID uint,
) ([]models.StoreAvailability, error) {

	if _, err := uc.repo.GetStore(ctx, storeID); err != nil {
		return nil, err
	}
	return uc.repo.ListWindows(ctx, storeID)
}

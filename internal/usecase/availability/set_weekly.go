package availability

import (
	"context"

	"github.com/BruksfildServices01/store-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/store-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/store-scheduler/internal/models"
)

type WindowInput struct {
	Weekday   string
	StartTime string
	EndTime   string
}

type SetWeeklyAvailability struct {
	repo  domain.AvailabilityRepository
	audit *audit.Dispatcher
}

func NewSetWeeklyAvailability(
	repo domain.AvailabilityRepository,
	audit *audit.Dispatcher,
) *SetWeeklyAvailability {
	return &SetWeeklyAvailability{
		repo:  repo,
		audit: audit,
	}
}

// Execute replaces every window of the store with windows. An empty list
// clears the schedule.
func (uc *SetWeeklyAvailability) Execute(
	ctx context.Context,
	storeID uint,
	ownerID uint,
	windows []WindowInput,
) ([]models.StoreAvailability, error) {

	store, err := uc.repo.GetStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if err := domain.Authorize(store.UserID, ownerID); err != nil {
		return nil, err
	}

	rows := make([]models.StoreAvailability, 0, len(windows))
	for _, in := range windows {
		w, err := domain.NewWindow(in.Weekday, in.StartTime, in.EndTime)
		if err != nil {
			return nil, err
		}
		rows = append(rows, models.StoreAvailability{
			StoreID:   storeID,
			Weekday:   w.Weekday,
			StartTime: w.Start,
			EndTime:   w.End,
		})
	}

	saved, err := uc.repo.ReplaceWindows(ctx, storeID, rows)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		StoreID:  storeID,
		UserID:   &ownerID,
		Action:   audit.ActionAvailabilityReplaced,
		Entity:   "store",
		EntityID: &store.ID,
		Metadata: map[string]int{"windows": len(saved)},
	})

	return saved, nil
}

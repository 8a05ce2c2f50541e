package appointment

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/store-scheduler/internal/cache"
	domain "github.com/BruksfildServices01/store-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/store-scheduler/internal/dto"
)

// ListBooked serves the anonymous busy-slot view of a store.
type ListBooked struct {
	repo     domain.Repository
	booked   cache.BookedCache
	settings Settings
}

func NewListBooked(
	repo domain.Repository,
	booked cache.BookedCache,
	settings Settings,
) *ListBooked {
	return &ListBooked{
		repo:     repo,
		booked:   booked,
		settings: settings,
	}
}

func (uc *ListBooked) Execute(
	ctx context.Context,
	storeID uint,
) ([]dto.BookedSlotDTO, error) {

	lg := zerolog.Ctx(ctx)

	hit, err := uc.booked.Get(ctx, storeID)
	cacheable := err == nil
	if err != nil {
		lg.Warn().Err(err).Uint("store_id", storeID).Msg("booked cache read failed")
	}
	if hit.Hit {
		return hit.Slots, nil
	}

	store, err := uc.repo.GetStore(ctx, storeID)
	if err != nil {
		return nil, err
	}

	apps, err := uc.repo.ListBookedAppointments(ctx, storeID)
	if err != nil {
		return nil, err
	}

	loc := uc.settings.Location(store)
	slots := make([]dto.BookedSlotDTO, 0, len(apps))
	for _, a := range apps {
		slots = append(slots, dto.NewBookedSlotDTO(a, loc))
	}

	if !cacheable {
		return slots, nil
	}
	// Set drops the write if an invalidation happened since Get
	if err := uc.booked.Set(ctx, storeID, hit.Gen, slots); err != nil {
		lg.Warn().Err(err).Uint("store_id", storeID).Msg("booked cache write failed")
	}
	return slots, nil
}

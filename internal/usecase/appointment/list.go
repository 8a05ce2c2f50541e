package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/store-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/store-scheduler/internal/models"
)

type ListForUser struct {
	repo domain.Repository
}

func NewListForUser(repo domain.Repository) *ListForUser {
	return &ListForUser{repo: repo}
}

// Execute returns the caller's own appointments, latest start first.
func (uc *ListForUser) Execute(
	ctx context.Context,
	userID uint,
) ([]models.Appointment, error) {
	return uc.repo.ListAppointmentsForUser(ctx, userID)
}

type ListForStore struct {
	repo domain.Repository
}

func NewListForStore(repo domain.Repository) *ListForStore {
	return &ListForStore{repo: repo}
}

// Execute returns every appointment of a store the caller owns, latest
// start first.
func (uc *ListForStore) Execute(
	ctx context.Context,
	storeID uint,
	ownerID uint,
) (*models.Store, []models.Appointment, error) {

	store, err := uc.repo.GetStore(ctx, storeID)
	if err != nil {
		return nil, nil, err
	}

	if err := domain.Authorize(store.UserID, ownerID); err != nil {
		return nil, nil, err
	}

	apps, err := uc.repo.ListAppointmentsForStore(ctx, storeID)
	if err != nil {
		return nil, nil, err
	}
	return store, apps, nil
}

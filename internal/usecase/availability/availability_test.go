package availability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/store-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/store-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/store-scheduler/internal/testutil"
)

func TestSetWeekly_ReplacesAndNormalizes(t *testing.T) {
	gdb := testutil.NewDB(t)
	f := testutil.Seed(t, gdb)
	repo := repository.NewAvailabilityGormRepository(gdb)
	set := NewSetWeeklyAvailability(repo, nil)
	get := NewGetWeeklyAvailability(repo)
	ctx := context.Background()

	_, err := set.Execute(ctx, f.Store.ID, f.Owner.ID, []WindowInput{
		{Weekday: "Friday", StartTime: "09:00", EndTime: "12:00"},
	})
	require.NoError(t, err)

	saved, err := set.Execute(ctx, f.Store.ID, f.Owner.ID, []WindowInput{
		{Weekday: "Wednesday", StartTime: "13:00", EndTime: "17:30"},
		{Weekday: "Monday", StartTime: "09:00:00", EndTime: "17:00:00"},
		{Weekday: "Wednesday", StartTime: "08:00", EndTime: "12:00"},
	})
	require.NoError(t, err)
	require.Len(t, saved, 3)

	got, err := get.Execute(ctx, f.Store.ID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Monday", got[0].Weekday)
	assert.Equal(t, "Wednesday", got[1].Weekday)
	assert.Equal(t, "08:00:00", got[1].StartTime)
	assert.Equal(t, "13:00:00", got[2].StartTime)
	assert.Equal(t, "17:30:00", got[2].EndTime)
}

func TestSetWeekly_EmptyClears(t *testing.T) {
	gdb := testutil.NewDB(t)
	f := testutil.Seed(t, gdb)
	testutil.AddWindow(t, gdb, f.Store.ID, "Monday", "09:00:00", "17:00:00")
	repo := repository.NewAvailabilityGormRepository(gdb)

	saved, err := NewSetWeeklyAvailability(repo, nil).Execute(context.Background(), f.Store.ID, f.Owner.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, saved)

	got, err := NewGetWeeklyAvailability(repo).Execute(context.Background(), f.Store.ID)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSetWeekly_Errors(t *testing.T) {
	gdb := testutil.NewDB(t)
	f := testutil.Seed(t, gdb)
	testutil.AddWindow(t, gdb, f.Store.ID, "Monday", "09:00:00", "17:00:00")
	set := NewSetWeeklyAvailability(repository.NewAvailabilityGormRepository(gdb), nil)
	ctx := context.Background()

	tests := []struct {
		name    string
		storeID uint
		ownerID uint
		windows []WindowInput
		want    error
	}{
		{"missing store", 999, f.Owner.ID, nil, domain.ErrStoreNotFound},
		{"not owner", f.Store.ID, f.Customer.ID, nil, domain.ErrNotStoreOwner},
		{"bad weekday", f.Store.ID, f.Owner.ID, []WindowInput{{Weekday: "Mon", StartTime: "09:00", EndTime: "10:00"}}, domain.ErrInvalidWeekday},
		{"bad clock", f.Store.ID, f.Owner.ID, []WindowInput{{Weekday: "Monday", StartTime: "9am", EndTime: "10:00"}}, domain.ErrInvalidClock},
		{"empty window", f.Store.ID, f.Owner.ID, []WindowInput{{Weekday: "Monday", StartTime: "10:00", EndTime: "10:00"}}, domain.ErrEmptyWindow},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := set.Execute(ctx, tc.storeID, tc.ownerID, tc.windows)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	// failed calls leave the existing schedule untouched
	got, err := NewGetWeeklyAvailability(repository.NewAvailabilityGormRepository(gdb)).Execute(ctx, f.Store.ID)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestGetWeekly_StoreNotFound(t *testing.T) {
	_, err := NewGetWeeklyAvailability(repository.NewAvailabilityGormRepository(testutil.NewDB(t))).
		Execute(context.Background(), 5)
	assert.ErrorIs(t, err, domain.ErrStoreNotFound)
}

package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/timetabler/internal/app/models"
	"github.com/yigit/timetabler/internal/pkg/apperrors"
)

func TestResolver_CachesPerRun(t *testing.T) {
	h := newHarness()
	r := NewResolver(h.referenceStores())
	ctx := context.Background()

	first, err := r.Module(ctx, "ACC321")
	require.NoError(t, err)
	again, err := r.Module(ctx, "ACC321")
	require.NoError(t, err)

	assert.Equal(t, first, again)
	assert.Equal(t, 1, h.modules.lookups)
	assert.Equal(t, 1, h.modules.creates)

	// A fresh run consults the store again but finds the existing row.
	other, err := NewResolver(h.referenceStores()).Module(ctx, "ACC321")
	require.NoError(t, err)
	assert.Equal(t, first, other)
	assert.Equal(t, 1, h.modules.creates)
}

func TestResolver_EmptyNamesResolveToNil(t *testing.T) {
	h := newHarness()
	r := NewResolver(h.referenceStores())
	ctx := context.Background()

	venue, err := r.Venue(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, venue)

	lecturer, err := r.Lecturer(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, lecturer)

	programme, err := r.Programme(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, programme)

	assert.Equal(t, 0, h.venues.lookups+h.lecturers.lookups+h.programmes.lookups)
}

func TestResolver_RetriesLookupAfterCreateRace(t *testing.T) {
	h := newHarness()
	h.venues.race = true
	r := NewResolver(h.referenceStores())

	id, err := r.Venue(context.Background(), "Main Hall")
	require.NoError(t, err)
	require.NotNil(t, id)

	assert.Equal(t, h.venues.byName["Main Hall"].ID, *id)
	assert.Equal(t, 2, h.venues.lookups)
	assert.Equal(t, 1, h.venues.creates)
}

type brokenModules struct{}

func (brokenModules) GetByCode(context.Context, string) (*models.Module, error) {
	return nil, errors.New("connection refused")
}

func (brokenModules) Create(context.Context, *models.Module) error {
	return errors.New("unreachable")
}

func TestResolver_LookupFailureIsNotCreate(t *testing.T) {
	r := NewResolver(ReferenceStores{Modules: brokenModules{}})

	_, err := r.Module(context.Background(), "ACC321")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.False(t, errors.Is(err, apperrors.ErrResourceNotFound))
}

func TestProgrammeCode(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Bachelor of Commerce 2", "BOC2"},
		{"bachelor of science", "BOS"},
		{"BSc (Hons) Accounting", "BHA"},
		{"  Diploma   in IT 10 ", "DII10"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProgrammeCode(tt.name))
		})
	}
}

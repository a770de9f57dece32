package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCropInfo(t *testing.T) {
	db := &fakeDB{row: []any{"Pšenica"}}
	s := newTestStore(db)

	info, err := s.GetCropInfo(context.Background(), "pšenica")
	require.NoError(t, err)
	require.NotNil(t, info)

	// The canonical stored name is duplicated into the localized field;
	// seasons and category are placeholder text.
	assert.Equal(t, "Pšenica", info.CropName)
	assert.Equal(t, "Pšenica", info.CroatianName)
	assert.Equal(t, "Crop", info.Category)
	assert.Equal(t, "Spring", info.PlantingSeason)
	assert.Equal(t, "Fall", info.HarvestSeason)
	assert.Equal(t, "Information about Pšenica", info.Description)

	assert.Equal(t, "pšenica", db.namedArg("crop_name"))
}

func TestGetCropInfoAbsent(t *testing.T) {
	s := newTestStore(&fakeDB{})

	info, err := s.GetCropInfo(context.Background(), "dragonfruit")
	assert.NoError(t, err)
	assert.Nil(t, info)
}

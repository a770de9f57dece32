package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/avaagri/farmcrm/internal/sqlerr"
)

const getCropInfoSQL = `
SELECT DISTINCT crop_type
FROM crop_technology
WHERE LOWER(crop_type) = LOWER(@crop_name)
LIMIT 1`

// GetCropInfo looks up a crop name case-insensitively in the
// crop-technology reference table. The canonical stored name is
// duplicated into the localized-name field; category and seasons are
// fixed placeholder text until the reference table carries them.
//
// It returns (nil, nil) when no case-insensitive match exists.
func (s *Store) GetCropInfo(ctx context.Context, cropName string) (*CropInfo, error) {
	row := s.db.QueryRow(ctx, getCropInfoSQL, pgx.NamedArgs{"crop_name": cropName})

	var cropType string
	if err := row.Scan(&cropType); err != nil {
		if sqlerr.IsNotFound(err) {
			return nil, nil
		}
		return nil, s.fail("get_crop_info", "crop_technology", err)
	}

	return &CropInfo{
		ID:             1,
		CropName:       cropType,
		CroatianName:   cropType,
		Category:       defaultCropCategory,
		PlantingSeason: defaultPlantingSeason,
		HarvestSeason:  defaultHarvestSeason,
		Description:    fmt.Sprintf("Information about %s", cropType),
	}, nil
}

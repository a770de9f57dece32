package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const listFieldsSQL = `
SELECT f.field_id, f.field_name, f.field_size, f.field_location, f.soil_type,
       fc.crop_name, fc.variety, fc.planting_date, fc.status
FROM fields f
LEFT JOIN field_crops fc ON f.field_id = fc.field_id AND fc.status = 'active'
WHERE f.farmer_id = @farmer_id
ORDER BY f.field_name`

// ListFields returns a farmer's fields ordered by field name, each
// left-joined to its active crop planting. A field with no active
// planting carries nil crop attributes; a NULL size defaults to zero.
func (s *Store) ListFields(ctx context.Context, farmerID int64) ([]FieldView, error) {
	rows, err := s.db.Query(ctx, listFieldsSQL, pgx.NamedArgs{"farmer_id": farmerID})
	if err != nil {
		return nil, s.fail("list_fields", "fields", err)
	}
	defer rows.Close()

	var fields []FieldView
	for rows.Next() {
		var fieldID int64
		var fieldName, fieldLocation, soilType pgtype.Text
		var fieldSize pgtype.Numeric
		var cropName, variety, cropStatus pgtype.Text
		var plantingDate pgtype.Date
		err := rows.Scan(&fieldID, &fieldName, &fieldSize, &fieldLocation, &soilType,
			&cropName, &variety, &plantingDate, &cropStatus)
		if err != nil {
			return nil, s.fail("list_fields", "fields", err)
		}

		fields = append(fields, FieldView{
			FieldID:       fieldID,
			FieldName:     textValue(fieldName),
			FieldSize:     numericToDecimal(fieldSize),
			FieldLocation: textValue(fieldLocation),
			SoilType:      textValue(soilType),
			CurrentCrop:   textPtr(cropName),
			Variety:       textPtr(variety),
			PlantingDate:  datePtr(plantingDate),
			CropStatus:    textPtr(cropStatus),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, s.fail("list_fields", "fields", err)
	}

	return fields, nil
}

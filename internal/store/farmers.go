package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/avaagri/farmcrm/internal/sqlerr"
)

const getFarmerSQL = `
SELECT id, farm_name, manager_name, manager_last_name, city, wa_phone_number
FROM farmers
WHERE id = @farmer_id`

// GetFarmer looks up a single farmer by primary key.
//
// It returns (nil, nil) when no row matches. TotalHectares and
// FarmerType are placeholder defaults; the schema has no such columns.
func (s *Store) GetFarmer(ctx context.Context, farmerID int64) (*Farmer, error) {
	row := s.db.QueryRow(ctx, getFarmerSQL, pgx.NamedArgs{"farmer_id": farmerID})

	var id int64
	var farmName, managerName, managerLast, city, waPhone pgtype.Text
	if err := row.Scan(&id, &farmName, &managerName, &managerLast, &city, &waPhone); err != nil {
		if sqlerr.IsNotFound(err) {
			return nil, nil
		}
		return nil, s.fail("get_farmer", "farmers", err)
	}

	return &Farmer{
		ID:              id,
		FarmName:        textValue(farmName),
		ManagerName:     textValue(managerName),
		ManagerLastName: textValue(managerLast),
		TotalHectares:   decimal.Zero,
		FarmerType:      defaultFarmerType,
		City:            textValue(city),
		WAPhoneNumber:   textValue(waPhone),
	}, nil
}

const listFarmersSQL = `
SELECT id, farm_name, manager_name, manager_last_name, phone, city, wa_phone_number
FROM farmers
ORDER BY farm_name
LIMIT @limit`

// ListFarmers returns farmers ordered by farm name ascending, capped
// at limit (DefaultFarmerLimit when limit <= 0), denormalized for
// selection lists.
func (s *Store) ListFarmers(ctx context.Context, limit int) ([]FarmerSummary, error) {
	if limit <= 0 {
		limit = DefaultFarmerLimit
	}

	rows, err := s.db.Query(ctx, listFarmersSQL, pgx.NamedArgs{"limit": limit})
	if err != nil {
		return nil, s.fail("list_farmers", "farmers", err)
	}
	defer rows.Close()

	var farmers []FarmerSummary
	for rows.Next() {
		var id int64
		var farmName, managerName, managerLast, phone, city, waPhone pgtype.Text
		if err := rows.Scan(&id, &farmName, &managerName, &managerLast, &phone, &city, &waPhone); err != nil {
			return nil, s.fail("list_farmers", "farmers", err)
		}

		farmers = append(farmers, FarmerSummary{
			ID:          id,
			Name:        displayName(textValue(managerName), textValue(managerLast)),
			FarmName:    firstNonEmpty(textValue(farmName), unknownFarmName),
			Phone:       firstNonEmpty(textValue(phone), textValue(waPhone)),
			Location:    textValue(city),
			FarmType:    defaultFarmerType,
			TotalSizeHa: 0,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, s.fail("list_farmers", "farmers", err)
	}

	return farmers, nil
}

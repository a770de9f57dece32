package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// DISTINCT ON keeps one row per farmer: the inner ORDER BY puts each
// farmer's newest user-role message first, the outer ORDER BY sorts
// the survivors by message time. Ties on equal timestamps resolve to
// store-native order.
const approvalQueueSQL = `
WITH latest_messages AS (
    SELECT DISTINCT ON (m.farmer_id)
           m.id, m.farmer_id, m.message_text, m.timestamp,
           f.manager_name, f.manager_last_name, f.phone, f.city
    FROM incoming_messages m
    JOIN farmers f ON m.farmer_id = f.id
    WHERE m.role = @role
    ORDER BY m.farmer_id, m.timestamp DESC
)
SELECT id, farmer_id, message_text, timestamp,
       manager_name, manager_last_name, phone, city
FROM latest_messages
ORDER BY timestamp DESC
LIMIT @limit`

// ApprovalQueue returns, for every farmer with at least one user-role
// message, that farmer's single most recent user message joined to
// display fields, ordered by message time descending and capped at 100
// rows. Message text longer than 100 runes is truncated with an
// ellipsis marker.
//
// The schema has no approval-state column, so every entry lands in
// Unapproved and Approved stays empty.
func (s *Store) ApprovalQueue(ctx context.Context) (*ApprovalQueue, error) {
	rows, err := s.db.Query(ctx, approvalQueueSQL, pgx.NamedArgs{
		"role":  roleUser,
		"limit": approvalQueueLimit,
	})
	if err != nil {
		return nil, s.fail("approval_queue", "incoming_messages", err)
	}
	defer rows.Close()

	queue := &ApprovalQueue{
		Unapproved: []ApprovalEntry{},
		Approved:   []ApprovalEntry{},
	}
	for rows.Next() {
		var id, farmerID int64
		var text pgtype.Text
		var ts time.Time
		var managerName, managerLast, phone, city pgtype.Text
		err := rows.Scan(&id, &farmerID, &text, &ts, &managerName, &managerLast, &phone, &city)
		if err != nil {
			return nil, s.fail("approval_queue", "incoming_messages", err)
		}

		queue.Unapproved = append(queue.Unapproved, ApprovalEntry{
			ID:             id,
			FarmerID:       farmerID,
			FarmerName:     displayName(textValue(managerName), textValue(managerLast)),
			FarmerPhone:    textValue(phone),
			FarmerLocation: textValue(city),
			FarmerType:     defaultFarmerType,
			FarmerSize:     defaultFarmerSize,
			LastMessage:    truncateMessage(textValue(text), lastMessageMaxLen),
			Timestamp:      ts,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, s.fail("approval_queue", "incoming_messages", err)
	}

	return queue, nil
}

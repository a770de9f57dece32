package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/avaagri/farmcrm/internal/sqlerr"
)

// Message role tags stored in incoming_messages.role.
const (
	roleUser      = "user"
	roleAssistant = "assistant"
)

const listConversationsSQL = `
SELECT id, message_text, timestamp, role
FROM incoming_messages
WHERE farmer_id = @farmer_id
ORDER BY timestamp DESC
LIMIT @limit`

// ListRecentConversations returns the limit most recent messages for a
// farmer, newest first (DefaultConversationLimit when limit <= 0).
// Each message fills exactly one of the user_input/ava_response slots
// per its role tag; confidence and approval status are fixed
// placeholders, since the schema tracks neither.
func (s *Store) ListRecentConversations(ctx context.Context, farmerID int64, limit int) ([]Turn, error) {
	if limit <= 0 {
		limit = DefaultConversationLimit
	}

	rows, err := s.db.Query(ctx, listConversationsSQL, pgx.NamedArgs{
		"farmer_id": farmerID,
		"limit":     limit,
	})
	if err != nil {
		return nil, s.fail("list_recent_conversations", "incoming_messages", err)
	}
	defer rows.Close()

	var turns []Turn
	for rows.Next() {
		var id int64
		var text pgtype.Text
		var ts time.Time
		var role string
		if err := rows.Scan(&id, &text, &ts, &role); err != nil {
			return nil, s.fail("list_recent_conversations", "incoming_messages", err)
		}

		turn := Turn{
			ID:              id,
			Timestamp:       ts,
			MessageType:     messageTypeChat,
			ConfidenceScore: defaultConfidence,
			ApprovedStatus:  false,
		}
		if role == roleAssistant {
			turn.AvaResponse = textValue(text)
		} else {
			turn.UserInput = textValue(text)
		}
		turns = append(turns, turn)
	}
	if err := rows.Err(); err != nil {
		return nil, s.fail("list_recent_conversations", "incoming_messages", err)
	}

	return turns, nil
}

const insertMessageSQL = `
INSERT INTO incoming_messages (farmer_id, phone_number, message_text, role, timestamp)
VALUES (@farmer_id, @phone_number, @message_text, @role, CURRENT_TIMESTAMP)
RETURNING id`

// SaveConversation inserts one question/answer exchange as a pair of
// message rows, role user then role assistant, both stamped with the
// store's current time. The pair commits as one transaction: either
// both rows become visible together or neither does.
//
// It returns the id of the assistant row.
func (s *Store) SaveConversation(ctx context.Context, farmerID int64, data ConversationData) (int64, error) {
	const op = "save_conversation"

	phone := firstNonEmpty(data.WAPhoneNumber, unknownPhone)

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return 0, s.fail(op, "incoming_messages", err)
	}
	// Rollback is a no-op after a successful commit.
	defer tx.Rollback(ctx)

	var userID int64
	err = tx.QueryRow(ctx, insertMessageSQL, pgx.NamedArgs{
		"farmer_id":    farmerID,
		"phone_number": phone,
		"message_text": data.Question,
		"role":         roleUser,
	}).Scan(&userID)
	if err != nil {
		return 0, s.fail(op, "incoming_messages", err)
	}

	var assistantID int64
	err = tx.QueryRow(ctx, insertMessageSQL, pgx.NamedArgs{
		"farmer_id":    farmerID,
		"phone_number": phone,
		"message_text": data.Answer,
		"role":         roleAssistant,
	}).Scan(&assistantID)
	if err != nil {
		return 0, s.fail(op, "incoming_messages", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, s.fail(op, "incoming_messages", err)
	}

	s.log.Info().
		Int64("farmer_id", farmerID).
		Int64("message_id", assistantID).
		Msg("saved conversation pair")

	return assistantID, nil
}

const conversationDetailsSQL = `
SELECT m.id, m.farmer_id, m.message_text, m.timestamp, m.role,
       f.manager_name, f.manager_last_name
FROM incoming_messages m
JOIN farmers f ON m.farmer_id = f.id
WHERE m.id = @message_id`

// GetConversationDetails returns a single message joined to its
// farmer's display fields, role-split like ListRecentConversations.
// It returns (nil, nil) when no row matches.
func (s *Store) GetConversationDetails(ctx context.Context, messageID int64) (*ConversationDetail, error) {
	row := s.db.QueryRow(ctx, conversationDetailsSQL, pgx.NamedArgs{"message_id": messageID})

	var id, farmerID int64
	var text pgtype.Text
	var ts time.Time
	var role string
	var managerName, managerLast pgtype.Text
	err := row.Scan(&id, &farmerID, &text, &ts, &role, &managerName, &managerLast)
	if err != nil {
		if sqlerr.IsNotFound(err) {
			return nil, nil
		}
		return nil, s.fail("get_conversation_details", "incoming_messages", err)
	}

	detail := &ConversationDetail{
		ID:             id,
		FarmerID:       farmerID,
		FarmerName:     displayName(textValue(managerName), textValue(managerLast)),
		Timestamp:      ts,
		ApprovedStatus: false,
	}
	if role == roleAssistant {
		detail.AvaResponse = textValue(text)
	} else {
		detail.UserInput = textValue(text)
	}

	return detail, nil
}

package store

import (
	"time"

	"github.com/shopspring/decimal"
)

// Placeholder values for fields the live farmer_crm schema does not
// persist. The layer fabricates them so callers always see a complete
// record; callers must treat these fields as non-authoritative.
const (
	// defaultFarmerType substitutes for the missing farmers.farmer_type column.
	defaultFarmerType = "Farm"

	// defaultFarmerSize substitutes for the missing farm-size column on
	// approval entries.
	defaultFarmerSize = "0.0"

	// defaultConfidence is attached to every conversation turn; no
	// scoring pipeline exists in the current schema.
	defaultConfidence = 0.8

	// messageTypeChat tags every turn; incoming_messages has no type column.
	messageTypeChat = "chat"

	// Crop seasons and category are fixed text until the reference
	// table grows real season data.
	defaultCropCategory   = "Crop"
	defaultPlantingSeason = "Spring"
	defaultHarvestSeason  = "Fall"

	// unknownName is the display-name fallback when either manager
	// name part is missing.
	unknownName = "Unknown"

	// unknownFarmName is the farm-name fallback on summaries.
	unknownFarmName = "Unknown Farm"

	// unknownPhone is stored on message rows saved without a phone number.
	unknownPhone = "unknown"
)

// Default truncation/limit values carried over from the upstream CRM.
const (
	// DefaultFarmerLimit caps ListFarmers when no limit is given.
	DefaultFarmerLimit = 100

	// DefaultConversationLimit caps ListRecentConversations when no
	// limit is given.
	DefaultConversationLimit = 10

	// approvalQueueLimit caps the approval queue result set.
	approvalQueueLimit = 100

	// lastMessageMaxLen is the rune cap on approval-entry message text
	// before the ellipsis marker is appended.
	lastMessageMaxLen = 100
)

func init() {
	// Records are JSON views for callers; decimals serialize as
	// numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Farmer is the normalized single-farmer record.
//
// TotalHectares and FarmerType are fabricated placeholders (see the
// constants above); the farmers table has no such columns.
type Farmer struct {
	ID              int64           `json:"id"`
	FarmName        string          `json:"farm_name"`
	ManagerName     string          `json:"manager_name"`
	ManagerLastName string          `json:"manager_last_name"`
	TotalHectares   decimal.Decimal `json:"total_hectares"`
	FarmerType      string          `json:"farmer_type"`
	City            string          `json:"city"`
	WAPhoneNumber   string          `json:"wa_phone_number"`
}

// FarmerSummary is the per-farmer row returned by ListFarmers,
// denormalized for selection lists.
type FarmerSummary struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	FarmName    string  `json:"farm_name"`
	Phone       string  `json:"phone"`
	Location    string  `json:"location"`
	FarmType    string  `json:"farm_type"`
	TotalSizeHa float64 `json:"total_size_ha"`
}

// FieldView is a field joined to its active crop planting. A field
// with no active planting carries nil crop attributes.
type FieldView struct {
	FieldID       int64           `json:"field_id"`
	FieldName     string          `json:"field_name"`
	FieldSize     decimal.Decimal `json:"field_size"`
	FieldLocation string          `json:"field_location"`
	SoilType      string          `json:"soil_type"`
	CurrentCrop   *string         `json:"current_crop"`
	Variety       *string         `json:"variety"`
	PlantingDate  *string         `json:"planting_date"`
	CropStatus    *string         `json:"crop_status"`
}

// Turn is one message reclassified into a conversation slot: exactly
// one of UserInput/AvaResponse is populated, chosen by the message's
// role tag.
type Turn struct {
	ID              int64     `json:"id"`
	UserInput       string    `json:"user_input"`
	AvaResponse     string    `json:"ava_response"`
	Timestamp       time.Time `json:"timestamp"`
	MessageType     string    `json:"message_type"`
	ConfidenceScore float64   `json:"confidence_score"`
	ApprovedStatus  bool      `json:"approved_status"`
}

// ConversationData carries one question/answer exchange to be saved.
// WAPhoneNumber is optional; message rows fall back to "unknown".
type ConversationData struct {
	Question      string `json:"question"`
	Answer        string `json:"answer"`
	WAPhoneNumber string `json:"wa_phone_number"`
}

// CropInfo is the crop-technology reference lookup result. The
// canonical stored name is duplicated into the localized-name field;
// seasons and category are fixed placeholder text.
type CropInfo struct {
	ID             int64  `json:"id"`
	CropName       string `json:"crop_name"`
	CroatianName   string `json:"croatian_name"`
	Category       string `json:"category"`
	PlantingSeason string `json:"planting_season"`
	HarvestSeason  string `json:"harvest_season"`
	Description    string `json:"description"`
}

// ApprovalEntry is one farmer's most recent user-role message joined
// to display fields, for the agronomic approval dashboard.
type ApprovalEntry struct {
	ID             int64     `json:"id"`
	FarmerID       int64     `json:"farmer_id"`
	FarmerName     string    `json:"farmer_name"`
	FarmerPhone    string    `json:"farmer_phone"`
	FarmerLocation string    `json:"farmer_location"`
	FarmerType     string    `json:"farmer_type"`
	FarmerSize     string    `json:"farmer_size"`
	LastMessage    string    `json:"last_message"`
	Timestamp      time.Time `json:"timestamp"`
}

// ApprovalQueue groups approval entries by status. The schema has no
// approval-state column, so Approved is always empty; it is kept
// non-nil so the JSON view stays a stable shape.
type ApprovalQueue struct {
	Unapproved []ApprovalEntry `json:"unapproved"`
	Approved   []ApprovalEntry `json:"approved"`
}

// ConversationDetail is a single message joined to its farmer's
// display fields, role-split like a Turn.
type ConversationDetail struct {
	ID             int64     `json:"id"`
	FarmerID       int64     `json:"farmer_id"`
	FarmerName     string    `json:"farmer_name"`
	UserInput      string    `json:"user_input"`
	AvaResponse    string    `json:"ava_response"`
	Timestamp      time.Time `json:"timestamp"`
	ApprovedStatus bool      `json:"approved_status"`
}

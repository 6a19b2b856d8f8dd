package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// StoredNotice is a notice row as persisted in Postgres: a handful of scalar
// columns for filtering plus the full extracted payload.
type StoredNotice struct {
	ID               uuid.UUID       `json:"id"`
	SourceEntry      string          `json:"source_entry"`
	NoticeID         *string         `json:"notice_id"`
	IssueDate        *string         `json:"issue_date"`
	NoticeType       *string         `json:"notice_type"`
	RegulatoryDomain *string         `json:"regulatory_domain"`
	BuyerName        *string         `json:"buyer_name"`
	BuyerCity        *string         `json:"buyer_city"`
	TotalAmount      *float64        `json:"total_amount"`
	Currency         *string         `json:"currency"`
	LotCount         int             `json:"lot_count"`
	Payload          json.RawMessage `json:"payload"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

package domain

import (
	"time"
)

type QuotationStatus string

const (
	QuotationStatusDraft    QuotationStatus = "Draft"
	QuotationStatusSent     QuotationStatus = "Sent"
	QuotationStatusApproved QuotationStatus = "Approved"
	QuotationStatusRejected QuotationStatus = "Rejected"
)

type Quotation struct {
	ID              int64           `json:"id"`
	QuotationNumber string          `json:"quotationNumber"`
	ProjectID       int64           `json:"projectId"`
	Status          QuotationStatus `json:"status"`
	ValidUntil      *time.Time      `json:"validUntil"`
	TotalAmount     float64         `json:"totalAmount"`
	Items           []QuotationItem `json:"items"`
	CreatedAt       time.Time       `json:"createdAt"`
	Version         int32           `json:"-"`
}

// QuotationItem snapshots the material's code, name, unit and rate at the time
// the quotation is created. Later edits or deletion of the material must not
// rewrite historical quotations, so nothing here references the catalog row.
type QuotationItem struct {
	ID           int64   `json:"id"`
	MaterialCode string  `json:"materialCode"`
	MaterialName string  `json:"materialName"`
	ConsumingUOM string  `json:"consumingUOM"`
	Quantity     float64 `json:"quantity"`
	UnitRate     float64 `json:"unitRate"`
	Amount       float64 `json:"amount"`
}

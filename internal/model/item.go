package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item represents a single inventory record. The *Name fields are resolved
// from the reference tables when the item is read through a joined query.
type Item struct {
	ID             int64            `json:"id"`
	Name           string           `json:"name"`
	Description    string           `json:"description"`
	StatusID       int64            `json:"status_id"`
	LocationID     int64            `json:"location_id"`
	AreaID         int64            `json:"area_id"`
	ManufacturerID int64            `json:"manufacturer_id"`
	ModelNo        string           `json:"model_no"`
	SerialNo       *string          `json:"serial_no,omitempty"`
	Qty            int              `json:"qty"`
	TotalCost      *decimal.Decimal `json:"total_cost,omitempty"`
	AssigneeID     *int64           `json:"assigned_to,omitempty"`
	ApproverID     int64            `json:"approved_by"`
	ApprovedDate   string           `json:"approved_date"`
	PurchaseDate   string           `json:"purchase_date"`
	InsertedBy     int64            `json:"inserted_by"`
	InsertedDate   time.Time        `json:"inserted_date"`
	ModifiedBy     *string          `json:"modified_by,omitempty"`
	ModifiedDate   *time.Time       `json:"modified_date,omitempty"`

	StatusName          string  `json:"status_name,omitempty"`
	LocationName        string  `json:"location_name,omitempty"`
	AreaName            string  `json:"area_name,omitempty"`
	ManufacturerName    string  `json:"manufacturer_name,omitempty"`
	AssigneeName        *string `json:"assignee_name,omitempty"`
	ApproverName        string  `json:"approver_name,omitempty"`
	InsertedByFirstName string  `json:"inserted_by_first_name,omitempty"`
	InsertedByLastName  string  `json:"inserted_by_last_name,omitempty"`
}

// Note is a free-text comment attached to an inventory item.
type Note struct {
	ID           int64     `json:"id"`
	ItemID       int64     `json:"item_id"`
	Comment      string    `json:"comment"`
	InsertedBy   string    `json:"inserted_by"`
	InsertedDate time.Time `json:"inserted_date"`
}

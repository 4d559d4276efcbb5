package model

// Kind identifies one of the reference-data tables used to classify
// inventory items.
type Kind string

const (
	KindLocation     Kind = "location"
	KindArea         Kind = "area"
	KindManufacturer Kind = "manufacturer"
	KindStatus       Kind = "status"
	KindAssignee     Kind = "assignee"
	KindApprover     Kind = "approver"
)

// Kinds lists every reference kind, in the order the management page
// presents them.
var Kinds = []Kind{
	KindLocation,
	KindArea,
	KindManufacturer,
	KindStatus,
	KindAssignee,
	KindApprover,
}

// Reference is a single lookup row of any kind.
type Reference struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Area is a reference row that belongs to exactly one location.
type Area struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	LocationID   int64  `json:"location_id"`
	LocationName string `json:"location_name,omitempty"`
}

// DisplayName renders an area the way pickers show it.
func (a Area) DisplayName() string {
	return a.LocationName + " - " + a.Name
}

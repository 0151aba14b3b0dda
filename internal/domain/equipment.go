package domain

import "time"

// Equipment is one row of the inventory. Field order follows the table's
// declared column order; JSON output and CSV export both rely on it.
type Equipment struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Type      string    `json:"type" db:"type"`
	IP        string    `json:"ip" db:"ip"`
	MAC       *string   `json:"mac" db:"mac"`
	VLAN      *string   `json:"vlan" db:"vlan"`
	Location  *string   `json:"location" db:"location"`
	DateAdded time.Time `json:"date_added" db:"date_added"`
}

// Input returns the mutable fields of the record.
func (e *Equipment) Input() *EquipmentInput {
	return &EquipmentInput{
		Name:     e.Name,
		Type:     e.Type,
		IP:       e.IP,
		MAC:      e.MAC,
		VLAN:     e.VLAN,
		Location: e.Location,
	}
}

// EquipmentInput is the request body for creating or replacing equipment.
// Update replaces all six fields; there is no partial patch.
type EquipmentInput struct {
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	IP       string  `json:"ip"`
	MAC      *string `json:"mac,omitempty"`
	VLAN     *string `json:"vlan,omitempty"`
	Location *string `json:"location,omitempty"`
}

// Normalize turns empty optional fields into nil so they are stored as NULL.
func (in *EquipmentInput) Normalize() {
	in.MAC = StringPtr(StringValue(in.MAC))
	in.VLAN = StringPtr(StringValue(in.VLAN))
	in.Location = StringPtr(StringValue(in.Location))
}

// EquipmentFilter restricts a listing by exact match. Nil fields are not applied.
type EquipmentFilter struct {
	Location *string
	VLAN     *string
}

// CreateEquipmentResponse is returned when equipment is created.
type CreateEquipmentResponse struct {
	ID int64 `json:"id"`
}

// StringPtr returns a pointer to s, or nil when s is empty.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// StringValue dereferences p, returning "" for nil.
func StringValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

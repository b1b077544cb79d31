package record

// Unit is an organizational branch that owns records
type Unit struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

// UnitNames maps unit IDs to display names
type UnitNames map[ID]string

// NewUnitNames builds a lookup from a unit list
func NewUnitNames(units []Unit) UnitNames {
	names := make(UnitNames, len(units))
	for _, u := range units {
		names[u.ID] = u.Name
	}
	return names
}

// Name returns the unit's display name, or an empty string when unknown
func (n UnitNames) Name(id ID) string {
	return n[id]
}

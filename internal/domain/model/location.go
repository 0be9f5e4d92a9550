package model

// Location is a pickup/delivery point the account may choose.
type Location struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// DefaultLocationID is preselected when the session has no choice yet.
const DefaultLocationID = "1"

// Locations lists the fixed pickup/delivery points.
var Locations = []Location{
	{
		ID:      "1",
		Name:    "Leaside Location (Pick-up and Delivery)",
		Address: "40 Laird Drive, Toronto, ON, M4G 3T2",
	},
	{
		ID:      "2",
		Name:    "Downtown Location (Pick-up Only)",
		Address: "14 Isabella Street, Toronto, ON, M4Y 1N1",
	},
}

// LocationByID returns the location with the given identifier.
func LocationByID(id string) (Location, bool) {
	for _, l := range Locations {
		if l.ID == id {
			return l, true
		}
	}
	return Location{}, false
}

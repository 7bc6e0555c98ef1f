package models

// TableAvailability represents a dining table and whether it can be reserved.
type TableAvailability struct {
	ID          string `json:"id"`
	TableNumber int    `json:"tableNumber"`
	Capacity    int    `json:"capacity"`
	IsAvailable bool   `json:"isAvailable"`
}

// AvailabilityWord returns the wording used in notifications for an availability value.
func AvailabilityWord(available bool) string {
	if available {
		return "available"
	}
	return "unavailable"
}

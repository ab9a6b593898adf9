package models

// Days of week accepted by the availability editor, as the backend names them.
var WeekDays = []string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

// DayAvailability is a lawyer's ordered list of bookable time ranges for one
// day of the week. Each slot is a "HH:MM-HH:MM" string; zero-padded 24h times,
// so string comparison of the halves equals chronological comparison.
type DayAvailability struct {
	Day       string   `json:"day"`
	TimeSlots []string `json:"timeSlots"`
}

// WeeklyAvailability is the full per-day slot set for a lawyer.
type WeeklyAvailability struct {
	LawyerID string            `json:"lawyerId"`
	Days     []DayAvailability `json:"days"`
}

// SlotCheckResult is the backend's answer for one (lawyer, date) slot check.
type SlotCheckResult struct {
	Date           string   `json:"date"`
	AvailableSlots []string `json:"availableSlots"`
}

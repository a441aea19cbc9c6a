package get_month_availability

// Request selects the month to aggregate
type Request struct {
	Year  int
	Month int // 1..12
}

// DayEntry is the per-day occupancy summary shown on the booking calendar
type DayEntry struct {
	Status   string `json:"status"` // "full", "partial" or "none"
	Occupied int    `json:"ocupados"`
	Free     int    `json:"livres"`
}

// Response maps each day of the month ("2006-01-02") to its summary
type Response struct {
	Year  int                 `json:"ano"`
	Month int                 `json:"mes"`
	Days  map[string]DayEntry `json:"dias"`
}

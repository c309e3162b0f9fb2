package api

// DefaultAvailableDays is the look-ahead used by GetAvailableDates when days is not given
const DefaultAvailableDays = 30

type availableSlotsParams struct {
	Date string `url:"date,omitempty"`
}

type slotListParams struct {
	OnlyActive bool `url:"only_active,omitempty"`
}

type availableDatesParams struct {
	StartDate string `url:"start_date,omitempty"`
	Days      int    `url:"days"`
}

// GetAvailableTimeslots lists the equipment's free slots, excluding ones booked on date (YYYY-MM-DD) when given
func GetAvailableTimeslots(equipID int64, date string) Request {
	return endpoint(EndpointTimeslotAvailable).Request(equipID).WithQuery(availableSlotsParams{Date: date})
}

// GetTimeslots lists all of the equipment's slots
func GetTimeslots(equipID int64, onlyActive bool) Request {
	return endpoint(EndpointTimeslotList).Request(equipID).WithQuery(slotListParams{OnlyActive: onlyActive})
}

// GetAvailableDates lists dates with at least one free slot, starting at startDate (server default: today)
func GetAvailableDates(equipID int64, startDate string, days int) Request {
	if days <= 0 {
		days = DefaultAvailableDays
	}
	return endpoint(EndpointTimeslotAvailableDates).Request(equipID).WithQuery(availableDatesParams{
		StartDate: startDate,
		Days:      days,
	})
}

// CreateTimeslot adds a slot (admin)
func CreateTimeslot(input TimeSlotInput) Request {
	return endpoint(EndpointTimeslotCreate).Request().WithBody(input)
}

// UpdateTimeslot edits a slot (admin)
func UpdateTimeslot(slotID int64, input TimeSlotInput) Request {
	return endpoint(EndpointTimeslotUpdate).Request(slotID).WithBody(input)
}

// DeleteTimeslot removes a slot (admin)
func DeleteTimeslot(slotID int64) Request {
	return endpoint(EndpointTimeslotDelete).Request(slotID)
}

package api

// TimeRange selects the window of the equipment usage ranking
type TimeRange string

const (
	TimeRangeWeek  TimeRange = "week"
	TimeRangeMonth TimeRange = "month"
)

// DefaultTopLimit is the ranking size used when the caller passes no limit
const DefaultTopLimit = 10

// EquipmentListParams filters GET /equipments/
type EquipmentListParams struct {
	LabID    int64  `url:"lab_id,omitempty"`
	Keyword  string `url:"keyword,omitempty"`
	Category int    `url:"category,omitempty"`
	Status   *int   `url:"status,omitempty"`
	Page     int    `url:"page,omitempty"`
	PageSize int    `url:"page_size,omitempty"`
}

type topEquipmentParams struct {
	TimeRange TimeRange `url:"time_range"`
	Limit     int       `url:"limit"`
}

// ListEquipments lists equipment, optionally filtered and paginated
func ListEquipments(params EquipmentListParams) Request {
	return endpoint(EndpointEquipmentList).Request().WithQuery(params)
}

// GetEquipment fetches one piece of equipment
func GetEquipment(id int64) Request {
	return endpoint(EndpointEquipmentGet).Request(id)
}

// CreateEquipment creates equipment (admin)
func CreateEquipment(input EquipmentInput) Request {
	return endpoint(EndpointEquipmentCreate).Request().WithBody(input)
}

// UpdateEquipment updates equipment (admin)
func UpdateEquipment(id int64, input EquipmentInput) Request {
	return endpoint(EndpointEquipmentUpdate).Request(id).WithBody(input)
}

// DeleteEquipment deletes equipment (admin)
func DeleteEquipment(id int64) Request {
	return endpoint(EndpointEquipmentDelete).Request(id)
}

// GetTopEquipments ranks equipment by reservation count over timeRange.
// Both query keys are always sent; zero values fall back to week and DefaultTopLimit.
func GetTopEquipments(timeRange TimeRange, limit int) Request {
	if timeRange == "" {
		timeRange = TimeRangeWeek
	}
	if limit <= 0 {
		limit = DefaultTopLimit
	}
	return endpoint(EndpointEquipmentTop).Request().WithQuery(topEquipmentParams{
		TimeRange: timeRange,
		Limit:     limit,
	})
}

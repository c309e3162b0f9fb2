package api

// ReservationListParams filters GET /reservations/
type ReservationListParams struct {
	Status   *int  `url:"status,omitempty"`
	EquipID  int64 `url:"equip_id,omitempty"`
	Page     int   `url:"page,omitempty"`
	PageSize int   `url:"page_size,omitempty"`
}

// CreateReservation submits a reservation request
func CreateReservation(input ReservationInput) Request {
	return endpoint(EndpointReservationCreate).Request().WithBody(input)
}

// ListReservations lists reservations visible to the caller
func ListReservations(params ReservationListParams) Request {
	return endpoint(EndpointReservationList).Request().WithQuery(params)
}

// GetReservation fetches one reservation
func GetReservation(id int64) Request {
	return endpoint(EndpointReservationGet).Request(id)
}

// CancelReservation cancels the caller's reservation
func CancelReservation(id int64) Request {
	return endpoint(EndpointReservationCancel).Request(id)
}

// ApproveReservation approves a pending reservation (admin)
func ApproveReservation(id int64, input ApprovalInput) Request {
	return endpoint(EndpointReservationApprove).Request(id).WithBody(input)
}

// RejectReservation rejects a pending reservation with a reason (admin)
func RejectReservation(id int64, input ApprovalInput) Request {
	return endpoint(EndpointReservationReject).Request(id).WithBody(input)
}

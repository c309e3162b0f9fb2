package client

import (
	"context"

	"github.com/labshare-dev/labshare/internal/api"
)

// Login authenticates the user and returns the token and profile
func (c *Client) Login(ctx context.Context, input api.LoginInput) (*api.LoginResult, error) {
	var result api.LoginResult
	if err := c.Do(ctx, api.Login(input), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Health checks that the backend is up
func (c *Client) Health(ctx context.Context) (*api.HealthStatus, error) {
	var health api.HealthStatus
	if err := c.Do(ctx, api.Health(), &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// ListLaboratories returns all laboratories
func (c *Client) ListLaboratories(ctx context.Context) ([]api.Laboratory, error) {
	var labs []api.Laboratory
	if err := c.Do(ctx, api.ListLaboratories(), &labs); err != nil {
		return nil, err
	}
	return labs, nil
}

// CreateLaboratory creates a laboratory
func (c *Client) CreateLaboratory(ctx context.Context, input api.LaboratoryInput) (*api.Laboratory, error) {
	var lab api.Laboratory
	if err := c.Do(ctx, api.CreateLaboratory(input), &lab); err != nil {
		return nil, err
	}
	return &lab, nil
}

// UpdateLaboratory updates a laboratory
func (c *Client) UpdateLaboratory(ctx context.Context, id int64, input api.LaboratoryInput) (*api.Laboratory, error) {
	var lab api.Laboratory
	if err := c.Do(ctx, api.UpdateLaboratory(id, input), &lab); err != nil {
		return nil, err
	}
	return &lab, nil
}

// DeleteLaboratory deletes a laboratory
func (c *Client) DeleteLaboratory(ctx context.Context, id int64) error {
	return c.Do(ctx, api.DeleteLaboratory(id), nil)
}

// ListEquipments returns equipment matching params
func (c *Client) ListEquipments(ctx context.Context, params api.EquipmentListParams) ([]api.Equipment, error) {
	var equipments []api.Equipment
	if err := c.Do(ctx, api.ListEquipments(params), &equipments); err != nil {
		return nil, err
	}
	return equipments, nil
}

// GetEquipment returns one piece of equipment
func (c *Client) GetEquipment(ctx context.Context, id int64) (*api.Equipment, error) {
	var equipment api.Equipment
	if err := c.Do(ctx, api.GetEquipment(id), &equipment); err != nil {
		return nil, err
	}
	return &equipment, nil
}

// CreateEquipment creates equipment
func (c *Client) CreateEquipment(ctx context.Context, input api.EquipmentInput) (*api.Equipment, error) {
	var equipment api.Equipment
	if err := c.Do(ctx, api.CreateEquipment(input), &equipment); err != nil {
		return nil, err
	}
	return &equipment, nil
}

// UpdateEquipment updates equipment
func (c *Client) UpdateEquipment(ctx context.Context, id int64, input api.EquipmentInput) (*api.Equipment, error) {
	var equipment api.Equipment
	if err := c.Do(ctx, api.UpdateEquipment(id, input), &equipment); err != nil {
		return nil, err
	}
	return &equipment, nil
}

// DeleteEquipment deletes equipment
func (c *Client) DeleteEquipment(ctx context.Context, id int64) error {
	return c.Do(ctx, api.DeleteEquipment(id), nil)
}

// GetTopEquipments returns the usage ranking
func (c *Client) GetTopEquipments(ctx context.Context, timeRange api.TimeRange, limit int) ([]api.TopEquipment, error) {
	var top []api.TopEquipment
	if err := c.Do(ctx, api.GetTopEquipments(timeRange, limit), &top); err != nil {
		return nil, err
	}
	return top, nil
}

// CreateReservation submits a reservation
func (c *Client) CreateReservation(ctx context.Context, input api.ReservationInput) (*api.Reservation, error) {
	var reservation api.Reservation
	if err := c.Do(ctx, api.CreateReservation(input), &reservation); err != nil {
		return nil, err
	}
	return &reservation, nil
}

// ListReservations returns reservations matching params
func (c *Client) ListReservations(ctx context.Context, params api.ReservationListParams) ([]api.Reservation, error) {
	var reservations []api.Reservation
	if err := c.Do(ctx, api.ListReservations(params), &reservations); err != nil {
		return nil, err
	}
	return reservations, nil
}

// GetReservation returns one reservation
func (c *Client) GetReservation(ctx context.Context, id int64) (*api.Reservation, error) {
	var reservation api.Reservation
	if err := c.Do(ctx, api.GetReservation(id), &reservation); err != nil {
		return nil, err
	}
	return &reservation, nil
}

// CancelReservation cancels a reservation
func (c *Client) CancelReservation(ctx context.Context, id int64) (*api.Reservation, error) {
	var reservation api.Reservation
	if err := c.Do(ctx, api.CancelReservation(id), &reservation); err != nil {
		return nil, err
	}
	return &reservation, nil
}

// ApproveReservation approves a reservation
func (c *Client) ApproveReservation(ctx context.Context, id int64, input api.ApprovalInput) (*api.Reservation, error) {
	var reservation api.Reservation
	if err := c.Do(ctx, api.ApproveReservation(id, input), &reservation); err != nil {
		return nil, err
	}
	return &reservation, nil
}

// RejectReservation rejects a reservation
func (c *Client) RejectReservation(ctx context.Context, id int64, input api.ApprovalInput) (*api.Reservation, error) {
	var reservation api.Reservation
	if err := c.Do(ctx, api.RejectReservation(id, input), &reservation); err != nil {
		return nil, err
	}
	return &reservation, nil
}

// GetAvailableTimeslots returns free slots, optionally for one date
func (c *Client) GetAvailableTimeslots(ctx context.Context, equipID int64, date string) ([]api.TimeSlot, error) {
	var slots []api.TimeSlot
	if err := c.Do(ctx, api.GetAvailableTimeslots(equipID, date), &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// GetTimeslots returns all slots of a piece of equipment
func (c *Client) GetTimeslots(ctx context.Context, equipID int64, onlyActive bool) ([]api.TimeSlot, error) {
	var slots []api.TimeSlot
	if err := c.Do(ctx, api.GetTimeslots(equipID, onlyActive), &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// GetAvailableDates returns YYYY-MM-DD dates that still have free slots
func (c *Client) GetAvailableDates(ctx context.Context, equipID int64, startDate string, days int) ([]string, error) {
	var dates []string
	if err := c.Do(ctx, api.GetAvailableDates(equipID, startDate, days), &dates); err != nil {
		return nil, err
	}
	return dates, nil
}

// CreateTimeslot adds a slot
func (c *Client) CreateTimeslot(ctx context.Context, input api.TimeSlotInput) (*api.TimeSlot, error) {
	var slot api.TimeSlot
	if err := c.Do(ctx, api.CreateTimeslot(input), &slot); err != nil {
		return nil, err
	}
	return &slot, nil
}

// UpdateTimeslot edits a slot
func (c *Client) UpdateTimeslot(ctx context.Context, slotID int64, input api.TimeSlotInput) (*api.TimeSlot, error) {
	var slot api.TimeSlot
	if err := c.Do(ctx, api.UpdateTimeslot(slotID, input), &slot); err != nil {
		return nil, err
	}
	return &slot, nil
}

// DeleteTimeslot removes a slot
func (c *Client) DeleteTimeslot(ctx context.Context, slotID int64) error {
	return c.Do(ctx, api.DeleteTimeslot(slotID), nil)
}

// ListAuditLogs returns a page of audit logs
func (c *Client) ListAuditLogs(ctx context.Context, params api.AuditLogListParams) (*api.AuditLogPage, error) {
	var page api.AuditLogPage
	if err := c.Do(ctx, api.ListAuditLogs(params), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetAuditLog returns one audit log entry
func (c *Client) GetAuditLog(ctx context.Context, id int64) (*api.AuditLog, error) {
	var entry api.AuditLog
	if err := c.Do(ctx, api.GetAuditLog(id), &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// GetActionTypes returns the server's action type codes
func (c *Client) GetActionTypes(ctx context.Context) ([]string, error) {
	var codes []string
	if err := c.Do(ctx, api.GetActionTypes(), &codes); err != nil {
		return nil, err
	}
	return codes, nil
}

// GetAuditLogStatistics returns aggregate audit counts
func (c *Client) GetAuditLogStatistics(ctx context.Context) (*api.AuditLogStatistics, error) {
	var stats api.AuditLogStatistics
	if err := c.Do(ctx, api.GetAuditLogStatistics(), &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// GetStatistics returns platform-wide statistics
func (c *Client) GetStatistics(ctx context.Context) (*api.Statistics, error) {
	var stats api.Statistics
	if err := c.Do(ctx, api.GetStatistics(), &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

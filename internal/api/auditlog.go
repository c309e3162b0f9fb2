package api

import "time"

// AuditLogListParams filters GET /auditlogs/; times are sent as RFC3339
type AuditLogListParams struct {
	OperatorID string     `url:"operator_id,omitempty"`
	ActionType string     `url:"action_type,omitempty"`
	StartTime  *time.Time `url:"start_time,omitempty"`
	EndTime    *time.Time `url:"end_time,omitempty"`
	Page       int        `url:"page,omitempty"`
	PageSize   int        `url:"page_size,omitempty"`
}

// ListAuditLogs lists audit logs, newest first (admin)
func ListAuditLogs(params AuditLogListParams) Request {
	return endpoint(EndpointAuditLogList).Request().WithQuery(params)
}

// GetAuditLog fetches one audit log entry (admin)
func GetAuditLog(id int64) Request {
	return endpoint(EndpointAuditLogGet).Request(id)
}

// GetActionTypes asks the server for its action type codes (admin).
// Display code should prefer the local ActionTypes table.
func GetActionTypes() Request {
	return endpoint(EndpointAuditLogActionTypes).Request()
}

// GetAuditLogStatistics fetches aggregate audit log counts (admin)
func GetAuditLogStatistics() Request {
	return endpoint(EndpointAuditLogStatistics).Request()
}

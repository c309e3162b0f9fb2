package api

import "net/http"

// EndpointID uniquely identifies a backend operation
type EndpointID string

const (
	EndpointHealth EndpointID = "health"
	EndpointLogin  EndpointID = "auth.login"

	EndpointLaboratoryList   EndpointID = "laboratory.list"
	EndpointLaboratoryCreate EndpointID = "laboratory.create"
	EndpointLaboratoryUpdate EndpointID = "laboratory.update"
	EndpointLaboratoryDelete EndpointID = "laboratory.delete"

	EndpointEquipmentList   EndpointID = "equipment.list"
	EndpointEquipmentGet    EndpointID = "equipment.get"
	EndpointEquipmentCreate EndpointID = "equipment.create"
	EndpointEquipmentUpdate EndpointID = "equipment.update"
	EndpointEquipmentDelete EndpointID = "equipment.delete"
	EndpointEquipmentTop    EndpointID = "equipment.top"

	EndpointReservationCreate  EndpointID = "reservation.create"
	EndpointReservationList    EndpointID = "reservation.list"
	EndpointReservationGet     EndpointID = "reservation.get"
	EndpointReservationCancel  EndpointID = "reservation.cancel"
	EndpointReservationApprove EndpointID = "reservation.approve"
	EndpointReservationReject  EndpointID = "reservation.reject"

	EndpointTimeslotAvailable      EndpointID = "timeslot.available"
	EndpointTimeslotList           EndpointID = "timeslot.list"
	EndpointTimeslotAvailableDates EndpointID = "timeslot.available_dates"
	EndpointTimeslotCreate         EndpointID = "timeslot.create"
	EndpointTimeslotUpdate         EndpointID = "timeslot.update"
	EndpointTimeslotDelete         EndpointID = "timeslot.delete"

	EndpointAuditLogList        EndpointID = "auditlog.list"
	EndpointAuditLogGet         EndpointID = "auditlog.get"
	EndpointAuditLogActionTypes EndpointID = "auditlog.action_types"
	EndpointAuditLogStatistics  EndpointID = "auditlog.statistics"

	EndpointStatistics EndpointID = "statistics"
)

// Endpoint is one row of the declarative endpoint table.
// Auth and Admin record what the backend enforces; the client does not check them.
type Endpoint struct {
	ID     EndpointID
	Method string
	Path   string
	Auth   bool
	Admin  bool
}

// Request builds a descriptor for this endpoint, filling path placeholders with ids in order
func (e Endpoint) Request(ids ...int64) Request {
	return Request{
		Endpoint: e.ID,
		Method:   e.Method,
		Path:     fillPath(e.Path, ids),
	}
}

// Endpoints is the single source of truth for every backend operation the client knows.
// Trailing slashes on list endpoints are significant: the backend redirects without them.
var Endpoints = map[EndpointID]Endpoint{
	EndpointHealth: {Method: http.MethodGet, Path: "/health"},
	EndpointLogin:  {Method: http.MethodPost, Path: "/auth/login"},

	EndpointLaboratoryList:   {Method: http.MethodGet, Path: "/laboratories/"},
	EndpointLaboratoryCreate: {Method: http.MethodPost, Path: "/laboratories/", Auth: true, Admin: true},
	EndpointLaboratoryUpdate: {Method: http.MethodPut, Path: "/laboratories/{id}", Auth: true, Admin: true},
	EndpointLaboratoryDelete: {Method: http.MethodDelete, Path: "/laboratories/{id}", Auth: true, Admin: true},

	EndpointEquipmentList:   {Method: http.MethodGet, Path: "/equipments/"},
	EndpointEquipmentGet:    {Method: http.MethodGet, Path: "/equipments/{id}"},
	EndpointEquipmentCreate: {Method: http.MethodPost, Path: "/admin/equipments", Auth: true, Admin: true},
	EndpointEquipmentUpdate: {Method: http.MethodPut, Path: "/admin/equipments/{id}", Auth: true, Admin: true},
	EndpointEquipmentDelete: {Method: http.MethodDelete, Path: "/admin/equipments/{id}", Auth: true, Admin: true},
	EndpointEquipmentTop:    {Method: http.MethodGet, Path: "/equipments/top"},

	EndpointReservationCreate:  {Method: http.MethodPost, Path: "/reservations/", Auth: true},
	EndpointReservationList:    {Method: http.MethodGet, Path: "/reservations/", Auth: true},
	EndpointReservationGet:     {Method: http.MethodGet, Path: "/reservations/{id}", Auth: true},
	EndpointReservationCancel:  {Method: http.MethodPut, Path: "/reservations/{id}/cancel", Auth: true},
	EndpointReservationApprove: {Method: http.MethodPut, Path: "/admin/reservations/{id}/approve", Auth: true, Admin: true},
	EndpointReservationReject:  {Method: http.MethodPut, Path: "/admin/reservations/{id}/reject", Auth: true, Admin: true},

	EndpointTimeslotAvailable:      {Method: http.MethodGet, Path: "/timeslots/equipment/{id}/available", Auth: true},
	EndpointTimeslotList:           {Method: http.MethodGet, Path: "/timeslots/equipment/{id}", Auth: true},
	EndpointTimeslotAvailableDates: {Method: http.MethodGet, Path: "/timeslots/equipment/{id}/available-dates", Auth: true},
	EndpointTimeslotCreate:         {Method: http.MethodPost, Path: "/admin/timeslots", Auth: true, Admin: true},
	EndpointTimeslotUpdate:         {Method: http.MethodPut, Path: "/admin/timeslots/{id}", Auth: true, Admin: true},
	EndpointTimeslotDelete:         {Method: http.MethodDelete, Path: "/admin/timeslots/{id}", Auth: true, Admin: true},

	EndpointAuditLogList:        {Method: http.MethodGet, Path: "/auditlogs/", Auth: true, Admin: true},
	EndpointAuditLogGet:         {Method: http.MethodGet, Path: "/auditlogs/{id}", Auth: true, Admin: true},
	EndpointAuditLogActionTypes: {Method: http.MethodGet, Path: "/auditlogs/action-types", Auth: true, Admin: true},
	EndpointAuditLogStatistics:  {Method: http.MethodGet, Path: "/auditlogs/statistics", Auth: true, Admin: true},

	EndpointStatistics: {Method: http.MethodGet, Path: "/admin/statistics", Auth: true, Admin: true},
}

func init() {
	for id, e := range Endpoints {
		e.ID = id
		Endpoints[id] = e
	}
}

// endpoint looks up a table entry; a missing entry is a bug in this package
func endpoint(id EndpointID) Endpoint {
	e, ok := Endpoints[id]
	if !ok {
		panic("api: unknown endpoint " + string(id))
	}
	return e
}

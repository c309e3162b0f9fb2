package api

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTopEquipments_MonthFive(t *testing.T) {
	req := GetTopEquipments(TimeRangeMonth, 5)

	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/equipments/top", req.Path)
	assert.Equal(t, "month", req.Query.Get("time_range"))
	assert.Equal(t, "5", req.Query.Get("limit"))
	assert.Len(t, req.Query, 2)
}

func TestGetTopEquipments_Defaults(t *testing.T) {
	req := GetTopEquipments("", 0)

	assert.Equal(t, "week", req.Query.Get("time_range"))
	assert.Equal(t, "10", req.Query.Get("limit"))
}

func TestGetAvailableDates_NoStartDate(t *testing.T) {
	req := GetAvailableDates(42, "", 0)

	assert.Equal(t, "/timeslots/equipment/42/available-dates", req.Path)
	assert.Equal(t, "30", req.Query.Get("days"))
	_, hasStart := req.Query["start_date"]
	assert.False(t, hasStart, "start_date must not be sent when not given")
	assert.Len(t, req.Query, 1)
}

func TestGetAvailableDates_WithStartDate(t *testing.T) {
	req := GetAvailableDates(7, "2024-01-15", 14)

	assert.Equal(t, "2024-01-15", req.Query.Get("start_date"))
	assert.Equal(t, "14", req.Query.Get("days"))
}

func TestGetAvailableTimeslots_DateOptional(t *testing.T) {
	withoutDate := GetAvailableTimeslots(3, "")
	assert.Equal(t, "/timeslots/equipment/3/available", withoutDate.Path)
	assert.Empty(t, withoutDate.Query)

	withDate := GetAvailableTimeslots(3, "2024-02-01")
	assert.Equal(t, "2024-02-01", withDate.Query.Get("date"))
}

func TestGetTimeslots_OnlyActive(t *testing.T) {
	assert.Empty(t, GetTimeslots(9, false).Query)
	assert.Equal(t, "true", GetTimeslots(9, true).Query.Get("only_active"))
	assert.Equal(t, "/timeslots/equipment/9", GetTimeslots(9, true).Path)
}

func TestListEquipments_PassesFilters(t *testing.T) {
	status := 0
	req := ListEquipments(EquipmentListParams{LabID: 2, Keyword: "显微镜", Status: &status, Page: 1, PageSize: 20})

	assert.Equal(t, "/equipments/", req.Path, "trailing slash must be preserved")
	assert.Equal(t, "2", req.Query.Get("lab_id"))
	assert.Equal(t, "显微镜", req.Query.Get("keyword"))
	assert.Equal(t, "0", req.Query.Get("status"))
	assert.Equal(t, "20", req.Query.Get("page_size"))
	_, hasCategory := req.Query["category"]
	assert.False(t, hasCategory)
}

func TestListEquipments_NoFilters(t *testing.T) {
	req := ListEquipments(EquipmentListParams{})
	assert.Empty(t, req.Query)
	assert.Equal(t, "http://api.local/api/v1/equipments/", req.URL("http://api.local/api/v1/"))
}

func TestListAuditLogs_TimeRange(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	req := ListAuditLogs(AuditLogListParams{ActionType: "LOGIN", StartTime: &start})

	assert.Equal(t, "/auditlogs/", req.Path)
	assert.Equal(t, "LOGIN", req.Query.Get("action_type"))
	assert.Equal(t, "2024-01-01T00:00:00Z", req.Query.Get("start_time"))
	_, hasEnd := req.Query["end_time"]
	assert.False(t, hasEnd)
}

func TestReservationActions(t *testing.T) {
	cancel := CancelReservation(11)
	assert.Equal(t, http.MethodPut, cancel.Method)
	assert.Equal(t, "/reservations/11/cancel", cancel.Path)
	assert.Nil(t, cancel.Body)

	reject := RejectReservation(11, ApprovalInput{Reason: "设备维护"})
	assert.Equal(t, http.MethodPut, reject.Method)
	assert.Equal(t, "/admin/reservations/11/reject", reject.Path)
	assert.Equal(t, ApprovalInput{Reason: "设备维护"}, reject.Body)

	approve := ApproveReservation(11, ApprovalInput{})
	assert.Equal(t, "/admin/reservations/11/approve", approve.Path)
}

func TestEquipmentAdminPaths(t *testing.T) {
	name := EquipmentInput{Name: "电子显微镜"}

	create := CreateEquipment(name)
	assert.Equal(t, http.MethodPost, create.Method)
	assert.Equal(t, "/admin/equipments", create.Path)

	update := UpdateEquipment(5, name)
	assert.Equal(t, http.MethodPut, update.Method)
	assert.Equal(t, "/admin/equipments/5", update.Path)

	del := DeleteEquipment(5)
	assert.Equal(t, http.MethodDelete, del.Method)
	assert.Equal(t, "/admin/equipments/5", del.Path)
}

func TestEndpointTable_Complete(t *testing.T) {
	for id, e := range Endpoints {
		require.Equal(t, id, e.ID, "init must stamp the ID")
		assert.NotEmpty(t, e.Method, id)
		assert.True(t, strings.HasPrefix(e.Path, "/"), id)
		if e.Admin {
			assert.True(t, e.Auth, "admin endpoint %s must also require auth", id)
		}
	}

	for _, id := range []EndpointID{EndpointEquipmentList, EndpointReservationList, EndpointReservationCreate, EndpointAuditLogList, EndpointLaboratoryList} {
		assert.True(t, strings.HasSuffix(Endpoints[id].Path, "/"), "%s keeps its trailing slash", id)
	}
}

func TestFillPath(t *testing.T) {
	assert.Equal(t, "/a/1/b/2", fillPath("/a/{id}/b/{other}", []int64{1, 2}))
	assert.Equal(t, "/a/1/b/{other}", fillPath("/a/{id}/b/{other}", []int64{1}))
	assert.Equal(t, "/plain", fillPath("/plain", []int64{3}))
}

func TestActionTypes_Lookup(t *testing.T) {
	at, ok := ActionTypeByConstant("APPROVE_RESERVATION")
	require.True(t, ok)
	assert.Equal(t, "审批通过", at.Label)

	byCode, ok := ActionTypeByCode(at.Code)
	require.True(t, ok)
	assert.Equal(t, at, byCode)

	assert.Equal(t, "SOMETHING_NEW", ActionLabel("SOMETHING_NEW"))

	seen := map[int]bool{}
	for _, row := range ActionTypes {
		assert.False(t, seen[row.Code], "duplicate code %d", row.Code)
		seen[row.Code] = true
	}
}

func TestParseTimestamp(t *testing.T) {
	naive, err := ParseTimestamp("2024-01-01T08:30:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 8, 30, 0, 0, time.UTC), naive)

	zoned, err := ParseTimestamp("2024-01-01T08:30:00+08:00")
	require.NoError(t, err)
	assert.True(t, naive.Add(-8*time.Hour).Equal(zoned))

	_, err = ParseTimestamp("yesterday")
	assert.Error(t, err)
}

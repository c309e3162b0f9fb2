package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labshare-dev/labshare/internal/api"
)

// envelopeServer answers every request with handler's data wrapped in {code,msg,data}
func envelopeServer(t *testing.T, handler func(r *http.Request) (int, any)) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status, data := handler(r)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		msg := "success"
		if status >= 400 {
			msg = "failure"
			if s, ok := data.(string); ok {
				msg = s
				data = nil
			}
		}
		json.NewEncoder(w).Encode(map[string]any{"code": status, "msg": msg, "data": data})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestDo_TopEquipmentsQueryAndDecode(t *testing.T) {
	srv := envelopeServer(t, func(r *http.Request) (int, any) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/equipments/top", r.URL.Path)
		assert.Equal(t, "month", r.URL.Query().Get("time_range"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		return http.StatusOK, []map[string]any{{"id": 1, "name": "电子显微镜", "count": 12}}
	})

	c := New(srv.URL + "/api/v1/")
	top, err := c.GetTopEquipments(context.Background(), api.TimeRangeMonth, 5)

	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "电子显微镜", top[0].Name)
	assert.Equal(t, 12, top[0].Count)
}

func TestDo_SendsBearerAndBody(t *testing.T) {
	srv := envelopeServer(t, func(r *http.Request) (int, any) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "/admin/reservations/8/reject", r.URL.Path)

		var body api.ApprovalInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "时间冲突", body.Reason)

		return http.StatusOK, map[string]any{"id": 8, "equip_id": 2, "status": 2, "reject_reason": body.Reason}
	})

	c := New(srv.URL, WithTokenSource(StaticToken("tok-123")))
	res, err := c.RejectReservation(context.Background(), 8, api.ApprovalInput{Reason: "时间冲突"})

	require.NoError(t, err)
	assert.Equal(t, api.ReservationRejected, res.Status)
	assert.Equal(t, "时间冲突", res.RejectReason)
}

func TestDo_AnonymousWhenNoToken(t *testing.T) {
	srv := envelopeServer(t, func(r *http.Request) (int, any) {
		assert.Empty(t, r.Header.Get("Authorization"))
		return http.StatusOK, []map[string]any{{"id": 1, "name": "计算机实验室"}}
	})

	c := New(srv.URL, WithTokenSource(StaticToken("")))
	labs, err := c.ListLaboratories(context.Background())

	require.NoError(t, err)
	assert.Len(t, labs, 1)
}

func TestDo_TokenSourceFailurePropagates(t *testing.T) {
	boom := errors.New("keyring locked")
	c := New("http://127.0.0.1:1", WithTokenSource(TokenFunc(func() (string, error) { return "", boom })))

	_, err := c.ListLaboratories(context.Background())

	assert.ErrorIs(t, err, boom)
}

func TestDo_HTTPErrorBecomesAPIError(t *testing.T) {
	srv := envelopeServer(t, func(r *http.Request) (int, any) {
		return http.StatusForbidden, "需要管理员权限"
	})

	c := New(srv.URL)
	_, err := c.GetStatistics(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
	assert.Equal(t, "需要管理员权限", apiErr.Message)
	assert.Equal(t, api.EndpointStatistics, apiErr.Endpoint)
	assert.True(t, IsStatus(err, http.StatusForbidden))
}

func TestDo_EnvelopeErrorCodeWith200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code": 422, "msg": "无效的状态流转: 3 -> 1", "data": null}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.ApproveReservation(context.Background(), 1, api.ApprovalInput{})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 422, apiErr.Code)
	assert.Contains(t, apiErr.Error(), "无效的状态流转")
}

func TestDo_PlainErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": "invalid credentials"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Login(context.Background(), api.LoginInput{Username: "u", Password: "p", UserType: api.UserTypeStudent})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "invalid credentials", apiErr.Message)
}

func TestDo_HealthIsNotEnveloped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		w.Write([]byte(`{"status": "ok", "version": "1.0.0"}`))
	}))
	defer srv.Close()

	health, err := New(srv.URL).Health(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "1.0.0", health.Version)
}

func TestDo_NaiveTimestampsDecode(t *testing.T) {
	srv := envelopeServer(t, func(r *http.Request) (int, any) {
		return http.StatusOK, map[string]any{
			"items": []map[string]any{{"id": 1, "operator_id": "admin", "action_type": "LOGIN", "action_time": "2024-01-01T00:00:00"}},
			"total": 1,
		}
	})

	page, err := New(srv.URL).ListAuditLogs(context.Background(), api.AuditLogListParams{})

	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.NotNil(t, page.Items[0].ActionTime)
	assert.Equal(t, 2024, page.Items[0].ActionTime.Year())
	assert.Equal(t, 1, page.Total)
}

func TestDo_DeleteWithNullData(t *testing.T) {
	srv := envelopeServer(t, func(r *http.Request) (int, any) {
		assert.Equal(t, http.MethodDelete, r.Method)
		return http.StatusOK, nil
	})

	assert.NoError(t, New(srv.URL).DeleteEquipment(context.Background(), 3))
}

func TestDo_ContextCancelled(t *testing.T) {
	srv := envelopeServer(t, func(r *http.Request) (int, any) {
		return http.StatusOK, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := New(srv.URL).Do(ctx, api.Health(), nil)
	assert.ErrorIs(t, err, context.Canceled)
}

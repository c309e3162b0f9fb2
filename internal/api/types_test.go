package api

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEquipmentStatus_OneIsAvailable(t *testing.T) {
	var e Equipment
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"name":"显微镜","category":2,"status":1}`), &e))

	assert.Equal(t, EquipmentAvailable, e.Status)
	assert.Equal(t, "available", e.Status.String())
	assert.Equal(t, "可预约", e.Status.Label())

	assert.Equal(t, "unavailable", EquipmentUnavailable.String())
	assert.Equal(t, "不可用", EquipmentUnavailable.Label())
}

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, "-", FormatTimestamp(nil))
	assert.Equal(t, "-", FormatTimestamp(&Timestamp{}))

	at := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, at.Local().Format(time.DateTime), FormatTimestamp(&Timestamp{Time: at}))
}

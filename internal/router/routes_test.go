package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		path     string
		wantName string
		params   Params
	}{
		{path: "/", wantName: RouteHome},
		{path: "", wantName: RouteHome},
		{path: "/laboratories", wantName: RouteLaboratoryList},
		{path: "/laboratories/", wantName: RouteLaboratoryList},
		{path: "/equipment", wantName: RouteEquipment},
		{path: "/equipment/7", wantName: RouteEquipmentDetail, params: Params{"id": "7"}},
		{path: "reservations", wantName: RouteReservations},
		{path: "/audit-logs", wantName: RouteAuditLog},
		{path: "/help#faq", wantName: RouteHelp},
		{path: "/equipment/7/extra", wantName: RouteNotFound, params: Params{"pathMatch": "equipment/7/extra"}},
		{path: "/nowhere", wantName: RouteNotFound, params: Params{"pathMatch": "nowhere"}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			route, params := Match(tt.path)
			assert.Equal(t, tt.wantName, route.Name)
			if tt.params != nil {
				assert.Equal(t, tt.params, params)
			}
		})
	}
}

func TestRoutes_Table(t *testing.T) {
	all := Routes()
	require.NotEmpty(t, all)
	assert.Equal(t, RouteNotFound, all[len(all)-1].Name, "catch-all must be last")

	// Mutating the returned slice must not leak into the table.
	all[0].RequiresAuth = true
	home, ok := ByName(RouteHome)
	require.True(t, ok)
	assert.False(t, home.RequiresAuth)

	audit, ok := ByName(RouteAuditLog)
	require.True(t, ok)
	assert.True(t, audit.RequiresAuth)
	assert.True(t, audit.RequiresAdmin)

	_, ok = ByName("Missing")
	assert.False(t, ok)
}

func TestGinPath(t *testing.T) {
	detail, _ := ByName(RouteEquipmentDetail)
	path, ok := GinPath(detail)
	assert.True(t, ok)
	assert.Equal(t, "/equipment/:id", path)

	nf, _ := ByName(RouteNotFound)
	_, ok = GinPath(nf)
	assert.False(t, ok)
}

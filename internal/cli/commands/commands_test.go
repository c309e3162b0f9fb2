package commands

import (
	"bytes"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labshare-dev/labshare/internal/router"
)

func TestConcretePath(t *testing.T) {
	tests := []struct {
		pattern string
		args    []string
		want    string
	}{
		{"/equipment/:id", []string{"12"}, "/equipment/12"},
		{"/equipment/:id", nil, "/equipment/:id"},
		{"/equipment", []string{"12"}, "/equipment"},
		{"/", nil, "/"},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			assert.Equal(t, tt.want, concretePath(tt.pattern, tt.args))
		})
	}
}

func TestRouteOf_InheritsFromParent(t *testing.T) {
	parent := onRoute(&cobra.Command{Use: "reservations"}, "/reservations")
	child := &cobra.Command{Use: "ls"}
	parent.AddCommand(child)
	own := onRoute(&cobra.Command{Use: "show"}, "/equipment/:id")
	parent.AddCommand(own)

	path, ok := routeOf(child)
	require.True(t, ok)
	assert.Equal(t, "/reservations", path)

	path, ok = routeOf(own)
	require.True(t, ok)
	assert.Equal(t, "/equipment/:id", path)

	_, ok = routeOf(&cobra.Command{Use: "login"})
	assert.False(t, ok)
}

func TestDenialMessage(t *testing.T) {
	assert.Contains(t, denialMessage(router.ReasonLoginRequired), "log in")
	assert.Contains(t, denialMessage(router.ReasonAdminRequired), "administrator")
	assert.Equal(t, "access denied", denialMessage("other"))
}

func TestParseLocal(t *testing.T) {
	for _, in := range []string{"2024-03-01 09:30", "2024-03-01 09:30:00", "2024-03-01T09:30", "2024-03-01T09:30:00"} {
		got, err := parseLocal(in)
		require.NoError(t, err, in)
		assert.Equal(t, "2024-03-01T09:30:00", got)
	}

	_, err := parseLocal("tomorrow")
	assert.Error(t, err)
}

func TestParseSince(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.Local)

	got, err := parseSince("24h", now)
	require.NoError(t, err)
	assert.Equal(t, now.Add(-24*time.Hour), got)

	got, err = parseSince("2024-03-01", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local), got)

	got, err = parseSince("2024-03-01 08:15", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 8, 15, 0, 0, time.Local), got)

	_, err = parseSince("last week", now)
	assert.Error(t, err)
}

func TestCheckDateAndClock(t *testing.T) {
	assert.NoError(t, checkDate(""))
	assert.NoError(t, checkDate("2024-02-29"))
	assert.Error(t, checkDate("2024-13-01"))

	assert.NoError(t, checkClock("09:00"))
	assert.NoError(t, checkClock("09:00:00"))
	assert.Error(t, checkClock("9am"))
}

func TestParseID(t *testing.T) {
	id, err := parseID("equipment", "42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, bad := range []string{"0", "-1", "abc"} {
		_, err := parseID("equipment", bad)
		assert.ErrorContains(t, err, "invalid equipment id")
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "-", truncate("", 10))
	assert.Equal(t, "短文本", truncate("短文本", 10))
	assert.Equal(t, "预约设…", truncate("预约设备成功", 4))
}

func TestRender(t *testing.T) {
	type row struct {
		Name  string `json:"name" yaml:"name"`
		Count int    `json:"count" yaml:"count"`
	}
	v := []row{{"显微镜", 3}}
	table := func(w io.Writer) {
		fmt.Fprintln(w, "NAME\tCOUNT")
		for _, r := range v {
			fmt.Fprintf(w, "%s\t%d\n", r.Name, r.Count)
		}
	}

	tests := []struct {
		format string
		want   string
	}{
		{FormatJSON, "[\n  {\n    \"name\": \"显微镜\",\n    \"count\": 3\n  }\n]\n"},
		{FormatYAML, "- name: 显微镜\n  count: 3\n"},
		{FormatTable, ""},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var out bytes.Buffer
			d := &Deps{Out: &out, Format: tt.format}
			require.NoError(t, d.render(v, table))
			if tt.format == FormatTable {
				assert.Contains(t, out.String(), "NAME")
				assert.Contains(t, out.String(), "显微镜")
				return
			}
			assert.Equal(t, tt.want, out.String())
		})
	}

	d := &Deps{Out: io.Discard, Format: "xml"}
	assert.ErrorContains(t, d.render(v, table), "unknown output format")
}

func TestPrintfIsQuietForMachineFormats(t *testing.T) {
	var out bytes.Buffer
	d := &Deps{Out: &out, Format: FormatJSON}
	d.printf("hello %s\n", "world")
	assert.Empty(t, out.String())

	d.Format = FormatTable
	d.printf("hello %s\n", "world")
	assert.Equal(t, "hello world\n", out.String())
}

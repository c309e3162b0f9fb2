package serverselect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labshare-dev/labshare/internal/cli/config"
	"github.com/labshare-dev/labshare/internal/cli/userconfig"
)

var twoServers = &config.Config{Servers: []config.Server{
	{Alias: "campus", URL: "http://10.0.0.5:8000/api/v1"},
	{Alias: "staging", URL: "http://10.0.0.6:8000/api/v1"},
}}

func TestResolveServer_AliasWins(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	require.NoError(t, userconfig.SetSelectedServer("http://10.0.0.5:8000/api/v1"))

	server, err := ResolveServer(twoServers, "staging")
	require.NoError(t, err)
	assert.Equal(t, "staging", server.Alias)
}

func TestResolveServer_UsesSelected(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	require.NoError(t, userconfig.SetSelectedServer("http://10.0.0.6:8000/api/v1"))

	server, err := ResolveServer(twoServers, "")
	require.NoError(t, err)
	assert.Equal(t, "staging", server.Alias)
}

func TestResolveServer_SingleServerIsRemembered(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	single := &config.Config{Servers: []config.Server{{Alias: "only", URL: "http://only.local/api/v1"}}}
	require.NoError(t, userconfig.SetSelectedServer("http://gone.local/api/v1"))

	server, err := ResolveServer(single, "")
	require.NoError(t, err)
	assert.Equal(t, "only", server.Alias)

	selected, err := userconfig.GetSelectedServer()
	require.NoError(t, err)
	assert.Equal(t, "http://only.local/api/v1", selected)
}

func TestGetServerByURLOrAlias(t *testing.T) {
	byURL, err := GetServerByURLOrAlias(twoServers, "http://10.0.0.5:8000/api/v1/")
	require.NoError(t, err)
	assert.Equal(t, "campus", byURL.Alias)

	byAlias, err := GetServerByURLOrAlias(twoServers, "staging")
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.6:8000/api/v1", byAlias.URL)

	_, err = GetServerByURLOrAlias(twoServers, "nope")
	assert.Error(t, err)
}

package version_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/lk16/reversi/internal"
	"github.com/lk16/reversi/internal/routes/version"
	"github.com/stretchr/testify/require"
)

func TestVersionEndpoint(t *testing.T) {
	app, _, stop := internal.SetupApp()
	defer stop()

	req, err := http.NewRequest(http.MethodGet, "/version", nil)
	require.NoError(t, err)

	resp, err := app.Test(req)
	require.NoError(t, err)

	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got version.VersionResponse
	err = json.NewDecoder(resp.Body).Decode(&got)
	require.NoError(t, err)
	require.NotEmpty(t, got.Commit)
}

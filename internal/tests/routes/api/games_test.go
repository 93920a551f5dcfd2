package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lk16/reversi/internal"
	"github.com/lk16/reversi/internal/game"
	"github.com/lk16/reversi/internal/models"
	"github.com/lk16/reversi/internal/othello"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	t.Setenv("REVERSI_BOARD_SIZE", "6")
	t.Setenv("REVERSI_HUMAN_SIDE", "black")
	t.Setenv("REVERSI_END_RULE", "either")
	t.Setenv("REVERSI_POLICY", "greedy")

	app, _, stop := internal.SetupApp()
	t.Cleanup(stop)
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path, body string) (int, *models.GameResponse) {
	t.Helper()

	var payload *bytes.Buffer
	if body == "" {
		payload = &bytes.Buffer{}
	} else {
		payload = bytes.NewBufferString(body)
	}

	req, err := http.NewRequest(method, path, payload)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return resp.StatusCode, nil
	}

	var gameResp models.GameResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&gameResp))
	return resp.StatusCode, &gameResp
}

func createGame(t *testing.T, app *fiber.App, body string) *models.GameResponse {
	t.Helper()

	status, resp := doRequest(t, app, http.MethodPost, "/api/games", body)
	require.Equal(t, http.StatusCreated, status)
	require.NotEmpty(t, resp.ID)
	return resp
}

func TestCreateGame(t *testing.T) {
	app := setupApp(t)

	tests := []struct {
		name           string
		body           string
		wantStatusCode int
		wantSize       int
		wantDiscs      int
	}{
		{
			name:           "defaults",
			body:           "",
			wantStatusCode: http.StatusCreated,
			wantSize:       6,
			wantDiscs:      4,
		},
		{
			name:           "computer opens",
			body:           `{"size": 8, "human_side": "white"}`,
			wantStatusCode: http.StatusCreated,
			wantSize:       8,
			wantDiscs:      5,
		},
		{
			name:           "invalid size",
			body:           `{"size": 33}`,
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "invalid side",
			body:           `{"human_side": "red"}`,
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "unknown policy",
			body:           `{"policy": "minimax"}`,
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "broken json",
			body:           `{"size":`,
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := doRequest(t, app, http.MethodPost, "/api/games", tt.body)
			require.Equal(t, tt.wantStatusCode, status)

			if tt.wantStatusCode != http.StatusCreated {
				return
			}

			_, err := uuid.Parse(resp.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSize, resp.Size)
			assert.Len(t, resp.Rows, tt.wantSize)
			assert.Equal(t, tt.wantDiscs, resp.Counts[othello.First]+resp.Counts[othello.Second])
			assert.Equal(t, game.AwaitingHumanMove, resp.State)
		})
	}
}

func TestPlayMove(t *testing.T) {
	app := setupApp(t)
	created := createGame(t, app, "")

	path := "/api/games/" + created.ID

	// Illegal move leaves the game untouched.
	status, resp := doRequest(t, app, http.MethodPost, path+"/moves", `{"row": 0, "col": 0}`)
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, resp.Applied)
	require.False(t, *resp.Applied)
	require.Equal(t, created.Rows, resp.Rows)

	// Missing coordinate
	status, _ = doRequest(t, app, http.MethodPost, path+"/moves", `{"row": 1}`)
	require.Equal(t, http.StatusBadRequest, status)

	// Legal move is answered by the computer.
	status, resp = doRequest(t, app, http.MethodPost, path+"/moves", `{"row": 1, "col": 2}`)
	require.Equal(t, http.StatusOK, status)
	require.True(t, *resp.Applied)
	require.Equal(t, game.AwaitingHumanMove, resp.State)
	require.Equal(t, 6, resp.Counts[othello.First]+resp.Counts[othello.Second])
	require.NotNil(t, resp.LastMove)
	require.NotEmpty(t, resp.LegalMoves)

	status, got := doRequest(t, app, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, resp.Rows, got.Rows)
	require.Nil(t, got.Applied)
}

func TestPlayUntilGameOver(t *testing.T) {
	app := setupApp(t)
	created := createGame(t, app, `{"size": 4, "policy": "corners"}`)

	path := "/api/games/" + created.ID
	resp := created

	for resp.State != game.GameOver {
		require.NotEmpty(t, resp.LegalMoves)
		move := resp.LegalMoves[0]

		body, err := json.Marshal(move)
		require.NoError(t, err)

		var status int
		status, resp = doRequest(t, app, http.MethodPost, path+"/moves", string(body))
		require.Equal(t, http.StatusOK, status)
		require.True(t, *resp.Applied)
	}

	require.NotEmpty(t, resp.Result)
	require.Nil(t, resp.Turn)
	require.Empty(t, resp.LegalMoves)
}

func TestRestartGame(t *testing.T) {
	app := setupApp(t)
	created := createGame(t, app, "")

	path := "/api/games/" + created.ID

	status, _ := doRequest(t, app, http.MethodPost, path+"/moves", `{"row": 1, "col": 2}`)
	require.Equal(t, http.StatusOK, status)

	status, resp := doRequest(t, app, http.MethodPost, path+"/restart", "")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, created.ID, resp.ID)
	require.Equal(t, created.Rows, resp.Rows)
	require.Nil(t, resp.LastMove)
}

func TestDeleteGame(t *testing.T) {
	app := setupApp(t)
	created := createGame(t, app, "")

	path := "/api/games/" + created.ID

	status, _ := doRequest(t, app, http.MethodDelete, path, "")
	require.Equal(t, http.StatusNoContent, status)

	status, _ = doRequest(t, app, http.MethodGet, path, "")
	require.Equal(t, http.StatusNotFound, status)

	status, _ = doRequest(t, app, http.MethodDelete, path, "")
	require.Equal(t, http.StatusNotFound, status)
}

func TestUnknownGame(t *testing.T) {
	app := setupApp(t)

	status, _ := doRequest(t, app, http.MethodGet, "/api/games/"+uuid.NewString(), "")
	require.Equal(t, http.StatusNotFound, status)

	status, _ = doRequest(t, app, http.MethodGet, "/api/games/not-a-uuid", "")
	require.Equal(t, http.StatusBadRequest, status)

	status, _ = doRequest(t, app, http.MethodPost, "/api/games/not-a-uuid/moves", `{"row": 1, "col": 2}`)
	require.Equal(t, http.StatusBadRequest, status)
}

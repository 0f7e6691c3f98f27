package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/DDiggs91/Jetan/internal/game"
)

func newTestRouter(t *testing.T) (*gin.Engine, *game.Coordinator) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	coord := game.NewCoordinator(zap.NewNop().Sugar(), 600, 128)
	return NewRouter(coord, zap.NewNop().Sugar()), coord
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func createTestGame(t *testing.T, r *gin.Engine) gameSnapshotResponse {
	t.Helper()
	rec := doJSON(t, r, http.MethodPost, "/api/v1/games", createGameRequest{}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var resp gameSnapshotResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestCreateGameReturnsFortyPiecesAndETag(t *testing.T) {
	r, _ := newTestRouter(t)
	rec := doJSON(t, r, http.MethodPost, "/api/v1/games", createGameRequest{}, nil)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("ETag"))

	var resp gameSnapshotResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Version)
	assert.Len(t, resp.State.Pieces, 40)
}

func TestGetSnapshotUnknownGameIsBadAction(t *testing.T) {
	r, _ := newTestRouter(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/games/g_nope", nil)
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "BadAction", body.Error.Kind)
}

func TestApplyMoveWithoutIfMatchIs428(t *testing.T) {
	r, _ := newTestRouter(t)
	snap := createTestGame(t, r)

	rec := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/games/%s/moves", snap.GameID), moveRequestBody{
		Action: "move",
	}, nil)

	assert.Equal(t, 428, rec.Code)
}

func TestApplyMoveVersionGuardExactlyOneSucceeds(t *testing.T) {
	r, _ := newTestRouter(t)
	snap := createTestGame(t, r)

	legalRec := httptest.NewRecorder()
	legalReq := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/games/%s/legal?row=8&col=1", snap.GameID), nil)
	r.ServeHTTP(legalRec, legalReq)
	require.Equal(t, http.StatusOK, legalRec.Code)
	var legal legalResponse
	require.NoError(t, json.Unmarshal(legalRec.Body.Bytes(), &legal))
	require.NotEmpty(t, legal.Destination)

	body := moveRequestBody{Action: "move", From: game.SquareView{Row: 8, Col: 1}, To: legal.Destination[0]}

	first := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/games/%s/moves", snap.GameID), body, map[string]string{"If-Match": "0"})
	second := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/games/%s/moves", snap.GameID), body, map[string]string{"If-Match": "0"})

	codes := []int{first.Code, second.Code}
	assert.Contains(t, codes, http.StatusOK)
	assert.Contains(t, codes, http.StatusConflict)
}

func TestResignThenMoveReturns410(t *testing.T) {
	r, _ := newTestRouter(t)
	snap := createTestGame(t, r)

	controlRec := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/games/%s/controls", snap.GameID), controlRequest{Action: "resign"}, nil)
	assert.Equal(t, http.StatusOK, controlRec.Code)
	var control controlResponse
	require.NoError(t, json.Unmarshal(controlRec.Body.Bytes(), &control))
	assert.Equal(t, "resign_orange", control.Result)
	assert.Equal(t, "BLACK", control.Winner)

	moveRec := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/games/%s/moves", snap.GameID), moveRequestBody{
		Action: "move", From: game.SquareView{Row: 8, Col: 1}, To: game.SquareView{Row: 7, Col: 1},
	}, map[string]string{"If-Match": "0"})
	assert.Equal(t, http.StatusGone, moveRec.Code)
}

func TestDiffsSinceOutOfRangeIs409WithSnapshotHint(t *testing.T) {
	r, _ := newTestRouter(t)
	snap := createTestGame(t, r)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/games/%s/diffs?since=99", snap.GameID), nil)
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "snapshot", body.Error.Hints["need"])
}

func TestJoinGameThenDoubleJoinIsSeatError(t *testing.T) {
	r, _ := newTestRouter(t)
	snap := createTestGame(t, r)

	first := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/games/%s/join", snap.GameID), joinGameRequest{Seat: "orange"}, nil)
	assert.Equal(t, http.StatusOK, first.Code)

	second := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/games/%s/join", snap.GameID), joinGameRequest{Seat: "orange"}, nil)
	assert.Equal(t, http.StatusForbidden, second.Code)
}

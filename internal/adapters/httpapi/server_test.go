package httpapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrekvist/burgersim/internal/adapters/httpapi"
	"github.com/andrekvist/burgersim/internal/application/session"
	"github.com/andrekvist/burgersim/internal/domain/level"
)

// memoryRepo is a map-backed Repository for HTTP tests.
type memoryRepo struct {
	sessions map[string]*session.Session
}

func (r *memoryRepo) Save(_ context.Context, sess *session.Session) error {
	r.sessions[sess.ID] = sess
	return nil
}

func (r *memoryRepo) FindByID(_ context.Context, id string) (*session.Session, error) {
	sess, ok := r.sessions[id]
	if !ok {
		return nil, session.ErrSessionNotFound
	}
	return sess, nil
}

func (r *memoryRepo) ListByUser(_ context.Context, userID string) ([]*session.Session, error) {
	var out []*session.Session
	for _, sess := range r.sessions {
		if sess.UserID == userID {
			out = append(out, sess)
		}
	}
	return out, nil
}

func (r *memoryRepo) Delete(_ context.Context, id string) error {
	delete(r.sessions, id)
	return nil
}

func newTestServer() *httpapi.Server {
	repo := &memoryRepo{sessions: make(map[string]*session.Session)}
	svc := session.NewService(repo, level.NewCatalog(), nil)
	return httpapi.NewServer(svc)
}

func doJSON(t *testing.T, server http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	return rec
}

func createGame(t *testing.T, server http.Handler) string {
	t.Helper()
	rec := doJSON(t, server, http.MethodPost, "/api/games", map[string]string{
		"userId":  "user-1",
		"levelId": "corner-grill",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var sess struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sess))
	require.NotEmpty(t, sess.ID)
	return sess.ID
}

func TestServer_Health(t *testing.T) {
	server := newTestServer()

	rec := doJSON(t, server, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestServer_ListLevels(t *testing.T) {
	server := newTestServer()

	rec := doJSON(t, server, http.MethodGet, "/api/levels", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var levels []struct {
		ID       string `json:"id"`
		MaxScore int    `json:"maxScore"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &levels))
	require.Len(t, levels, 2)
	assert.Equal(t, "corner-grill", levels[0].ID)
	assert.Equal(t, 100, levels[0].MaxScore)
}

func TestServer_CreateAndGetGame(t *testing.T) {
	server := newTestServer()

	id := createGame(t, server)
	rec := doJSON(t, server, http.MethodGet, "/api/games/"+id, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var sess struct {
		LevelID string `json:"levelId"`
		State   struct {
			Day  int     `json:"day"`
			Cash float64 `json:"cash"`
		} `json:"state"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sess))
	assert.Equal(t, "corner-grill", sess.LevelID)
	assert.Equal(t, 1, sess.State.Day)
	assert.InDelta(t, 10000.0, sess.State.Cash, 1e-9)
}

func TestServer_CreateGameValidation(t *testing.T) {
	server := newTestServer()

	t.Run("missing fields", func(t *testing.T) {
		rec := doJSON(t, server, http.MethodPost, "/api/games", map[string]string{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown level", func(t *testing.T) {
		rec := doJSON(t, server, http.MethodPost, "/api/games", map[string]string{
			"userId":  "user-1",
			"levelId": "no-such-level",
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestServer_AdvanceDay(t *testing.T) {
	server := newTestServer()
	id := createGame(t, server)

	rec := doJSON(t, server, http.MethodPost, "/api/games/"+id+"/days", map[string]interface{}{
		"production": 10,
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var sess struct {
		State struct {
			Day       int `json:"day"`
			Inventory struct {
				FinishedGoods int `json:"finishedGoods"`
			} `json:"inventory"`
		} `json:"state"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sess))
	assert.Equal(t, 2, sess.State.Day)
	assert.Equal(t, 10, sess.State.Inventory.FinishedGoods)
}

func TestServer_AdvanceDayRejectsUnaffordable(t *testing.T) {
	server := newTestServer()
	id := createGame(t, server)

	// Drain the wallet with a far-too-large patty order split over many lines
	var orders []map[string]interface{}
	for i := 0; i < 15; i++ {
		orders = append(orders, map[string]interface{}{
			"supplierId":   "city-meats",
			"materialType": "patty",
			"quantity":     100,
		})
	}
	rec := doJSON(t, server, http.MethodPost, "/api/games/"+id+"/days", map[string]interface{}{
		"supplierOrders": orders,
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestServer_GameNotFound(t *testing.T) {
	server := newTestServer()

	rec := doJSON(t, server, http.MethodGet, "/api/games/unknown", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_ValidateAction(t *testing.T) {
	server := newTestServer()
	id := createGame(t, server)

	rec := doJSON(t, server, http.MethodPost, "/api/games/"+id+"/validate", map[string]interface{}{
		"supplierOrders": []map[string]interface{}{
			{"supplierId": "city-meats", "materialType": "patty", "quantity": 10},
		},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var result struct {
		Valid     bool    `json:"valid"`
		TotalCost float64 `json:"totalCost"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.Valid)
	assert.InDelta(t, 100.0, result.TotalCost, 1e-9)
}

func TestServer_Result(t *testing.T) {
	server := newTestServer()
	id := createGame(t, server)
	rec := doJSON(t, server, http.MethodPost, "/api/games/"+id+"/days", map[string]interface{}{})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, server, http.MethodGet, "/api/games/"+id+"/result", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var result struct {
		LevelID  string `json:"levelId"`
		FinalDay int    `json:"finalDay"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "corner-grill", result.LevelID)
	assert.Equal(t, 2, result.FinalDay)
}

func TestServer_ListGamesByUser(t *testing.T) {
	server := newTestServer()
	createGame(t, server)
	createGame(t, server)

	rec := doJSON(t, server, http.MethodGet, "/api/games?userId=user-1", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var sessions []json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sessions))
	assert.Len(t, sessions, 2)

	rec = doJSON(t, server, http.MethodGet, "/api/games", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRateLimiter_Returns429WhenExhausted(t *testing.T) {
	// Arrange: one request per second, burst of one
	limiter := httpapi.NewRateLimiter(1, 1)
	handler := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = "10.0.0.1:1234"

	// Act: the first request passes, the immediate second one does not
	first := httptest.NewRecorder()
	handler.ServeHTTP(first, req)
	second := httptest.NewRecorder()
	handler.ServeHTTP(second, req)

	// Assert
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestRateLimiter_TracksClientsSeparately(t *testing.T) {
	limiter := httpapi.NewRateLimiter(1, 1)
	handler := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	reqA := httptest.NewRequest(http.MethodGet, "/health", nil)
	reqA.RemoteAddr = "10.0.0.1:1234"
	reqB := httptest.NewRequest(http.MethodGet, "/health", nil)
	reqB.RemoteAddr = "10.0.0.2:1234"

	recA := httptest.NewRecorder()
	handler.ServeHTTP(recA, reqA)
	recB := httptest.NewRecorder()
	handler.ServeHTTP(recB, reqB)

	assert.Equal(t, http.StatusOK, recA.Code)
	assert.Equal(t, http.StatusOK, recB.Code)
}

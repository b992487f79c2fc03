package cli

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/crediflow/lsctl/pkg/data"
	"github.com/crediflow/lsctl/pkg/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRouter(t *testing.T) (*http.ServeMux, *sql.DB) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, data.Init(path))

	db, err := data.GetDB(path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return makeRouter(db), db
}

func doGet(t *testing.T, mux *http.ServeMux, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestStateAPI(t *testing.T) {
	mux, _ := setupTestRouter(t)

	w := doGet(t, mux, "/data/state")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "customers")
}

func TestScoresAPI(t *testing.T) {
	mux, db := setupTestRouter(t)
	require.NoError(t, data.SaveScores(db, []*scoring.ScoredRecord{
		{MemberID: "m-1", LoanScore: 810, Grade: "A"},
		{MemberID: "m-2", LoanScore: 120, Grade: "E"},
	}))

	w := doGet(t, mux, "/data/scores")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "m-1")

	w = doGet(t, mux, "/data/scores?grade=A")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "m-2")

	w = doGet(t, mux, "/data/scores?min=500")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "m-2")
}

func TestScoreAPI(t *testing.T) {
	mux, db := setupTestRouter(t)
	require.NoError(t, data.SaveScores(db, []*scoring.ScoredRecord{
		{MemberID: "m-1", LoanScore: 810, Grade: "A"},
	}))

	w := doGet(t, mux, "/data/score?member=m-1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"A"`)

	w = doGet(t, mux, "/data/score?member=m-404")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doGet(t, mux, "/data/score")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBorrowerAPI(t *testing.T) {
	mux, db := setupTestRouter(t)

	_, err := db.Exec(`INSERT INTO customer (member_id, home_ownership) VALUES ('m-1', 'OWN')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO loan (loan_id, member_id, loan_status) VALUES ('l-1', 'm-1', 'Current')`)
	require.NoError(t, err)

	w := doGet(t, mux, "/data/borrower?member=m-1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Current")

	w = doGet(t, mux, "/data/borrower")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGradesAPI(t *testing.T) {
	mux, db := setupTestRouter(t)
	require.NoError(t, data.SaveScores(db, []*scoring.ScoredRecord{
		{MemberID: "m-1", LoanScore: 810, Grade: "A"},
	}))

	w := doGet(t, mux, "/data/grades")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "labels")
}

func TestQueryParamInt(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/data/scores?limit=25", nil)
	assert.Equal(t, 25, queryParamInt(req, "limit", 500))
	assert.Equal(t, 500, queryParamInt(req, "missing", 500))

	req = httptest.NewRequest(http.MethodGet, "/data/scores?limit=abc", nil)
	assert.Equal(t, 500, queryParamInt(req, "limit", 500))
}

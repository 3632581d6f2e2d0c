package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kegliz/qivm/internal/logger"
	"github.com/kegliz/qivm/internal/qservice"
	"github.com/kegliz/qivm/internal/server/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/kegliz/qivm/backend/qsim"
)

func testServer(t *testing.T) *appServer {
	t.Helper()
	l := logger.NewLogger(logger.LoggerOptions{Debug: true})
	r := router.NewRouter(router.RouterOptions{Logger: l})
	return newAppServer(appServerOptions{
		logger:  l,
		router:  r,
		store:   qservice.NewProgramStore(),
		version: "test",
	})
}

func doJSON(t *testing.T, a *appServer, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	a := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestCompileThenExecuteBellState(t *testing.T) {
	a := testServer(t)

	compileReq := CompileRequest{
		Qubits: 2,
		Ops: []OpRequest{
			{Kind: "gate", Gate: "H", Targets: []int{0}},
			{Kind: "control", Targets: []int{0}},
			{Kind: "gate", Gate: "X", Targets: []int{1}},
			{Kind: "decontrol", Targets: []int{0}},
		},
		Measure: []int{0, 1},
		Backend: "qsim",
	}
	w := doJSON(t, a, http.MethodPost, "/api/compile", compileReq)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var compiled CompileResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &compiled))
	require.NotEmpty(t, compiled.ProgramID)

	execReq := ExecuteRequest{ProgramID: compiled.ProgramID, Backend: "qsim", Shots: 64}
	w = doJSON(t, a, http.MethodPost, "/api/execute", execReq)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result struct {
		Shots   uint64
		Entries []struct {
			Value uint64
			Count uint64
		}
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, uint64(64), result.Shots)
	for _, e := range result.Entries {
		assert.True(t, e.Value == 0 || e.Value == 3)
	}
}

func TestCompileRejectsUnknownBackend(t *testing.T) {
	a := testServer(t)
	w := doJSON(t, a, http.MethodPost, "/api/compile", CompileRequest{Qubits: 1, Backend: "nope"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExecuteRequiresBytecodeOrProgramID(t *testing.T) {
	a := testServer(t)
	w := doJSON(t, a, http.MethodPost, "/api/execute", ExecuteRequest{Backend: "qsim", Shots: 10})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

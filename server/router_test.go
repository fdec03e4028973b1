package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathanfoale/skycity-blackjack/server/api"
	"github.com/nathanfoale/skycity-blackjack/server/sim"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	base := sim.DefaultConfig()
	base.Sessions = 4
	base.HandsPerSession = 100
	base.Seed = 9
	ts := httptest.NewServer(Router(&server{base: base, workers: 2, maxWork: 10000, log: slog.New(slog.DiscardHandler)}))
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, ts *httptest.Server, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(ts.URL+"/api/simulate", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealthAndVariants(t *testing.T) {
	ts := testServer(t)

	resp, err := http.Get(ts.URL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var health map[string]bool
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.True(t, health["ok"])

	resp2, err := http.Get(ts.URL + "/api/variants")
	require.NoError(t, err)
	defer resp2.Body.Close()
	var out struct {
		Variants []api.VariantInfo `json:"variants"`
	}
	require.NoError(t, json.NewDecoder(resp2.Body).Decode(&out))
	assert.Len(t, out.Variants, 5)
}

func TestSimulate(t *testing.T) {
	ts := testServer(t)
	resp := post(t, ts, `{"variant":"crown","sessions":3,"hands":50,"include_trajectories":true}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out api.SimulateResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, uint64(9), out.Seed)
	assert.Len(t, out.FinalBankrolls, 3)
	assert.Len(t, out.Trajectories, 3)
	assert.LessOrEqual(t, len(out.AverageBankroll), 50)
	assert.Equal(t, []int{9, 10, 11}, out.Config.Rules.DoubleOn)
}

func TestSimulateDeterministic(t *testing.T) {
	ts := testServer(t)
	var finals [2][]float64
	for i := range finals {
		resp := post(t, ts, `{"seed":77}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var out api.SimulateResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Nil(t, out.Trajectories)
		finals[i] = out.FinalBankrolls
	}
	assert.Equal(t, finals[0], finals[1])
}

func TestSimulateEmptyBodyUsesDefaults(t *testing.T) {
	ts := testServer(t)
	resp := post(t, ts, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out api.SimulateResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Len(t, out.FinalBankrolls, 4)
}

func TestSimulateBadRequests(t *testing.T) {
	ts := testServer(t)
	for _, body := range []string{
		`{"bankroll":-5}`,
		`{"variant":"nope"}`,
		`{"sessions":1000,"hands":1000}`,
		`{"unknown_field":1}`,
		`{`,
	} {
		resp := post(t, ts, body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, body)
		var e map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&e), body)
		assert.NotEmpty(t, e["error"], body)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	ts := testServer(t)
	run := post(t, ts, `{"sessions":2,"hands":20}`)
	require.Equal(t, http.StatusOK, run.StatusCode)
	_, _ = io.Copy(io.Discard, run.Body)

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "blackjack_sessions_total")
	assert.Contains(t, string(body), "blackjack_hands_total")
	assert.Contains(t, string(body), `http_requests_total{endpoint="/api/simulate",method="POST"}`)
}

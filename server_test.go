package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPanelServer(runner *fakeRunner, gpuHasLimit bool) (*PanelServer, *httptest.Server) {
	server := NewPanelServer(newTestController(runner, gpuHasLimit))
	return server, httptest.NewServer(server.echo)
}

func decodePayload(t *testing.T, body io.Reader) statusPayload {
	t.Helper()
	var payload statusPayload
	require.NoError(t, json.NewDecoder(body).Decode(&payload))
	return payload
}

func TestPanelIndex(t *testing.T) {
	_, ts := newTestPanelServer(&fakeRunner{}, true)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "Linux Performance Switcher")
}

func TestStatusEndpoint(t *testing.T) {
	_, ts := newTestPanelServer(&fakeRunner{}, true)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/status")
	require.NoError(t, err)
	defer resp.Body.Close()

	payload := decodePayload(t, resp.Body)
	assert.Equal(t, StatusInfo, payload.Status.Level)
	assert.Equal(t, "Select a mode to begin", payload.Status.Text)
	assert.Equal(t, "Max GPU Power Limit: 140W", payload.MaxPowerLimit)
}

func TestSetModeEndpoint(t *testing.T) {
	runner := &fakeRunner{}
	_, ts := newTestPanelServer(runner, true)
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/api/mode/desktop", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	var status Status
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, StatusSuccess, status.Level)
	assert.Equal(t, "✅ Responsive Desktop Mode is ON.", status.Text)
	assert.Equal(t, 1, runner.callsTo("pkexec"))
}

func TestSetModeEndpointUnknownMode(t *testing.T) {
	runner := &fakeRunner{}
	_, ts := newTestPanelServer(runner, true)
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/api/mode/turbo", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, runner.calls)
}

func TestSetModeEndpointAIWithoutLimit(t *testing.T) {
	runner := &fakeRunner{}
	_, ts := newTestPanelServer(runner, false)
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/api/mode/ai", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	var status Status
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	assert.Equal(t, StatusError, status.Level)
	assert.Empty(t, runner.calls)
}

func TestWebsocketConnectDuringBroadcasts(t *testing.T) {
	server, ts := newTestPanelServer(&fakeRunner{}, true)
	defer ts.Close()

	// Hammer the hub while clients connect: the greeting write must never
	// overlap a broadcast write on the same connection.
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case <-done:
				return
			default:
				server.PushSnapshot(SensorSnapshot{GPUTemp: "62°C"})
			}
		}
	}()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	for i := 0; i < 20; i++ {
		conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
		require.NoError(t, err)
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var payload statusPayload
		require.NoError(t, conn.ReadJSON(&payload))
		conn.Close()
	}
}

func TestWebsocketPush(t *testing.T) {
	server, ts := newTestPanelServer(&fakeRunner{}, true)
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// The server greets new connections with the current payload
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var payload statusPayload
	require.NoError(t, conn.ReadJSON(&payload))

	snapshot := SensorSnapshot{
		GPUTemp:     "62°C",
		GPUPower:    "115.30W",
		CPUTemp:     "45.5°C",
		CPUGovernor: "performance",
	}
	server.PushSnapshot(snapshot)

	require.NoError(t, conn.ReadJSON(&payload))
	assert.Equal(t, snapshot, payload.Snapshot)
	assert.Equal(t, "Max GPU Power Limit: 140W", payload.MaxPowerLimit)
}

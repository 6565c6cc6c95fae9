package server

import (
	"net/http"
	"strings"
)

// healthClient is shared by all probes, with a bounded timeout so an
// unreachable server can't stall the worker
var healthClient = &http.Client{
	Timeout: HealthTimeout,
}

// CheckServer probes the server health endpoint. Any HTTP response,
// whatever its status code, means the server is reachable; only
// transport-level failures count as offline. Never returns an error:
// a failed probe is just "offline".
func CheckServer(serverURL string) bool {
	url := strings.TrimRight(serverURL, "/") + "/api/health"

	resp, err := healthClient.Get(url)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return true
}

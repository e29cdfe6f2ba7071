package heartbeat

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"solwatch/internal/core/config"
	"solwatch/internal/infra/rpc"
)

type fakeProber struct {
	results map[string]rpc.HealthResult
}

func (f *fakeProber) Health(_ context.Context, url string) rpc.HealthResult {
	return f.results[url]
}

type recordingPinger struct {
	pinged []string
}

func (r *recordingPinger) Ping(_ context.Context, url string) {
	r.pinged = append(r.pinged, url)
}

func TestChecker_PingsHealthyHostsOnly(t *testing.T) {
	hosts := []config.HostConfig{
		{Host: "a", RPCURL: "http://a:8899", HeartbeatEndpoint: "http://hb/a"},
		{Host: "b", RPCURL: "http://b:8899", HeartbeatEndpoint: "http://hb/b"},
		{Host: "c", RPCURL: "http://c:8899", HeartbeatEndpoint: "http://hb/c"},
	}
	probe := &fakeProber{results: map[string]rpc.HealthResult{
		"http://a:8899": {Healthy: true, Slot: 100, HasSlot: true},
		"http://b:8899": {}, // unhealthy
		"http://c:8899": {Healthy: true},
	}}
	pinger := &recordingPinger{}

	NewChecker(hosts, probe, pinger).RunCycle(context.Background())

	want := []string{"http://hb/a", "http://hb/c"}
	if len(pinger.pinged) != len(want) {
		t.Fatalf("Expected %d pings, got %d: %v", len(want), len(pinger.pinged), pinger.pinged)
	}
	for i, url := range want {
		if pinger.pinged[i] != url {
			t.Errorf("Ping %d: expected %s, got %s", i, url, pinger.pinged[i])
		}
	}
}

func TestChecker_AllUnhealthy_NoPings(t *testing.T) {
	hosts := []config.HostConfig{
		{Host: "a", RPCURL: "http://a:8899", HeartbeatEndpoint: "http://hb/a"},
	}
	probe := &fakeProber{results: map[string]rpc.HealthResult{}}
	pinger := &recordingPinger{}

	NewChecker(hosts, probe, pinger).RunCycle(context.Background())

	if len(pinger.pinged) != 0 {
		t.Errorf("Expected no pings, got %v", pinger.pinged)
	}
}

func TestChecker_PingsOncePerCycle(t *testing.T) {
	hosts := []config.HostConfig{
		{Host: "a", RPCURL: "http://a:8899", HeartbeatEndpoint: "http://hb/a"},
	}
	probe := &fakeProber{results: map[string]rpc.HealthResult{
		"http://a:8899": {Healthy: true},
	}}
	pinger := &recordingPinger{}

	checker := NewChecker(hosts, probe, pinger)
	checker.RunCycle(context.Background())
	checker.RunCycle(context.Background())

	if len(pinger.pinged) != 2 {
		t.Errorf("Expected exactly one ping per cycle, got %d pings over 2 cycles", len(pinger.pinged))
	}
}

// End-to-end cycle against mock HTTP servers: a node answering getHealth
// without an error field triggers a GET on its heartbeat endpoint.
func TestChecker_EndToEnd(t *testing.T) {
	healthyNode := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"jsonrpc":"2.0","result":"ok","id":1}`))
	}))
	defer healthyNode.Close()

	sickNode := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"jsonrpc":"2.0","error":{"code":-1},"id":1}`))
	}))
	defer sickNode.Close()

	var healthyPings, sickPings atomic.Int64
	beat := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		switch r.URL.Path {
		case "/healthy":
			healthyPings.Add(1)
		case "/sick":
			sickPings.Add(1)
		}
	}))
	defer beat.Close()

	hosts := []config.HostConfig{
		{Host: "healthy", RPCURL: healthyNode.URL, HeartbeatEndpoint: beat.URL + "/healthy"},
		{Host: "sick", RPCURL: sickNode.URL, HeartbeatEndpoint: beat.URL + "/sick"},
	}

	checker := NewChecker(hosts, rpc.NewClient(5*time.Second), NewForwarder(5*time.Second))
	checker.RunCycle(context.Background())

	if healthyPings.Load() != 1 {
		t.Errorf("Expected 1 heartbeat for healthy node, got %d", healthyPings.Load())
	}
	if sickPings.Load() != 0 {
		t.Errorf("Expected no heartbeat for sick node, got %d", sickPings.Load())
	}
}

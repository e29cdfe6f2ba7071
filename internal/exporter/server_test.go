package exporter

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestServer_ServesMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewMetrics(registry)
	m.ReferenceSlot.Set(254893021)
	m.NodeSlot.WithLabelValues("validator-1").Set(254893000)

	s := NewServer(registry, 0)
	if err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer s.Stop(context.Background())

	resp, err := http.Get(fmt.Sprintf("http://%s/metrics", s.Addr()))
	if err != nil {
		t.Fatalf("Scrape failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	out := string(body)

	if !strings.Contains(out, "solana_reference_slot_number 2.54893021e+08") {
		t.Errorf("Expected reference slot in scrape output, got:\n%s", out)
	}
	if !strings.Contains(out, `solana_node_slot_number{host="validator-1"}`) {
		t.Errorf("Expected labeled node slot in scrape output, got:\n%s", out)
	}
}

func TestServer_HealthEndpoint(t *testing.T) {
	s := NewServer(prometheus.NewRegistry(), 0)
	if err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer s.Stop(context.Background())

	resp, err := http.Get(fmt.Sprintf("http://%s/health", s.Addr()))
	if err != nil {
		t.Fatalf("Health request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200, got %d", resp.StatusCode)
	}
}

func TestServer_BindConflict(t *testing.T) {
	ln, err := net.Listen("tcp", ":0")
	if err != nil {
		t.Fatalf("Failed to grab a port: %v", err)
	}
	defer ln.Close()
	port := ln.Addr().(*net.TCPAddr).Port

	s := NewServer(prometheus.NewRegistry(), port)
	if err := s.Start(); err == nil {
		s.Stop(context.Background())
		t.Fatal("Expected bind error on occupied port")
	}
}

func TestServer_GracefulStop(t *testing.T) {
	s := NewServer(prometheus.NewRegistry(), 0)
	if err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Stop(ctx); err != nil {
		t.Errorf("Stop failed: %v", err)
	}
}

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"
)

const (
	defaultHeartbeatIntervalSeconds = 30
	defaultExporterIntervalSeconds  = 5
)

// LoadHeartbeat reads the heartbeat configuration from a JSON or YAML file.
func LoadHeartbeat(path string) (*HeartbeatConfig, error) {
	var cfg HeartbeatConfig
	if err := decodeFile(path, &cfg); err != nil {
		return nil, err
	}

	if cfg.PollIntervalSeconds == 0 {
		cfg.PollIntervalSeconds = defaultHeartbeatIntervalSeconds
	}

	if err := validateHosts(cfg.Hosts, true); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadExporter reads the exporter configuration from a JSON or YAML file.
func LoadExporter(path string) (*ExporterConfig, error) {
	var cfg ExporterConfig
	if err := decodeFile(path, &cfg); err != nil {
		return nil, err
	}

	if cfg.PollIntervalSeconds == 0 {
		cfg.PollIntervalSeconds = defaultExporterIntervalSeconds
	}

	if err := validateHosts(cfg.Hosts, false); err != nil {
		return nil, err
	}
	if cfg.ReferenceEndpoint == "" {
		return nil, fmt.Errorf("reference_endpoint is required")
	}
	if cfg.ExporterPort <= 0 || cfg.ExporterPort > 65535 {
		return nil, fmt.Errorf("prometheus_exporter_port %d is invalid", cfg.ExporterPort)
	}

	return &cfg, nil
}

// decodeFile reads path, expands environment variables in its content and
// decodes it into out. The format follows the file extension; anything that
// is not .yaml/.yml is treated as JSON.
func decodeFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := []byte(os.ExpandEnv(string(data)))

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(expanded, out); err != nil {
			return fmt.Errorf("failed to parse config file: %w", err)
		}
	default:
		if err := json.Unmarshal(expanded, out); err != nil {
			return fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	return nil
}

// validateHosts checks that every host entry is usable and that labels are
// unique. Labels are used as metric label values and map keys downstream.
func validateHosts(hosts []HostConfig, needHeartbeat bool) error {
	if len(hosts) == 0 {
		return fmt.Errorf("no hosts configured")
	}

	seen := make(map[string]struct{}, len(hosts))
	for i, h := range hosts {
		if h.Host == "" {
			return fmt.Errorf("hosts[%d]: host label is required", i)
		}
		if h.RPCURL == "" {
			return fmt.Errorf("host %q: rpc_url is required", h.Host)
		}
		if needHeartbeat && h.HeartbeatEndpoint == "" {
			return fmt.Errorf("host %q: heartbeat_endpoint is required", h.Host)
		}
		if _, dup := seen[h.Host]; dup {
			return fmt.Errorf("duplicate host label %q", h.Host)
		}
		seen[h.Host] = struct{}{}
	}

	return nil
}

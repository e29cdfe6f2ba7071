package config

import "time"

// HostConfig describes a single monitored RPC node.
type HostConfig struct {
	Host              string `json:"host"                         yaml:"host"`
	RPCURL            string `json:"rpc_url"                      yaml:"rpc_url"`
	HeartbeatEndpoint string `json:"heartbeat_endpoint,omitempty" yaml:"heartbeat_endpoint,omitempty"`
}

// HeartbeatConfig is the configuration for the heartbeat binary.
type HeartbeatConfig struct {
	Hosts               []HostConfig `json:"hosts"                 yaml:"hosts"`
	PollIntervalSeconds int          `json:"poll_interval_seconds" yaml:"poll_interval_seconds"`
}

// Interval returns the poll interval as a duration.
func (c *HeartbeatConfig) Interval() time.Duration {
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

// ExporterConfig is the configuration for the exporter binary.
type ExporterConfig struct {
	Hosts               []HostConfig `json:"hosts"                    yaml:"hosts"`
	ReferenceEndpoint   string       `json:"reference_endpoint"       yaml:"reference_endpoint"`
	ExporterPort        int          `json:"prometheus_exporter_port" yaml:"prometheus_exporter_port"`
	PollIntervalSeconds int          `json:"poll_interval_seconds"    yaml:"poll_interval_seconds"`
}

// Interval returns the poll interval as a duration.
func (c *ExporterConfig) Interval() time.Duration {
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

// Package config parses the scheduler's JSON configuration. Each configurable
// dependency parses into an empty string or a JSON object with a "Type" field
// selecting the implementation; an unknown type is an error, fatal at startup.
package config

import (
	"encoding/json"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/pkg/errors"

	"github.com/sparrowdev/sparrow/cloud/cluster"
	"github.com/sparrowdev/sparrow/sched/scheduler"
)

const (
	DefaultProbeRatioUnconstrained = 2.0
	DefaultProbeRatioConstrained   = 2.0

	defaultFetchIntervalMs = 1000
)

// Config is the parsed top-level configuration.
type Config struct {
	Cluster   ClusterConfig
	Scheduler scheduler.SchedulerConfig
}

// ClusterConfig creates the cluster-state provider for a deployment mode.
type ClusterConfig interface {
	Create() (cluster.SchedulerState, error)
}

// StandaloneClusterConfig keeps membership in memory, populated by local
// registrations.
type StandaloneClusterConfig struct {
	Type string
}

func (c *StandaloneClusterConfig) Create() (cluster.SchedulerState, error) {
	return cluster.NewStandaloneState(), nil
}

// ConfigBasedClusterConfig serves a static node monitor list.
type ConfigBasedClusterConfig struct {
	Type  string
	Nodes []string
}

func (c *ConfigBasedClusterConfig) Create() (cluster.SchedulerState, error) {
	return cluster.NewStaticState(c.Nodes), nil
}

// ProductionClusterConfig polls an external membership service.
type ProductionClusterConfig struct {
	Type            string
	MembershipURL   string
	FetchIntervalMs int
}

func (c *ProductionClusterConfig) Create() (cluster.SchedulerState, error) {
	if c.MembershipURL == "" {
		return nil, errors.New("production cluster config requires MembershipURL")
	}
	interval := c.FetchIntervalMs
	if interval <= 0 {
		interval = defaultFetchIntervalMs
	}
	retry := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3)
	return cluster.NewDynamicState(
		cluster.NewHTTPFetcher(c.MembershipURL),
		time.Duration(interval)*time.Millisecond,
		retry), nil
}

// Parser holds how to parse the config. For each configurable dependency it
// maps the "Type" value to the config struct to unmarshal into; "" maps to
// the default implementation.
type Parser struct {
	Cluster map[string]ClusterConfig
}

func DefaultParser() *Parser {
	return &Parser{
		Cluster: map[string]ClusterConfig{
			"":            &StandaloneClusterConfig{Type: "standalone"},
			"standalone":  &StandaloneClusterConfig{},
			"configbased": &ConfigBasedClusterConfig{},
			"production":  &ProductionClusterConfig{},
		},
	}
}

type topLevelConfig struct {
	Cluster   json.RawMessage
	Scheduler json.RawMessage
}

type typeConfig struct {
	Type string
}

var emptyJson = []byte("{}")

func parseType(data json.RawMessage) (string, []byte) {
	if len(data) == 0 {
		return "", emptyJson
	}
	var t typeConfig
	if err := json.Unmarshal(data, &t); err != nil {
		return "", emptyJson
	}
	return t.Type, data
}

func (p *Parser) Parse(text []byte) (*Config, error) {
	if len(text) == 0 {
		text = emptyJson
	}
	var top topLevelConfig
	if err := json.Unmarshal(text, &top); err != nil {
		return nil, errors.Wrap(err, "couldn't parse top-level config")
	}

	clusterType, clusterText := parseType(top.Cluster)
	clusterConfig, ok := p.Cluster[clusterType]
	if !ok {
		return nil, errors.Errorf("unsupported deployment mode: %q", clusterType)
	}
	if err := json.Unmarshal(clusterText, clusterConfig); err != nil {
		return nil, errors.Wrapf(err, "error parsing cluster config %q", clusterType)
	}

	schedulerConfig := scheduler.SchedulerConfig{
		DefaultProbeRatioUnconstrained: DefaultProbeRatioUnconstrained,
		DefaultProbeRatioConstrained:   DefaultProbeRatioConstrained,
	}
	if len(top.Scheduler) > 0 {
		if err := json.Unmarshal(top.Scheduler, &schedulerConfig); err != nil {
			return nil, errors.Wrap(err, "error parsing scheduler config")
		}
	}

	return &Config{Cluster: clusterConfig, Scheduler: schedulerConfig}, nil
}

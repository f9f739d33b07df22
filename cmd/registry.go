// cmd/registry.go
package cmd

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aceteam-ai/gobatch/batch"
	"github.com/aceteam-ai/gobatch/internal/queuebridge"
)

// defaultRegistry returns the batch.Registry used by `gobatch run` and
// `gobatch serve` to resolve a job definition's reader/writer "type"
// fields to concrete components.
func defaultRegistry() *batch.Registry {
	reg := batch.NewRegistry()

	reg.RegisterReader("queuebridge.reader", func(raw yaml.Node) (any, error) {
		var cfg struct {
			URL           string `yaml:"url"`
			Password      string `yaml:"password"`
			Stream        string `yaml:"stream"`
			ConsumerGroup string `yaml:"consumerGroup"`
			BlockSeconds  int    `yaml:"blockSeconds"`
		}
		if err := raw.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("queuebridge.reader config: %w", err)
		}
		return queuebridge.NewReader(queuebridge.ReaderConfig{
			URL:           cfg.URL,
			Password:      cfg.Password,
			Stream:        cfg.Stream,
			ConsumerGroup: cfg.ConsumerGroup,
			BlockTimeout:  time.Duration(cfg.BlockSeconds) * time.Second,
		}), nil
	})

	reg.RegisterWriter("queuebridge.writer", func(raw yaml.Node) (any, error) {
		var cfg struct {
			URL          string `yaml:"url"`
			Password     string `yaml:"password"`
			DefaultRoute string `yaml:"defaultRoute"`
		}
		if err := raw.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("queuebridge.writer config: %w", err)
		}
		return queuebridge.NewWriter(queuebridge.WriterConfig{
			URL:          cfg.URL,
			Password:     cfg.Password,
			DefaultRoute: cfg.DefaultRoute,
		}), nil
	})

	return reg
}

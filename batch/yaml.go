package batch

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-version"
	"gopkg.in/yaml.v3"
)

// supportedSchema bounds the job-definition versions this build accepts,
// following the same "gate on an explicit version field" idea as the
// teacher's CitadelManifest, generalized with a real constraint check
// instead of string equality.
var supportedSchema = version.MustConstraints(version.NewConstraint(">= 1.0, < 2.0"))

// ComponentFactory builds a named, pluggable component (a Reader, Writer,
// or Processor) from the raw YAML node under its "with:" key. Components
// referenced from a YAML job definition must be registered by name before
// FromYAML is called; there is no reflection-based default.
type ComponentFactory func(raw yaml.Node) (any, error)

// Registry resolves the reader/writer/processor "type" strings used in a
// YAML job definition to concrete components, mirroring the teacher's
// services package indirection (named service types, resolved at load
// time) rather than baking concrete types into the YAML format itself.
type Registry struct {
	readers    map[string]ComponentFactory
	writers    map[string]ComponentFactory
	processors map[string]ComponentFactory
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		readers:    map[string]ComponentFactory{},
		writers:    map[string]ComponentFactory{},
		processors: map[string]ComponentFactory{},
	}
}

func (r *Registry) RegisterReader(name string, f ComponentFactory)    { r.readers[name] = f }
func (r *Registry) RegisterWriter(name string, f ComponentFactory)    { r.writers[name] = f }
func (r *Registry) RegisterProcessor(name string, f ComponentFactory) { r.processors[name] = f }

// jobDefinition is the declarative YAML shape of spec.md §6's "declarative
// job definitions".
type jobDefinition struct {
	SchemaVersion  string         `yaml:"schemaVersion"`
	Name           string         `yaml:"name"`
	BatchSize      int            `yaml:"batchSize"`
	ErrorThreshold *int           `yaml:"errorThreshold"`
	JMXMonitoring  bool           `yaml:"jmxMonitoring"`
	BatchScanning  bool           `yaml:"batchScanning"`
	Reader         componentRef   `yaml:"reader"`
	Writer         componentRef   `yaml:"writer"`
	Processors     []componentRef `yaml:"processors"`
}

type componentRef struct {
	Type string    `yaml:"type"`
	With yaml.Node `yaml:"with"`
}

// FromYAML loads a job definition from path and applies it to the builder.
func (b *Builder) FromYAML(path string, reg *Registry) *Builder {
	data, err := os.ReadFile(path)
	if err != nil {
		b.setErr(fmt.Errorf("read job definition %s: %w", path, err))
		return b
	}
	return b.FromYAMLBytes(data, reg)
}

// FromYAMLBytes parses raw YAML and applies it to the builder, resolving
// named components against reg. A schemaVersion outside supportedSchema is
// a validation error surfaced from Build.
func (b *Builder) FromYAMLBytes(data []byte, reg *Registry) *Builder {
	var def jobDefinition
	if err := yaml.Unmarshal(data, &def); err != nil {
		b.setErr(fmt.Errorf("parse job definition: %w", err))
		return b
	}

	if err := checkSchemaVersion(def.SchemaVersion); err != nil {
		b.setErr(err)
		return b
	}

	if def.Name != "" {
		b.Named(def.Name)
	}
	if def.BatchSize != 0 {
		b.BatchSize(def.BatchSize)
	}
	if def.ErrorThreshold != nil {
		b.ErrorThreshold(*def.ErrorThreshold)
	}
	if def.JMXMonitoring {
		b.EnableJMX()
	}
	if def.BatchScanning {
		b.EnableBatchScanning()
	}

	if def.Reader.Type != "" {
		r, err := resolveComponent(reg.readers, def.Reader)
		if err != nil {
			b.setErr(err)
			return b
		}
		reader, ok := r.(Reader)
		if !ok {
			b.setErr(fmt.Errorf("job definition: reader %q does not implement batch.Reader", def.Reader.Type))
			return b
		}
		b.Reader(reader)
	}

	if def.Writer.Type != "" {
		w, err := resolveComponent(reg.writers, def.Writer)
		if err != nil {
			b.setErr(err)
			return b
		}
		writer, ok := w.(Writer)
		if !ok {
			b.setErr(fmt.Errorf("job definition: writer %q does not implement batch.Writer", def.Writer.Type))
			return b
		}
		b.Writer(writer)
	}

	for _, ref := range def.Processors {
		p, err := resolveComponent(reg.processors, ref)
		if err != nil {
			b.setErr(err)
			return b
		}
		proc, ok := p.(Processor)
		if !ok {
			b.setErr(fmt.Errorf("job definition: processor %q does not implement batch.Processor", ref.Type))
			return b
		}
		b.Processor(proc)
	}

	return b
}

func resolveComponent(reg map[string]ComponentFactory, ref componentRef) (any, error) {
	factory, ok := reg[ref.Type]
	if !ok {
		return nil, fmt.Errorf("job definition: unregistered component type %q", ref.Type)
	}
	c, err := factory(ref.With)
	if err != nil {
		return nil, fmt.Errorf("job definition: build %q: %w", ref.Type, err)
	}
	return c, nil
}

func checkSchemaVersion(raw string) error {
	if raw == "" {
		return nil
	}
	v, err := version.NewVersion(raw)
	if err != nil {
		return fmt.Errorf("job definition: invalid schemaVersion %q: %w", raw, err)
	}
	if !supportedSchema.Check(v) {
		return fmt.Errorf("job definition: schemaVersion %s is not supported by this build (%s)", raw, supportedSchema)
	}
	return nil
}

package batch

import (
	"context"
	"testing"

	"gopkg.in/yaml.v3"
)

type fakeComponent struct{ tag string }

func (f *fakeComponent) Open(ctx context.Context) error                   { return nil }
func (f *fakeComponent) Close(ctx context.Context) error                  { return nil }
func (f *fakeComponent) ReadRecord(ctx context.Context) (*Record, error)  { return nil, nil }
func (f *fakeComponent) WriteRecords(ctx context.Context, b *Batch) error { return nil }

func testRegistry() *Registry {
	reg := NewRegistry()
	reg.RegisterReader("fake", func(raw yaml.Node) (any, error) {
		var cfg struct {
			Tag string `yaml:"tag"`
		}
		if err := raw.Decode(&cfg); err != nil {
			return nil, err
		}
		return &fakeComponent{tag: cfg.Tag}, nil
	})
	reg.RegisterWriter("fake", func(raw yaml.Node) (any, error) {
		return &fakeComponent{}, nil
	})
	return reg
}

func TestFromYAMLBytesAppliesFields(t *testing.T) {
	doc := []byte(`
schemaVersion: "1.0"
name: nightly-import
batchSize: 25
errorThreshold: 3
jmxMonitoring: true
batchScanning: true
reader:
  type: fake
  with:
    tag: source-a
`)

	job, err := NewBuilder().FromYAMLBytes(doc, testRegistry()).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if job.name != "nightly-import" {
		t.Errorf("name = %q, want %q", job.name, "nightly-import")
	}
	if job.params.BatchSize != 25 {
		t.Errorf("BatchSize = %d, want 25", job.params.BatchSize)
	}
	if job.params.ErrorThreshold != 3 {
		t.Errorf("ErrorThreshold = %d, want 3", job.params.ErrorThreshold)
	}
	if !job.params.JMXMonitoring || !job.params.BatchScanningEnabled {
		t.Error("expected JMXMonitoring and BatchScanningEnabled to be true")
	}
	fc, ok := job.reader.(*fakeComponent)
	if !ok {
		t.Fatalf("reader = %T, want *fakeComponent", job.reader)
	}
	if fc.tag != "source-a" {
		t.Errorf("reader tag = %q, want %q", fc.tag, "source-a")
	}
}

func TestFromYAMLBytesRejectsUnsupportedSchemaVersion(t *testing.T) {
	doc := []byte(`schemaVersion: "9.0"`)
	_, err := NewBuilder().FromYAMLBytes(doc, testRegistry()).Build()
	if err == nil {
		t.Fatal("expected an error for an unsupported schemaVersion")
	}
}

func TestFromYAMLBytesRejectsUnregisteredComponent(t *testing.T) {
	doc := []byte(`
reader:
  type: nonexistent
`)
	_, err := NewBuilder().FromYAMLBytes(doc, testRegistry()).Build()
	if err == nil {
		t.Fatal("expected an error for an unregistered component type")
	}
}

func TestFromYAMLBytesMalformedYAML(t *testing.T) {
	_, err := NewBuilder().FromYAMLBytes([]byte("not: [valid"), testRegistry()).Build()
	if err == nil {
		t.Fatal("expected a parse error")
	}
}

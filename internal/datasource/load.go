package datasource

import (
	"fmt"

	"github.com/vanderheijden86/nodeview/pkg/config"
	"github.com/vanderheijden86/nodeview/pkg/loader"
	"github.com/vanderheijden86/nodeview/pkg/model"
)

// Resolve determines the data source for a source configuration. An explicit
// type wins over detection, but a path is still required for file types.
func Resolve(cfg config.SourceConfig) (DataSource, error) {
	if cfg.Type == "" {
		return Detect(cfg.Path)
	}
	t, err := ParseSourceType(cfg.Type)
	if err != nil {
		return DataSource{}, err
	}
	if t == SourceTypeSample {
		return DataSource{Type: SourceTypeSample}, nil
	}
	if cfg.Path == "" {
		return DataSource{}, fmt.Errorf("source type %s requires a path", t)
	}
	return DataSource{Type: t, Path: cfg.Path}, nil
}

// NewProducer resolves cfg and returns a producer for it. The sample
// configuration is used only by the sample generator.
func NewProducer(cfg config.SourceConfig, sample config.SampleConfig) (loader.Producer, DataSource, error) {
	src, err := Resolve(cfg)
	if err != nil {
		return nil, DataSource{}, err
	}
	p, err := ProducerFor(src, sample)
	if err != nil {
		return nil, DataSource{}, err
	}
	return p, src, nil
}

// ProducerFor returns a producer for a resolved source.
func ProducerFor(src DataSource, sample config.SampleConfig) (loader.Producer, error) {
	switch src.Type {
	case SourceTypeSample:
		return loader.NewSampleGenerator(sample), nil
	case SourceTypeJSON:
		return loader.FileProducer{Path: src.Path, Format: loader.FormatJSON}, nil
	case SourceTypeYAML:
		return loader.FileProducer{Path: src.Path, Format: loader.FormatYAML}, nil
	case SourceTypeDir:
		return loader.DirProducer{Dir: src.Path}, nil
	case SourceTypeSQLite:
		return loader.ProducerFunc(func() (model.Hierarchy, error) {
			return LoadFromSource(src)
		}), nil
	default:
		return nil, fmt.Errorf("unknown source type: %s", src.Type)
	}
}

// LoadFromSource reads one snapshot from a SQLite source.
func LoadFromSource(src DataSource) (model.Hierarchy, error) {
	reader, err := NewSQLiteReader(src)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite source %s: %w", src.Path, err)
	}
	defer reader.Close()
	return reader.LoadHierarchy()
}

package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/weekgrid/pkg/observability"
	"github.com/matzehuels/weekgrid/pkg/schedule"
	"github.com/matzehuels/weekgrid/pkg/timetable"
)

// Load decodes document bytes and merges the configured default colours.
func Load(ctx context.Context, data []byte, opts Options) (*schedule.Document, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}
	format := schedule.Format(opts.DocumentFormat)

	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, opts.DocumentFormat, len(data))
	start := time.Now()

	doc, err := schedule.Parse(data, format)
	hooks.OnLoadComplete(ctx, opts.DocumentFormat, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	if len(opts.DefaultColors) > 0 {
		doc = doc.WithDefaultColors(opts.DefaultColors)
	}
	return doc, nil
}

// Compile loads and compiles document bytes without caching.
func Compile(ctx context.Context, data []byte, opts Options) (*timetable.Result, error) {
	doc, err := Load(ctx, data, opts)
	if err != nil {
		return nil, err
	}
	return timetable.Compile(doc)
}

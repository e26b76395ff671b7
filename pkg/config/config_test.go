package config

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/matzehuels/weekgrid/pkg/cache"
	errs "github.com/matzehuels/weekgrid/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
[cache]
backend = "none"

[render]
formats = ["svg", "xlsx"]
title = "Grade 4"

[server]
addr = "127.0.0.1:9000"

[colors]
Math = "lightgreen"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Cache.Backend != BackendNone {
		t.Errorf("Backend = %q, want none", cfg.Cache.Backend)
	}
	if !reflect.DeepEqual(cfg.Render.Formats, []string{"svg", "xlsx"}) {
		t.Errorf("Formats = %v", cfg.Render.Formats)
	}
	if cfg.Render.Title != "Grade 4" || cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("Render/Server = %+v %+v", cfg.Render, cfg.Server)
	}
	if cfg.Colors["Math"] != "lightgreen" {
		t.Errorf("Colors = %v", cfg.Colors)
	}
	// Values the file leaves out keep their defaults.
	if cfg.Render.Scale != Default().Render.Scale {
		t.Errorf("Scale = %v, want default", cfg.Render.Scale)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, "[render]\ntitle = \"from file\"\n")
	t.Setenv("WEEKGRID_TITLE", "from env")
	t.Setenv("WEEKGRID_FORMATS", "json,txt")
	t.Setenv("WEEKGRID_REDIS_DB", "3")
	t.Setenv("WEEKGRID_ADDR", ":9999")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Render.Title != "from env" {
		t.Errorf("Title = %q, want env value", cfg.Render.Title)
	}
	if !reflect.DeepEqual(cfg.Render.Formats, []string{"json", "txt"}) {
		t.Errorf("Formats = %v", cfg.Render.Formats)
	}
	if cfg.Cache.RedisDB != 3 || cfg.Server.Addr != ":9999" {
		t.Errorf("RedisDB = %d, Addr = %q", cfg.Cache.RedisDB, cfg.Server.Addr)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad toml", "[cache\n"},
		{"unknown backend", "[cache]\nbackend = \"memcached\"\n"},
		{"unknown format", "[render]\nformats = [\"gif\"]\n"},
		{"negative scale", "[render]\nscale = -2.0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("Load() expected error")
			}
			if errs.GetCode(err) == "" {
				t.Errorf("error should carry a code: %v", err)
			}
		})
	}
}

func TestPipelineOptions(t *testing.T) {
	cfg := Default()
	cfg.Render.Title = "Week"
	cfg.Colors["Art"] = "pink"

	opts := cfg.PipelineOptions()
	if opts.Title != "Week" || opts.DefaultColors["Art"] != "pink" {
		t.Errorf("PipelineOptions() = %+v", opts)
	}

	opts.Formats[0] = "changed"
	opts.DefaultColors["Art"] = "changed"
	if cfg.Render.Formats[0] == "changed" || cfg.Colors["Art"] == "changed" {
		t.Error("PipelineOptions must copy slices and maps")
	}
}

func TestOpenCache(t *testing.T) {
	ctx := context.Background()

	cfg := Default()
	cfg.Cache.Backend = BackendNone
	c, err := cfg.OpenCache(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.(cache.NullCache); !ok {
		t.Errorf("none backend = %T, want NullCache", c)
	}

	cfg.Cache.Backend = BackendFile
	cfg.Cache.Dir = t.TempDir()
	c, err = cfg.OpenCache(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	fc, ok := c.(*cache.FileCache)
	if !ok || fc.Dir() != cfg.Cache.Dir {
		t.Errorf("file backend = %T", c)
	}
}

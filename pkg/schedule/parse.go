package schedule

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/weekgrid/pkg/clock"
	errs "github.com/matzehuels/weekgrid/pkg/errors"
)

// Format identifies the text encoding of a document.
type Format string

// Supported document formats.
const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// Document keys, matched case-insensitively.
const (
	keyStart      = "start"
	keyEnd        = "end"
	keyColors     = "colors"
	keyInvariants = "invariants"
	keyBlock      = "block"
	keyTime       = "time"
)

// FormatFromPath picks a format from a file extension. Anything that is not
// .toml or .json is treated as YAML.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".json":
		return FormatJSON
	default:
		return FormatYAML
	}
}

// ParseFormat validates a format name. The empty string selects YAML.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "", "yml":
		return FormatYAML, nil
	case FormatYAML, FormatTOML, FormatJSON:
		return f, nil
	default:
		return "", errs.New(errs.ErrCodeInvalidFormat, "unknown document format: %q (must be yaml, toml or json)", s)
	}
}

// ParseFile reads and parses the document at path, choosing the decoder from
// the file extension.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "document not found: %s", path)
	}
	if err != nil {
		return nil, err
	}
	return Parse(data, FormatFromPath(path))
}

// Parse decodes data in the given format into a Document.
//
// The returned Document shares no memory with data.
func Parse(data []byte, format Format) (*Document, error) {
	raw, err := decode(data, format)
	if err != nil {
		return nil, err
	}
	return build(raw)
}

func decode(data []byte, format Format) (map[string]any, error) {
	var raw map[string]any
	var err error

	switch format {
	case FormatYAML, "":
		err = yaml.Unmarshal(data, &raw)
	case FormatTOML:
		err = toml.Unmarshal(data, &raw)
	case FormatJSON:
		if len(bytes.TrimSpace(data)) == 0 {
			break
		}
		err = json.Unmarshal(data, &raw)
	default:
		return nil, errs.New(errs.ErrCodeInvalidFormat, "unknown document format: %q", format)
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeDocumentShape, err, "cannot decode %s document", formatName(format))
	}
	return raw, nil
}

func formatName(f Format) string {
	if f == "" {
		return string(FormatYAML)
	}
	return string(f)
}

// build converts the decoded generic tree into a typed Document.
func build(raw map[string]any) (*Document, error) {
	doc := &Document{
		Days:   make(map[clock.Weekday][]Entry),
		Colors: make(map[string]string),
	}

	var err error
	if doc.Start, err = requiredString(raw, keyStart, "Start"); err != nil {
		return nil, err
	}
	if doc.End, err = requiredString(raw, keyEnd, "End"); err != nil {
		return nil, err
	}

	if v, ok := lookup(raw, keyColors); ok && v != nil {
		if doc.Colors, err = buildColors(v); err != nil {
			return nil, err
		}
	}

	if v, ok := lookup(raw, keyInvariants); ok && v != nil {
		if doc.Invariants, err = buildEntries(v, "Invariants"); err != nil {
			return nil, err
		}
	}

	// Sorted keys keep error reporting deterministic when several days are bad.
	for _, key := range sortedKeys(raw) {
		day, ok := clock.ParseWeekday(key)
		if !ok || raw[key] == nil {
			continue
		}
		entries, err := buildEntries(raw[key], day.String())
		if err != nil {
			return nil, err
		}
		doc.Days[day] = append(doc.Days[day], entries...)
	}

	return doc, nil
}

func requiredString(m map[string]any, key, field string) (string, error) {
	v, ok := lookup(m, key)
	if !ok || v == nil {
		return "", errs.New(errs.ErrCodeDocumentShape, "missing required field %s", field).WithField(field, "")
	}
	s, ok := scalar(v)
	if !ok || strings.TrimSpace(s) == "" {
		return "", errs.New(errs.ErrCodeDocumentShape, "field %s must be a time string", field).WithField(field, fmt.Sprint(v))
	}
	return s, nil
}

func buildColors(v any) (map[string]string, error) {
	m, ok := asMap(v)
	if !ok {
		return nil, errs.New(errs.ErrCodeDocumentShape, "Colors must be a mapping").WithField("Colors", fmt.Sprint(v))
	}
	colors := make(map[string]string, len(m))
	for k, c := range m {
		s, ok := scalar(c)
		if !ok {
			field := "Colors." + k
			return nil, errs.New(errs.ErrCodeDocumentShape, "colour %s must be a string", k).WithField(field, fmt.Sprint(c))
		}
		colors[k] = s
	}
	return colors, nil
}

func buildEntries(v any, path string) ([]Entry, error) {
	items, ok := asList(v)
	if !ok {
		return nil, errs.New(errs.ErrCodeDocumentShape, "%s must be a list of entries", path).WithField(path, fmt.Sprint(v))
	}

	entries := make([]Entry, 0, len(items))
	for i, item := range items {
		e, err := buildEntry(item, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func buildEntry(v any, path string) (Entry, error) {
	m, ok := asMap(v)
	if !ok {
		return Entry{}, errs.New(errs.ErrCodeDocumentShape, "%s must be a mapping with Block and Time", path).WithField(path, fmt.Sprint(v))
	}

	e := Entry{Path: path}
	block, ok := lookup(m, keyBlock)
	if !ok || block == nil {
		return Entry{}, errs.New(errs.ErrCodeDocumentShape, "%s is missing Block", path).WithField(path+".Block", "")
	}
	if e.Block, ok = scalar(block); !ok || e.Block == "" {
		return Entry{}, errs.New(errs.ErrCodeDocumentShape, "%s.Block must be a name", path).WithField(path+".Block", fmt.Sprint(block))
	}

	if t, ok := lookup(m, keyTime); ok && t != nil {
		text, ok := scalar(t)
		if !ok {
			return Entry{}, errs.New(errs.ErrCodeDocumentShape, "%s.Time must be a string", path).WithField(path+".Time", fmt.Sprint(t))
		}
		from, to, found := strings.Cut(text, "-")
		if !found {
			return Entry{}, errs.New(errs.ErrCodeMalformedTime, "Invalid time format: %s", text).WithField(path+".Time", text)
		}
		e.Time = strings.TrimSpace(text)
		e.Start = strings.TrimSpace(from)
		e.End = strings.TrimSpace(to)
		return e, nil
	}

	start, hasStart := lookup(m, keyStart)
	end, hasEnd := lookup(m, keyEnd)
	if !hasStart || !hasEnd || start == nil || end == nil {
		return Entry{}, errs.New(errs.ErrCodeDocumentShape, "%s needs Time or Start and End", path).WithField(path, "")
	}
	if e.Start, ok = scalar(start); !ok {
		return Entry{}, errs.New(errs.ErrCodeDocumentShape, "%s.Start must be a string", path).WithField(path+".Start", fmt.Sprint(start))
	}
	if e.End, ok = scalar(end); !ok {
		return Entry{}, errs.New(errs.ErrCodeDocumentShape, "%s.End must be a string", path).WithField(path+".End", fmt.Sprint(end))
	}
	return e, nil
}

// =============================================================================
// Generic tree helpers
// =============================================================================

// lookup finds key in m, preferring an exact match over a case-insensitive one.
func lookup(m map[string]any, key string) (any, bool) {
	if v, ok := m[key]; ok {
		return v, true
	}
	for _, k := range sortedKeys(m) {
		if strings.EqualFold(k, key) {
			return m[k], true
		}
	}
	return nil, false
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// scalar renders strings, numbers and booleans as text. Maps and lists report false.
func scalar(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val), true
	case int, int64, uint64, float64, bool:
		return fmt.Sprint(val), true
	}
	return "", false
}

// asMap accepts the mapping types produced by the YAML, TOML and JSON decoders.
func asMap(v any) (map[string]any, bool) {
	switch val := v.(type) {
	case map[string]any:
		return val, true
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[fmt.Sprint(k)] = item
		}
		return out, true
	}
	return nil, false
}

// asList accepts the sequence types produced by the YAML, TOML and JSON decoders.
func asList(v any) ([]any, bool) {
	switch val := v.(type) {
	case []any:
		return val, true
	case []map[string]any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = item
		}
		return out, true
	}
	return nil, false
}

package cache

import "strings"

// Key namespaces.
const (
	prefixTimetable = "weekgrid:timetable"
	prefixArtifact  = "weekgrid:artifact"
)

// Keyer derives cache keys for each pipeline stage.
type Keyer interface {
	// TimetableKey keys a compiled grid by the hash of the document bytes
	// and the colour defaults merged into it.
	TimetableKey(documentHash string, opts TimetableKeyOpts) string

	// ArtifactKey keys a rendered output by the hash of the compiled grid.
	ArtifactKey(timetableHash string, opts ArtifactKeyOpts) string
}

// TimetableKeyOpts holds the compile inputs besides the document itself.
type TimetableKeyOpts struct {
	Format        string            `json:"format"`
	DefaultColors map[string]string `json:"default_colors,omitempty"`
}

// ArtifactKeyOpts holds the render options that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format  string  `json:"format"`
	Title   string  `json:"title,omitempty"`
	Summary bool    `json:"summary"`
	Scale   float64 `json:"scale,omitempty"`
}

// DefaultKeyer produces "weekgrid:<stage>:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// TimetableKey implements Keyer.
func (DefaultKeyer) TimetableKey(documentHash string, opts TimetableKeyOpts) string {
	return hashKey(prefixTimetable, documentHash, strings.ToLower(opts.Format), opts.DefaultColors)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(timetableHash string, opts ArtifactKeyOpts) string {
	return hashKey(prefixArtifact, timetableHash, opts)
}

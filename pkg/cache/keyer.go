package cache

// ArtifactKeyOpts are the inputs that determine an artifact's bytes.
type ArtifactKeyOpts struct {
	Header    string  `json:"header"`
	Start     int     `json:"start"`
	Count     int     `json:"count"`
	Format    string  `json:"format"`
	Preset    string  `json:"preset"` // the JSON manifest records it
	Canvas    string  `json:"canvas"`
	Resize    bool    `json:"resize"`
	Geometry  string  `json:"geometry"` // hash of the grid geometry
	Font      string  `json:"font"`     // preferred or fallback
	Version   string  `json:"version"`  // build that rendered the artifact
	Title     string  `json:"title,omitempty"`
	CutGuides bool    `json:"cut_guides,omitempty"`
	Page      int     `json:"page,omitempty"`
	Scale     float64 `json:"scale,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey returns the key for one rendered output.
	ArtifactKey(opts ArtifactKeyOpts) string
}

// DefaultKeyer produces unscoped keys of the form "artifact:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey hashes every field of opts.
func (DefaultKeyer) ArtifactKey(opts ArtifactKeyOpts) string {
	return hashKey("artifact", opts)
}

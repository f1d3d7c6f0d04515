package template

// TemplateSchema is the on-disk template format. Files may be JSON or YAML.
type TemplateSchema struct {
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Steps       []StepConfig `json:"steps"`
}

type StepConfig struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	// Sequence defaults to the 1-based position in the steps list.
	Sequence   *int     `json:"sequence,omitempty"`
	Basis      string   `json:"basis"` // "goal" or "prev"
	OffsetDays int      `json:"offset_days"`
	DependsOn  []string `json:"depends_on,omitempty"`
}

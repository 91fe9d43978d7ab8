package config

// Output formats accepted by [output] format and --output.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// DefaultConcurrency bounds how many input files are parsed at once.
const DefaultConcurrency = 4

// NewDefaults returns a Config populated with all default values.
func NewDefaults() *Config {
	return &Config{
		Input: InputConfig{
			Concurrency: DefaultConcurrency,
		},
		Hierarchy: HierarchyConfig{
			Locale:      "und",
			CyclePolicy: "detach",
		},
		View: ViewConfig{
			Departments: []string{},
		},
		Output: OutputConfig{
			Format: OutputText,
		},
	}
}

package config

// Config is the top-level configuration structure mapping to orgtree.toml.
type Config struct {
	Input     InputConfig     `toml:"input"`
	Columns   ColumnsConfig   `toml:"columns"`
	Hierarchy HierarchyConfig `toml:"hierarchy"`
	View      ViewConfig      `toml:"view"`
	Output    OutputConfig    `toml:"output"`
}

// InputConfig maps to the [input] section. Empty Format and Delimiter mean
// "decide from the file extension".
type InputConfig struct {
	Format      string `toml:"format"`
	Delimiter   string `toml:"delimiter"`
	Sheet       string `toml:"sheet"`
	Concurrency int    `toml:"concurrency"`
}

// ColumnsConfig maps to the [columns] section: the source header to use for
// each canonical field. Empty entries are auto-detected.
type ColumnsConfig struct {
	EmployeeID string `toml:"employee_id"`
	FullName   string `toml:"full_name"`
	Title      string `toml:"title"`
	Department string `toml:"department"`
	ManagerID  string `toml:"manager_id"`
	Email      string `toml:"email"`
	Location   string `toml:"location"`
	PhotoURL   string `toml:"photo_url"`
}

// HierarchyConfig maps to the [hierarchy] section.
type HierarchyConfig struct {
	Locale      string `toml:"locale"`
	CyclePolicy string `toml:"cycle_policy"`
}

// ViewConfig maps to the [view] section: the default view predicates.
type ViewConfig struct {
	Departments []string `toml:"departments"`
	Query       string   `toml:"query"`
}

// OutputConfig maps to the [output] section.
type OutputConfig struct {
	Format string `toml:"format"`
}

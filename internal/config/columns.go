package config

// ColumnKeys lists the [columns] keys in canonical field order.
var ColumnKeys = []string{
	"employee_id",
	"full_name",
	"title",
	"department",
	"manager_id",
	"email",
	"location",
	"photo_url",
}

func (c *ColumnsConfig) fields() map[string]*string {
	return map[string]*string{
		"employee_id": &c.EmployeeID,
		"full_name":   &c.FullName,
		"title":       &c.Title,
		"department":  &c.Department,
		"manager_id":  &c.ManagerID,
		"email":       &c.Email,
		"location":    &c.Location,
		"photo_url":   &c.PhotoURL,
	}
}

// Get returns the header configured for key, or "" when unset or unknown.
func (c *ColumnsConfig) Get(key string) string {
	if p, ok := c.fields()[key]; ok {
		return *p
	}
	return ""
}

// Set assigns the header for key. It reports false for unknown keys.
func (c *ColumnsConfig) Set(key, header string) bool {
	p, ok := c.fields()[key]
	if ok {
		*p = header
	}
	return ok
}

// Overrides returns the non-empty entries keyed by column key.
func (c *ColumnsConfig) Overrides() map[string]string {
	out := make(map[string]string)
	for _, key := range ColumnKeys {
		if v := c.Get(key); v != "" {
			out[key] = v
		}
	}
	return out
}

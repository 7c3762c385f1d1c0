package attorney

// Attorney is a staff attorney eligible for case assignment. Reference data
// maintained outside this service; we only read it.
type Attorney struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Office string `json:"office,omitempty"`
}

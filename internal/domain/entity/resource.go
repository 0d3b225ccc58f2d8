package entity

// ResourceSummary é a visão achatada de um recurso usada nas lições de
// pipeline: um item por recurso, pronto para filtrar, mapear e agrupar.
type ResourceSummary struct {
	ID     string            `json:"id"`
	Name   string            `json:"name"`
	Type   string            `json:"type"`
	Region string            `json:"region"`
	State  string            `json:"state"`
	Tags   map[string]string `json:"tags,omitempty"`
}

// TagCount returns how many tags the resource carries.
func (r ResourceSummary) TagCount() int {
	return len(r.Tags)
}

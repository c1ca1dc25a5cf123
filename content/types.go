package content

// Section is one navigable block of the page
type Section struct {
	ID    string   `yaml:"id"`
	Title string   `yaml:"title"`
	Body  string   `yaml:"body"`
	Items []string `yaml:"items,omitempty"`
}

// Document is the page content
// Generation increments on each successful load so consumers can detect swaps
type Document struct {
	Name     string    `yaml:"name"`
	Headline string    `yaml:"headline"`
	Taglines []string  `yaml:"taglines"`
	Sections []Section `yaml:"sections"`

	Generation int64 `yaml:"-"`
}

// SectionIDs returns section ids in document order
func (d *Document) SectionIDs() []string {
	ids := make([]string, len(d.Sections))
	for i, s := range d.Sections {
		ids[i] = s.ID
	}
	return ids
}

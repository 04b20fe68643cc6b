package spec

import "strings"

// Section is one named division of the output document. Order defines the
// table of contents and the 1-based heading numbering.
type Section struct {
	Title string `json:"title" yaml:"title"`
}

// ContentEntry is the raw text associated with one section, matched to a
// Section by case-insensitive, trimmed name equality.
type ContentEntry struct {
	SectionName string `json:"section_name" yaml:"section_name"`
	Content     string `json:"content" yaml:"content"`
}

// Payload is the full input for one document build.
type Payload struct {
	Title    string         `json:"title,omitempty" yaml:"title,omitempty"`
	Sections []Section      `json:"sections" yaml:"sections"`
	Content  []ContentEntry `json:"content" yaml:"content"`
}

// FindSectionContent returns the content for the first entry whose name
// matches title, ignoring case and surrounding whitespace. A miss returns
// ("", false) and renders as an empty section.
func FindSectionContent(entries []ContentEntry, title string) (string, bool) {
	want := normalizeTitle(title)
	for _, e := range entries {
		if normalizeTitle(e.SectionName) == want {
			return e.Content, true
		}
	}
	return "", false
}

func normalizeTitle(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

package envprofile

import "strings"

// Entry is a single KEY=value assignment.
type Entry struct {
	Key   string
	Value string

	// Quoted wraps the value in double quotes when rendered.
	Quoted bool
}

func (e Entry) String() string {
	if e.Quoted {
		return e.Key + `="` + e.Value + `"`
	}
	return e.Key + "=" + e.Value
}

// Section is a titled group of entries.
type Section struct {
	Title   string
	Entries []Entry
}

// Document is an ordered sequence of sections.
type Document struct {
	Sections []Section
}

// Render formats the document: every section starts with a "# Title"
// comment line, sections are separated by one blank line and the output
// ends with a newline.
func (d *Document) Render() []byte {
	return []byte(d.String())
}

func (d *Document) String() string {
	var b strings.Builder
	for i, s := range d.Sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("# ")
		b.WriteString(s.Title)
		b.WriteString("\n")
		for _, e := range s.Entries {
			b.WriteString(e.String())
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Section returns the section with the given title.
func (d *Document) Section(title string) (Section, bool) {
	for _, s := range d.Sections {
		if s.Title == title {
			return s, true
		}
	}
	return Section{}, false
}

// Titles returns the section titles in order.
func (d *Document) Titles() []string {
	titles := make([]string, 0, len(d.Sections))
	for _, s := range d.Sections {
		titles = append(titles, s.Title)
	}
	return titles
}

// Entries returns all entries across sections in document order.
func (d *Document) Entries() []Entry {
	var entries []Entry
	for _, s := range d.Sections {
		entries = append(entries, s.Entries...)
	}
	return entries
}

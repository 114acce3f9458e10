package blocksinfo

import (
	"fmt"
	"strings"
)

// Layout is the column template derived from the active fields.
type Layout struct {
	fields   []Field
	template string
}

// NewLayout computes the row template for fields. Columns are separated by one
// space except where squeeze and group rules bind neighbours together.
func NewLayout(fields []Field) *Layout {
	var b strings.Builder
	for i, f := range fields {
		lead, trail := " ", " "
		if lsqueeze[f] || lsqueeze2[f] {
			lead = ""
		}
		if rsqueeze[f] {
			trail = ""
		}
		if i+1 < len(fields) && lsqueeze2[fields[i+1]] {
			trail = ""
		}
		if i > 0 && sharesGroup(fields[i-1], f) {
			lead = ""
		}
		b.WriteString(lead)
		b.WriteString(verb(catalog[f].Column))
		b.WriteString(trail)
	}
	return &Layout{
		fields:   append([]Field(nil), fields...),
		template: strings.TrimSpace(b.String()),
	}
}

func sharesGroup(a, b Field) bool {
	for _, g := range groups {
		if g[a] && g[b] {
			return true
		}
	}
	return false
}

func verb(c Column) string {
	if c.Align == AlignLeft {
		return fmt.Sprintf("%%-%ds", c.Width)
	}
	return fmt.Sprintf("%%%ds", c.Width)
}

// Fields returns the active fields in column order.
func (l *Layout) Fields() []Field {
	return l.fields
}

// Template returns the fmt template for one line.
func (l *Layout) Template() string {
	return l.template
}

// Format renders one line from values given in column order.
func (l *Layout) Format(values []string) string {
	args := make([]any, len(l.fields))
	for i := range args {
		if i < len(values) {
			args[i] = values[i]
		} else {
			args[i] = ""
		}
	}
	return fmt.Sprintf(l.template, args...)
}

// FormatKeyed renders one line from values keyed by field. Columns without a
// value are filled with fill across their width.
func (l *Layout) FormatKeyed(values map[Field]string, fill rune) string {
	row := make([]string, len(l.fields))
	for i, f := range l.fields {
		v, ok := values[f]
		if !ok {
			v = strings.Repeat(string(fill), catalog[f].Column.Width)
		}
		row[i] = v
	}
	return l.Format(row)
}

// Header returns the header lines. The top line is omitted when all of its labels are blank.
func (l *Layout) Header() []string {
	top := make([]string, len(l.fields))
	bottom := make([]string, len(l.fields))
	for i, f := range l.fields {
		top[i] = catalog[f].Header1
		bottom[i] = catalog[f].Header2
	}
	var lines []string
	if strings.TrimSpace(strings.Join(top, "")) != "" {
		lines = append(lines, l.Format(top))
	}
	return append(lines, l.Format(bottom))
}

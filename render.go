package filmcard

import (
	"strings"
)

// LineSeparator joins the rendered templates of one output line.
const LineSeparator = "  "

// LineSpec lists output lines, each an ordered list of template names.
type LineSpec [][]string

// ParseLineSpec parses a line specification such as "name,year;description".
// Lines are separated by ";" and template names within a line by ",".
// Surrounding whitespace is ignored and empty names and lines are dropped.
func ParseLineSpec(s string) LineSpec {
	var spec LineSpec
	for _, line := range strings.Split(s, ";") {
		var names []string
		for _, name := range strings.Split(line, ",") {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}
		if len(names) > 0 {
			spec = append(spec, names)
		}
	}
	return spec
}

// String returns s in the form accepted by ParseLineSpec.
func (s LineSpec) String() string {
	lines := make([]string, len(s))
	for i, names := range s {
		lines[i] = strings.Join(names, ",")
	}
	return strings.Join(lines, ";")
}

// Render produces the output lines for rec.
//
// Each template name is looked up in formats and its %(field)s
// placeholders are filled from rec. A template is skipped when its format
// is missing or malformed, or when it references a field rec does not
// hold. Surviving templates of a line are joined with LineSeparator and a
// line with no survivors is omitted. Line and template order is preserved.
func Render(rec *Record, spec LineSpec, formats map[string]string) []string {
	var out []string
	for _, names := range spec {
		parts := make([]string, 0, len(names))
		for _, name := range names {
			format, ok := formats[name]
			if !ok {
				continue
			}
			s, ok := RenderTemplate(format, rec)
			if !ok {
				continue
			}
			parts = append(parts, s)
		}
		if len(parts) > 0 {
			out = append(out, strings.Join(parts, LineSeparator))
		}
	}
	return out
}

// RenderTemplate substitutes rec's fields into format. Placeholders take
// the form %(field)s and %% yields a literal percent sign. It reports false
// if format is malformed or references a field absent from rec.
func RenderTemplate(format string, rec *Record) (string, bool) {
	var b strings.Builder
	b.Grow(len(format))

	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' {
			b.WriteByte(c)
			continue
		}

		rest := format[i+1:]
		switch {
		case strings.HasPrefix(rest, "%"):
			b.WriteByte('%')
			i++
		case strings.HasPrefix(rest, "("):
			end := strings.Index(rest, ")s")
			if end < 0 {
				return "", false
			}
			v, ok := rec.Lookup(rest[1:end])
			if !ok {
				return "", false
			}
			b.WriteString(v)
			i += end + 2
		default:
			return "", false
		}
	}
	return b.String(), true
}

// Placeholders returns the field names referenced by format in order of
// appearance. Malformed placeholders are ignored.
func Placeholders(format string) []string {
	var names []string
	for i := 0; i < len(format); i++ {
		if format[i] != '%' {
			continue
		}
		rest := format[i+1:]
		if strings.HasPrefix(rest, "%") {
			i++
			continue
		}
		if !strings.HasPrefix(rest, "(") {
			continue
		}
		end := strings.Index(rest, ")s")
		if end < 0 {
			break
		}
		names = append(names, rest[1:end])
		i += end + 2
	}
	return names
}

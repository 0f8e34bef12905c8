package geodesy

import "strings"

// IsGYS reports whether a definition string is written in Geodetic YAML
// Shorthand rather than block YAML, following gys_to_yaml's heuristics:
// a whitespace-wrapped pipe, a leading/trailing pipe, square-bracket
// wrapping, or simply the absence of a trailing colon on the first
// token (a block YAML definition's first token is its id followed by
// ':').
func IsGYS(def string) bool {
	if strings.Contains(def, " | ") {
		return true
	}
	if strings.HasPrefix(def, "|") || strings.HasSuffix(def, "|") {
		return true
	}
	if strings.HasPrefix(def, "[") {
		return strings.HasSuffix(def, "]")
	}
	if strings.HasSuffix(def, "]") {
		return strings.HasPrefix(def, "[")
	}
	first := def
	if i := strings.IndexAny(def, " \t\n"); i >= 0 {
		first = def[:i]
	}
	return !strings.HasSuffix(first, ":")
}

// GysResource is a GYS definition decomposed into its id (the first
// operator name), its docstring (lines starting with "##"), and its
// ordered, comment-stripped, whitespace-normalized steps, ready for
// further per-step tokenizing by splitIntoParameters.
type GysResource struct {
	ID      string
	Doc     string
	Steps   []string
	Globals []KV
}

// NewGysResource parses definition, stripping "#" line and inline
// comments and collecting "##" docstring lines, and splits what remains
// on "|" into individual step strings.
func NewGysResource(definition string, globals []KV) *GysResource {
	all := strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(definition, "\r\n", "\n"), "\r", "\n"))

	id := "UNKNOWN"
	if fields := strings.Fields(all); len(fields) > 0 {
		id = fields[0]
	}

	var trimmed []string
	var docstring []string
	for _, line := range strings.Split(all, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "##") {
			docstring = append(docstring, strings.TrimRight((line+"    ")[3:], " \t"))
			continue
		}
		before, _, _ := strings.Cut(line, "#")
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		trimmed = append(trimmed, strings.TrimSpace(before))
	}

	doc := strings.TrimSpace(strings.Join(docstring, "\n"))
	joined := strings.ReplaceAll(strings.Join(trimmed, " "), "\n", " ")

	var steps []string
	for _, step := range strings.Split(joined, "|") {
		step = strings.TrimSpace(step)
		if step == "" {
			continue
		}
		fields := strings.Fields(step)
		step = strings.ReplaceAll(strings.Join(fields, " "), ": ", ":")
		steps = append(steps, step)
	}

	return &GysResource{ID: id, Doc: doc, Steps: steps, Globals: globals}
}

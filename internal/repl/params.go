package repl

import "regexp"

var (
	// quotedStringPattern matches single-quoted literals, which are removed
	// before parameter extraction so placeholder-like text inside strings
	// is ignored.
	quotedStringPattern = regexp.MustCompile(`'[^']+'`)

	// queryParamPattern matches a named placeholder: a colon followed by
	// one or more of [a-z0-9_.].
	queryParamPattern = regexp.MustCompile(`:([a-z0-9_.]+)`)
)

// ExtractParams returns the named placeholders in the raw query, in order
// of appearance. Duplicates are preserved; each occurrence prompts
// separately (see the package note on deduplication).
func ExtractParams(raw string) []string {
	clean := quotedStringPattern.ReplaceAllString(raw, "")
	matches := queryParamPattern.FindAllStringSubmatch(clean, -1)

	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}
	return names
}

// PromptParams requests a value for each name, in order, via the blocking
// prompt function. When a name repeats, the last entered value wins.
func PromptParams(names []string, prompt func(name string) (string, error)) (map[string]string, error) {
	params := make(map[string]string, len(names))
	for _, name := range names {
		value, err := prompt(name)
		if err != nil {
			return nil, err
		}
		params[name] = value
	}
	return params, nil
}

package exec

import "strings"

// bindNamed rewrites :name placeholders to the driver's positional
// placeholders and returns the argument list in placeholder order. Text
// inside single-quoted literals is copied verbatim, matching the parameter
// extractor's view of the statement. Names absent from params are bound as
// empty strings rather than dropped, so the argument count always matches
// the placeholder count.
func bindNamed(query string, params map[string]string, placeholder func(int) string) (string, []any) {
	var (
		out      strings.Builder
		args     []any
		inQuote  bool
		i        int
		n        = len(query)
		position int
	)

	for i < n {
		c := query[i]

		if inQuote {
			out.WriteByte(c)
			if c == '\'' {
				inQuote = false
			}
			i++
			continue
		}

		switch {
		case c == '\'':
			inQuote = true
			out.WriteByte(c)
			i++
		case c == ':':
			start := i + 1
			j := start
			for j < n && isParamChar(query[j]) {
				j++
			}
			if j == start {
				out.WriteByte(c)
				i++
				continue
			}
			name := query[start:j]
			position++
			out.WriteString(placeholder(position))
			args = append(args, params[name])
			i = j
		default:
			out.WriteByte(c)
			i++
		}
	}

	return out.String(), args
}

// isParamChar matches the parameter name pattern [a-z0-9_.].
func isParamChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '_' || c == '.'
}

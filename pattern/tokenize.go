package pattern

import "strings"

// Tokenize parses a pattern into a token tree. An empty delimiter means
// DefaultDelimiter.
//
//	root, _ := Tokenize("/test/{param}", "/")
//	// root.Tokens == []Token{Literal("/test/"), &Variable{Name: "param", Pattern: "[^/]+"}}
func Tokenize(pattern, delimiter string) (*Group, error) {
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}

	tokens, _, err := tokenizePattern(pattern, delimiter)
	if err != nil {
		return nil, err
	}

	return &Group{Pattern: pattern, Tokens: tokens}, nil
}

// tokenizePattern returns the tokens of the pattern and the name of the last
// variable found in it, nested groups included.
func tokenizePattern(pattern, delimiter string) ([]Token, string, error) {
	parts, err := Split(pattern)
	if err != nil {
		return nil, "", err
	}

	tokens := make([]Token, 0, len(parts))
	last := ""

	for _, part := range parts {
		var name string

		if !part.Group {
			tokens, name = tokenizeSegment(tokens, part.Text, delimiter)
			if name != "" {
				last = name
			}

			continue
		}

		children, name, err := tokenizePattern(part.Text, delimiter)
		if err != nil {
			return nil, "", err
		}

		g := &Group{
			Optional: part.Greedy == GreedyOptional || part.Greedy == GreedyAny,
			Greedy:   part.Greedy,
			Pattern:  part.Text,
			Tokens:   children,
		}
		if g.Repeatable() {
			g.Repeat = name
		}

		if name != "" {
			last = name
		}

		tokens = append(tokens, g)
	}

	return tokens, last, nil
}

// tokenizeSegment appends the literals and variables of a group-free
// segment. Text in braces that is not a valid variable stays literal.
func tokenizeSegment(tokens []Token, segment, delimiter string) ([]Token, string) {
	last := ""
	start := 0

	for i := 0; i < len(segment); i++ {
		if segment[i] != '{' {
			continue
		}

		end := braceEnd(segment, i)
		if end < 0 {
			break
		}

		name, capture, ok := parseVariable(segment[i+1 : end])
		if !ok {
			i = end
			continue
		}

		if i > start {
			tokens = append(tokens, Literal(segment[start:i]))
		}

		if capture == "" {
			capture = "[^" + delimiter + "]+"
		}

		tokens = append(tokens, &Variable{Name: name, Pattern: capture})
		last = name

		start = end + 1
		i = end
	}

	if start < len(segment) {
		tokens = append(tokens, Literal(segment[start:]))
	}

	return tokens, last
}

// parseVariable splits `name:regex` and checks the name.
func parseVariable(s string) (name, capture string, ok bool) {
	name, capture, _ = strings.Cut(s, ":")
	if name == "" {
		return "", "", false
	}

	for i := 0; i < len(name); i++ {
		if !isWordChar(name[i]) {
			return "", "", false
		}
	}

	return name, capture, true
}

func isWordChar(c byte) bool {
	return c == '_' || (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

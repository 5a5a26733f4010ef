package pattern

import "strings"

// Segment is a piece of a split pattern: literal text, or the raw
// sub-pattern of a top level group with its greediness.
type Segment struct {
	Text   string
	Group  bool
	Greedy byte
}

// Split cuts the pattern in literal segments and top level groups.
//
// Example: `/user[/{id}]*` gives `/user` and the group `/{id}` with '*'.
//
// Braces are copied verbatim so brackets inside a capture regex are never
// taken as group delimiters.
func Split(pattern string) ([]Segment, error) {
	segments := make([]Segment, 0)

	var buf strings.Builder
	opened := 0

	for i := 0; i < len(pattern); i++ {
		switch c := pattern[i]; c {
		case '{':
			end := braceEnd(pattern, i)
			if end < 0 {
				return nil, &StructuralError{Pattern: pattern, Offset: i, Reason: "missing closing '}'"}
			}

			buf.WriteString(pattern[i : end+1])
			i = end

		case '[':
			opened++
			if opened > 1 {
				buf.WriteByte(c)
				continue
			}

			if buf.Len() > 0 {
				segments = append(segments, Segment{Text: buf.String()})
				buf.Reset()
			}

		case ']':
			if opened == 0 {
				return nil, &StructuralError{Pattern: pattern, Offset: i, Reason: "unexpected ']'"}
			}

			opened--
			if opened > 0 {
				buf.WriteByte(c)
				continue
			}

			greedy := GreedyOptional
			if i+1 < len(pattern) && (pattern[i+1] == GreedyAny || pattern[i+1] == GreedyMany) {
				greedy = pattern[i+1]
				i++
			}

			segments = append(segments, Segment{Text: buf.String(), Group: true, Greedy: greedy})
			buf.Reset()

		default:
			buf.WriteByte(c)
		}
	}

	if opened > 0 {
		return nil, &StructuralError{
			Pattern: pattern,
			Offset:  len(pattern),
			Reason:  "number of opening '[' and closing ']' does not match",
		}
	}

	if buf.Len() > 0 {
		segments = append(segments, Segment{Text: buf.String()})
	}

	return segments, nil
}

// braceEnd returns the index of the '}' closing the '{' at start, or -1.
// Nested braces are counted and escaped characters skipped.
func braceEnd(s string, start int) int {
	depth := 0

	for i := start; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}

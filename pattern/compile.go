package pattern

import (
	"regexp"
	"regexp/syntax"
	"strings"
)

// VariableDescriptor describes one variable of a compiled rule.
type VariableDescriptor struct {
	Name string

	// RepeatPattern is the sub-pattern of the repeatable group holding the
	// variable, empty for ordinary variables.
	RepeatPattern string

	// Index is the capture group of the variable in the rule's regex.
	Index int
}

// Repeated reports whether the variable lives in a repeatable group.
func (v VariableDescriptor) Repeated() bool {
	return v.RepeatPattern != ""
}

// Rule is a compiled token tree. Variables are ordered like their capture
// groups in Regex.
type Rule struct {
	Regex     string
	Variables []VariableDescriptor
}

// Compile builds the regex of a token tree.
//
//	root, _ := Tokenize("/test[/{name}[/{id:[0-9]+}]]", "/")
//	rule, _ := Compile(root)
//	// rule.Regex == "/test(?:/([^/]+)(?:/([0-9]+))?)?"
func Compile(root *Group) (*Rule, error) {
	regex, vars, _, err := compileGroup(root)
	if err != nil {
		return nil, err
	}

	return &Rule{Regex: regex, Variables: vars}, nil
}

// compileGroup returns the regex of the group, its variables with indexes
// relative to that regex and the number of capture groups in it.
func compileGroup(g *Group) (string, []VariableDescriptor, int, error) {
	var b strings.Builder

	vars := make([]VariableDescriptor, 0)
	seen := make(map[string]bool)
	groups := 0

	declare := func(name string) error {
		if seen[name] {
			return &DuplicateVariableError{Name: name}
		}

		seen[name] = true

		return nil
	}

	for _, t := range g.Tokens {
		switch t := t.(type) {
		case Literal:
			b.WriteString(regexp.QuoteMeta(string(t)))

		case *Group:
			sub, subVars, subGroups, err := compileGroup(t)
			if err != nil {
				return "", nil, 0, err
			}

			switch {
			case t.Repeat != "":
				if len(subVars) > 1 {
					return "", nil, 0, &RepeatCardinalityError{Pattern: t.Pattern, Count: len(subVars)}
				}

				b.WriteString("((?:" + sub + ")" + string(t.Greedy) + ")")

				for i := range subVars {
					subVars[i].Index = groups + 1
					if subVars[i].RepeatPattern == "" {
						subVars[i].RepeatPattern = t.Pattern
					}
				}

				groups += 1 + subGroups

			case t.Repeatable():
				b.WriteString("(?:" + sub + ")" + string(t.Greedy))

				groups += subGroups

			default:
				b.WriteString("(?:" + sub + ")?")

				for i := range subVars {
					subVars[i].Index += groups
				}

				groups += subGroups
			}

			for _, v := range subVars {
				if err := declare(v.Name); err != nil {
					return "", nil, 0, err
				}

				vars = append(vars, v)
			}

		case *Variable:
			if err := declare(t.Name); err != nil {
				return "", nil, 0, err
			}

			inner, err := captureCount(t.Pattern)
			if err != nil {
				return "", nil, 0, err
			}

			if g.Repeat != "" {
				// The enclosing group captures the whole repeated run.
				b.WriteString(t.Pattern)
				vars = append(vars, VariableDescriptor{Name: t.Name, RepeatPattern: g.Pattern})
				groups += inner

				continue
			}

			b.WriteString("(" + t.Pattern + ")")
			vars = append(vars, VariableDescriptor{Name: t.Name, Index: groups + 1})
			groups += 1 + inner
		}
	}

	return b.String(), vars, groups, nil
}

// captureCount returns the number of capture groups of a capture regex.
func captureCount(expr string) (int, error) {
	re, err := syntax.Parse(expr, syntax.Perl)
	if err != nil {
		return 0, &SyntaxError{Pattern: expr, Err: err}
	}

	return re.MaxCap(), nil
}

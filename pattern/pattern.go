package pattern

import (
	"regexp"
	"strings"
)

// Pattern is a parsed and compiled pattern. All regexps are compiled once
// by Parse and reused by every match. A Pattern is safe for concurrent use.
type Pattern struct {
	source string
	root   *Group
	rule   *Rule

	prefix *regexp.Regexp
	full   *regexp.Regexp

	validators map[string]*regexp.Regexp
	repeats    map[string]repeat
}

type repeat struct {
	re    *regexp.Regexp
	index int
}

// Parse tokenizes and compiles the pattern using DefaultDelimiter.
func Parse(source string) (*Pattern, error) {
	root, err := Tokenize(source, DefaultDelimiter)
	if err != nil {
		return nil, err
	}

	rule, err := Compile(root)
	if err != nil {
		return nil, err
	}

	p := &Pattern{
		source:     source,
		root:       root,
		rule:       rule,
		validators: make(map[string]*regexp.Regexp),
		repeats:    make(map[string]repeat),
	}

	if p.prefix, err = compileRegexp("^(?:" + rule.Regex + ")"); err != nil {
		return nil, err
	}

	if p.full, err = compileRegexp("^(?:" + rule.Regex + ")/?$"); err != nil {
		return nil, err
	}

	for _, v := range root.Variables() {
		if p.validators[v.Name], err = compileRegexp("^(?:" + v.Pattern + ")$"); err != nil {
			return nil, err
		}
	}

	for _, v := range rule.Variables {
		if !v.Repeated() {
			continue
		}

		sub, err := Tokenize(v.RepeatPattern, DefaultDelimiter)
		if err != nil {
			return nil, err
		}

		subRule, err := Compile(sub)
		if err != nil {
			return nil, err
		}

		re, err := compileRegexp(subRule.Regex)
		if err != nil {
			return nil, err
		}

		r := repeat{re: re, index: 1}
		if len(subRule.Variables) > 0 {
			r.index = subRule.Variables[0].Index
		}

		p.repeats[v.Name] = r
	}

	return p, nil
}

// MustParse is like Parse but panics if the pattern is invalid.
func MustParse(source string) *Pattern {
	p, err := Parse(source)
	if err != nil {
		panic(err)
	}

	return p
}

func compileRegexp(expr string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, &SyntaxError{Pattern: expr, Err: err}
	}

	return re, nil
}

// String returns the source pattern.
func (p *Pattern) String() string {
	return p.source
}

// Token returns the root of the token tree.
func (p *Pattern) Token() *Group {
	return p.root
}

// Rule returns the compiled rule.
func (p *Pattern) Rule() *Rule {
	return p.rule
}

// MatchPrefix reports whether the pattern matches a prefix of path.
func (p *Pattern) MatchPrefix(path string) bool {
	return p.prefix.MatchString(path)
}

// MatchFull matches the whole path, trailing slash optional, and returns
// the submatches or nil.
func (p *Pattern) MatchFull(path string) []string {
	return p.full.FindStringSubmatch(path)
}

// Validate reports whether value matches the capture regex of the variable.
func (p *Pattern) Validate(name, value string) bool {
	re, ok := p.validators[name]
	if !ok {
		return false
	}

	return re.MatchString(value)
}

// Expand splits the run captured for a repeat variable in one element per
// repetition. Elements holding a '/' are split in a []string.
func (p *Pattern) Expand(name, captured string) []any {
	values := make([]any, 0)

	r, ok := p.repeats[name]
	if !ok {
		return values
	}

	for _, m := range r.re.FindAllStringSubmatch(captured, -1) {
		if r.index >= len(m) || m[r.index] == "" {
			continue
		}

		value := m[r.index]
		if strings.Contains(value, "/") {
			values = append(values, strings.Split(value, "/"))
		} else {
			values = append(values, value)
		}
	}

	return values
}

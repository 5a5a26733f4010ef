// Copyright 2020-present Sergio Andres Virviescas Santana, fasthttp
// Use of this source code is governed by a BSD-style license that can be found
// in the LICENSE file.

// Package pattern compiles route patterns into regular expressions.
//
// A pattern is literal text with variables and bracketed groups:
//
//	post/{id}                 variable, captures [^/]+
//	post/{id:[0-9]{8}}        variable with its own capture regex
//	post[/{id}]               optional group
//	post[/{id}]*              optional repeatable group
//	post[/{id}]+              required repeatable group
//
// Repeatable groups hold exactly one variable. The whole repeated run is
// captured as one string and re-matched against the group's own
// sub-pattern to produce the list of values.
package pattern

// Group greediness.
const (
	GreedyOptional byte = '?'
	GreedyAny      byte = '*'
	GreedyMany     byte = '+'
)

// DefaultDelimiter is the path delimiter excluded by default captures.
const DefaultDelimiter = "/"

// Token is a node of a token tree: a Literal, a *Variable or a *Group.
type Token interface {
	token()
}

// Literal is text matched verbatim.
type Literal string

// Variable is a named placeholder and the regex its value must match.
type Variable struct {
	Name    string
	Pattern string
}

// Group is a bracketed sub-pattern. The root of every token tree is a
// Group with Greedy set to 0.
type Group struct {
	Optional bool
	Greedy   byte

	// Repeat is the name of the variable repeated by the group, empty
	// unless the group is '*' or '+' and holds a variable.
	Repeat string

	// Pattern is the raw sub-pattern between the brackets.
	Pattern string
	Tokens  []Token
}

func (Literal) token()   {}
func (*Variable) token() {}
func (*Group) token()    {}

// Repeatable reports whether the group may match more than once.
func (g *Group) Repeatable() bool {
	return g.Greedy == GreedyAny || g.Greedy == GreedyMany
}

// Variables returns the variables of the tree in declaration order.
func (g *Group) Variables() []*Variable {
	vars := make([]*Variable, 0)

	for _, t := range g.Tokens {
		switch t := t.(type) {
		case *Variable:
			vars = append(vars, t)
		case *Group:
			vars = append(vars, t.Variables()...)
		}
	}

	return vars
}

// Package recognize is the recursive-descent interpreter of spec.md
// §4.7: given a canon.Grammar, a start rule, and an input string, it
// either accepts the input (consuming it entirely) and returns the parse
// tree rooted at start, or rejects it. There is no backtracking across
// Alternative operands or Repeated iterations — once a branch is chosen
// or a repetition stops, that decision is final, matching the ordered,
// greedy semantics spec.md §4.7 specifies for each node kind.
package recognize

import (
	"encoding/json"
	"strings"

	"github.com/bellinitte/parser-parser/ast"
	"github.com/bellinitte/parser-parser/canon"
)

// Node is a parse-tree node: either a NonterminalNode (one per matched
// Nonterminal reference, including the root) or a TerminalNode (one per
// matched Terminal). Empty never contributes a node and Special can never
// match, so neither has a Node variant.
type Node interface {
	node()
}

// NonterminalNode is produced whenever a Nonterminal successfully
// matches; Children holds every node produced while matching its
// right-hand side, flattened across any Sequence/Alternative/Optional/
// Repeated/Factor/Exception structure in between (those node kinds are
// purely structural and never introduce a tree node of their own).
type NonterminalNode struct {
	Name     string
	Children []Node
}

func (NonterminalNode) node() {}

// MarshalJSON renders the embedding convention of spec.md §6:
// {"name": ..., "children": [...]}.
func (n NonterminalNode) MarshalJSON() ([]byte, error) {
	children := n.Children
	if children == nil {
		children = []Node{}
	}
	return json.Marshal(struct {
		Name     string `json:"name"`
		Children []Node `json:"children"`
	}{
		Name:     n.Name,
		Children: children,
	})
}

// TerminalNode is a single matched Terminal literal.
type TerminalNode struct {
	Literal string
}

func (TerminalNode) node() {}

// MarshalJSON renders the embedding convention of spec.md §6: a
// terminal leaf is {"name": "\"" + literal + "\""} — the leading quote is
// load-bearing, letting callers tell a terminal leaf from a nonterminal
// node by the "name" field alone.
func (n TerminalNode) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name string `json:"name"`
	}{
		Name: `"` + n.Literal + `"`,
	})
}

// Tracer observes Nonterminal entry and exit during recognition — the
// only two events a plain recursive descent naturally exposes.
type Tracer interface {
	OnEnter(name string, remaining string)
	OnLeave(name string, remaining string, ok bool)
}

// Recognize attempts to match input against start's right-hand side in
// g, requiring the entire input be consumed. tracer may be nil. The
// second return value is false both when start is undefined and when the
// match fails or leaves input unconsumed — spec.md §4.7 does not
// distinguish these at the recognizer's boundary; canon.Grammar is
// expected to have already passed preprocess.Validate, so an undefined
// start rule here means the caller bypassed that step.
func Recognize(g canon.Grammar, start string, input string, tracer Tracer) (Node, bool) {
	rhs, ok := g.Lookup(start)
	if !ok {
		return nil, false
	}

	m := &matcher{grammar: g, tracer: tracer}
	if tracer != nil {
		tracer.OnEnter(start, input)
	}
	rest, children, ok := m.match(rhs, input)
	if tracer != nil {
		tracer.OnLeave(start, rest, ok)
	}
	if !ok || rest != "" {
		return nil, false
	}
	return NonterminalNode{Name: start, Children: children}, true
}

type matcher struct {
	grammar canon.Grammar
	tracer  Tracer
}

// match attempts e against input, returning the unconsumed remainder and
// the nodes produced on success. On failure the remainder is always the
// original input unchanged.
func (m *matcher) match(e ast.Expression, input string) (rest string, nodes []Node, ok bool) {
	switch n := e.(type) {
	case *ast.Empty:
		return input, nil, true

	case *ast.Special:
		return input, nil, false

	case *ast.Terminal:
		if strings.HasPrefix(input, n.Literal) {
			return input[len(n.Literal):], []Node{TerminalNode{Literal: n.Literal}}, true
		}
		return input, nil, false

	case *ast.Nonterminal:
		return m.matchNonterminal(n, input)

	case *ast.Sequence:
		return m.matchSequence(n.Operands(), input)

	case *ast.Alternative:
		return m.matchAlternative(n.Operands(), input)

	case *ast.Optional:
		if rest, nodes, ok := m.match(n.Inner, input); ok {
			return rest, nodes, true
		}
		return input, nil, true

	case *ast.Repeated:
		return m.matchRepeated(n.Inner, input)

	case *ast.Factor:
		return m.matchFactor(n, input)

	case *ast.Exception:
		return m.matchException(n, input)
	}
	return input, nil, false
}

func (m *matcher) matchNonterminal(n *ast.Nonterminal, input string) (string, []Node, bool) {
	rhs, ok := m.grammar.Lookup(n.Name)
	if !ok {
		return input, nil, false
	}
	if m.tracer != nil {
		m.tracer.OnEnter(n.Name, input)
	}
	rest, children, ok := m.match(rhs, input)
	if m.tracer != nil {
		m.tracer.OnLeave(n.Name, rest, ok)
	}
	if !ok {
		return input, nil, false
	}
	return rest, []Node{NonterminalNode{Name: n.Name, Children: children}}, true
}

// matchSequence matches every operand in order, fail-fast: the first
// operand to fail aborts the whole sequence.
func (m *matcher) matchSequence(operands []ast.Expression, input string) (string, []Node, bool) {
	cur := input
	var nodes []Node
	for _, op := range operands {
		rest, opNodes, ok := m.match(op, cur)
		if !ok {
			return input, nil, false
		}
		cur = rest
		nodes = append(nodes, opNodes...)
	}
	return cur, nodes, true
}

// matchAlternative tries each operand in order against the original
// input and commits to the first one that succeeds.
func (m *matcher) matchAlternative(operands []ast.Expression, input string) (string, []Node, bool) {
	for _, op := range operands {
		if rest, nodes, ok := m.match(op, input); ok {
			return rest, nodes, true
		}
	}
	return input, nil, false
}

// matchRepeated matches inner greedily, as many times as it succeeds,
// stopping at the first failure. A repetition that matches without
// consuming anything would loop forever, so a non-progressing match also
// stops the loop — the last (zero-width) match is kept.
func (m *matcher) matchRepeated(inner ast.Expression, input string) (string, []Node, bool) {
	cur := input
	var nodes []Node
	for {
		rest, opNodes, ok := m.match(inner, cur)
		if !ok {
			break
		}
		nodes = append(nodes, opNodes...)
		if rest == cur {
			break
		}
		cur = rest
	}
	return cur, nodes, true
}

// matchFactor matches primary exactly Count times, failing if any
// repetition fails.
func (m *matcher) matchFactor(f *ast.Factor, input string) (string, []Node, bool) {
	cur := input
	var nodes []Node
	for i := uint64(0); i < f.Count; i++ {
		rest, opNodes, ok := m.match(f.Primary, cur)
		if !ok {
			return input, nil, false
		}
		cur = rest
		nodes = append(nodes, opNodes...)
	}
	return cur, nodes, true
}

// matchException matches Subject, then tries Restriction against exactly
// the substring Subject consumed. The exception only triggers — failing
// the whole match — if Restriction matches that substring in full; a
// restriction that fails outright or only partially consumes it does not
// block the subject's match (spec.md §9).
func (m *matcher) matchException(e *ast.Exception, input string) (string, []Node, bool) {
	rest, nodes, ok := m.match(e.Subject, input)
	if !ok {
		return input, nil, false
	}
	consumed := input[:len(input)-len(rest)]
	if restRest, _, restOk := m.match(e.Restriction, consumed); restOk && restRest == "" {
		return input, nil, false
	}
	return rest, nodes, true
}

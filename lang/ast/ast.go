// Package ast defines the types used to represent the abstract syntax tree
// of koru source: a flat sequence of top-level Items (bindings, bare word
// expressions and test scopes), each built from Words. Unlike a
// conventional statement/expression tree, koru has no nested lexical
// scoping: every Item lives at the top level and Words only nest inside
// array, function and modifier-operand positions.
package ast

import (
	"fmt"
	"sort"
	"strings"

	"koru/lang/token"
)

// Node represents any node in the AST.
type Node interface {
	// Every Node implements fmt.Formatter so it can print a description of
	// itself. Supported verbs are 'v' and 's'; the '#' flag additionally
	// prints child-count information, a width pads or truncates the label,
	// and '-' pads on the right instead of the left.
	fmt.Formatter

	// Span reports the start and end position of the node.
	Span() (start, end token.Pos)

	// Walk enters each child node, implementing the Visitor pattern.
	Walk(v Visitor)
}

// Item represents a top-level construct: a binding, a bare word expression
// or a test scope.
type Item interface {
	Node
	item()
}

// Word represents one term of a words expression: a primitive, identifier,
// literal, strand, array, function, switch, modifier application, ocean
// chain or placeholder.
type Word interface {
	Node
	word()
}

func format(f fmt.State, verb rune, n Node, label string, counts map[string]int) {
	if verb != 'v' && verb != 's' {
		fmt.Fprintf(f, "%%!%c(%T)", verb, n)
		return
	}

	label = strings.ReplaceAll(label, "\r\n", "⏎")
	label = strings.ReplaceAll(label, "\n", "⏎")
	label = strings.ReplaceAll(label, "\t", "⭾")

	if w, ok := f.Width(); ok {
		minus, plus := f.Flag('-'), f.Flag('+')
		runes := []rune(label)
		if len(runes) >= w {
			runes = runes[:w]
		} else if minus {
			runes = append(runes, []rune(strings.Repeat(" ", w-len(runes)))...)
		} else if !plus {
			runes = append([]rune(strings.Repeat(" ", w-len(runes))), runes...)
		}
		label = string(runes)
	}

	fmt.Fprint(f, label)
	if f.Flag('#') && len(counts) > 0 {
		keys := make([]string, 0, len(counts))
		for k := range counts {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		fmt.Fprint(f, " {")
		for i, k := range keys {
			if i > 0 {
				fmt.Fprint(f, ", ")
			}
			fmt.Fprintf(f, "%s=%d", k, counts[k])
		}
		fmt.Fprint(f, "}")
	}
}

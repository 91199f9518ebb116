// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package arith evaluates the arithmetic found inside sheet brackets.
//
// Input is parsed with the expr-lang parser and the tree is then walked
// with a whitelist: numeric literals, unary + and -, and binary + - * /.
// Parentheses only group. Nothing outside that set is ever evaluated, so a
// bracket can never reach variables, functions, or the environment.
package arith

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"
)

// ErrEvaluation is wrapped by every error Evaluate returns.
var ErrEvaluation = errors.New("not computable")

var (
	// ErrEmpty means the expression held only whitespace.
	ErrEmpty = fmt.Errorf("%w: empty expression", ErrEvaluation)
	// ErrNotArithmetic means the expression parsed but used something other
	// than numbers and + - * / ( ).
	ErrNotArithmetic = fmt.Errorf("%w: not arithmetic", ErrEvaluation)
	// ErrNonFinite means the result was infinite or NaN.
	ErrNonFinite = fmt.Errorf("%w: non-finite result", ErrEvaluation)
)

// Evaluate parses and evaluates expr. It returns a finite number or an error
// wrapping ErrEvaluation.
func Evaluate(expr string) (float64, error) {
	if strings.TrimSpace(expr) == "" {
		return 0, ErrEmpty
	}

	tree, err := parser.Parse(expr)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrEvaluation, err)
	}

	v, err := walk(tree.Node)
	if err != nil {
		return 0, err
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, ErrNonFinite
	}
	return v, nil
}

// walk evaluates a whitelisted node.
func walk(node ast.Node) (float64, error) {
	switch n := node.(type) {
	case *ast.IntegerNode:
		return float64(n.Value), nil

	case *ast.FloatNode:
		return n.Value, nil

	case *ast.UnaryNode:
		v, err := walk(n.Node)
		if err != nil {
			return 0, err
		}
		switch n.Operator {
		case "+":
			return v, nil
		case "-":
			return -v, nil
		}
		return 0, fmt.Errorf("%w: unary %q", ErrNotArithmetic, n.Operator)

	case *ast.BinaryNode:
		switch n.Operator {
		case "+", "-", "*", "/":
		default:
			return 0, fmt.Errorf("%w: operator %q", ErrNotArithmetic, n.Operator)
		}
		l, err := walk(n.Left)
		if err != nil {
			return 0, err
		}
		r, err := walk(n.Right)
		if err != nil {
			return 0, err
		}
		switch n.Operator {
		case "+":
			return l + r, nil
		case "-":
			return l - r, nil
		case "*":
			return l * r, nil
		default:
			return l / r, nil
		}
	}

	return 0, fmt.Errorf("%w: %T", ErrNotArithmetic, node)
}

// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package arith

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"10*5*2", 100},
		{"1+2*3", 7},
		{"(1+2)*3", 9},
		{"10-3-2", 5},
		{"7/2", 3.5},
		{"-4+10", 6},
		{"+4", 4},
		{"-(2+3)", -5},
		{" 42 ", 42},
		{"1.5*4", 6},
		{"2*(3+(4-1))/3", 4},
		{"100/8", 12.5},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Evaluate(tt.input)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestEvaluateRejects(t *testing.T) {
	tests := []struct {
		input string
		want  error
	}{
		{"", ErrEmpty},
		{"   ", ErrEmpty},
		{"hello world", ErrEvaluation},
		{"x + 1", ErrNotArithmetic},
		{"len(\"abc\")", ErrNotArithmetic},
		{"\"a\" + \"b\"", ErrNotArithmetic},
		{"2 ** 3", ErrNotArithmetic},
		{"7 % 3", ErrNotArithmetic},
		{"1 == 1", ErrNotArithmetic},
		{"true", ErrNotArithmetic},
		{"1 +", ErrEvaluation},
		{"(1", ErrEvaluation},
		{"1/0", ErrNonFinite},
		{"-1/0", ErrNonFinite},
		{"0/0", ErrNonFinite},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Evaluate(tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, ErrEvaluation)
		})
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	first, err := Evaluate("0.1+0.2")
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		v, err := Evaluate("0.1+0.2")
		require.NoError(t, err)
		assert.Equal(t, first, v)
	}
}

// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package annot

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRound(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{2.4, 2},
		{2.5, 3},
		{-2.5, -2},
		{-2.6, -3},
		{19.999999999999996, 20},
		{0.49999999999999994, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Round(tt.in), "Round(%v)", tt.in)
	}
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "100", FormatNumber(100))
	assert.Equal(t, "3.5", FormatNumber(3.5))
	assert.Equal(t, "-2", FormatNumber(-2))
	assert.Equal(t, "0", FormatNumber(math.Copysign(0, -1)))
	a, b := 0.1, 0.2
	assert.Equal(t, "0.30000000000000004", FormatNumber(a+b))
}

func TestContent(t *testing.T) {
	assert.Equal(t, "[100]", ComputedContent(Value{Base: 100, Final: 100}))
	assert.Equal(t, "[100 → 125]", ComputedContent(Value{Base: 100, Final: 125, Modifier: 0.25}))
	assert.Equal(t, "[15]", TotalContent(15))

	assert.Equal(t, "100", Tooltip(100, 0, 100))
	assert.Equal(t, "100 × 1.25 = 125", Tooltip(100, 0.25, 125))
}

func TestSelectionWithin(t *testing.T) {
	assert.True(t, Cursor(0).Within(0, 4))
	assert.True(t, Cursor(4).Within(0, 4))
	assert.True(t, Selection{From: 1, To: 3}.Within(0, 4))
	assert.False(t, Cursor(5).Within(0, 4))
	assert.False(t, Selection{From: 1, To: 6}.Within(0, 4))
	assert.False(t, NoSelection.Within(0, 4))
}

func TestModeText(t *testing.T) {
	for m := ModeNone; m <= ModeModifierNegative; m++ {
		b, err := m.MarshalText()
		require.NoError(t, err)

		var back Mode
		require.NoError(t, back.UnmarshalText(b))
		assert.Equal(t, m, back)
	}

	var m Mode
	assert.Error(t, m.UnmarshalText([]byte("sparkle")))
	_, err := Mode(42).MarshalText()
	assert.Error(t, err)
	assert.Equal(t, "unknown", Mode(42).String())
}

func TestAnnotationJSON(t *testing.T) {
	a := Annotation{
		Start:   4,
		End:     9,
		Mode:    ModeComputed,
		Content: "[100 → 125]",
		Value:   &Value{Base: 100, Final: 125, Modifier: 0.25, Tooltip: "100 × 1.25 = 125"},
	}
	b, err := json.Marshal(a)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"start": 4, "end": 9, "mode": "computed", "content": "[100 → 125]",
		"value": {"base": 100, "final": 125, "modifier": 0.25, "tooltip": "100 × 1.25 = 125"}
	}`, string(b))

	plain, err := json.Marshal(Annotation{Start: 0, End: 3, Mode: ModeModifierPositive, Content: "+10"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"start": 0, "end": 3, "mode": "modifier-positive", "content": "+10"}`, string(plain))
}

func TestResultHelpers(t *testing.T) {
	r := Result{
		Annotations: []Annotation{
			{Mode: ModeModifierPositive},
			{Mode: ModeComputed},
			{Mode: ModeNone},
			{Mode: ModeTotal},
		},
		Evaluations: []Evaluation{{Kind: Computed}, {Kind: Unparsed}, {Kind: Total}},
	}
	assert.Len(t, r.Replacements(), 2)
	assert.Equal(t, 1, r.Count(Computed))
	assert.Equal(t, 0, r.Count(Revealed))
	assert.Equal(t, "[x]", Evaluation{Inner: "x"}.Raw())
}

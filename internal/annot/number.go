// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package annot

import (
	"math"
	"strconv"
)

// Round rounds half toward positive infinity, so 2.5 becomes 3 and -2.5
// becomes -2.
func Round(x float64) float64 {
	r := math.Floor(x)
	if x-r >= 0.5 {
		r++
	}
	return r
}

// FormatNumber returns the shortest decimal form of v. Negative zero prints
// as 0.
func FormatNumber(v float64) string {
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ComputedContent renders a computed span: "[base]" when no modifier
// applied, "[base → final]" otherwise.
func ComputedContent(v Value) string {
	if !v.Modified() {
		return "[" + FormatNumber(v.Base) + "]"
	}
	return "[" + FormatNumber(v.Base) + " → " + FormatNumber(v.Final) + "]"
}

// TotalContent renders a consumed total.
func TotalContent(total float64) string {
	return "[" + FormatNumber(total) + "]"
}

// Tooltip returns "base × factor = final" when a modifier applied, or just
// the base.
func Tooltip(base, modifier, final float64) string {
	if modifier == 0 {
		return FormatNumber(base)
	}
	return FormatNumber(base) + " × " + FormatNumber(1+modifier) + " = " + FormatNumber(final)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package transform derives the ProcessedValue column from a dataset.
//
// The rule is chosen once from the column set, never per record:
//
//	Value1 and Value2 present  ProcessedValue = Value1 * Value2
//	Amount present             ProcessedValue = Amount * 2
//	otherwise                  ProcessedValue = 100
package transform

import (
	"fmt"
	"math"
	"slices"

	"github.com/spf13/cast"

	"github.com/pdiddy/sheetpub/internal/dataset"
)

const (
	ColumnValue1    = "Value1"
	ColumnValue2    = "Value2"
	ColumnAmount    = "Amount"
	ColumnProcessed = "ProcessedValue"

	// amountFactor multiplies Amount under RuleDouble.
	amountFactor = 2
	// DefaultValue is assigned to every record under RuleConstant.
	DefaultValue int64 = 100
)

// Rule identifies which derivation produced ProcessedValue.
type Rule int

const (
	RuleProduct Rule = iota + 1
	RuleDouble
	RuleConstant
)

func (r Rule) String() string {
	switch r {
	case RuleProduct:
		return "Value1*Value2"
	case RuleDouble:
		return "Amount*2"
	case RuleConstant:
		return "constant 100"
	default:
		return fmt.Sprintf("Rule(%d)", int(r))
	}
}

// ValueError reports an operand that cannot be used as a number.
type ValueError struct {
	Row    int
	Column string
	Value  any
	Err    error
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("record %d: column %s: value %#v is not numeric", e.Row, e.Column, e.Value)
}

func (e *ValueError) Unwrap() error { return e.Err }

// Select returns the rule that applies to a dataset with the given columns.
// RuleProduct takes precedence over RuleDouble when Amount is also present.
func Select(columns []string) Rule {
	switch {
	case slices.Contains(columns, ColumnValue1) && slices.Contains(columns, ColumnValue2):
		return RuleProduct
	case slices.Contains(columns, ColumnAmount):
		return RuleDouble
	default:
		return RuleConstant
	}
}

// Transform returns a copy of ds with ProcessedValue set on every record.
// ds itself is not modified. Integer operands multiply as int64 and fall
// back to float64 on overflow; any float operand yields float64; a nil
// operand yields nil. Operands that cannot be coerced to a number produce
// a *ValueError and no dataset.
func Transform(ds *dataset.Dataset) (*dataset.Dataset, error) {
	out := ds.Clone()

	var derive func(i int, r dataset.Record) (any, error)
	switch Select(out.Columns) {
	case RuleProduct:
		derive = func(i int, r dataset.Record) (any, error) {
			return multiply(i, ColumnValue1, r[ColumnValue1], ColumnValue2, r[ColumnValue2])
		}
	case RuleDouble:
		derive = func(i int, r dataset.Record) (any, error) {
			return multiply(i, ColumnAmount, r[ColumnAmount], "", int64(amountFactor))
		}
	default:
		derive = func(int, dataset.Record) (any, error) {
			return DefaultValue, nil
		}
	}

	if err := out.SetColumn(ColumnProcessed, derive); err != nil {
		return nil, err
	}
	return out, nil
}

func multiply(row int, colA string, a any, colB string, b any) (any, error) {
	if a == nil || b == nil {
		return nil, nil
	}

	if isInteger(a) && isInteger(b) {
		x, err := cast.ToInt64E(a)
		if err != nil {
			return nil, &ValueError{Row: row, Column: colA, Value: a, Err: err}
		}
		y, err := cast.ToInt64E(b)
		if err != nil {
			return nil, &ValueError{Row: row, Column: colB, Value: b, Err: err}
		}
		if p, ok := mulInt64(x, y); ok {
			return p, nil
		}
		return float64(x) * float64(y), nil
	}

	x, err := cast.ToFloat64E(a)
	if err != nil {
		return nil, &ValueError{Row: row, Column: colA, Value: a, Err: err}
	}
	y, err := cast.ToFloat64E(b)
	if err != nil {
		return nil, &ValueError{Row: row, Column: colB, Value: b, Err: err}
	}
	return x * y, nil
}

func isInteger(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32:
		return true
	}
	return false
}

// mulInt64 multiplies x and y, reporting false on overflow.
func mulInt64(x, y int64) (int64, bool) {
	if x == 0 || y == 0 {
		return 0, true
	}
	if (x == -1 && y == math.MinInt64) || (y == -1 && x == math.MinInt64) {
		return 0, false
	}
	p := x * y
	return p, p/y == x
}

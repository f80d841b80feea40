package leave

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ConditionNode is the JSONB predicate tree behind custom accrual rules.
// It is declarative data only: field/operator/value leaves combined with
// all/any groups. Stored expressions are never evaluated as code.
type ConditionNode struct {
	All []ConditionNode `json:"all,omitempty"`
	Any []ConditionNode `json:"any,omitempty"`

	Field string `json:"field,omitempty"`
	Op    string `json:"op,omitempty"`
	// RawValue keeps the comparison operand as raw JSON; the wire key stays
	// "value" but the Go name must not clash with the driver.Valuer method.
	RawValue json.RawMessage `json:"value,omitempty"`
}

// Condition fields understood by the evaluator.
const (
	FieldTenureDays        = "tenure_days"
	FieldAttendancePercent = "attendance_percent"
	FieldOnProbation       = "on_probation"
	FieldEmploymentType    = "employment_type"
)

// Condition operators.
const (
	OpEq  = "eq"
	OpNe  = "ne"
	OpGt  = "gt"
	OpGte = "gte"
	OpLt  = "lt"
	OpLte = "lte"
)

// Facts are the employee attributes a condition tree is evaluated against.
type Facts struct {
	TenureDays        int
	AttendancePercent decimal.Decimal
	OnProbation       bool
	EmploymentType    string
}

// Evaluate walks the tree. An empty node matches everything. Unknown fields
// or operators fail the evaluation with an error rather than silently passing.
func (n *ConditionNode) Evaluate(facts Facts) (bool, error) {
	if n == nil {
		return true, nil
	}

	if len(n.All) > 0 {
		for i := range n.All {
			ok, err := n.All[i].Evaluate(facts)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
		return true, nil
	}

	if len(n.Any) > 0 {
		for i := range n.Any {
			ok, err := n.Any[i].Evaluate(facts)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	}

	if n.Field == "" {
		return true, nil
	}

	return n.evaluateLeaf(facts)
}

func (n *ConditionNode) evaluateLeaf(facts Facts) (bool, error) {
	switch n.Field {
	case FieldTenureDays:
		return compareDecimal(decimal.NewFromInt(int64(facts.TenureDays)), n.Op, n.RawValue)
	case FieldAttendancePercent:
		return compareDecimal(facts.AttendancePercent, n.Op, n.RawValue)
	case FieldOnProbation:
		var want bool
		if err := json.Unmarshal(n.RawValue, &want); err != nil {
			return false, fmt.Errorf("condition %s: %w", n.Field, err)
		}
		switch n.Op {
		case OpEq:
			return facts.OnProbation == want, nil
		case OpNe:
			return facts.OnProbation != want, nil
		}
		return false, fmt.Errorf("condition %s: unsupported operator %q", n.Field, n.Op)
	case FieldEmploymentType:
		var want string
		if err := json.Unmarshal(n.RawValue, &want); err != nil {
			return false, fmt.Errorf("condition %s: %w", n.Field, err)
		}
		switch n.Op {
		case OpEq:
			return facts.EmploymentType == want, nil
		case OpNe:
			return facts.EmploymentType != want, nil
		}
		return false, fmt.Errorf("condition %s: unsupported operator %q", n.Field, n.Op)
	}
	return false, fmt.Errorf("unknown condition field %q", n.Field)
}

func compareDecimal(have decimal.Decimal, op string, raw json.RawMessage) (bool, error) {
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return false, fmt.Errorf("condition value: %w", err)
	}
	want := decimal.NewFromFloat(f)

	switch op {
	case OpEq:
		return have.Equal(want), nil
	case OpNe:
		return !have.Equal(want), nil
	case OpGt:
		return have.GreaterThan(want), nil
	case OpGte:
		return have.GreaterThanOrEqual(want), nil
	case OpLt:
		return have.LessThan(want), nil
	case OpLte:
		return have.LessThanOrEqual(want), nil
	}
	return false, fmt.Errorf("unsupported operator %q", op)
}

// Value implements driver.Valuer for database storage
func (n ConditionNode) Value() (driver.Value, error) {
	return json.Marshal(n)
}

// Scan implements sql.Scanner for database retrieval
func (n *ConditionNode) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan ConditionNode: invalid type")
	}

	return json.Unmarshal(bytes, n)
}

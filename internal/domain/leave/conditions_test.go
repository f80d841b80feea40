package leave

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leaf(field, op, value string) ConditionNode {
	return ConditionNode{Field: field, Op: op, RawValue: json.RawMessage(value)}
}

func baseFacts() Facts {
	return Facts{
		TenureDays:        400,
		AttendancePercent: decimal.NewFromInt(92),
		OnProbation:       false,
		EmploymentType:    "permanent",
	}
}

func TestConditionNode_NilAndEmptyMatchEverything(t *testing.T) {
	var n *ConditionNode
	ok, err := n.Evaluate(baseFacts())
	require.NoError(t, err)
	assert.True(t, ok)

	empty := &ConditionNode{}
	ok, err = empty.Evaluate(baseFacts())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestConditionNode_NumericOperators(t *testing.T) {
	tests := []struct {
		name string
		node ConditionNode
		want bool
	}{
		{"eq match", leaf(FieldTenureDays, OpEq, `400`), true},
		{"eq mismatch", leaf(FieldTenureDays, OpEq, `401`), false},
		{"ne", leaf(FieldTenureDays, OpNe, `401`), true},
		{"gt", leaf(FieldTenureDays, OpGt, `399`), true},
		{"gt at boundary", leaf(FieldTenureDays, OpGt, `400`), false},
		{"gte at boundary", leaf(FieldTenureDays, OpGte, `400`), true},
		{"lt", leaf(FieldAttendancePercent, OpLt, `95`), true},
		{"lte at boundary", leaf(FieldAttendancePercent, OpLte, `92`), true},
		{"lte below", leaf(FieldAttendancePercent, OpLte, `91.5`), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.node.Evaluate(baseFacts())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConditionNode_BoolAndStringFields(t *testing.T) {
	probation := leaf(FieldOnProbation, OpEq, `false`)
	ok, err := probation.Evaluate(baseFacts())
	require.NoError(t, err)
	assert.True(t, ok)

	contractOnly := leaf(FieldEmploymentType, OpEq, `"contract"`)
	ok, err = contractOnly.Evaluate(baseFacts())
	require.NoError(t, err)
	assert.False(t, ok)

	notIntern := leaf(FieldEmploymentType, OpNe, `"intern"`)
	ok, err = notIntern.Evaluate(baseFacts())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestConditionNode_AllGroup(t *testing.T) {
	node := ConditionNode{All: []ConditionNode{
		leaf(FieldEmploymentType, OpEq, `"permanent"`),
		leaf(FieldTenureDays, OpGte, `365`),
	}}

	ok, err := node.Evaluate(baseFacts())
	require.NoError(t, err)
	assert.True(t, ok)

	facts := baseFacts()
	facts.TenureDays = 100
	ok, err = node.Evaluate(facts)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConditionNode_AnyGroup(t *testing.T) {
	node := ConditionNode{Any: []ConditionNode{
		leaf(FieldTenureDays, OpGte, `1000`),
		leaf(FieldAttendancePercent, OpGte, `90`),
	}}

	ok, err := node.Evaluate(baseFacts())
	require.NoError(t, err)
	assert.True(t, ok)

	facts := baseFacts()
	facts.AttendancePercent = decimal.NewFromInt(50)
	ok, err = node.Evaluate(facts)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConditionNode_NestedGroups(t *testing.T) {
	// permanent AND (tenure >= 1000 OR attendance >= 90)
	node := ConditionNode{All: []ConditionNode{
		leaf(FieldEmploymentType, OpEq, `"permanent"`),
		{Any: []ConditionNode{
			leaf(FieldTenureDays, OpGte, `1000`),
			leaf(FieldAttendancePercent, OpGte, `90`),
		}},
	}}

	ok, err := node.Evaluate(baseFacts())
	require.NoError(t, err)
	assert.True(t, ok)

	facts := baseFacts()
	facts.EmploymentType = "contract"
	ok, err = node.Evaluate(facts)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConditionNode_UnknownFieldFailsLoudly(t *testing.T) {
	node := leaf("salary_band", OpEq, `"L4"`)

	_, err := node.Evaluate(baseFacts())

	assert.Error(t, err)
}

func TestConditionNode_UnsupportedOperator(t *testing.T) {
	node := leaf(FieldEmploymentType, OpGt, `"permanent"`)

	_, err := node.Evaluate(baseFacts())

	assert.Error(t, err)
}

func TestConditionNode_LeafOperandUsesValueWireKey(t *testing.T) {
	node := leaf(FieldAttendancePercent, OpGte, `90`)

	raw, err := node.Value()
	require.NoError(t, err)

	encoded, ok := raw.([]byte)
	require.True(t, ok)
	assert.JSONEq(t, `{"field":"attendance_percent","op":"gte","value":90}`, string(encoded))

	var decoded ConditionNode
	require.NoError(t, decoded.Scan(raw))

	got, err := decoded.Evaluate(baseFacts())
	require.NoError(t, err)
	assert.True(t, got)
}

func TestConditionNode_RoundTripsThroughJSON(t *testing.T) {
	node := ConditionNode{All: []ConditionNode{
		leaf(FieldOnProbation, OpEq, `false`),
		{Any: []ConditionNode{
			leaf(FieldTenureDays, OpGte, `180`),
			leaf(FieldEmploymentType, OpEq, `"permanent"`),
		}},
	}}

	raw, err := node.Value()
	require.NoError(t, err)

	var decoded ConditionNode
	require.NoError(t, decoded.Scan(raw))

	ok, err := decoded.Evaluate(baseFacts())
	require.NoError(t, err)
	assert.True(t, ok)
}

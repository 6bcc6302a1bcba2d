package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewEvent 测试事件构造与校验
func TestNewEvent(t *testing.T) {
	tests := []struct {
		name      string
		eventName string
		tableName string
		wantErr   ErrorType
		wantOK    bool
	}{
		{
			name:      "合法事件",
			eventName: "login",
			tableName: "ieu_ods.ods_10000147_all_view",
			wantOK:    true,
		},
		{
			name:      "事件名为空",
			eventName: "",
			tableName: "ieu_ods.ods_10000147_all_view",
			wantErr:   ErrorTypeInvalidIdentifier,
		},
		{
			name:      "表名为空",
			eventName: "login",
			tableName: "",
			wantErr:   ErrorTypeInvalidTableName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := NewEvent(tt.eventName, tt.tableName)
			if tt.wantOK {
				require.NoError(t, err)
				assert.Equal(t, tt.eventName, e.Name)
			} else {
				require.Error(t, err)
				assert.True(t, IsErrorType(err, tt.wantErr))
			}
		})
	}
}

func TestEventPartitionFieldOrDefault(t *testing.T) {
	e := Event{Name: "login", TableName: "t"}
	assert.Equal(t, "ds", e.PartitionFieldOrDefault())

	e.PartitionField = "dt"
	assert.Equal(t, "dt", e.PartitionFieldOrDefault())
}

// TestFieldValidate 测试字段种类不变式
func TestFieldValidate(t *testing.T) {
	tests := []struct {
		name    string
		field   Field
		wantErr ErrorType
		wantOK  bool
	}{
		{
			name:   "base字段",
			field:  Field{Name: "role_id", Type: FieldTypeBase},
			wantOK: true,
		},
		{
			name:   "param字段带路径",
			field:  Field{Name: "zone", Type: FieldTypeParam, JsonPath: "$.zone_id"},
			wantOK: true,
		},
		{
			name:    "param字段缺路径",
			field:   Field{Name: "zone", Type: FieldTypeParam},
			wantErr: ErrorTypeMissingJsonPath,
		},
		{
			name:    "custom字段缺表达式",
			field:   Field{Name: "expr", Type: FieldTypeCustom},
			wantErr: ErrorTypeMissingCustomExpression,
		},
		{
			name:    "fixed字段缺值",
			field:   Field{Name: "source", Type: FieldTypeFixed},
			wantErr: ErrorTypeMissingFixedValue,
		},
		{
			name:    "未知字段种类",
			field:   Field{Name: "x", Type: "weird"},
			wantErr: ErrorTypeUnsupportedFieldType,
		},
		{
			name:    "非法聚合函数",
			field:   Field{Name: "x", Type: FieldTypeBase, AggregateFunc: "MEDIAN"},
			wantErr: ErrorTypeUnsupportedFieldType,
		},
		{
			name:   "合法聚合函数",
			field:  Field{Name: "x", Type: FieldTypeBase, AggregateFunc: AggregateCount},
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.field.Validate()
			if tt.wantOK {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.True(t, IsErrorType(err, tt.wantErr), "got: %v", err)
			}
		})
	}
}

// TestConditionValidate 测试条件不变式
func TestConditionValidate(t *testing.T) {
	tests := []struct {
		name    string
		cond    Condition
		wantErr ErrorType
		wantOK  bool
	}{
		{
			name:   "等值条件",
			cond:   Condition{Field: "level", Operator: OpEQ, Value: 10},
			wantOK: true,
		},
		{
			name:   "IS NULL无值",
			cond:   Condition{Field: "zone", Operator: OpIsNull},
			wantOK: true,
		},
		{
			name:    "IS NULL携带值",
			cond:    Condition{Field: "zone", Operator: OpIsNull, Value: 1},
			wantErr: ErrorTypeInvalidOperator,
		},
		{
			name:   "IN非空列表",
			cond:   Condition{Field: "level", Operator: OpIn, Value: []interface{}{1, 2, 3}},
			wantOK: true,
		},
		{
			name:   "IN原生int切片",
			cond:   Condition{Field: "level", Operator: OpIn, Value: []int{1, 2}},
			wantOK: true,
		},
		{
			name:    "IN非列表值",
			cond:    Condition{Field: "level", Operator: OpIn, Value: 1},
			wantErr: ErrorTypeInOperatorNeedsList,
		},
		{
			name:    "IN空列表",
			cond:    Condition{Field: "level", Operator: OpIn, Value: []interface{}{}},
			wantErr: ErrorTypeEmptyInList,
		},
		{
			name:    "未知运算符",
			cond:    Condition{Field: "level", Operator: "~"},
			wantErr: ErrorTypeInvalidOperator,
		},
		{
			name:    "字段为空",
			cond:    Condition{Field: "", Operator: OpEQ, Value: 1},
			wantErr: ErrorTypeInvalidIdentifier,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cond.Validate()
			if tt.wantOK {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.True(t, IsErrorType(err, tt.wantErr), "got: %v", err)
			}
		})
	}
}

func TestValueList(t *testing.T) {
	vs, ok := ValueList([]int{1, 2, 3})
	require.True(t, ok)
	assert.Len(t, vs, 3)

	_, ok = ValueList("abc")
	assert.False(t, ok)

	_, ok = ValueList(nil)
	assert.False(t, ok)
}

// TestJoinConfigValidate 测试连接配置校验
func TestJoinConfigValidate(t *testing.T) {
	_, err := NewJoinConfig("SEMI", []JoinKey{{LeftEvent: "a", LeftField: "id", RightEvent: "b", RightField: "id"}})
	assert.True(t, IsErrorType(err, ErrorTypeInvalidJoinType))

	_, err = NewJoinConfig(JoinInner, nil)
	assert.True(t, IsErrorType(err, ErrorTypeMissingJoinConditions))

	cfg, err := NewJoinConfig(JoinCross, nil)
	require.NoError(t, err)
	assert.Equal(t, JoinCross, cfg.JoinType)
}

// TestNewHQLContext 测试请求上下文校验
func TestNewHQLContext(t *testing.T) {
	event := Event{Name: "login", TableName: "ieu_ods.ods_10000147_all_view"}
	field := Field{Name: "role_id", Type: FieldTypeBase}

	_, err := NewHQLContext(nil, []Field{field}, nil, ModeSingle)
	assert.True(t, IsErrorType(err, ErrorTypeEmptyEvents))

	_, err = NewHQLContext([]Event{event}, nil, nil, ModeSingle)
	assert.True(t, IsErrorType(err, ErrorTypeEmptyFields))

	_, err = NewHQLContext([]Event{event}, []Field{field}, nil, "batch")
	assert.True(t, IsErrorType(err, ErrorTypeUnsupportedMode))

	_, err = NewHQLContext([]Event{event, event}, []Field{field}, nil, ModeJoin)
	assert.True(t, IsErrorType(err, ErrorTypeMissingJoinConfig))

	ctx, err := NewHQLContext([]Event{event}, []Field{field}, nil, ModeSingle)
	require.NoError(t, err)
	assert.Equal(t, SQLModeView, ctx.SQLMode)
}

func TestHQLDiffOnlyModifications(t *testing.T) {
	assert.False(t, HQLDiff{}.OnlyModifications())
	assert.True(t, HQLDiff{ModifiedFields: []string{"role_id"}}.OnlyModifications())
	assert.False(t, HQLDiff{ModifiedFields: []string{"a"}, AddedFields: []string{"b"}}.OnlyModifications())
	assert.False(t, HQLDiff{ModifiedConditions: []string{"a"}, EventsChanged: true}.OnlyModifications())
	assert.True(t, HQLDiff{}.Empty())
}

func TestBuildErrorMessage(t *testing.T) {
	err := NewBuildError(ErrorTypeUnsafeExpression, "expression contains forbidden token").
		WithFragment("DROP").
		WithSuggestions("remove DDL keywords from the expression")
	msg := err.Error()
	assert.Contains(t, msg, "UNSAFE_EXPRESSION")
	assert.Contains(t, msg, "DROP")
	assert.Contains(t, msg, "Suggestions")
}

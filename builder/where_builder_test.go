package builder

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ieudata/hqlgen/model"
)

// TestWhereBuilderSystemFilters 测试系统过滤条件永远在场
func TestWhereBuilderSystemFilters(t *testing.T) {
	wb := NewWhereBuilder()
	event := model.Event{Name: "login", TableName: "ieu_ods.ods_10000147_all_view"}

	// 无用户条件时仍输出分区过滤与事件名过滤
	got, err := wb.Build(nil, &event)
	require.NoError(t, err)
	assert.Equal(t, "ds = '${ds}' AND\n  event_name = 'login'", got)

	// 事件为nil时退回默认分区字段，无事件名过滤
	got, err = wb.Build(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "ds = '${ds}'", got)

	// 自定义分区字段
	event.PartitionField = "dt"
	got, err = wb.Build(nil, &event)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "dt = '${ds}'"))

	// 无事件名时只有分区过滤
	unnamed := model.Event{TableName: "t"}
	got, err = wb.Build(nil, &unnamed)
	require.NoError(t, err)
	assert.Equal(t, "ds = '${ds}'", got)
}

// TestWhereBuilderConjunctOrder 测试条件顺序：分区、事件名、用户条件
func TestWhereBuilderConjunctOrder(t *testing.T) {
	wb := NewWhereBuilder()
	event := model.Event{Name: "login", TableName: "t"}

	got, err := wb.Build([]model.Condition{
		{Field: "level", Operator: model.OpGT, Value: 10},
		{Field: "zone", Operator: model.OpEQ, Value: "east"},
	}, &event)
	require.NoError(t, err)

	parts := strings.Split(got, ConjunctSeparator)
	require.Len(t, parts, 4)
	assert.Equal(t, "ds = '${ds}'", parts[0])
	assert.Equal(t, "event_name = 'login'", parts[1])
	assert.Equal(t, "level > 10", parts[2])
	assert.Equal(t, "zone = 'east'", parts[3])
}

// TestWhereBuilderOperators 测试各运算符的渲染
func TestWhereBuilderOperators(t *testing.T) {
	wb := NewWhereBuilder()

	tests := []struct {
		name     string
		cond     model.Condition
		expected string
	}{
		{
			name:     "IS NULL",
			cond:     model.Condition{Field: "zone", Operator: model.OpIsNull},
			expected: "zone IS NULL",
		},
		{
			name:     "IS NOT NULL",
			cond:     model.Condition{Field: "zone", Operator: model.OpIsNotNull},
			expected: "zone IS NOT NULL",
		},
		{
			name:     "IN列表",
			cond:     model.Condition{Field: "level", Operator: model.OpIn, Value: []interface{}{1, 2, 3}},
			expected: "level IN (1, 2, 3)",
		},
		{
			name:     "NOT IN列表",
			cond:     model.Condition{Field: "zone", Operator: model.OpNotIn, Value: []interface{}{"a", "b"}},
			expected: "zone NOT IN ('a', 'b')",
		},
		{
			name:     "LIKE转义",
			cond:     model.Condition{Field: "name", Operator: model.OpLike, Value: "ab%"},
			expected: "name LIKE 'ab%'",
		},
		{
			name:     "布尔值",
			cond:     model.Condition{Field: "active", Operator: model.OpEQ, Value: true},
			expected: "active = TRUE",
		},
		{
			name:     "NULL值",
			cond:     model.Condition{Field: "zone", Operator: model.OpNE, Value: nil},
			expected: "zone != NULL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := wb.Build([]model.Condition{tt.cond}, nil)
			require.NoError(t, err)
			parts := strings.Split(got, ConjunctSeparator)
			require.Len(t, parts, 2)
			assert.Equal(t, tt.expected, parts[1])
		})
	}
}

// TestWhereBuilderInErrors 测试IN运算符的错误路径
func TestWhereBuilderInErrors(t *testing.T) {
	wb := NewWhereBuilder()

	_, err := wb.Build([]model.Condition{{Field: "level", Operator: model.OpIn, Value: 1}}, nil)
	assert.True(t, model.IsErrorType(err, model.ErrorTypeInOperatorNeedsList))

	_, err = wb.Build([]model.Condition{{Field: "level", Operator: model.OpIn, Value: []interface{}{}}}, nil)
	assert.True(t, model.IsErrorType(err, model.ErrorTypeEmptyInList))
}

// TestBuildComplexConditions 测试按逻辑连接符分组
func TestBuildComplexConditions(t *testing.T) {
	wb := NewWhereBuilder()
	event := model.Event{Name: "login", TableName: "t"}

	// 连续AND并入一组，整体只有一组时不加括号
	got, err := wb.BuildComplexConditions([]model.Condition{
		{Field: "level", Operator: model.OpGT, Value: 10},
		{Field: "zone", Operator: model.OpEQ, Value: "east", LogicalOp: model.LogicalAnd},
	}, &event)
	require.NoError(t, err)
	assert.Equal(t, "ds = '${ds}' AND level > 10 AND zone = 'east'", got)

	// OR条件各自成组
	got, err = wb.BuildComplexConditions([]model.Condition{
		{Field: "level", Operator: model.OpGT, Value: 10},
		{Field: "vip", Operator: model.OpEQ, Value: true, LogicalOp: model.LogicalOr},
	}, &event)
	require.NoError(t, err)
	assert.Equal(t, "(ds = '${ds}' AND level > 10) AND vip = TRUE", got)

	// 无用户条件时只有分区过滤
	got, err = wb.BuildComplexConditions(nil, &event)
	require.NoError(t, err)
	assert.Equal(t, "ds = '${ds}'", got)
}

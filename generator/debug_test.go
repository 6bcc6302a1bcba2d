package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ieudata/hqlgen/model"
)

// TestDebuggableGenerate 调试生成记录三个步骤且最终输出与普通生成一致
func TestDebuggableGenerate(t *testing.T) {
	dg := NewDebuggableHQLGenerator()
	events := []model.Event{loginEvent()}
	fields := []model.Field{{Name: "role_id", Type: model.FieldTypeBase}}
	conds := []model.Condition{{Field: "level", Operator: model.OpGT, Value: 10}}

	result, err := dg.Generate(events, fields, conds, DefaultOptions())
	require.NoError(t, err)

	require.Len(t, result.Steps, 3)
	assert.Equal(t, "build_fields", result.Steps[0].Name)
	assert.Equal(t, "`role_id`", result.Steps[0].Output)
	assert.Equal(t, "build_where", result.Steps[1].Name)
	assert.Contains(t, result.Steps[1].Output, "ds = '${ds}'")
	assert.Contains(t, result.Steps[1].Output, "level > 10")
	assert.Equal(t, "assemble", result.Steps[2].Name)
	assert.Equal(t, result.FinalHQL, result.Steps[2].Output)
	assert.NotEmpty(t, result.TraceID)

	plain, err := NewHQLGenerator().Generate(events, fields, conds, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, plain, result.FinalHQL)
}

// TestDebuggableGenerateError 构建错误原样上抛
func TestDebuggableGenerateError(t *testing.T) {
	dg := NewDebuggableHQLGenerator()

	_, err := dg.Generate(
		[]model.Event{loginEvent()},
		[]model.Field{{Name: "x", Type: model.FieldTypeCustom, CustomExpression: "1; DROP TABLE t"}},
		nil,
		DefaultOptions(),
	)
	assert.True(t, model.IsErrorType(err, model.ErrorTypeUnsafeExpression))
}

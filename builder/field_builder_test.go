package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ieudata/hqlgen/model"
)

// TestFieldBuilderBase 测试base字段构建
func TestFieldBuilderBase(t *testing.T) {
	fb := NewFieldBuilder()

	tests := []struct {
		name     string
		field    model.Field
		expected string
	}{
		{
			name:     "裸列",
			field:    model.Field{Name: "role_id", Type: model.FieldTypeBase},
			expected: "`role_id`",
		},
		{
			name:     "带别名",
			field:    model.Field{Name: "role_id", Type: model.FieldTypeBase, Alias: "role"},
			expected: "`role_id` AS `role`",
		},
		{
			name:     "聚合包裹",
			field:    model.Field{Name: "role_id", Type: model.FieldTypeBase, AggregateFunc: model.AggregateCount},
			expected: "COUNT(`role_id`)",
		},
		{
			name:     "聚合加别名",
			field:    model.Field{Name: "amount", Type: model.FieldTypeBase, AggregateFunc: model.AggregateSum, Alias: "total"},
			expected: "SUM(`amount`) AS `total`",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fb.Build(tt.field)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

// TestFieldBuilderParam 测试param字段构建
func TestFieldBuilderParam(t *testing.T) {
	fb := NewFieldBuilder()

	got, err := fb.Build(model.Field{Name: "zone", Type: model.FieldTypeParam, JsonPath: "$.zone_id", Alias: "zone"})
	require.NoError(t, err)
	assert.Equal(t, "get_json_object(params, '$.zone_id') AS `zone`", got)

	// 路径不以$开头时补全$.前缀
	got, err = fb.Build(model.Field{Name: "zone", Type: model.FieldTypeParam, JsonPath: "zone_id"})
	require.NoError(t, err)
	assert.Equal(t, "get_json_object(params, '$.zone_id') AS `zone`", got)

	// 聚合时先CAST成STRING
	got, err = fb.Build(model.Field{Name: "zone", Type: model.FieldTypeParam, JsonPath: "$.zone_id", AggregateFunc: model.AggregateCount})
	require.NoError(t, err)
	assert.Equal(t, "COUNT(CAST(get_json_object(params, '$.zone_id') AS STRING)) AS `zone`", got)
}

// TestFieldBuilderCustom 测试custom字段构建与安全护栏
func TestFieldBuilderCustom(t *testing.T) {
	fb := NewFieldBuilder()

	got, err := fb.Build(model.Field{Name: "lvl", Type: model.FieldTypeCustom, CustomExpression: "CAST(level AS INT)", Alias: "lvl"})
	require.NoError(t, err)
	assert.Equal(t, "CAST(level AS INT) AS `lvl`", got)

	dangerous := []string{
		"1; DROP TABLE users",
		"DELETE FROM t",
		"x -- comment",
		"a /* b */ c",
		"exec xp_cmdshell",
		"TRUNCATE t",
	}
	for _, expr := range dangerous {
		_, err := fb.Build(model.Field{Name: "x", Type: model.FieldTypeCustom, CustomExpression: expr})
		assert.True(t, model.IsErrorType(err, model.ErrorTypeUnsafeExpression), "expression should be rejected: %s", expr)
	}
}

// TestFieldBuilderFixed 测试fixed字段字面量输出
func TestFieldBuilderFixed(t *testing.T) {
	fb := NewFieldBuilder()

	tests := []struct {
		name     string
		field    model.Field
		expected string
	}{
		{
			name:     "字符串值",
			field:    model.Field{Name: "source", Type: model.FieldTypeFixed, FixedValue: "ios"},
			expected: "'ios' AS `source`",
		},
		{
			name:     "字符串转义",
			field:    model.Field{Name: "note", Type: model.FieldTypeFixed, FixedValue: "it's"},
			expected: "'it''s' AS `note`",
		},
		{
			name:     "布尔值",
			field:    model.Field{Name: "active", Type: model.FieldTypeFixed, FixedValue: true},
			expected: "TRUE AS `active`",
		},
		{
			name:     "整数值",
			field:    model.Field{Name: "version", Type: model.FieldTypeFixed, FixedValue: 3},
			expected: "3 AS `version`",
		},
		{
			name:     "浮点值",
			field:    model.Field{Name: "rate", Type: model.FieldTypeFixed, FixedValue: 0.5},
			expected: "0.5 AS `rate`",
		},
		{
			name:     "别名覆盖",
			field:    model.Field{Name: "source", Type: model.FieldTypeFixed, FixedValue: "ios", Alias: "channel"},
			expected: "'ios' AS `channel`",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fb.Build(tt.field)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

// TestEscapeIdentifier 测试标识符校验
func TestEscapeIdentifier(t *testing.T) {
	got, err := EscapeIdentifier("role_id")
	require.NoError(t, err)
	assert.Equal(t, "`role_id`", got)

	got, err = EscapeIdentifier("_tmp$1")
	require.NoError(t, err)
	assert.Equal(t, "`_tmp$1`", got)

	invalid := []string{"", "1abc", "a-b", "a b", "a`b", "a;b", "中文"}
	for _, name := range invalid {
		_, err := EscapeIdentifier(name)
		assert.True(t, model.IsErrorType(err, model.ErrorTypeInvalidIdentifier), "identifier should be rejected: %q", name)
	}
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "NULL", FormatValue(nil))
	assert.Equal(t, "TRUE", FormatValue(true))
	assert.Equal(t, "FALSE", FormatValue(false))
	assert.Equal(t, "42", FormatValue(42))
	assert.Equal(t, "-7", FormatValue(int64(-7)))
	assert.Equal(t, "3.14", FormatValue(3.14))
	assert.Equal(t, "'abc'", FormatValue("abc"))
	assert.Equal(t, `'a\\b'`, FormatValue(`a\b`))
	assert.Equal(t, "'it''s'", FormatValue("it's"))
}

func TestBuildAllKeepsOrder(t *testing.T) {
	fb := NewFieldBuilder()
	exprs, err := fb.BuildAll([]model.Field{
		{Name: "b", Type: model.FieldTypeBase},
		{Name: "a", Type: model.FieldTypeBase},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"`b`", "`a`"}, exprs)
}

package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ieudata/hqlgen/builder"
	"github.com/ieudata/hqlgen/model"
)

func loginEvent() model.Event {
	return model.Event{Name: "login", TableName: "ieu_ods.ods_10000147_all_view"}
}

// TestGenerateSingleSimple 单事件、base字段、无用户条件
func TestGenerateSingleSimple(t *testing.T) {
	g := NewHQLGenerator()

	hql, err := g.Generate(
		[]model.Event{loginEvent()},
		[]model.Field{{Name: "role_id", Type: model.FieldTypeBase}},
		nil,
		DefaultOptions(),
	)
	require.NoError(t, err)

	// 关键片段按顺序出现
	expected := []string{
		"-- Event Node: login",
		"SELECT",
		"`role_id`",
		"FROM ieu_ods.ods_10000147_all_view",
		"WHERE",
		"ds = '${ds}'",
		"event_name = 'login'",
	}
	pos := 0
	for _, fragment := range expected {
		idx := strings.Index(hql[pos:], fragment)
		require.GreaterOrEqual(t, idx, 0, "fragment %q not found after position %d in:\n%s", fragment, pos, hql)
		pos += idx + len(fragment)
	}
	assert.Contains(t, hql, "-- 中文: login")
	assert.False(t, strings.HasSuffix(hql, ";"))
}

// TestGenerateSingleParamField param字段的JSON提取
func TestGenerateSingleParamField(t *testing.T) {
	g := NewHQLGenerator()

	hql, err := g.Generate(
		[]model.Event{loginEvent()},
		[]model.Field{
			{Name: "role_id", Type: model.FieldTypeBase},
			{Name: "zone", Type: model.FieldTypeParam, JsonPath: "$.zone_id", Alias: "zone"},
		},
		nil,
		DefaultOptions(),
	)
	require.NoError(t, err)
	assert.Contains(t, hql, "get_json_object(params, '$.zone_id') AS `zone`")
}

// TestGenerateSingleInCondition IN条件渲染在系统过滤之后
func TestGenerateSingleInCondition(t *testing.T) {
	g := NewHQLGenerator()

	hql, err := g.Generate(
		[]model.Event{loginEvent()},
		[]model.Field{{Name: "role_id", Type: model.FieldTypeBase}},
		[]model.Condition{{Field: "level", Operator: model.OpIn, Value: []interface{}{1, 2, 3}}},
		DefaultOptions(),
	)
	require.NoError(t, err)

	whereIdx := strings.Index(hql, "WHERE\n  ")
	require.GreaterOrEqual(t, whereIdx, 0)
	whereBody := hql[whereIdx+len("WHERE\n  "):]
	parts := strings.Split(whereBody, builder.ConjunctSeparator)
	require.Len(t, parts, 3)
	assert.Equal(t, "ds = '${ds}'", parts[0])
	assert.Equal(t, "event_name = 'login'", parts[1])
	assert.Equal(t, "level IN (1, 2, 3)", parts[2])
}

// TestGenerateWithoutComments 关闭注释块
func TestGenerateWithoutComments(t *testing.T) {
	g := NewHQLGenerator()
	opts := DefaultOptions()
	opts.IncludeComments = false

	hql, err := g.Generate(
		[]model.Event{loginEvent()},
		[]model.Field{{Name: "role_id", Type: model.FieldTypeBase}},
		nil,
		opts,
	)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hql, "SELECT"))
	assert.NotContains(t, hql, "--")
}

// TestGenerateModeErrors 模式与事件数不匹配
func TestGenerateModeErrors(t *testing.T) {
	g := NewHQLGenerator()
	field := model.Field{Name: "role_id", Type: model.FieldTypeBase}
	events := []model.Event{loginEvent(), {Name: "pay", TableName: "ieu_ods.ods_10000148_all_view"}}

	opts := DefaultOptions()
	_, err := g.Generate(events, []model.Field{field}, nil, opts)
	assert.True(t, model.IsErrorType(err, model.ErrorTypeWrongEventCount))

	opts.Mode = model.ModeJoin
	_, err = g.Generate(events, []model.Field{field}, nil, opts)
	assert.True(t, model.IsErrorType(err, model.ErrorTypeMissingJoinConfig))

	opts.Mode = model.ModeUnion
	_, err = g.Generate(events[:1], []model.Field{field}, nil, opts)
	assert.True(t, model.IsErrorType(err, model.ErrorTypeWrongEventCount))

	opts.Mode = "batch"
	_, err = g.Generate(events, []model.Field{field}, nil, opts)
	assert.True(t, model.IsErrorType(err, model.ErrorTypeUnsupportedMode))
}

// TestGenerateJoinMode 连接模式组装
func TestGenerateJoinMode(t *testing.T) {
	g := NewHQLGenerator()
	events := []model.Event{loginEvent(), {Name: "pay", TableName: "ieu_ods.ods_10000148_all_view"}}
	cfg := model.JoinConfig{
		JoinType: model.JoinInner,
		JoinKeys: []model.JoinKey{{LeftEvent: "login", LeftField: "role_id", RightEvent: "pay", RightField: "role_id"}},
	}
	opts := DefaultOptions()
	opts.Mode = model.ModeJoin
	opts.JoinConfig = &cfg

	hql, err := g.Generate(events,
		[]model.Field{{Name: "role_id", Type: model.FieldTypeBase}},
		[]model.Condition{{Field: "login.level", Operator: model.OpGT, Value: 10}},
		opts)
	require.NoError(t, err)

	assert.Contains(t, hql, "SELECT\n  login.`role_id`")
	assert.Contains(t, hql, "FROM ieu_ods.ods_10000147_all_view AS login")
	assert.Contains(t, hql, "INNER JOIN ieu_ods.ods_10000148_all_view AS pay ON login.role_id = pay.role_id")
	assert.Contains(t, hql, "ds = '${ds}'")
	assert.Contains(t, hql, "event_name = 'login'")
	assert.Contains(t, hql, "login.level > 10")
}

// TestGenerateUnionMode 并联模式，默认带分区过滤
func TestGenerateUnionMode(t *testing.T) {
	g := NewHQLGenerator()
	events := []model.Event{loginEvent(), {Name: "logout", TableName: "ieu_ods.ods_10000149_all_view"}}
	fields := []model.Field{{Name: "role_id", Type: model.FieldTypeBase}}

	opts := DefaultOptions()
	opts.Mode = model.ModeUnion
	opts.IncludeComments = false

	hql, err := g.Generate(events, fields, nil, opts)
	require.NoError(t, err)
	blocks := strings.Split(hql, builder.UnionSeparator)
	require.Len(t, blocks, 2)
	for _, block := range blocks {
		assert.Contains(t, block, "ds = '${ds}'")
	}

	// 关闭分区过滤时退回纯UNION ALL
	opts.IncludePartitionFilter = false
	hql, err = g.Generate(events, fields, nil, opts)
	require.NoError(t, err)
	assert.NotContains(t, hql, "WHERE")
}

// TestCommentBlockEmptyEvents 空事件列表不输出注释也不崩溃
func TestCommentBlockEmptyEvents(t *testing.T) {
	g := NewHQLGenerator()
	assert.Equal(t, "", g.commentBlock(nil))
}

// TestGenerateDeterministic 相同输入逐字节一致
func TestGenerateDeterministic(t *testing.T) {
	g := NewHQLGenerator()
	events := []model.Event{loginEvent()}
	fields := []model.Field{{Name: "role_id", Type: model.FieldTypeBase}}
	conds := []model.Condition{{Field: "level", Operator: model.OpGT, Value: 10}}

	first, err := g.Generate(events, fields, conds, DefaultOptions())
	require.NoError(t, err)
	second, err := g.Generate(events, fields, conds, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

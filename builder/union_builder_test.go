package builder

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ieudata/hqlgen/model"
)

func unionTestEvents() []model.Event {
	return []model.Event{
		{Name: "login", TableName: "ieu_ods.ods_10000147_all_view"},
		{Name: "logout", TableName: "ieu_ods.ods_10000149_all_view"},
	}
}

func unionTestFields() []model.Field {
	return []model.Field{
		{Name: "role_id", Type: model.FieldTypeBase},
		{Name: "zone", Type: model.FieldTypeParam, JsonPath: "$.zone_id"},
	}
}

// TestBuildUnionAll 测试UNION ALL基本输出与字段位置对应
func TestBuildUnionAll(t *testing.T) {
	ub := NewUnionBuilder()

	got, err := ub.BuildUnionAll(unionTestEvents(), unionTestFields(), true)
	require.NoError(t, err)

	blocks := strings.Split(got, UnionSeparator)
	require.Len(t, blocks, 2)
	for _, block := range blocks {
		// 每个子SELECT字段顺序一致
		roleIdx := strings.Index(block, "`role_id`")
		zoneIdx := strings.Index(block, "`zone`")
		assert.Greater(t, roleIdx, -1)
		assert.Greater(t, zoneIdx, roleIdx)
	}
	assert.Contains(t, blocks[0], "FROM ieu_ods.ods_10000147_all_view AS login")
	assert.Contains(t, blocks[1], "FROM ieu_ods.ods_10000149_all_view AS logout")
}

// TestBuildUnionAllErrors 测试UNION输入校验
func TestBuildUnionAllErrors(t *testing.T) {
	ub := NewUnionBuilder()

	_, err := ub.BuildUnionAll(unionTestEvents()[:1], unionTestFields(), true)
	assert.True(t, model.IsErrorType(err, model.ErrorTypeWrongEventCount))

	_, err = ub.BuildUnionAll(unionTestEvents(), nil, true)
	assert.True(t, model.IsErrorType(err, model.ErrorTypeEmptyFields))
}

// TestBuildUnionWithPartitionFilter 测试每个子SELECT的分区过滤
func TestBuildUnionWithPartitionFilter(t *testing.T) {
	ub := NewUnionBuilder()
	events := unionTestEvents()
	events[1].PartitionField = "dt"

	got, err := ub.BuildUnionWithPartitionFilter(events, unionTestFields(), false)
	require.NoError(t, err)

	blocks := strings.Split(got, UnionSeparator)
	require.Len(t, blocks, 2)
	assert.Contains(t, blocks[0], "WHERE\n  ds = '${ds}'")
	assert.Contains(t, blocks[1], "WHERE\n  dt = '${ds}'")
}

// TestBuildUnionWithWhere 测试每个事件的专属WHERE
func TestBuildUnionWithWhere(t *testing.T) {
	ub := NewUnionBuilder()
	events := unionTestEvents()

	got, err := ub.BuildUnionWithWhere([]EventConditions{
		{Event: events[0], Conditions: []model.Condition{{Field: "level", Operator: model.OpGT, Value: 10}}},
		{Event: events[1], Conditions: nil},
	}, unionTestFields(), false)
	require.NoError(t, err)

	blocks := strings.Split(got, UnionSeparator)
	require.Len(t, blocks, 2)
	assert.Contains(t, blocks[0], "event_name = 'login'")
	assert.Contains(t, blocks[0], "level > 10")
	assert.Contains(t, blocks[1], "event_name = 'logout'")
	assert.NotContains(t, blocks[1], "level > 10")
}

// TestBuildUnionWithCustomFields 测试异构投影
func TestBuildUnionWithCustomFields(t *testing.T) {
	ub := NewUnionBuilder()
	events := unionTestEvents()

	got, err := ub.BuildUnionWithCustomFields([]EventFields{
		{Event: events[0], Fields: []model.Field{{Name: "role_id", Type: model.FieldTypeBase}}},
		{Event: events[1], Fields: []model.Field{{Name: "evt", Type: model.FieldTypeFixed, FixedValue: "logout"}}},
	}, false)
	require.NoError(t, err)

	blocks := strings.Split(got, UnionSeparator)
	require.Len(t, blocks, 2)
	assert.Contains(t, blocks[0], "`role_id`")
	assert.Contains(t, blocks[1], "'logout' AS `evt`")

	_, err = ub.BuildUnionWithCustomFields([]EventFields{
		{Event: events[0], Fields: nil},
		{Event: events[1], Fields: []model.Field{{Name: "a", Type: model.FieldTypeBase}}},
	}, false)
	assert.True(t, model.IsErrorType(err, model.ErrorTypeEmptyFields))
}

// TestBuildUnionWithAlias 测试整体包裹为子查询
func TestBuildUnionWithAlias(t *testing.T) {
	ub := NewUnionBuilder()

	got, err := ub.BuildUnionWithAlias(unionTestEvents(), unionTestFields(), "combined", false)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "(\n"))
	assert.True(t, strings.HasSuffix(got, ") AS `combined`"))

	_, err = ub.BuildUnionWithAlias(unionTestEvents(), unionTestFields(), "1bad", false)
	assert.True(t, model.IsErrorType(err, model.ErrorTypeInvalidIdentifier))
}

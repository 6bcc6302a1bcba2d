package condition

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/ieudata/hqlgen/model"
)

// Condition 可对一行样例数据求值的谓词。
// 用于在下发HQL前对用户条件做本地预演。
type Condition interface {
	Evaluate(env interface{}) bool
}

type ExprCondition struct {
	program *vm.Program
}

// NewExprCondition 编译一条表达式为可求值的谓词。
// 注入like_match以支持SQL的LIKE语义（startsWith、endsWith、contains是内置操作符）。
func NewExprCondition(expression string) (Condition, error) {
	options := []expr.Option{
		expr.Function("like_match", func(params ...interface{}) (interface{}, error) {
			if len(params) != 2 {
				return false, fmt.Errorf("like_match function requires 2 parameters")
			}
			text, ok1 := params[0].(string)
			pattern, ok2 := params[1].(string)
			if !ok1 || !ok2 {
				return false, fmt.Errorf("like_match function requires string parameters")
			}
			return matchesLikePattern(text, pattern), nil
		}),
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	}

	program, err := expr.Compile(expression, options...)
	if err != nil {
		return nil, err
	}
	return &ExprCondition{program: program}, nil
}

func (ec *ExprCondition) Evaluate(env interface{}) bool {
	result, err := expr.Run(ec.program, env)
	if err != nil {
		return false
	}
	return result.(bool)
}

// FromModel 把一组模型条件翻译成单条表达式并编译。
// SQL比较符映射到表达式语言：= 变 ==，AND/OR 变 &&/||，
// LIKE 走 like_match，IS NULL 变 == nil，IN 变 in 列表。
// 空列表编译为恒真谓词。
func FromModel(conditions []model.Condition) (Condition, error) {
	source, err := TranslateConditions(conditions)
	if err != nil {
		return nil, err
	}
	return NewExprCondition(source)
}

// TranslateConditions 生成FromModel所用的表达式源文本
func TranslateConditions(conditions []model.Condition) (string, error) {
	if len(conditions) == 0 {
		return "true", nil
	}

	var builder strings.Builder
	for i, c := range conditions {
		if err := c.Validate(); err != nil {
			return "", err
		}
		if i > 0 {
			if c.LogicalOpOrDefault() == model.LogicalOr {
				builder.WriteString(" || ")
			} else {
				builder.WriteString(" && ")
			}
		}
		clause, err := translateCondition(c)
		if err != nil {
			return "", err
		}
		builder.WriteString(clause)
	}
	return builder.String(), nil
}

func translateCondition(c model.Condition) (string, error) {
	switch c.Operator {
	case model.OpEQ:
		return fmt.Sprintf("%s == %s", c.Field, exprLiteral(c.Value)), nil
	case model.OpNE:
		return fmt.Sprintf("%s != %s", c.Field, exprLiteral(c.Value)), nil
	case model.OpGT, model.OpLT, model.OpGE, model.OpLE:
		return fmt.Sprintf("%s %s %s", c.Field, c.Operator, exprLiteral(c.Value)), nil
	case model.OpLike:
		return fmt.Sprintf("like_match(%s, %s)", c.Field, exprLiteral(c.Value)), nil
	case model.OpIsNull:
		return fmt.Sprintf("%s == nil", c.Field), nil
	case model.OpIsNotNull:
		return fmt.Sprintf("%s != nil", c.Field), nil
	case model.OpIn, model.OpNotIn:
		values, ok := model.ValueList(c.Value)
		if !ok {
			return "", model.NewBuildErrorf(model.ErrorTypeInOperatorNeedsList,
				"operator '%s' requires a list value", c.Operator)
		}
		literals := make([]string, len(values))
		for i, v := range values {
			literals[i] = exprLiteral(v)
		}
		clause := fmt.Sprintf("%s in [%s]", c.Field, strings.Join(literals, ", "))
		if c.Operator == model.OpNotIn {
			clause = "not (" + clause + ")"
		}
		return clause, nil
	default:
		return "", model.NewBuildErrorf(model.ErrorTypeInvalidOperator,
			"cannot translate operator '%s'", c.Operator)
	}
}

// exprLiteral 把Go值渲染成表达式字面量
func exprLiteral(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return "nil"
	case string:
		return fmt.Sprintf("%q", v)
	case bool:
		if v {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", v)
	}
}

// matchesLikePattern 实现LIKE模式匹配
// 支持%（匹配任意字符序列）和_（匹配单个字符）
func matchesLikePattern(text, pattern string) bool {
	return likeMatch(text, pattern, 0, 0)
}

// likeMatch 递归实现LIKE匹配算法
func likeMatch(text, pattern string, textIndex, patternIndex int) bool {
	// 如果模式已经匹配完成
	if patternIndex >= len(pattern) {
		return textIndex >= len(text) // 文本也应该匹配完成
	}

	// 如果文本已经结束，但模式还有非%字符，则不匹配
	if textIndex >= len(text) {
		// 检查剩余的模式是否都是%
		for i := patternIndex; i < len(pattern); i++ {
			if pattern[i] != '%' {
				return false
			}
		}
		return true
	}

	patternChar := pattern[patternIndex]

	if patternChar == '%' {
		// %可以匹配0个或多个字符
		if likeMatch(text, pattern, textIndex, patternIndex+1) {
			return true
		}
		for i := textIndex; i < len(text); i++ {
			if likeMatch(text, pattern, i+1, patternIndex+1) {
				return true
			}
		}
		return false
	} else if patternChar == '_' {
		// _匹配恰好一个字符
		return likeMatch(text, pattern, textIndex+1, patternIndex+1)
	} else {
		if text[textIndex] == patternChar {
			return likeMatch(text, pattern, textIndex+1, patternIndex+1)
		}
		return false
	}
}

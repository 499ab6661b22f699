package query

import "fmt"

// Condition renders one WHERE predicate using Spanner named parameters.
// paramIndex is the first free parameter number (@p0, @p1, ...).
type Condition interface {
	SQL(paramIndex int) (string, map[string]interface{})
}

type comparison struct {
	field    string
	operator string
	value    interface{}
}

func (c *comparison) SQL(paramIndex int) (string, map[string]interface{}) {
	name := fmt.Sprintf("p%d", paramIndex)
	return fmt.Sprintf("%s %s @%s", c.field, c.operator, name), map[string]interface{}{name: c.value}
}

// Eq renders "field = @pN".
func Eq(field string, value interface{}) Condition {
	return &comparison{field: field, operator: "=", value: value}
}

// Lt renders "field < @pN".
func Lt(field string, value interface{}) Condition {
	return &comparison{field: field, operator: "<", value: value}
}

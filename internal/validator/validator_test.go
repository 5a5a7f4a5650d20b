package validator

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidator(t *testing.T) {
	v := New()
	assert.True(t, v.Valid())

	v.Check(true, "ok", "should not appear")
	assert.True(t, v.Valid())

	v.Check(false, "period", "must be 'month' or 'year'")
	assert.False(t, v.Valid())
	assert.Equal(t, "must be 'month' or 'year'", v.Errors["period"])

	// 同一个 key 只保留第一条错误
	v.AddError("period", "another message")
	assert.Equal(t, "must be 'month' or 'year'", v.Errors["period"])
}

func TestIn(t *testing.T) {
	assert.True(t, In("month", "month", "year"))
	assert.False(t, In("week", "month", "year"))
	assert.False(t, In("month"))
}

func TestUnique(t *testing.T) {
	assert.True(t, Unique([]string{"a", "b"}))
	assert.False(t, Unique([]string{"a", "a"}))
}

func TestMatches(t *testing.T) {
	rx := regexp.MustCompile(`^\d{4}$`)
	assert.True(t, Matches("1995", rx))
	assert.False(t, Matches("95", rx))
}

package data

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/liliang-cn/movielens/internal/validator"
)

func TestValidateFilters(t *testing.T) {
	safelist := []string{"id", "avg_rating", "-avg_rating"}

	tests := []struct {
		name    string
		filters Filters
		valid   bool
	}{
		{"ok", Filters{Limit: 50, Sort: "-avg_rating", SortSafelist: safelist}, true},
		{"zero limit", Filters{Limit: 0, Sort: "id", SortSafelist: safelist}, false},
		{"limit too large", Filters{Limit: 251, Sort: "id", SortSafelist: safelist}, false},
		{"unsafe sort", Filters{Limit: 10, Sort: "title; DROP TABLE movies", SortSafelist: safelist}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validator.New()
			ValidateFilters(v, tt.filters)
			assert.Equal(t, tt.valid, v.Valid())
		})
	}
}

func TestFiltersSortColumn(t *testing.T) {
	f := Filters{Sort: "-avg_rating", SortSafelist: []string{"avg_rating", "-avg_rating"}}

	assert.Equal(t, "avg_rating", f.sortColumn())
	assert.Equal(t, "DESC", f.sortDirection())

	f.Sort = "avg_rating"
	assert.Equal(t, "ASC", f.sortDirection())
}

func TestFiltersSortColumnPanicsOnUnsafeValue(t *testing.T) {
	f := Filters{Sort: "evil", SortSafelist: []string{"id"}}

	assert.Panics(t, func() { f.sortColumn() })
}

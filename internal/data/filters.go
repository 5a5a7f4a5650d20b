package data

import (
	"strings"

	"github.com/liliang-cn/movielens/internal/validator"
)

type Filters struct {
	Limit        int
	Sort         string
	SortSafelist []string
}

// ValidateFilters 校验过滤条件
func ValidateFilters(v *validator.Validator, f Filters) {
	v.Check(f.Limit > 0, "limit", "must be greater than zero")
	v.Check(f.Limit <= 250, "limit", "must be a maximum of 250")
	v.Check(validator.In(f.Sort, f.SortSafelist...), "sort", "invalid sort value")
}

// sortColumn 检查客户端提供的排序条件是否在允许排序的列表中
func (f Filters) sortColumn() string {
	for _, safeValue := range f.SortSafelist {
		if f.Sort == safeValue {
			return strings.TrimPrefix(f.Sort, "-")
		}
	}

	panic("unsafe sort parameter: " + f.Sort)
}

// sortDirection 返回排序正向或者反向
func (f Filters) sortDirection() string {
	if strings.HasPrefix(f.Sort, "-") {
		return "DESC"
	}

	return "ASC"
}

// limit 返回列表长度上限
func (f Filters) limit() int {
	return f.Limit
}

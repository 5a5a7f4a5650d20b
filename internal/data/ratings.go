package data

import (
	"context"
	"database/sql"
	"math"
	"time"

	"github.com/liliang-cn/movielens/internal/validator"
)

// 评分时间序列的分组粒度
const (
	PeriodMonth = "month"
	PeriodYear  = "year"
)

// RatingSeries 某部电影的评分时间序列
// 三个切片按时间升序一一对应，月粒度的标签是 YYYY-MM，年粒度是 YYYY
type RatingSeries struct {
	Periods      []string  `json:"periods"`
	AvgRatings   []float64 `json:"avg_ratings"`
	RatingCounts []int64   `json:"rating_counts"`
	TotalRatings int64     `json:"total_ratings"`
}

// RatingModel 评分模型类型
type RatingModel struct {
	DB *sql.DB
}

// Count 返回评分总数
func (m RatingModel) Count() (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var count int64
	err := m.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM ratings`).Scan(&count)
	return count, err
}

// OverTime 按月或按年聚合某部电影的评分
// 没有评分的电影返回空序列而不是错误
func (m RatingModel) OverTime(movieID int64, period string) (*RatingSeries, error) {
	format := "%Y-%m"
	if period == PeriodYear {
		format = "%Y"
	}

	// rated_at 存的是 Unix 秒，交给 strftime 的 unixepoch 修饰符分桶
	query := `
		SELECT strftime(?1, rated_at, 'unixepoch') AS period,
			AVG(rating), COUNT(*)
		FROM ratings
		WHERE movie_id = ?2
		GROUP BY period
		ORDER BY period ASC`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := m.DB.QueryContext(ctx, query, format, movieID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	series := &RatingSeries{
		Periods:      []string{},
		AvgRatings:   []float64{},
		RatingCounts: []int64{},
	}

	for rows.Next() {
		var label string
		var avg float64
		var count int64

		err := rows.Scan(&label, &avg, &count)
		if err != nil {
			return nil, err
		}

		series.Periods = append(series.Periods, label)
		series.AvgRatings = append(series.AvgRatings, math.Round(avg*100)/100)
		series.RatingCounts = append(series.RatingCounts, count)
		series.TotalRatings += count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return series, nil
}

// ValidatePeriod 校验分组粒度参数
func ValidatePeriod(v *validator.Validator, period string) {
	v.Check(validator.In(period, PeriodMonth, PeriodYear), "period", "must be 'month' or 'year'")
}

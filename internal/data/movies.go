package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/liliang-cn/movielens/internal/validator"
)

// Movie 电影记录，评分字段在数据集导入时预先计算好
type Movie struct {
	ID          int64   `json:"movieId"`
	Title       string  `json:"title"`
	Year        int32   `json:"year,omitempty"`
	Genres      Genres  `json:"genres"`
	AvgRating   float64 `json:"avg_rating"`
	RatingCount int64   `json:"rating_count"`
}

// MovieModel 电影模型类型
type MovieModel struct {
	DB *sql.DB
}

// Get 根据 ID 获取电影
func (m MovieModel) Get(id int64) (*Movie, error) {
	if id < 1 {
		return nil, ErrRecordNotFound
	}

	query := `
		SELECT id, title, year, genres, avg_rating, rating_count
		FROM movies
		WHERE id = ?`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var movie Movie
	var genres string

	err := m.DB.QueryRowContext(ctx, query, id).Scan(
		&movie.ID,
		&movie.Title,
		&movie.Year,
		&genres,
		&movie.AvgRating,
		&movie.RatingCount,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	movie.Genres = ParseGenreList(genres)

	return &movie, nil
}

// GetAll 返回电影列表，title 为空时不做标题过滤，minRatings 是评分数下限
func (m MovieModel) GetAll(title string, minRatings int, filters Filters) ([]*Movie, error) {
	// 排序字段来自白名单，可以安全地拼进 SQL
	query := fmt.Sprintf(`
		SELECT id, title, year, genres, avg_rating, rating_count
		FROM movies
		WHERE (?1 = '' OR instr(lower(title), lower(?1)) > 0)
		AND rating_count >= ?2
		ORDER BY %s %s, id ASC
		LIMIT ?3`, filters.sortColumn(), filters.sortDirection())

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := m.DB.QueryContext(ctx, query, title, minRatings, filters.limit())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectMovies(rows)
}

// Count 返回电影总数
func (m MovieModel) Count() (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var count int64
	err := m.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM movies`).Scan(&count)
	return count, err
}

// Recommend 根据类型重合度推荐相似电影
// 候选电影按 重合度降序、平均评分降序 排列，排除源电影本身
// 以及评分数不足 minRatings 的电影，源电影没有类型时返回空列表
func (m MovieModel) Recommend(source *Movie, minRatings, limit int) ([]*Movie, error) {
	if len(source.Genres) == 0 {
		return []*Movie{}, nil
	}

	query := `
		SELECT id, title, year, genres, avg_rating, rating_count
		FROM movies
		WHERE id != ? AND rating_count >= ?`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := m.DB.QueryContext(ctx, query, source.ID, minRatings)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	candidates, err := collectMovies(rows)
	if err != nil {
		return nil, err
	}

	type scored struct {
		movie *Movie
		score int
	}

	matches := make([]scored, 0, len(candidates))
	for _, candidate := range candidates {
		if score := source.Genres.MatchScore(candidate.Genres); score > 0 {
			matches = append(matches, scored{movie: candidate, score: score})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].score != matches[j].score {
			return matches[i].score > matches[j].score
		}
		if matches[i].movie.AvgRating != matches[j].movie.AvgRating {
			return matches[i].movie.AvgRating > matches[j].movie.AvgRating
		}
		return matches[i].movie.ID < matches[j].movie.ID
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	movies := make([]*Movie, len(matches))
	for i, match := range matches {
		movies[i] = match.movie
	}

	return movies, nil
}

// collectMovies 从查询结果中收集电影列表
func collectMovies(rows *sql.Rows) ([]*Movie, error) {
	movies := []*Movie{}

	for rows.Next() {
		var movie Movie
		var genres string

		err := rows.Scan(
			&movie.ID,
			&movie.Title,
			&movie.Year,
			&genres,
			&movie.AvgRating,
			&movie.RatingCount,
		)
		if err != nil {
			return nil, err
		}

		movie.Genres = ParseGenreList(genres)
		movies = append(movies, &movie)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return movies, nil
}

// ValidateLimit 校验列表长度参数
func ValidateLimit(v *validator.Validator, limit, max int) {
	v.Check(limit > 0, "limit", "must be greater than zero")
	v.Check(limit <= max, "limit", fmt.Sprintf("must be a maximum of %d", max))
}

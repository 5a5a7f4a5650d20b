// Package dataset 负责在启动时把 MovieLens 的 CSV 数据集导入 SQLite
// 并预先算好每部电影的平均评分和评分数
package dataset

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/liliang-cn/movielens/internal/data"
)

// 建表语句，search_logs 是用户状态，导入时不会重建
var schema = []string{
	`CREATE TABLE IF NOT EXISTS movies (
		id INTEGER PRIMARY KEY,
		title TEXT NOT NULL,
		year INTEGER NOT NULL DEFAULT 0,
		genres TEXT NOT NULL DEFAULT '',
		avg_rating REAL NOT NULL DEFAULT 0,
		rating_count INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS ratings (
		movie_id INTEGER NOT NULL,
		user_id INTEGER NOT NULL,
		rating REAL NOT NULL,
		rated_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_ratings_movie_id ON ratings (movie_id)`,
	`CREATE TABLE IF NOT EXISTS search_logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		term TEXT NOT NULL,
		genres TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,
}

// Stats 导入的数据量
type Stats struct {
	Movies  int
	Ratings int
}

// Import 重建数据集表并导入 dir 下的 movies.csv 和 ratings.csv
// 整个导入在一个事务里完成，重复执行是幂等的
func Import(ctx context.Context, db *sql.DB, dir string, logger zerolog.Logger) (Stats, error) {
	var stats Stats

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return stats, fmt.Errorf("create schema: %w", err)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return stats, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM movies`); err != nil {
		return stats, err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM ratings`); err != nil {
		return stats, err
	}

	moviesPath := filepath.Join(dir, "movies.csv")
	logger.Info().Str("path", moviesPath).Msg("loading movies")

	stats.Movies, err = importMovies(ctx, tx, moviesPath)
	if err != nil {
		return stats, fmt.Errorf("import movies: %w", err)
	}

	ratingsPath := filepath.Join(dir, "ratings.csv")
	logger.Info().Str("path", ratingsPath).Msg("loading ratings")

	stats.Ratings, err = importRatings(ctx, tx, ratingsPath)
	if err != nil {
		return stats, fmt.Errorf("import ratings: %w", err)
	}

	// 和原始数据集的 merge 对应：没有评分的电影补 0
	aggregate := `
		UPDATE movies SET
			avg_rating = COALESCE((SELECT AVG(r.rating) FROM ratings r WHERE r.movie_id = movies.id), 0),
			rating_count = COALESCE((SELECT COUNT(*) FROM ratings r WHERE r.movie_id = movies.id), 0)`

	if _, err := tx.ExecContext(ctx, aggregate); err != nil {
		return stats, fmt.Errorf("aggregate ratings: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return stats, err
	}

	logger.Info().
		Int("movies", stats.Movies).
		Int("ratings", stats.Ratings).
		Msg("dataset loaded")

	return stats, nil
}

// importMovies 导入 movies.csv，列为 movieId,title,genres
func importMovies(ctx context.Context, tx *sql.Tx, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 3

	// 跳过表头
	if _, err := r.Read(); err != nil {
		return 0, fmt.Errorf("read header: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO movies (id, title, year, genres)
		VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	count := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, err
		}

		id, err := strconv.ParseInt(record[0], 10, 64)
		if err != nil {
			return count, fmt.Errorf("parse movieId %q: %w", record[0], err)
		}

		title, year := NormalizeTitle(record[1])
		genres := data.ParsePipeGenres(record[2])

		if _, err := stmt.ExecContext(ctx, id, title, year, genres.String()); err != nil {
			return count, err
		}
		count++
	}

	return count, nil
}

// importRatings 导入 ratings.csv，列为 userId,movieId,rating,timestamp
func importRatings(ctx context.Context, tx *sql.Tx, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 4

	if _, err := r.Read(); err != nil {
		return 0, fmt.Errorf("read header: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO ratings (user_id, movie_id, rating, rated_at)
		VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	count := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, err
		}

		userID, err := strconv.ParseInt(record[0], 10, 64)
		if err != nil {
			return count, fmt.Errorf("parse userId %q: %w", record[0], err)
		}

		movieID, err := strconv.ParseInt(record[1], 10, 64)
		if err != nil {
			return count, fmt.Errorf("parse movieId %q: %w", record[1], err)
		}

		rating, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return count, fmt.Errorf("parse rating %q: %w", record[2], err)
		}

		ratedAt, err := strconv.ParseInt(record[3], 10, 64)
		if err != nil {
			return count, fmt.Errorf("parse timestamp %q: %w", record[3], err)
		}

		if _, err := stmt.ExecContext(ctx, userID, movieID, rating, ratedAt); err != nil {
			return count, err
		}
		count++
	}

	return count, nil
}

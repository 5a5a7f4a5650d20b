package data

import (
	"context"
	"database/sql"
	"time"
)

// SearchLog 一条搜索记录：搜索词、搜索结果涉及的类型和时间戳
type SearchLog struct {
	ID        int64     `json:"-"`
	Term      string    `json:"search_term"`
	Genres    Genres    `json:"genres"`
	CreatedAt time.Time `json:"timestamp"`
}

// SearchLogModel 搜索记录模型类型
type SearchLogModel struct {
	DB *sql.DB
}

// Insert 追加一条搜索记录
func (m SearchLogModel) Insert(log *SearchLog) error {
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO search_logs (term, genres, created_at)
		VALUES (?, ?, ?)`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	result, err := m.DB.ExecContext(ctx, query, log.Term, log.Genres.String(), log.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return err
	}

	log.ID, err = result.LastInsertId()
	return err
}

// GetAll 按时间顺序返回所有搜索记录
func (m SearchLogModel) GetAll() ([]*SearchLog, error) {
	query := `
		SELECT id, term, genres, created_at
		FROM search_logs
		ORDER BY id ASC`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := m.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []*SearchLog{}

	for rows.Next() {
		var log SearchLog
		var genres, createdAt string

		err := rows.Scan(&log.ID, &log.Term, &genres, &createdAt)
		if err != nil {
			return nil, err
		}

		log.Genres = ParseGenreList(genres)
		log.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, err
		}

		logs = append(logs, &log)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return logs, nil
}

package data

import (
	"database/sql"
	"errors"
)

var ErrRecordNotFound = errors.New("record not found")

type Models struct {
	Movies   MovieModel
	Ratings  RatingModel
	Searches SearchLogModel
}

func NewModels(db *sql.DB) Models {
	return Models{
		Movies:   MovieModel{DB: db},
		Ratings:  RatingModel{DB: db},
		Searches: SearchLogModel{DB: db},
	}
}

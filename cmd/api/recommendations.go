package main

import (
	"errors"
	"net/http"

	"github.com/liliang-cn/movielens/internal/data"
	"github.com/liliang-cn/movielens/internal/validator"
)

// recommendMoviesHandler 基于类型重合度的相似电影推荐
func (app *application) recommendMoviesHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	v := validator.New()
	limit := app.readInt(r.URL.Query(), "limit", 6, v)
	data.ValidateLimit(v, limit, 50)
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	source, err := app.models.Movies.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	recommendations, err := app.models.Movies.Recommend(source, ratingCountFloor, limit)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	env := envelope{
		"source_movie":    source,
		"count":           len(recommendations),
		"recommendations": recommendations,
	}

	err = app.writeJSON(w, http.StatusOK, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

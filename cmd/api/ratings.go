package main

import (
	"errors"
	"net/http"

	"github.com/liliang-cn/movielens/internal/data"
	"github.com/liliang-cn/movielens/internal/validator"
)

// ratingsOverTimeHandler 电影评分时间序列，默认按月聚合
func (app *application) ratingsOverTimeHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	period := app.readString(r.URL.Query(), "period", data.PeriodMonth)

	v := validator.New()
	data.ValidatePeriod(v, period)
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	movie, err := app.models.Movies.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	series, err := app.models.Ratings.OverTime(id, period)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	env := envelope{
		"movie":        movie,
		"ratings_data": series,
	}

	err = app.writeJSON(w, http.StatusOK, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// ratingsOverTimeAPIHandler 兼容旧接口：错误格式和响应结构保持原样
func (app *application) ratingsOverTimeAPIHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	period := app.readString(r.URL.Query(), "period", data.PeriodMonth)
	if !validator.In(period, data.PeriodMonth, data.PeriodYear) {
		// 旧接口约定返回 400 和这条原文
		app.errorResponse(w, r, http.StatusBadRequest, "period must be 'month' or 'year'")
		return
	}

	_, err = app.models.Movies.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	series, err := app.models.Ratings.OverTime(id, period)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	// 旧接口返回的是未封套的序列字段
	env := envelope{
		"periods":       series.Periods,
		"avg_ratings":   series.AvgRatings,
		"rating_counts": series.RatingCounts,
		"total_ratings": series.TotalRatings,
	}

	err = app.writeJSON(w, http.StatusOK, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

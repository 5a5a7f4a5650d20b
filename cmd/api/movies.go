package main

import (
	"errors"
	"net/http"
	"sort"
	"strings"

	"github.com/liliang-cn/movielens/internal/data"
	"github.com/liliang-cn/movielens/internal/validator"
)

// 热门电影和推荐候选都要求至少这么多条评分
const ratingCountFloor = 10

// 搜索最多返回的条数
const searchResultCap = 20

// 电影列表允许的排序字段
var movieSortSafelist = []string{
	"id", "title", "year", "avg_rating", "rating_count",
	"-id", "-title", "-year", "-avg_rating", "-rating_count",
}

// homeHandler 返回数据集概况
func (app *application) homeHandler(w http.ResponseWriter, r *http.Request) {
	totalMovies, err := app.models.Movies.Count()
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	totalRatings, err := app.models.Ratings.Count()
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	env := envelope{
		"total_movies":  totalMovies,
		"total_ratings": totalRatings,
	}

	err = app.writeJSON(w, http.StatusOK, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// listMoviesHandler 热门电影列表：评分数达到下限的电影按平均评分降序
func (app *application) listMoviesHandler(w http.ResponseWriter, r *http.Request) {
	v := validator.New()
	qs := r.URL.Query()

	filters := data.Filters{
		Limit:        app.readInt(qs, "limit", 50, v),
		Sort:         app.readString(qs, "sort", "-avg_rating"),
		SortSafelist: movieSortSafelist,
	}

	data.ValidateFilters(v, filters)
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	movies, err := app.models.Movies.GetAll("", ratingCountFloor, filters)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"count": len(movies), "movies": movies}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// showMovieHandler 电影详情，附带按年聚合的评分序列和同类型推荐
func (app *application) showMovieHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
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

	series, err := app.models.Ratings.OverTime(id, data.PeriodYear)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	recommendations, err := app.models.Movies.Recommend(movie, ratingCountFloor, 6)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	env := envelope{
		"movie":           movie,
		"ratings_data":    series,
		"recommendations": recommendations,
	}

	err = app.writeJSON(w, http.StatusOK, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// listMoviesAPIHandler 兼容旧接口：按评分数降序
func (app *application) listMoviesAPIHandler(w http.ResponseWriter, r *http.Request) {
	v := validator.New()
	qs := r.URL.Query()

	filters := data.Filters{
		Limit:        app.readInt(qs, "limit", 50, v),
		Sort:         "-rating_count",
		SortSafelist: movieSortSafelist,
	}

	data.ValidateFilters(v, filters)
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	movies, err := app.models.Movies.GetAll("", 0, filters)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"count": len(movies), "movies": movies}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// showMovieAPIHandler 兼容旧接口：单部电影
func (app *application) showMovieAPIHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
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

	err = app.writeJSON(w, http.StatusOK, envelope{"movie": movie}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// searchMoviesHandler 按标题搜索电影，命中结果的类型会被异步写进搜索记录
func (app *application) searchMoviesHandler(w http.ResponseWriter, r *http.Request) {
	query := strings.ToLower(strings.TrimSpace(app.readString(r.URL.Query(), "q", "")))

	// 空查询直接返回空结果，不记搜索日志
	if query == "" {
		err := app.writeJSON(w, http.StatusOK, envelope{"count": 0, "movies": []*data.Movie{}}, nil)
		if err != nil {
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	filters := data.Filters{
		Limit:        searchResultCap,
		Sort:         "id",
		SortSafelist: movieSortSafelist,
	}

	movies, err := app.models.Movies.GetAll(query, 0, filters)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	// 收集结果中出现过的类型
	genreSet := make(map[string]struct{})
	for _, movie := range movies {
		for _, genre := range movie.Genres {
			genreSet[genre] = struct{}{}
		}
	}

	if len(genreSet) > 0 {
		genres := make(data.Genres, 0, len(genreSet))
		for genre := range genreSet {
			genres = append(genres, genre)
		}
		sort.Strings(genres)

		// 写搜索记录失败不影响本次响应
		app.background(func() {
			log := &data.SearchLog{Term: query, Genres: genres}
			err := app.models.Searches.Insert(log)
			if err != nil {
				app.logger.Error().Err(err).Str("term", query).Msg("cannot save search log")
			}
		})
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"count": len(movies), "movies": movies}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

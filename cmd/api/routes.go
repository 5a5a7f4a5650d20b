package main

import (
	"expvar"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	// 自定义 404 和 405 响应
	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	router.HandlerFunc(http.MethodGet, "/", app.homeHandler)
	router.HandlerFunc(http.MethodGet, "/healthcheck", app.healthcheckHandler)

	router.HandlerFunc(http.MethodGet, "/movies", app.listMoviesHandler)
	router.HandlerFunc(http.MethodGet, "/movie/:id", app.showMovieHandler)
	router.HandlerFunc(http.MethodGet, "/movie/:id/ratings-over-time", app.ratingsOverTimeHandler)
	router.HandlerFunc(http.MethodGet, "/recommend/:id", app.recommendMoviesHandler)
	router.HandlerFunc(http.MethodGet, "/genre-profile", app.genreProfileHandler)

	// 兼容旧的 /api 接口
	router.HandlerFunc(http.MethodGet, "/api/movies", app.listMoviesAPIHandler)
	router.HandlerFunc(http.MethodGet, "/api/movie/:id", app.showMovieAPIHandler)
	router.HandlerFunc(http.MethodGet, "/api/movie/:id/ratings-over-time", app.ratingsOverTimeAPIHandler)
	router.HandlerFunc(http.MethodGet, "/api/search", app.searchMoviesHandler)

	router.Handler(http.MethodGet, "/debug/vars", expvar.Handler())
	router.Handler(http.MethodGet, "/metrics", promhttp.Handler())

	return app.metrics(app.recoverPanic(app.enableCORS(app.rateLimit(app.logRequest(router)))))
}

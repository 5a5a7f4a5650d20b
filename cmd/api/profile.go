package main

import (
	"net/http"

	"github.com/liliang-cn/movielens/internal/data"
)

// genreProfileHandler 根据搜索历史返回类型画像
func (app *application) genreProfileHandler(w http.ResponseWriter, r *http.Request) {
	logs, err := app.models.Searches.GetAll()
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	profile := data.BuildGenreProfile(logs)

	err = app.writeJSON(w, http.StatusOK, envelope{"profile": profile}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

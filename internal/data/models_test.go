package data_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/liliang-cn/movielens/internal/data"
	"github.com/liliang-cn/movielens/internal/dataset"
)

var movieSortSafelist = []string{
	"id", "title", "year", "avg_rating", "rating_count",
	"-id", "-title", "-year", "-avg_rating", "-rating_count",
}

func newTestModels(t *testing.T) data.Models {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = dataset.Import(context.Background(), db, "../dataset/testdata", zerolog.Nop())
	require.NoError(t, err)

	return data.NewModels(db)
}

func movieIDs(movies []*data.Movie) []int64 {
	ids := make([]int64, len(movies))
	for i, m := range movies {
		ids[i] = m.ID
	}
	return ids
}

func TestMovieModelGet(t *testing.T) {
	models := newTestModels(t)

	movie, err := models.Movies.Get(1)
	require.NoError(t, err)

	assert.Equal(t, int64(1), movie.ID)
	assert.Equal(t, "Toy Story (1995)", movie.Title)
	assert.Equal(t, int32(1995), movie.Year)
	assert.Equal(t, data.Genres{"Adventure", "Animation", "Children", "Comedy", "Fantasy"}, movie.Genres)
	assert.InDelta(t, 44.0/12.0, movie.AvgRating, 1e-9)
	assert.Equal(t, int64(12), movie.RatingCount)
}

func TestMovieModelGetNotFound(t *testing.T) {
	models := newTestModels(t)

	_, err := models.Movies.Get(999)
	assert.ErrorIs(t, err, data.ErrRecordNotFound)

	_, err = models.Movies.Get(0)
	assert.ErrorIs(t, err, data.ErrRecordNotFound)
}

func TestMovieModelGetAll(t *testing.T) {
	models := newTestModels(t)

	t.Run("TestPopularOrdering", func(t *testing.T) {
		movies, err := models.Movies.GetAll("", 10, data.Filters{
			Limit: 50, Sort: "-avg_rating", SortSafelist: movieSortSafelist,
		})
		require.NoError(t, err)

		// 评分数达到 10 的电影按平均评分降序，平分时按 id 升序
		assert.Equal(t, []int64{3, 4, 7, 1, 8, 6}, movieIDs(movies))
	})

	t.Run("TestRatingCountOrdering", func(t *testing.T) {
		movies, err := models.Movies.GetAll("", 0, data.Filters{
			Limit: 50, Sort: "-rating_count", SortSafelist: movieSortSafelist,
		})
		require.NoError(t, err)

		assert.Equal(t, []int64{1, 3, 4, 6, 7, 8, 2, 5}, movieIDs(movies))
	})

	t.Run("TestTitleFilter", func(t *testing.T) {
		movies, err := models.Movies.GetAll("god", 0, data.Filters{
			Limit: 50, Sort: "id", SortSafelist: movieSortSafelist,
		})
		require.NoError(t, err)

		require.Len(t, movies, 1)
		assert.Equal(t, "The Godfather (1972)", movies[0].Title)
	})

	t.Run("TestTitleFilterCaseInsensitive", func(t *testing.T) {
		movies, err := models.Movies.GetAll("TOY", 0, data.Filters{
			Limit: 50, Sort: "id", SortSafelist: movieSortSafelist,
		})
		require.NoError(t, err)

		require.Len(t, movies, 1)
		assert.Equal(t, int64(1), movies[0].ID)
	})

	t.Run("TestLimit", func(t *testing.T) {
		movies, err := models.Movies.GetAll("", 0, data.Filters{
			Limit: 3, Sort: "id", SortSafelist: movieSortSafelist,
		})
		require.NoError(t, err)

		assert.Equal(t, []int64{1, 2, 3}, movieIDs(movies))
	})

	t.Run("TestNoMatches", func(t *testing.T) {
		movies, err := models.Movies.GetAll("does not exist", 0, data.Filters{
			Limit: 50, Sort: "id", SortSafelist: movieSortSafelist,
		})
		require.NoError(t, err)

		assert.Empty(t, movies)
	})
}

func TestMovieModelCount(t *testing.T) {
	models := newTestModels(t)

	movies, err := models.Movies.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(8), movies)

	ratings, err := models.Ratings.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(66), ratings)
}

func TestMovieModelRecommend(t *testing.T) {
	models := newTestModels(t)

	source, err := models.Movies.Get(1)
	require.NoError(t, err)

	recommendations, err := models.Movies.Recommend(source, 10, 6)
	require.NoError(t, err)

	// 电影 8 重合 5 个类型排在前面，电影 7 重合 4 个
	// 电影 2 重合 3 个但评分数不足，电影 3、4、6 没有重合
	assert.Equal(t, []int64{8, 7}, movieIDs(recommendations))

	t.Run("TestLimit", func(t *testing.T) {
		recommendations, err := models.Movies.Recommend(source, 10, 1)
		require.NoError(t, err)

		assert.Equal(t, []int64{8}, movieIDs(recommendations))
	})

	t.Run("TestSourceWithoutGenres", func(t *testing.T) {
		source, err := models.Movies.Get(6)
		require.NoError(t, err)

		recommendations, err := models.Movies.Recommend(source, 10, 6)
		require.NoError(t, err)

		assert.Empty(t, recommendations)
	})
}

func TestRatingModelOverTime(t *testing.T) {
	models := newTestModels(t)

	t.Run("TestMonthly", func(t *testing.T) {
		series, err := models.Ratings.OverTime(1, data.PeriodMonth)
		require.NoError(t, err)

		assert.Equal(t, []string{"2018-01", "2018-02", "2019-01"}, series.Periods)
		assert.Equal(t, []float64{4.5, 3.0, 3.56}, series.AvgRatings)
		assert.Equal(t, []int64{2, 1, 9}, series.RatingCounts)
		assert.Equal(t, int64(12), series.TotalRatings)
	})

	t.Run("TestYearly", func(t *testing.T) {
		series, err := models.Ratings.OverTime(1, data.PeriodYear)
		require.NoError(t, err)

		assert.Equal(t, []string{"2018", "2019"}, series.Periods)
		assert.Equal(t, []float64{4.0, 3.56}, series.AvgRatings)
		assert.Equal(t, []int64{3, 9}, series.RatingCounts)
		assert.Equal(t, int64(12), series.TotalRatings)
	})

	t.Run("TestNoRatings", func(t *testing.T) {
		series, err := models.Ratings.OverTime(5, data.PeriodMonth)
		require.NoError(t, err)

		assert.Empty(t, series.Periods)
		assert.Empty(t, series.AvgRatings)
		assert.Empty(t, series.RatingCounts)
		assert.Zero(t, series.TotalRatings)
	})
}

func TestSearchLogModel(t *testing.T) {
	models := newTestModels(t)

	logs, err := models.Searches.GetAll()
	require.NoError(t, err)
	assert.Empty(t, logs)

	err = models.Searches.Insert(&data.SearchLog{
		Term:   "toy",
		Genres: data.Genres{"Animation", "Comedy"},
	})
	require.NoError(t, err)

	err = models.Searches.Insert(&data.SearchLog{
		Term:      "heat",
		Genres:    data.Genres{"Action"},
		CreatedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	logs, err = models.Searches.GetAll()
	require.NoError(t, err)
	require.Len(t, logs, 2)

	assert.Equal(t, "toy", logs[0].Term)
	assert.Equal(t, data.Genres{"Animation", "Comedy"}, logs[0].Genres)
	assert.False(t, logs[0].CreatedAt.IsZero())

	assert.Equal(t, "heat", logs[1].Term)
	assert.True(t, logs[1].CreatedAt.Equal(time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)))
}

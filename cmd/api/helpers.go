package main

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	json "github.com/goccy/go-json"
	"github.com/julienschmidt/httprouter"

	"github.com/liliang-cn/movielens/internal/validator"
)

// envelope 响应数据的封套类型
type envelope map[string]interface{}

// readIDParam 从请求路径中取出 id 参数
func (app *application) readIDParam(r *http.Request) (int64, error) {
	params := httprouter.ParamsFromContext(r.Context())

	id, err := strconv.ParseInt(params.ByName("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, errors.New("invalid id parameter")
	}

	return id, nil
}

// writeJSON 将数据以 JSON 格式写入响应
func (app *application) writeJSON(w http.ResponseWriter, status int, data envelope, headers http.Header) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}

	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(js)

	return nil
}

// readString 从查询参数中取字符串，没有时返回默认值
func (app *application) readString(qs url.Values, key string, defaultValue string) string {
	s := qs.Get(key)
	if s == "" {
		return defaultValue
	}

	return s
}

// readInt 从查询参数中取整数，解析失败时在 validator 里记一条错误
func (app *application) readInt(qs url.Values, key string, defaultValue int, v *validator.Validator) int {
	s := qs.Get(key)
	if s == "" {
		return defaultValue
	}

	i, err := strconv.Atoi(s)
	if err != nil {
		v.AddError(key, "must be an integer value")
		return defaultValue
	}

	return i
}

// background 在后台 goroutine 中执行 fn，并用 WaitGroup 保证优雅退出时不丢任务
func (app *application) background(fn func()) {
	app.wg.Add(1)

	go func() {
		defer app.wg.Done()

		// 恢复后台任务中的 panic
		defer func() {
			if err := recover(); err != nil {
				app.logger.Error().Interface("error", err).Msg("background task panic")
			}
		}()

		fn()
	}()
}

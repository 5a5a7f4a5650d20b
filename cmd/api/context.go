package main

import (
	"context"
	"net/http"
)

// 基于 string 定义一个 contextKey 类型
type contextKey string

// 定义一个常量用来从请求的 context 中获取/操作 request id
const requestIDContextKey = contextKey("request_id")

// contextSetRequestID 返回一个复制的 request，里面包含添加了 request id 的 context
func (app *application) contextSetRequestID(r *http.Request, id string) *http.Request {
	ctx := context.WithValue(r.Context(), requestIDContextKey, id)
	return r.WithContext(ctx)
}

// contextGetRequestID 从 context 中取 request id，没有时返回空串
func (app *application) contextGetRequestID(r *http.Request) string {
	id, ok := r.Context().Value(requestIDContextKey).(string)
	if !ok {
		return ""
	}
	return id
}

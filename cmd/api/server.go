package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func (app *application) serve() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", app.config.port),
		Handler:      app.routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	// 使用 shutdownError 通道来接收 Shutdown() 函数返回的错误
	shutdownError := make(chan error)

	go func() {
		// 新建 channel 用来携带系统信号
		quit := make(chan os.Signal, 1)

		// 只监听 SIGINT 和 SIGTERM，其他信号不会被 signal.Notify() 捕捉到
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		// 从 channel 中读值，会阻塞直至读取到值
		s := <-quit

		app.logger.Info().Str("signal", s.String()).Msg("shutting down server")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err := srv.Shutdown(ctx)
		if err != nil {
			shutdownError <- err
			return
		}

		// 等后台任务（异步写搜索记录）做完再退出
		app.logger.Info().Str("addr", srv.Addr).Msg("completing background tasks")
		app.wg.Wait()

		shutdownError <- nil
	}()

	app.logger.Info().
		Str("addr", srv.Addr).
		Str("env", app.config.env).
		Msg("starting server")

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info().Str("addr", srv.Addr).Msg("stopped server")

	return nil
}

package main

import (
	"context"
	"database/sql"
	"expvar"
	"flag"
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/liliang-cn/movielens/internal/data"
	"github.com/liliang-cn/movielens/internal/dataset"
)

var (
	buildTime string
	version   string
)

// 应用配置
type config struct {
	port int
	env  string
	db   struct {
		dsn          string
		maxOpenConns int
		maxIdleConns int
		maxIdleTime  string
	}
	dataset struct {
		dir string
	}
	limiter struct {
		rps     float64
		burst   int
		enabled bool
	}
	cors struct {
		trustedOrigins []string
	}
	log struct {
		level string
	}
}

// 应用定义
type application struct {
	config config
	logger zerolog.Logger
	models data.Models
	wg     sync.WaitGroup
}

func main() {
	var cfg config
	flag.IntVar(&cfg.port, "port", 5000, "API server port")
	flag.StringVar(&cfg.env, "env", "development", "Environment (development|staging|production)")
	flag.StringVar(&cfg.db.dsn, "db-dsn", "file:movielens.db?_pragma=busy_timeout(5000)", "SQLite DSN")
	flag.IntVar(&cfg.db.maxOpenConns, "db-max-open-conns", 25, "SQLite max open connections")
	flag.IntVar(&cfg.db.maxIdleConns, "db-max-idle-conns", 25, "SQLite max idle connections")
	flag.StringVar(&cfg.db.maxIdleTime, "db-max-idle-time", "15m", "SQLite max connection idle time")
	flag.StringVar(&cfg.dataset.dir, "dataset-dir", "assets/ml-latest-small", "MovieLens dataset directory")
	flag.Float64Var(&cfg.limiter.rps, "limiter-rps", 2, "Rate limiter maximum requests per second")
	flag.IntVar(&cfg.limiter.burst, "limiter-burst", 4, "Rate limiter maximum burst")
	flag.BoolVar(&cfg.limiter.enabled, "limiter-enabled", true, "Enable rate limiter")
	flag.StringVar(&cfg.log.level, "log-level", "info", "Minimum log level (debug|info|warn|error)")
	flag.Func("cors-trusted-origins", "Trusted CORS origins (space separated)", func(val string) error {
		cfg.cors.trustedOrigins = strings.Fields(val)
		return nil
	})

	displayVersion := flag.Bool("version", false, "Display version and exit")

	flag.Parse()

	// 显示版本
	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		fmt.Printf("Build time:\t%s\n", buildTime)
		os.Exit(0)
	}

	logger := newLogger(os.Stdout, cfg.log.level)

	// 连接数据库
	db, err := openDB(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot open database")
	}

	// 退出前关闭数据库连接
	defer db.Close()

	logger.Info().Msg("database connection pool established")

	// 启动时导入数据集，平均评分在这里一次性算好
	_, err = dataset.Import(context.Background(), db, cfg.dataset.dir, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot load dataset")
	}

	// 发布版本信息
	expvar.NewString("version").Set(version)

	// 发布活动的 goroutine 数
	expvar.Publish("goroutines", expvar.Func(func() interface{} {
		return runtime.NumGoroutine()
	}))

	// 发布数据库连接的统计信息
	expvar.Publish("database", expvar.Func(func() interface{} {
		return db.Stats()
	}))

	// 发布当前的时间信息
	expvar.Publish("timestamp", expvar.Func(func() interface{} {
		return time.Now().Unix()
	}))

	// 初始化应用
	app := &application{
		config: cfg,
		logger: logger,
		models: data.NewModels(db),
	}

	// 启动 server
	err = app.serve()
	if err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
}

// newLogger 构造结构化 JSON logger
func newLogger(w *os.File, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// 连接数据库
func openDB(cfg config) (*sql.DB, error) {
	db, err := sql.Open("sqlite", cfg.db.dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.db.maxOpenConns)
	db.SetMaxIdleConns(cfg.db.maxIdleConns)
	duration, err := time.ParseDuration(cfg.db.maxIdleTime)
	if err != nil {
		return nil, err
	}
	db.SetConnMaxIdleTime(duration)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = db.PingContext(ctx)
	if err != nil {
		return nil, err
	}

	return db, nil
}

// leaderboard-server 运行 Dermamon 排行榜 HTTP 服务
//
// 用法:
//
//	go run ./cmd/leaderboard-server --addr :5000
//
//	go run ./cmd/leaderboard-server --db scores.db   # 成绩写入 SQLite 文件
//
// 监听地址和数据库路径也可以通过 SCOREBOARD_ADDR、SCOREBOARD_DB 环境变量（或 .env 文件）设置。
// 未指定数据库时成绩只保存在内存中。
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/gonewx/dermamon/internal/scoreboard"
)

const defaultAddr = ":5000"

func main() {
	envFile := flag.String("env", ".env", ".env 文件路径")
	addrFlag := flag.String("addr", "", "监听地址（覆盖 SCOREBOARD_ADDR）")
	dbFlag := flag.String("db", "", "SQLite 数据库文件（覆盖 SCOREBOARD_DB），为空则使用内存存储")
	debug := flag.Bool("debug", false, "输出每个请求的调试日志")
	flag.Parse()

	log := logrus.New()
	log.Level = logrus.InfoLevel
	if *debug {
		log.Level = logrus.DebugLevel
	}
	log.Formatter = &logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "severity",
			logrus.FieldKeyMsg:   "message",
		},
		TimestampFormat: time.RFC3339Nano,
	}
	log.Out = os.Stdout

	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.WithField("error", err).Warn("failed to load env file")
	}

	addr := firstNonEmpty(*addrFlag, os.Getenv("SCOREBOARD_ADDR"), defaultAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var repo scoreboard.Repository = scoreboard.NewMemoryStore()
	dbPath := firstNonEmpty(*dbFlag, os.Getenv("SCOREBOARD_DB"))
	if dbPath != "" {
		sqlite, err := scoreboard.OpenSQLite(ctx, dbPath)
		if err != nil {
			log.WithField("error", err).Fatal("failed to open database")
		}
		defer sqlite.Close()
		repo = sqlite
		log.WithField("db", dbPath).Info("using sqlite storage")
	} else {
		log.Info("using in-memory storage")
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           scoreboard.NewServer(repo, log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.WithField("addr", addr).Info("starting leaderboard server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithField("error", err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithField("error", err).Error("graceful shutdown failed")
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

package scoreboard

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/gonewx/dermamon/pkg/api"
)

// TopN 排行榜返回的条数
const TopN = 10

type ctxKeyLog struct{}
type ctxKeyRequestID struct{}

// Server 排行榜 HTTP 服务
type Server struct {
	repo   Repository
	log    logrus.FieldLogger
	router *mux.Router
	now    func() time.Time
}

// NewServer 创建服务并注册路由
//
// 路由:
//   - POST /api/game/score       保存成绩
//   - GET  /api/game/leaderboard 前 10 名
//   - GET  /api/health           健康检查
//   - OPTIONS /api/...           CORS 预检，返回 204
func NewServer(repo Repository, log logrus.FieldLogger) *Server {
	s := &Server{
		repo:   repo,
		log:    log,
		router: mux.NewRouter(),
		now:    time.Now,
	}

	r := s.router.PathPrefix("/api").Subrouter()
	r.HandleFunc("/game/score", s.submitScoreHandler).Methods(http.MethodPost)
	r.HandleFunc("/game/leaderboard", s.leaderboardHandler).Methods(http.MethodGet)
	r.HandleFunc("/health", s.healthHandler).Methods(http.MethodGet)
	r.PathPrefix("/").HandlerFunc(preflightHandler).Methods(http.MethodOptions)

	s.router.Use(s.logMiddleware, corsMiddleware)
	return s
}

// ServeHTTP 实现 http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) submitScoreHandler(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r)

	// 缺省字段保留默认值
	payload := api.ScoreSubmission{
		Score:    0,
		GameType: api.DefaultGameType,
		UserID:   api.GuestUserID,
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		renderError(log, w, errors.Wrap(err, "could not decode score"), http.StatusInternalServerError)
		return
	}

	fields := logrus.Fields{
		"user_id":   payload.UserID,
		"score":     payload.Score,
		"game_type": payload.GameType,
	}
	// 存储失败不影响客户端：只记录日志，照常返回成功
	rec, err := s.repo.Add(r.Context(), payload.UserID, payload.Score, payload.GameType)
	if err != nil {
		log.WithFields(fields).WithField("error", err).Warn("score not saved")
	} else {
		log.WithFields(fields).WithField("id", rec.ID).Info("score saved")
	}

	renderJSON(log, w, http.StatusOK, api.ScoreResponse{Success: true, Score: payload.Score})
}

// leaderboardResponse 与 api.LeaderboardResponse 兼容，额外带上记录的 ID 和时间
type leaderboardResponse struct {
	Success     bool     `json:"success"`
	Leaderboard []Record `json:"leaderboard"`
}

func (s *Server) leaderboardHandler(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r)

	top, err := s.repo.Top(r.Context(), TopN)
	if err != nil {
		renderError(log, w, errors.Wrap(err, "could not load leaderboard"), http.StatusInternalServerError)
		return
	}
	if len(top) == 0 {
		log.Debug("no scores yet, serving demo leaderboard")
		top = DemoRecords
	}
	renderJSON(log, w, http.StatusOK, leaderboardResponse{Success: true, Leaderboard: top})
}

type healthResponse struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Scores    int       `json:"scores"`
	Timestamp time.Time `json:"timestamp"`
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r)
	count, err := s.repo.Count(r.Context())
	if err != nil {
		log.WithField("error", err).Warn("could not count scores")
	}
	renderJSON(log, w, http.StatusOK, healthResponse{
		Status:    "healthy",
		Message:   "Dermamon API is running!",
		Scores:    count,
		Timestamp: s.now().UTC(),
	})
}

func preflightHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// corsMiddleware 允许任意来源访问 /api
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		next.ServeHTTP(w, r)
	})
}

// responseRecorder 记录响应状态码和字节数
type responseRecorder struct {
	b      int
	status int
	w      http.ResponseWriter
}

func (r *responseRecorder) Header() http.Header { return r.w.Header() }

func (r *responseRecorder) Write(p []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.w.Write(p)
	r.b += n
	return n, err
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	r.status = statusCode
	r.w.WriteHeader(statusCode)
}

// logMiddleware 为每个请求分配 ID，并在结束时记录耗时和状态码
func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		log := s.log.WithFields(logrus.Fields{
			"http.req.path":   r.URL.Path,
			"http.req.method": r.Method,
			"http.req.id":     requestID,
		})

		ctx := context.WithValue(r.Context(), ctxKeyLog{}, log)
		ctx = context.WithValue(ctx, ctxKeyRequestID{}, requestID)
		rr := &responseRecorder{w: w}

		log.Debug("request started")
		defer func() {
			log.WithFields(logrus.Fields{
				"http.resp.took_ms": int64(time.Since(start) / time.Millisecond),
				"http.resp.status":  rr.status,
				"http.resp.bytes":   rr.b,
			}).Debug("request complete")
		}()
		next.ServeHTTP(rr, r.WithContext(ctx))
	})
}

func requestLogger(r *http.Request) logrus.FieldLogger {
	if log, ok := r.Context().Value(ctxKeyLog{}).(logrus.FieldLogger); ok {
		return log
	}
	return logrus.StandardLogger()
}

func renderJSON(log logrus.FieldLogger, w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithField("error", err).Warn("failed to write response")
	}
}

func renderError(log logrus.FieldLogger, w http.ResponseWriter, err error, code int) {
	log.WithField("error", err).Error("request error")
	renderJSON(log, w, code, api.ErrorResponse{Error: err.Error()})
}

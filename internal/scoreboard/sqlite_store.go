package scoreboard

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

const createScoresTable = `CREATE TABLE IF NOT EXISTS game_scores (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	score INTEGER NOT NULL,
	game_type TEXT NOT NULL,
	created_at TEXT NOT NULL
)`

const createScoresIndex = `CREATE INDEX IF NOT EXISTS idx_game_scores_score ON game_scores (score DESC)`

// SQLiteStore 把成绩保存在 SQLite 数据库文件中
//
// 同分按 rowid 排序，即先插入的在前。
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLite 打开（必要时创建）数据库并建表
// path 为 ":memory:" 时使用内存数据库
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(err, "open sqlite %s", path)
	}
	// 内存数据库每个连接各自独立，文件数据库也只允许一个写者
	db.SetMaxOpenConns(1)

	for _, stmt := range []string{createScoresTable, createScoresIndex} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, errors.Wrap(err, "create game_scores table")
		}
	}
	return &SQLiteStore{db: db, now: time.Now}, nil
}

// Close 关闭数据库
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Add 保存一条成绩
func (s *SQLiteStore) Add(ctx context.Context, userID string, score int, gameType string) (Record, error) {
	rec := newRecord(userID, score, gameType, s.now())
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO game_scores (id, user_id, score, game_type, created_at) VALUES (?, ?, ?, ?, ?)`,
		rec.ID, rec.UserID, rec.Score, rec.GameType, rec.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return Record{}, errors.Wrap(err, "insert score")
	}
	return rec, nil
}

// Count 已保存的成绩条数
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM game_scores`).Scan(&n); err != nil {
		return 0, errors.Wrap(err, "count scores")
	}
	return n, nil
}

// Top 见 Repository
func (s *SQLiteStore) Top(ctx context.Context, n int) ([]Record, error) {
	// SQLite 中 LIMIT -1 表示不限制
	limit := n
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, score, game_type, created_at FROM game_scores ORDER BY score DESC, rowid ASC LIMIT ?`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "query top scores")
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			rec     Record
			created string
		)
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Score, &rec.GameType, &created); err != nil {
			return nil, errors.Wrap(err, "scan score")
		}
		t, err := time.Parse(time.RFC3339Nano, created)
		if err != nil {
			return nil, errors.Wrapf(err, "parse created_at of %s", rec.ID)
		}
		rec.CreatedAt = &t
		out = append(out, rec)
	}
	return out, errors.Wrap(rows.Err(), "iterate scores")
}

package storage

import (
	"context"
	"database/sql"
	"encoding/json"

	_ "github.com/lib/pq"

	"Doudizhu/internal/game/engine"
)

var DB *sql.DB

func InitPostgres(dsn string) error {
	var err error
	DB, err = sql.Open("postgres", dsn)
	if err != nil {
		return err
	}
	if err := DB.Ping(); err != nil {
		return err
	}
	_, err = DB.Exec(`
        CREATE TABLE IF NOT EXISTS finished_matches (
            id          TEXT PRIMARY KEY,
            winner      TEXT NOT NULL,
            landlord_id TEXT,
            state       JSONB NOT NULL,
            finished_at TIMESTAMPTZ NOT NULL DEFAULT now()
        )`)
	return err
}

// ArchiveMatch 终局后归档对局快照（活动存储之外的落盘职责）
func ArchiveMatch(ctx context.Context, m *engine.Match) error {
	if DB == nil {
		return nil // 未配置 Postgres，直接跳过
	}
	state, err := json.Marshal(m)
	if err != nil {
		return err
	}
	_, err = DB.ExecContext(ctx, `
        INSERT INTO finished_matches (id, winner, landlord_id, state)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (id) DO NOTHING`,
		m.ID, m.Winner, m.LandlordID, state)
	return err
}

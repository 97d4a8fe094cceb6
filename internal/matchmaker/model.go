package matchmaker

import "time"

// Seats 斗地主固定三人成桌
const Seats = 3

// JoinRequest 前端提交的匹配请求
type JoinRequest struct {
	PlayerID string `json:"playerId" binding:"required"`
	Pool     string `json:"pool" binding:"required"` // 例如 "casual"、"ranked"
}

// JoinResponse 返回是否已成桌；若已成桌则给出对局信息
type JoinResponse struct {
	Queued  bool     `json:"queued"`
	GameID  string   `json:"gameId,omitempty"`
	Players []string `json:"players,omitempty"`
	Pool    string   `json:"pool"`
}

// CancelRequest 取消匹配
type CancelRequest struct {
	PlayerID string `json:"playerId" binding:"required"`
}

// Table 成桌结果
type Table struct {
	GameID    string
	Pool      string
	Players   []string
	CreatedAt time.Time
}

package main

import (
	"Doudizhu/config"
	"Doudizhu/internal/auth"
	"Doudizhu/internal/game/manager"
	"Doudizhu/internal/matchmaker"
	"Doudizhu/internal/middleware"
	"Doudizhu/internal/storage"
	"Doudizhu/internal/utils"
	"Doudizhu/internal/websocket"
	"context"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.Load()
	utils.Init()
	utils.Print.Info("Doudizhu server starting", "port", config.C.Server.Port)

	//-------------------------------------------------------
	// 1. 初始化 Redis（权威对局状态）
	//-------------------------------------------------------
	if err := storage.InitRedis(
		config.C.Redis.Addr,
		config.C.Redis.Password,
		config.C.Redis.DB,
	); err != nil {
		utils.Error.Fatalf("Redis init failed: %v", err)
	}

	// Postgres 仅用于对局结束后的归档，可选
	if config.C.Database.DSN != "" {
		if err := storage.InitPostgres(config.C.Database.DSN); err != nil {
			utils.Error.Fatalf("Postgres init failed: %v", err)
		}
	}

	//-------------------------------------------------------
	// 2. 初始化 Gin + CORS
	//-------------------------------------------------------
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	//-------------------------------------------------------
	// 3. 初始化 Hub（必须最先启动）
	//-------------------------------------------------------
	hub := websocket.NewHub()
	go hub.Run()

	//-------------------------------------------------------
	// 4. 对局服务
	//-------------------------------------------------------
	matchRepo := storage.NewRedisRepo(storage.Rdb)
	gameSvc := manager.NewService(matchRepo, hub)

	//-------------------------------------------------------
	// 5. 匹配系统
	//-------------------------------------------------------
	mmRepo := matchmaker.NewRedisRepo(storage.Rdb)
	mmSvc := matchmaker.NewService(mmRepo, config.C.Matchmaker.PlayerTTL, hub)

	// 成桌回调：开一局并把三人全部入座
	mmSvc.OnTableReady = func(ctx context.Context, players []string) (string, error) {
		gameID, err := gameSvc.CreateMatch(ctx, players[0])
		if err != nil {
			return "", err
		}
		for _, pid := range players[1:] {
			if err := gameSvc.JoinMatch(ctx, gameID, pid); err != nil {
				return "", err
			}
		}
		utils.Info.Printf("Table ready: game=%s players=%v", gameID, players)
		return gameID, nil
	}

	authGroup := r.Group("/auth")
	{
		ah := auth.NewHandler()
		authGroup.GET("/nonce", ah.GetNonce)
		authGroup.POST("/login", ah.Login)
	}

	//-------------------------------------------------------
	// 6. 受保护路由：WebSocket、匹配、对局操作
	//-------------------------------------------------------
	secret := []byte(config.C.JWT.Secret)
	authed := r.Group("/", middleware.JwtAuthMiddleware(secret))
	{
		authed.GET("/ws", websocket.ServeWS(hub))

		mh := matchmaker.NewHandler(mmSvc)
		authed.POST("/match/join", mh.Join)
		authed.POST("/match/cancel", mh.Cancel)

		gh := manager.NewHandler(gameSvc)
		authed.POST("/game/create", gh.Create)
		authed.POST("/game/join", gh.Join)
		authed.POST("/game/bid", gh.Bid)
		authed.POST("/game/play", gh.Play)
		authed.POST("/game/pass", gh.Pass)
		authed.GET("/game/state", gh.State)
	}

	//-------------------------------------------------------
	// 7. 启动服务器
	//-------------------------------------------------------
	utils.Info.Printf("Server running on %s", config.C.Server.Port)
	r.Run(config.C.Server.Port)
}

package cmd

import (
	"log"
	"time"

	"github.com/asknote/asknote-be/config"
	"github.com/asknote/asknote-be/handler"
	"github.com/asknote/asknote-be/service"
	"github.com/asknote/asknote-be/store"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startServerCmd represents the start command
var startServerCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the chat server",
	Long:  `Starts the server that handles document uploads and chat sessions`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		zapLogger, err := zap.NewProduction()
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer zapLogger.Sync()
		logger := zapLogger.Sugar()

		// Extraction cache: shared through Redis when configured,
		// in-process otherwise.
		var cache store.Cache
		if cfg.RedisAddr != "" {
			cache = store.NewRedisCache(redis.NewClient(&redis.Options{
				Addr: cfg.RedisAddr,
			}))
			logger.Infow("using redis extraction cache", "addr", cfg.RedisAddr)
		} else {
			cache = store.NewMemoryCache()
		}

		// Stores
		docs := store.NewDocumentStore()
		snapshots := store.NewFileSnapshotStore(cfg.DataFile, logger)
		registry := store.NewSessionRegistry(docs, snapshots, logger)
		registry.Load()

		// AI backend
		var aiService service.AIService
		switch cfg.AIBackend {
		case "gemini":
			aiService, err = service.NewGeminiService(cfg.GeminiKeys(), cfg.Model)
			if err != nil {
				log.Fatalf("Failed to initialize Gemini service: %v", err)
			}
		default:
			aiService = service.NewOpenAIService(cfg.AIEndpoint, cfg.OpenAIAPIKey, cfg.Model)
		}

		// Services
		timeout := time.Duration(cfg.RequestTimeout) * time.Second
		pdfService := service.NewPDFService(cache, logger)
		answerService := service.NewAnswerService(aiService, timeout, logger)
		chatService := service.NewChatService(registry, docs, answerService, logger)
		fileService, err := service.NewFileService(cfg.UploadDir, registry, pdfService, logger)
		if err != nil {
			log.Fatalf("Failed to initialize file service: %v", err)
		}
		wsService := service.NewWebSocketService(chatService, logger)

		// Handlers
		corsHandler := handler.NewCorsHandler()
		sessionHandler := handler.NewSessionHandler(registry)
		chatHandler := handler.NewChatHandler(chatService)
		uploadHandler := handler.NewUploadHandler(fileService)
		pdfHandler := handler.NewDocumentHandler(cfg.UploadDir)

		// Setup Gin router
		router := gin.Default()
		router.Use(corsHandler.CorsMiddleware)

		apiV1 := router.Group("/api/v1")
		{
			apiV1.POST("/sessions", sessionHandler.HandleCreate)
			apiV1.GET("/sessions", sessionHandler.HandleList)
			apiV1.GET("/sessions/:id", sessionHandler.HandleGet)
			apiV1.POST("/sessions/:id/select", sessionHandler.HandleSelect)
			apiV1.DELETE("/sessions/:id", sessionHandler.HandleDelete)
			apiV1.DELETE("/sessions", sessionHandler.HandleDeleteAll)
			apiV1.POST("/sessions/:id/ask", chatHandler.HandleAsk)
			apiV1.POST("/upload", uploadHandler.HandleUpload)
			apiV1.GET("/pdf", pdfHandler.ServeDocument)
		}
		router.GET("/ws", func(c *gin.Context) {
			wsService.HandleChat(c.Writer, c.Request)
		})

		logger.Infow("starting server", "port", cfg.Port)
		if err := router.Run(":" + cfg.Port); err != nil {
			log.Fatal("Server error:", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(startServerCmd)
	startServerCmd.Flags().StringP("config", "c", "config/config.yaml", "config file")
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/vaani-ai/vaani/internal/ai"
	"github.com/vaani-ai/vaani/internal/archive"
	"github.com/vaani-ai/vaani/internal/asr"
	"github.com/vaani-ai/vaani/internal/handlers"
	"github.com/vaani-ai/vaani/internal/media"
	"github.com/vaani-ai/vaani/internal/record"
	"github.com/vaani-ai/vaani/internal/session"
	"github.com/vaani-ai/vaani/internal/translate"
	"github.com/vaani-ai/vaani/internal/tts"
	wsManager "github.com/vaani-ai/vaani/internal/websocket"
	"github.com/vaani-ai/vaani/pkg/config"
	"github.com/vaani-ai/vaani/pkg/database"
	"github.com/vaani-ai/vaani/pkg/models"
	"github.com/vaani-ai/vaani/pkg/repository"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // development; restrict in production
	},
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("=== vaani server starting ===")

	// 1. Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("config load failed", zap.Error(err))
	}
	logger.Info("config loaded")

	// 2. Optional MongoDB result archive
	var saver *archive.Saver
	if cfg.MongoDB.Enabled {
		timeout, err := time.ParseDuration(cfg.MongoDB.Timeout)
		if err != nil {
			timeout = 10 * time.Second
		}
		mongoDB, err := database.NewMongoDB(database.Options{
			URI:         cfg.MongoDB.URI,
			Database:    cfg.MongoDB.Database,
			Timeout:     timeout,
			MaxPoolSize: uint64(cfg.MongoDB.MaxPoolSize),
		})
		if err != nil {
			logger.Fatal("MongoDB connection failed", zap.Error(err))
		}
		defer mongoDB.Close()
		logger.Info("MongoDB connected")

		resultRepo := repository.NewMongoResultRepository(mongoDB.Database)
		saver = archive.NewSaver(resultRepo, cfg.Pipeline.ArchiveBufferSize, logger)
		saver.Start()
		defer saver.Stop()
	}

	// 3. Shared model clients (once per process) and warm-up
	clients, err := ai.LoadClients(ai.ClientConfig{
		APIKey:           cfg.AI.OpenAI.APIKey,
		BaseURL:          cfg.AI.OpenAI.BaseURL,
		STTFastModel:     cfg.AI.OpenAI.STTFastModel,
		STTAccurateModel: cfg.AI.OpenAI.STTAccurateModel,
		TranslationModel: cfg.AI.OpenAI.TranslationModel,
		SpeechModel:      cfg.AI.OpenAI.SpeechModel,
		SpeechVoice:      cfg.AI.OpenAI.SpeechVoice,
		VoiceOverrides:   cfg.AI.OpenAI.VoiceOverrides,
	})
	if err != nil {
		logger.Fatal("model client setup failed", zap.Error(err))
	}
	warmCtx, warmCancel := context.WithTimeout(context.Background(), 60*time.Second)
	clients.WarmUp(warmCtx, logger)
	warmCancel()
	logger.Info("model clients ready")

	// 4. Pipeline services
	transcoder := media.NewTranscoder(cfg.Pipeline.FFmpegPath, logger)

	router := asr.NewRouter(clients.STTFast, clients.STTAccurate, logger)

	var translationModel translate.Model = clients.Translator
	if cfg.Translator.Backend == "lambda" {
		lambdaModel, err := translate.NewLambdaModel(context.Background(), cfg.Translator.LambdaFunction)
		if err != nil {
			logger.Fatal("lambda translator setup failed", zap.Error(err))
		}
		translationModel = lambdaModel
		logger.Info("using lambda translation backend",
			zap.String("function", cfg.Translator.LambdaFunction))
	}
	translator := translate.NewService(translationModel, cfg.Pipeline.CacheSize, logger)

	synthesizer := tts.NewService(clients.Speech, transcoder, logger)

	// 5. WebSocket connection manager
	connManager := wsManager.NewConnectionManager(logger)

	// 6. Session pipeline; results fan out to clients and the archive
	pipeline := session.NewPipeline(
		router,
		translator,
		synthesizer,
		transcoder,
		func(event *models.ResultEvent) {
			connManager.BroadcastResult(event)
			if saver != nil {
				saver.Save(event)
			}
		},
		logger,
	)
	logger.Info("pipeline ready")

	// 7. HTTP server
	store := handlers.NewSessionStore(cfg.Pipeline.MaxHistoryItems)
	sessionHandler := handlers.NewSessionHandler(pipeline, store, logger)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.Default()
	sessionHandler.Register(engine)

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":     "healthy",
			"time":       time.Now(),
			"sessions":   store.Len(),
			"cache_size": translator.CacheLen(),
		})
	})

	// Result stream for the UI. With ?stream=true the same connection also
	// carries inbound audio: binary messages of raw 16 kHz float32 samples are
	// fed through the recorder into the pipeline.
	engine.GET("/ws/:sessionId", func(c *gin.Context) {
		sessionID := c.Param("sessionId")
		clientID := c.Query("clientId")
		if clientID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "clientId required"})
			return
		}
		streaming := c.Query("stream") == "true"

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("websocket upgrade failed", zap.Error(err))
			return
		}

		connManager.AddConnection(sessionID, clientID, conn)

		if !streaming {
			go func() {
				defer func() {
					conn.Close()
					connManager.RemoveConnection(sessionID, clientID)
				}()
				for {
					if _, _, err := conn.ReadMessage(); err != nil {
						return
					}
				}
			}()
			return
		}

		// The session stays acquired for the whole stream; uploads against the
		// same session wait until the stream ends.
		sess, release := store.Acquire(sessionID)
		recorder := record.NewRecorder(pipeline, sess, cfg.Pipeline.RecordQueueSize, logger)
		stream := wsManager.NewChunkStream(conn)

		streamCtx, cancelStream := context.WithCancel(context.Background())
		recorder.Start(streamCtx, stream)

		go func() {
			defer func() {
				conn.Close()
				connManager.RemoveConnection(sessionID, clientID)
				cancelStream()
				release()
			}()

			<-stream.Done()
			if err := recorder.Stop(10 * time.Second); err != nil {
				logger.Warn("recorder stop timed out",
					zap.String("session", sessionID),
					zap.Error(err))
			}
		}()
	})

	serverAddr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    serverAddr,
		Handler: engine,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", serverAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// 8. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("=== server shutting down ===")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn("HTTP server shutdown error", zap.Error(err))
	}

	logger.Info("=== server stopped ===")
}

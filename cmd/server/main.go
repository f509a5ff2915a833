package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"glana/api/router"
	"glana/capture"
	"glana/classifier/quota"
	"glana/config"
	"glana/db"
	_ "glana/docs" // swag will generate this package
	"glana/enrichment"
	"glana/eventbus"
	"glana/internal/logger"
	"glana/repositories"
	"glana/services"
)

// @title           Glana API
// @version         1.0
// @description     Personal swipe-file service: capture social posts, classify them into themes with AI, serve them back.
// @BasePath        /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in              header
// @name            Authorization
func main() {
	config.InitApp()
	cfg := config.GetConfig()
	logger.Init(cfg.Logging.Level)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := db.Init(ctx); err != nil {
		logger.Log.Errorf("failed to initialize MongoDB: %v", err)
		os.Exit(1)
	}

	itemRepo := repositories.NewItemRepository(db.Database())
	themeRepo := repositories.NewThemeRepository(db.Database())
	aiLogRepo := repositories.NewAILogRepository(db.Database())

	// 분류 디스패치 모드 선택: 기본은 인프로세스 워커 풀, kafka 모드에서는
	// 이벤트만 발행하고 소비는 cmd/worker가 담당한다.
	var bus eventbus.EventBus
	switch cfg.Enrichment.Mode {
	case "kafka":
		kafkaBus, err := eventbus.NewKafkaEventBus(config.KafkaBrokers())
		if err != nil {
			logger.Log.Errorf("failed to create kafka event bus: %v", err)
			os.Exit(1)
		}
		bus = kafkaBus
	default:
		bus = eventbus.NewChannelEventBus(0, cfg.Enrichment.Workers)
	}
	defer bus.Close()

	orch := enrichment.NewOrchestrator(itemRepo, themeRepo, aiLogRepo, bus)
	orch.Quota = quota.NewLimiterFromConfig(cfg)

	if cfg.Enrichment.Mode != "kafka" {
		go func() {
			err := eventbus.SubscribeJSON(ctx, bus, "glana-server", eventbus.TopicItemEvents, orch.HandleItemCaptured)
			if err != nil && ctx.Err() == nil {
				logger.Log.Errorf("classification subscriber stopped: %v", err)
			}
		}()
	}

	items := services.NewItemService(itemRepo, orch, capture.NewClient())
	themes := services.NewThemeService(themeRepo, itemRepo)
	stats := services.NewStatsService(itemRepo, themeRepo)

	r := router.New(router.Deps{Items: items, Themes: themes, Stats: stats})

	addr := cfg.Server.Addr
	if addr == "" {
		addr = ":8080"
	}
	logger.Log.Infof("starting api server on %s (enrichment mode: %s)", addr, cfg.Enrichment.Mode)
	if err := r.Run(addr); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

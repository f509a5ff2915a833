package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"glana/classifier/quota"
	"glana/config"
	"glana/db"
	"glana/enrichment"
	"glana/eventbus"
	"glana/internal/logger"
	"glana/repositories"
)

// 분리 배포용 분류 워커. API 서버가 kafka 모드로 발행한 item.captured
// 이벤트를 소비해 분류 작업을 실행한다.
func main() {
	config.InitApp()
	cfg := config.GetConfig()
	logger.Init(cfg.Logging.Level)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// MongoDB 초기화
	if err := db.Init(ctx); err != nil {
		logger.Log.Errorf("failed to initialize MongoDB: %v", err)
		os.Exit(1)
	}

	bus, err := eventbus.NewKafkaEventBus(config.KafkaBrokers())
	if err != nil {
		logger.Log.Errorf("failed to create event bus: %v", err)
		os.Exit(1)
	}
	defer bus.Close()

	itemRepo := repositories.NewItemRepository(db.Database())
	themeRepo := repositories.NewThemeRepository(db.Database())
	aiLogRepo := repositories.NewAILogRepository(db.Database())

	orch := enrichment.NewOrchestrator(itemRepo, themeRepo, aiLogRepo, bus)
	orch.Quota = quota.NewLimiterFromConfig(cfg)

	logger.Log.Info("starting classification worker...")

	// Graceful shutdown 설정
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		err := eventbus.SubscribeJSON(ctx, bus, "glana-worker", eventbus.TopicItemEvents, orch.HandleItemCaptured)
		if err != nil && ctx.Err() == nil {
			logger.Log.Errorf("subscription stopped: %v", err)
		}
	}()

	<-sigChan
	logger.Log.Info("shutting down worker...")
	cancel()
	wg.Wait()
}

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/projjWalroy/Bookify/pkg/config"
	"github.com/projjWalroy/Bookify/pkg/kafka"
	"github.com/projjWalroy/Bookify/pkg/obs"
	"github.com/projjWalroy/Bookify/services/notification-service/internal/notifier"
	"github.com/projjWalroy/Bookify/services/notification-service/internal/worker"
)

type Cfg struct {
	GroupID string `envconfig:"NOTIFY_GROUP_ID" default:"notification-service"`

	Kafka config.Kafka
}

func must[T any](v T, err error) T {
	if err != nil {
		log.Fatal(err)
	}
	return v
}

func main() {
	var cfg Cfg
	must(0, config.Load(&cfg))

	shutdownTracer := obs.InitTracer("notification-service")

	cons := kafka.NewConsumer(cfg.Kafka.BrokerList(), cfg.Kafka.StatusTopic, cfg.GroupID)
	defer cons.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		if err := worker.NewConsumer(cons, notifier.NewConsole()).Run(ctx); err != nil {
			log.Printf("[notify] run error: %v", err)
		}
	}()

	log.Printf("[notify] started. topic=%s group=%s", cfg.Kafka.StatusTopic, cfg.GroupID)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	cancel()

	sctx, scancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer scancel()
	_ = shutdownTracer(sctx)
}

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/projjWalroy/Bookify/pkg/config"
	"github.com/projjWalroy/Bookify/pkg/db"
	"github.com/projjWalroy/Bookify/pkg/kafka"
	"github.com/projjWalroy/Bookify/pkg/obs"
	cons "github.com/projjWalroy/Bookify/services/order-service/internal/consumer"
	"github.com/projjWalroy/Bookify/services/order-service/internal/inventory"
	"github.com/projjWalroy/Bookify/services/order-service/internal/repository"
	"github.com/projjWalroy/Bookify/services/order-service/internal/service"
	thttp "github.com/projjWalroy/Bookify/services/order-service/internal/transport/http"
)

type Cfg struct {
	PGOrderDSN    string `envconfig:"PG_ORDER_DSN" required:"true"`
	OrderHTTPAddr string `envconfig:"ORDER_HTTP_ADDR" default:":8082"`
	InventoryURL  string `envconfig:"INVENTORY_URL" default:"http://localhost:8081"`
	GroupID       string `envconfig:"ORDER_GROUP_ID" default:"order-service"`

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

	shutdownTracer := obs.InitTracer("order-service")

	gdb := db.Open(cfg.PGOrderDSN)
	orders := repository.NewOrderRepo(gdb)
	must(0, orders.Migrate())

	statusPub := kafka.NewPublisher(cfg.Kafka.BrokerList(), cfg.Kafka.StatusTopic)
	defer statusPub.Close()

	svc := service.NewOrderSvc(orders, inventory.NewClient(cfg.InventoryURL), statusPub)

	bookingCons := kafka.NewConsumer(cfg.Kafka.BrokerList(), cfg.Kafka.BookingTopic, cfg.GroupID)
	defer bookingCons.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		log.Println("[order] consuming", cfg.Kafka.BookingTopic, "as group", cfg.GroupID)
		if err := cons.NewBookingConsumer(svc, bookingCons).Run(ctx); err != nil {
			log.Fatalf("[order] consumer: %v", err)
		}
	}()

	r := gin.Default()
	thttp.NewServer(svc).Register(r)
	srv := &http.Server{Addr: cfg.OrderHTTPAddr, Handler: r}

	go func() {
		log.Println("[order] HTTP listening on", cfg.OrderHTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch
	cancel()

	sctx, scancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer scancel()
	_ = srv.Shutdown(sctx)
	_ = shutdownTracer(sctx)
	log.Println("[order] stopped")
}

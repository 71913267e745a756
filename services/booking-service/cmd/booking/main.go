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
	"github.com/projjWalroy/Bookify/services/booking-service/internal/inventory"
	"github.com/projjWalroy/Bookify/services/booking-service/internal/repository"
	"github.com/projjWalroy/Bookify/services/booking-service/internal/service"
	thttp "github.com/projjWalroy/Bookify/services/booking-service/internal/transport/http"
)

type Cfg struct {
	PGBookingDSN    string `envconfig:"PG_BOOKING_DSN" required:"true"`
	BookingHTTPAddr string `envconfig:"BOOKING_HTTP_ADDR" default:":8080"`
	InventoryURL    string `envconfig:"INVENTORY_URL" default:"http://localhost:8081"`

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

	shutdownTracer := obs.InitTracer("booking-service")

	gdb := db.Open(cfg.PGBookingDSN)
	customers := repository.NewCustomerRepo(gdb)
	must(0, customers.Migrate())

	pub := kafka.NewPublisher(cfg.Kafka.BrokerList(), cfg.Kafka.BookingTopic)
	defer pub.Close()

	svc := service.NewBookingSvc(customers, inventory.NewClient(cfg.InventoryURL), pub)

	r := gin.Default()
	thttp.NewServer(svc).Register(r)
	srv := &http.Server{Addr: cfg.BookingHTTPAddr, Handler: r}

	go func() {
		log.Println("[booking] HTTP listening on", cfg.BookingHTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	_ = shutdownTracer(ctx)
	log.Println("[booking] stopped")
}

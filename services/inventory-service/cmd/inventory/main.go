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
	"github.com/projjWalroy/Bookify/pkg/obs"
	"github.com/projjWalroy/Bookify/services/inventory-service/internal/repository"
	"github.com/projjWalroy/Bookify/services/inventory-service/internal/service"
	thttp "github.com/projjWalroy/Bookify/services/inventory-service/internal/transport/http"
)

type Cfg struct {
	PGInventoryDSN    string `envconfig:"PG_INVENTORY_DSN" required:"true"`
	InventoryHTTPAddr string `envconfig:"INVENTORY_HTTP_ADDR" default:":8081"`
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

	shutdownTracer := obs.InitTracer("inventory-service")

	gdb := db.Open(cfg.PGInventoryDSN)
	repo := repository.NewInventoryRepo(gdb)
	must(0, repo.Migrate())

	svc := service.NewInventorySvc(repo)

	r := gin.Default()
	thttp.NewServer(svc).Register(r)
	srv := &http.Server{Addr: cfg.InventoryHTTPAddr, Handler: r}

	go func() {
		log.Println("[inventory] HTTP listening on", cfg.InventoryHTTPAddr)
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
	log.Println("[inventory] stopped")
}

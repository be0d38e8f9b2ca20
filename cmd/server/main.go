// Command server runs the RLVR translation gym's HTTP API.
package main

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/lokahilabs/rlvr-gym/internal/audit"
	"github.com/lokahilabs/rlvr-gym/internal/httpapi"
	"github.com/lokahilabs/rlvr-gym/internal/store"
	"github.com/lokahilabs/rlvr-gym/pkg/config"
)

func main() {
	cfg := config.NewDefaultConfig()

	banditStore, err := newBanditStore(cfg)
	if err != nil {
		log.Fatalf("server: failed to initialize bandit store: %v", err)
	}

	logger, err := audit.New("audit/runs")
	if err != nil {
		log.Fatalf("server: failed to open audit log: %v", err)
	}

	srv, err := httpapi.New(cfg, banditStore, logger)
	if err != nil {
		log.Fatalf("server: failed to initialize: %v", err)
	}

	app := httpapi.NewRouter(srv)
	log.Printf("RLVR API server started successfully, listening on %s", cfg.ServerAddr)
	if err := app.Listen(cfg.ServerAddr); err != nil {
		log.Fatalf("server: listen: %v", err)
	}
}

func newBanditStore(cfg *config.Config) (store.BanditStore, error) {
	switch cfg.BanditStoreBackend {
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(context.Background()).Err(); err != nil {
			return nil, err
		}
		return store.NewRedisBanditStore(client, "rlvr:bandit:"), nil
	default:
		return store.NewFileBanditStore("state/bandits")
	}
}

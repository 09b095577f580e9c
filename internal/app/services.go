package app

import (
	"fmt"

	"github.com/MrSnakeDoc/linkvault/internal/auth"
	"github.com/MrSnakeDoc/linkvault/internal/backend"
	"github.com/MrSnakeDoc/linkvault/internal/config"
	"github.com/MrSnakeDoc/linkvault/internal/importer"
	"github.com/MrSnakeDoc/linkvault/internal/links"
	"github.com/MrSnakeDoc/linkvault/internal/logger"
	"github.com/MrSnakeDoc/linkvault/internal/redis"
	"github.com/MrSnakeDoc/linkvault/internal/scheduler"
	"github.com/MrSnakeDoc/linkvault/internal/session"
	"github.com/MrSnakeDoc/linkvault/internal/store/memory"
	redisstore "github.com/MrSnakeDoc/linkvault/internal/store/redis"
	"github.com/MrSnakeDoc/linkvault/internal/utils"
)

// Services is the domain layer on top of the configured backend. Both
// the server and the CLI import command are built on it.
type Services struct {
	Backend  string
	Pinger   backend.Pinger
	Sessions *session.Provider
	Links    *links.Repository
	Importer *importer.Importer

	purger  scheduler.RevokedPurger // nil when the backend expires revocations itself
	closers utils.Closers
	log     logger.Logger
}

// Open connects the configured backend and builds the services on it.
func Open(cfg *config.Config, log logger.Logger) (*Services, error) {
	svc := &Services{Backend: cfg.Backend, log: log}

	var (
		linkStore    backend.LinkStore
		accountStore backend.AccountStore
	)

	switch cfg.Backend {
	case config.BackendMemory:
		log.Warn("using in-memory backend, data is lost on restart")
		mem := memory.New()
		linkStore, accountStore, svc.Pinger, svc.purger = mem, mem, mem, mem

	case config.BackendRedis:
		// Fail fast if Redis never becomes reachable
		log.Info("connecting to redis", logger.String("addr", cfg.RedisAddr))
		client, err := redis.New(redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, log.Named("redis"))
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		svc.closers.Push("redis", client)

		store := redisstore.NewStore(client)
		linkStore, accountStore, svc.Pinger = store, store, store

	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}

	authenticator := auth.New(accountStore, auth.Config{
		Token: auth.TokenConfig{
			Secret: cfg.JWTSecret,
			TTL:    cfg.TokenTTL,
		},
		MinPassword: cfg.MinPasswordLength,
	})

	svc.Sessions = session.NewProvider(authenticator, log.Named("session"))
	svc.Links = links.NewRepository(linkStore, log.Named("links"))
	svc.Importer = importer.New(svc.Links, log.Named("import"))

	return svc, nil
}

// Close releases the backend connections.
func (s *Services) Close() {
	s.closers.CloseAll(s.log)
}

package cli

import (
	"context"
	"fmt"
	"time"

	"disc-quiz-service/internal/app"
	"disc-quiz-service/internal/config"
	"disc-quiz-service/internal/domain"
	"disc-quiz-service/internal/infra/memory"
	pgstore "disc-quiz-service/internal/infra/postgres"
	redisstore "disc-quiz-service/internal/infra/redis"
	"disc-quiz-service/internal/infra/sqlite"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// stores bundles the adapters picked by config and how to release them.
type stores struct {
	results        app.ResultStore
	sessions       app.SessionRepository
	questionnaires app.QuestionnaireRepository
	closers        []func() error
}

func (s *stores) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			logger.Warn("close store", zap.Error(err))
		}
	}
}

func openResultStore(cfg config.Config) (app.ResultStore, func() error, error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		return memory.NewResultStore(), func() error { return nil }, nil
	case config.DriverPostgres:
		if cfg.Postgres.URL == "" {
			return nil, nil, fmt.Errorf("postgres url not configured")
		}
		store := pgstore.NewResultStore(pgstore.OpenDB(cfg.Postgres.URL))
		return store, store.Close, nil
	case config.DriverSQLite:
		store, err := sqlite.Open(cfg.Storage.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}

func openStores(ctx context.Context, cfg config.Config) (*stores, error) {
	s := &stores{}

	results, closeResults, err := openResultStore(cfg)
	if err != nil {
		return nil, err
	}
	s.results = results
	s.closers = append(s.closers, closeResults)

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		s.closers = append(s.closers, redisClient.Close)
	}

	var loader memory.QuestionnaireLoader = memory.NewStaticQuestionnaireLoader(domain.DISCQuestionnaire())
	// The questionnaires table only exists where the Postgres migrations ran.
	if cfg.Storage.Driver == config.DriverPostgres {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		s.closers = append(s.closers, func() error { pool.Close(); return nil })
		loader = pgstore.NewQuestionnaireLoader(pool)
	}

	questionnaireTTL := config.TTLDuration(cfg.Questionnaire.TTL, 10*time.Minute)
	if redisClient != nil {
		s.questionnaires = redisstore.NewQuestionnaireRepository(redisClient, loader, questionnaireTTL)
		s.sessions = redisstore.NewSessionStore(redisClient, config.TTLDuration(cfg.Redis.TTL, 30*time.Minute))
	} else {
		s.questionnaires = memory.NewQuestionnaireRepository(loader, questionnaireTTL)
		s.sessions = memory.NewSessionStore()
	}
	return s, nil
}

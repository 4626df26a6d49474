package database

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"serwer-dav/internal/websocket"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	pool *pgxpool.Pool
	hub  *websocket.Hub
	*Queries
}

func NewStore(pool *pgxpool.Pool, hub *websocket.Hub) *PostgresStore {
	return &PostgresStore{
		pool:    pool,
		hub:     hub,
		Queries: New(pool),
	}
}

func (s *PostgresStore) ExecTx(ctx context.Context, fn func(*Queries) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	q := New(tx)
	err = fn(q)
	if err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("tx err: %v, rb err: %v", err, rbErr)
		}
		return err
	}

	return tx.Commit(ctx)
}

func (s *PostgresStore) GetPool() *pgxpool.Pool {
	return s.pool
}

// RecordEvent dopisuje zdarzenie do dziennika i rozgłasza je po websockecie.
// Niepowodzenie zapisu nie przerywa operacji, która zdarzenie wywołała.
func (s *PostgresStore) RecordEvent(ctx context.Context, eventType string, payload interface{}) {
	if err := s.LogEvent(ctx, eventType, payload); err != nil {
		log.Printf("WARN: failed to record event %s: %v", eventType, err)
		return
	}

	if s.hub == nil {
		return
	}

	msg, err := json.Marshal(map[string]interface{}{
		"event_type": eventType,
		"payload":    payload,
	})
	if err != nil {
		log.Printf("WARN: failed to marshal event %s: %v", eventType, err)
		return
	}
	s.hub.PublishEvent(msg)
}

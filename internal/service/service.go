// Package service composes the ownership policy, change recorder and audit
// log around the entity repositories. Handlers resolve the caller to a
// researcher profile first (see Identity), then pass the resolved actor id
// and admin flag into the mutation methods.
package service

import (
	"context"
	"errors"
)

var errCacheDisabled = errors.New("service: cache disabled")

// TxRunner binds multiple repository writes into one transaction. Satisfied
// by *postgres.Store.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Cache is the read-through cache surface used for public lists and
// dashboard counters. Satisfied by *redis.Cache. Cache failures are never
// fatal; callers fall back to the database.
type Cache interface {
	GetJSON(ctx context.Context, key string, dest any) error
	SetJSON(ctx context.Context, key string, value any) error
	Invalidate(ctx context.Context, keys ...string) error
}

// nopCache is used when no Redis address is configured.
type nopCache struct{}

func (nopCache) GetJSON(context.Context, string, any) error { return errCacheDisabled }
func (nopCache) SetJSON(context.Context, string, any) error { return nil }
func (nopCache) Invalidate(context.Context, ...string) error {
	return nil
}

// NopCache returns a Cache that always misses.
func NopCache() Cache { return nopCache{} }

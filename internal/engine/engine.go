// Package engine orchestrates pool operations against the ledger. Every
// state-mutating operation follows the same shape: validate inputs, stage
// all reads and writes on an overlay, mutate in memory, commit once, then
// journal. A failure anywhere before the commit leaves the ledger
// untouched.
package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"liquidityEngine/internal/auth"
	"liquidityEngine/internal/dexmath"
	"liquidityEngine/internal/journal"
	"liquidityEngine/internal/ledger"
	"liquidityEngine/internal/model"
	"liquidityEngine/internal/pool"
	"liquidityEngine/internal/token"
)

// Config carries engine-level defaults.
type Config struct {
	// ProtocolFeeRate is the fraction of each swap fee diverted to the
	// protocol on pools created by this engine. Zero disables the split.
	ProtocolFeeRate decimal.Decimal
}

// Engine is the single entry point for pool operations.
type Engine struct {
	cfg     Config
	state   ledger.Ledger
	authz   *auth.Authorizer
	journal journal.Journal
	logger  *zap.Logger
	now     func() time.Time
}

func New(cfg Config, state ledger.Ledger, sink journal.Journal, logger *zap.Logger) *Engine {
	if sink == nil {
		sink = journal.Nop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		cfg:     cfg,
		state:   state,
		authz:   auth.NewAuthorizer(state),
		journal: sink,
		logger:  logger,
		now:     time.Now,
	}
}

// Authorizer exposes role management backed by the same ledger.
func (e *Engine) Authorizer() *auth.Authorizer {
	return e.authz
}

// Book exposes the balance book backed by the same ledger, for funding and
// balance queries outside pool operations.
func (e *Engine) Book() *token.Book {
	return token.NewBook(e.state)
}

func (e *Engine) timestamp() string {
	return e.now().UTC().Format(time.RFC3339)
}

func (e *Engine) journalEvent(eventType, poolID string, payload interface{}) {
	event := model.Event{
		Type:      eventType,
		PoolID:    poolID,
		Timestamp: e.timestamp(),
		Payload:   payload,
	}
	if err := e.journal.Append([]model.Event{event}); err != nil {
		e.logger.Warn("journal append", zap.String("type", eventType), zap.Error(err))
	}
}

// validateTokenKey rejects token keys that would corrupt composite ledger
// keys.
func validateTokenKey(key string) error {
	if key == "" || strings.ContainsAny(key, "|:") {
		return fmt.Errorf("invalid token key %q", key)
	}
	return nil
}

func validateAccount(account string) error {
	if account == "" || strings.Contains(account, "|") {
		return fmt.Errorf("invalid account %q", account)
	}
	return nil
}

func validateTickRange(tickLower, tickUpper int32) error {
	if tickLower >= tickUpper {
		return model.ErrInvalidTickRange
	}
	if tickLower < dexmath.MinTick || tickUpper > dexmath.MaxTick {
		return model.ErrTickOutOfRange
	}
	return nil
}

// loadPool fetches and decodes a pool record from the given view.
func loadPool(ctx context.Context, view ledger.Ledger, poolID string) (*model.Pool, error) {
	raw, err := view.Get(ctx, model.PoolKey(poolID))
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return nil, model.ErrPoolNotFound
		}
		return nil, fmt.Errorf("read pool %s: %w", poolID, err)
	}
	var p model.Pool
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode pool %s: %w", poolID, err)
	}
	return &p, nil
}

func savePool(ctx context.Context, view ledger.Ledger, p *model.Pool) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode pool %s: %w", p.ID(), err)
	}
	if err := view.Put(ctx, model.PoolKey(p.ID()), raw); err != nil {
		return fmt.Errorf("write pool %s: %w", p.ID(), err)
	}
	return nil
}

// tickLoader adapts a ledger view to the pool state's lazy tick fetch.
func tickLoader(ctx context.Context, view ledger.Ledger, poolID string) pool.TickLoader {
	return func(index int32) (*model.Tick, error) {
		raw, err := view.Get(ctx, model.TickKey(poolID, index))
		if err != nil {
			if errors.Is(err, ledger.ErrNotFound) {
				return nil, nil
			}
			return nil, err
		}
		var t model.Tick
		if err := json.Unmarshal(raw, &t); err != nil {
			return nil, fmt.Errorf("decode tick %d: %w", index, err)
		}
		return &t, nil
	}
}

func saveTicks(ctx context.Context, view ledger.Ledger, poolID string, ticks []*model.Tick) error {
	for _, t := range ticks {
		raw, err := json.Marshal(t)
		if err != nil {
			return fmt.Errorf("encode tick %d: %w", t.Index, err)
		}
		if err := view.Put(ctx, model.TickKey(poolID, t.Index), raw); err != nil {
			return fmt.Errorf("write tick %d: %w", t.Index, err)
		}
	}
	return nil
}

// loadPosition returns nil when the position has never been written.
func loadPosition(ctx context.Context, view ledger.Ledger, poolID, owner string, tickLower, tickUpper int32) (*model.Position, error) {
	raw, err := view.Get(ctx, model.PositionKey(poolID, owner, tickLower, tickUpper))
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("read position: %w", err)
	}
	var pos model.Position
	if err := json.Unmarshal(raw, &pos); err != nil {
		return nil, fmt.Errorf("decode position: %w", err)
	}
	return &pos, nil
}

func savePosition(ctx context.Context, view ledger.Ledger, pos *model.Position) error {
	key := model.PositionKey(pos.PoolID, pos.Owner, pos.TickLower, pos.TickUpper)
	if pos.Liquidity.IsZero() && pos.TokensOwed0.IsZero() && pos.TokensOwed1.IsZero() {
		if err := view.Delete(ctx, key); err != nil {
			return fmt.Errorf("delete position: %w", err)
		}
		return nil
	}
	raw, err := json.Marshal(pos)
	if err != nil {
		return fmt.Errorf("encode position: %w", err)
	}
	if err := view.Put(ctx, key, raw); err != nil {
		return fmt.Errorf("write position: %w", err)
	}
	return nil
}

package engine

import (
	"context"
	"encoding/json"
	"fmt"

	"liquidityEngine/internal/model"
)

// GetPool returns the committed pool record.
func (e *Engine) GetPool(ctx context.Context, tokenA, tokenB string, fee model.FeeTier) (*model.Pool, error) {
	token0, token1, _ := model.CanonicalPair(tokenA, tokenB)
	return loadPool(ctx, e.state, model.PoolID(token0, token1, fee))
}

// GetPosition returns one committed position record.
func (e *Engine) GetPosition(ctx context.Context, tokenA, tokenB string, fee model.FeeTier, owner string, tickLower, tickUpper int32) (*model.Position, error) {
	token0, token1, _ := model.CanonicalPair(tokenA, tokenB)
	poolID := model.PoolID(token0, token1, fee)

	pos, err := loadPosition(ctx, e.state, poolID, owner, tickLower, tickUpper)
	if err != nil {
		return nil, err
	}
	if pos == nil {
		return nil, model.ErrPositionNotFound
	}
	return pos, nil
}

// ListPositions returns all of an owner's positions in one pool, ordered
// by ledger key.
func (e *Engine) ListPositions(ctx context.Context, tokenA, tokenB string, fee model.FeeTier, owner string) ([]*model.Position, error) {
	token0, token1, _ := model.CanonicalPair(tokenA, tokenB)
	poolID := model.PoolID(token0, token1, fee)

	entries, err := e.state.QueryByPrefix(ctx, model.PositionPrefix(poolID, owner))
	if err != nil {
		return nil, fmt.Errorf("list positions %s/%s: %w", poolID, owner, err)
	}

	positions := make([]*model.Position, 0, len(entries))
	for _, entry := range entries {
		var pos model.Position
		if err := json.Unmarshal(entry.Value, &pos); err != nil {
			return nil, fmt.Errorf("decode position %s: %w", entry.Key, err)
		}
		positions = append(positions, &pos)
	}
	return positions, nil
}

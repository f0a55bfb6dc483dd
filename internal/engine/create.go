package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"liquidityEngine/internal/dexmath"
	"liquidityEngine/internal/ledger"
	"liquidityEngine/internal/model"
)

// CreatePoolParams describes a pool creation request. The token pair may
// arrive in either order; the engine canonicalizes it and, when the order
// flips, inverts the given sqrt price so both spellings resolve to the
// same pool at the same market price.
type CreatePoolParams struct {
	Caller    string
	TokenA    string
	TokenB    string
	Fee       model.FeeTier
	SqrtPrice decimal.Decimal
}

// CreatePool creates the pool for (pair, fee). The caller becomes the
// pool's first protocol-fee authority.
func (e *Engine) CreatePool(ctx context.Context, params CreatePoolParams) (*model.Pool, error) {
	if err := validateAccount(params.Caller); err != nil {
		return nil, err
	}
	if err := validateTokenKey(params.TokenA); err != nil {
		return nil, err
	}
	if err := validateTokenKey(params.TokenB); err != nil {
		return nil, err
	}
	if params.TokenA == params.TokenB {
		return nil, model.ErrSamePairToken
	}
	if !params.Fee.Valid() {
		return nil, model.ErrInvalidFeeTier
	}

	sqrtPrice := params.SqrtPrice
	token0, token1, ordered := model.CanonicalPair(params.TokenA, params.TokenB)
	if !ordered {
		if !sqrtPrice.IsPositive() {
			return nil, model.ErrInvalidSqrtPrice
		}
		sqrtPrice = dexmath.Div(decimal.NewFromInt(1), sqrtPrice)
	}
	if sqrtPrice.LessThan(dexmath.MinSqrtPrice) || sqrtPrice.GreaterThan(dexmath.MaxSqrtPrice) {
		return nil, model.ErrInvalidSqrtPrice
	}

	poolID := model.PoolID(token0, token1, params.Fee)

	overlay := ledger.NewOverlay(e.state)
	if _, err := overlay.Get(ctx, model.PoolKey(poolID)); err == nil {
		return nil, model.ErrPoolExists
	} else if !errors.Is(err, ledger.ErrNotFound) {
		return nil, fmt.Errorf("check pool %s: %w", poolID, err)
	}

	p := &model.Pool{
		Token0:          token0,
		Token1:          token1,
		Fee:             params.Fee,
		SqrtPrice:       sqrtPrice,
		Tick:            dexmath.TickAtSqrtPrice(sqrtPrice),
		ProtocolFeeRate: e.cfg.ProtocolFeeRate,
		Authorities:     []string{params.Caller},
		CreatedAt:       e.timestamp(),
	}
	if err := savePool(ctx, overlay, p); err != nil {
		return nil, err
	}
	if err := overlay.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit create pool %s: %w", poolID, err)
	}

	e.logger.Info("pool created",
		zap.String("pool", poolID),
		zap.String("sqrt_price", sqrtPrice.String()),
		zap.Int32("tick", p.Tick),
	)
	e.journalEvent("create_pool", poolID, map[string]string{
		"caller":     params.Caller,
		"sqrt_price": sqrtPrice.String(),
	})
	return p, nil
}

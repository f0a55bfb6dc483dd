package engine

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"liquidityEngine/internal/auth"
	"liquidityEngine/internal/ledger"
	"liquidityEngine/internal/model"
	"liquidityEngine/internal/pool"
	"liquidityEngine/internal/token"
)

// CollectTradingFeesParams identifies one position and a payout target.
// Caller must be the position owner or hold the owner's collection
// delegate role.
type CollectTradingFeesParams struct {
	Caller    string
	Owner     string
	Recipient string
	TokenA    string
	TokenB    string
	Fee       model.FeeTier
	TickLower int32
	TickUpper int32
}

// CollectResult reports amounts actually paid out.
type CollectResult struct {
	Amount0 decimal.Decimal
	Amount1 decimal.Decimal
}

// CollectTradingFees settles a position's fee accrual to date and pays the
// owed amounts to the recipient, clamped to the pool account's balance.
func (e *Engine) CollectTradingFees(ctx context.Context, params CollectTradingFeesParams) (CollectResult, error) {
	var zero CollectResult

	if err := validateAccount(params.Caller); err != nil {
		return zero, err
	}
	if err := validateAccount(params.Recipient); err != nil {
		return zero, err
	}

	if params.Caller != params.Owner {
		delegated, err := e.authz.HasRole(ctx, auth.DelegateRole(params.Owner), params.Caller)
		if err != nil {
			return zero, err
		}
		if !delegated {
			return zero, model.ErrUnauthorized
		}
	}

	token0, token1, _ := model.CanonicalPair(params.TokenA, params.TokenB)
	poolID := model.PoolID(token0, token1, params.Fee)

	overlay := ledger.NewOverlay(e.state)
	p, err := loadPool(ctx, overlay, poolID)
	if err != nil {
		return zero, err
	}

	pos, err := loadPosition(ctx, overlay, poolID, params.Owner, params.TickLower, params.TickUpper)
	if err != nil {
		return zero, err
	}
	if pos == nil {
		return zero, model.ErrPositionNotFound
	}

	// A zero-delta range touch brings the position's fee accrual up to the
	// present before paying out.
	state := pool.NewState(p, tickLoader(ctx, overlay, poolID))
	_, _, inside0, inside1, err := state.ModifyRange(params.TickLower, params.TickUpper, decimal.Zero)
	if err != nil {
		return zero, err
	}
	if err := pool.UpdatePosition(pos, decimal.Zero, inside0, inside1); err != nil {
		return zero, err
	}

	book := token.NewBook(overlay)
	payout0, err := clampToBalance(ctx, book, p.Account(), token0, pos.TokensOwed0)
	if err != nil {
		return zero, err
	}
	payout1, err := clampToBalance(ctx, book, p.Account(), token1, pos.TokensOwed1)
	if err != nil {
		return zero, err
	}
	if err := book.Transfer(ctx, p.Account(), params.Recipient, token0, payout0); err != nil {
		return zero, err
	}
	if err := book.Transfer(ctx, p.Account(), params.Recipient, token1, payout1); err != nil {
		return zero, err
	}
	pos.TokensOwed0 = pos.TokensOwed0.Sub(payout0)
	pos.TokensOwed1 = pos.TokensOwed1.Sub(payout1)

	if err := savePosition(ctx, overlay, pos); err != nil {
		return zero, err
	}
	if err := overlay.Commit(ctx); err != nil {
		return zero, fmt.Errorf("commit collect fees %s: %w", poolID, err)
	}

	e.logger.Info("trading fees collected",
		zap.String("pool", poolID),
		zap.String("owner", params.Owner),
		zap.String("amount0", payout0.String()),
		zap.String("amount1", payout1.String()),
	)
	e.journalEvent("collect", poolID, model.CollectEventData{
		Owner:     params.Owner,
		Recipient: params.Recipient,
		TickLower: params.TickLower,
		TickUpper: params.TickUpper,
		Amount0:   payout0.String(),
		Amount1:   payout1.String(),
	})
	return CollectResult{Amount0: payout0, Amount1: payout1}, nil
}

// CollectProtocolFeesParams identifies a pool and a payout target. Caller
// must be in the pool's authority set or hold the global fee-authority
// role.
type CollectProtocolFeesParams struct {
	Caller    string
	Recipient string
	TokenA    string
	TokenB    string
	Fee       model.FeeTier
}

// CollectProtocolFees pays the accumulated protocol fees to the recipient,
// clamped to the pool account's balance, and zeroes the accumulators.
func (e *Engine) CollectProtocolFees(ctx context.Context, params CollectProtocolFeesParams) (CollectResult, error) {
	var zero CollectResult

	if err := validateAccount(params.Caller); err != nil {
		return zero, err
	}
	if err := validateAccount(params.Recipient); err != nil {
		return zero, err
	}

	token0, token1, _ := model.CanonicalPair(params.TokenA, params.TokenB)
	poolID := model.PoolID(token0, token1, params.Fee)

	overlay := ledger.NewOverlay(e.state)
	p, err := loadPool(ctx, overlay, poolID)
	if err != nil {
		return zero, err
	}

	if !p.HasAuthority(params.Caller) {
		global, err := e.authz.HasRole(ctx, auth.RoleFeeAuthority, params.Caller)
		if err != nil {
			return zero, err
		}
		if !global {
			return zero, model.ErrUnauthorized
		}
	}

	book := token.NewBook(overlay)
	payout0, err := clampToBalance(ctx, book, p.Account(), token0, p.ProtocolFees0)
	if err != nil {
		return zero, err
	}
	payout1, err := clampToBalance(ctx, book, p.Account(), token1, p.ProtocolFees1)
	if err != nil {
		return zero, err
	}
	if err := book.Transfer(ctx, p.Account(), params.Recipient, token0, payout0); err != nil {
		return zero, err
	}
	if err := book.Transfer(ctx, p.Account(), params.Recipient, token1, payout1); err != nil {
		return zero, err
	}
	p.ProtocolFees0 = decimal.Zero
	p.ProtocolFees1 = decimal.Zero

	if err := savePool(ctx, overlay, p); err != nil {
		return zero, err
	}
	if err := overlay.Commit(ctx); err != nil {
		return zero, fmt.Errorf("commit collect protocol fees %s: %w", poolID, err)
	}

	e.logger.Info("protocol fees collected",
		zap.String("pool", poolID),
		zap.String("caller", params.Caller),
		zap.String("amount0", payout0.String()),
		zap.String("amount1", payout1.String()),
	)
	e.journalEvent("collect_protocol", poolID, model.CollectEventData{
		Owner:     params.Caller,
		Recipient: params.Recipient,
		Amount0:   payout0.String(),
		Amount1:   payout1.String(),
	})
	return CollectResult{Amount0: payout0, Amount1: payout1}, nil
}

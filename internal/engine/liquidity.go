package engine

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"liquidityEngine/internal/dexmath"
	"liquidityEngine/internal/ledger"
	"liquidityEngine/internal/model"
	"liquidityEngine/internal/pool"
	"liquidityEngine/internal/token"
)

// AddLiquidityParams describes a liquidity provision. Amounts are desired
// upper bounds in canonical token0/token1 terms; the engine commits the
// largest liquidity both amounts can fund and charges only what that
// liquidity actually needs.
type AddLiquidityParams struct {
	Owner          string
	TokenA         string
	TokenB         string
	Fee            model.FeeTier
	TickLower      int32
	TickUpper      int32
	Amount0Desired decimal.Decimal
	Amount1Desired decimal.Decimal
}

// AddLiquidityResult reports the committed liquidity and the amounts
// charged to the owner.
type AddLiquidityResult struct {
	Liquidity decimal.Decimal
	Amount0   decimal.Decimal
	Amount1   decimal.Decimal
}

func (e *Engine) AddLiquidity(ctx context.Context, params AddLiquidityParams) (AddLiquidityResult, error) {
	var zero AddLiquidityResult

	if err := validateAccount(params.Owner); err != nil {
		return zero, err
	}
	if err := validateTickRange(params.TickLower, params.TickUpper); err != nil {
		return zero, err
	}
	if params.Amount0Desired.IsNegative() || params.Amount1Desired.IsNegative() {
		return zero, model.ErrInvalidAmount
	}

	token0, token1, _ := model.CanonicalPair(params.TokenA, params.TokenB)
	poolID := model.PoolID(token0, token1, params.Fee)

	overlay := ledger.NewOverlay(e.state)
	p, err := loadPool(ctx, overlay, poolID)
	if err != nil {
		return zero, err
	}

	sqrtLower := dexmath.SqrtPriceAtTick(params.TickLower)
	sqrtUpper := dexmath.SqrtPriceAtTick(params.TickUpper)
	liquidity := dexmath.LiquidityForAmounts(p.SqrtPrice, sqrtLower, sqrtUpper,
		params.Amount0Desired, params.Amount1Desired)
	if !liquidity.IsPositive() {
		return zero, model.ErrInvalidAmount
	}

	state := pool.NewState(p, tickLoader(ctx, overlay, poolID))
	amount0, amount1, inside0, inside1, err := state.ModifyRange(params.TickLower, params.TickUpper, liquidity)
	if err != nil {
		return zero, err
	}

	pos, err := loadPosition(ctx, overlay, poolID, params.Owner, params.TickLower, params.TickUpper)
	if err != nil {
		return zero, err
	}
	if pos == nil {
		pos = model.NewPosition(poolID, params.Owner, params.TickLower, params.TickUpper)
	}
	if err := pool.UpdatePosition(pos, liquidity, inside0, inside1); err != nil {
		return zero, err
	}

	book := token.NewBook(overlay)
	if err := book.Transfer(ctx, params.Owner, p.Account(), token0, amount0); err != nil {
		return zero, err
	}
	if err := book.Transfer(ctx, params.Owner, p.Account(), token1, amount1); err != nil {
		return zero, err
	}

	if err := savePool(ctx, overlay, p); err != nil {
		return zero, err
	}
	if err := saveTicks(ctx, overlay, poolID, state.DirtyTicks()); err != nil {
		return zero, err
	}
	if err := savePosition(ctx, overlay, pos); err != nil {
		return zero, err
	}
	if err := overlay.Commit(ctx); err != nil {
		return zero, fmt.Errorf("commit add liquidity %s: %w", poolID, err)
	}

	e.logger.Info("liquidity added",
		zap.String("pool", poolID),
		zap.String("owner", params.Owner),
		zap.Int32("tick_lower", params.TickLower),
		zap.Int32("tick_upper", params.TickUpper),
		zap.String("liquidity", liquidity.String()),
	)
	e.journalEvent("mint", poolID, model.MintEventData{
		Owner:     params.Owner,
		TickLower: params.TickLower,
		TickUpper: params.TickUpper,
		Liquidity: liquidity.String(),
		Amount0:   amount0.String(),
		Amount1:   amount1.String(),
	})
	return AddLiquidityResult{Liquidity: liquidity, Amount0: amount0, Amount1: amount1}, nil
}

// RemoveLiquidityParams describes a liquidity withdrawal.
type RemoveLiquidityParams struct {
	Owner     string
	TokenA    string
	TokenB    string
	Fee       model.FeeTier
	TickLower int32
	TickUpper int32
	Liquidity decimal.Decimal
}

// RemoveLiquidityResult reports the principal paid out to the owner.
type RemoveLiquidityResult struct {
	Amount0 decimal.Decimal
	Amount1 decimal.Decimal
}

// RemoveLiquidity burns liquidity from a position and pays the principal
// out immediately. Accrued trading fees stay on the position until
// collected. Requesting more liquidity than the position holds fails
// before any state changes.
func (e *Engine) RemoveLiquidity(ctx context.Context, params RemoveLiquidityParams) (RemoveLiquidityResult, error) {
	var zero RemoveLiquidityResult

	if err := validateAccount(params.Owner); err != nil {
		return zero, err
	}
	if err := validateTickRange(params.TickLower, params.TickUpper); err != nil {
		return zero, err
	}
	if !params.Liquidity.IsPositive() {
		return zero, model.ErrInvalidAmount
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
	if pos.Liquidity.LessThan(params.Liquidity) {
		return zero, model.ErrInsufficientLiquidity
	}

	state := pool.NewState(p, tickLoader(ctx, overlay, poolID))
	amount0, amount1, inside0, inside1, err := state.ModifyRange(params.TickLower, params.TickUpper, params.Liquidity.Neg())
	if err != nil {
		return zero, err
	}
	if err := pool.UpdatePosition(pos, params.Liquidity.Neg(), inside0, inside1); err != nil {
		return zero, err
	}

	// Principal is paid out immediately, clamped to what the pool account
	// actually holds so rounding residue cannot block a withdrawal.
	book := token.NewBook(overlay)
	payout0, err := clampToBalance(ctx, book, p.Account(), token0, amount0)
	if err != nil {
		return zero, err
	}
	payout1, err := clampToBalance(ctx, book, p.Account(), token1, amount1)
	if err != nil {
		return zero, err
	}
	if err := book.Transfer(ctx, p.Account(), params.Owner, token0, payout0); err != nil {
		return zero, err
	}
	if err := book.Transfer(ctx, p.Account(), params.Owner, token1, payout1); err != nil {
		return zero, err
	}

	if err := savePool(ctx, overlay, p); err != nil {
		return zero, err
	}
	if err := saveTicks(ctx, overlay, poolID, state.DirtyTicks()); err != nil {
		return zero, err
	}
	if err := savePosition(ctx, overlay, pos); err != nil {
		return zero, err
	}
	if err := overlay.Commit(ctx); err != nil {
		return zero, fmt.Errorf("commit remove liquidity %s: %w", poolID, err)
	}

	e.logger.Info("liquidity removed",
		zap.String("pool", poolID),
		zap.String("owner", params.Owner),
		zap.String("liquidity", params.Liquidity.String()),
	)
	e.journalEvent("burn", poolID, model.BurnEventData{
		Owner:     params.Owner,
		TickLower: params.TickLower,
		TickUpper: params.TickUpper,
		Liquidity: params.Liquidity.String(),
		Amount0:   payout0.String(),
		Amount1:   payout1.String(),
	})
	return RemoveLiquidityResult{Amount0: payout0, Amount1: payout1}, nil
}

func clampToBalance(ctx context.Context, book *token.Book, account, tokenKey string, amount decimal.Decimal) (decimal.Decimal, error) {
	balance, err := book.Balance(ctx, account, tokenKey)
	if err != nil {
		return decimal.Zero, err
	}
	return dexmath.Min(amount, balance), nil
}

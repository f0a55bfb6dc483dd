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

// SwapParams describes a swap. AmountSpecified is signed: non-negative
// means exact input, negative exact output, in units of the token being
// bought or sold per ZeroForOne. A zero SqrtPriceLimit defaults to the
// extreme bound in the trade direction; a non-zero limit must sit between
// the current price and that bound.
type SwapParams struct {
	Caller          string
	Recipient       string
	TokenA          string
	TokenB          string
	Fee             model.FeeTier
	ZeroForOne      bool
	AmountSpecified decimal.Decimal
	SqrtPriceLimit  decimal.Decimal
}

// SwapOutcome reports the settled amounts in pool-relative sign
// convention: positive was paid by the caller, negative was paid to the
// recipient. A partial fill shows up as |Amount| below the requested
// magnitude; callers must compare.
type SwapOutcome struct {
	Amount0     decimal.Decimal
	Amount1     decimal.Decimal
	SqrtPrice   decimal.Decimal
	Tick        int32
	Liquidity   decimal.Decimal
	FeeTotal    decimal.Decimal
	ProtocolFee decimal.Decimal
}

func (e *Engine) Swap(ctx context.Context, params SwapParams) (SwapOutcome, error) {
	var zero SwapOutcome

	if err := validateAccount(params.Caller); err != nil {
		return zero, err
	}
	if err := validateAccount(params.Recipient); err != nil {
		return zero, err
	}
	if err := validateTokenKey(params.TokenA); err != nil {
		return zero, err
	}
	if err := validateTokenKey(params.TokenB); err != nil {
		return zero, err
	}
	if !params.Fee.Valid() {
		return zero, model.ErrInvalidFeeTier
	}
	if params.AmountSpecified.IsZero() {
		return zero, model.ErrInvalidAmount
	}

	token0, token1, _ := model.CanonicalPair(params.TokenA, params.TokenB)
	poolID := model.PoolID(token0, token1, params.Fee)

	overlay := ledger.NewOverlay(e.state)
	p, err := loadPool(ctx, overlay, poolID)
	if err != nil {
		return zero, err
	}

	limit, err := resolvePriceLimit(p, params.ZeroForOne, params.SqrtPriceLimit)
	if err != nil {
		return zero, err
	}

	state := pool.NewState(p, tickLoader(ctx, overlay, poolID))
	result, err := state.Swap(params.AmountSpecified, limit)
	if err != nil {
		return zero, err
	}

	book := token.NewBook(overlay)
	if err := settleSwapLeg(ctx, book, params, p, token0, result.Amount0); err != nil {
		return zero, err
	}
	if err := settleSwapLeg(ctx, book, params, p, token1, result.Amount1); err != nil {
		return zero, err
	}

	if err := savePool(ctx, overlay, p); err != nil {
		return zero, err
	}
	if err := saveTicks(ctx, overlay, poolID, state.DirtyTicks()); err != nil {
		return zero, err
	}
	if err := overlay.Commit(ctx); err != nil {
		return zero, fmt.Errorf("commit swap %s: %w", poolID, err)
	}

	e.logger.Info("swap",
		zap.String("pool", poolID),
		zap.String("caller", params.Caller),
		zap.String("amount0", result.Amount0.String()),
		zap.String("amount1", result.Amount1.String()),
		zap.String("sqrt_price", p.SqrtPrice.String()),
		zap.Int32("tick", p.Tick),
	)
	e.journalEvent("swap", poolID, model.SwapEventData{
		Caller:    params.Caller,
		Recipient: params.Recipient,
		Amount0:   result.Amount0.String(),
		Amount1:   result.Amount1.String(),
		SqrtPrice: p.SqrtPrice.String(),
		Liquidity: p.Liquidity.String(),
		Tick:      p.Tick,
	})
	return SwapOutcome{
		Amount0:     result.Amount0,
		Amount1:     result.Amount1,
		SqrtPrice:   p.SqrtPrice,
		Tick:        p.Tick,
		Liquidity:   p.Liquidity,
		FeeTotal:    result.FeeTotal,
		ProtocolFee: result.ProtocolFee,
	}, nil
}

// Quote runs the swap computation against current state without settling
// or persisting anything.
func (e *Engine) Quote(ctx context.Context, params SwapParams) (SwapOutcome, error) {
	var zero SwapOutcome

	if !params.Fee.Valid() {
		return zero, model.ErrInvalidFeeTier
	}
	if params.AmountSpecified.IsZero() {
		return zero, model.ErrInvalidAmount
	}

	token0, token1, _ := model.CanonicalPair(params.TokenA, params.TokenB)
	poolID := model.PoolID(token0, token1, params.Fee)

	// The overlay absorbs the in-memory mutation and is then dropped.
	overlay := ledger.NewOverlay(e.state)
	p, err := loadPool(ctx, overlay, poolID)
	if err != nil {
		return zero, err
	}
	limit, err := resolvePriceLimit(p, params.ZeroForOne, params.SqrtPriceLimit)
	if err != nil {
		return zero, err
	}

	state := pool.NewState(p, tickLoader(ctx, overlay, poolID))
	result, err := state.Swap(params.AmountSpecified, limit)
	if err != nil {
		return zero, err
	}
	return SwapOutcome{
		Amount0:     result.Amount0,
		Amount1:     result.Amount1,
		SqrtPrice:   p.SqrtPrice,
		Tick:        p.Tick,
		Liquidity:   p.Liquidity,
		FeeTotal:    result.FeeTotal,
		ProtocolFee: result.ProtocolFee,
	}, nil
}

// resolvePriceLimit defaults and validates the caller's price limit so the
// swap loop always receives a limit strictly on the trade side of the
// current price.
func resolvePriceLimit(p *model.Pool, zeroForOne bool, limit decimal.Decimal) (decimal.Decimal, error) {
	if limit.IsZero() {
		if zeroForOne {
			return dexmath.MinSqrtPrice, nil
		}
		return dexmath.MaxSqrtPrice, nil
	}
	if zeroForOne {
		if limit.GreaterThanOrEqual(p.SqrtPrice) || limit.LessThan(dexmath.MinSqrtPrice) {
			return decimal.Zero, model.ErrInvalidSqrtPrice
		}
		return limit, nil
	}
	if limit.LessThanOrEqual(p.SqrtPrice) || limit.GreaterThan(dexmath.MaxSqrtPrice) {
		return decimal.Zero, model.ErrInvalidSqrtPrice
	}
	return limit, nil
}

// settleSwapLeg moves one token leg: positive amounts flow from the caller
// into the pool, negative amounts from the pool to the recipient.
func settleSwapLeg(ctx context.Context, book *token.Book, params SwapParams, p *model.Pool, tokenKey string, amount decimal.Decimal) error {
	switch {
	case amount.IsPositive():
		return book.Transfer(ctx, params.Caller, p.Account(), tokenKey, amount)
	case amount.IsNegative():
		return book.Transfer(ctx, p.Account(), params.Recipient, tokenKey, amount.Neg())
	}
	return nil
}

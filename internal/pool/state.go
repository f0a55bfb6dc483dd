package pool

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"liquidityEngine/internal/dexmath"
	"liquidityEngine/internal/model"
)

// TickLoader fetches a tick record from durable storage, returning
// (nil, nil) when the tick has never been written.
type TickLoader func(index int32) (*model.Tick, error)

// State is the working copy of one pool during a single operation. All
// mutation happens here, in memory; the caller persists the pool and the
// dirty ticks in one batch afterwards.
type State struct {
	Pool *model.Pool

	load  TickLoader
	ticks map[int32]*model.Tick
	dirty map[int32]struct{}
}

// NewState wraps a pool record for one operation. load may be nil when all
// ticks are known to be unwritten (fresh pools, tests).
func NewState(p *model.Pool, load TickLoader) *State {
	return &State{
		Pool:  p,
		load:  load,
		ticks: make(map[int32]*model.Tick),
		dirty: make(map[int32]struct{}),
	}
}

// Tick returns the working copy of a tick, loading it on first touch and
// lazily creating an empty record for never-written boundaries.
func (s *State) Tick(index int32) (*model.Tick, error) {
	if t, ok := s.ticks[index]; ok {
		return t, nil
	}
	if s.load != nil {
		t, err := s.load(index)
		if err != nil {
			return nil, fmt.Errorf("load tick %d: %w", index, err)
		}
		if t != nil {
			s.ticks[index] = t
			return t, nil
		}
	}
	t := model.NewTick(s.Pool.ID(), index)
	s.ticks[index] = t
	return t, nil
}

func (s *State) markDirty(index int32) {
	s.dirty[index] = struct{}{}
}

// DirtyTicks returns the ticks mutated by this operation, ordered by index.
func (s *State) DirtyTicks() []*model.Tick {
	indexes := make([]int32, 0, len(s.dirty))
	for index := range s.dirty {
		indexes = append(indexes, index)
	}
	sort.Slice(indexes, func(i, j int) bool { return indexes[i] < indexes[j] })

	ticks := make([]*model.Tick, 0, len(indexes))
	for _, index := range indexes {
		ticks = append(ticks, s.ticks[index])
	}
	return ticks
}

// ModifyRange applies a signed liquidity delta across [tickLower,
// tickUpper): both boundary ticks are updated (flipping bitmap bits as
// needed), active liquidity is adjusted when the current tick is inside the
// range, and the token amounts for |delta| are computed from the current
// price. It also returns the range's fee growth inside, which the caller
// settles into the position.
func (s *State) ModifyRange(tickLower, tickUpper int32, delta decimal.Decimal) (amount0, amount1, inside0, inside1 decimal.Decimal, err error) {
	p := s.Pool

	lower, err := s.Tick(tickLower)
	if err != nil {
		return decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero, err
	}
	upper, err := s.Tick(tickUpper)
	if err != nil {
		return decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero, err
	}

	if !delta.IsZero() {
		flippedLower, err := UpdateTick(lower, p.Tick, delta, p.FeeGrowthGlobal0, p.FeeGrowthGlobal1, false)
		if err != nil {
			return decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero, err
		}
		flippedUpper, err := UpdateTick(upper, p.Tick, delta, p.FeeGrowthGlobal0, p.FeeGrowthGlobal1, true)
		if err != nil {
			return decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero, err
		}
		s.markDirty(tickLower)
		s.markDirty(tickUpper)

		if flippedLower {
			FlipTick(p, tickLower)
		}
		if flippedUpper {
			FlipTick(p, tickUpper)
		}
	}

	inside0, inside1 = FeeGrowthInside(lower, upper, p.Tick, p.FeeGrowthGlobal0, p.FeeGrowthGlobal1)

	if delta.IsZero() {
		return decimal.Zero, decimal.Zero, inside0, inside1, nil
	}

	if p.Tick >= tickLower && p.Tick < tickUpper {
		liquidityNext, err := dexmath.AddLiquidityDelta(p.Liquidity, delta)
		if err != nil {
			return decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero, err
		}
		p.Liquidity = liquidityNext
	}

	sqrtLower := dexmath.SqrtPriceAtTick(tickLower)
	sqrtUpper := dexmath.SqrtPriceAtTick(tickUpper)
	amount0, amount1 = dexmath.AmountsForLiquidity(p.SqrtPrice, sqrtLower, sqrtUpper, delta.Abs())
	return amount0, amount1, inside0, inside1, nil
}

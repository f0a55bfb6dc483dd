package model

// Event is one journaled engine operation.
type Event struct {
	Type      string      `json:"type"`
	PoolID    string      `json:"pool_id"`
	Timestamp string      `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// SwapEventData is the journaled Swap payload.
type SwapEventData struct {
	Caller    string `json:"caller"`
	Recipient string `json:"recipient"`
	Amount0   string `json:"amount0"`
	Amount1   string `json:"amount1"`
	SqrtPrice string `json:"sqrt_price"`
	Liquidity string `json:"liquidity"`
	Tick      int32  `json:"tick"`
}

// MintEventData is the journaled AddLiquidity payload.
type MintEventData struct {
	Owner     string `json:"owner"`
	TickLower int32  `json:"tick_lower"`
	TickUpper int32  `json:"tick_upper"`
	Liquidity string `json:"liquidity"`
	Amount0   string `json:"amount0"`
	Amount1   string `json:"amount1"`
}

// BurnEventData is the journaled RemoveLiquidity payload.
type BurnEventData struct {
	Owner     string `json:"owner"`
	TickLower int32  `json:"tick_lower"`
	TickUpper int32  `json:"tick_upper"`
	Liquidity string `json:"liquidity"`
	Amount0   string `json:"amount0"`
	Amount1   string `json:"amount1"`
}

// CollectEventData is the journaled fee collection payload, used for both
// trading-fee and protocol-fee collection.
type CollectEventData struct {
	Owner     string `json:"owner"`
	Recipient string `json:"recipient"`
	TickLower int32  `json:"tick_lower,omitempty"`
	TickUpper int32  `json:"tick_upper,omitempty"`
	Amount0   string `json:"amount0"`
	Amount1   string `json:"amount1"`
}

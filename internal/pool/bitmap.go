// Package pool implements the in-memory pool aggregate: the word-packed
// initialized-tick index, per-tick bookkeeping, position accounting, and
// the swap loop. All durable reads and writes stay with the caller.
package pool

import (
	"math/big"
	"strconv"

	"liquidityEngine/internal/model"
)

// Each bitmap word tracks 256 tick indexes.
const bitmapWordSize = 256

func wordAndBit(tick int32) (int32, int) {
	word := tick >> 8
	bit := int(tick - word*bitmapWordSize)
	return word, bit
}

func loadWord(p *model.Pool, word int32) *big.Int {
	if p.Bitmap == nil {
		return new(big.Int)
	}
	encoded, ok := p.Bitmap[strconv.FormatInt(int64(word), 10)]
	if !ok {
		return new(big.Int)
	}
	bits, ok := new(big.Int).SetString(encoded, 16)
	if !ok {
		return new(big.Int)
	}
	return bits
}

func storeWord(p *model.Pool, word int32, bits *big.Int) {
	key := strconv.FormatInt(int64(word), 10)
	if bits.Sign() == 0 {
		delete(p.Bitmap, key)
		return
	}
	if p.Bitmap == nil {
		p.Bitmap = make(map[string]string)
	}
	p.Bitmap[key] = bits.Text(16)
}

// FlipTick toggles the initialized bit for a tick. Called exactly on
// 0→gross and gross→0 transitions so the bitmap stays synchronized with
// tick records.
func FlipTick(p *model.Pool, tick int32) {
	word, bit := wordAndBit(tick)
	bits := loadWord(p, word)
	bits.SetBit(bits, bit, 1-bits.Bit(bit))
	storeWord(p, word, bits)
}

// TickInitialized reports whether the bitmap carries the tick's bit.
func TickInitialized(p *model.Pool, tick int32) bool {
	word, bit := wordAndBit(tick)
	return loadWord(p, word).Bit(bit) == 1
}

// NextInitializedTickWithinWord finds the nearest initialized tick in the
// search direction without leaving the current bitmap word. When the word
// holds no initialized tick it returns the word boundary with false, so a
// caller stepping from the returned tick advances at least one word per
// call. That bound is what terminates the swap loop.
func NextInitializedTickWithinWord(p *model.Pool, tick int32, lte bool) (int32, bool) {
	if lte {
		word, bit := wordAndBit(tick)
		bits := loadWord(p, word)

		// Keep only bits at or below the current position.
		mask := new(big.Int).Lsh(big.NewInt(1), uint(bit)+1)
		mask.Sub(mask, big.NewInt(1))
		masked := new(big.Int).And(bits, mask)

		if masked.Sign() != 0 {
			msb := masked.BitLen() - 1
			return word*bitmapWordSize + int32(msb), true
		}
		return word * bitmapWordSize, false
	}

	word, bit := wordAndBit(tick + 1)
	bits := loadWord(p, word)

	// Keep only bits at or above the current position.
	low := new(big.Int).Lsh(big.NewInt(1), uint(bit))
	low.Sub(low, big.NewInt(1))
	masked := new(big.Int).AndNot(bits, low)

	if masked.Sign() != 0 {
		lsb := int(masked.TrailingZeroBits())
		return word*bitmapWordSize + int32(lsb), true
	}
	return word*bitmapWordSize + bitmapWordSize - 1, false
}

package pool

import (
	"testing"

	"liquidityEngine/internal/model"
)

func testPool() *model.Pool {
	return &model.Pool{
		Token0: "GALA",
		Token1: "USD",
		Fee:    model.FeeTier3000,
		Bitmap: make(map[string]string),
	}
}

func TestFlipTickToggles(t *testing.T) {
	p := testPool()

	for _, tick := range []int32{0, 5, -5, 255, 256, -256, 887272, -887272} {
		if TickInitialized(p, tick) {
			t.Fatalf("tick %d initialized before flip", tick)
		}
		FlipTick(p, tick)
		if !TickInitialized(p, tick) {
			t.Fatalf("tick %d not initialized after flip", tick)
		}
		FlipTick(p, tick)
		if TickInitialized(p, tick) {
			t.Fatalf("tick %d still initialized after second flip", tick)
		}
	}

	if len(p.Bitmap) != 0 {
		t.Fatalf("bitmap not empty after flipping everything back: %v", p.Bitmap)
	}
}

func TestFlipTickIsolation(t *testing.T) {
	p := testPool()

	FlipTick(p, 100)
	FlipTick(p, 101)
	FlipTick(p, 100)

	if TickInitialized(p, 100) {
		t.Fatal("tick 100 should be cleared")
	}
	if !TickInitialized(p, 101) {
		t.Fatal("tick 101 should still be set")
	}
}

func TestNextInitializedTickWithinWord(t *testing.T) {
	p := testPool()
	FlipTick(p, -5)
	FlipTick(p, 5)
	FlipTick(p, 100)

	cases := []struct {
		name  string
		tick  int32
		lte   bool
		want  int32
		found bool
	}{
		{"lte finds highest at or below", 50, true, 5, true},
		{"lte at the set tick itself", 5, true, 5, true},
		{"lte empty below returns word start", 4, true, 0, false},
		{"gt finds next above", 5, false, 100, true},
		{"gt past last returns word end", 100, false, 255, false},
		{"lte negative word", -1, true, -5, true},
		{"lte empty negative word returns word start", -300, true, -512, false},
		{"gt above the negative bits returns word end", -2, false, -1, false},
	}

	for _, tc := range cases {
		got, found := NextInitializedTickWithinWord(p, tc.tick, tc.lte)
		if got != tc.want || found != tc.found {
			t.Fatalf("%s: got (%d, %v), want (%d, %v)", tc.name, got, found, tc.want, tc.found)
		}
	}
}

func TestNextInitializedTickAdvancesWordByWord(t *testing.T) {
	p := testPool()

	// With an empty bitmap the downward query must land on the word start,
	// so stepping from (returned - 1) always leaves the word.
	tick := int32(1000)
	for i := 0; i < 10; i++ {
		next, found := NextInitializedTickWithinWord(p, tick, true)
		if found {
			t.Fatalf("found a tick in an empty bitmap at %d", next)
		}
		if next > tick {
			t.Fatalf("downward query moved up: %d -> %d", tick, next)
		}
		if next%bitmapWordSize != 0 {
			t.Fatalf("word boundary expected, got %d", next)
		}
		tick = next - 1
	}
	if tick >= 1000-9*bitmapWordSize {
		t.Fatalf("ten hops moved only to %d", tick)
	}
}

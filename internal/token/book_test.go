package token

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"liquidityEngine/internal/ledger/memory"
	"liquidityEngine/internal/model"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestBookMintAndBalance(t *testing.T) {
	ctx := context.Background()
	book := NewBook(memory.NewStore())

	got, err := book.Balance(ctx, "alice", "GALA")
	if err != nil || !got.IsZero() {
		t.Fatalf("fresh balance = %s, %v", got, err)
	}

	if err := book.Mint(ctx, "alice", "GALA", d("100.5")); err != nil {
		t.Fatalf("mint: %v", err)
	}
	if err := book.Mint(ctx, "alice", "GALA", d("0.5")); err != nil {
		t.Fatalf("second mint: %v", err)
	}

	got, err = book.Balance(ctx, "alice", "GALA")
	if err != nil || !got.Equal(d("101")) {
		t.Fatalf("balance = %s, %v, want 101", got, err)
	}

	if err := book.Mint(ctx, "alice", "GALA", d("-1")); err != model.ErrInvalidAmount {
		t.Fatalf("negative mint = %v, want ErrInvalidAmount", err)
	}
}

func TestBookTransfer(t *testing.T) {
	ctx := context.Background()
	book := NewBook(memory.NewStore())

	if err := book.Mint(ctx, "alice", "USD", d("100")); err != nil {
		t.Fatalf("mint: %v", err)
	}
	if err := book.Transfer(ctx, "alice", "pool:GALA:USD:3000", "USD", d("40")); err != nil {
		t.Fatalf("transfer: %v", err)
	}

	from, _ := book.Balance(ctx, "alice", "USD")
	to, _ := book.Balance(ctx, "pool:GALA:USD:3000", "USD")
	if !from.Equal(d("60")) || !to.Equal(d("40")) {
		t.Fatalf("balances = %s / %s, want 60 / 40", from, to)
	}
}

func TestBookTransferInsufficient(t *testing.T) {
	ctx := context.Background()
	book := NewBook(memory.NewStore())

	if err := book.Mint(ctx, "alice", "USD", d("10")); err != nil {
		t.Fatalf("mint: %v", err)
	}
	err := book.Transfer(ctx, "alice", "bob", "USD", d("11"))
	if !errors.Is(err, model.ErrInsufficientBalance) {
		t.Fatalf("err = %v, want ErrInsufficientBalance", err)
	}

	// The failed transfer must not move anything.
	got, _ := book.Balance(ctx, "alice", "USD")
	if !got.Equal(d("10")) {
		t.Fatalf("balance after failed transfer = %s, want 10", got)
	}
}

func TestBookTransferEdgeCases(t *testing.T) {
	ctx := context.Background()
	book := NewBook(memory.NewStore())

	if err := book.Transfer(ctx, "alice", "bob", "USD", decimal.Zero); err != nil {
		t.Fatalf("zero transfer should be a no-op: %v", err)
	}
	if err := book.Transfer(ctx, "alice", "alice", "USD", d("5")); err != nil {
		t.Fatalf("self transfer should be a no-op: %v", err)
	}
	if err := book.Transfer(ctx, "alice", "bob", "USD", d("-5")); err != model.ErrInvalidAmount {
		t.Fatalf("negative transfer = %v, want ErrInvalidAmount", err)
	}
}

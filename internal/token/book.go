// Package token implements the balance book: per-account, per-token
// decimal balances stored as ledger records. The engine settles every
// operation through transfers here, so conservation across accounts is a
// property of this package.
package token

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"liquidityEngine/internal/ledger"
	"liquidityEngine/internal/model"
)

// Book reads and writes balances on a ledger. It carries no state of its
// own; pointing two books at the same ledger yields the same view.
type Book struct {
	state ledger.Ledger
}

func NewBook(state ledger.Ledger) *Book {
	return &Book{state: state}
}

// Balance returns the account's balance in one token; never-written
// balances read as zero.
func (b *Book) Balance(ctx context.Context, account, token string) (decimal.Decimal, error) {
	raw, err := b.state.Get(ctx, model.BalanceKey(account, token))
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("read balance %s/%s: %w", account, token, err)
	}
	amount, err := decimal.NewFromString(string(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("decode balance %s/%s: %w", account, token, err)
	}
	return amount, nil
}

func (b *Book) setBalance(ctx context.Context, account, token string, amount decimal.Decimal) error {
	key := model.BalanceKey(account, token)
	if amount.IsZero() {
		if err := b.state.Delete(ctx, key); err != nil {
			return fmt.Errorf("clear balance %s/%s: %w", account, token, err)
		}
		return nil
	}
	if err := b.state.Put(ctx, key, []byte(amount.String())); err != nil {
		return fmt.Errorf("write balance %s/%s: %w", account, token, err)
	}
	return nil
}

// Mint credits an account out of thin air. Pool operations never mint;
// this exists for genesis and test funding.
func (b *Book) Mint(ctx context.Context, account, token string, amount decimal.Decimal) error {
	if account == "" || token == "" {
		return fmt.Errorf("mint: account and token are required")
	}
	if !amount.IsPositive() {
		return model.ErrInvalidAmount
	}
	current, err := b.Balance(ctx, account, token)
	if err != nil {
		return err
	}
	return b.setBalance(ctx, account, token, current.Add(amount))
}

// Transfer moves amount of token from one account to another. A zero
// amount is a no-op; the sender's balance must cover the amount.
func (b *Book) Transfer(ctx context.Context, from, to, token string, amount decimal.Decimal) error {
	if from == "" || to == "" || token == "" {
		return fmt.Errorf("transfer: accounts and token are required")
	}
	if amount.IsNegative() {
		return model.ErrInvalidAmount
	}
	if amount.IsZero() || from == to {
		return nil
	}

	fromBalance, err := b.Balance(ctx, from, token)
	if err != nil {
		return err
	}
	if fromBalance.LessThan(amount) {
		return fmt.Errorf("%w: %s has %s %s, needs %s", model.ErrInsufficientBalance, from, fromBalance, token, amount)
	}
	toBalance, err := b.Balance(ctx, to, token)
	if err != nil {
		return err
	}

	if err := b.setBalance(ctx, from, token, fromBalance.Sub(amount)); err != nil {
		return err
	}
	return b.setBalance(ctx, to, token, toBalance.Add(amount))
}

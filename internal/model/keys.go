package model

import "fmt"

// Ledger key prefixes. Composite keys are |-separated segments so prefix
// queries can enumerate all records of one kind under one parent.
const (
	PoolKeyPrefix     = "pool|"
	TickKeyPrefix     = "tick|"
	PositionKeyPrefix = "posn|"
	BalanceKeyPrefix  = "bal|"
	RoleKeyPrefix     = "role|"
)

// PoolKey returns the ledger key for a pool record.
func PoolKey(poolID string) string {
	return PoolKeyPrefix + poolID
}

// TickKey returns the ledger key for a tick record.
func TickKey(poolID string, index int32) string {
	return fmt.Sprintf("%s%s|%d", TickKeyPrefix, poolID, index)
}

// PositionKey returns the ledger key for a position record.
func PositionKey(poolID, owner string, tickLower, tickUpper int32) string {
	return fmt.Sprintf("%s%s|%s|%d|%d", PositionKeyPrefix, poolID, owner, tickLower, tickUpper)
}

// PositionPrefix returns the prefix covering all positions of one owner in
// one pool.
func PositionPrefix(poolID, owner string) string {
	return fmt.Sprintf("%s%s|%s|", PositionKeyPrefix, poolID, owner)
}

// BalanceKey returns the ledger key for an account's balance in one token.
func BalanceKey(account, token string) string {
	return fmt.Sprintf("%s%s|%s", BalanceKeyPrefix, account, token)
}

// RoleKey returns the ledger key for a role grant.
func RoleKey(role, account string) string {
	return fmt.Sprintf("%s%s|%s", RoleKeyPrefix, role, account)
}

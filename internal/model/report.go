package model

import "time"

// Network names a Bitcoin network (mainnet, testnet, regtest, signet).
type Network string

var (
	Mainnet Network = "mainnet"
	Testnet Network = "testnet"
	Regtest Network = "regtest"
	Signet  Network = "signet"
)

// BlockReport is one exported report row.
type BlockReport struct {
	Network   Network
	Height    uint64
	Hash      string
	Timestamp time.Time
	Interval  int64
	Miner     string
	// Fields holds the JSON encoding of the raw values of the selected columns.
	Fields string
}

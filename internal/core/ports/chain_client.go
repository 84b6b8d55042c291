package ports

import (
	"context"
	"math/big"
)

// ChainClient is the read-only view of an Ethereum RPC endpoint consumed by
// the session signer. Transaction broadcasting is deliberately out of its
// surface.
type ChainClient interface {
	// BalanceOf returns the balance in wei of the given 0x address.
	BalanceOf(ctx context.Context, address string) (*big.Int, error)
	// ChainID returns the id of the chain the endpoint is serving.
	ChainID(ctx context.Context) (*big.Int, error)
	// Close tears down the underlying connection.
	Close()
}

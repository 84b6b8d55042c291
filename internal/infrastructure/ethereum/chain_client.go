package ethereum

import (
	"context"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/sony/gobreaker"

	"github.com/etherkeep/etherkeep-daemon/internal/core/ports"
	"github.com/etherkeep/etherkeep-daemon/pkg/circuitbreaker"
)

// ErrInvalidAddress ...
var ErrInvalidAddress = errors.New("invalid ethereum address")

type chainClient struct {
	client  *ethclient.Client
	breaker *gobreaker.CircuitBreaker
}

// NewChainClient returns a ports.ChainClient backed by the JSON-RPC endpoint
// at the given URL. Calls go through a circuit breaker so a flapping endpoint
// fails fast instead of piling up timeouts.
func NewChainClient(rpcURL string) (ports.ChainClient, error) {
	client, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, err
	}

	return &chainClient{
		client:  client,
		breaker: circuitbreaker.NewCircuitBreaker("ethereum-rpc"),
	}, nil
}

func (c *chainClient) BalanceOf(
	ctx context.Context, address string,
) (*big.Int, error) {
	if !common.IsHexAddress(address) {
		return nil, ErrInvalidAddress
	}

	balance, err := c.breaker.Execute(func() (interface{}, error) {
		return c.client.BalanceAt(ctx, common.HexToAddress(address), nil)
	})
	if err != nil {
		return nil, err
	}
	return balance.(*big.Int), nil
}

func (c *chainClient) ChainID(ctx context.Context) (*big.Int, error) {
	chainID, err := c.breaker.Execute(func() (interface{}, error) {
		return c.client.ChainID(ctx)
	})
	if err != nil {
		return nil, err
	}
	return chainID.(*big.Int), nil
}

func (c *chainClient) Close() {
	c.client.Close()
}

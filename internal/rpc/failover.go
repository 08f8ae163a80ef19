// Package rpc selects a usable endpoint from the panel's RPC list.
package rpc

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/suiyuan1314/CommonEVMContractDashboard/internal/chain"
)

// ErrNoHealthyRPC is returned when no endpoint in the list responds.
var ErrNoHealthyRPC = errors.New("no healthy RPC endpoint available")

// Discard nodes more than this many blocks behind the best.
const staleBlockThreshold = 3

// Endpoint is one probed RPC URL.
type Endpoint struct {
	URL         string
	Latency     time.Duration
	BlockNumber uint64
	Healthy     bool
}

// Prober pings a URL. *chain.EVMClient's Ping satisfies it through probeURL;
// tests substitute their own.
type Prober func(ctx context.Context, url string) (time.Duration, uint64, error)

func probeURL(ctx context.Context, url string) (time.Duration, uint64, error) {
	probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return chain.NewEVMClient(url).Ping(probeCtx)
}

// ProbeAll pings every URL in parallel and returns one Endpoint per URL,
// in input order.
func ProbeAll(ctx context.Context, urls []string, probe Prober) []Endpoint {
	if probe == nil {
		probe = probeURL
	}
	endpoints := make([]Endpoint, len(urls))
	var wg sync.WaitGroup
	for i, url := range urls {
		wg.Add(1)
		go func(idx int, u string) {
			defer wg.Done()
			latency, block, err := probe(ctx, u)
			endpoints[idx] = Endpoint{
				URL:         u,
				Latency:     latency,
				BlockNumber: block,
				Healthy:     err == nil,
			}
		}(i, url)
	}
	wg.Wait()

	// Mark nodes lagging the best block as unhealthy.
	var bestBlock uint64
	for _, e := range endpoints {
		if e.Healthy && e.BlockNumber > bestBlock {
			bestBlock = e.BlockNumber
		}
	}
	for i := range endpoints {
		if endpoints[i].Healthy && bestBlock > 0 && bestBlock-endpoints[i].BlockNumber > staleBlockThreshold {
			endpoints[i].Healthy = false
		}
	}
	return endpoints
}

// Failover returns the first healthy endpoint in list order.
func Failover(endpoints []Endpoint) (Endpoint, error) {
	for _, e := range endpoints {
		if e.Healthy {
			return e, nil
		}
	}
	return Endpoint{}, ErrNoHealthyRPC
}

// Fastest returns the healthy endpoint with the lowest latency.
func Fastest(endpoints []Endpoint) (Endpoint, error) {
	var winner *Endpoint
	for i := range endpoints {
		e := &endpoints[i]
		if !e.Healthy {
			continue
		}
		if winner == nil || e.Latency < winner.Latency {
			winner = e
		}
	}
	if winner == nil {
		return Endpoint{}, ErrNoHealthyRPC
	}
	return *winner, nil
}

// SelectBest probes the panel's RPC list and returns a usable URL: the
// first healthy one in list order, or the fastest when fastest is true.
// A single-entry list is returned as-is without probing.
func SelectBest(ctx context.Context, urls []string, fastest bool) (string, error) {
	if len(urls) == 0 {
		return "", ErrNoHealthyRPC
	}
	if len(urls) == 1 {
		return urls[0], nil
	}
	endpoints := ProbeAll(ctx, urls, nil)
	var (
		winner Endpoint
		err    error
	)
	if fastest {
		winner, err = Fastest(endpoints)
	} else {
		winner, err = Failover(endpoints)
	}
	if err != nil {
		return "", err
	}
	return winner.URL, nil
}

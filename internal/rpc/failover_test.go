package rpc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type probeResult struct {
	latency time.Duration
	block   uint64
	err     error
}

func tableProber(results map[string]probeResult) Prober {
	return func(ctx context.Context, url string) (time.Duration, uint64, error) {
		r := results[url]
		return r.latency, r.block, r.err
	}
}

func TestProbeAll(t *testing.T) {
	probe := tableProber(map[string]probeResult{
		"https://a": {latency: 50 * time.Millisecond, block: 100},
		"https://b": {err: errors.New("connection refused")},
		"https://c": {latency: 20 * time.Millisecond, block: 101},
	})

	endpoints := ProbeAll(context.Background(), []string{"https://a", "https://b", "https://c"}, probe)
	require.Len(t, endpoints, 3)

	// Results come back in input order regardless of probe timing.
	assert.Equal(t, "https://a", endpoints[0].URL)
	assert.True(t, endpoints[0].Healthy)
	assert.Equal(t, uint64(100), endpoints[0].BlockNumber)

	assert.False(t, endpoints[1].Healthy)
	assert.True(t, endpoints[2].Healthy)
}

func TestProbeAllMarksStaleNodesUnhealthy(t *testing.T) {
	probe := tableProber(map[string]probeResult{
		"https://fresh":  {latency: 30 * time.Millisecond, block: 1000},
		"https://behind": {latency: 10 * time.Millisecond, block: 990},
		"https://close":  {latency: 10 * time.Millisecond, block: 998},
	})

	endpoints := ProbeAll(context.Background(), []string{"https://fresh", "https://behind", "https://close"}, probe)
	assert.True(t, endpoints[0].Healthy)
	assert.False(t, endpoints[1].Healthy, "ten blocks behind is stale")
	assert.True(t, endpoints[2].Healthy, "within the lag threshold")
}

func TestFailoverPrefersListOrder(t *testing.T) {
	endpoints := []Endpoint{
		{URL: "https://a", Healthy: false},
		{URL: "https://b", Healthy: true, Latency: 90 * time.Millisecond},
		{URL: "https://c", Healthy: true, Latency: 10 * time.Millisecond},
	}
	got, err := Failover(endpoints)
	require.NoError(t, err)
	assert.Equal(t, "https://b", got.URL, "first healthy wins even when a faster one exists")
}

func TestFastest(t *testing.T) {
	endpoints := []Endpoint{
		{URL: "https://a", Healthy: true, Latency: 90 * time.Millisecond},
		{URL: "https://b", Healthy: false, Latency: time.Millisecond},
		{URL: "https://c", Healthy: true, Latency: 10 * time.Millisecond},
	}
	got, err := Fastest(endpoints)
	require.NoError(t, err)
	assert.Equal(t, "https://c", got.URL)
}

func TestNoHealthyEndpoint(t *testing.T) {
	endpoints := []Endpoint{{URL: "https://a"}, {URL: "https://b"}}

	_, err := Failover(endpoints)
	assert.ErrorIs(t, err, ErrNoHealthyRPC)

	_, err = Fastest(endpoints)
	assert.ErrorIs(t, err, ErrNoHealthyRPC)
}

func TestSelectBest(t *testing.T) {
	t.Run("empty list", func(t *testing.T) {
		_, err := SelectBest(context.Background(), nil, false)
		assert.ErrorIs(t, err, ErrNoHealthyRPC)
	})

	t.Run("single entry skips probing", func(t *testing.T) {
		url, err := SelectBest(context.Background(), []string{"https://only"}, false)
		require.NoError(t, err)
		assert.Equal(t, "https://only", url)
	})
}

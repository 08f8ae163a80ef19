// probe-rpcs: pings a list of RPC endpoints in parallel and prints a
// latency/block summary table. URLs are taken from the command line.
//
// Run from the module root:
//
//	go run ./scripts/probe-rpcs https://eth.llamarpc.com https://rpc.ankr.com/eth
package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/suiyuan1314/CommonEVMContractDashboard/internal/rpc"
)

func main() {
	urls := os.Args[1:]
	if len(urls) == 0 {
		fmt.Fprintln(os.Stderr, "usage: probe-rpcs <url> [url...]")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	endpoints := rpc.ProbeAll(ctx, urls, nil)

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "URL\tLATENCY\tBLOCK\tSTATUS")
	for _, e := range endpoints {
		status := "ok"
		if !e.Healthy {
			status = "down"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", e.URL, e.Latency.Round(time.Millisecond), e.BlockNumber, status)
	}
	w.Flush()

	if best, err := rpc.Failover(endpoints); err == nil {
		fmt.Printf("\nfirst healthy: %s\n", best.URL)
	} else {
		fmt.Println("\nno healthy endpoint")
		os.Exit(1)
	}
}

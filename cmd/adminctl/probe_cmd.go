package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/jrsteele09/go-admin-client/apiclient"
	"github.com/jrsteele09/go-admin-client/internal/metrics"
	dto "github.com/prometheus/client_model/go"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// newProbeCommand fires concurrent requests through the shared coordinator,
// which shows how many refresh exchanges a burst of expired requests costs.
func newProbeCommand(cfg *cliConfig) *cobra.Command {
	var (
		count       int
		path        string
		metricsAddr string
	)
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Send concurrent requests and report refresh statistics",
		RunE: withApp(cfg, func(cmd *cobra.Command, a *app, args []string) error {
			if count < 1 {
				return errors.New("--count must be at least 1")
			}
			ctx := cmd.Context()

			var server *http.Server
			if metricsAddr != "" {
				listener, err := net.Listen("tcp", metricsAddr)
				if err != nil {
					return fmt.Errorf("failed to listen on %s: %w", metricsAddr, err)
				}
				server = &http.Server{Handler: metrics.Handler(a.registry), ReadHeaderTimeout: 5 * time.Second}
				go func() {
					if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
						log.Err(err).Msg("Metrics server stopped")
					}
				}()
				log.Info().Str("addr", listener.Addr().String()).Msg("Serving metrics")
			}

			start := time.Now()
			failed := probe(ctx, a.core, path, count)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "requests:  %d (%d failed) in %s\n", count, failed, time.Since(start).Round(time.Millisecond))

			families, err := a.registry.Gather()
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "exchanges: %.0f\n", sumMetric(families, "admin_client_refresh_exchanges_total"))
			fmt.Fprintf(out, "queued:    %.0f\n", sumMetric(families, "admin_client_refresh_queued_total"))
			fmt.Fprintf(out, "replayed:  %.0f\n", sumMetric(families, "admin_client_refresh_replayed_total"))

			if server == nil {
				return nil
			}
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		}),
	}
	cmd.Flags().IntVar(&count, "count", 10, "number of concurrent requests")
	cmd.Flags().StringVar(&path, "path", "setting/core", "GET route on the core backend")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address until interrupted")
	return cmd
}

func probe(ctx context.Context, client *apiclient.Client, path string, count int) int {
	var (
		wg     sync.WaitGroup
		lock   sync.Mutex
		failed int
	)
	for range count {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := client.GetJSON(ctx, path, nil, nil); err != nil {
				log.Err(err).Str("path", path).Msg("Probe request failed")
				lock.Lock()
				failed++
				lock.Unlock()
			}
		}()
	}
	wg.Wait()
	return failed
}

func sumMetric(families []*dto.MetricFamily, name string) float64 {
	var total float64
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, m := range family.GetMetric() {
			total += m.GetCounter().GetValue()
		}
	}
	return total
}

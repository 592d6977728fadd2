// Command healthcheck probes the local server's /livez endpoint and exits
// non-zero if it is unhealthy. It is meant for container HEALTHCHECK use.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/garyellow/strcheck/internal/config"
)

func main() {
	port := os.Getenv(config.EnvPort)
	if port == "" {
		port = "10000"
	}

	if err := probe(fmt.Sprintf("http://localhost:%s/livez", port)); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func probe(url string) error {
	ctx, cancel := context.WithTimeout(context.Background(), config.HealthcheckRequest)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("healthcheck: %s returned %d", url, resp.StatusCode)
	}
	return nil
}

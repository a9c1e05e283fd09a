package marketsource

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"YenMetrics/internal/domain/models"
	drepo "YenMetrics/internal/domain/repository"
	xhttp "YenMetrics/pkg/http"
)

// New builds a MarketDataSource for the configured location: an http(s)
// URL is fetched remotely, anything else is treated as a local file path.
// Either way the collaborator delivers the already-prepared market_data
// document; the calculation core never does I/O itself.
func New(source string, timeout time.Duration) drepo.MarketDataSource {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return &HTTPSource{url: source, client: xhttp.NewClient(xhttp.WithTimeout(timeout))}
	}
	return &FileSource{path: source}
}

// FileSource reads the raw document from disk (the ingest job's output).
type FileSource struct {
	path string
}

func (s *FileSource) Fetch(ctx context.Context) (*models.RawMarketData, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read market data: %w", err)
	}
	var raw models.RawMarketData
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parse market data: %w", err)
	}
	return &raw, nil
}

// HTTPSource fetches the raw document from a remote ingest service.
type HTTPSource struct {
	url    string
	client *xhttp.Client
}

func (s *HTTPSource) Fetch(ctx context.Context) (*models.RawMarketData, error) {
	var raw models.RawMarketData
	err := s.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    s.url,
	}, &raw)
	if err != nil {
		return nil, fmt.Errorf("fetch market data: %w", err)
	}
	return &raw, nil
}

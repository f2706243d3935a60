package catalog

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Enricher resolves product records for a batch of ids with bounded
// parallelism. A product the catalog cannot serve is simply absent from the
// result: callers render what they have.
type Enricher struct {
	reader        Reader
	maxConcurrent int
	log           *slog.Logger
}

func NewEnricher(reader Reader, maxConcurrent int, log *slog.Logger) *Enricher {
	if maxConcurrent <= 0 {
		maxConcurrent = 10
	}
	return &Enricher{reader: reader, maxConcurrent: maxConcurrent, log: log}
}

func (e *Enricher) Products(ctx context.Context, productIDs []string) map[string]Product {
	results := make([]*Product, len(productIDs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.maxConcurrent)

	for idx, id := range productIDs {
		idx, id := idx, id
		g.Go(func() error {
			p, err := e.reader.GetProduct(ctx, id)
			if err != nil {
				e.log.Warn("product enrichment failed",
					slog.String("product_id", id), slog.Any("err", err))
				return nil
			}
			results[idx] = &p
			return nil
		})
	}

	// Workers never return errors, so this only waits.
	_ = g.Wait()

	out := make(map[string]Product, len(productIDs))
	for i, p := range results {
		if p != nil {
			out[productIDs[i]] = *p
		}
	}
	return out
}

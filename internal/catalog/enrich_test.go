package catalog

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

type mapReader struct {
	products map[string]Product
	calls    atomic.Int32
}

func (r *mapReader) GetProduct(_ context.Context, id string) (Product, error) {
	r.calls.Add(1)
	p, ok := r.products[id]
	if !ok {
		return Product{}, ErrNotFound
	}
	return p, nil
}

func TestEnricher_PartialFailureKeepsTheRest(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	reader := &mapReader{products: map[string]Product{
		"p1": {ID: "p1", Name: "Runner Pro", PriceAmount: 1000, Currency: "PKR"},
		"p3": {ID: "p3", Name: "Court Classic", PriceAmount: 2500, Currency: "PKR"},
	}}

	e := NewEnricher(reader, 2, log)
	got := e.Products(context.Background(), []string{"p1", "p2", "p3"})

	assert.Len(t, got, 2)
	assert.Equal(t, "Runner Pro", got["p1"].Name)
	assert.Equal(t, "Court Classic", got["p3"].Name)
	assert.NotContains(t, got, "p2")
	assert.Equal(t, int32(3), reader.calls.Load())
}

func TestEnricher_EmptyInput(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	e := NewEnricher(&mapReader{}, 0, log)

	got := e.Products(context.Background(), nil)
	assert.Empty(t, got)
}

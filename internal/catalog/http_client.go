package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
)

type HTTPClient struct {
	base   string
	client *http.Client
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		base: baseURL,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

func (c *HTTPClient) GetProduct(ctx context.Context, productID string) (Product, error) {
	u := fmt.Sprintf("%s/products/%s", c.base, url.PathEscape(productID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Product{}, errors.Wrap(err, "build catalog request")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return Product{}, errors.Wrap(err, "fetch product")
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return Product{}, ErrNotFound
	default:
		return Product{}, errors.Errorf("catalog returned status %d", resp.StatusCode)
	}

	var p Product
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return Product{}, errors.Wrap(err, "decode product")
	}
	return p, nil
}

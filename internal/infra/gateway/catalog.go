package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"artisan-quotes/internal/domain/quote"
	"artisan-quotes/internal/infra"
	"artisan-quotes/internal/pkg/config"

	"github.com/google/uuid"
)

// CatalogGateway fetches product snapshots from the catalog service over
// HTTP. Quote validation only needs a point-in-time view, so responses are
// not cached.
type CatalogGateway struct {
	baseURL string
	client  *http.Client
}

func NewCatalogGateway(cfg config.CatalogConfig) *CatalogGateway {
	return &CatalogGateway{
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

type productResponse struct {
	ID                 uuid.UUID `json:"id"`
	SellerID           uuid.UUID `json:"seller_id"`
	PriceCents         int64     `json:"price_cents"`
	DiscountPriceCents *int64    `json:"discount_price_cents"`
	IsCustomizable     bool      `json:"is_customizable"`
	Status             string    `json:"status"`
}

func (g *CatalogGateway) ProductByID(ctx context.Context, id uuid.UUID) (*quote.ProductSpec, error) {
	url := fmt.Sprintf("%s/products/%s", g.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build catalog request", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, infra.WrapRepoErr("catalog request failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, infra.WrapRepoErr("product not found", nil, infra.KindNotFound)
	case resp.StatusCode != http.StatusOK:
		return nil, infra.WrapRepoErr(fmt.Sprintf("catalog returned status %d", resp.StatusCode), nil)
	}

	var body productResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, infra.WrapRepoErr("failed to decode catalog response", err)
	}

	return &quote.ProductSpec{
		ID:                 body.ID,
		SellerID:           body.SellerID,
		PriceCents:         body.PriceCents,
		DiscountPriceCents: body.DiscountPriceCents,
		IsCustomizable:     body.IsCustomizable,
		Status:             body.Status,
	}, nil
}

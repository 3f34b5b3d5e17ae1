package readstore

import (
	"context"

	"gocart/internal/domain/order"
	"gocart/internal/infra"
	"gocart/internal/infra/repository/converter"
	sqlc "gocart/internal/infra/sqlc/generated"

	"github.com/google/uuid"
)

type CatalogReadQueries interface {
	GetProductsByIDs(ctx context.Context, db sqlc.DBTX, ids []uuid.UUID) ([]sqlc.GetProductsByIDsRow, error)
}

type CatalogReadStore struct {
	queries CatalogReadQueries
	db      sqlc.DBTX
}

func NewCatalogReadStore(queries CatalogReadQueries, db sqlc.DBTX) *CatalogReadStore {
	return &CatalogReadStore{
		queries: queries,
		db:      db,
	}
}

// ProductsByIDs resolves products in one round trip. A product counts as available
// only while it is in stock and its store is active.
func (r *CatalogReadStore) ProductsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]order.Product, error) {
	products := make(map[uuid.UUID]order.Product, len(ids))
	if len(ids) == 0 {
		return products, nil
	}

	rows, err := r.queries.GetProductsByIDs(ctx, r.db, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get products", err)
	}

	for _, row := range rows {
		price, cerr := converter.MoneyFromNumeric(row.Price)
		if cerr != nil {
			return nil, infra.WrapRepoErr("invalid product price", cerr)
		}
		products[row.ID] = order.Product{
			ID:        row.ID,
			StoreID:   row.StoreID,
			Name:      row.Name,
			Price:     price,
			Available: row.InStock && row.StoreActive,
		}
	}
	return products, nil
}

//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func CreateTestUser(t *testing.T, db DBLike, email string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	_, err := db.Exec(context.Background(), "INSERT INTO users (id, email) VALUES ($1, $2)", userID, email)
	require.NoError(t, err)

	return userID
}

func CreateTestStore(t *testing.T, db DBLike, name string, active bool) uuid.UUID {
	t.Helper()

	var storeID uuid.UUID
	err := db.QueryRow(context.Background(),
		"INSERT INTO stores (name, is_active) VALUES ($1, $2) RETURNING id", name, active).Scan(&storeID)
	require.NoError(t, err)

	return storeID
}

// price is a decimal string such as "12.50"
func CreateTestProduct(t *testing.T, db DBLike, storeID uuid.UUID, name, price string, inStock bool) uuid.UUID {
	t.Helper()

	var productID uuid.UUID
	err := db.QueryRow(context.Background(),
		"INSERT INTO products (store_id, name, price, in_stock) VALUES ($1, $2, $3::numeric, $4) RETURNING id",
		storeID, name, price, inStock).Scan(&productID)
	require.NoError(t, err)

	return productID
}

func CreateTestAddress(t *testing.T, db DBLike, userID uuid.UUID) uuid.UUID {
	t.Helper()

	var addressID uuid.UUID
	err := db.QueryRow(context.Background(), `
		INSERT INTO addresses (user_id, name, street, city, state, zip, country, phone)
		VALUES ($1, 'Test User', '1-2-3 Shibuya', 'Shibuya', 'Tokyo', '150-0002', 'JP', '0312345678')
		RETURNING id`, userID).Scan(&addressID)
	require.NoError(t, err)

	return addressID
}

type CouponFixture struct {
	Code            string
	DiscountPercent string
	NewUsersOnly    bool
	MembersOnly     bool
	ExpiresAt       time.Time
}

func CreateTestCoupon(t *testing.T, db DBLike, c CouponFixture) {
	t.Helper()

	if c.ExpiresAt.IsZero() {
		c.ExpiresAt = time.Now().Add(24 * time.Hour)
	}
	_, err := db.Exec(context.Background(), `
		INSERT INTO coupons (code, description, discount_percent, for_new_users_only, for_members_only, expires_at)
		VALUES (upper($1), $1 || ' coupon', $2::numeric, $3, $4, $5)`,
		c.Code, c.DiscountPercent, c.NewUsersOnly, c.MembersOnly, c.ExpiresAt)
	require.NoError(t, err)
}

// inserts basic reference data needed by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO stores (id, name) VALUES
		    ('00000000-0000-0000-0000-000000000001', 'Default Store')
		ON CONFLICT (id) DO NOTHING;
	`)
	if err != nil {
		return err
	}

	return nil
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('atlas_schema_revisions')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}

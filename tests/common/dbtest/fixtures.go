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

// bcrypt hash of "password123"
const TestPasswordHash = "$2a$12$uhAjVE9f92IGYv3E25pJNetg.27lVt0p7jmLWjqjmhOg92ldPS0A."

func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, "INSERT INTO users (id, email, password_hash, role, is_verified, is_active) VALUES ($1, $2, $3, $4, true, true) ON CONFLICT (email) DO NOTHING",
		userID, email, TestPasswordHash, role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
	}

	return userID
}

// SetUserChallenge plants an OTP challenge directly, bypassing the mail
// queue, so e2e tests can verify without reading a mailbox.
func SetUserChallenge(t *testing.T, db DBLike, email string, code int, expiresAt time.Time) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		"UPDATE users SET otp_code = $2, otp_expires_at = $3 WHERE email = $1",
		email, code, expiresAt)
	require.NoError(t, err)
}

// inserts the catalog, coupon and policy rows the booking tests price against
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO catalog_items (id, name, unit_price, category, meal_slot, parent_name) VALUES
		    ('itm-pool-pass',  'Pool Pass',       100,   'entertainments', NULL,     NULL),
		    ('itm-safari',     'Jungle Safari',   250,   'rides',          NULL,     NULL),
		    ('itm-thali',      'Veg Thali',       49.99, 'restaurants',    'lunch',  'Lakeview Restaurant'),
		    ('itm-breakfast',  'Home Breakfast',  35,    'homelyFoods',    'breakfast', NULL),
		    ('itm-spa',        'Spa Session',     150,   'otherServices',  NULL,     NULL),
		    ('itm-laundry',    'Laundry',         20,    'roomServices',   NULL,     NULL)
		ON CONFLICT (id) DO NOTHING;
	`)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO coupons (code, discount_type, discount_value, max_discount, expires_at, usage_limit) VALUES
		    ('SUMMER20', 'percentage', 20, 150, now() + interval '30 days', 100),
		    ('FLAT50',   'fixed',      50, NULL, now() + interval '30 days', NULL),
		    ('ONEUSE',   'fixed',      10, NULL, now() + interval '30 days', 1)
		ON CONFLICT (code) DO NOTHING;
	`)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
		WITH policy AS (
		    INSERT INTO cancellation_policies (name, is_active)
		    VALUES ('Standard', true)
		    RETURNING id
		)
		INSERT INTO cancellation_policy_tiers (policy_id, hours_before_check_in, refund_percent)
		SELECT id, tier.hours, tier.pct
		FROM policy, (VALUES (48.0, 100), (24.0, 50), (0.0, 0)) AS tier(hours, pct);
	`)
	return err
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
		    AND tablename NOT IN ('schema_migrations')`)
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

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

	"campus-placement/internal/domain/opportunity"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// the minimal interface required for test DB operations.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func SeedOpportunity(t *testing.T, db DBLike, o opportunity.Opportunity) {
	t.Helper()
	departments := o.EligibleDepartments
	if departments == nil {
		departments = []string{}
	}
	_, err := db.Exec(context.Background(), `
		INSERT INTO opportunities (id, organization_id, title, total_rounds, accepting_applications, eligible_departments, min_qualifying_score)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		o.ID, o.OrganizationID, o.Title, o.TotalRounds, o.AcceptingApplications, departments, o.MinQualifyingScore)
	require.NoError(t, err)
}

func SeedCandidate(t *testing.T, db DBLike, p opportunity.CandidateProfile) {
	t.Helper()
	_, err := db.Exec(context.Background(), `
		INSERT INTO candidate_profiles (candidate_id, display_name, department, qualifying_score)
		VALUES ($1, $2, $3, $4)`,
		p.CandidateID, p.DisplayName, p.Department, p.QualifyingScore)
	require.NoError(t, err)
}

func CountRows(t *testing.T, db DBLike, sql string, args ...any) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(context.Background(), sql, args...).Scan(&n))
	return n
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// ResetDB truncates every table except the migration ledger.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations', 'atlas_schema_revisions')`)
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
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}

package store

import (
	"context"
	"fmt"
)

// diagnosticTables is the fixed table list for the diagnostic path.
// These names are interpolated into COUNT statements; the list is a
// package constant and never caller-controlled.
var diagnosticTables = []string{
	"farmers",
	"fields",
	"field_crops",
	"incoming_messages",
	"crop_technology",
}

const healthCheckSQL = `SELECT COUNT(*) FROM farmers`

// HealthCheck reports whether a trivial count query against the
// farmer table succeeds. It returns false on any failure, including
// connectivity failure, and never returns an error.
func (s *Store) HealthCheck(ctx context.Context) bool {
	var count int64
	if err := s.db.QueryRow(ctx, healthCheckSQL).Scan(&count); err != nil {
		s.fail("health_check", "farmers", err)
		return false
	}

	s.log.Info().Int64("farmers", count).Msg("database health check passed")
	return true
}

// TableCounts returns row counts for the fixed diagnostic table list.
func (s *Store) TableCounts(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64, len(diagnosticTables))
	for _, table := range diagnosticTables {
		var count int64
		sql := fmt.Sprintf("SELECT COUNT(*) FROM %s", table)
		if err := s.db.QueryRow(ctx, sql).Scan(&count); err != nil {
			return nil, s.fail("table_counts", table, err)
		}
		counts[table] = count
	}
	return counts, nil
}

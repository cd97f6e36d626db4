// ABOUTME: Data migration between recomp storage backends.
// ABOUTME: Copies every table from source to destination in foreign-key order.

package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// TableCount is the number of rows copied into one table.
type TableCount struct {
	Table string
	Rows  int
}

// MigrateSummary holds per-table counts of migrated rows.
type MigrateSummary struct {
	Tables []TableCount
}

// Total returns the number of rows copied across all tables.
func (s *MigrateSummary) Total() int {
	n := 0
	for _, t := range s.Tables {
		n += t.Rows
	}
	return n
}

// MigrateData copies all rows from src to dst inside one destination
// transaction. Rows whose key already exists in dst are skipped, so a
// migration can be rerun after a partial failure.
func MigrateData(ctx context.Context, src, dst *DB) (*MigrateSummary, error) {
	if src.dialect == dst.dialect && src.dialect == SQLite && src.dbPath == dst.dbPath {
		return nil, errors.New("source and destination are the same database")
	}

	summary := &MigrateSummary{}
	err := dst.InTx(ctx, func(tx Store) error {
		txDB, ok := tx.(*DB)
		if !ok {
			return fmt.Errorf("unexpected store type %T", tx)
		}
		for _, table := range tableNames() {
			n, err := copyTable(ctx, src, txDB, table)
			if err != nil {
				return fmt.Errorf("copy %s: %w", table, err)
			}
			summary.Tables = append(summary.Tables, TableCount{Table: table, Rows: n})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

func copyTable(ctx context.Context, src, dst *DB, table string) (int, error) {
	rows, err := src.query(ctx, "SELECT * FROM "+table)
	if err != nil {
		return 0, err
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return 0, err
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(cols, ", "), placeholders)

	n := 0
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return n, err
		}
		written, err := dst.insertIfAbsent(ctx, insert, vals...)
		if err != nil {
			return n, err
		}
		if written {
			n++
		}
	}
	return n, rows.Err()
}

// tableNames lists schema tables in creation order, which is also
// foreign-key order.
func tableNames() []string {
	const prefix = "CREATE TABLE IF NOT EXISTS "
	var names []string
	for _, stmt := range schemaStatements {
		rest, ok := strings.CutPrefix(stmt, prefix)
		if !ok {
			continue
		}
		if i := strings.IndexAny(rest, " ("); i > 0 {
			names = append(names, rest[:i])
		}
	}
	return names
}

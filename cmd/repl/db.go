package main

import (
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

const maxRows = 1000

func formatRows(rows *sql.Rows) (string, error) {
	columns, err := rows.Columns()
	if err != nil {
		return "", fmt.Errorf("columns: %w", err)
	}

	var data [][]string
	truncated := false
	for rows.Next() {
		if len(data) >= maxRows {
			truncated = true
			break
		}
		vals := make([]*sql.NullString, len(columns))
		ptrs := make([]any, len(columns))
		for i := range vals {
			vals[i] = &sql.NullString{}
			ptrs[i] = vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return "", fmt.Errorf("scan: %w", err)
		}
		row := make([]string, len(columns))
		for i, v := range vals {
			if v.Valid {
				row[i] = v.String
			} else {
				row[i] = "NULL"
			}
		}
		data = append(data, row)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("rows: %w", err)
	}

	result := formatTable(columns, data)
	if truncated {
		result += fmt.Sprintf("(truncated at %d rows)\n", maxRows)
	}
	return result, nil
}

func formatTable(columns []string, rows [][]string) string {
	if len(columns) == 0 {
		return "(0 rows)\n"
	}

	// Calculate column widths.
	widths := make([]int, len(columns))
	for i, c := range columns {
		widths[i] = len(c)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder

	sep := buildSeparator(widths)

	b.WriteString(sep)
	// Header.
	b.WriteByte('|')
	for i, c := range columns {
		fmt.Fprintf(&b, " %-*s |", widths[i], c)
	}
	b.WriteByte('\n')
	b.WriteString(sep)

	// Data rows.
	for _, row := range rows {
		b.WriteByte('|')
		for i, cell := range row {
			fmt.Fprintf(&b, " %-*s |", widths[i], cell)
		}
		b.WriteByte('\n')
	}

	b.WriteString(sep)

	// Row count.
	n := len(rows)
	if n == 1 {
		b.WriteString("(1 row)\n")
	} else {
		fmt.Fprintf(&b, "(%d rows)\n", n)
	}

	return b.String()
}

func buildSeparator(widths []int) string {
	var b strings.Builder
	b.WriteByte('+')
	for _, w := range widths {
		for j := 0; j < w+2; j++ {
			b.WriteByte('-')
		}
		b.WriteByte('+')
	}
	b.WriteByte('\n')
	return b.String()
}

func sanitizeDSN(dsn string) string {
	// Try parsing as URL (postgres style).
	u, err := url.Parse(dsn)
	if err == nil && u.Scheme != "" && u.User != nil {
		if _, hasPass := u.User.Password(); hasPass {
			// Rebuild manually to avoid percent-encoding the mask.
			masked := u.Scheme + "://" + u.User.Username() + ":****@" + u.Host + u.Path
			if u.RawQuery != "" {
				masked += "?" + u.RawQuery
			}
			return masked
		}
		return dsn
	}

	// Try MySQL-style DSN: user:pass@tcp(host)/db
	if atIdx := strings.Index(dsn, "@"); atIdx > 0 {
		userPass := dsn[:atIdx]
		if colonIdx := strings.Index(userPass, ":"); colonIdx >= 0 {
			return userPass[:colonIdx+1] + "****" + dsn[atIdx:]
		}
	}

	return dsn
}

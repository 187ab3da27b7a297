package sqlite

// Scanner is the Scan method shared by *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

// Rows is the cursor subset of *sql.Rows that ScanRecords needs.
type Rows interface {
	Scanner
	Next() bool
	Err() error
}

// ScanRecord reads key, value and updated_at columns into a Record.
func ScanRecord(s Scanner) (*Record, error) {
	var (
		key     string
		value   []byte
		updated string
	)
	if err := s.Scan(&key, &value, &updated); err != nil {
		return nil, err
	}
	at, err := ParseTimeFromDB(updated)
	if err != nil {
		return nil, err
	}
	// The driver may reuse value's backing array after the next Scan.
	return &Record{Key: key, Value: append([]byte(nil), value...), UpdatedAt: at}, nil
}

// ScanRecords drains rows into records.
func ScanRecords(rows Rows) ([]*Record, error) {
	var out []*Record
	for rows.Next() {
		rec, err := ScanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

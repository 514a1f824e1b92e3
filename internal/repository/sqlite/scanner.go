package sqlite

import "database/sql"

// row is the part of *sql.Row and *sql.Rows the scanners need.
type row interface {
	Scan(dest ...any) error
}

type cursor interface {
	row
	Next() bool
	Err() error
}

func scanEntry(r row) (*Entry, error) {
	var (
		e       Entry
		value   string
		updated sql.NullString
	)
	if err := r.Scan(&e.Key, &value, &updated); err != nil {
		return nil, err
	}
	e.Value = []byte(value)

	// Rows written before updated_at existed carry no stamp.
	if updated.Valid && updated.String != "" {
		t, err := parseStamp(updated.String)
		if err != nil {
			return nil, err
		}
		e.UpdatedAt = t
	}
	return &e, nil
}

func scanKeys(c cursor) ([]string, error) {
	keys := []string{}
	for c.Next() {
		var k string
		if err := c.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, c.Err()
}

package recording

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// SetSession writes the recording's session metadata, replacing any previous row.
func (s *Store) SetSession(ctx context.Context, session Session) error {
	ctx = ensureContext(ctx)
	if session.CreatedAt == "" {
		session.CreatedAt = time.Now().UTC().Format(time.RFC3339Nano)
	}
	return s.withImportLock(ctx, func() error {
		return retryOnBusy(ctx, func() error {
			_, err := s.db.ExecContext(ctx,
				`INSERT INTO session (id, title, width, height, native_fps, duration, created_at)
                 VALUES (1, ?, ?, ?, ?, ?, ?)
                 ON CONFLICT (id) DO UPDATE SET
                     title = excluded.title, width = excluded.width,
                     height = excluded.height, native_fps = excluded.native_fps,
                     duration = excluded.duration, created_at = excluded.created_at`,
				session.Title, session.Width, session.Height,
				session.NativeFPS, session.Duration, session.CreatedAt,
			)
			if err != nil {
				return fmt.Errorf("set session: %w", err)
			}
			return nil
		})
	})
}

// Session reads the recording's session metadata. Returns nil when the
// recording has no session row yet.
func (s *Store) Session(ctx context.Context) (*Session, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx,
		`SELECT title, width, height, native_fps, duration, created_at FROM session WHERE id = 1`)
	var session Session
	err := row.Scan(&session.Title, &session.Width, &session.Height,
		&session.NativeFPS, &session.Duration, &session.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	return &session, nil
}

// AddMouseSamples appends a batch of raw mouse samples.
func (s *Store) AddMouseSamples(ctx context.Context, samples []MouseSample) error {
	if len(samples) == 0 {
		return nil
	}
	ctx = ensureContext(ctx)
	return s.withImportLock(ctx, func() error {
		return s.insertBatch(ctx, "insert mouse samples", func(tx *sql.Tx) error {
			stmt, err := tx.PrepareContext(ctx, `INSERT INTO mouse_samples (t, x, y) VALUES (?, ?, ?)`)
			if err != nil {
				return err
			}
			defer stmt.Close()
			for _, sample := range samples {
				if _, err := stmt.ExecContext(ctx, sample.Time, sample.X, sample.Y); err != nil {
					return err
				}
			}
			return nil
		})
	})
}

// AddClicks appends a batch of raw click events.
func (s *Store) AddClicks(ctx context.Context, clicks []Click) error {
	if len(clicks) == 0 {
		return nil
	}
	ctx = ensureContext(ctx)
	return s.withImportLock(ctx, func() error {
		return s.insertBatch(ctx, "insert clicks", func(tx *sql.Tx) error {
			stmt, err := tx.PrepareContext(ctx, `INSERT INTO clicks (t, duration, button) VALUES (?, ?, ?)`)
			if err != nil {
				return err
			}
			defer stmt.Close()
			for _, click := range clicks {
				if _, err := stmt.ExecContext(ctx, click.Time, click.Duration, click.Button); err != nil {
					return err
				}
			}
			return nil
		})
	})
}

// AddKeys appends a batch of raw key events.
func (s *Store) AddKeys(ctx context.Context, keys []Key) error {
	if len(keys) == 0 {
		return nil
	}
	ctx = ensureContext(ctx)
	return s.withImportLock(ctx, func() error {
		return s.insertBatch(ctx, "insert keys", func(tx *sql.Tx) error {
			stmt, err := tx.PrepareContext(ctx, `INSERT INTO keys (t, key, modifiers_json) VALUES (?, ?, ?)`)
			if err != nil {
				return err
			}
			defer stmt.Close()
			for _, key := range keys {
				modifiers, err := json.Marshal(key.Modifiers)
				if err != nil {
					return fmt.Errorf("marshal modifiers: %w", err)
				}
				if _, err := stmt.ExecContext(ctx, key.Time, key.Key, string(modifiers)); err != nil {
					return err
				}
			}
			return nil
		})
	})
}

func (s *Store) insertBatch(ctx context.Context, label string, fn func(tx *sql.Tx) error) error {
	return retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("%s: begin tx: %w", label, err)
		}
		if err := fn(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("%s: %w", label, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("%s: commit: %w", label, err)
		}
		return nil
	})
}

// MouseSamples returns all raw mouse samples ordered by time.
func (s *Store) MouseSamples(ctx context.Context) ([]MouseSample, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, `SELECT t, x, y FROM mouse_samples ORDER BY t, id`)
	if err != nil {
		return nil, fmt.Errorf("query mouse samples: %w", err)
	}
	defer rows.Close()

	var samples []MouseSample
	for rows.Next() {
		var sample MouseSample
		if err := rows.Scan(&sample.Time, &sample.X, &sample.Y); err != nil {
			return nil, fmt.Errorf("scan mouse sample: %w", err)
		}
		samples = append(samples, sample)
	}
	return samples, rows.Err()
}

// Clicks returns all raw click events ordered by time.
func (s *Store) Clicks(ctx context.Context) ([]Click, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, `SELECT t, duration, button FROM clicks ORDER BY t, id`)
	if err != nil {
		return nil, fmt.Errorf("query clicks: %w", err)
	}
	defer rows.Close()

	var clicks []Click
	for rows.Next() {
		var click Click
		if err := rows.Scan(&click.Time, &click.Duration, &click.Button); err != nil {
			return nil, fmt.Errorf("scan click: %w", err)
		}
		clicks = append(clicks, click)
	}
	return clicks, rows.Err()
}

// Keys returns all raw key events ordered by time.
func (s *Store) Keys(ctx context.Context) ([]Key, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, `SELECT t, key, modifiers_json FROM keys ORDER BY t, id`)
	if err != nil {
		return nil, fmt.Errorf("query keys: %w", err)
	}
	defer rows.Close()

	var keys []Key
	for rows.Next() {
		var (
			key           Key
			modifiersJSON string
		)
		if err := rows.Scan(&key.Time, &key.Key, &modifiersJSON); err != nil {
			return nil, fmt.Errorf("scan key: %w", err)
		}
		if err := json.Unmarshal([]byte(modifiersJSON), &key.Modifiers); err != nil {
			return nil, fmt.Errorf("unmarshal modifiers: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

// Counts reports how many events of each kind the recording holds.
func (s *Store) Counts(ctx context.Context) (EventCounts, error) {
	ctx = ensureContext(ctx)
	var counts EventCounts
	for _, q := range []struct {
		query string
		dst   *int64
	}{
		{`SELECT COUNT(1) FROM mouse_samples`, &counts.MouseSamples},
		{`SELECT COUNT(1) FROM clicks`, &counts.Clicks},
		{`SELECT COUNT(1) FROM keys`, &counts.Keys},
	} {
		if err := s.db.QueryRowContext(ctx, q.query).Scan(q.dst); err != nil {
			return EventCounts{}, fmt.Errorf("count events: %w", err)
		}
	}
	return counts, nil
}

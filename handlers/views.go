// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
)

// RecordView registers one view of a post from an IP address. The first
// view from a given IP inserts a post_view row and refreshes the
// denormalized view_count from the authoritative row count; repeat
// views are no-ops. The composite primary key on (post_id, ip_address)
// means two racing requests cannot double-insert: the loser's INSERT
// hits the conflict and is dropped.
//
// Returns the refreshed total and whether this call counted.
func RecordView(db *sql.DB, postID, ip string) (int, bool, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO post_view (post_id, ip_address)
		VALUES ($1, $2)
		ON CONFLICT (post_id, ip_address) DO NOTHING
	`, postID, ip)
	if err != nil {
		return 0, false, fmt.Errorf("failed to insert view: %w", err)
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return 0, false, err
	}
	if inserted == 0 {
		// Already counted for this IP
		return 0, false, nil
	}

	var total int
	err = tx.QueryRow(`
		UPDATE post
		SET view_count = (SELECT COUNT(*) FROM post_view WHERE post_id = $1)
		WHERE id = $1
		RETURNING view_count
	`, postID).Scan(&total)
	if err != nil {
		return 0, false, fmt.Errorf("failed to refresh view count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, false, fmt.Errorf("failed to commit view: %w", err)
	}

	return total, true, nil
}

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/armine/internal/common"
	"github.com/Veraticus/armine/internal/model"
	"github.com/Veraticus/armine/internal/service"
)

// SaveDataset stores data under name. Record order is preserved.
// Saving under an existing name fails with common.ErrDuplicateEntry.
func (s *SQLiteStorage) SaveDataset(ctx context.Context, name, source string, data model.Dataset) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(name, "name"); err != nil {
		return err
	}
	if err := validateDataset(data); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM datasets WHERE name = ?`, name).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check dataset %q: %w", name, err)
	}
	if exists > 0 {
		return fmt.Errorf("%w: dataset %q", common.ErrDuplicateEntry, name)
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO datasets (name, source, labeled, tabular, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, name, source, data.Labeled(), data.Tabular, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to insert dataset: %w", err)
	}
	datasetID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get dataset id: %w", err)
	}

	recordStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO records (dataset_id, position, source_id, label) VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare record statement: %w", err)
	}
	defer func() { _ = recordStmt.Close() }()

	itemStmt, err := tx.PrepareContext(ctx, `INSERT INTO record_items (record_id, item) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare item statement: %w", err)
	}
	defer func() { _ = itemStmt.Close() }()

	for i, txn := range data.Transactions {
		var label sql.NullString
		if data.Labeled() {
			label = sql.NullString{String: string(data.Labels[i]), Valid: true}
		}

		res, err := recordStmt.ExecContext(ctx, datasetID, i, txn.ID, label)
		if err != nil {
			return fmt.Errorf("failed to insert record %d: %w", i+1, err)
		}
		recordID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get record id: %w", err)
		}

		for _, item := range txn.Items {
			if _, err := itemStmt.ExecContext(ctx, recordID, string(item)); err != nil {
				return fmt.Errorf("failed to insert item %q of record %d: %w", item, i+1, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit dataset: %w", err)
	}

	slog.Debug("Saved dataset", "name", name, "records", data.Len(), "labeled", data.Labeled())
	return nil
}

// LoadDataset reads a stored dataset in its original record order.
func (s *SQLiteStorage) LoadDataset(ctx context.Context, name string) (model.Dataset, error) {
	if err := validateContext(ctx); err != nil {
		return model.Dataset{}, err
	}
	if err := validateString(name, "name"); err != nil {
		return model.Dataset{}, err
	}

	var (
		datasetID        int64
		labeled, tabular bool
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, labeled, tabular FROM datasets WHERE name = ?
	`, name).Scan(&datasetID, &labeled, &tabular)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Dataset{}, fmt.Errorf("%w: dataset %q", ErrNotFound, name)
	}
	if err != nil {
		return model.Dataset{}, fmt.Errorf("failed to get dataset %q: %w", name, err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT r.position, r.source_id, r.label, ri.item
		FROM records r
		LEFT JOIN record_items ri ON ri.record_id = r.id
		WHERE r.dataset_id = ?
		ORDER BY r.position, ri.item
	`, datasetID)
	if err != nil {
		return model.Dataset{}, fmt.Errorf("failed to query records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	data := model.Dataset{Tabular: tabular}
	if labeled {
		data.Labels = []model.Label{}
	}

	var (
		items   []model.Item
		current = -1
	)
	flush := func() {
		if current >= 0 {
			data.Transactions[len(data.Transactions)-1].Items = model.NewItemset(items...)
		}
		items = items[:0]
	}

	for rows.Next() {
		var (
			position int
			sourceID string
			label    sql.NullString
			item     sql.NullString
		)
		if err := rows.Scan(&position, &sourceID, &label, &item); err != nil {
			return model.Dataset{}, fmt.Errorf("failed to scan record: %w", err)
		}

		if position != current {
			flush()
			current = position
			data.Transactions = append(data.Transactions, model.Transaction{ID: sourceID, Items: model.Itemset{}})
			if labeled {
				data.Labels = append(data.Labels, model.Label(label.String))
			}
		}
		if item.Valid {
			items = append(items, model.Item(item.String))
		}
	}
	if err := rows.Err(); err != nil {
		return model.Dataset{}, fmt.Errorf("error iterating records: %w", err)
	}
	flush()

	return data, nil
}

// ListDatasets returns every stored dataset ordered by name.
func (s *SQLiteStorage) ListDatasets(ctx context.Context) ([]service.DatasetInfo, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT d.name, d.source, d.labeled, d.tabular, d.created_at,
			(SELECT COUNT(*) FROM records r WHERE r.dataset_id = d.id),
			(SELECT COUNT(DISTINCT ri.item)
				FROM record_items ri JOIN records r ON ri.record_id = r.id
				WHERE r.dataset_id = d.id)
		FROM datasets d
		ORDER BY d.name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query datasets: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var infos []service.DatasetInfo
	for rows.Next() {
		var info service.DatasetInfo
		if err := rows.Scan(&info.Name, &info.Source, &info.Labeled, &info.Tabular,
			&info.CreatedAt, &info.Records, &info.Items); err != nil {
			return nil, fmt.Errorf("failed to scan dataset: %w", err)
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating datasets: %w", err)
	}

	return infos, nil
}

// DeleteDataset removes a dataset with its records. The run log is kept.
func (s *SQLiteStorage) DeleteDataset(ctx context.Context, name string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(name, "name"); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	queries := []string{
		`DELETE FROM record_items WHERE record_id IN (
			SELECT r.id FROM records r JOIN datasets d ON r.dataset_id = d.id WHERE d.name = ?)`,
		`DELETE FROM records WHERE dataset_id IN (SELECT id FROM datasets WHERE name = ?)`,
	}
	for _, query := range queries {
		if _, err := tx.ExecContext(ctx, query, name); err != nil {
			return fmt.Errorf("failed to delete records of %q: %w", name, err)
		}
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM datasets WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete dataset %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: dataset %q", ErrNotFound, name)
	}

	return tx.Commit()
}

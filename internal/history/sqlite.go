// Package history содержит реализацию локального журнала сканирований в SQLite.
package history

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/vasilis249/ingredient-scanner/internal/model"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Метки времени хранятся текстом в UTC, лексикографический порядок
// совпадает с хронологическим.
const timeLayout = time.RFC3339

// SQLiteStore предоставляет доступ к журналу сканирований в файле SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore открывает файл журнала и инициализирует схему через миграции.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.ExecContext(ctx, `PRAGMA journal_mode = WAL`); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable wal: %w", err)
	}

	s := &SQLiteStore{db: db}

	if err := s.runMigrations(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

func (s *SQLiteStore) runMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrationsFS)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	if err := goose.UpContext(ctx, s.db, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}

// Close закрывает соединение с файлом журнала.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveScan добавляет запись о завершённом сканировании.
// Пустой идентификатор и нулевое время заполняются автоматически.
func (s *SQLiteStore) SaveScan(ctx context.Context, rec model.ScanRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.ScannedAt.IsZero() {
		rec.ScannedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO scans (id, barcode, status, product_name, overall_score, error_kind, error_message, scanned_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.Barcode,
		string(rec.Status),
		rec.ProductName,
		rec.OverallScore,
		rec.ErrorKind,
		rec.ErrorMessage,
		rec.ScannedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("insert scan: %w", err)
	}

	return nil
}

// RecentScans возвращает последние записи журнала, начиная с самых свежих.
func (s *SQLiteStore) RecentScans(ctx context.Context, limit int) ([]model.ScanRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, barcode, status, product_name, overall_score, error_kind, error_message, scanned_at
		 FROM scans
		 ORDER BY scanned_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("select scans: %w", err)
	}
	defer rows.Close()

	var res []model.ScanRecord
	for rows.Next() {
		var (
			rec       model.ScanRecord
			status    string
			scannedAt string
		)
		if err := rows.Scan(
			&rec.ID,
			&rec.Barcode,
			&status,
			&rec.ProductName,
			&rec.OverallScore,
			&rec.ErrorKind,
			&rec.ErrorMessage,
			&scannedAt,
		); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}

		rec.Status = model.ScanStatus(status)
		rec.ScannedAt, err = time.Parse(timeLayout, scannedAt)
		if err != nil {
			return nil, fmt.Errorf("parse scanned_at: %w", err)
		}

		res = append(res, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return res, nil
}

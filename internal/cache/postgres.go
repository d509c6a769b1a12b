package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"menugen/internal/menu"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// DefaultDocumentID names the single row holding the menu document.
const DefaultDocumentID = "default"

// PostgresStore keeps the cache document as one JSONB row in menu_documents.
type PostgresStore struct {
	db     *pgxpool.Pool
	id     string
	logger *zap.Logger
}

func NewPostgresStore(db *pgxpool.Pool, id string, logger *zap.Logger) *PostgresStore {
	return &PostgresStore{db: db, id: id, logger: logger}
}

func (s *PostgresStore) Load(ctx context.Context) (*menu.Document, bool) {
	var body []byte

	err := s.db.QueryRow(ctx, `
		SELECT body
		FROM menu_documents
		WHERE id = $1
	`, s.id).Scan(&body)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn("cache read failed", zap.String("id", s.id), zap.Error(err))
		}
		return nil, false
	}

	doc, err := menu.DecodeDocument(body)
	if errors.Is(err, menu.ErrMenuUndecodable) {
		s.logger.Warn("cached menu unreadable, keeping other keys", zap.String("id", s.id), zap.Error(err))
		return doc, true
	}
	if err != nil {
		s.logger.Warn("cache row is not a valid document", zap.String("id", s.id), zap.Error(err))
		return nil, false
	}

	return doc, true
}

func (s *PostgresStore) Save(ctx context.Context, doc *menu.Document) error {
	doc.Normalize()

	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode cache: %w", err)
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO menu_documents (id, body)
		VALUES ($1, $2)
		ON CONFLICT (id)
		DO UPDATE SET
			body = EXCLUDED.body,
			updated_at = now()
	`, s.id, body)

	return err
}

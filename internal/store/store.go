// Package store persists processed gazette records in SQLite, giving the
// pipeline cross-run deduplication and reprocessing without re-downloading.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"gacetabo/internal/models"
)

// ErrNotFound indicates a document ID absent from the store.
var ErrNotFound = errors.New("document not found")

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	id TEXT PRIMARY KEY,
	titulo TEXT NOT NULL,
	tipo_norma TEXT,
	numero_norma TEXT,
	fecha TEXT,
	fecha_raw TEXT,
	seccion TEXT,
	entidad_emisora TEXT,
	temas TEXT,
	resumen TEXT,
	url_pdf TEXT,
	url_detalle TEXT,
	num_articulos INTEGER NOT NULL DEFAULT 0,
	num_considerandos INTEGER NOT NULL DEFAULT 0,
	tiene_vistos INTEGER NOT NULL DEFAULT 0,
	tiene_disposiciones_finales INTEGER NOT NULL DEFAULT 0,
	articulos_json TEXT,
	texto_completo TEXT,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_documents_tipo ON documents(tipo_norma);
CREATE INDEX IF NOT EXISTS idx_documents_fecha ON documents(fecha);
`

// Store is a SQLite-backed document store. Safe for concurrent use; SQLite
// serializes writers via the busy timeout.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the store at path and applies the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()

			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// OpenMemory opens an in-memory store, used by tests.
func OpenMemory() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory store: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Write persists a record; this makes Store usable as a record sink.
func (s *Store) Write(rec *models.Record) error {
	return s.Upsert(rec)
}

// Upsert inserts or updates a record keyed by document ID.
func (s *Store) Upsert(rec *models.Record) error {
	articulosJSON := ""

	if len(rec.Articulos) > 0 {
		data, err := json.Marshal(rec.Articulos)
		if err != nil {
			return fmt.Errorf("failed to marshal articles: %w", err)
		}

		articulosJSON = string(data)
	}

	now := time.Now().Unix()

	_, err := s.db.Exec(`
		INSERT INTO documents (
			id, titulo, tipo_norma, numero_norma, fecha, fecha_raw, seccion,
			entidad_emisora, temas, resumen, url_pdf, url_detalle,
			num_articulos, num_considerandos, tiene_vistos,
			tiene_disposiciones_finales, articulos_json, texto_completo,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			titulo = excluded.titulo,
			tipo_norma = excluded.tipo_norma,
			numero_norma = excluded.numero_norma,
			fecha = excluded.fecha,
			fecha_raw = excluded.fecha_raw,
			seccion = excluded.seccion,
			entidad_emisora = excluded.entidad_emisora,
			temas = excluded.temas,
			resumen = excluded.resumen,
			url_pdf = excluded.url_pdf,
			url_detalle = excluded.url_detalle,
			num_articulos = excluded.num_articulos,
			num_considerandos = excluded.num_considerandos,
			tiene_vistos = excluded.tiene_vistos,
			tiene_disposiciones_finales = excluded.tiene_disposiciones_finales,
			articulos_json = excluded.articulos_json,
			texto_completo = excluded.texto_completo,
			updated_at = excluded.updated_at`,
		rec.ID, rec.Titulo, rec.TipoNorma, rec.NumeroNorma, rec.Fecha,
		rec.FechaRaw, rec.Seccion, rec.EntidadEmisora,
		strings.Join(rec.Temas, ","), rec.Resumen, rec.URLPDF, rec.URLDetalle,
		rec.Estructura.NumArticulos, rec.Estructura.NumConsiderandos,
		boolToInt(rec.Estructura.TieneVistos),
		boolToInt(rec.Estructura.NumDispFinales > 0),
		articulosJSON, rec.TextoCompleto, now, now)
	if err != nil {
		return fmt.Errorf("failed to upsert document %s: %w", rec.ID, err)
	}

	return nil
}

// Seen reports whether a document ID is already stored.
func (s *Store) Seen(id string) (bool, error) {
	var one int

	err := s.db.QueryRow(`SELECT 1 FROM documents WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	return true, nil
}

// Get loads one record by document ID.
func (s *Store) Get(id string) (*models.Record, error) {
	row := s.db.QueryRow(`
		SELECT id, titulo, tipo_norma, numero_norma, fecha, fecha_raw,
			seccion, entidad_emisora, temas, resumen, url_pdf, url_detalle,
			num_articulos, num_considerandos, tiene_vistos,
			tiene_disposiciones_finales, articulos_json, texto_completo
		FROM documents WHERE id = ?`, id)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	return rec, err
}

// All loads up to limit records ordered by date, newest first. A limit of
// zero or less loads everything.
func (s *Store) All(limit int) ([]*models.Record, error) {
	query := `
		SELECT id, titulo, tipo_norma, numero_norma, fecha, fecha_raw,
			seccion, entidad_emisora, temas, resumen, url_pdf, url_detalle,
			num_articulos, num_considerandos, tiene_vistos,
			tiene_disposiciones_finales, articulos_json, texto_completo
		FROM documents ORDER BY fecha DESC, id`

	var (
		rows *sql.Rows
		err  error
	)

	if limit > 0 {
		rows, err = s.db.Query(query+` LIMIT ?`, limit)
	} else {
		rows, err = s.db.Query(query)
	}

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.Record

	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}

		records = append(records, rec)
	}

	return records, rows.Err()
}

// Count returns the number of stored documents.
func (s *Store) Count() (int, error) {
	var n int

	err := s.db.QueryRow(`SELECT COUNT(*) FROM documents`).Scan(&n)

	return n, err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*models.Record, error) {
	var (
		rec           models.Record
		temas         string
		tieneVistos   int
		tieneFinales  int
		articulosJSON string
	)

	err := row.Scan(&rec.ID, &rec.Titulo, &rec.TipoNorma, &rec.NumeroNorma,
		&rec.Fecha, &rec.FechaRaw, &rec.Seccion, &rec.EntidadEmisora,
		&temas, &rec.Resumen, &rec.URLPDF, &rec.URLDetalle,
		&rec.Estructura.NumArticulos, &rec.Estructura.NumConsiderandos,
		&tieneVistos, &tieneFinales, &articulosJSON, &rec.TextoCompleto)
	if err != nil {
		return nil, err
	}

	if temas != "" {
		rec.Temas = strings.Split(temas, ",")
	}

	rec.Estructura.TieneVistos = tieneVistos != 0
	rec.Estructura.NumDispFinales = tieneFinales

	if articulosJSON != "" {
		if err := json.Unmarshal([]byte(articulosJSON), &rec.Articulos); err != nil {
			return nil, fmt.Errorf("failed to unmarshal articles for %s: %w", rec.ID, err)
		}
	}

	return &rec, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}

	return 0
}

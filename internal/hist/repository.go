package hist

import (
	"context"
	"database/sql"
	"errors"
)

type InterfaceRepository interface {
	InsertSearchRepository(ctx context.Context, consulta, tipo string) error
	DeleteSearchRepository(ctx context.Context, consulta string) error
	TrimSearchesRepository(ctx context.Context, max int) error
	ListSearchesRepository(ctx context.Context, limit int) ([]SearchEntry, error)
	ClearSearchesRepository(ctx context.Context) error
	GetThemeRepository(ctx context.Context) (string, error)
	SetThemeRepository(ctx context.Context, tema string) error
}

type Repository struct {
	Conn *sql.DB
}

func NewHistRepository(Conn *sql.DB) *Repository {
	return &Repository{Conn: Conn}
}

func (r *Repository) InsertSearchRepository(ctx context.Context, consulta, tipo string) error {
	_, err := r.Conn.ExecContext(ctx,
		`INSERT INTO search_history (consulta, tipo) VALUES ($1, $2)`,
		consulta, tipo)
	return err
}

func (r *Repository) DeleteSearchRepository(ctx context.Context, consulta string) error {
	_, err := r.Conn.ExecContext(ctx,
		`DELETE FROM search_history WHERE consulta = $1`, consulta)
	return err
}

// TrimSearchesRepository mantém só as max entradas mais recentes.
func (r *Repository) TrimSearchesRepository(ctx context.Context, max int) error {
	_, err := r.Conn.ExecContext(ctx,
		`DELETE FROM search_history
		 WHERE id NOT IN (
		     SELECT id FROM search_history ORDER BY criado_em DESC, id DESC LIMIT $1
		 )`, max)
	return err
}

func (r *Repository) ListSearchesRepository(ctx context.Context, limit int) ([]SearchEntry, error) {
	rows, err := r.Conn.QueryContext(ctx,
		`SELECT id, consulta, tipo, criado_em
		 FROM search_history
		 ORDER BY criado_em DESC, id DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []SearchEntry
	for rows.Next() {
		var e SearchEntry
		if err := rows.Scan(&e.ID, &e.Consulta, &e.Tipo, &e.CriadoEm); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *Repository) ClearSearchesRepository(ctx context.Context) error {
	_, err := r.Conn.ExecContext(ctx, `DELETE FROM search_history`)
	return err
}

func (r *Repository) GetThemeRepository(ctx context.Context) (string, error) {
	var tema string
	err := r.Conn.QueryRowContext(ctx,
		`SELECT valor FROM preferences WHERE chave = 'tema'`).Scan(&tema)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return tema, err
}

func (r *Repository) SetThemeRepository(ctx context.Context, tema string) error {
	_, err := r.Conn.ExecContext(ctx,
		`INSERT INTO preferences (chave, valor) VALUES ('tema', $1)
		 ON CONFLICT (chave) DO UPDATE SET valor = EXCLUDED.valor`, tema)
	return err
}

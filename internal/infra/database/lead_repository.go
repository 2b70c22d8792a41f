package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

const leadColumns = `id, first_name, last_name, email, resume_path, state, created_at`

type LeadRepository struct {
	DB      *sql.DB
	Dialect Dialect
}

func NewLeadRepository(db *sql.DB, d Dialect) *LeadRepository {
	return &LeadRepository{DB: db, Dialect: d}
}

// Create inserts lead and fills in the generated id and the stored values.
func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	query := r.Dialect.Rebind(`
		INSERT INTO leads (first_name, last_name, email, resume_path, state, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING ` + leadColumns)

	row := r.DB.QueryRowContext(ctx, query,
		lead.FirstName,
		lead.LastName,
		lead.Email,
		lead.ResumePath,
		string(entity.LeadStatePending),
		lead.CreatedAt.UTC(),
	)
	if err := scanLead(row, lead); err != nil {
		return wrapDBError("insert lead", err)
	}

	return nil
}

func (r *LeadRepository) List(ctx context.Context) ([]*entity.Lead, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+leadColumns+` FROM leads ORDER BY id ASC`)
	if err != nil {
		return nil, wrapDBError("list leads", err)
	}
	defer rows.Close()

	leads := make([]*entity.Lead, 0)
	for rows.Next() {
		lead := &entity.Lead{}
		if err := scanLead(rows, lead); err != nil {
			return nil, wrapDBError("scan lead", err)
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBError("iterate leads", err)
	}

	return leads, nil
}

func (r *LeadRepository) FindByID(ctx context.Context, id int64) (*entity.Lead, error) {
	row := r.DB.QueryRowContext(ctx, r.Dialect.Rebind(`SELECT `+leadColumns+` FROM leads WHERE id = ?`), id)

	lead := &entity.Lead{}
	if err := scanLead(row, lead); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrLeadNotFound
		}
		return nil, wrapDBError("find lead", err)
	}

	return lead, nil
}

// AdvanceState moves a PENDING lead to REACHED_OUT with a single conditional
// update, so of two concurrent callers only one can match the PENDING row.
func (r *LeadRepository) AdvanceState(ctx context.Context, id int64) (*entity.Lead, error) {
	query := r.Dialect.Rebind(`
		UPDATE leads SET state = ?
		WHERE id = ? AND state = ?
		RETURNING ` + leadColumns)

	lead := &entity.Lead{}
	err := scanLead(r.DB.QueryRowContext(ctx, query,
		string(entity.LeadStateReachedOut), id, string(entity.LeadStatePending),
	), lead)
	if err == nil {
		return lead, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, wrapDBError("advance lead state", err)
	}

	// Nothing matched: either the id is unknown or the lead already moved on.
	var exists int
	err = r.DB.QueryRowContext(ctx, r.Dialect.Rebind(`SELECT 1 FROM leads WHERE id = ?`), id).Scan(&exists)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, entity.ErrLeadNotFound
	case err != nil:
		return nil, wrapDBError("check lead", err)
	default:
		return nil, entity.ErrInvalidStateTransition
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner, lead *entity.Lead) error {
	var state string
	var createdAt timestamp
	if err := row.Scan(
		&lead.ID,
		&lead.FirstName,
		&lead.LastName,
		&lead.Email,
		&lead.ResumePath,
		&state,
		&createdAt,
	); err != nil {
		return err
	}

	lead.State = entity.LeadState(state)
	lead.CreatedAt = createdAt.Time.UTC()
	return nil
}

// timestamp scans created_at regardless of whether the driver hands back a
// time.Time (postgres, sqlite with a declared column type) or the raw text.
type timestamp struct {
	Time time.Time
}

var timestampLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999 -0700 MST",
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

func (t *timestamp) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		t.Time = v
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	default:
		return fmt.Errorf("unsupported created_at type %T", src)
	}
}

func (t *timestamp) parse(s string) error {
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unparseable created_at %q", s)
}

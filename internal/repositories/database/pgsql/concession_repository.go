package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/schoolworks/fee_management_app/internal/core/domain"
	portsrepo "github.com/schoolworks/fee_management_app/internal/core/ports/repositories"
	"github.com/schoolworks/fee_management_app/internal/models"
	"github.com/schoolworks/fee_management_app/internal/utils/mapping"
)

type PgxConcessionRepository struct {
	pool *pgxpool.Pool
}

// newPgxConcessionRepository creates a new repository for concession rules.
func newPgxConcessionRepository(pool *pgxpool.Pool) portsrepo.ConcessionReader {
	return &PgxConcessionRepository{pool: pool}
}

var _ portsrepo.ConcessionReader = (*PgxConcessionRepository)(nil)

// FindConcessionsByTitle lists every rule of a named scheme for a year, across all
// branches. Branch scoping happens in the service.
func (r *PgxConcessionRepository) FindConcessionsByTitle(ctx context.Context, title, academicYear string) ([]domain.Concession, error) {
	query := `
		SELECT concession_id, title, description, branch, location, academic_year, fee_type_id,
		       value, is_percentage, created_at, created_by, last_updated_at, last_updated_by
		FROM concessions
		WHERE title = $1 AND academic_year = $2;
	`
	rows, err := r.pool.Query(ctx, query, title, academicYear)
	if err != nil {
		return nil, fmt.Errorf("failed to query concessions titled %q: %w", title, err)
	}
	defer rows.Close()

	var concessions []domain.Concession
	for rows.Next() {
		var m models.Concession
		if err := rows.Scan(
			&m.ConcessionID,
			&m.Title,
			&m.Description,
			&m.Branch,
			&m.Location,
			&m.AcademicYear,
			&m.FeeTypeID,
			&m.Value,
			&m.IsPercentage,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan concession row: %w", err)
		}
		concessions = append(concessions, mapping.ToDomainConcession(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating concession rows: %w", err)
	}

	return concessions, nil
}

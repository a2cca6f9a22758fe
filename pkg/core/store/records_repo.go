package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"ypll_explorer/pkg/core/dataset"
)

// RecordsRepo loads the mortality dataset. Hybrid source: DB (primary) when a
// pool is configured, CSV file (fallback/local) otherwise.
type RecordsRepo struct {
	pool     *pgxpool.Pool
	filePath string
}

// NewRecordsRepo creates a repo. Pass a nil pool for file-only deployments.
func NewRecordsRepo(pool *pgxpool.Pool, filePath string) *RecordsRepo {
	return &RecordsRepo{pool: pool, filePath: filePath}
}

// LoadAll reads the full dataset into an immutable Store. The CSV path goes
// through the process-wide load-once cache; the DB path queries once per
// call, which in practice also happens once per process at startup.
func (r *RecordsRepo) LoadAll(ctx context.Context) (*dataset.Store, error) {
	if r.pool == nil {
		return dataset.LoadCached(r.filePath)
	}

	query := `
		SELECT year, state, sex, ucd, years_from_start,
		       obesity_pct, uninsured_pct, income_mean, employed_pct,
		       diabetes_pct, educa_z, smoking_pct_z, binge_drink_pct_z,
		       seatbelt_always_pct_z, rural_pct
		FROM mortality_records
		ORDER BY year, state, sex, ucd
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query mortality_records: %w", err)
	}
	defer rows.Close()

	records := make([]dataset.MortalityRecord, 0, 1024)
	for rows.Next() {
		var rec dataset.MortalityRecord
		err := rows.Scan(
			&rec.Year, &rec.State, &rec.Sex, &rec.CauseRaw,
			&rec.Covars.YearsFromStart,
			&rec.Covars.ObesityPct, &rec.Covars.UninsuredPct,
			&rec.Covars.IncomeMean, &rec.Covars.EmployedPct,
			&rec.Covars.DiabetesPct, &rec.Covars.EducaZ,
			&rec.Covars.SmokingPctZ, &rec.Covars.BingeDrinkPctZ,
			&rec.Covars.SeatbeltAlwaysPctZ, &rec.Covars.RuralPct,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan mortality record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read mortality_records: %w", err)
	}

	store := dataset.NewStore(records)
	fmt.Printf("[DATA] Loaded %d records from database (%d years, %d states)\n",
		store.Len(), len(store.Years()), len(store.States()))
	return store, nil
}

package repository

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/you-humble/part-monitoring/internal/model"
)

const (
	partsTable      = "parts"
	insertBatchSize = 1000
)

var partColumns = []string{
	"part_number",
	"part_code",
	"machine_name",
	"material",
	"install_date",
	"recommended_usage",
	"category",
	"position",
}

type postgresRepository struct {
	pool *pgxpool.Pool
	sb   sq.StatementBuilderType
}

func NewPostgresRepository(pool *pgxpool.Pool) *postgresRepository {
	return &postgresRepository{
		pool: pool,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *postgresRepository) Load(ctx context.Context) ([]model.Part, error) {
	const op = "repository.postgres.Load"

	sqlStr, args, err := r.sb.
		Select(partColumns[:7]...).
		From(partsTable).
		OrderBy("position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	parts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Part, error) {
		var (
			p           model.Part
			installDate time.Time
			category    string
		)
		err := row.Scan(
			&p.PartNumber,
			&p.PartCode,
			&p.MachineName,
			&p.Material,
			&installDate,
			&p.RecommendedUsage,
			&category,
		)
		p.InstallDate = model.Date(installDate)
		p.Category = model.Category(category)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s scan: %w", op, err)
	}

	return parts, nil
}

func (r *postgresRepository) Save(ctx context.Context, parts []model.Part) error {
	const op = "repository.postgres.Save"

	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "DELETE FROM "+partsTable); err != nil {
			return err
		}

		for start := 0; start < len(parts); start += insertBatchSize {
			end := min(start+insertBatchSize, len(parts))

			q := r.sb.Insert(partsTable).Columns(partColumns...)
			for i := start; i < end; i++ {
				p := parts[i]
				q = q.Values(
					p.PartNumber,
					p.PartCode,
					p.MachineName,
					p.Material,
					p.InstallDate,
					p.RecommendedUsage,
					string(p.Category),
					i,
				)
			}

			sqlStr, args, err := q.ToSql()
			if err != nil {
				return err
			}
			if _, err := tx.Exec(ctx, sqlStr, args...); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

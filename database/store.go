package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/mbolis/care-survey/model"
	"github.com/pkg/errors"
)

var responseColumns = []string{
	"id", "name", "age",
	"gender", "marital_status", "education_level",
	"annual_income", "savings",
	"health_rating", "chronic_conditions", "adl_assistance",
	"living_arrangement", "retirement_plan", "family_history",
	"created_at",
}

// Store runs the survey statements against one shared database handle.
// Every method is a single statement, so none of them opens a transaction.
type Store struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Question),
	}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Create inserts a response and returns its generated id. ID and CreatedAt
// of the argument are ignored, the database assigns both.
func (s *Store) Create(ctx context.Context, r model.Response) (id int64, err error) {
	query, args, err := s.sb.Insert("responses").
		Columns(responseColumns[1 : len(responseColumns)-1]...).
		Values(
			r.Name, r.Age,
			r.Gender, r.MaritalStatus, r.EducationLevel,
			r.AnnualIncome, r.Savings,
			r.HealthRating, r.ChronicConditions, r.ADLAssistance,
			r.LivingArrangement, r.RetirementPlan, r.FamilyHistory,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "build insert response")
	}

	err = s.db.QueryRowContext(ctx, query, args...).Scan(&id)
	if err != nil {
		return 0, errors.Wrap(err, "insert response")
	}
	return id, nil
}

// List returns every response, most recent first.
func (s *Store) List(ctx context.Context) ([]model.Response, error) {
	query, args, err := s.sb.Select(responseColumns...).
		From("responses").
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build select responses")
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "select responses")
	}
	defer rows.Close()

	responses := []model.Response{}
	for rows.Next() {
		r := model.Response{}
		var createdAt sql.NullTime
		err = rows.Scan(
			&r.ID, &r.Name, &r.Age,
			&r.Gender, &r.MaritalStatus, &r.EducationLevel,
			&r.AnnualIncome, &r.Savings,
			&r.HealthRating, &r.ChronicConditions, &r.ADLAssistance,
			&r.LivingArrangement, &r.RetirementPlan, &r.FamilyHistory,
			&createdAt,
		)
		if err != nil {
			return nil, errors.Wrap(err, "scan response")
		}
		r.CreatedAt = createdAt.Time

		responses = append(responses, r)
	}
	return responses, errors.Wrap(rows.Err(), "iterate responses")
}

// Delete removes one response, reporting whether it existed.
func (s *Store) Delete(ctx context.Context, id int64) (bool, error) {
	query, args, err := s.sb.Delete("responses").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return false, errors.Wrap(err, "build delete response")
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, errors.Wrapf(err, "delete response %d", id)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "delete response.verify")
	}
	return n > 0, nil
}

// Stats computes the aggregate counts over all responses.
func (s *Store) Stats(ctx context.Context) (stats model.Stats, err error) {
	query, args, err := s.sb.Select("COUNT(*)", "AVG(age)", "MIN(age)", "MAX(age)").
		From("responses").
		ToSql()
	if err != nil {
		return stats, errors.Wrap(err, "build stats")
	}

	var avg sql.NullFloat64
	var lo, hi sql.NullInt64
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&stats.Total, &avg, &lo, &hi)
	if err != nil {
		return stats, errors.Wrap(err, "select stats")
	}
	if avg.Valid {
		stats.AgeAvg = &avg.Float64
	}
	if lo.Valid {
		n := int(lo.Int64)
		stats.AgeMin = &n
	}
	if hi.Valid {
		n := int(hi.Int64)
		stats.AgeMax = &n
	}

	stats.Genders, err = s.distribution(ctx, "gender")
	if err != nil {
		return stats, err
	}
	stats.Health, err = s.distribution(ctx, "health_rating")
	if err != nil {
		return stats, err
	}
	return stats, nil
}

func (s *Store) distribution(ctx context.Context, column string) ([]model.Bucket, error) {
	query, args, err := s.sb.Select(column, "COUNT(*)").
		From("responses").
		GroupBy(column).
		OrderBy(column).
		ToSql()
	if err != nil {
		return nil, errors.Wrapf(err, "build distribution of %s", column)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "select distribution of %s", column)
	}
	defer rows.Close()

	buckets := []model.Bucket{}
	for rows.Next() {
		b := model.Bucket{}
		err = rows.Scan(&b.Value, &b.Count)
		if err != nil {
			return nil, errors.Wrapf(err, "scan distribution of %s", column)
		}
		buckets = append(buckets, b)
	}
	return buckets, errors.Wrapf(rows.Err(), "iterate distribution of %s", column)
}

// Tables describes every table in the database file, including the
// migration bookkeeping table.
func (s *Store) Tables(ctx context.Context) ([]model.Table, error) {
	query, args, err := s.sb.Select("name").
		From("sqlite_master").
		Where(sq.Eq{"type": "table"}).
		Where(sq.NotLike{"name": "sqlite_%"}).
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build select tables")
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "select tables")
	}
	var names []string
	for rows.Next() {
		var name string
		if err = rows.Scan(&name); err != nil {
			rows.Close()
			return nil, errors.Wrap(err, "scan table name")
		}
		names = append(names, name)
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate tables")
	}

	tables := make([]model.Table, 0, len(names))
	for _, name := range names {
		columns, err := s.columns(ctx, name)
		if err != nil {
			return nil, err
		}
		tables = append(tables, model.Table{Name: name, Columns: columns})
	}
	return tables, nil
}

// quoteIdent quotes a table name as an SQL identifier.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (s *Store) columns(ctx context.Context, table string) ([]model.Column, error) {
	// table names come from sqlite_master, PRAGMA takes no placeholders
	rows, err := s.db.QueryContext(ctx, "PRAGMA table_info("+quoteIdent(table)+")")
	if err != nil {
		return nil, errors.Wrapf(err, "table info %s", table)
	}
	defer rows.Close()

	var columns []model.Column
	for rows.Next() {
		var (
			cid     int
			c       model.Column
			notNull int
			dflt    sql.NullString
			pk      int
		)
		err = rows.Scan(&cid, &c.Name, &c.Type, &notNull, &dflt, &pk)
		if err != nil {
			return nil, errors.Wrapf(err, "scan table info %s", table)
		}
		c.NotNull = notNull != 0
		c.PrimaryKey = pk != 0
		columns = append(columns, c)
	}
	return columns, errors.Wrapf(rows.Err(), "iterate table info %s", table)
}

// Rows returns every row of a table as column names plus printable values,
// in storage order.
func (s *Store) Rows(ctx context.Context, table string) (columns []string, values [][]string, err error) {
	query, args, err := s.sb.Select("*").From(quoteIdent(table)).ToSql()
	if err != nil {
		return nil, nil, errors.Wrapf(err, "build select %s", table)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "select %s", table)
	}
	defer rows.Close()

	columns, err = rows.Columns()
	if err != nil {
		return nil, nil, errors.Wrapf(err, "columns of %s", table)
	}

	for rows.Next() {
		raw := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err = rows.Scan(ptrs...); err != nil {
			return nil, nil, errors.Wrapf(err, "scan %s", table)
		}

		row := make([]string, len(columns))
		for i, v := range raw {
			switch v := v.(type) {
			case nil:
				row[i] = "NULL"
			case []byte:
				row[i] = string(v)
			default:
				row[i] = fmt.Sprint(v)
			}
		}
		values = append(values, row)
	}
	return columns, values, errors.Wrapf(rows.Err(), "iterate %s", table)
}

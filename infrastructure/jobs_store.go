package infrastructure

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/leporo/sqlf"

	"jobboard/domain"
	"jobboard/infrastructure/sqlbuild"
)

// Querier is the subset of *pgxpool.Pool the stores need.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// JobStore reads and writes the jobs table through pgx.
type JobStore struct {
	db Querier
}

// NewJobStore returns a JobStore over db, normally a *pgxpool.Pool.
func NewJobStore(db Querier) *JobStore {
	return &JobStore{db: db}
}

// jobColumns lists the fields a partial update may touch.
var jobColumns = sqlbuild.Columns{
	"title":  "title",
	"salary": "salary",
	"equity": "equity",
}

const (
	jobSelectColumns = `id, title, salary, equity::text AS equity, company_handle`

	queryCreateJob = `INSERT INTO jobs (title, salary, equity, company_handle)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + jobSelectColumns

	queryGetJob = `SELECT ` + jobSelectColumns + ` FROM jobs WHERE id = $1`

	queryGetJobCompany = `SELECT handle, name, description, num_employees, logo_url
		FROM companies WHERE handle = $1`

	queryDeleteJob = `DELETE FROM jobs WHERE id = $1 RETURNING id`
)

func selectJobs() *sqlf.Stmt {
	return sqlf.PostgreSQL.Select(jobSelectColumns).From("jobs")
}

// Create inserts a job and returns it with its generated id. Database
// errors, constraint violations included, come back wrapped as they are.
func (s *JobStore) Create(ctx context.Context, data domain.JobCreate) (*domain.Job, error) {
	job, err := scanJob(s.db.QueryRow(ctx, queryCreateJob,
		data.Title,
		data.Salary,
		data.Equity,
		data.CompanyHandle,
	))
	if err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}
	return job, nil
}

// FindAll lists every job ordered by title. An empty table gives an empty
// slice.
func (s *JobStore) FindAll(ctx context.Context) ([]*domain.Job, error) {
	q := selectJobs().OrderBy("title")
	defer q.Close()

	jobs, err := s.list(ctx, q.String(), q.Args()...)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, nil
}

// FindFiltered lists jobs matching every recognized key in filterBy.
func (s *JobStore) FindFiltered(ctx context.Context, filterBy map[string]any) ([]*domain.Job, error) {
	filter, err := compileJobFilter(filterBy)
	if err != nil {
		return nil, err
	}

	q := filter.Apply(selectJobs()).OrderBy("title")
	defer q.Close()

	jobs, err := s.list(ctx, q.String(), q.Args()...)
	if err != nil {
		return nil, fmt.Errorf("filter jobs: %w", err)
	}
	return jobs, nil
}

// Get returns the job with its company inlined. The two reads are not in
// a transaction, so a concurrent change between them can show through.
func (s *JobStore) Get(ctx context.Context, id int) (*domain.Job, error) {
	job, err := scanJob(s.db.QueryRow(ctx, queryGetJob, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NotFound("No job: %d", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}

	var company domain.Company
	err = s.db.QueryRow(ctx, queryGetJobCompany, job.CompanyHandle).Scan(
		&company.Handle,
		&company.Name,
		&company.Description,
		&company.NumEmployees,
		&company.LogoURL,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NotFound("No company: %s", job.CompanyHandle)
	}
	if err != nil {
		return nil, fmt.Errorf("get job company: %w", err)
	}

	job.Company = &company
	job.CompanyHandle = ""
	return job, nil
}

// Update applies the fields specified in data; a null clears the column.
// The company of a job never changes.
func (s *JobStore) Update(ctx context.Context, id int, data domain.JobUpdate) (*domain.Job, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}

	var fields []sqlbuild.Field
	if data.Title.IsSpecified() {
		fields = append(fields, sqlbuild.Field{Name: "title", Value: data.Title.MustGet()})
	}
	if data.Salary.IsSpecified() {
		fields = append(fields, sqlbuild.Field{Name: "salary", Value: domain.ValueOf(data.Salary)})
	}
	if data.Equity.IsSpecified() {
		fields = append(fields, sqlbuild.Field{Name: "equity", Value: domain.ValueOf(data.Equity)})
	}

	q, err := sqlbuild.Update("jobs", fields, jobColumns)
	if err != nil {
		return nil, err
	}
	q.Where("id = ?", id).Returning(jobSelectColumns)
	defer q.Close()

	job, err := scanJob(s.db.QueryRow(ctx, q.String(), q.Args()...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NotFound("No job: %d", id)
	}
	if err != nil {
		return nil, fmt.Errorf("update job: %w", err)
	}
	return job, nil
}

// Remove deletes the job with the given id.
func (s *JobStore) Remove(ctx context.Context, id int) error {
	var deleted int
	err := s.db.QueryRow(ctx, queryDeleteJob, id).Scan(&deleted)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.NotFound("No job: %d", id)
	}
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	return nil
}

func (s *JobStore) list(ctx context.Context, query string, args ...any) ([]*domain.Job, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := []*domain.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return jobs, nil
}

func scanJob(row pgx.Row) (*domain.Job, error) {
	var job domain.Job
	if err := row.Scan(
		&job.ID,
		&job.Title,
		&job.Salary,
		&job.Equity,
		&job.CompanyHandle,
	); err != nil {
		return nil, err
	}
	return &job, nil
}

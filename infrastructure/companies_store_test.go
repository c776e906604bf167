package infrastructure

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"jobboard/domain"
)

var companyRowColumns = []string{"handle", "name", "description", "num_employees", "logo_url"}

func newMockCompanyStore(t *testing.T) (*CompanyStore, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		sqlDB.Close()
	})
	return NewCompanyStore(db), mock
}

func TestCompanyStore_FindAll(t *testing.T) {
	ctx := context.Background()

	t.Run("ordered by name", func(t *testing.T) {
		store, mock := newMockCompanyStore(t)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "companies" ORDER BY name`)).
			WillReturnRows(sqlmock.NewRows(companyRowColumns).
				AddRow("a1", "Alpha", "first", 10, nil).
				AddRow("b1", "Beta", "second", nil, "http://b1.img"))

		companies, err := store.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, companies, 2)
		assert.Equal(t, "Alpha", companies[0].Name)
		assert.Equal(t, 10, *companies[0].NumEmployees)
		assert.Nil(t, companies[0].LogoURL)
		assert.Equal(t, "Beta", companies[1].Name)
		assert.Nil(t, companies[1].NumEmployees)
	})

	t.Run("empty", func(t *testing.T) {
		store, mock := newMockCompanyStore(t)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "companies" ORDER BY name`)).
			WillReturnRows(sqlmock.NewRows(companyRowColumns))

		companies, err := store.FindAll(ctx)
		require.NoError(t, err)
		assert.NotNil(t, companies)
		assert.Empty(t, companies)
	})
}

func TestCompanyStore_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("preloads jobs by id without repeating the handle", func(t *testing.T) {
		store, mock := newMockCompanyStore(t)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "companies" WHERE handle = $1`)).
			WillReturnRows(sqlmock.NewRows(companyRowColumns).
				AddRow("c1", "C1", "Desc1", 1, "http://c1.img"))
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "jobs" WHERE "jobs"."company_handle" = $1 ORDER BY id`)).
			WithArgs("c1").
			WillReturnRows(sqlmock.NewRows(jobRowColumns).
				AddRow(1, "job1", 100, "0.1", "c1").
				AddRow(2, "job2", nil, nil, "c1"))

		company, err := store.Get(ctx, "c1")
		require.NoError(t, err)
		assert.Equal(t, "C1", company.Name)
		require.Len(t, company.Jobs, 2)
		assert.Equal(t, 1, company.Jobs[0].ID)
		assert.Equal(t, "0.1", *company.Jobs[0].Equity)
		assert.Nil(t, company.Jobs[1].Salary)
		for _, job := range company.Jobs {
			assert.Empty(t, job.CompanyHandle)
		}
	})

	t.Run("not found", func(t *testing.T) {
		store, mock := newMockCompanyStore(t)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "companies" WHERE handle = $1`)).
			WillReturnRows(sqlmock.NewRows(companyRowColumns))

		_, err := store.Get(ctx, "nope")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
		assert.EqualError(t, err, "No company: nope")
	})

	t.Run("database failure is not a not-found", func(t *testing.T) {
		store, mock := newMockCompanyStore(t)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "companies" WHERE handle = $1`)).
			WillReturnError(errors.New("connection reset"))

		_, err := store.Get(ctx, "c1")
		require.Error(t, err)
		assert.False(t, errors.Is(err, domain.ErrNotFound))
		assert.ErrorContains(t, err, "connection reset")
	})
}

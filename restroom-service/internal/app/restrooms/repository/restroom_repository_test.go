package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// RestroomRepositoryTestSuite тестовый suite для PostgreSQL repository
type RestroomRepositoryTestSuite struct {
	suite.Suite
	db    *gorm.DB
	mock  sqlmock.Sqlmock
	repo  RestroomRepository
	sqlDB *sql.DB
}

func TestRestroomRepositorySuite(t *testing.T) {
	suite.Run(t, new(RestroomRepositoryTestSuite))
}

func (s *RestroomRepositoryTestSuite) SetupTest() {
	var err error
	s.sqlDB, s.mock, err = sqlmock.New()
	require.NoError(s.T(), err)

	dialector := postgres.New(postgres.Config{
		Conn:       s.sqlDB,
		DriverName: "postgres",
	})

	s.db, err = gorm.Open(dialector, &gorm.Config{})
	require.NoError(s.T(), err)

	s.repo = NewRestroomRepository(s.db)
}

func (s *RestroomRepositoryTestSuite) TearDownTest() {
	s.sqlDB.Close()
}

// ===================== GetByID Tests =====================

func (s *RestroomRepositoryTestSuite) TestGetByID_Success() {
	ctx := context.Background()
	createdAt := time.Now()

	rows := sqlmock.NewRows([]string{"id", "name", "address", "latitude", "longitude", "hours", "avg_rating", "visit_count", "created_at"}).
		AddRow(int64(1), "Bryant Park Restroom", "42nd St & 6th Ave", 40.7536, -73.9832, "08:00-18:00", 4.5, int64(120), createdAt)

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "restrooms" WHERE id = $1`)).
		WithArgs(int64(1), 1).
		WillReturnRows(rows)

	restroom, err := s.repo.GetByID(ctx, 1)

	s.NoError(err)
	s.NotNil(restroom)
	s.Equal(int64(1), restroom.ID)
	s.Equal("Bryant Park Restroom", restroom.Name)
	s.Equal(4.5, restroom.AvgRating)
	s.Equal(int64(120), restroom.VisitCount)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *RestroomRepositoryTestSuite) TestGetByID_NotFound() {
	ctx := context.Background()

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "restrooms" WHERE id = $1`)).
		WithArgs(int64(42), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	restroom, err := s.repo.GetByID(ctx, 42)

	s.ErrorIs(err, ErrRestroomNotFound)
	s.Nil(restroom)
}

// ===================== GetAll Tests =====================

func (s *RestroomRepositoryTestSuite) TestGetAll_Success() {
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "name", "latitude", "longitude"}).
		AddRow(int64(1), "First", 40.75, -73.98).
		AddRow(int64(2), "Second", 40.76, -73.97)

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "restrooms" ORDER BY id`)).
		WillReturnRows(rows)

	restrooms, err := s.repo.GetAll(ctx)

	s.NoError(err)
	s.Len(restrooms, 2)
	s.Equal("First", restrooms[0].Name)
	s.Equal("Second", restrooms[1].Name)
}

func (s *RestroomRepositoryTestSuite) TestGetAll_Empty() {
	ctx := context.Background()

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "restrooms" ORDER BY id`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	restrooms, err := s.repo.GetAll(ctx)

	s.NoError(err)
	s.Empty(restrooms)
}

// ===================== UpdateAvgRating Tests =====================

func (s *RestroomRepositoryTestSuite) TestUpdateAvgRating_Success() {
	ctx := context.Background()

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`UPDATE "restrooms" SET "avg_rating"=$1 WHERE id = $2`)).
		WithArgs(4.3, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	err := s.repo.UpdateAvgRating(ctx, 1, 4.3)

	s.NoError(err)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *RestroomRepositoryTestSuite) TestUpdateAvgRating_NotFound() {
	ctx := context.Background()

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`UPDATE "restrooms" SET "avg_rating"=$1 WHERE id = $2`)).
		WithArgs(4.3, int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	s.mock.ExpectCommit()

	err := s.repo.UpdateAvgRating(ctx, 42, 4.3)

	s.ErrorIs(err, ErrRestroomNotFound)
}

// ===================== IncrementVisit Tests =====================

func (s *RestroomRepositoryTestSuite) TestIncrementVisit_Success() {
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"visit_count"}).AddRow(int64(7))

	s.mock.ExpectQuery(regexp.QuoteMeta(`UPDATE restrooms SET visit_count = visit_count + 1 WHERE id = $1 RETURNING visit_count`)).
		WithArgs(int64(1)).
		WillReturnRows(rows)

	visitCount, err := s.repo.IncrementVisit(ctx, 1)

	s.NoError(err)
	s.Equal(int64(7), visitCount)
}

func (s *RestroomRepositoryTestSuite) TestIncrementVisit_NotFound() {
	ctx := context.Background()

	s.mock.ExpectQuery(regexp.QuoteMeta(`UPDATE restrooms SET visit_count = visit_count + 1 WHERE id = $1 RETURNING visit_count`)).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"visit_count"}))

	_, err := s.repo.IncrementVisit(ctx, 42)

	s.ErrorIs(err, ErrRestroomNotFound)
}

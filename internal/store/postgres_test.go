package store

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/import-formatter/internal/model"
)

func testTime() time.Time {
	return time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
}

func TestPostgresCreateRun(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("INSERT INTO runs").
		WithArgs(pgxmock.AnyArg(), "export.xlsx", "pending", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	st := NewPostgresWithPool(mock)
	rec, err := st.CreateRun(context.Background(), "export.xlsx")
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "export.xlsx", rec.SourceFile)
	assert.Equal(t, model.RunStatusPending, rec.Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCompleteRun(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("UPDATE runs SET").
		WithArgs("needs_choice", pgxmock.AnyArg(), 3, 5, pgxmock.AnyArg(), "run-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	st := NewPostgresWithPool(mock)
	err = st.CompleteRun(context.Background(), "run-1", model.RunStatusNeedsChoice,
		model.Stats{TotalRows: 9, ValidRows: 6, CorrectedFields: 4}, 3, 5)
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCompleteRunNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("UPDATE runs SET").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), "absent").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	st := NewPostgresWithPool(mock)
	err = st.CompleteRun(context.Background(), "absent", model.RunStatusComplete, model.Stats{}, 0, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestPostgresListRuns(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	rows := mock.NewRows([]string{"id", "source_file", "status", "stats", "errors", "warnings", "created_at", "updated_at"}).
		AddRow("run-1", "a.csv", "complete", []byte(`{"total_rows":3,"valid_rows":3,"corrected_fields":1}`), 0, 1, testTime(), testTime())

	mock.ExpectQuery("SELECT id, source_file, status").
		WithArgs("complete", 50).
		WillReturnRows(rows)

	st := NewPostgresWithPool(mock)
	runs, err := st.ListRuns(context.Background(), RunFilter{Status: model.RunStatusComplete, Limit: 50})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "run-1", runs[0].ID)
	assert.Equal(t, 3, runs[0].Stats.TotalRows)

	assert.NoError(t, mock.ExpectationsWereMet())
}

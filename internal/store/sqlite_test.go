package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/import-formatter/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	st, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func TestSQLiteRunLifecycle(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	rec, err := st.CreateRun(ctx, "export.xlsx")
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "export.xlsx", rec.SourceFile)
	assert.Equal(t, model.RunStatusPending, rec.Status)

	// Until CompleteRun, the stored record must not read as finished.
	stored, err := st.GetRun(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusPending, stored.Status)

	stats := model.Stats{TotalRows: 12, ValidRows: 10, CorrectedFields: 31}
	require.NoError(t, st.CompleteRun(ctx, rec.ID, model.RunStatusComplete, stats, 2, 7))

	got, err := st.GetRun(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusComplete, got.Status)
	assert.Equal(t, stats, got.Stats)
	assert.Equal(t, 2, got.Errors)
	assert.Equal(t, 7, got.Warnings)
}

func TestSQLiteCompleteRunNotFound(t *testing.T) {
	st := newTestStore(t)

	err := st.CompleteRun(context.Background(), "absent", model.RunStatusComplete, model.Stats{}, 0, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSQLiteGetRunNotFound(t *testing.T) {
	st := newTestStore(t)

	_, err := st.GetRun(context.Background(), "absent")
	assert.Error(t, err)
}

func TestSQLiteListRuns(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	a, err := st.CreateRun(ctx, "a.csv")
	require.NoError(t, err)
	b, err := st.CreateRun(ctx, "b.csv")
	require.NoError(t, err)

	require.NoError(t, st.CompleteRun(ctx, a.ID, model.RunStatusNeedsChoice, model.Stats{}, 1, 0))
	require.NoError(t, st.CompleteRun(ctx, b.ID, model.RunStatusComplete, model.Stats{}, 0, 0))

	all, err := st.ListRuns(ctx, RunFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	needChoice, err := st.ListRuns(ctx, RunFilter{Status: model.RunStatusNeedsChoice})
	require.NoError(t, err)
	require.Len(t, needChoice, 1)
	assert.Equal(t, a.ID, needChoice[0].ID)

	limited, err := st.ListRuns(ctx, RunFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

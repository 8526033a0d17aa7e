package tables

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/de-tools/sheet-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSource struct {
	mock.Mock
}

func (m *mockSource) Load(ctx context.Context) (domain.Grid, string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(domain.Grid), args.String(1), args.Error(2)
}

type mockRecorder struct {
	mock.Mock
}

func (m *mockRecorder) Add(ctx context.Context, result domain.ReloadResult) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}

func workbook() domain.Grid {
	return domain.GridFromStrings([][]string{
		{"INITIAL INVESTMENT"},
		{"Initial investment=", "$50,000"},
		{"Opportunity cost=", "N/A", "$1,000"},
		{"REVENUE PROJECTIONS"},
		{"Revenue year 1", "$100", "(20)", "5%"},
		{"Revenue year 2", "$1,200"},
	})
}

func loadedService(t *testing.T) (*DefaultService, *mockSource) {
	t.Helper()
	src := new(mockSource)
	src.On("Load", mock.Anything).Return(workbook(), "Data/capbudg.xlsx", nil)

	svc := NewService(src)
	_, err := svc.Reload(context.Background())
	require.NoError(t, err)
	return svc, src
}

func TestService_NotLoaded(t *testing.T) {
	svc := NewService(new(mockSource))
	ctx := context.Background()

	_, err := svc.ListTables(ctx)
	assert.ErrorIs(t, err, ErrDataNotLoaded)

	_, err = svc.GetRowLabels(ctx, "Initial Investment")
	assert.ErrorIs(t, err, ErrDataNotLoaded)

	_, err = svc.SumRow(ctx, "Initial Investment", "Initial investment=")
	assert.ErrorIs(t, err, ErrDataNotLoaded)
}

func TestService_ListTables(t *testing.T) {
	svc, _ := loadedService(t)

	names, err := svc.ListTables(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Initial Investment", "Revenue Projections"}, names)
}

func TestService_GetRowLabels(t *testing.T) {
	svc, _ := loadedService(t)
	ctx := context.Background()

	t.Run("existing table", func(t *testing.T) {
		labels, err := svc.GetRowLabels(ctx, "Revenue Projections")
		require.NoError(t, err)
		assert.Equal(t, []string{"Revenue year 1", "Revenue year 2"}, labels)
	})

	t.Run("unknown table lists alternatives", func(t *testing.T) {
		_, err := svc.GetRowLabels(ctx, "Salvage Value")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrTableNotFound)

		var nf *NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, "Salvage Value", nf.Table)
		assert.Equal(t, []string{"Initial Investment", "Revenue Projections"}, nf.Available)
	})
}

func TestService_SumRow(t *testing.T) {
	svc, _ := loadedService(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		table     string
		row       string
		expected  *domain.RowSum
		expectErr error
		available []string
	}{
		{
			name:  "currency, parenthesis and percent",
			table: "Revenue Projections",
			row:   "Revenue year 1",
			expected: &domain.RowSum{
				TableName:       "Revenue Projections",
				RowLabel:        "Revenue year 1",
				Sum:             85,
				ValuesProcessed: 3,
				NumericValues:   []float64{100, -20, 5},
			},
		},
		{
			name:  "unparseable value counts as zero",
			table: "Initial Investment",
			row:   "Opportunity cost=",
			expected: &domain.RowSum{
				TableName:       "Initial Investment",
				RowLabel:        "Opportunity cost=",
				Sum:             1000,
				ValuesProcessed: 2,
				NumericValues:   []float64{0, 1000},
			},
		},
		{
			name:      "unknown table",
			table:     "Growth Rates",
			row:       "Revenue year 1",
			expectErr: ErrTableNotFound,
			available: []string{"Initial Investment", "Revenue Projections"},
		},
		{
			name:      "unknown row",
			table:     "Revenue Projections",
			row:       "Revenue year 3",
			expectErr: ErrRowNotFound,
			available: []string{"Revenue year 1", "Revenue year 2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sum, err := svc.SumRow(ctx, tt.table, tt.row)
			if tt.expectErr != nil {
				require.ErrorIs(t, err, tt.expectErr)
				var nf *NotFoundError
				require.ErrorAs(t, err, &nf)
				assert.Equal(t, tt.available, nf.Available)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, sum)
		})
	}
}

func TestService_ReloadIsIdempotent(t *testing.T) {
	svc, src := loadedService(t)
	ctx := context.Background()

	first := svc.load().tables
	_, err := svc.Reload(ctx)
	require.NoError(t, err)
	second := svc.load().tables

	assert.NotSame(t, first, second)
	assert.Equal(t, first, second)
	src.AssertNumberOfCalls(t, "Load", 2)
}

func TestService_ReloadWithoutGridDegrades(t *testing.T) {
	svc, src := loadedService(t)
	ctx := context.Background()

	src.ExpectedCalls = nil
	src.On("Load", mock.Anything).Return(nil, "", errors.New("no workbook found"))

	result, err := svc.Reload(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ReloadStatusDegraded, result.Status)
	assert.Equal(t, 0, result.TablesLoaded)
	assert.Empty(t, result.TableNames)
	require.NotNil(t, result.Error)
	assert.Contains(t, *result.Error, "no workbook found")

	_, err = svc.ListTables(ctx)
	assert.ErrorIs(t, err, ErrDataNotLoaded)
}

func TestService_ReloadIsRecorded(t *testing.T) {
	src := new(mockSource)
	src.On("Load", mock.Anything).Return(workbook(), "capbudg.xlsx", nil)

	rec := new(mockRecorder)
	rec.On("Add", mock.Anything, mock.MatchedBy(func(r domain.ReloadResult) bool {
		return r.Status == domain.ReloadStatusLoaded && r.TablesLoaded == 2 && r.Location == "capbudg.xlsx"
	})).Return(errors.New("disk full"))

	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	svc := NewService(src, WithRecorder(rec))
	svc.now = func() time.Time { return clock }

	result, err := svc.Reload(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &domain.ReloadResult{
		Location:     "capbudg.xlsx",
		Status:       domain.ReloadStatusLoaded,
		TablesLoaded: 2,
		TableNames:   []string{"Initial Investment", "Revenue Projections"},
		StartedAt:    clock,
		FinishedAt:   clock,
	}, result)
	rec.AssertExpectations(t)
}

func TestService_Snapshot(t *testing.T) {
	svc, _ := loadedService(t)

	snap := svc.Snapshot(context.Background())
	assert.Equal(t, "Data/capbudg.xlsx", snap.Location)
	assert.Equal(t, []string{"Initial Investment", "Revenue Projections"}, snap.Names)
	assert.Equal(t, []string{"Initial investment=", "Opportunity cost="}, snap.Tables["Initial Investment"])
	assert.Len(t, snap.Sections, 2)
}

package s3

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/de-tools/sheet-atlas/pkg/store/workbook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockS3 struct {
	mock.Mock
}

func (m *mockS3) GetObject(
	ctx context.Context,
	params *awss3.GetObjectInput,
	_ ...func(*awss3.Options),
) (*awss3.GetObjectOutput, error) {
	args := m.Called(ctx, *params.Bucket, *params.Key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*awss3.GetObjectOutput), args.Error(1)
}

func TestParseLocation(t *testing.T) {
	tests := []struct {
		raw       string
		expected  Location
		expectErr bool
	}{
		{raw: "s3://finance/budgets/capbudg.xlsx", expected: Location{Bucket: "finance", Key: "budgets/capbudg.xlsx"}},
		{raw: "S3://finance/capbudg.csv", expected: Location{Bucket: "finance", Key: "capbudg.csv"}},
		{raw: "s3://finance", expectErr: true},
		{raw: "s3:///capbudg.xlsx", expectErr: true},
		{raw: "https://finance/capbudg.xlsx", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			loc, err := ParseLocation(tt.raw)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, loc)
		})
	}

	assert.True(t, IsLocation("s3://a/b.xlsx"))
	assert.False(t, IsLocation("Data/capbudg.xlsx"))
}

func TestSource_Load(t *testing.T) {
	ctx := context.Background()
	loc := Location{Bucket: "finance", Key: "capbudg.csv"}

	t.Run("decodes object body", func(t *testing.T) {
		client := new(mockS3)
		client.On("GetObject", mock.Anything, "finance", "capbudg.csv").Return(&awss3.GetObjectOutput{
			Body: io.NopCloser(strings.NewReader("NPV\nNPV =,\"$1,234\"\n")),
		}, nil)

		grid, location, err := NewSource(client, loc, workbook.DefaultRegistry("")).Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, "s3://finance/capbudg.csv", location)
		require.Len(t, grid, 2)
		assert.Equal(t, "$1,234", grid[1].At(1).String())
		client.AssertExpectations(t)
	})

	t.Run("object error", func(t *testing.T) {
		client := new(mockS3)
		client.On("GetObject", mock.Anything, "finance", "capbudg.csv").Return(nil, errors.New("access denied"))

		_, location, err := NewSource(client, loc, workbook.DefaultRegistry("")).Load(ctx)
		require.Error(t, err)
		assert.Equal(t, "s3://finance/capbudg.csv", location)
		assert.Contains(t, err.Error(), "access denied")
	})

	t.Run("unsupported key", func(t *testing.T) {
		client := new(mockS3)
		_, _, err := NewSource(client, Location{Bucket: "finance", Key: "capbudg.xls"}, workbook.DefaultRegistry("")).Load(ctx)
		assert.ErrorIs(t, err, workbook.ErrUnsupportedFormat)
		client.AssertNotCalled(t, "GetObject")
	})
}

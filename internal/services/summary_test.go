package services

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jstittsworth/fpl-rewind/internal/fpl"
)

type mockHistoryProvider struct {
	mock.Mock
}

func (m *mockHistoryProvider) GetBootstrapElements(ctx context.Context) ([]fpl.ElementRef, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fpl.ElementRef), args.Error(1)
}

func (m *mockHistoryProvider) GetElementHistory(ctx context.Context, elementID int) ([]fpl.HistoryRow, error) {
	args := m.Called(ctx, elementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fpl.HistoryRow), args.Error(1)
}

func newTestSummaryService(provider HistoryProvider) *SummaryService {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewSummaryService(provider, logger, 10)
}

func TestSummarizeResolvesCodesToElementIDs(t *testing.T) {
	provider := new(mockHistoryProvider)
	provider.On("GetBootstrapElements", mock.Anything).Return([]fpl.ElementRef{
		{ID: 5, Code: 118748},
	}, nil)
	provider.On("GetElementHistory", mock.Anything, 5).Return([]fpl.HistoryRow{
		{Round: 1, TotalPoints: 6, Value: 50},
		{Round: 2, TotalPoints: 2, Value: 51},
		{Round: 3, TotalPoints: 9, Value: 53},
	}, nil)

	svc := newTestSummaryService(provider)
	idMap, results, err := svc.Summarize(context.Background(), []int{118748}, 1, 3)

	require.NoError(t, err)
	assert.Equal(t, map[int]int{118748: 5}, idMap)

	summary, ok := results[118748]
	require.True(t, ok, "results keyed by the original id")
	require.NotNil(t, summary.PriceFrom)
	assert.Equal(t, 5.0, *summary.PriceFrom)
	require.NotNil(t, summary.PriceTo)
	assert.Equal(t, 5.3, *summary.PriceTo)
	require.NotNil(t, summary.PriceDelta)
	assert.Equal(t, 0.3, *summary.PriceDelta)
	assert.Equal(t, 17, summary.PointsRange)
	provider.AssertExpectations(t)
}

func TestSummarizeKnownIDPassesThrough(t *testing.T) {
	provider := new(mockHistoryProvider)
	provider.On("GetBootstrapElements", mock.Anything).Return([]fpl.ElementRef{
		{ID: 7, Code: 200000},
	}, nil)
	provider.On("GetElementHistory", mock.Anything, 7).Return([]fpl.HistoryRow{
		{Round: 4, TotalPoints: 12, Value: 80},
	}, nil)

	svc := newTestSummaryService(provider)
	idMap, results, err := svc.Summarize(context.Background(), []int{7}, 4, 4)

	require.NoError(t, err)
	assert.Equal(t, 7, idMap[7])
	assert.Equal(t, 12, results[7].PointsRange)
}

func TestSummarizePriceNilBeforeFirstRound(t *testing.T) {
	provider := new(mockHistoryProvider)
	provider.On("GetBootstrapElements", mock.Anything).Return([]fpl.ElementRef{
		{ID: 3, Code: 300000},
	}, nil)
	provider.On("GetElementHistory", mock.Anything, 3).Return([]fpl.HistoryRow{
		{Round: 10, TotalPoints: 4, Value: 45},
	}, nil)

	svc := newTestSummaryService(provider)
	_, results, err := svc.Summarize(context.Background(), []int{3}, 2, 10)

	require.NoError(t, err)
	summary := results[3]
	assert.Nil(t, summary.PriceFrom)
	require.NotNil(t, summary.PriceTo)
	assert.Equal(t, 4.5, *summary.PriceTo)
	assert.Nil(t, summary.PriceDelta, "delta needs both endpoints")
	assert.Equal(t, 4, summary.PointsRange)
}

func TestSummarizeIsolatesPerElementFailures(t *testing.T) {
	provider := new(mockHistoryProvider)
	provider.On("GetBootstrapElements", mock.Anything).Return([]fpl.ElementRef{
		{ID: 1, Code: 100001},
		{ID: 2, Code: 100002},
	}, nil)
	provider.On("GetElementHistory", mock.Anything, 1).Return(nil, errors.New("upstream 500"))
	provider.On("GetElementHistory", mock.Anything, 2).Return([]fpl.HistoryRow{
		{Round: 1, TotalPoints: 8, Value: 60},
	}, nil)

	svc := newTestSummaryService(provider)
	_, results, err := svc.Summarize(context.Background(), []int{1, 2}, 1, 1)

	require.NoError(t, err)
	assert.Equal(t, fpl.PlayerSummary{}, results[1])
	assert.Equal(t, 8, results[2].PointsRange)
}

func TestSummarizeBootstrapFailureFailsRequest(t *testing.T) {
	provider := new(mockHistoryProvider)
	provider.On("GetBootstrapElements", mock.Anything).Return(nil, errors.New("timeout"))

	svc := newTestSummaryService(provider)
	_, _, err := svc.Summarize(context.Background(), []int{1}, 1, 5)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch bootstrap")
}

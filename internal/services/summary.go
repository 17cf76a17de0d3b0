package services

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/fpl-rewind/internal/fpl"
)

// HistoryProvider is the slice of the FPL API client the summary service
// depends on.
type HistoryProvider interface {
	GetBootstrapElements(ctx context.Context) ([]fpl.ElementRef, error)
	GetElementHistory(ctx context.Context, elementID int) ([]fpl.HistoryRow, error)
}

// SummaryService computes price movement and point totals over a round range
// by proxying the remote element-history endpoint. Histories are fetched in
// small parallel batches; one identity's failure degrades that identity's
// result to nulls and zero rather than failing the batch.
type SummaryService struct {
	provider  HistoryProvider
	logger    *logrus.Logger
	batchSize int
}

func NewSummaryService(provider HistoryProvider, logger *logrus.Logger, batchSize int) *SummaryService {
	if batchSize <= 0 {
		batchSize = 10
	}
	return &SummaryService{
		provider:  provider,
		logger:    logger,
		batchSize: batchSize,
	}
}

// identityResolver maps incoming identifiers onto element ids. The upstream
// hands out both small element ids and stable codes; callers may send either.
type identityResolver struct {
	ids    map[int]struct{}
	byCode map[int]int
}

func newIdentityResolver(elements []fpl.ElementRef) *identityResolver {
	r := &identityResolver{
		ids:    make(map[int]struct{}, len(elements)),
		byCode: make(map[int]int, len(elements)),
	}
	for _, e := range elements {
		r.ids[e.ID] = struct{}{}
		r.byCode[e.Code] = e.ID
	}
	return r
}

// resolve passes known element ids through, maps known codes to their element
// id, and leaves unrecognized values unchanged.
func (r *identityResolver) resolve(incoming int) int {
	if _, ok := r.ids[incoming]; ok {
		return incoming
	}
	if id, ok := r.byCode[incoming]; ok {
		return id
	}
	return incoming
}

type historyResult struct {
	orig    int
	history []fpl.HistoryRow
	err     error
}

// Summarize resolves each incoming id against the bootstrap element list,
// fetches the per-round histories and returns, keyed by the ORIGINAL ids,
// the id mapping and the per-player summaries for rounds from..to.
func (s *SummaryService) Summarize(ctx context.Context, ids []int, from, to int) (map[int]int, map[int]fpl.PlayerSummary, error) {
	elements, err := s.provider.GetBootstrapElements(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch bootstrap: %w", err)
	}
	resolver := newIdentityResolver(elements)

	idMap := make(map[int]int, len(ids))
	for _, orig := range ids {
		idMap[orig] = resolver.resolve(orig)
	}

	results := make(map[int]fpl.PlayerSummary, len(ids))
	for start := 0; start < len(ids); start += s.batchSize {
		end := start + s.batchSize
		if end > len(ids) {
			end = len(ids)
		}
		batch := ids[start:end]

		var wg sync.WaitGroup
		out := make(chan historyResult, len(batch))
		for _, orig := range batch {
			wg.Add(1)
			go func(orig int) {
				defer wg.Done()
				history, err := s.provider.GetElementHistory(ctx, idMap[orig])
				out <- historyResult{orig: orig, history: history, err: err}
			}(orig)
		}
		go func() {
			wg.Wait()
			close(out)
		}()

		for res := range out {
			if res.err != nil {
				s.logger.Warnf("History fetch failed for element %d: %v", idMap[res.orig], res.err)
				results[res.orig] = fpl.PlayerSummary{}
				continue
			}
			results[res.orig] = summarizeHistory(res.history, from, to)
		}
	}

	return idMap, results, nil
}

func summarizeHistory(history []fpl.HistoryRow, from, to int) fpl.PlayerSummary {
	summary := fpl.PlayerSummary{
		PriceFrom:   priceAtRound(history, from),
		PriceTo:     priceAtRound(history, to),
		PointsRange: sumPointsInRange(history, from, to),
	}
	if summary.PriceFrom != nil && summary.PriceTo != nil {
		delta := math.Round((*summary.PriceTo-*summary.PriceFrom)*10) / 10
		summary.PriceDelta = &delta
	}
	return summary
}

// priceAtRound returns the player's latest price at or before the given
// round, in millions; nil when no history row is early enough.
func priceAtRound(history []fpl.HistoryRow, round int) *float64 {
	var latest *float64
	for _, h := range history {
		if h.Round <= round {
			price := float64(h.Value) / 10
			latest = &price
		}
	}
	return latest
}

func sumPointsInRange(history []fpl.HistoryRow, from, to int) int {
	sum := 0
	for _, h := range history {
		if h.Round >= from && h.Round <= to {
			sum += h.TotalPoints
		}
	}
	return sum
}

package stats

import (
	"context"
	"fmt"
	"io"

	"github.com/verte-zerg/wordsieve/internal/model"
	"github.com/verte-zerg/wordsieve/internal/store"
)

// Report contains precomputed data for history rendering.
type Report struct {
	Sessions    []model.SessionRecord
	FeatureAggs []model.FeatureAggregate
}

// BuildReport loads sessions and their per-feature aggregates.
func BuildReport(ctx context.Context, st *store.Store, cfg model.HistoryConfig) (Report, error) {
	sessions, err := st.ListSessions(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	aggs, err := st.ListFeatureAggregates(ctx, sessionIDs(sessions))
	if err != nil {
		return Report{}, err
	}
	return Report{Sessions: sessions, FeatureAggs: aggs}, nil
}

// Render prints the history table and, when there is history, the
// per-feature table.
func (r Report) Render(w io.Writer) error {
	if err := RenderHistory(w, r.Sessions); err != nil {
		return err
	}
	if len(r.Sessions) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "Sessions: %d\n\n", len(r.Sessions)); err != nil {
		return err
	}
	return RenderFeatureTable(w, r.FeatureAggs)
}

func sessionIDs(sessions []model.SessionRecord) []string {
	ids := make([]string, len(sessions))
	for i, s := range sessions {
		ids[i] = s.ID
	}
	return ids
}

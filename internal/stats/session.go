package stats

import (
	"time"

	"github.com/verte-zerg/wordsieve/internal/model"
	"github.com/verte-zerg/wordsieve/internal/session"
)

// maxResultWords bounds how many surviving words a record keeps.
const maxResultWords = 10

// SessionRecords converts a session run into store records.
func SessionRecords(s session.Session, list, listPath string, endedAt time.Time) (model.SessionRecord, []model.StepRecord) {
	opts := s.Options()
	candidates := s.Candidates()
	rec := model.SessionRecord{
		ID:         s.ID().String(),
		StartedAt:  s.StartedAt(),
		EndedAt:    endedAt,
		List:       list,
		ListPath:   listPath,
		Strategy:   opts.Strategy.Name(),
		ShapeMap:   opts.Shapes.Name(),
		CorpusSize: len(s.Corpus()),
		Remaining:  len(candidates),
		Exhausted:  s.Done(),
	}
	if len(candidates) > 0 && len(candidates) <= maxResultWords {
		rec.Result = append([]string(nil), candidates...)
	}

	steps := s.Steps()
	out := make([]model.StepRecord, len(steps))
	before := len(s.Corpus())
	for i, st := range steps {
		out[i] = model.StepRecord{
			Index:     i,
			Feature:   string(st.Feature),
			Answer:    st.Answer,
			Skipped:   st.Skipped,
			Before:    before,
			Remaining: st.Remaining,
		}
		before = st.Remaining
	}
	return rec, out
}

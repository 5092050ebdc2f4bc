// Package model defines shared data structures.
package model

import "time"

// Config defines session settings after config file and flags are merged.
type Config struct {
	List       string
	ListPaths  []string
	Strategy   string
	ShapeMap   string
	SearchMode string
	Positions  []int
	Disabled   []string
	LogLevel   string
}

// HistoryConfig defines filters for the session history.
type HistoryConfig struct {
	List  string
	Since *time.Time
	Last  int
}

// SessionRecord captures a finished session.
type SessionRecord struct {
	ID         string
	StartedAt  time.Time
	EndedAt    time.Time
	List       string
	ListPath   string
	Strategy   string
	ShapeMap   string
	CorpusSize int
	Remaining  int
	Exhausted  bool
	// Result holds the surviving words when there are few enough to keep.
	Result []string
}

// StepRecord stores one answered or skipped prompt of a session.
type StepRecord struct {
	Index     int
	Feature   string
	Answer    string
	Skipped   bool
	Before    int
	Remaining int
}

// FeatureAggregate summarizes how a feature narrowed candidates across
// sessions.
type FeatureAggregate struct {
	Feature      string
	Asked        int
	BeforeSum    int64
	RemainingSum int64
}

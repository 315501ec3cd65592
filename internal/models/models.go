// package models defines the data model for the liked-videos migration tool
package models

import (
	"fmt"
	"time"
)

// VideoRecord represents a single liked video discovered during collection.
//
// Identity is solely the ID; Title is informational and may be a fallback
// placeholder when the rendered anchor carried no usable text.
type VideoRecord struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// NewVideoRecord builds a record with the canonical watch URL derived from the id.
func NewVideoRecord(id, title string) VideoRecord {
	if title == "" {
		title = "Unknown Title"
	}
	return VideoRecord{
		ID:    id,
		Title: title,
		URL:   fmt.Sprintf("https://www.youtube.com/watch?v=%s", id),
	}
}

// VideoSet is the canonical collection of discovered videos, keyed by id.
//
// The set grows monotonically during collection and preserves first-discovery
// order for downstream iteration. It is owned by the run that created it.
type VideoSet struct {
	byID  map[string]VideoRecord
	order []string
}

// NewVideoSet creates an empty VideoSet.
func NewVideoSet() *VideoSet {
	return &VideoSet{byID: make(map[string]VideoRecord)}
}

// Add inserts a record if its id has not been seen. Returns true on insertion.
func (s *VideoSet) Add(record VideoRecord) bool {
	if record.ID == "" {
		return false
	}
	if _, seen := s.byID[record.ID]; seen {
		return false
	}
	s.byID[record.ID] = record
	s.order = append(s.order, record.ID)
	return true
}

// Has reports whether the id is already in the set.
func (s *VideoSet) Has(id string) bool {
	_, ok := s.byID[id]
	return ok
}

// Len returns the number of distinct videos collected.
func (s *VideoSet) Len() int {
	return len(s.order)
}

// Videos returns the records in first-discovery order.
func (s *VideoSet) Videos() []VideoRecord {
	videos := make([]VideoRecord, len(s.order))
	for i, id := range s.order {
		videos[i] = s.byID[id]
	}
	return videos
}

// ChunkResult records the outcome of a single chunked mutation call.
type ChunkResult struct {
	Start  int  // Index of the first item in the chunk
	End    int  // Index one past the last item in the chunk
	OK     bool // Whether the remote call succeeded
	Status int  // HTTP status code when the call failed
}

// BatchOutcome is the reduction of a sequence of chunk results.
type BatchOutcome struct {
	AllSucceeded bool
	Succeeded    int // Number of chunks that succeeded
	Failed       int // Number of chunks that failed
}

// ReduceChunks folds chunk results into a BatchOutcome.
func ReduceChunks(results []ChunkResult) BatchOutcome {
	outcome := BatchOutcome{AllSucceeded: true}
	for _, res := range results {
		if res.OK {
			outcome.Succeeded++
		} else {
			outcome.Failed++
			outcome.AllSucceeded = false
		}
	}
	return outcome
}

// BackupOutcome captures the verdict of both backup legs.
//
// The export leg is advisory: it is recorded but does not gate destructive
// mutation. Only playlist creation plus a fully successful clone do.
type BackupOutcome struct {
	ExportWritten   bool         // Export artifact handed off to the downloader
	ExportPath      string       // Where the artifact landed (informational)
	PlaylistID      string       // Remote playlist created by the clone leg
	PlaylistCreated bool         // Whether the create call returned an id
	Clone           BatchOutcome // Outcome of the chunked add-items calls
}

// AllSucceeded reports whether the backup is complete enough to permit
// destructive mutation.
func (b BackupOutcome) AllSucceeded() bool {
	return b.PlaylistCreated && b.Clone.AllSucceeded
}

// MutationFailure identifies a single failed item mutation.
type MutationFailure struct {
	ID     string // Video id that failed
	Status int    // HTTP status code returned by the remote service
}

// MutationRunReport accumulates the results of a per-item mutation loop.
type MutationRunReport struct {
	Attempted int
	Succeeded int
	Failed    int
	Failures  []MutationFailure // In the order the failures occurred
}

// Record tallies a single item outcome into the report.
func (r *MutationRunReport) Record(id string, status int, ok bool) {
	r.Attempted++
	if ok {
		r.Succeeded++
		return
	}
	r.Failed++
	r.Failures = append(r.Failures, MutationFailure{ID: id, Status: status})
}

// ExportDocument is the structured backup artifact shape.
type ExportDocument struct {
	ExportedAt string        `json:"exportedAt"`
	Count      int           `json:"count"`
	Videos     []VideoRecord `json:"videos"`
}

// NewExportDocument snapshots a VideoSet into an export artifact.
func NewExportDocument(set *VideoSet, at time.Time) ExportDocument {
	videos := set.Videos()
	return ExportDocument{
		ExportedAt: at.Format("2006-01-02 15:04:05"),
		Count:      len(videos),
		Videos:     videos,
	}
}

// RunKind identifies the pipeline a ledger entry belongs to.
type RunKind string

const (
	RunBackup  RunKind = "backup"
	RunPurge   RunKind = "purge"
	RunRestore RunKind = "restore"
)

// RunRecord is a persisted summary of a completed pipeline run.
type RunRecord struct {
	ID         string
	Sequence   int
	Kind       RunKind
	Attempted  int
	Succeeded  int
	Failed     int
	PlaylistID string
	ExportPath string
	Ok         bool
	StartedAt  time.Time
	FinishedAt time.Time
}

// Validate checks the record before persistence.
func (r *RunRecord) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("run record missing id")
	}
	switch r.Kind {
	case RunBackup, RunPurge, RunRestore:
	default:
		return fmt.Errorf("unknown run kind %q", r.Kind)
	}
	return nil
}

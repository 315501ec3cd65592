package models

import (
	"testing"
	"time"
)

func TestNewVideoRecord(t *testing.T) {
	t.Run("derives the watch URL", func(t *testing.T) {
		record := NewVideoRecord("abc123", "A Title")
		if record.URL != "https://www.youtube.com/watch?v=abc123" {
			t.Errorf("URL = %s", record.URL)
		}
		if record.Title != "A Title" {
			t.Errorf("Title = %s", record.Title)
		}
	})

	t.Run("empty title falls back", func(t *testing.T) {
		record := NewVideoRecord("abc123", "")
		if record.Title != "Unknown Title" {
			t.Errorf("Title = %s, want Unknown Title", record.Title)
		}
	})
}

func TestVideoSet(t *testing.T) {
	t.Run("Add dedupes by id", func(t *testing.T) {
		set := NewVideoSet()

		if !set.Add(NewVideoRecord("one", "First")) {
			t.Error("first insertion should report true")
		}
		if set.Add(NewVideoRecord("one", "Duplicate")) {
			t.Error("duplicate insertion should report false")
		}
		if set.Len() != 1 {
			t.Errorf("Len() = %d, want 1", set.Len())
		}
		if set.Videos()[0].Title != "First" {
			t.Error("duplicate must not overwrite the original record")
		}
	})

	t.Run("Add rejects empty ids", func(t *testing.T) {
		set := NewVideoSet()
		if set.Add(VideoRecord{Title: "no id"}) {
			t.Error("records without an id must be rejected")
		}
	})

	t.Run("Videos preserves first-discovery order", func(t *testing.T) {
		set := NewVideoSet()
		for _, id := range []string{"c", "a", "b"} {
			set.Add(NewVideoRecord(id, ""))
		}

		videos := set.Videos()
		want := []string{"c", "a", "b"}
		for i, id := range want {
			if videos[i].ID != id {
				t.Errorf("videos[%d].ID = %s, want %s", i, videos[i].ID, id)
			}
		}
	})

	t.Run("Has", func(t *testing.T) {
		set := NewVideoSet()
		set.Add(NewVideoRecord("present", ""))

		if !set.Has("present") || set.Has("absent") {
			t.Error("Has() membership broken")
		}
	})
}

func TestReduceChunks(t *testing.T) {
	t.Run("all successful", func(t *testing.T) {
		outcome := ReduceChunks([]ChunkResult{
			{Start: 0, End: 50, OK: true},
			{Start: 50, End: 80, OK: true},
		})
		if !outcome.AllSucceeded || outcome.Succeeded != 2 || outcome.Failed != 0 {
			t.Errorf("outcome = %+v", outcome)
		}
	})

	t.Run("one failure flips the verdict", func(t *testing.T) {
		outcome := ReduceChunks([]ChunkResult{
			{OK: true},
			{OK: false, Status: 429},
			{OK: true},
		})
		if outcome.AllSucceeded || outcome.Succeeded != 2 || outcome.Failed != 1 {
			t.Errorf("outcome = %+v", outcome)
		}
	})

	t.Run("empty input succeeds vacuously", func(t *testing.T) {
		if !ReduceChunks(nil).AllSucceeded {
			t.Error("empty reduction should report AllSucceeded")
		}
	})
}

func TestBackupOutcome_AllSucceeded(t *testing.T) {
	tests := []struct {
		name    string
		outcome BackupOutcome
		want    bool
	}{
		{
			name: "complete backup",
			outcome: BackupOutcome{
				PlaylistCreated: true,
				Clone:           BatchOutcome{AllSucceeded: true},
			},
			want: true,
		},
		{
			name: "export failure does not gate",
			outcome: BackupOutcome{
				ExportWritten:   false,
				PlaylistCreated: true,
				Clone:           BatchOutcome{AllSucceeded: true},
			},
			want: true,
		},
		{
			name:    "no playlist",
			outcome: BackupOutcome{Clone: BatchOutcome{AllSucceeded: true}},
			want:    false,
		},
		{
			name: "failed chunk",
			outcome: BackupOutcome{
				PlaylistCreated: true,
				Clone:           BatchOutcome{AllSucceeded: false, Failed: 1},
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.outcome.AllSucceeded(); got != tt.want {
				t.Errorf("AllSucceeded() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMutationRunReport_Record(t *testing.T) {
	report := &MutationRunReport{}

	report.Record("ok1", 0, true)
	report.Record("bad1", 403, false)
	report.Record("ok2", 0, true)

	if report.Attempted != 3 || report.Succeeded != 2 || report.Failed != 1 {
		t.Errorf("report = %+v", report)
	}
	if len(report.Failures) != 1 || report.Failures[0].ID != "bad1" || report.Failures[0].Status != 403 {
		t.Errorf("failures = %+v", report.Failures)
	}
}

func TestNewExportDocument(t *testing.T) {
	set := NewVideoSet()
	set.Add(NewVideoRecord("aaa", "A"))
	set.Add(NewVideoRecord("bbb", "B"))

	doc := NewExportDocument(set, time.Date(2026, 8, 30, 14, 5, 9, 0, time.UTC))

	if doc.ExportedAt != "2026-08-30 14:05:09" {
		t.Errorf("ExportedAt = %s", doc.ExportedAt)
	}
	if doc.Count != 2 || len(doc.Videos) != 2 {
		t.Errorf("Count = %d with %d videos", doc.Count, len(doc.Videos))
	}
}

func TestRunRecord_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		record := &RunRecord{ID: "id1", Kind: RunBackup}
		if err := record.Validate(); err != nil {
			t.Errorf("Validate() error = %v", err)
		}
	})

	t.Run("missing id", func(t *testing.T) {
		record := &RunRecord{Kind: RunPurge}
		if err := record.Validate(); err == nil {
			t.Error("Validate() should reject a missing id")
		}
	})

	t.Run("unknown kind", func(t *testing.T) {
		record := &RunRecord{ID: "id1", Kind: RunKind("bogus")}
		if err := record.Validate(); err == nil {
			t.Error("Validate() should reject an unknown kind")
		}
	})
}

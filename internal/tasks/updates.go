package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase (0 when open-ended)
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	Scroll Phase = iota
	ExportArtifact
	CreatePlaylist
	CloneChunk
	Unlike
	Relike
)

func (p Phase) String() string {
	switch p {
	case Scroll:
		return "scroll"
	case ExportArtifact:
		return "export_artifact"
	case CreatePlaylist:
		return "create_playlist"
	case CloneChunk:
		return "clone_chunk"
	case Unlike:
		return "unlike"
	case Relike:
		return "relike"
	default:
		return ""
	}
}

func scrollRoundUpdate(round, found int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Scroll,
		Step:    round,
		Message: fmt.Sprintf("Scroll %d: %d videos found", round, found),
	}
}

func exportUpdate(format, path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportArtifact,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Export written (%s): %s", format, path),
	}
}

func exportFailedUpdate(format string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportArtifact,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Export failed (%s): %v", format, err),
	}
}

func createPlaylistUpdate(title, id string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CreatePlaylist,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Playlist created: %s (ID: %s)", title, id),
		Data:    id,
	}
}

func cloneProgressUpdate(done, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CloneChunk,
		Step:    done,
		Total:   total,
		Message: fmt.Sprintf("Copied %d/%d", done, total),
	}
}

func cloneFailedUpdate(start, end, status int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CloneChunk,
		Step:    end,
		Message: fmt.Sprintf("Chunk [%d,%d) failed: status %d", start, end, status),
	}
}

func unlikeProgressUpdate(done, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Unlike,
		Step:    done,
		Total:   total,
		Message: fmt.Sprintf("Unliked %d/%d", done, total),
	}
}

func unlikeFailedUpdate(step, total int, id string, status int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Unlike,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Failed (%d): %s", step, total, status, id),
	}
}

func relikeProgressUpdate(step, total int, id string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Relike,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] OK: %s", step, total, id),
	}
}

func relikeFailedUpdate(step, total int, id string, status int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Relike,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Failed (%d): %s", step, total, status, id),
	}
}

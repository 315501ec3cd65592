package formatter

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/desertthunder/likeshift/internal/shared"
)

// backupEntry is one item from any of the recognized backup shapes. Entries
// carry either an explicit id or a watch URL the id is extracted from.
type backupEntry struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// backupShapes lists the recognized top-level arrays in priority order: the
// tool's own export shape first, then the sibling history-export shape.
var backupShapes = []string{"videos", "youtubeHistory"}

// ParseBackup extracts video ids from an externally supplied backup document.
//
// Attempts each known schema in fixed priority order and returns the ids from
// the first structural match, preserving document order and dropping
// duplicates. Fails with [shared.ErrUnsupportedFormat] when no recognized
// field holds an array, and with [shared.ErrEmptyVideoList] when the matched
// array yields zero extractable ids.
func ParseBackup(data []byte) ([]string, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrUnsupportedFormat, err)
	}

	var entries []backupEntry
	matched := false
	for _, field := range backupShapes {
		raw, ok := doc[field]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, &entries); err != nil {
			continue
		}
		matched = true
		break
	}

	if !matched {
		return nil, fmt.Errorf("%w: no 'videos' or 'youtubeHistory' array found", shared.ErrUnsupportedFormat)
	}

	seen := make(map[string]bool)
	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		id := entry.ID
		if id == "" && entry.URL != "" {
			id = VideoURLID(entry.URL)
		}
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}

	if len(ids) == 0 {
		return nil, shared.ErrEmptyVideoList
	}

	return ids, nil
}

// VideoURLID extracts the video id from a watch URL's "v" query parameter.
// Returns an empty string when the URL does not parse or carries no id.
func VideoURLID(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return parsed.Query().Get("v")
}

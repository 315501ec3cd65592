// package formatter renders export artifacts (JSON, CSV, Markdown) and parses
// previously exported backup documents for restore.
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/desertthunder/likeshift/internal/models"
	"github.com/desertthunder/likeshift/internal/shared"
)

// ExportToJSON renders the canonical export artifact.
func ExportToJSON(doc models.ExportDocument) ([]byte, error) {
	data, err := shared.MarshalJSON(doc, true)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal export document: %w", err)
	}
	return data, nil
}

// ExportToCSV converts an export document to CSV with columns: ID, Title, URL
func ExportToCSV(doc models.ExportDocument) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "URL"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, video := range doc.Videos {
		record := []string{video.ID, video.Title, video.URL}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts an export document to a Markdown listing.
func ExportToMarkdown(doc models.ExportDocument) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Liked Videos Backup\n\n")
	buf.WriteString(fmt.Sprintf("**Exported**: %s\n", doc.ExportedAt))
	buf.WriteString(fmt.Sprintf("**Videos**: %d\n\n", doc.Count))

	buf.WriteString("## Videos\n\n")
	for i, video := range doc.Videos {
		buf.WriteString(fmt.Sprintf("%d. [%s](%s)\n", i+1, video.Title, video.URL))
	}

	return buf.Bytes(), nil
}

// Render produces the artifact bytes for a named format.
func Render(doc models.ExportDocument, format string) ([]byte, string, error) {
	switch format {
	case "json", "":
		data, err := ExportToJSON(doc)
		return data, "json", err
	case "csv":
		data, err := ExportToCSV(doc)
		return data, "csv", err
	case "markdown", "md":
		data, err := ExportToMarkdown(doc)
		return data, "md", err
	default:
		return nil, "", fmt.Errorf("%w: unknown export format '%s'", shared.ErrInvalidArgument, format)
	}
}

package docload

import (
	"context"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"

	"token-analysis-backend/internal/shared/telemetry"
)

// Load turns file paths and URLs into documents. A failure for one source is
// logged and that source skipped; the caller receives a possibly-shorter,
// possibly-empty list rather than an aborted call. An empty list means
// "nothing usable was loaded" and is a valid output.
func Load(ctx context.Context, filePaths []string, urls []string) []Document {
	var documents []Document

	for _, path := range filePaths {
		if err := ctx.Err(); err != nil {
			telemetry.Warn("docload.cancelled", map[string]any{"error": err.Error()})
			return documents
		}
		doc, err := loadFile(path)
		if err != nil {
			telemetry.Error("docload.file_failed", map[string]any{
				"path":  path,
				"error": err.Error(),
			})
			continue
		}
		documents = append(documents, doc)
	}

	// URL loading is a documented stub: sources are logged and skipped.
	for _, url := range urls {
		telemetry.Warn("docload.url_not_supported", map[string]any{"url": url})
	}

	telemetry.Info("docload.complete", map[string]any{
		"files_requested": len(filePaths),
		"urls_requested":  len(urls),
		"loaded":          len(documents),
	})
	return documents
}

func loadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, err
	}

	fileName := filepath.Base(path)
	mime := mimetype.Detect(data)

	text, err := extractText(data, mime, fileName)
	if err != nil {
		return Document{}, err
	}

	return Document{
		Text:       text,
		SourceName: fileName,
		SourceType: SourceFile,
		Metadata: map[string]string{
			"mime_type": mime.String(),
			"path":      path,
		},
	}, nil
}

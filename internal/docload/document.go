package docload

// SourceType tags where a document came from.
type SourceType string

const (
	SourceFile SourceType = "file"
	SourceURL  SourceType = "url"
)

// Document is the uniform in-memory representation of one loaded source.
// Immutable after loading; owned by the pipeline invocation that created it.
type Document struct {
	Text       string
	SourceName string
	SourceType SourceType
	Metadata   map[string]string
}

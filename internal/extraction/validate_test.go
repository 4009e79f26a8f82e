package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func markerSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"cacheMarker": map[string]any{"type": "string"},
		},
		"required": []string{"cacheMarker"},
	}
}

func cachedSchemaCount(t *testing.T) int {
	t.Helper()
	schemaCacheMu.Lock()
	defer schemaCacheMu.Unlock()
	return len(schemaCache)
}

func TestValidateCompilesEachSchemaOnce(t *testing.T) {
	require.NoError(t, validateAgainstSchema(markerSchema(), []byte(`{"cacheMarker":"a"}`)))
	after := cachedSchemaCount(t)

	// A fresh but structurally identical map reuses the compiled entry.
	require.NoError(t, validateAgainstSchema(markerSchema(), []byte(`{"cacheMarker":"b"}`)))
	assert.Equal(t, after, cachedSchemaCount(t))

	// A rejected instance still goes through the same cached schema.
	require.Error(t, validateAgainstSchema(markerSchema(), []byte(`{"cacheMarker":1}`)))
	assert.Equal(t, after, cachedSchemaCount(t))
}

func TestValidateRejectsMalformedData(t *testing.T) {
	err := validateAgainstSchema(markerSchema(), []byte(`{"cacheMarker":`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal data")
}

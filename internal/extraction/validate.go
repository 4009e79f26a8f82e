package extraction

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Compiled schemas are cached by their canonical JSON. The pipeline asks for
// the same handful of schemas on every job, so each compiles once per process.
var (
	schemaCacheMu sync.Mutex
	schemaCache   = map[string]*jsonschema.Schema{}
)

func compiledSchema(schemaMap map[string]any) (*jsonschema.Schema, error) {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	key := string(b)

	schemaCacheMu.Lock()
	defer schemaCacheMu.Unlock()
	if compiled, ok := schemaCache[key]; ok {
		return compiled, nil
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	compiled, err := compiler.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	schemaCache[key] = compiled
	return compiled, nil
}

// validateAgainstSchema validates data against schemaMap. A rejected instance
// is treated the same as a failed completion: the result is discarded.
func validateAgainstSchema(schemaMap map[string]any, data []byte) error {
	schema, err := compiledSchema(schemaMap)
	if err != nil {
		return err
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}

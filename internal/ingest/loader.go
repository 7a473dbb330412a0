package ingest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	apperrors "github.com/frahmantamala/employee-sync/internal"
	"github.com/frahmantamala/employee-sync/internal/employee"
)

// payloadSchema only pins the top-level shape; field checks belong to the validator.
const payloadSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array"
}`

var compiledPayloadSchema = mustCompile(payloadSchema)

func mustCompile(schema string) *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("payload.json", strings.NewReader(schema)); err != nil {
		panic(fmt.Sprintf("add payload schema: %v", err))
	}
	return compiler.MustCompile("payload.json")
}

// Payload is the decoded input. Items holds the array elements as decoded, for
// the profile; Records holds one RawRecord per item, with non-object items
// replaced by empty records so they are rejected downstream with their index intact.
type Payload struct {
	Items   []any
	Records []employee.RawRecord
}

// Load reads the JSON array at path.
func Load(path string) (*Payload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.NewInputNotFoundError(path, err)
		}
		return nil, apperrors.NewInternalError(fmt.Sprintf("read input %s", path), err)
	}
	return Parse(path, data)
}

// Parse decodes data as the input payload. path is only used in error messages.
func Parse(path string, data []byte) (*Payload, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, apperrors.NewInvalidJSONError(path, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, apperrors.NewInvalidJSONError(path, fmt.Errorf("unexpected data after top-level value"))
	}

	if err := compiledPayloadSchema.Validate(payload); err != nil {
		return nil, apperrors.NewInvalidShapeError(path, err)
	}

	items := payload.([]any)
	records := make([]employee.RawRecord, len(items))
	for i, item := range items {
		if obj, ok := item.(map[string]any); ok {
			records[i] = employee.RawRecord(obj)
		} else {
			records[i] = employee.RawRecord{}
		}
	}
	return &Payload{Items: items, Records: records}, nil
}

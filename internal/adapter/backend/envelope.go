package backend

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// envelopeSchema describes the {success, data|error, timestamp} wrapper
// every backend response uses.
const envelopeSchema = `{
  "type": "object",
  "required": ["success"],
  "properties": {
    "success": {"type": "boolean"},
    "message": {"type": "string"},
    "timestamp": {"type": "string"}
  },
  "oneOf": [
    {
      "properties": {"success": {"enum": [true]}}
    },
    {
      "properties": {
        "success": {"enum": [false]},
        "error": {
          "type": "object",
          "required": ["code", "message"],
          "properties": {
            "code": {"type": "string"},
            "message": {"type": "string"}
          }
        }
      },
      "required": ["error"]
    }
  ]
}`

var envelopeLoader = gojsonschema.NewStringLoader(envelopeSchema)

type envelope struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data,omitempty"`
	Message   string          `json:"message,omitempty"`
	Error     *envelopeError  `json:"error,omitempty"`
	Timestamp string          `json:"timestamp,omitempty"`
}

type envelopeError struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Details json.RawMessage `json:"details,omitempty"`
}

// decodeEnvelope checks body against the envelope schema and decodes it.
func decodeEnvelope(body []byte) (*envelope, error) {
	result, err := gojsonschema.Validate(envelopeLoader, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	if !result.Valid() {
		return nil, fmt.Errorf("malformed envelope: %s", result.Errors()[0])
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	return &env, nil
}

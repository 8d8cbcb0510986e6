package address

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// recordSchema lists the identifying fields a raw lookup record must carry
// before an identity can be derived from it.
var recordSchema = map[string]interface{}{
	"type":     "object",
	"required": []string{"street", "city", "postcode"},
	"properties": map[string]interface{}{
		"street":   map[string]interface{}{"type": "string", "minLength": 1},
		"city":     map[string]interface{}{"type": "string", "minLength": 1},
		"postcode": map[string]interface{}{"type": "string", "minLength": 1},
	},
}

func validateRecord(record RawRecord) error {
	schemaLoader := gojsonschema.NewGoLoader(recordSchema)
	documentLoader := gojsonschema.NewGoLoader(map[string]interface{}(record))

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("record validation error: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("record missing identifying fields: %v", errs)
	}

	return nil
}

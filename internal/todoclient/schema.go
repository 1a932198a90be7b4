package todoclient

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed todos.schema.json
var todosSchemaText string

const todosSchemaURL = "todos.schema.json"

var todosSchema = mustCompileSchema(todosSchemaURL, todosSchemaText)

func mustCompileSchema(url, text string) *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(url, strings.NewReader(text)); err != nil {
		panic(fmt.Sprintf("todoclient: add schema resource: %v", err))
	}

	schema, err := compiler.Compile(url)
	if err != nil {
		panic(fmt.Sprintf("todoclient: compile schema: %v", err))
	}
	return schema
}

// decodeTodos checks payload against the list contract before decoding it.
func decodeTodos(payload []byte) ([]Todo, error) {
	var doc interface{}
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode todo list: %w", err)
	}

	if err := todosSchema.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return nil, fmt.Errorf("todo list does not match contract: %s", strings.Join(schemaMessages(ve), "; "))
		}
		return nil, fmt.Errorf("failed to validate todo list: %w", err)
	}

	todos := make([]Todo, 0)
	if err := json.Unmarshal(payload, &todos); err != nil {
		return nil, fmt.Errorf("failed to decode todo list: %w", err)
	}
	return todos, nil
}

func schemaMessages(err *jsonschema.ValidationError) []string {
	if len(err.Causes) == 0 {
		location := err.InstanceLocation
		if location == "" {
			location = "/"
		}
		return []string{location + ": " + err.Message}
	}

	var messages []string
	for _, cause := range err.Causes {
		messages = append(messages, schemaMessages(cause)...)
	}
	return messages
}

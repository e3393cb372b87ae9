package todo

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// SchemaName is the resource name the embedded schema is compiled under.
const SchemaName = "tasklist.schema.json"

//go:embed tasklist.schema.json
var schemaJSON string

// SchemaJSON returns the JSON Schema that stored task lists must satisfy.
func SchemaJSON() string {
	return schemaJSON
}

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource(SchemaName, strings.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	schema, err := compiler.Compile(SchemaName)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
})

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // JSON path to the error location
	Err  error  // Underlying error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// DecodeError collects every reason a stored value was rejected.
type DecodeError struct {
	Errors []error
}

func (e *DecodeError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return "invalid task list: " + strings.Join(msgs, "; ")
}

// Unwrap exposes the individual validation errors to errors.Is and errors.As.
func (e *DecodeError) Unwrap() []error {
	return e.Errors
}

// Encode serializes l as a JSON array with 2-space indentation.
func Encode(l List) ([]byte, error) {
	data, err := json.MarshalIndent(l.Clone(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal task list: %w", err)
	}

	// Add trailing newline
	data = append(data, '\n')
	return data, nil
}

// Decode parses and validates a stored task list. Empty input and JSON null
// decode to an empty list. Anything that is not a well-formed task list is
// rejected as a whole; the error is a *DecodeError when the JSON parsed but
// did not have the expected shape.
func Decode(data []byte) (List, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return List{}, nil
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse task list: %w", err)
	}
	if raw == nil {
		return List{}, nil
	}

	if err := validateShape(raw); err != nil {
		return nil, err
	}

	var l List
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("decode task list: %w", err)
	}

	if err := validateList(l); err != nil {
		return nil, err
	}
	return l, nil
}

// Validate checks an in-memory list against the rules Decode enforces.
func Validate(l List) error {
	data, err := json.Marshal(l.Clone())
	if err != nil {
		return fmt.Errorf("marshal task list: %w", err)
	}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse task list: %w", err)
	}
	if err := validateShape(raw); err != nil {
		return err
	}
	return validateList(l)
}

func validateShape(raw any) error {
	schema, err := compiledSchema()
	if err != nil {
		return err
	}
	if err := schema.Validate(raw); err != nil {
		decodeErr := &DecodeError{}
		appendSchemaErrors(decodeErr, err)
		return decodeErr
	}
	return nil
}

// validateList enforces what the schema cannot express: unique ids and
// text that is not made only of Unicode whitespace.
func validateList(l List) error {
	decodeErr := &DecodeError{}
	seen := make(map[string]int, len(l))
	for i, t := range l {
		path := fmt.Sprintf("[%d]", i)
		if first, ok := seen[t.ID]; ok {
			decodeErr.Errors = append(decodeErr.Errors, &ValidationError{
				Path: path + ".id",
				Err:  fmt.Errorf("duplicate id %q (first at [%d])", t.ID, first),
			})
		} else {
			seen[t.ID] = i
		}
		if !ValidText(t.Text) {
			decodeErr.Errors = append(decodeErr.Errors, &ValidationError{
				Path: path + ".text",
				Err:  errors.New("must contain a non-space character"),
			})
		}
	}
	if len(decodeErr.Errors) > 0 {
		return decodeErr
	}
	return nil
}

func appendSchemaErrors(result *DecodeError, err error) {
	if err == nil {
		return
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		result.Errors = append(result.Errors, err)
		return
	}

	collectSchemaErrors(result, ve)
}

func collectSchemaErrors(result *DecodeError, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}

	if len(err.Causes) == 0 {
		result.Errors = append(result.Errors, &ValidationError{
			Path: jsonPointerToPath(err.InstanceLocation),
			Err:  errors.New(err.Message),
		})
		return
	}

	for _, cause := range err.Causes {
		collectSchemaErrors(result, cause)
	}
}

func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	var path strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			fmt.Fprintf(&path, "[%d]", idx)
			continue
		}
		if path.Len() > 0 {
			path.WriteByte('.')
		}
		path.WriteString(part)
	}

	return path.String()
}

// Package loader reads an OpenAPI-shaped YAML or JSON document from disk and
// flattens it into the neutral contract model.
//
// Parsing is delegated to kin-openapi; everything the comparator does not
// need (descriptions, examples, security schemes, request/response bodies)
// is dropped during flattening. The one thing kin-openapi cannot provide is
// the declaration order of the paths mapping (its path map is unordered), so
// a second, raw yaml.v3 pass over the same bytes recovers it.
package loader

import (
	"fmt"
	"os"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	"apicompat/internal/contract"
)

// FileNotFoundError reports that the contract document does not exist.
type FileNotFoundError struct {
	Path string
	Err  error
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("contract file not found: %s", e.Path)
}

func (e *FileNotFoundError) Unwrap() error { return e.Err }

// ParseError reports that the contract document exists but could not be
// parsed as an OpenAPI document.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Load reads and flattens the contract document at path.
//
// Returns *FileNotFoundError when the file is missing and *ParseError when
// its contents are not a well-formed document. No caching, no network: the
// file is re-read on every call.
func Load(path string) (*contract.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &FileNotFoundError{Path: path, Err: err}
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	l := openapi3.NewLoader()
	t, err := l.LoadFromData(data)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	order, err := pathOrder(data)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	return flatten(t, order), nil
}

// flatten converts a parsed kin-openapi document into the neutral model,
// emitting paths in declaration order.
func flatten(t *openapi3.T, order []string) *contract.Document {
	doc := &contract.Document{}
	if t.Paths == nil {
		return doc
	}
	pathMap := t.Paths.Map()
	for _, path := range order {
		item, ok := pathMap[path]
		if !ok {
			continue
		}
		doc.Paths = append(doc.Paths, contract.PathEntry{
			Path: path,
			Item: flattenItem(item),
		})
	}
	return doc
}

func flattenItem(item *openapi3.PathItem) contract.PathItem {
	ops := make(map[contract.Method]*contract.Operation)
	for _, m := range contract.Methods {
		if op := item.GetOperation(string(m)); op != nil {
			ops[m] = flattenOperation(op)
		}
	}
	return contract.PathItem{Ops: ops}
}

func flattenOperation(op *openapi3.Operation) *contract.Operation {
	out := &contract.Operation{Responses: make(map[string]contract.ResponseSpec)}
	for _, ref := range op.Parameters {
		p := ref.Value
		if p == nil {
			continue
		}
		out.Params = append(out.Params, contract.Parameter{
			Name:       p.Name,
			In:         p.In,
			Required:   p.Required,
			SchemaType: schemaType(p.Schema),
		})
	}
	if op.Responses != nil {
		for code := range op.Responses.Map() {
			out.Responses[code] = contract.ResponseSpec{Code: code}
		}
	}
	return out
}

// schemaType normalizes a parameter schema to its primary type descriptor
// ("string", "integer", "object", ...). Empty when the parameter carries no
// schema or an untyped one.
func schemaType(ref *openapi3.SchemaRef) string {
	if ref == nil || ref.Value == nil || ref.Value.Type == nil {
		return ""
	}
	types := ref.Value.Type.Slice()
	if len(types) == 0 {
		return ""
	}
	return types[0]
}

// pathOrder extracts the keys of the top-level "paths" mapping in the order
// they appear in the source bytes. yaml.v3 node decoding preserves mapping
// key order, and handles JSON input as well since JSON is a YAML subset.
func pathOrder(data []byte) ([]string, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if len(root.Content) == 0 {
		return nil, nil
	}
	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("document root is not a mapping")
	}
	for i := 0; i+1 < len(doc.Content); i += 2 {
		if doc.Content[i].Value != "paths" {
			continue
		}
		paths := doc.Content[i+1]
		if paths.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("paths is not a mapping")
		}
		order := make([]string, 0, len(paths.Content)/2)
		for j := 0; j+1 < len(paths.Content); j += 2 {
			order = append(order, paths.Content[j].Value)
		}
		return order, nil
	}
	return nil, nil
}

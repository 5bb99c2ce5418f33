// Package contract defines the normalized in-memory representation of a REST
// API contract: paths, their operations, and each operation's parameters and
// response codes.
//
// The model is deliberately parser-neutral. The loader package flattens
// whatever the parsing library produces into these plain structs, so the
// comparator never touches a parser library's native types and the parser
// stays swappable.
//
// Documents are built once by the loader and never mutated afterward.
package contract

import "fmt"

// Method is an HTTP method name in canonical upper-case form.
type Method string

const (
	GET    Method = "GET"
	POST   Method = "POST"
	PUT    Method = "PUT"
	DELETE Method = "DELETE"
	PATCH  Method = "PATCH"
)

// Methods is the fixed comparison order for operations on a path. Comparators
// iterate this slice rather than ranging over the Ops map so output ordering
// is reproducible.
var Methods = []Method{GET, POST, PUT, DELETE, PATCH}

// Document is the root of a loaded contract: an insertion-ordered sequence of
// path entries. A slice rather than a map, because the comparator's output
// order follows the old document's path order.
type Document struct {
	Paths []PathEntry
}

// PathEntry pairs a path template ("/users/{id}") with its item.
type PathEntry struct {
	Path string
	Item PathItem
}

// Item returns the path item for path, or nil if the document does not
// define the path.
func (d *Document) Item(path string) *PathItem {
	for i := range d.Paths {
		if d.Paths[i].Path == path {
			return &d.Paths[i].Item
		}
	}
	return nil
}

// PathItem holds at most one operation per HTTP method. A path item with no
// operations is valid.
type PathItem struct {
	Ops map[Method]*Operation
}

// Operation holds an operation's parameters in document order and its
// response codes.
type Operation struct {
	Params    []Parameter
	Responses map[string]ResponseSpec
}

// Param returns the parameter identified by the (in, name) composite key,
// or nil if the operation does not define it.
func (o *Operation) Param(in, name string) *Parameter {
	for i := range o.Params {
		if o.Params[i].In == in && o.Params[i].Name == name {
			return &o.Params[i]
		}
	}
	return nil
}

// Parameter describes a single operation input. The (In, Name) composite is
// the stable identity used to match a parameter across contract versions.
type Parameter struct {
	Name       string
	In         string // path, query, header or cookie
	Required   bool
	SchemaType string // normalized type descriptor: "string", "integer", ...
}

// Key renders the composite identity, e.g. "query:email".
func (p Parameter) Key() string {
	return fmt.Sprintf("%s:%s", p.In, p.Name)
}

// ResponseSpec marks the presence of a response code on an operation. The
// response body schema is intentionally not modeled; compatibility checking
// covers the code set only.
type ResponseSpec struct {
	Code string
}

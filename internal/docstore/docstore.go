// Package docstore is a schemaless document store with nested collections,
// e.g. users/{uid}/cart/{lineID}. Documents are plain Go structs carrying
// both json and bson tags.
package docstore

import (
	"context"
	"errors"
	"strings"
)

var ErrNotFound = errors.New("document not found")

// Collection addresses a set of documents. Parent is the path of the owning
// document ("users/u1") and is empty for top-level collections.
type Collection struct {
	Parent string
	Name   string
}

func Root(name string) Collection {
	return Collection{Name: name}
}

// Sub returns the collection name nested under parentCollection/parentID.
func Sub(parentCollection, parentID, name string) Collection {
	return Collection{Parent: parentCollection + "/" + parentID, Name: name}
}

func (c Collection) Doc(id string) Ref {
	return Ref{Collection: c, ID: id}
}

func (c Collection) Path() string {
	if c.Parent == "" {
		return c.Name
	}
	return c.Parent + "/" + c.Name
}

type Ref struct {
	Collection Collection
	ID         string
}

func (r Ref) Path() string {
	return r.Collection.Path() + "/" + r.ID
}

// Filter is a single-field equality predicate. The zero Filter matches all.
type Filter struct {
	Field string
	Value any
}

func Where(field string, value any) Filter {
	return Filter{Field: field, Value: value}
}

func (f Filter) IsZero() bool {
	return strings.TrimSpace(f.Field) == ""
}

type Store interface {
	// Get decodes the document into dst or returns ErrNotFound.
	Get(ctx context.Context, ref Ref, dst any) error
	// Set writes every field of doc, creating the document when missing.
	Set(ctx context.Context, ref Ref, doc any) error
	// Merge writes only the given top-level fields, creating the document when missing.
	Merge(ctx context.Context, ref Ref, fields map[string]any) error
	// Delete removes the document; deleting a missing document is not an error.
	Delete(ctx context.Context, ref Ref) error
	// List decodes the matching documents, oldest first, into dst (a pointer to a slice).
	List(ctx context.Context, coll Collection, filter Filter, dst any) error
}

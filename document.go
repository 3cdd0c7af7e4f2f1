package safejson

import (
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Document is a JSON object that remembers key insertion order. Both
// serialization and parsing preserve that order, matching how the
// document was built or how keys appear in the source file. Nested
// objects decode as plain map[string]any and numbers as float64.
type Document = orderedmap.OrderedMap[string, any]

// Pair is one key/value entry of a Document, in iteration order.
type Pair = orderedmap.Pair[string, any]

// NewDocument returns an empty Document.
//
//	doc := safejson.NewDocument()
//	doc.Set("name", "John")
//	doc.Set("age", 30)
func NewDocument() *Document {
	return orderedmap.New[string, any]()
}

// DocumentFrom builds a Document from pairs, keeping their order.
//
//	doc := safejson.DocumentFrom(
//		safejson.Pair{Key: "name", Value: "John"},
//		safejson.Pair{Key: "age", Value: 30},
//	)
func DocumentFrom(pairs ...Pair) *Document {
	return orderedmap.New[string, any](orderedmap.WithInitialData(pairs...))
}

// ParseDocument decodes raw JSON into a Document. The input must be a
// single JSON object with nothing but whitespace after it; anything
// else (arrays, scalars, trailing data) is an error.
func ParseDocument(raw []byte) (*Document, error) {
	doc := NewDocument()
	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

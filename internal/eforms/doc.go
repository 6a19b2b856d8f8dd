package eforms

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/antchfx/xmlquery"
)

// namespaces binds the fixed prefix table every query compiles against.
// eForms notices use the UBL common components plus the two eForms
// extension namespaces.
var namespaces = map[string]string{
	"cbc":  "urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2",
	"cac":  "urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2",
	"efac": "http://data.europa.eu/p27/eforms-ubl-extension-aggregate-components/1",
	"efbc": "http://data.europa.eu/p27/eforms-ubl-extension-basic-components/1",
}

// MalformedDocumentError reports input bytes that do not parse as a
// well-formed XML document. It is the only error Extract surfaces.
type MalformedDocumentError struct {
	Err error
}

func (e *MalformedDocumentError) Error() string {
	return fmt.Sprintf("malformed document: %v", e.Err)
}

func (e *MalformedDocumentError) Unwrap() error { return e.Err }

// Document is one parsed notice. It carries the tree plus lazily built
// identifier indexes used by the entity resolvers. A Document holds no
// state shared with any other Document.
type Document struct {
	root *xmlquery.Node

	orgs    map[string]*xmlquery.Node
	tenders map[string]*xmlquery.Node
	parties map[string]*xmlquery.Node
}

// Parse builds a namespace-aware tree from raw document bytes. Encoding
// errors, mismatched tags and truncated input all come back as
// *MalformedDocumentError.
func Parse(data []byte) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &MalformedDocumentError{Err: errors.New("empty input")}
	}

	root, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, &MalformedDocumentError{Err: err}
	}

	// encoding/xml tolerates stray top-level character data; require an
	// actual document element before accepting the input.
	hasElement := false
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			hasElement = true
			break
		}
	}
	if !hasElement {
		return nil, &MalformedDocumentError{Err: errors.New("no document element")}
	}

	return &Document{root: root}, nil
}

// Package component holds the component-level question modules: business
// processes, decision logic, core data elements, and terminology coverage.
package component

import (
	"bytes"
	"encoding/xml"
	"io"
)

type namedElement struct {
	ID   string
	Name string
}

// extractElements scans an XML document for elements with the given local
// name (namespace-agnostic, BPMN and DMN exporters disagree on prefixes) and
// returns their id/name attributes in document order.
func extractElements(data []byte, local string) []namedElement {
	dec := xml.NewDecoder(bytes.NewReader(data))
	var out []namedElement
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Truncated or malformed documents still yield what was
			// readable up to the error.
			break
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != local {
			continue
		}
		var el namedElement
		for _, attr := range se.Attr {
			switch attr.Name.Local {
			case "id":
				el.ID = attr.Value
			case "name":
				el.Name = attr.Value
			}
		}
		out = append(out, el)
	}
	return out
}

// Package xmlcodec converts surveys to and from their XML document form.
//
// Round trip: Decode(Encode(s)) reproduces s except that blank options are
// dropped and Validation.Pattern is never carried.
package xmlcodec

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"surveyflow/internal/model"
)

var ErrNilSurvey = errors.New("survey is nil")

// Encode renders s as an indented UTF-8 XML document.
func Encode(s *model.Survey) (string, error) {
	if s == nil {
		return "", ErrNilSurvey
	}
	b, err := xml.MarshalIndent(fromModel(s), "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal survey %q: %w", s.ID, err)
	}
	return xml.Header + string(b), nil
}

// Decode parses text and returns the first <survey> element found in it.
// It returns nil when text is not a well-formed XML document with a single
// root element, or has no survey element; callers treat that as an ordinary
// failure rather than an error.
func Decode(text string) *model.Survey {
	dec := xml.NewDecoder(strings.NewReader(text))

	var found *xmlSurvey
	depth, roots := 0, 0
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if depth == 0 {
				roots++
				if roots > 1 {
					return nil
				}
			}
			if found == nil && t.Name.Local == "survey" {
				var xs xmlSurvey
				// DecodeElement consumes the matching end element.
				if err := dec.DecodeElement(&xs, &t); err != nil {
					return nil
				}
				found = &xs
				continue
			}
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			if depth == 0 && len(bytes.TrimSpace(t)) > 0 {
				return nil
			}
		}
	}
	if found == nil {
		return nil
	}
	return found.toModel()
}

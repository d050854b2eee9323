package profile

import (
	"context"
	"fmt"

	"github.com/matsen/orcid/internal/document"
)

// schema owns the field paths of one ORCID API generation.
type schema interface {
	// fetch retrieves the document and strips any version-specific wrapper.
	fetch(ctx context.Context, s Session, id func() (string, error)) (document.Node, error)

	// person returns the "person" view (V20 only).
	person(raw document.Node) (document.Node, bool)

	// bio returns the "orcid-bio" view (V12 only).
	bio(raw document.Node) (document.Node, bool)

	// email returns the first email address, if any.
	email(raw document.Node) (string, bool)

	// nameRoot is the path to the object holding given-names and family-name.
	nameRoot() []string
}

func schemaFor(v APIVersion) (schema, error) {
	switch v {
	case V12:
		return v12Schema{}, nil
	case V20:
		return v20Schema{}, nil
	default:
		return nil, fmt.Errorf("unsupported API version %q", v)
	}
}

type v12Schema struct{}

func (v12Schema) fetch(ctx context.Context, s Session, _ func() (string, error)) (document.Node, error) {
	doc, err := s.FetchProfile(ctx, "", V12)
	if err != nil {
		return nil, &FetchError{Version: V12, Err: err}
	}
	raw, ok := document.Map(doc, "orcid-profile")
	if !ok {
		return nil, &MalformedError{Version: V12, Path: []string{"orcid-profile"}}
	}
	return raw, nil
}

func (v12Schema) person(document.Node) (document.Node, bool) {
	return nil, false
}

func (v12Schema) bio(raw document.Node) (document.Node, bool) {
	return document.Lookup(raw, "orcid-bio")
}

func (v12Schema) email(raw document.Node) (string, bool) {
	return document.String(raw, "orcid-bio", "contact-details", "email", 0, "value")
}

func (v12Schema) nameRoot() []string {
	return []string{"orcid-bio", "personal-details"}
}

type v20Schema struct{}

func (v20Schema) fetch(ctx context.Context, s Session, id func() (string, error)) (document.Node, error) {
	orcidID, err := id()
	if err != nil {
		return nil, &FetchError{Version: V20, Err: err}
	}
	doc, err := s.FetchProfile(ctx, orcidID, V20)
	if err != nil {
		return nil, &FetchError{Version: V20, Err: err}
	}
	if doc == nil {
		return nil, &MalformedError{Version: V20, Path: []string{"(document)"}}
	}
	return doc, nil
}

func (v20Schema) person(raw document.Node) (document.Node, bool) {
	return document.Lookup(raw, "person")
}

func (v20Schema) bio(document.Node) (document.Node, bool) {
	return nil, false
}

func (v20Schema) email(raw document.Node) (string, bool) {
	return document.String(raw, "person", "emails", "email", 0, "email")
}

func (v20Schema) nameRoot() []string {
	return []string{"person", "name"}
}

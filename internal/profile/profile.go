// Package profile provides a version-independent accessor over an ORCID
// researcher profile.
//
// A Profile is meant to be short-lived: construct one per request, read what
// you need, and discard it. The raw document is fetched on first use and
// cached for the lifetime of the Profile. A Profile is not safe for
// concurrent use.
package profile

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/matsen/orcid/internal/document"
)

// DefaultTimeout is the timeout of the HTTP client used by Save when none is
// supplied.
const DefaultTimeout = 60 * time.Second

// Profile reads and updates one researcher's ORCID record through a Session.
type Profile struct {
	session        Session
	version        APIVersion
	schema         schema
	httpClient     *http.Client
	logger         *slog.Logger
	tempDir        string
	legacyUnescape bool

	raw document.Node
}

// Option configures a Profile.
type Option func(*Profile)

// WithVersion sets the ORCID API version. Defaults to V20.
func WithVersion(v APIVersion) Option {
	return func(p *Profile) {
		p.version = v
	}
}

// WithHTTPClient sets the HTTP client used by Save.
func WithHTTPClient(hc *http.Client) Option {
	return func(p *Profile) {
		p.httpClient = hc
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(p *Profile) {
		p.logger = l
	}
}

// WithTempDir sets the directory Save stages request bodies in. Defaults to
// os.TempDir().
func WithTempDir(dir string) Option {
	return func(p *Profile) {
		p.tempDir = dir
	}
}

// WithLegacyUnescape makes Save strip one layer of backslash escaping from
// the XML body before sending it. Off by default: callers are expected to
// pass the payload exactly as it should be sent.
func WithLegacyUnescape(on bool) Option {
	return func(p *Profile) {
		p.legacyUnescape = on
	}
}

// New creates a Profile reading through session. It performs no I/O.
func New(session Session, opts ...Option) (*Profile, error) {
	p := &Profile{
		session:    session,
		version:    DefaultVersion,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	s, err := schemaFor(p.version)
	if err != nil {
		return nil, err
	}
	p.schema = s

	return p, nil
}

// Version returns the API version the Profile was built for.
func (p *Profile) Version() APIVersion {
	return p.version
}

// Identifier returns the ORCID iD from the session, unmodified.
func (p *Profile) Identifier() (string, error) {
	return p.session.Identifier()
}

// Raw returns the raw profile document, fetching it on first call. For V12
// this is the content of the "orcid-profile" wrapper. A failed fetch is not
// cached.
func (p *Profile) Raw(ctx context.Context) (document.Node, error) {
	if p.raw != nil {
		return p.raw, nil
	}

	p.logger.Debug("fetching ORCID profile", "version", p.version)
	raw, err := p.schema.fetch(ctx, p.session, p.Identifier)
	if err != nil {
		return nil, err
	}

	p.raw = raw
	return p.raw, nil
}

// Bio returns the "orcid-bio" subtree for V12 and nil for V20.
func (p *Profile) Bio(ctx context.Context) (document.Node, error) {
	if p.version != V12 {
		return nil, nil
	}
	raw, err := p.Raw(ctx)
	if err != nil {
		return nil, err
	}
	bio, _ := p.schema.bio(raw)
	return bio, nil
}

// Person returns the "person" subtree for V20 and nil for V12.
func (p *Profile) Person(ctx context.Context) (document.Node, error) {
	if p.version != V20 {
		return nil, nil
	}
	raw, err := p.Raw(ctx)
	if err != nil {
		return nil, err
	}
	person, _ := p.schema.person(raw)
	return person, nil
}

// Email returns the first email address on the profile. ok is false when the
// profile has no visible email; that is not an error, since researchers
// commonly hide contact details.
func (p *Profile) Email(ctx context.Context) (email string, ok bool, err error) {
	raw, err := p.Raw(ctx)
	if err != nil {
		return "", false, err
	}
	email, ok = p.schema.email(raw)
	return email, ok, nil
}

// FullName returns "given-names family-name". Both parts are required: ORCID
// does not issue an iD without a name, so absence is a MalformedError.
func (p *Profile) FullName(ctx context.Context) (string, error) {
	raw, err := p.Raw(ctx)
	if err != nil {
		return "", err
	}

	root := p.schema.nameRoot()
	given, err := p.requiredString(raw, root, "given-names", "value")
	if err != nil {
		return "", err
	}
	family, err := p.requiredString(raw, root, "family-name", "value")
	if err != nil {
		return "", err
	}

	return given + " " + family, nil
}

// requiredString returns the string at root+rest or a MalformedError naming
// the full path.
func (p *Profile) requiredString(raw document.Node, root []string, rest ...string) (string, error) {
	full := make([]string, 0, len(root)+len(rest))
	full = append(full, root...)
	full = append(full, rest...)

	path := make([]any, len(full))
	for i, seg := range full {
		path[i] = seg
	}

	s, ok := document.String(raw, path...)
	if !ok {
		return "", &MalformedError{Version: p.version, Path: full}
	}
	return s, nil
}

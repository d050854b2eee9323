package profile

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// ContentTypeXML is the media type ORCID expects for write payloads.
const ContentTypeXML = "application/vnd.orcid+xml"

// SaveResult is the outcome of a write that reached the transport. Exactly
// one of the two cases holds: OK with the response Body, or !OK with a
// Reason. An empty Body on success is still a success.
type SaveResult struct {
	OK         bool   `json:"ok"`
	StatusCode int    `json:"status_code,omitempty"`
	Endpoint   string `json:"endpoint"`
	Body       []byte `json:"-"`
	Reason     string `json:"reason,omitempty"`
}

// Save PUTs xmlBody to the endpoint the session resolves for scope.
//
// The returned error is non-nil only when the request could not be built:
// identifier, endpoint or token lookup failed, or the body could not be
// staged. Once the request is issued, failures are reported in the result
// with OK set to false; the caller must check it. Save never retries, and
// callers must not assume it is idempotent: ORCID "create" scopes append.
func (p *Profile) Save(ctx context.Context, scope, xmlBody string) (*SaveResult, error) {
	id, err := p.Identifier()
	if err != nil {
		return nil, fmt.Errorf("resolving identifier: %w", err)
	}

	endpoint, err := p.session.WriteEndpoint(scope, p.version, id)
	if err != nil {
		return nil, fmt.Errorf("resolving endpoint for scope %q: %w", scope, err)
	}

	token, err := p.session.AccessToken()
	if err != nil {
		return nil, fmt.Errorf("getting access token: %w", err)
	}

	payload := xmlBody
	if p.legacyUnescape {
		payload = StripSlashes(payload)
	}

	staged, size, err := p.stage(payload)
	if err != nil {
		return nil, err
	}
	defer func() {
		staged.Close()
		os.Remove(staged.Name())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, staged)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	// A file body has no known length; declare it so the upload is not chunked.
	req.ContentLength = size
	if size == 0 {
		req.Body = http.NoBody
	}
	req.Header.Set("Content-Type", ContentTypeXML)
	req.Header.Set("Authorization", "Bearer "+token)

	p.logger.Debug("saving to ORCID", "scope", scope, "endpoint", endpoint, "bytes", size)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return &SaveResult{Endpoint: endpoint, Reason: err.Error()}, nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &SaveResult{
			StatusCode: resp.StatusCode,
			Endpoint:   endpoint,
			Reason:     fmt.Sprintf("reading response: %v", err),
		}, nil
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		p.logger.Debug("ORCID rejected save", "status", resp.StatusCode, "endpoint", endpoint)
		return &SaveResult{
			StatusCode: resp.StatusCode,
			Endpoint:   endpoint,
			Body:       body,
			Reason:     fmt.Sprintf("HTTP %d", resp.StatusCode),
		}, nil
	}

	return &SaveResult{
		OK:         true,
		StatusCode: resp.StatusCode,
		Endpoint:   endpoint,
		Body:       body,
	}, nil
}

// stage writes payload to a temp file rewound to its start. The caller owns
// the file and must close and remove it.
func (p *Profile) stage(payload string) (*os.File, int64, error) {
	f, err := os.CreateTemp(p.tempDir, "orcid-put-*.xml")
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrStaging, err)
	}

	n, err := io.WriteString(f, payload)
	if err == nil {
		_, err = f.Seek(0, io.SeekStart)
	}
	if err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, 0, fmt.Errorf("%w: %v", ErrStaging, err)
	}

	return f, int64(n), nil
}

// StripSlashes removes one layer of backslash escaping: "\x" becomes "x",
// "\0" becomes a NUL byte, and a trailing lone backslash is dropped.
func StripSlashes(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' {
			sb.WriteByte(s[i])
			continue
		}
		i++
		if i == len(s) {
			break
		}
		if s[i] == '0' {
			sb.WriteByte(0)
		} else {
			sb.WriteByte(s[i])
		}
	}
	return sb.String()
}

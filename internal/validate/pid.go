package validate

import (
	"context"
	"net/http"
	"regexp"
	"time"
)

// PIDResolver verifies persistent identifiers (ORCID, ROR, DOI) best-effort.
// It is consulted on the ingest path only; the serving path never waits on it.
type PIDResolver interface {
	Verify(ctx context.Context, uri string) bool
}

var (
	orcidPattern = regexp.MustCompile(`^https://orcid\.org/\d{4}-\d{4}-\d{4}-\d{3}[\dX]$`)
	rorPattern   = regexp.MustCompile(`^https://ror\.org/0[a-z0-9]{8}$`)
	doiPattern   = regexp.MustCompile(`^(doi:|https://doi\.org/)10\.\d{4,}/\S+$`)
)

// HTTPResolver checks identifier syntax and, when a client is configured,
// probes the identifier URL with a short-deadline HEAD request. Network
// failures count as verified: remote registries being down must not block
// ingest.
type HTTPResolver struct {
	Client  *http.Client
	Timeout time.Duration
}

// NewHTTPResolver returns a resolver with a bounded probe timeout.
func NewHTTPResolver() *HTTPResolver {
	return &HTTPResolver{Client: http.DefaultClient, Timeout: 2 * time.Second}
}

var _ PIDResolver = (*HTTPResolver)(nil)

func (r *HTTPResolver) Verify(ctx context.Context, uri string) bool {
	if !KnownPIDSyntax(uri) {
		return false
	}
	if r.Client == nil || !isHTTPURL(uri) {
		return true
	}

	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, uri, nil)
	if err != nil {
		return true
	}
	resp, err := r.Client.Do(req)
	if err != nil {
		return true
	}
	defer resp.Body.Close()
	return resp.StatusCode < 400
}

// KnownPIDSyntax reports whether uri matches a supported persistent
// identifier scheme.
func KnownPIDSyntax(uri string) bool {
	return orcidPattern.MatchString(uri) ||
		rorPattern.MatchString(uri) ||
		doiPattern.MatchString(uri)
}

func isHTTPURL(uri string) bool {
	return len(uri) > 8 && uri[:8] == "https://"
}

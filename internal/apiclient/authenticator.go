package apiclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"
)

// ErrBodyNotReplayable is returned when a request must be retried after a
// token refresh but its body cannot be rewound.
var ErrBodyNotReplayable = errors.New("request body cannot be replayed")

// Session is the slice of the auth service the authenticator needs.
type Session interface {
	Token(ctx context.Context) string
	Refresh(ctx context.Context) error
	Logout(ctx context.Context)
}

// Authenticator attaches the bearer token to outgoing requests and, on a 401,
// refreshes once and retries the request with the new token. Concurrent 401s
// each run their own refresh.
type Authenticator struct {
	base    http.RoundTripper
	session Session
	logger  *logrus.Logger
}

func NewAuthenticator(base http.RoundTripper, session Session, logger *logrus.Logger) *Authenticator {
	if base == nil {
		base = http.DefaultTransport
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Authenticator{base: base, session: session, logger: logger}
}

func (a *Authenticator) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	resp, err := a.base.RoundTrip(authorize(req, a.session.Token(ctx)))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	if err := a.session.Refresh(ctx); err != nil {
		a.logger.WithError(err).Warn("token refresh failed, logging out")
		a.session.Logout(ctx)
		return nil, fmt.Errorf("refresh token: %w", err)
	}

	retry, err := rewind(req)
	if err != nil {
		return nil, err
	}
	return a.base.RoundTrip(authorize(retry, a.session.Token(ctx)))
}

// authorize returns a copy of req carrying token, or req itself when there is
// no token.
func authorize(req *http.Request, token string) *http.Request {
	if token == "" {
		return req
	}
	out := req.Clone(req.Context())
	out.Header.Set("Authorization", "Bearer "+token)
	return out
}

func rewind(req *http.Request) (*http.Request, error) {
	out := req.Clone(req.Context())
	if req.Body == nil || req.Body == http.NoBody {
		return out, nil
	}
	if req.GetBody == nil {
		return nil, ErrBodyNotReplayable
	}
	body, err := req.GetBody()
	if err != nil {
		return nil, fmt.Errorf("rewind request body: %w", err)
	}
	out.Body = body
	return out, nil
}

var _ http.RoundTripper = (*Authenticator)(nil)

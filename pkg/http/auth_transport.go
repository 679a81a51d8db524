package http

import "net/http"

type authTransport struct {
	token string
	next  http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.token == "" {
		return t.next.RoundTrip(req)
	}

	// Clone before mutating; the transport must not touch the caller's request.
	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "Bearer "+t.token)

	return t.next.RoundTrip(clone)
}

// WithAuthToken sends the token as a bearer credential on every request.
// An empty token leaves requests untouched.
func WithAuthToken(token string) ClientOption {
	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		return &authTransport{token: token, next: rt}
	})
}

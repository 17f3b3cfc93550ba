// Package transport provides the HTTP implementation of domain.Transport used
// to reach the auction server.
//
// Requests are JSON over HTTP. Each one carries a fresh X-Request-ID (also
// attached to log lines and errors), an Authorization bearer header when the
// caller supplies a session token, and is bounded by the caller's context plus
// an optional per-request timeout.
//
// Failures come in two shapes:
//   - *Error: the exchange did not complete (dial, TLS, timeout, reading the
//     body). It matches domain.ErrTransport under errors.Is.
//   - *StatusError: the server answered with a non-2xx status. The
//     structured {"detail": {status, code, message}} body, when present, is
//     parsed into Detail. A 401 matches domain.ErrUnauthorized.
//
// Nothing is retried here; callers decide.
package transport

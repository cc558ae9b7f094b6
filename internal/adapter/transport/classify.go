package transport

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"io"
	"net"
	"net/url"
	"syscall"

	"github.com/couchcryptid/weather-search/internal/domain"
)

// classifyStatus maps an HTTP status to an error kind. ok is true for 2xx.
func classifyStatus(code int) (kind domain.ErrorKind, ok bool) {
	switch {
	case code >= 200 && code < 300:
		return 0, true
	case code == 401:
		return domain.KindUnauthorized, false
	case code == 403:
		return domain.KindForbidden, false
	case code == 404:
		return domain.KindNotFound, false
	case code == 429:
		return domain.KindRateLimited, false
	case code == 503:
		return domain.KindServiceUnavailable, false
	case code >= 500 && code < 600:
		return domain.KindServerError, false
	default:
		return domain.KindUnknown, false
	}
}

// connectivityErrnos are the socket errors that mean the network itself is
// unusable: refused, unreachable, or a connection lost mid-flight.
var connectivityErrnos = []syscall.Errno{
	syscall.ECONNREFUSED,
	syscall.ECONNRESET,
	syscall.ECONNABORTED,
	syscall.EHOSTUNREACH,
	syscall.ENETUNREACH,
	syscall.ENETDOWN,
	syscall.EPIPE,
}

// classifyTransportError maps an error from http.Client.Do or a body read.
// Connectivity is checked first, then deadlines; everything else is unknown.
// The returned cause never carries the request URL.
func classifyTransportError(err error) *domain.NetworkError {
	switch {
	case isConnectivity(err):
		return domain.NewNetworkError(domain.KindNetworkFailure, withoutURL(err))
	case isTimeout(err):
		return domain.NewNetworkError(domain.KindTimeout, withoutURL(err))
	default:
		return domain.NewNetworkError(domain.KindUnknown, withoutURL(err))
	}
}

// withoutURL drops a *url.Error wrapper. Its message repeats the full request
// URL, query string and API key included.
func withoutURL(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return ue.Err
	}
	return err
}

func isConnectivity(err error) bool {
	for _, errno := range connectivityErrnos {
		if errors.Is(err, errno) {
			return true
		}
	}

	// Connection dropped before a full response arrived.
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return true
	}

	// A shared connection closed underneath this request.
	if errors.Is(err, net.ErrClosed) {
		return true
	}

	// Resolver could not be reached at all. An unknown host is not a
	// connectivity failure.
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return dnsErr.IsTemporary && !dnsErr.IsNotFound && !dnsErr.IsTimeout
	}

	return isTLSFailure(err)
}

func isTLSFailure(err error) bool {
	var (
		recordErr  tls.RecordHeaderError
		alertErr   tls.AlertError
		verifyErr  *tls.CertificateVerificationError
		unknownCA  x509.UnknownAuthorityError
		hostErr    x509.HostnameError
		invalidErr x509.CertificateInvalidError
	)
	return errors.As(err, &recordErr) ||
		errors.As(err, &alertErr) ||
		errors.As(err, &verifyErr) ||
		errors.As(err, &unknownCA) ||
		errors.As(err, &hostErr) ||
		errors.As(err, &invalidErr)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

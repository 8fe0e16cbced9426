package probe

import (
	"context"
	"errors"
	"net"
	"strings"
)

// Chromium reports DNS failures as navigation errors carrying this reason.
const chromeNameNotResolved = "ERR_NAME_NOT_RESOLVED"

// IsNameNotResolved reports whether err means the host did not resolve,
// which for a fresh deployment usually means it is still being built.
func IsNameNotResolved(err error) bool {
	if err == nil {
		return false
	}
	var de *net.DNSError
	if errors.As(err, &de) && de.IsNotFound {
		return true
	}
	return strings.Contains(err.Error(), chromeNameNotResolved)
}

// Classify maps a load error to a result kind. A nil error is not a failure
// kind and yields "".
func Classify(err error) Kind {
	switch {
	case err == nil:
		return ""
	case IsNameNotResolved(err):
		return KindNameNotResolved
	default:
		return KindFailed
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

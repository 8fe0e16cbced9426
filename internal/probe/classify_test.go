package probe

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"testing"
	"testing/quick"
)

func TestClassify_NameNotResolvedForAnyMessage(t *testing.T) {
	f := func(before, after string) bool {
		err := errors.New(before + "net::ERR_NAME_NOT_RESOLVED" + after)
		return Classify(err) == KindNameNotResolved
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}

func TestClassify_OtherErrorsAreGeneric(t *testing.T) {
	f := func(msg string) bool {
		if strings.Contains(msg, chromeNameNotResolved) {
			return true
		}
		return Classify(errors.New(msg)) == KindFailed
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}

func TestClassify_WrappedDNSError(t *testing.T) {
	dns := &net.DNSError{Err: "no such host", Name: "nope.invalid", IsNotFound: true}
	err := fmt.Errorf("get https://nope.invalid: %w", dns)
	if got := Classify(err); got != KindNameNotResolved {
		t.Fatalf("want %s, got %s", KindNameNotResolved, got)
	}

	temp := &net.DNSError{Err: "server misbehaving", Name: "x", IsTemporary: true}
	if got := Classify(temp); got != KindFailed {
		t.Fatalf("temporary DNS failure should be generic, got %s", got)
	}
	if Classify(nil) != "" {
		t.Fatalf("nil error should not classify")
	}
}

func TestIsTimeout(t *testing.T) {
	if !isTimeout(fmt.Errorf("navigate: %w", context.DeadlineExceeded)) {
		t.Fatalf("deadline should count as timeout")
	}
	if isTimeout(errors.New("connection refused")) {
		t.Fatalf("plain error is not a timeout")
	}
}

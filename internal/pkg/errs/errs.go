package errs

import (
	"fmt"
	"strings"

	cr "github.com/cockroachdb/errors"
)

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return cr.Wrapf(err, format, args...)
}

func New(msg string) error {
	return cr.New(msg)
}

func Newf(format string, args ...any) error {
	return cr.Newf(format, args...)
}

// Mark gives err the identity of markErr. A sentinel from Define also carries
// its class, so the result matches both.
func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	marked := cr.Mark(err, markErr)
	var ce *classError
	if cr.As(markErr, &ce) {
		marked = cr.Mark(marked, ce.class)
	}
	return marked
}

// Is understands marks as well as the standard wrap chain.
func Is(err, reference error) bool {
	return cr.Is(err, reference)
}

func As(err error, target any) bool {
	return cr.As(err, target)
}

// Cause returns the innermost error, which carries the message meant for end users.
func Cause(err error) error {
	if err == nil {
		return nil
	}
	return cr.UnwrapAll(err)
}

func ExtractStackLines(err error, maxLines int) []string {
	if err == nil {
		return nil
	}
	s := fmt.Sprintf("%+v", err)
	lines := strings.Split(s, "\n")
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}

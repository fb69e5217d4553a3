package logging

import (
	"strings"
	"testing"
)

// testWriter forwards encoded log lines to a testing.TB so they are associated with the test
// that produced them.
type testWriter struct {
	tb testing.TB
}

func (tw testWriter) Write(p []byte) (int, error) {
	tw.tb.Helper()
	tw.tb.Log(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}

func (tw testWriter) Sync() error {
	return nil
}

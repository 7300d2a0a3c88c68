// Package test holds assertions shared by the package tests
package test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// AssertWantErr checks err against the expected message wantErr, an empty
// wantErr meaning no error. It returns true if an error was received.
func AssertWantErr(err error, wantErr, caller string, t *testing.T) bool {
	t.Helper()
	if err != nil {
		if wantErr != err.Error() {
			t.Errorf("%s error = %v, wantErr %q", caller, err, wantErr)
		}

		return true
	} else if wantErr != "" {
		t.Errorf("%s expected error %q, did not receive an error", caller, wantErr)
		return true
	}

	return false
}

// AssertJSONEqual compares two JSON documents ignoring key order and
// whitespace
func AssertJSONEqual(have, want []byte, caller string, t *testing.T) {
	t.Helper()
	var h, w interface{}
	if err := json.Unmarshal(have, &h); err != nil {
		t.Fatalf("%s: bad json %q: %v", caller, have, err)
	}
	if err := json.Unmarshal(want, &w); err != nil {
		t.Fatalf("%s: bad expected json %q: %v", caller, want, err)
	}
	if !cmp.Equal(h, w) {
		t.Errorf("%s: json mismatch (-want +have):\n%s", caller, cmp.Diff(w, h))
	}
}

package exceptions

import (
	"errors"
	"testing"
)

func TestNewWithoutDSN(t *testing.T) {
	r, err := New("", "test")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := r.(*NoopReporter); !ok {
		t.Fatalf("have %T, want *NoopReporter", r)
	}
	r.ReportException(errors.New("ignored"), map[string]string{"rid": "1"})
}

func TestNewBadDSN(t *testing.T) {
	if _, err := New("not a dsn", "test"); err == nil {
		t.Fatal("want error for malformed dsn")
	}
}

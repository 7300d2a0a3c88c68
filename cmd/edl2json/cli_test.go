package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/ioutil"
	"strings"
	"testing"

	"github.com/cbsinteractive/edl/test"
	"github.com/sirupsen/logrus"
)

const (
	showEDL  = "TITLE: SHOW\nFCM: NON-DROP FRAME\n001  AX V C 00:00:05:00 00:00:10:00 01:00:00:00 01:00:05:00\n* FROM CLIP NAME: CLIP\n"
	showJSON = `{"title":"SHOW","fcm":"NON-DROP FRAME","events":[{"number":1,"reel":"AX","trackType":"V","transition":"C",
		"sourceStart":{"hours":0,"minutes":0,"seconds":5,"frames":0,"frameRate":25},
		"sourceEnd":{"hours":0,"minutes":0,"seconds":10,"frames":0,"frameRate":25},
		"recordStart":{"hours":1,"minutes":0,"seconds":0,"frames":0,"frameRate":25},
		"recordEnd":{"hours":1,"minutes":0,"seconds":5,"frames":0,"frameRate":25},
		"sourceClip":"CLIP"}]}`
)

type fakeOpener map[string]string

func (o fakeOpener) Open(_ context.Context, uri string) (io.ReadCloser, error) {
	body, ok := o[uri]
	if !ok {
		return nil, errors.New("no such source")
	}
	return ioutil.NopCloser(strings.NewReader(body)), nil
}

func runApp(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	logger := logrus.New()
	logger.Out = ioutil.Discard
	src := fakeOpener{
		"show.edl":         showEDL,
		"s3://bucket/bad":  "001 AX V C 00:00:05:00\n",
		"s3://bucket/show": showEDL,
	}
	app := newCLIApp(src, logger, 25)
	out := &bytes.Buffer{}
	app.Writer = out
	app.ErrWriter = ioutil.Discard
	app.Reader = strings.NewReader(stdin)
	err := app.Run(append([]string{"edl2json"}, args...))
	return out.String(), err
}

func TestConvertFile(t *testing.T) {
	out, err := runApp(t, "", "--compact", "show.edl")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(out, "\n") != 1 {
		t.Fatalf("want one compact document, have %q", out)
	}
	test.AssertJSONEqual([]byte(out), []byte(showJSON), "show.edl", t)
}

func TestConvertStdin(t *testing.T) {
	out, err := runApp(t, showEDL)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "{\n  \"title\": \"SHOW\",") {
		t.Fatalf("want indented output, have %q", out)
	}
	test.AssertJSONEqual([]byte(out), []byte(showJSON), "stdin", t)
}

func TestConvertFrameRateFlag(t *testing.T) {
	out, err := runApp(t, "", "--compact", "--fps", "24", "show.edl")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"frameRate":24`) {
		t.Fatalf("frame rate flag ignored: %s", out)
	}
}

func TestConvertErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		args []string
		docs int
		err  string
	}{
		{"missing source", []string{"-c", "nope.edl"}, 0, "no such source"},
		{"bad event", []string{"-c", "s3://bucket/bad", "s3://bucket/show"}, 0,
			`s3://bucket/bad: line 1: edl: bad event "001 AX V C 00:00:05:00": want 8 fields, have 5`},
		{"keep going", []string{"-c", "-k", "s3://bucket/bad", "nope.edl", "s3://bucket/show"}, 1, ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			out, err := runApp(t, "", tc.args...)
			test.AssertWantErr(err, tc.err, "Run", t)
			if n := strings.Count(out, "\n"); n != tc.docs {
				t.Errorf("have %d documents, want %d: %q", n, tc.docs, out)
			}
		})
	}
}

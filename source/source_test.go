package source

import (
	"context"
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/cbsinteractive/edl/test"
)

type fakeS3 struct {
	s3iface.S3API
	objects map[string]string
	input   *s3.GetObjectInput
}

func (f *fakeS3) GetObjectWithContext(_ aws.Context, in *s3.GetObjectInput, _ ...request.Option) (*s3.GetObjectOutput, error) {
	f.input = in
	body, ok := f.objects[*in.Bucket+"/"+*in.Key]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: ioutil.NopCloser(strings.NewReader(body))}, nil
}

func TestOpenLocal(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "list.edl")
	if err := ioutil.WriteFile(name, []byte("TITLE: X\n"), 0644); err != nil {
		t.Fatal(err)
	}
	var o Opener
	for _, uri := range []string{name, "file://" + name} {
		rc, err := o.Open(context.Background(), uri)
		if err != nil {
			t.Fatalf("Open(%q): %v", uri, err)
		}
		data, _ := ioutil.ReadAll(rc)
		rc.Close()
		if string(data) != "TITLE: X\n" {
			t.Errorf("Open(%q): have %q", uri, data)
		}
	}
	if _, err := o.Open(context.Background(), filepath.Join(dir, "missing.edl")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: %v", err)
	}
}

func TestOpenS3(t *testing.T) {
	fake := &fakeS3{objects: map[string]string{"bucket/edl/show.edl": "TITLE: SHOW\n"}}
	o := Opener{S3: fake}
	rc, err := o.Open(context.Background(), "s3://bucket/edl/show.edl")
	if err != nil {
		t.Fatal(err)
	}
	defer rc.Close()
	data, _ := ioutil.ReadAll(rc)
	if string(data) != "TITLE: SHOW\n" {
		t.Fatalf("have %q", data)
	}
	if *fake.input.Bucket != "bucket" || *fake.input.Key != "edl/show.edl" {
		t.Fatalf("bad input: %v", fake.input)
	}
	if _, err := o.Open(context.Background(), "s3://bucket/nope.edl"); err == nil {
		t.Fatal("want error")
	}
}

func TestSplitS3(t *testing.T) {
	for _, tc := range []struct {
		uri, bucket, key, err string
	}{
		{"s3://b/k.edl", "b", "k.edl", ""},
		{"s3://b/dir/k.edl", "b", "dir/k.edl", ""},
		{"s3://b/", "", "", `bad s3 uri "s3://b/": want s3://bucket/key`},
		{"s3:///k.edl", "", "", `bad s3 uri "s3:///k.edl": want s3://bucket/key`},
		{"/etc/passwd", "", "", `bad s3 uri "/etc/passwd": want s3://bucket/key`},
		{"file:///etc/passwd", "", "", `bad s3 uri "file:///etc/passwd": want s3://bucket/key`},
	} {
		bucket, key, err := SplitS3(tc.uri)
		if test.AssertWantErr(err, tc.err, "SplitS3", t) {
			continue
		}
		if bucket != tc.bucket || key != tc.key {
			t.Errorf("SplitS3(%q) = %q, %q", tc.uri, bucket, key)
		}
	}
}

// Package source opens edit decision lists from local files or S3
package source

import (
	"context"
	"io"
	"net/url"
	"os"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/pkg/errors"
)

// Opener opens sources by URI. It is safe for concurrent use.
type Opener struct {
	// S3 serves s3:// URIs. When nil, a client is created on first use.
	S3     s3iface.S3API
	Region string

	once    sync.Once
	initErr error
}

// Open returns the contents of uri. s3://bucket/key is read from S3;
// anything else is a local path, with an optional file:// prefix.
func (o *Opener) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	if !strings.HasPrefix(uri, "s3://") {
		f, err := os.Open(strings.TrimPrefix(uri, "file://"))
		if err != nil {
			return nil, errors.Wrap(err, "opening source")
		}
		return f, nil
	}
	bucket, key, err := SplitS3(uri)
	if err != nil {
		return nil, err
	}
	o.once.Do(func() {
		if o.S3 != nil {
			return
		}
		sess, err := session.NewSession(aws.NewConfig().WithRegion(o.Region))
		if err != nil {
			o.initErr = errors.Wrap(err, "creating aws session")
			return
		}
		o.S3 = s3.New(sess)
	})
	if o.initErr != nil {
		return nil, o.initErr
	}
	out, err := o.S3.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "fetching %s", uri)
	}
	return out.Body, nil
}

// SplitS3 returns the bucket and key of an s3://bucket/key URI
func SplitS3(uri string) (bucket, key string, err error) {
	if !strings.HasPrefix(uri, "s3://") {
		return "", "", errors.Errorf("bad s3 uri %q: want s3://bucket/key", uri)
	}
	u, err := url.Parse(uri)
	if err != nil {
		return "", "", errors.Wrap(err, "parsing source uri")
	}
	key = strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return "", "", errors.Errorf("bad s3 uri %q: want s3://bucket/key", uri)
	}
	return u.Host, key, nil
}

// Package service exposes the edit decision list parser over HTTP
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/cbsinteractive/edl/config"
	"github.com/cbsinteractive/edl/db"
	"github.com/cbsinteractive/edl/edl"
	"github.com/cbsinteractive/edl/service/exceptions"
	"github.com/cbsinteractive/edl/source"
	"github.com/cbsinteractive/edl/timecode"
	splice "github.com/cbsinteractive/pkg/timecode"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var ErrSource = errors.New("source error")
var ErrStorage = errors.New("storage error")

// Opener opens an edit decision list by URI
type Opener interface {
	Open(ctx context.Context, uri string) (io.ReadCloser, error)
}

type Server struct {
	Config      *config.Config
	DB          db.Repository
	Source      Opener
	Logger      *logrus.Logger
	ErrReporter exceptions.Reporter

	// NewID names stored lists; uuid.NewString when nil
	NewID func() string

	request
}

// ListResponse is returned when a list is stored or fetched
type ListResponse struct {
	ID string `json:"id"`
	*edl.List
	SourceSplice splice.Splice `json:"sourceSplice"`
}

func (s Server) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	s.request = newRequest(rw, r, s.Logger, s.Config.Server.MaxBodyLen)
	defer s.request.finalize()
	s.serve()
}

func (s *Server) serve() bool {
	switch s.chop() {
	case "edls":
		id := s.chop()
		switch {
		case s.method() == "POST" && id == "":
			resp, err := s.putList0()
			if err != nil {
				return s.fail("put edl failed", err)
			}
			s.w.Header().Set("Content-Type", "application/json")
			s.w.WriteHeader(http.StatusCreated)
			return s.writebody(resp)
		case s.method() == "GET" && id != "":
			resp, err := s.getList0(id)
			if err != nil {
				return s.fail("get edl failed", err)
			}
			return s.writebody(resp)
		}
		return s.writeerror("method not allowed", http.StatusMethodNotAllowed, nil)
	case "events":
		if s.method() != "POST" {
			return s.writeerror("method not allowed", http.StatusMethodNotAllowed, nil)
		}
		out, err := s.event0()
		if err != nil {
			return s.fail("parse event failed", err)
		}
		return s.writebody(out)
	case "healthz":
		return s.writebody(map[string]bool{"ok": true})
	default:
		s.writeerror("bad request path", 400, nil)
	}
	return false
}

func (s *Server) putList0() (*ListResponse, error) {
	var body io.Reader
	if uri := s.r.URL.Query().Get("source"); uri != "" {
		if err := s.checkSource(uri); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSource, err)
		}
		rc, err := s.Source.Open(s.ctx, uri)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSource, err)
		}
		defer rc.Close()
		body = rc
	} else {
		data := s.Body()
		if !s.ok() {
			return nil, s.err
		}
		body = bytes.NewReader(data)
	}
	l, err := edl.Decode(body, s.Config.FrameRate)
	if err != nil {
		return nil, err
	}
	id := s.newID()
	if err = s.DB.SaveList(id, l); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return &ListResponse{ID: id, List: l, SourceSplice: l.SourceSplice()}, nil
}

// checkSource admits only s3:// URIs in a configured source bucket
func (s *Server) checkSource(uri string) error {
	bucket, _, err := source.SplitS3(uri)
	if err != nil {
		return err
	}
	for _, b := range s.Config.SourceBuckets {
		if b == bucket {
			return nil
		}
	}
	return fmt.Errorf("bucket %q is not a source bucket", bucket)
}

func (s *Server) getList0(id string) (*ListResponse, error) {
	l, err := s.DB.GetList(id)
	if errors.Is(err, db.ErrNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return &ListResponse{ID: id, List: l, SourceSplice: l.SourceSplice()}, nil
}

// event0 builds one event from a JSON line or record and returns its
// serialized export; ?compact=false indents the output
func (s *Server) event0() (string, error) {
	data := s.Body()
	if !s.ok() {
		return "", s.err
	}
	var e edl.Event
	if err := json.Unmarshal(data, &e); err != nil {
		return "", err
	}
	compact := true
	if v := s.r.URL.Query().Get("compact"); v != "" {
		compact, _ = strconv.ParseBool(v)
	}
	return e.ToJSON(compact)
}

func (s *Server) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}

// fail writes err with the status its kind maps to, reporting server
// side failures
func (s *Server) fail(msg string, err error) bool {
	code := status(err)
	if code >= 500 && s.ErrReporter != nil {
		s.ErrReporter.ReportException(err, map[string]string{
			"rid":  strconv.FormatUint(s.rid, 10),
			"path": s.r.URL.Path,
		})
	}
	return s.writeerror(msg, code, err)
}

func status(err error) int {
	var (
		fe  *edl.FormatError
		tm  *edl.TypeMismatchError
		tfe *timecode.FormatError
		tre *timecode.RangeError
		se  *json.SyntaxError
		ute *json.UnmarshalTypeError
	)
	switch {
	case errors.Is(err, db.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrSource),
		errors.As(err, &fe), errors.As(err, &tm), errors.As(err, &tfe), errors.As(err, &tre),
		errors.As(err, &se), errors.As(err, &ute):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *Server) method() string {
	return s.request.r.Method
}

// PlatformError implements a well-known error response for http clients
// encountering an error when using the service.
type PlatformError struct {
	Ok     bool   `json:"ok"`
	Status int    `json:"status"`
	Rid    uint64 `json:"rid"`
	Msg    string `json:"msg,omitempty"`
}

// String returns the json-formatted platform response
func (p PlatformError) String() string {
	data, _ := json.Marshal(p)
	return string(data)
}

package db

import (
	"github.com/cbsinteractive/edl/edl"
	"github.com/cbsinteractive/edl/timecode"
	"github.com/pkg/errors"
)

const keyPrefix = "edl:"

// Repository stores decoded edit lists by id
type Repository struct {
	Store Store
}

// storedList is the form a List takes in the store. Unlike the exported
// form its timecodes keep their drop-frame flag.
type storedList struct {
	Title  string        `json:"title,omitempty"`
	FCM    string        `json:"fcm,omitempty"`
	Events []storedEvent `json:"events"`
}

type storedEvent struct {
	edl.Record
	MotionEffect *storedMotion `json:"motionEffect,omitempty"`
}

type storedMotion struct {
	Reel       string          `json:"reel"`
	Speed      float64         `json:"speed"`
	EntryPoint timecode.Stored `json:"entryPoint"`
}

// Key returns the storage key of the list id
func Key(id string) string {
	return keyPrefix + id
}

// SaveList stores l under id, replacing any previous list
func (r Repository) SaveList(id string, l *edl.List) error {
	if id == "" {
		return errors.New("edit list id missing")
	}
	s := storedList{Title: l.Title, FCM: l.FCM, Events: make([]storedEvent, 0, len(l.Events))}
	for _, e := range l.Events {
		ev := storedEvent{Record: e.Record()}
		ev.Record.MotionEffect = nil
		if m := e.MotionEffect; m != nil {
			ev.MotionEffect = &storedMotion{Reel: m.Reel, Speed: m.Speed, EntryPoint: m.EntryPoint.Stored()}
		}
		s.Events = append(s.Events, ev)
	}
	return errors.Wrapf(r.Store.Put(Key(id), s), "saving edit list %s", id)
}

// GetList loads the list stored under id. A missing list yields an
// error matching ErrNotFound.
func (r Repository) GetList(id string) (*edl.List, error) {
	var s storedList
	if err := r.Store.Get(Key(id), &s); err != nil {
		return nil, errors.Wrapf(err, "loading edit list %s", id)
	}
	l := &edl.List{Title: s.Title, FCM: s.FCM, Events: make([]*edl.Event, 0, len(s.Events))}
	for i, ev := range s.Events {
		e, err := edl.FromRecord(ev.Record, 0)
		if err != nil {
			return nil, errors.Wrapf(err, "loading edit list %s: event %d", id, i)
		}
		if m := ev.MotionEffect; m != nil {
			entry, err := timecode.FromStored(m.EntryPoint)
			if err != nil {
				return nil, errors.Wrapf(err, "loading edit list %s: event %d", id, i)
			}
			e.MotionEffect = &edl.MotionEffect{Reel: m.Reel, Speed: m.Speed, EntryPoint: entry}
		}
		l.Events = append(l.Events, e)
	}
	return l, nil
}

package listutil

import (
	"errors"
	"net/url"
	"strconv"
)

// DefaultLimit is the window size when no limit is given.
const DefaultLimit = 100

// MaxLimit caps a requested window.
const MaxLimit = 1000

// ErrInvalidWindow is returned for a skip or limit that is not a non-negative integer.
var ErrInvalidWindow = errors.New("skip and limit must be non-negative integers")

// Window carries skip/limit list parameters parsed from a request.
type Window struct {
	Skip  int
	Limit int
}

// ParseWindow extracts skip and limit from URL query values.
// PRE: none
// POST: on success Skip >= 0 and 0 < Limit <= MaxLimit; absent values take the defaults
func ParseWindow(q url.Values) (Window, error) {
	w := Window{Limit: DefaultLimit}
	if v := q.Get("skip"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return Window{}, ErrInvalidWindow
		}
		w.Skip = n
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return Window{}, ErrInvalidWindow
		}
		if n > 0 {
			w.Limit = min(n, MaxLimit)
		}
	}
	return w, nil
}

// Query renders w as URL query values, omitting defaults.
func (w Window) Query() url.Values {
	q := url.Values{}
	if w.Skip > 0 {
		q.Set("skip", strconv.Itoa(w.Skip))
	}
	if w.Limit > 0 && w.Limit != DefaultLimit {
		q.Set("limit", strconv.Itoa(w.Limit))
	}
	return q
}

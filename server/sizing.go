package server

import (
	"fmt"
	"net/url"
	"strconv"
)

// Sizing are the preview output knobs taken from the request query.
type Sizing struct {
	Width   int
	Quality int
	Half    bool
}

func NewSizingFromQuery(q url.Values, cf *Config) (*Sizing, error) {
	sz := &Sizing{
		Quality: cf.Preview.Quality,
		Half:    cf.Preview.HalfSize,
	}

	if v := q.Get("width"); v != "" {
		w, err := strconv.Atoi(v)
		if err != nil || w < 1 || w > cf.Preview.MaxWidth {
			return nil, fmt.Errorf("invalid width %q", v)
		}
		sz.Width = w
	}
	if v := q.Get("quality"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 100 {
			return nil, fmt.Errorf("invalid quality %q", v)
		}
		sz.Quality = n
	}
	if v := q.Get("half"); v != "" {
		sz.Half = v != "0" && v != "false"
	}

	return sz, nil
}

package rawpix

import "fmt"

// Source locates the raw bytes for a single decode call: either a file
// path or an in-memory buffer, never both. The zero Source is invalid and
// fails at Open time.
type Source struct {
	path string
	buf  []byte
}

func FileSource(path string) Source {
	return Source{path: path}
}

func BufferSource(b []byte) Source {
	return Source{buf: b}
}

// Path returns the file path variant, if set.
func (s Source) Path() (string, bool) {
	return s.path, s.path != ""
}

// Buffer returns the in-memory variant, if set.
func (s Source) Buffer() ([]byte, bool) {
	return s.buf, s.buf != nil
}

func (s Source) String() string {
	if s.path != "" {
		return s.path
	}
	if s.buf != nil {
		return fmt.Sprintf("buffer[%d bytes]", len(s.buf))
	}
	return "<empty>"
}

package stream

type errorSource struct {
	err error
}

// NewErrorSource creates a Source that returns the same error for
// every read. This can be used in places where a Source needs to be
// returned, but where it is already known that it cannot be opened.
func NewErrorSource(err error) Source {
	return &errorSource{err: err}
}

func (s *errorSource) Read(p []byte) (int, error) {
	return 0, s.err
}

func (s *errorSource) ReadByte() (byte, error) {
	return 0, s.err
}

func (s *errorSource) Close() error {
	return nil
}

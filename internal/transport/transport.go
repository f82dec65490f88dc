package transport

// Source is a byte stream consumed in chunks of arbitrary size. A returned chunk stays
// valid until the next call to Read. A non-nil error may come together with data.
type Source interface {
	Read() ([]byte, error)
}

// Lines is a forward-only sequence of header section lines. Next returns false once the
// section is over; Err tells whether it ended because of a failure.
type Lines interface {
	Next() (line []byte, ok bool)
	Err() error
}

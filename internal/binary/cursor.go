package binary

// Reader provides sequential reading with an explicit, owned offset.
//
// Sub-parsers thread a Reader (or a derived one) through their field
// reads instead of sharing ambient stream position; the container walk
// repositions by constructing fresh Readers at known offsets.
type Reader struct {
	*SafeReader
	offset int64
}

// NewReader creates a new Reader starting at the given offset.
func NewReader(sr *SafeReader, offset int64) *Reader {
	return &Reader{
		SafeReader: sr,
		offset:     offset,
	}
}

// ReadValue reads a numeric value with the given byte order and
// advances the offset.
func ReadValue[T uint8 | uint16 | uint32 | uint64](r *Reader, what string, endian Endianness) (T, error) {
	val, err := ReadEndian[T](r.SafeReader, r.offset, what, endian)
	if err != nil {
		var zero T
		return zero, err
	}

	var size int64
	var zero T
	switch any(zero).(type) {
	case uint8:
		size = 1
	case uint16:
		size = 2
	case uint32:
		size = 4
	case uint64:
		size = 8
	}

	r.offset += size
	return val, nil
}

// ReadValueLE reads a little-endian numeric value and advances the offset.
func ReadValueLE[T uint8 | uint16 | uint32 | uint64](r *Reader, what string) (T, error) {
	return ReadValue[T](r, what, LittleEndian)
}

// ReadValueBE reads a big-endian numeric value and advances the offset.
func ReadValueBE[T uint8 | uint16 | uint32 | uint64](r *Reader, what string) (T, error) {
	return ReadValue[T](r, what, BigEndian)
}

// ReadBytes reads length raw bytes and advances the offset.
func (r *Reader) ReadBytes(length int, what string) ([]byte, error) {
	buf := make([]byte, length)
	if err := r.SafeReader.ReadAt(buf, r.offset, what); err != nil {
		return nil, err
	}

	r.offset += int64(length)
	return buf, nil
}

// ReadString reads a string of the given length and advances the offset.
func (r *Reader) ReadString(length int, what string) (string, error) {
	buf, err := r.ReadBytes(length, what)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// Skip advances the offset by n bytes.
func (r *Reader) Skip(n int64) {
	r.offset += n
}

// Offset returns the current offset.
func (r *Reader) Offset() int64 {
	return r.offset
}

// Remaining returns the number of bytes between the current offset and
// the end of the stream.
func (r *Reader) Remaining() int64 {
	return r.Size() - r.offset
}

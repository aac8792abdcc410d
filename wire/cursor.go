// Package wire provides the little-endian byte cursor primitive that the
// fcbuffer codec engine treats as an external collaborator: fixed-width
// integer read/write, LEB128 variable-length integers with zig-zag signed
// encoding, and length-prefixed byte blocks.
package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrIllegalOffset is returned when a read would run past the end of the
// underlying buffer.
var ErrIllegalOffset = errors.New("illegal offset")

// Writer accumulates a canonical byte stream. A Writer must not be shared
// across concurrent encode operations.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer { return &Writer{} }

// Bytes returns the accumulated stream. The slice is owned by the Writer;
// callers that retain it across further writes should copy it.
func (w *Writer) Bytes() []byte { return w.buf }

// Len returns the number of bytes written so far.
func (w *Writer) Len() int { return len(w.buf) }

// WriteUint8 appends a single byte.
func (w *Writer) WriteUint8(v uint8) { w.buf = append(w.buf, v) }

// WriteInt8 appends a single byte.
func (w *Writer) WriteInt8(v int8) { w.WriteUint8(uint8(v)) }

// WriteUint16 appends v little-endian.
func (w *Writer) WriteUint16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// WriteInt16 appends v little-endian.
func (w *Writer) WriteInt16(v int16) { w.WriteUint16(uint16(v)) }

// WriteUint32 appends v little-endian.
func (w *Writer) WriteUint32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// WriteInt32 appends v little-endian.
func (w *Writer) WriteInt32(v int32) { w.WriteUint32(uint32(v)) }

// WriteUint64 appends v little-endian.
func (w *Writer) WriteUint64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// WriteInt64 appends v little-endian.
func (w *Writer) WriteInt64(v int64) { w.WriteUint64(uint64(v)) }

// WriteUvarint appends v as an unsigned LEB128 varint.
func (w *Writer) WriteUvarint(v uint64) {
	var b [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(b[:], v)
	w.buf = append(w.buf, b[:n]...)
}

// WriteVarint appends v as a zig-zag-encoded signed LEB128 varint.
func (w *Writer) WriteVarint(v int64) {
	var b [binary.MaxVarintLen64]byte
	n := binary.PutVarint(b[:], v)
	w.buf = append(w.buf, b[:n]...)
}

// WriteRaw appends p verbatim, with no length prefix. Used for fixed-width
// fields that carry their length in the schema rather than on the wire.
func (w *Writer) WriteRaw(p []byte) { w.buf = append(w.buf, p...) }

// WriteLengthPrefixed writes a varuint32 length followed by p. Used for
// bytes and string fields.
func (w *Writer) WriteLengthPrefixed(p []byte) {
	w.WriteUvarint(uint64(len(p)))
	w.WriteRaw(p)
}

// Reader walks a byte slice left to right. A Reader must not be shared
// across concurrent decode operations.
type Reader struct {
	buf []byte
	off int
}

// NewReader returns a Reader positioned at the start of buf.
func NewReader(buf []byte) *Reader { return &Reader{buf: buf} }

// Tell returns the current offset.
func (r *Reader) Tell() int { return r.off }

// Seek moves the cursor to an absolute offset.
func (r *Reader) Seek(off int) error {
	if off < 0 || off > len(r.buf) {
		return fmt.Errorf("%w: seek to %d (len %d)", ErrIllegalOffset, off, len(r.buf))
	}
	r.off = off
	return nil
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.buf) - r.off }

func (r *Reader) take(n int) ([]byte, error) {
	if n < 0 || r.off+n > len(r.buf) {
		return nil, fmt.Errorf("%w: read %d bytes at offset %d (len %d)", ErrIllegalOffset, n, r.off, len(r.buf))
	}
	p := r.buf[r.off : r.off+n]
	r.off += n
	return p, nil
}

// ReadUint8 reads a single byte.
func (r *Reader) ReadUint8() (uint8, error) {
	p, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return p[0], nil
}

// ReadInt8 reads a single byte.
func (r *Reader) ReadInt8() (int8, error) {
	v, err := r.ReadUint8()
	return int8(v), err
}

// ReadUint16 reads a little-endian uint16.
func (r *Reader) ReadUint16() (uint16, error) {
	p, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(p), nil
}

// ReadInt16 reads a little-endian int16.
func (r *Reader) ReadInt16() (int16, error) {
	v, err := r.ReadUint16()
	return int16(v), err
}

// ReadUint32 reads a little-endian uint32.
func (r *Reader) ReadUint32() (uint32, error) {
	p, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(p), nil
}

// ReadInt32 reads a little-endian int32.
func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

// ReadUint64 reads a little-endian uint64.
func (r *Reader) ReadUint64() (uint64, error) {
	p, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(p), nil
}

// ReadInt64 reads a little-endian int64.
func (r *Reader) ReadInt64() (int64, error) {
	v, err := r.ReadUint64()
	return int64(v), err
}

// ReadUvarint reads an unsigned LEB128 varint.
func (r *Reader) ReadUvarint() (uint64, error) {
	v, n := binary.Uvarint(r.buf[r.off:])
	if n <= 0 {
		return 0, fmt.Errorf("%w: malformed varint at offset %d", ErrIllegalOffset, r.off)
	}
	r.off += n
	return v, nil
}

// ReadVarint reads a zig-zag-encoded signed LEB128 varint.
func (r *Reader) ReadVarint() (int64, error) {
	v, n := binary.Varint(r.buf[r.off:])
	if n <= 0 {
		return 0, fmt.Errorf("%w: malformed varint at offset %d", ErrIllegalOffset, r.off)
	}
	r.off += n
	return v, nil
}

// ReadRaw reads exactly n raw bytes. Used for fixed-width fields.
func (r *Reader) ReadRaw(n int) ([]byte, error) { return r.take(n) }

// ReadLengthPrefixed reads a varuint32 length followed by that many bytes.
func (r *Reader) ReadLengthPrefixed() ([]byte, error) {
	n, err := r.ReadUvarint()
	if err != nil {
		return nil, err
	}
	return r.take(int(n))
}

// CopyRange returns an independent copy of buf[start:end).
func (r *Reader) CopyRange(start, end int) ([]byte, error) {
	if start < 0 || end > len(r.buf) || start > end {
		return nil, fmt.Errorf("%w: range [%d:%d) (len %d)", ErrIllegalOffset, start, end, len(r.buf))
	}
	out := make([]byte, end-start)
	copy(out, r.buf[start:end])
	return out, nil
}

// Package wire encodes and decodes the fixed-layout binary Announcement
// record exchanged between nodes on the wire.
package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/luxfi/parity/overlay"
)

// TagSlots is the fixed number of parity-tag slots in an encoded record.
const TagSlots = 32

// TagWidth is the zero-padded byte width of each tag slot.
const TagWidth = 64

// SignatureWidth is the zero-padded byte width of the signature field.
const SignatureWidth = 64

// RecordSize is the total encoded size of an Announcement record:
// node_id(4) + parity_count(4) + tags(TagSlots*TagWidth) + load_factor(8)
// + timestamp(8) + signature(SignatureWidth).
const RecordSize = 4 + 4 + TagSlots*TagWidth + 8 + 8 + SignatureWidth

// ErrTagTooLong is returned when a parity tag doesn't fit in TagWidth
// bytes.
var ErrTagTooLong = fmt.Errorf("wire: parity tag exceeds %d bytes", TagWidth)

// ErrTooManyTags is returned when an announcement carries more tags
// than TagSlots can hold.
var ErrTooManyTags = fmt.Errorf("wire: more than %d parity tags", TagSlots)

// ErrSignatureTooLong is returned when a signature doesn't fit in
// SignatureWidth bytes.
var ErrSignatureTooLong = fmt.Errorf("wire: signature exceeds %d bytes", SignatureWidth)

// ErrShortRecord is returned when a reader ends before RecordSize bytes,
// or when DecodeBytes is given a buffer that is not exactly RecordSize
// bytes long.
var ErrShortRecord = errors.New("wire: record is not RecordSize bytes")

func putFixedString(buf []byte, s string) error {
	if len(s) > len(buf) {
		return fmt.Errorf("string %q exceeds %d bytes", s, len(buf))
	}
	copy(buf, s)
	for i := len(s); i < len(buf); i++ {
		buf[i] = 0
	}
	return nil
}

func getFixedString(buf []byte) string {
	end := bytes.IndexByte(buf, 0)
	if end < 0 {
		end = len(buf)
	}
	return string(buf[:end])
}

// Encode writes ann's fixed-layout little-endian wire record to w.
func Encode(w io.Writer, ann overlay.Announcement) error {
	if len(ann.ParityTags) > TagSlots {
		return ErrTooManyTags
	}
	if len(ann.Signature) > SignatureWidth {
		return ErrSignatureTooLong
	}

	buf := make([]byte, RecordSize)
	off := 0

	binary.LittleEndian.PutUint32(buf[off:], uint32(ann.NodeID))
	off += 4
	binary.LittleEndian.PutUint32(buf[off:], uint32(ann.ParityCount))
	off += 4

	for i := 0; i < TagSlots; i++ {
		slot := buf[off : off+TagWidth]
		if i < len(ann.ParityTags) {
			if len(ann.ParityTags[i]) > TagWidth {
				return ErrTagTooLong
			}
			if err := putFixedString(slot, ann.ParityTags[i]); err != nil {
				return err
			}
		}
		off += TagWidth
	}

	binary.LittleEndian.PutUint64(buf[off:], math.Float64bits(ann.LoadFactor))
	off += 8
	binary.LittleEndian.PutUint64(buf[off:], uint64(ann.Timestamp))
	off += 8

	if err := putFixedString(buf[off:off+SignatureWidth], ann.Signature); err != nil {
		return err
	}
	off += SignatureWidth

	_, err := w.Write(buf[:off])
	return err
}

// Decode reads a fixed-layout wire record from r and returns the
// decoded Announcement.
func Decode(r io.Reader) (overlay.Announcement, error) {
	buf := make([]byte, RecordSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return overlay.Announcement{}, ErrShortRecord
		}
		return overlay.Announcement{}, err
	}
	return DecodeBytes(buf)
}

// DecodeBytes decodes a single fixed-layout record from buf, which must
// be exactly RecordSize bytes.
func DecodeBytes(buf []byte) (overlay.Announcement, error) {
	if len(buf) != RecordSize {
		return overlay.Announcement{}, ErrShortRecord
	}
	off := 0
	nodeID := int(int32(binary.LittleEndian.Uint32(buf[off:])))
	off += 4
	parityCount := int(int32(binary.LittleEndian.Uint32(buf[off:])))
	off += 4

	tags := make([]string, 0, parityCount)
	for i := 0; i < TagSlots; i++ {
		slot := buf[off : off+TagWidth]
		off += TagWidth
		if i < parityCount {
			tags = append(tags, getFixedString(slot))
		}
	}

	loadFactor := math.Float64frombits(binary.LittleEndian.Uint64(buf[off:]))
	off += 8
	timestamp := int64(binary.LittleEndian.Uint64(buf[off:]))
	off += 8
	signature := getFixedString(buf[off : off+SignatureWidth])

	return overlay.Announcement{
		NodeID:      nodeID,
		ParityTags:  tags,
		ParityCount: parityCount,
		LoadFactor:  loadFactor,
		Timestamp:   timestamp,
		Signature:   signature,
	}, nil
}

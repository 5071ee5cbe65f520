package dns

import (
	"encoding/binary"
	"fmt"

	"github.com/jroosing/tldclaim/internal/helpers"
)

// rrFixedSize is TYPE(2) + CLASS(2) + TTL(4) + RDLENGTH(2).
const rrFixedSize = 10

// ResourceRecord is a single resource record in wire layout (RFC 1035 Section 3.2.1).
// Data holds the raw RDATA; typed views such as TXTStrings interpret it on demand.
type ResourceRecord struct {
	Name  Name
	Type  RecordType
	Class RecordClass
	TTL   uint32
	Data  []byte
}

// NewTXTRecord builds an IN-class TXT record from its text chunks.
func NewTXTRecord(name Name, ttl uint32, text ...string) (ResourceRecord, error) {
	rdata, err := EncodeTXTStrings(text)
	if err != nil {
		return ResourceRecord{}, err
	}
	return ResourceRecord{Name: name, Type: TypeTXT, Class: ClassIN, TTL: ttl, Data: rdata}, nil
}

// TXTStrings decodes the record's RDATA as TXT character-strings.
func (rr ResourceRecord) TXTStrings() ([][]byte, error) {
	if rr.Type != TypeTXT {
		return nil, fmt.Errorf("%w: %s record has no TXT data", ErrDNSError, rr.Type)
	}
	return DecodeTXTStrings(rr.Data)
}

// DecodeResourceRecord parses one resource record from wire format.
// It advances *off past the parsed record on success and leaves it untouched on error.
func DecodeResourceRecord(msg []byte, off *int) (ResourceRecord, error) {
	pos := *off
	name, err := DecodeName(msg, &pos)
	if err != nil {
		return ResourceRecord{}, err
	}
	if pos+rrFixedSize > len(msg) {
		return ResourceRecord{}, fmt.Errorf("%w: fixed fields need %d bytes, %d remain",
			ErrTruncatedRecord, rrFixedSize, len(msg)-pos)
	}
	rrType := binary.BigEndian.Uint16(msg[pos : pos+2])
	rrClass := binary.BigEndian.Uint16(msg[pos+2 : pos+4])
	ttl := binary.BigEndian.Uint32(msg[pos+4 : pos+8])
	rdlen := int(binary.BigEndian.Uint16(msg[pos+8 : pos+10]))
	pos += rrFixedSize

	if pos+rdlen > len(msg) {
		return ResourceRecord{}, fmt.Errorf("%w: rdata needs %d bytes, %d remain",
			ErrTruncatedRecord, rdlen, len(msg)-pos)
	}
	data := make([]byte, rdlen)
	copy(data, msg[pos:pos+rdlen])
	pos += rdlen

	*off = pos
	return ResourceRecord{
		Name:  name,
		Type:  RecordType(rrType),
		Class: RecordClass(rrClass),
		TTL:   ttl,
		Data:  data,
	}, nil
}

// DecodeRecords parses a concatenation of resource records until msg is exhausted.
// Empty input yields no records and no error: an absent proof is a valid input.
func DecodeRecords(msg []byte) ([]ResourceRecord, error) {
	var records []ResourceRecord
	off := 0
	for off < len(msg) {
		rr, err := DecodeResourceRecord(msg, &off)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", len(records), err)
		}
		records = append(records, rr)
	}
	return records, nil
}

// EncodeResourceRecord converts a record to wire-format bytes.
func EncodeResourceRecord(rr ResourceRecord) ([]byte, error) {
	nameWire, err := EncodeName(rr.Name)
	if err != nil {
		return nil, err
	}
	if len(rr.Data) > MaxRDataLength {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrRDataTooLong, len(rr.Data), MaxRDataLength)
	}

	out := make([]byte, 0, len(nameWire)+rrFixedSize+len(rr.Data))
	out = append(out, nameWire...)
	fixed := make([]byte, rrFixedSize)
	binary.BigEndian.PutUint16(fixed[0:2], uint16(rr.Type))
	binary.BigEndian.PutUint16(fixed[2:4], uint16(rr.Class))
	binary.BigEndian.PutUint32(fixed[4:8], rr.TTL)
	binary.BigEndian.PutUint16(fixed[8:10], helpers.ClampIntToUint16(len(rr.Data)))
	out = append(out, fixed...)
	out = append(out, rr.Data...)
	return out, nil
}

// EncodeRecords concatenates the wire forms of records, the layout DecodeRecords reads.
func EncodeRecords(records ...ResourceRecord) ([]byte, error) {
	var out []byte
	for i, rr := range records {
		b, err := EncodeResourceRecord(rr)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		out = append(out, b...)
	}
	return out, nil
}

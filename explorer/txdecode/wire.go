package txdecode

import (
	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

// field is a single decoded protobuf field. Only varint and length delimited values are
// kept, the envelope does not use anything else.
type field struct {
	num   protowire.Number
	typ   protowire.Type
	bytes []byte
	value uint64
}

// readFields splits a protobuf message into its fields, in wire order
func readFields(b []byte) ([]field, error) {
	var fields []field
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, errors.Wrap(protowire.ParseError(n), "tag")
		}
		b = b[n:]

		f := field{num: num, typ: typ}
		switch typ {
		case protowire.VarintType:
			v, m := protowire.ConsumeVarint(b)
			if m < 0 {
				return nil, errors.Wrapf(protowire.ParseError(m), "field %d", num)
			}
			f.value = v
			n = m
		case protowire.BytesType:
			v, m := protowire.ConsumeBytes(b)
			if m < 0 {
				return nil, errors.Wrapf(protowire.ParseError(m), "field %d", num)
			}
			f.bytes = v
			n = m
		default:
			m := protowire.ConsumeFieldValue(num, typ, b)
			if m < 0 {
				return nil, errors.Wrapf(protowire.ParseError(m), "field %d", num)
			}
			n = m
		}
		b = b[n:]
		fields = append(fields, f)
	}
	return fields, nil
}

// stringField expects a length delimited field
func stringField(f field) (string, error) {
	if f.typ != protowire.BytesType {
		return "", errors.Errorf("field %d: expected bytes, got wire type %d", f.num, f.typ)
	}
	return string(f.bytes), nil
}

// varintField expects a varint field
func varintField(f field) (uint64, error) {
	if f.typ != protowire.VarintType {
		return 0, errors.Errorf("field %d: expected varint, got wire type %d", f.num, f.typ)
	}
	return f.value, nil
}

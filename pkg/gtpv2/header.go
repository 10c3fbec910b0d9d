package gtpv2

import "encoding/binary"

// Header flag bits of octet 1, per TS 29.274 §5.1. Unlike GTPv1 the
// length field counts everything after the first four octets.
const (
	flagMP = 0x04
	flagT  = 0x08
	flagP  = 0x10

	headerMinSize  = 8
	headerTEIDSize = 12
)

// Header is the GTPv2-C header. TEID presence is governed by the T
// flag; the sequence number is 24 bits. When the MP flag is set the
// final octet carries the message priority in its high nibble.
type Header struct {
	MsgType            uint8
	Length             uint16
	Piggyback          bool
	TEID               uint32
	HasTEID            bool
	Sequence           uint32
	MessagePriority    uint8
	HasMessagePriority bool
}

// Marshal appends the encoded header to b. Message encoders back-patch
// the length field once all IEs are written.
func (h Header) Marshal(b []byte) []byte {
	flags := uint8(0x40) // version 2
	if h.Piggyback {
		flags |= flagP
	}
	if h.HasTEID {
		flags |= flagT
	}
	if h.HasMessagePriority {
		flags |= flagMP
	}
	b = append(b, flags, h.MsgType)
	b = binary.BigEndian.AppendUint16(b, h.Length)
	if h.HasTEID {
		b = binary.BigEndian.AppendUint32(b, h.TEID)
	}
	b = append(b, uint8(h.Sequence>>16), uint8(h.Sequence>>8), uint8(h.Sequence))
	var spare uint8
	if h.HasMessagePriority {
		spare = h.MessagePriority << 4
	}
	return append(b, spare)
}

// Len reports the encoded header size in bytes.
func (h Header) Len() int {
	if h.HasTEID {
		return headerTEIDSize
	}
	return headerMinSize
}

// DecodeHeader parses a GTPv2 header from the start of b and returns it
// together with the number of bytes consumed.
func DecodeHeader(b []byte) (Header, int, error) {
	if len(b) < headerMinSize {
		return Header{}, 0, ErrHeaderInvalidLength
	}
	flags := b[0]
	if flags>>5 != 2 {
		return Header{}, 0, ErrHeaderVersionNotSupported
	}
	h := Header{
		MsgType:   b[1],
		Length:    binary.BigEndian.Uint16(b[2:4]),
		Piggyback: flags&flagP != 0,
	}
	consumed := headerMinSize
	seq := b[4:8]
	if flags&flagT != 0 {
		if len(b) < headerTEIDSize {
			return Header{}, 0, ErrHeaderInvalidLength
		}
		h.TEID = binary.BigEndian.Uint32(b[4:8])
		h.HasTEID = true
		seq = b[8:12]
		consumed = headerTEIDSize
	}
	h.Sequence = uint32(seq[0])<<16 | uint32(seq[1])<<8 | uint32(seq[2])
	if flags&flagMP != 0 {
		h.MessagePriority = seq[3] >> 4
		h.HasMessagePriority = true
	}
	return h, consumed, nil
}

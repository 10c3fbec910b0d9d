package gtpv1

import "encoding/binary"

// Header flag bits of octet 1, per TS 29.060 §6 and TS 29.281 §5.1.
const (
	flagPN = 0x01
	flagS  = 0x02
	flagE  = 0x04
	flagPT = 0x10

	headerFixedSize = 8
	headerFullSize  = 12
)

// Header is the common GTPv1 header shared by the control and user
// planes. The optional 4-byte trailer (sequence number, N-PDU number,
// next extension header type) is present on the wire whenever any of the
// S, PN or E flags is set; the individual fields are meaningful only when
// their own flag is set.
type Header struct {
	MsgType     uint8
	Length      uint16
	TEID        uint32
	Sequence    uint16
	HasSequence bool
	NPDU        uint8
	HasNPDU     bool
	ExtHeaders  []ExtHeader
}

// Marshal appends the encoded header to b. The length field is emitted
// as-is; message encoders back-patch it once all IEs are written.
func (h Header) Marshal(b []byte) []byte {
	flags := uint8(0x20) | flagPT // version 1, GTP (not GTP')
	if h.HasSequence {
		flags |= flagS
	}
	if h.HasNPDU {
		flags |= flagPN
	}
	if len(h.ExtHeaders) > 0 {
		flags |= flagE
	}
	b = append(b, flags, h.MsgType)
	b = binary.BigEndian.AppendUint16(b, h.Length)
	b = binary.BigEndian.AppendUint32(b, h.TEID)
	if flags&(flagS|flagPN|flagE) != 0 {
		b = binary.BigEndian.AppendUint16(b, h.Sequence)
		b = append(b, h.NPDU)
		b = marshalExtHeaderChain(b, h.ExtHeaders)
	}
	return b
}

// Len reports the encoded header size in bytes.
func (h Header) Len() int {
	if !h.HasSequence && !h.HasNPDU && len(h.ExtHeaders) == 0 {
		return headerFixedSize
	}
	n := headerFullSize
	for _, e := range h.ExtHeaders {
		n += e.Len()
	}
	return n
}

// DecodeHeader parses a GTPv1 header from the start of b and returns it
// together with the number of bytes consumed.
func DecodeHeader(b []byte) (Header, int, error) {
	if len(b) < headerFixedSize {
		return Header{}, 0, ErrHeaderInvalidLength
	}
	flags := b[0]
	if flags>>5 != 1 {
		return Header{}, 0, ErrHeaderVersionNotSupported
	}
	if flags&flagPT == 0 {
		return Header{}, 0, ErrHeaderFlagError
	}
	h := Header{
		MsgType: b[1],
		Length:  binary.BigEndian.Uint16(b[2:4]),
		TEID:    binary.BigEndian.Uint32(b[4:8]),
	}
	consumed := headerFixedSize
	if flags&(flagS|flagPN|flagE) != 0 {
		if len(b) < headerFullSize {
			return Header{}, 0, ErrHeaderInvalidLength
		}
		if flags&flagS != 0 {
			h.Sequence = binary.BigEndian.Uint16(b[8:10])
			h.HasSequence = true
		}
		if flags&flagPN != 0 {
			h.NPDU = b[10]
			h.HasNPDU = true
		}
		consumed = headerFullSize
		if flags&flagE != 0 {
			ext, n, err := decodeExtHeaderChain(b[11:])
			if err != nil {
				return Header{}, 0, err
			}
			if len(ext) == 0 {
				return Header{}, 0, ErrHeaderFlagError
			}
			h.ExtHeaders = ext
			consumed = 11 + n
		} else if b[11] != NoMoreExtensionHeaders {
			return Header{}, 0, ErrHeaderFlagError
		}
	}
	return h, consumed, nil
}

// requireSequence validates the S flag for message types that mandate it
// (Error Indication, Supported Extension Headers Notification).
func (h Header) requireSequence() error {
	if !h.HasSequence {
		return ErrMandatoryHeaderFlag
	}
	return nil
}

package gtpv1

import "encoding/binary"

// Extension header types, per TS 29.060 §6.1 and TS 29.281 §5.2.
const (
	NoMoreExtensionHeaders   uint8 = 0x00
	ExtMBMSSupportIndication uint8 = 0x01
	ExtMSInfoChangeReporting uint8 = 0x02
	ExtServiceClassIndicator uint8 = 0x20
	ExtUDPPort               uint8 = 0x40
	ExtRANContainer          uint8 = 0x81
	ExtLongPDCPPDUNumber     uint8 = 0x82
	ExtXwRANContainer        uint8 = 0x83
	ExtNRRANContainer        uint8 = 0x84
	ExtPDUSessionContainer   uint8 = 0x85
	ExtPDCPPDUNumber         uint8 = 0xc0
	ExtSuspendRequest        uint8 = 0xc1
	ExtSuspendResponse       uint8 = 0xc2
)

// extDefault fills the two spare octets of the fixed 4-byte extension
// headers that carry no content.
const extDefault uint16 = 0xffff

// ExtHeader is implemented by every GTPv1 extension header. Marshal
// appends the type octet, the length octet (in 4-byte units) and the
// content; the trailing next-extension-header-type octet is written by
// the chain encoder.
type ExtHeader interface {
	Marshal(b []byte) []byte
	ExtType() uint8
	Len() int
	IsEmpty() bool
}

// marshalExtHeaderChain emits the chain records back to back followed by
// the terminating type octet. With an empty chain only the terminator is
// written, which doubles as the spare next-extension-type octet of the
// header trailer.
func marshalExtHeaderChain(b []byte, chain []ExtHeader) []byte {
	for _, e := range chain {
		b = e.Marshal(b)
	}
	return append(b, NoMoreExtensionHeaders)
}

// decodeExtHeaderChain parses records starting at the first type octet
// and stops after the terminating zero octet, returning the chain and the
// number of bytes consumed including the terminator.
func decodeExtHeaderChain(b []byte) ([]ExtHeader, int, error) {
	var chain []ExtHeader
	pos := 0
	for {
		if pos >= len(b) {
			return nil, 0, ErrExtHeaderInvalidLength
		}
		t := b[pos]
		if t == NoMoreExtensionHeaders {
			return chain, pos + 1, nil
		}
		e, n, err := decodeExtHeader(t, b[pos:])
		if err != nil {
			return nil, 0, err
		}
		chain = append(chain, e)
		pos += n
	}
}

func decodeExtHeader(t uint8, b []byte) (ExtHeader, int, error) {
	if len(b) < 2 {
		return nil, 0, ErrExtHeaderInvalidLength
	}
	length := b[1]
	if length == 0 {
		return nil, 0, ErrExtHeaderInvalidLength
	}
	size := int(length) * 4
	if size > len(b) {
		return nil, 0, ErrExtHeaderInvalidLength
	}
	var e ExtHeader
	switch t {
	case ExtMBMSSupportIndication:
		e = MBMSSupportIndication{Value: binary.BigEndian.Uint16(b[2:4])}
	case ExtMSInfoChangeReporting:
		e = MSInfoChangeReportingSupportIndication{Value: binary.BigEndian.Uint16(b[2:4])}
	case ExtServiceClassIndicator:
		e = ServiceClassIndicator{Value: b[2]}
	case ExtUDPPort:
		e = UDPPort{Port: binary.BigEndian.Uint16(b[2:4])}
	case ExtPDCPPDUNumber:
		e = PDCPPDUNumber{Value: binary.BigEndian.Uint16(b[2:4])}
	case ExtLongPDCPPDUNumber:
		if length != 2 {
			return nil, 0, ErrExtHeaderInvalidLength
		}
		v := uint32(b[2]&0x03)<<16 | uint32(b[3])<<8 | uint32(b[4])
		e = LongPDCPPDUNumber{Length: length, Value: v}
	case ExtSuspendRequest:
		e = SuspendRequest{Value: binary.BigEndian.Uint16(b[2:4])}
	case ExtSuspendResponse:
		e = SuspendResponse{Value: binary.BigEndian.Uint16(b[2:4])}
	case ExtRANContainer:
		e = RANContainer{Length: length, Container: cloneBytes(b[2:size])}
	case ExtXwRANContainer:
		e = XwRANContainer{Length: length, Container: cloneBytes(b[2:size])}
	case ExtNRRANContainer:
		e = NRRANContainer{Length: length, Container: cloneBytes(b[2:size])}
	case ExtPDUSessionContainer:
		e = PDUSessionContainer{Length: length, Container: cloneBytes(b[2:size])}
	default:
		e = UnknownExtHeader{Type: t, Length: length, Value: cloneBytes(b[2:size])}
	}
	return e, size, nil
}

func cloneBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// MBMSSupportIndication signals MBMS support between SGSN and GGSN
// (TS 29.060 §6.1.1). Fixed 4-byte record, content is spare.
type MBMSSupportIndication struct {
	Value uint16
}

func NewMBMSSupportIndication() MBMSSupportIndication {
	return MBMSSupportIndication{Value: extDefault}
}

func (e MBMSSupportIndication) Marshal(b []byte) []byte {
	b = append(b, ExtMBMSSupportIndication, 1)
	return binary.BigEndian.AppendUint16(b, e.Value)
}

func (e MBMSSupportIndication) ExtType() uint8 { return ExtMBMSSupportIndication }
func (e MBMSSupportIndication) Len() int       { return 4 }
func (e MBMSSupportIndication) IsEmpty() bool  { return false }

// MSInfoChangeReportingSupportIndication (TS 29.060 §6.1.2). Fixed
// 4-byte record, content is spare.
type MSInfoChangeReportingSupportIndication struct {
	Value uint16
}

func NewMSInfoChangeReportingSupportIndication() MSInfoChangeReportingSupportIndication {
	return MSInfoChangeReportingSupportIndication{Value: extDefault}
}

func (e MSInfoChangeReportingSupportIndication) Marshal(b []byte) []byte {
	b = append(b, ExtMSInfoChangeReporting, 1)
	return binary.BigEndian.AppendUint16(b, e.Value)
}

func (e MSInfoChangeReportingSupportIndication) ExtType() uint8 {
	return ExtMSInfoChangeReporting
}
func (e MSInfoChangeReportingSupportIndication) Len() int      { return 4 }
func (e MSInfoChangeReportingSupportIndication) IsEmpty() bool { return false }

// ServiceClassIndicator (TS 29.281 §5.2.2.3).
type ServiceClassIndicator struct {
	Value uint8
}

func (e ServiceClassIndicator) Marshal(b []byte) []byte {
	return append(b, ExtServiceClassIndicator, 1, e.Value, 0x00)
}

func (e ServiceClassIndicator) ExtType() uint8 { return ExtServiceClassIndicator }
func (e ServiceClassIndicator) Len() int       { return 4 }
func (e ServiceClassIndicator) IsEmpty() bool  { return e.Value == 0 }

// UDPPort carries the source UDP port of the message that triggered an
// Error Indication (TS 29.281 §5.2.2.1).
type UDPPort struct {
	Port uint16
}

func (e UDPPort) Marshal(b []byte) []byte {
	b = append(b, ExtUDPPort, 1)
	return binary.BigEndian.AppendUint16(b, e.Port)
}

func (e UDPPort) ExtType() uint8 { return ExtUDPPort }
func (e UDPPort) Len() int       { return 4 }
func (e UDPPort) IsEmpty() bool  { return e.Port == 0 }

// PDCPPDUNumber (TS 29.281 §5.2.2.2). 15-bit PDU number.
type PDCPPDUNumber struct {
	Value uint16
}

func (e PDCPPDUNumber) Marshal(b []byte) []byte {
	b = append(b, ExtPDCPPDUNumber, 1)
	return binary.BigEndian.AppendUint16(b, e.Value)
}

func (e PDCPPDUNumber) ExtType() uint8 { return ExtPDCPPDUNumber }
func (e PDCPPDUNumber) Len() int       { return 4 }
func (e PDCPPDUNumber) IsEmpty() bool  { return e.Value == 0 }

// LongPDCPPDUNumber (TS 29.281 §5.2.2.2A). 18-bit PDU number in a
// 2-unit record.
type LongPDCPPDUNumber struct {
	Length uint8
	Value  uint32
}

func NewLongPDCPPDUNumber(v uint32) LongPDCPPDUNumber {
	return LongPDCPPDUNumber{Length: 2, Value: v & 0x3ffff}
}

func (e LongPDCPPDUNumber) Marshal(b []byte) []byte {
	return append(b, ExtLongPDCPPDUNumber, 2,
		uint8(e.Value>>16)&0x03, uint8(e.Value>>8), uint8(e.Value),
		0x00, 0x00, 0x00)
}

func (e LongPDCPPDUNumber) ExtType() uint8 { return ExtLongPDCPPDUNumber }
func (e LongPDCPPDUNumber) Len() int       { return 8 }
func (e LongPDCPPDUNumber) IsEmpty() bool  { return e.Value == 0 }

// SuspendRequest (TS 29.060 §6.1.5). Fixed 4-byte record, content spare.
type SuspendRequest struct {
	Value uint16
}

func NewSuspendRequest() SuspendRequest { return SuspendRequest{Value: extDefault} }

func (e SuspendRequest) Marshal(b []byte) []byte {
	b = append(b, ExtSuspendRequest, 1)
	return binary.BigEndian.AppendUint16(b, e.Value)
}

func (e SuspendRequest) ExtType() uint8 { return ExtSuspendRequest }
func (e SuspendRequest) Len() int       { return 4 }
func (e SuspendRequest) IsEmpty() bool  { return false }

// SuspendResponse (TS 29.060 §6.1.6). Fixed 4-byte record, content spare.
type SuspendResponse struct {
	Value uint16
}

func NewSuspendResponse() SuspendResponse { return SuspendResponse{Value: extDefault} }

func (e SuspendResponse) Marshal(b []byte) []byte {
	b = append(b, ExtSuspendResponse, 1)
	return binary.BigEndian.AppendUint16(b, e.Value)
}

func (e SuspendResponse) ExtType() uint8 { return ExtSuspendResponse }
func (e SuspendResponse) Len() int       { return 4 }
func (e SuspendResponse) IsEmpty() bool  { return false }

// RANContainer carries a RAN transparent container (TS 29.281 §5.2.2.4).
// Length is the record size in 4-byte units; the container spans the
// record minus the two leading octets.
type RANContainer struct {
	Length    uint8
	Container []byte
}

func (e RANContainer) Marshal(b []byte) []byte {
	b = append(b, ExtRANContainer, e.Length)
	return append(b, e.Container...)
}

func (e RANContainer) ExtType() uint8 { return ExtRANContainer }
func (e RANContainer) Len() int       { return int(e.Length) * 4 }
func (e RANContainer) IsEmpty() bool  { return len(e.Container) == 0 }

// XwRANContainer (TS 29.281 §5.2.2.5).
type XwRANContainer struct {
	Length    uint8
	Container []byte
}

func (e XwRANContainer) Marshal(b []byte) []byte {
	b = append(b, ExtXwRANContainer, e.Length)
	return append(b, e.Container...)
}

func (e XwRANContainer) ExtType() uint8 { return ExtXwRANContainer }
func (e XwRANContainer) Len() int       { return int(e.Length) * 4 }
func (e XwRANContainer) IsEmpty() bool  { return len(e.Container) == 0 }

// NRRANContainer (TS 29.281 §5.2.2.6).
type NRRANContainer struct {
	Length    uint8
	Container []byte
}

func (e NRRANContainer) Marshal(b []byte) []byte {
	b = append(b, ExtNRRANContainer, e.Length)
	return append(b, e.Container...)
}

func (e NRRANContainer) ExtType() uint8 { return ExtNRRANContainer }
func (e NRRANContainer) Len() int       { return int(e.Length) * 4 }
func (e NRRANContainer) IsEmpty() bool  { return len(e.Container) == 0 }

// PDUSessionContainer carries the 5GS PDU session information frame of
// TS 38.415 (TS 29.281 §5.2.2.7).
type PDUSessionContainer struct {
	Length    uint8
	Container []byte
}

func (e PDUSessionContainer) Marshal(b []byte) []byte {
	b = append(b, ExtPDUSessionContainer, e.Length)
	return append(b, e.Container...)
}

func (e PDUSessionContainer) ExtType() uint8 { return ExtPDUSessionContainer }
func (e PDUSessionContainer) Len() int       { return int(e.Length) * 4 }
func (e PDUSessionContainer) IsEmpty() bool  { return len(e.Container) == 0 }

// UnknownExtHeader preserves an unrecognized extension header verbatim so
// that the chain round-trips losslessly.
type UnknownExtHeader struct {
	Type   uint8
	Length uint8
	Value  []byte
}

func (e UnknownExtHeader) Marshal(b []byte) []byte {
	b = append(b, e.Type, e.Length)
	return append(b, e.Value...)
}

func (e UnknownExtHeader) ExtType() uint8 { return e.Type }
func (e UnknownExtHeader) Len() int       { return int(e.Length) * 4 }
func (e UnknownExtHeader) IsEmpty() bool  { return false }

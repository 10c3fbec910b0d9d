package gtpv2

// GTPv2-C message types, per TS 29.274 §6.1.
const (
	MsgEchoRequest         uint8 = 1
	MsgEchoResponse        uint8 = 2
	MsgVersionNotSupported uint8 = 3
)

// Message is implemented by every GTPv2-C message. Marshal appends the
// full wire encoding with the header length back-patched, emitting IEs
// in ascending (type, instance) order.
type Message interface {
	Marshal(b []byte) []byte
	MessageType() uint8
}

// Decode parses exactly one GTPv2-C message from b. Trailing bytes are
// a length error unless the header's piggyback flag is set, in which
// case the remainder is left to the caller (see DecodePiggyback).
func Decode(b []byte) (Message, error) {
	m, _, err := decodeOne(b)
	return m, err
}

// DecodePiggyback parses a piggybacked datagram: the first message must
// carry the P flag and is immediately followed by the second.
func DecodePiggyback(b []byte) (Message, Message, error) {
	first, n, err := decodeOne(b)
	if err != nil {
		return nil, nil, err
	}
	if !headerPiggyback(first) {
		return nil, nil, ErrHeaderFlagError
	}
	second, rest, err := decodeOne(b[n:])
	if err != nil {
		return nil, nil, err
	}
	if rest != len(b[n:]) {
		return nil, nil, ErrMessageLength
	}
	return first, second, nil
}

func headerPiggyback(m Message) bool {
	switch v := m.(type) {
	case EchoRequest:
		return v.Header.Piggyback
	case EchoResponse:
		return v.Header.Piggyback
	case VersionNotSupported:
		return v.Header.Piggyback
	}
	return false
}

// decodeOne dispatches on the message type byte and returns the decoded
// message plus its total encoded size.
func decodeOne(b []byte) (Message, int, error) {
	if len(b) < headerMinSize {
		return nil, 0, ErrHeaderInvalidLength
	}
	var (
		m   Message
		n   int
		err error
	)
	switch b[1] {
	case MsgEchoRequest:
		var v EchoRequest
		v, n, err = decodeEchoRequest(b)
		m = v
	case MsgEchoResponse:
		var v EchoResponse
		v, n, err = decodeEchoResponse(b)
		m = v
	case MsgVersionNotSupported:
		var v VersionNotSupported
		v, n, err = decodeVersionNotSupported(b)
		m = v
	default:
		return nil, 0, ErrMessageNotSupported
	}
	if err != nil {
		return nil, 0, err
	}
	return m, n, nil
}

// decodeMessageBody parses the header, validates the type and the
// length invariant (the length field counts everything after the first
// four octets) and returns the header, the IE region and the total
// message size. Bytes past the message end are tolerated only when the
// piggyback flag is set.
func decodeMessageBody(b []byte, msgType uint8) (Header, []byte, int, error) {
	h, consumed, err := DecodeHeader(b)
	if err != nil {
		return Header{}, nil, 0, err
	}
	if h.MsgType != msgType {
		return Header{}, nil, 0, ErrIncorrectMessageType
	}
	end := 4 + int(h.Length)
	if end > len(b) || end < consumed {
		return Header{}, nil, 0, ErrMessageLength
	}
	if end != len(b) && !h.Piggyback {
		return Header{}, nil, 0, ErrMessageLength
	}
	return h, b[consumed:end], end, nil
}

func decodeIEs(body []byte, bin func(IE) error) error {
	for len(body) > 0 {
		ie, n, err := DecodeIE(body)
		if err != nil {
			return err
		}
		if err := bin(ie); err != nil {
			return err
		}
		body = body[n:]
	}
	return nil
}

// EchoRequest (type 1), per TS 29.274 §7.1.1. Sent without a TEID;
// Recovery is mandatory.
type EchoRequest struct {
	Header           Header
	Recovery         Recovery
	PrivateExtension *PrivateExtension
	Additional       []IE
}

func DecodeEchoRequest(b []byte) (EchoRequest, error) {
	m, n, err := decodeEchoRequest(b)
	if err != nil {
		return EchoRequest{}, err
	}
	if n != len(b) && !m.Header.Piggyback {
		return EchoRequest{}, ErrMessageLength
	}
	return m, nil
}

func decodeEchoRequest(b []byte) (EchoRequest, int, error) {
	h, body, n, err := decodeMessageBody(b, MsgEchoRequest)
	if err != nil {
		return EchoRequest{}, 0, err
	}
	if h.HasTEID {
		return EchoRequest{}, 0, ErrHeaderFlagError
	}
	m := EchoRequest{Header: h}
	seenRecovery := false
	err = decodeIEs(body, func(ie IE) error {
		switch v := ie.(type) {
		case Recovery:
			m.Recovery = v
			seenRecovery = true
		case PrivateExtension:
			m.PrivateExtension = &v
		default:
			m.Additional = append(m.Additional, ie)
		}
		return nil
	})
	if err != nil {
		return EchoRequest{}, 0, err
	}
	if !seenRecovery {
		return EchoRequest{}, 0, ieErr(ErrMandatoryIEMissing, IERecovery)
	}
	return m, n, nil
}

func (m EchoRequest) Marshal(b []byte) []byte {
	start := len(b)
	m.Header.MsgType = MsgEchoRequest
	m.Header.HasTEID = false
	b = m.Header.Marshal(b)
	ies := []IE{m.Recovery}
	if m.PrivateExtension != nil {
		ies = append(ies, *m.PrivateExtension)
	}
	ies = append(ies, m.Additional...)
	b = marshalIEs(b, ies)
	setMsgLength(b, start)
	return b
}

func (m EchoRequest) MessageType() uint8 { return MsgEchoRequest }

// EchoResponse (type 2), per TS 29.274 §7.1.2.
type EchoResponse struct {
	Header           Header
	Recovery         Recovery
	PrivateExtension *PrivateExtension
	Additional       []IE
}

func DecodeEchoResponse(b []byte) (EchoResponse, error) {
	m, n, err := decodeEchoResponse(b)
	if err != nil {
		return EchoResponse{}, err
	}
	if n != len(b) && !m.Header.Piggyback {
		return EchoResponse{}, ErrMessageLength
	}
	return m, nil
}

func decodeEchoResponse(b []byte) (EchoResponse, int, error) {
	h, body, n, err := decodeMessageBody(b, MsgEchoResponse)
	if err != nil {
		return EchoResponse{}, 0, err
	}
	if h.HasTEID {
		return EchoResponse{}, 0, ErrHeaderFlagError
	}
	m := EchoResponse{Header: h}
	seenRecovery := false
	err = decodeIEs(body, func(ie IE) error {
		switch v := ie.(type) {
		case Recovery:
			m.Recovery = v
			seenRecovery = true
		case PrivateExtension:
			m.PrivateExtension = &v
		default:
			m.Additional = append(m.Additional, ie)
		}
		return nil
	})
	if err != nil {
		return EchoResponse{}, 0, err
	}
	if !seenRecovery {
		return EchoResponse{}, 0, ieErr(ErrMandatoryIEMissing, IERecovery)
	}
	return m, n, nil
}

func (m EchoResponse) Marshal(b []byte) []byte {
	start := len(b)
	m.Header.MsgType = MsgEchoResponse
	m.Header.HasTEID = false
	b = m.Header.Marshal(b)
	ies := []IE{m.Recovery}
	if m.PrivateExtension != nil {
		ies = append(ies, *m.PrivateExtension)
	}
	ies = append(ies, m.Additional...)
	b = marshalIEs(b, ies)
	setMsgLength(b, start)
	return b
}

func (m EchoResponse) MessageType() uint8 { return MsgEchoResponse }

// VersionNotSupported (type 3), per TS 29.274 §7.1.3. Carries no IEs.
type VersionNotSupported struct {
	Header Header
}

func DecodeVersionNotSupported(b []byte) (VersionNotSupported, error) {
	m, n, err := decodeVersionNotSupported(b)
	if err != nil {
		return VersionNotSupported{}, err
	}
	if n != len(b) && !m.Header.Piggyback {
		return VersionNotSupported{}, ErrMessageLength
	}
	return m, nil
}

func decodeVersionNotSupported(b []byte) (VersionNotSupported, int, error) {
	h, _, n, err := decodeMessageBody(b, MsgVersionNotSupported)
	if err != nil {
		return VersionNotSupported{}, 0, err
	}
	return VersionNotSupported{Header: h}, n, nil
}

func (m VersionNotSupported) Marshal(b []byte) []byte {
	start := len(b)
	m.Header.MsgType = MsgVersionNotSupported
	b = m.Header.Marshal(b)
	setMsgLength(b, start)
	return b
}

func (m VersionNotSupported) MessageType() uint8 { return MsgVersionNotSupported }

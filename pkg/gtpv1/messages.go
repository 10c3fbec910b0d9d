package gtpv1

// GTPv1 message types, per TS 29.060 §7.1 and TS 29.281 §7.1.
const (
	MsgEchoRequest                           uint8 = 1
	MsgEchoResponse                          uint8 = 2
	MsgVersionNotSupported                   uint8 = 3
	MsgCreatePDPContextRequest               uint8 = 16
	MsgCreatePDPContextResponse              uint8 = 17
	MsgUpdatePDPContextRequest               uint8 = 18
	MsgUpdatePDPContextResponse              uint8 = 19
	MsgDeletePDPContextRequest               uint8 = 20
	MsgDeletePDPContextResponse              uint8 = 21
	MsgErrorIndication                       uint8 = 26
	MsgSupportedExtensionHeadersNotification uint8 = 31
	MsgEndMarker                             uint8 = 254
	MsgGPDU                                  uint8 = 255
)

// Message is implemented by every GTPv1 message. Marshal appends the
// full wire encoding, including the back-patched header length field.
type Message interface {
	Marshal(b []byte) []byte
	MessageType() uint8
}

// DecodeControlPlane parses one GTPv1-C message from b, dispatching on
// the header message type. Message types that exist only on the user
// plane are rejected with ErrMessageNotSupported.
func DecodeControlPlane(b []byte) (Message, error) {
	if len(b) < headerFixedSize {
		return nil, ErrHeaderInvalidLength
	}
	switch b[1] {
	case MsgEchoRequest:
		return DecodeEchoRequest(b)
	case MsgEchoResponse:
		return DecodeEchoResponse(b)
	case MsgVersionNotSupported:
		return DecodeVersionNotSupported(b)
	case MsgCreatePDPContextRequest:
		return DecodeCreatePDPContextRequest(b)
	case MsgCreatePDPContextResponse:
		return DecodeCreatePDPContextResponse(b)
	case MsgUpdatePDPContextRequest:
		return DecodeUpdatePDPContextRequest(b)
	case MsgUpdatePDPContextResponse:
		return DecodeUpdatePDPContextResponse(b)
	case MsgDeletePDPContextRequest:
		return DecodeDeletePDPContextRequest(b)
	case MsgDeletePDPContextResponse:
		return DecodeDeletePDPContextResponse(b)
	case MsgSupportedExtensionHeadersNotification:
		return DecodeSupportedExtensionHeadersNotification(b)
	}
	return nil, ErrMessageNotSupported
}

// DecodeUserPlane parses one GTPv1-U message from b.
func DecodeUserPlane(b []byte) (Message, error) {
	if len(b) < headerFixedSize {
		return nil, ErrHeaderInvalidLength
	}
	switch b[1] {
	case MsgEchoRequest:
		return DecodeEchoRequest(b)
	case MsgEchoResponse:
		return DecodeEchoResponse(b)
	case MsgErrorIndication:
		return DecodeErrorIndication(b)
	case MsgSupportedExtensionHeadersNotification:
		return DecodeSupportedExtensionHeadersNotification(b)
	case MsgEndMarker:
		return DecodeEndMarker(b)
	case MsgGPDU:
		return DecodeGPDU(b)
	}
	return nil, ErrMessageNotSupported
}

// decodeMessageBody parses the header, validates the length invariant
// (the length field counts everything after the first 8 octets and must
// land exactly on the end of the buffer) and returns the header, the IE
// region and the expected message type check result.
func decodeMessageBody(b []byte, msgType uint8) (Header, []byte, error) {
	h, consumed, err := DecodeHeader(b)
	if err != nil {
		return Header{}, nil, err
	}
	if h.MsgType != msgType {
		return Header{}, nil, ErrIncorrectMessageType
	}
	end := headerFixedSize + int(h.Length)
	if end > len(b) || end < consumed {
		return Header{}, nil, ErrMessageLength
	}
	if end != len(b) {
		return Header{}, nil, ErrMessageLength
	}
	return h, b[consumed:end], nil
}

// decodeIEs walks the IE region and hands each parsed element to bin,
// which places it into the message's typed fields.
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

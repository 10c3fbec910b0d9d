package gtpv1

// ErrorIndication (type 26), per TS 29.281 §7.3.1. Sent when a G-PDU
// arrives for a non-existent tunnel. The sequence number flag is
// mandatory; the UDP Port extension header usually accompanies it.
type ErrorIndication struct {
	Header           Header
	TEIDData         TEIDDataI
	PeerAddress      GSNAddress
	PrivateExtension *PrivateExtension
	Additional       []IE
}

func DecodeErrorIndication(b []byte) (ErrorIndication, error) {
	h, body, err := decodeMessageBody(b, MsgErrorIndication)
	if err != nil {
		return ErrorIndication{}, err
	}
	if err := h.requireSequence(); err != nil {
		return ErrorIndication{}, err
	}
	m := ErrorIndication{Header: h}
	seenTEID, seenPeer := false, false
	err = decodeIEs(body, func(ie IE) error {
		switch v := ie.(type) {
		case TEIDDataI:
			m.TEIDData = v
			seenTEID = true
		case GSNAddress:
			m.PeerAddress = v
			seenPeer = true
		case PrivateExtension:
			m.PrivateExtension = &v
		default:
			m.Additional = append(m.Additional, ie)
		}
		return nil
	})
	if err != nil {
		return ErrorIndication{}, err
	}
	switch {
	case !seenTEID:
		return ErrorIndication{}, ieErr(ErrMandatoryIEMissing, IETEIDDataI)
	case !seenPeer:
		return ErrorIndication{}, ieErr(ErrMandatoryIEMissing, IEGSNAddress)
	}
	return m, nil
}

func (m ErrorIndication) Marshal(b []byte) []byte {
	start := len(b)
	m.Header.MsgType = MsgErrorIndication
	m.Header.HasSequence = true
	b = m.Header.Marshal(b)
	b = m.TEIDData.Marshal(b)
	b = m.PeerAddress.Marshal(b)
	if m.PrivateExtension != nil {
		b = m.PrivateExtension.Marshal(b)
	}
	for _, ie := range m.Additional {
		b = ie.Marshal(b)
	}
	setMsgLength(b, start)
	return b
}

func (m ErrorIndication) MessageType() uint8 { return MsgErrorIndication }

// EndMarker (type 254), per TS 29.281 §7.3.2. Marks the end of the
// payload stream on a tunnel being switched.
type EndMarker struct {
	Header           Header
	PrivateExtension *PrivateExtension
	Additional       []IE
}

func DecodeEndMarker(b []byte) (EndMarker, error) {
	h, body, err := decodeMessageBody(b, MsgEndMarker)
	if err != nil {
		return EndMarker{}, err
	}
	m := EndMarker{Header: h}
	err = decodeIEs(body, func(ie IE) error {
		switch v := ie.(type) {
		case PrivateExtension:
			m.PrivateExtension = &v
		default:
			m.Additional = append(m.Additional, ie)
		}
		return nil
	})
	if err != nil {
		return EndMarker{}, err
	}
	return m, nil
}

func (m EndMarker) Marshal(b []byte) []byte {
	start := len(b)
	m.Header.MsgType = MsgEndMarker
	b = m.Header.Marshal(b)
	if m.PrivateExtension != nil {
		b = m.PrivateExtension.Marshal(b)
	}
	for _, ie := range m.Additional {
		b = ie.Marshal(b)
	}
	setMsgLength(b, start)
	return b
}

func (m EndMarker) MessageType() uint8 { return MsgEndMarker }

// GPDU (type 255) encapsulates one T-PDU, per TS 29.281 §6. The payload
// is the user packet and is carried opaquely.
type GPDU struct {
	Header  Header
	Payload []byte
}

func DecodeGPDU(b []byte) (GPDU, error) {
	h, body, err := decodeMessageBody(b, MsgGPDU)
	if err != nil {
		return GPDU{}, err
	}
	return GPDU{Header: h, Payload: cloneBytes(body)}, nil
}

func (m GPDU) Marshal(b []byte) []byte {
	start := len(b)
	m.Header.MsgType = MsgGPDU
	b = m.Header.Marshal(b)
	b = append(b, m.Payload...)
	setMsgLength(b, start)
	return b
}

func (m GPDU) MessageType() uint8 { return MsgGPDU }

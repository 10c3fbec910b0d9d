package gtpv1

// EchoRequest is shared by the control and user planes (TS 29.060
// §7.2.1, TS 29.281 §7.2.1).
type EchoRequest struct {
	Header           Header
	PrivateExtension *PrivateExtension
	Additional       []IE
}

func DecodeEchoRequest(b []byte) (EchoRequest, error) {
	h, body, err := decodeMessageBody(b, MsgEchoRequest)
	if err != nil {
		return EchoRequest{}, err
	}
	m := EchoRequest{Header: h}
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
		return EchoRequest{}, err
	}
	return m, nil
}

func (m EchoRequest) Marshal(b []byte) []byte {
	start := len(b)
	m.Header.MsgType = MsgEchoRequest
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

func (m EchoRequest) MessageType() uint8 { return MsgEchoRequest }

// EchoResponse carries the mandatory Recovery IE (TS 29.060 §7.2.2).
type EchoResponse struct {
	Header           Header
	Recovery         Recovery
	PrivateExtension *PrivateExtension
	Additional       []IE
}

func DecodeEchoResponse(b []byte) (EchoResponse, error) {
	h, body, err := decodeMessageBody(b, MsgEchoResponse)
	if err != nil {
		return EchoResponse{}, err
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
		return EchoResponse{}, err
	}
	if !seenRecovery {
		return EchoResponse{}, ieErr(ErrMandatoryIEMissing, IERecovery)
	}
	return m, nil
}

func (m EchoResponse) Marshal(b []byte) []byte {
	start := len(b)
	m.Header.MsgType = MsgEchoResponse
	b = m.Header.Marshal(b)
	b = m.Recovery.Marshal(b)
	if m.PrivateExtension != nil {
		b = m.PrivateExtension.Marshal(b)
	}
	for _, ie := range m.Additional {
		b = ie.Marshal(b)
	}
	setMsgLength(b, start)
	return b
}

func (m EchoResponse) MessageType() uint8 { return MsgEchoResponse }

// VersionNotSupported carries no information elements (TS 29.060
// §7.2.4).
type VersionNotSupported struct {
	Header Header
}

func DecodeVersionNotSupported(b []byte) (VersionNotSupported, error) {
	h, _, err := decodeMessageBody(b, MsgVersionNotSupported)
	if err != nil {
		return VersionNotSupported{}, err
	}
	return VersionNotSupported{Header: h}, nil
}

func (m VersionNotSupported) Marshal(b []byte) []byte {
	start := len(b)
	m.Header.MsgType = MsgVersionNotSupported
	b = m.Header.Marshal(b)
	setMsgLength(b, start)
	return b
}

func (m VersionNotSupported) MessageType() uint8 { return MsgVersionNotSupported }

// SupportedExtensionHeadersNotification lists the extension header
// types the sending node supports (TS 29.060 §7.2.5). The sequence
// number flag is mandatory for this message.
type SupportedExtensionHeadersNotification struct {
	Header Header
	List   ExtHeaderTypeList
}

func DecodeSupportedExtensionHeadersNotification(b []byte) (SupportedExtensionHeadersNotification, error) {
	h, body, err := decodeMessageBody(b, MsgSupportedExtensionHeadersNotification)
	if err != nil {
		return SupportedExtensionHeadersNotification{}, err
	}
	if err := h.requireSequence(); err != nil {
		return SupportedExtensionHeadersNotification{}, err
	}
	m := SupportedExtensionHeadersNotification{Header: h}
	seenList := false
	err = decodeIEs(body, func(ie IE) error {
		if v, ok := ie.(ExtHeaderTypeList); ok {
			m.List = v
			seenList = true
		}
		return nil
	})
	if err != nil {
		return SupportedExtensionHeadersNotification{}, err
	}
	if !seenList {
		return SupportedExtensionHeadersNotification{}, ieErr(ErrMandatoryIEMissing, IEExtHeaderTypeList)
	}
	return m, nil
}

func (m SupportedExtensionHeadersNotification) Marshal(b []byte) []byte {
	start := len(b)
	m.Header.MsgType = MsgSupportedExtensionHeadersNotification
	m.Header.HasSequence = true
	b = m.Header.Marshal(b)
	b = m.List.Marshal(b)
	setMsgLength(b, start)
	return b
}

func (m SupportedExtensionHeadersNotification) MessageType() uint8 {
	return MsgSupportedExtensionHeadersNotification
}

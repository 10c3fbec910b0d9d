package gtpv1

// DeletePDPContextRequest (type 20), per TS 29.060 §7.3.5. NSAPI is
// mandatory; the Teardown Ind governs whether all contexts sharing the
// PDP address are deleted.
type DeletePDPContextRequest struct {
	Header              Header
	Cause               *Cause
	TeardownInd         *TeardownInd
	NSAPI               NSAPI
	PCO                 *PCO
	ULI                 *ULI
	ULITimestamp        *ULITimestamp
	ExtendedCommonFlags *ExtendedCommonFlags
	PrivateExtension    *PrivateExtension
	Additional          []IE
}

func DecodeDeletePDPContextRequest(b []byte) (DeletePDPContextRequest, error) {
	h, body, err := decodeMessageBody(b, MsgDeletePDPContextRequest)
	if err != nil {
		return DeletePDPContextRequest{}, err
	}
	m := DeletePDPContextRequest{Header: h}
	seenNSAPI := false
	err = decodeIEs(body, func(ie IE) error {
		switch v := ie.(type) {
		case Cause:
			m.Cause = &v
		case TeardownInd:
			m.TeardownInd = &v
		case NSAPI:
			m.NSAPI = v
			seenNSAPI = true
		case PCO:
			m.PCO = &v
		case ULI:
			m.ULI = &v
		case ULITimestamp:
			m.ULITimestamp = &v
		case ExtendedCommonFlags:
			m.ExtendedCommonFlags = &v
		case PrivateExtension:
			m.PrivateExtension = &v
		default:
			m.Additional = append(m.Additional, ie)
		}
		return nil
	})
	if err != nil {
		return DeletePDPContextRequest{}, err
	}
	if !seenNSAPI {
		return DeletePDPContextRequest{}, ieErr(ErrMandatoryIEMissing, IENSAPI)
	}
	return m, nil
}

func (m DeletePDPContextRequest) Marshal(b []byte) []byte {
	start := len(b)
	m.Header.MsgType = MsgDeletePDPContextRequest
	b = m.Header.Marshal(b)
	if m.Cause != nil {
		b = m.Cause.Marshal(b)
	}
	if m.TeardownInd != nil {
		b = m.TeardownInd.Marshal(b)
	}
	b = m.NSAPI.Marshal(b)
	if m.PCO != nil {
		b = m.PCO.Marshal(b)
	}
	if m.ULI != nil {
		b = m.ULI.Marshal(b)
	}
	if m.ULITimestamp != nil {
		b = m.ULITimestamp.Marshal(b)
	}
	if m.ExtendedCommonFlags != nil {
		b = m.ExtendedCommonFlags.Marshal(b)
	}
	if m.PrivateExtension != nil {
		b = m.PrivateExtension.Marshal(b)
	}
	for _, ie := range m.Additional {
		b = ie.Marshal(b)
	}
	setMsgLength(b, start)
	return b
}

func (m DeletePDPContextRequest) MessageType() uint8 { return MsgDeletePDPContextRequest }

// DeletePDPContextResponse (type 21), per TS 29.060 §7.3.6.
type DeletePDPContextResponse struct {
	Header           Header
	Cause            Cause
	PCO              *PCO
	ULI              *ULI
	ULITimestamp     *ULITimestamp
	PrivateExtension *PrivateExtension
	Additional       []IE
}

func DecodeDeletePDPContextResponse(b []byte) (DeletePDPContextResponse, error) {
	h, body, err := decodeMessageBody(b, MsgDeletePDPContextResponse)
	if err != nil {
		return DeletePDPContextResponse{}, err
	}
	m := DeletePDPContextResponse{Header: h}
	seenCause := false
	err = decodeIEs(body, func(ie IE) error {
		switch v := ie.(type) {
		case Cause:
			m.Cause = v
			seenCause = true
		case PCO:
			m.PCO = &v
		case ULI:
			m.ULI = &v
		case ULITimestamp:
			m.ULITimestamp = &v
		case PrivateExtension:
			m.PrivateExtension = &v
		default:
			m.Additional = append(m.Additional, ie)
		}
		return nil
	})
	if err != nil {
		return DeletePDPContextResponse{}, err
	}
	if !seenCause {
		return DeletePDPContextResponse{}, ieErr(ErrMandatoryIEMissing, IECause)
	}
	return m, nil
}

func (m DeletePDPContextResponse) Marshal(b []byte) []byte {
	start := len(b)
	m.Header.MsgType = MsgDeletePDPContextResponse
	b = m.Header.Marshal(b)
	b = m.Cause.Marshal(b)
	if m.PCO != nil {
		b = m.PCO.Marshal(b)
	}
	if m.ULI != nil {
		b = m.ULI.Marshal(b)
	}
	if m.ULITimestamp != nil {
		b = m.ULITimestamp.Marshal(b)
	}
	if m.PrivateExtension != nil {
		b = m.PrivateExtension.Marshal(b)
	}
	for _, ie := range m.Additional {
		b = ie.Marshal(b)
	}
	setMsgLength(b, start)
	return b
}

func (m DeletePDPContextResponse) MessageType() uint8 { return MsgDeletePDPContextResponse }

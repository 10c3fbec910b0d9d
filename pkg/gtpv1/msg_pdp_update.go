package gtpv1

// UpdatePDPContextRequest (type 18), per TS 29.060 §7.3.3.
type UpdatePDPContextRequest struct {
	Header              Header
	IMSI                *IMSI
	RAI                 *RAI
	Recovery            *Recovery
	TEIDData            TEIDDataI
	TEIDControl         *TEIDControlPlane
	NSAPI               NSAPI
	TraceReference      *TraceReference
	TraceType           *TraceType
	PCO                 *PCO
	SGSNAddrSignalling  GSNAddress
	SGSNAddrUser        GSNAddress
	QoSProfile          QoSProfile
	TFT                 *TFT
	TriggerID           *TriggerID
	OMCID               *OMCID
	RATType             *RATType
	ULI                 *ULI
	CorrelationID       *CorrelationID
	EvolvedARP          *EvolvedARP
	ExtendedCommonFlags *ExtendedCommonFlags
	UCI                 *UCI
	APNAMBR             *APNAMBR
	SPI                 *SPI
	PrivateExtension    *PrivateExtension
	Additional          []IE
}

func DecodeUpdatePDPContextRequest(b []byte) (UpdatePDPContextRequest, error) {
	h, body, err := decodeMessageBody(b, MsgUpdatePDPContextRequest)
	if err != nil {
		return UpdatePDPContextRequest{}, err
	}
	m := UpdatePDPContextRequest{Header: h}
	var (
		seenTEIDData, seenNSAPI, seenQoS bool
		gsnCount                         int
	)
	err = decodeIEs(body, func(ie IE) error {
		switch v := ie.(type) {
		case IMSI:
			m.IMSI = &v
		case RAI:
			m.RAI = &v
		case Recovery:
			m.Recovery = &v
		case TEIDDataI:
			m.TEIDData = v
			seenTEIDData = true
		case TEIDControlPlane:
			m.TEIDControl = &v
		case NSAPI:
			m.NSAPI = v
			seenNSAPI = true
		case TraceReference:
			m.TraceReference = &v
		case TraceType:
			m.TraceType = &v
		case PCO:
			m.PCO = &v
		case GSNAddress:
			if gsnCount == 0 {
				m.SGSNAddrSignalling = v
			} else {
				m.SGSNAddrUser = v
			}
			gsnCount++
		case QoSProfile:
			m.QoSProfile = v
			seenQoS = true
		case TFT:
			m.TFT = &v
		case TriggerID:
			m.TriggerID = &v
		case OMCID:
			m.OMCID = &v
		case RATType:
			m.RATType = &v
		case ULI:
			m.ULI = &v
		case CorrelationID:
			m.CorrelationID = &v
		case EvolvedARP:
			m.EvolvedARP = &v
		case ExtendedCommonFlags:
			m.ExtendedCommonFlags = &v
		case UCI:
			m.UCI = &v
		case APNAMBR:
			m.APNAMBR = &v
		case SPI:
			m.SPI = &v
		case PrivateExtension:
			m.PrivateExtension = &v
		default:
			m.Additional = append(m.Additional, ie)
		}
		return nil
	})
	if err != nil {
		return UpdatePDPContextRequest{}, err
	}
	switch {
	case !seenTEIDData:
		return UpdatePDPContextRequest{}, ieErr(ErrMandatoryIEMissing, IETEIDDataI)
	case !seenNSAPI:
		return UpdatePDPContextRequest{}, ieErr(ErrMandatoryIEMissing, IENSAPI)
	case gsnCount < 2:
		return UpdatePDPContextRequest{}, ieErr(ErrMandatoryIEMissing, IEGSNAddress)
	case !seenQoS:
		return UpdatePDPContextRequest{}, ieErr(ErrMandatoryIEMissing, IEQoSProfile)
	}
	return m, nil
}

func (m UpdatePDPContextRequest) Marshal(b []byte) []byte {
	start := len(b)
	m.Header.MsgType = MsgUpdatePDPContextRequest
	b = m.Header.Marshal(b)
	if m.IMSI != nil {
		b = m.IMSI.Marshal(b)
	}
	if m.RAI != nil {
		b = m.RAI.Marshal(b)
	}
	if m.Recovery != nil {
		b = m.Recovery.Marshal(b)
	}
	b = m.TEIDData.Marshal(b)
	if m.TEIDControl != nil {
		b = m.TEIDControl.Marshal(b)
	}
	b = m.NSAPI.Marshal(b)
	if m.TraceReference != nil {
		b = m.TraceReference.Marshal(b)
	}
	if m.TraceType != nil {
		b = m.TraceType.Marshal(b)
	}
	if m.PCO != nil {
		b = m.PCO.Marshal(b)
	}
	b = m.SGSNAddrSignalling.Marshal(b)
	b = m.SGSNAddrUser.Marshal(b)
	b = m.QoSProfile.Marshal(b)
	if m.TFT != nil {
		b = m.TFT.Marshal(b)
	}
	if m.TriggerID != nil {
		b = m.TriggerID.Marshal(b)
	}
	if m.OMCID != nil {
		b = m.OMCID.Marshal(b)
	}
	if m.RATType != nil {
		b = m.RATType.Marshal(b)
	}
	if m.ULI != nil {
		b = m.ULI.Marshal(b)
	}
	if m.CorrelationID != nil {
		b = m.CorrelationID.Marshal(b)
	}
	if m.EvolvedARP != nil {
		b = m.EvolvedARP.Marshal(b)
	}
	if m.ExtendedCommonFlags != nil {
		b = m.ExtendedCommonFlags.Marshal(b)
	}
	if m.UCI != nil {
		b = m.UCI.Marshal(b)
	}
	if m.APNAMBR != nil {
		b = m.APNAMBR.Marshal(b)
	}
	if m.SPI != nil {
		b = m.SPI.Marshal(b)
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

func (m UpdatePDPContextRequest) MessageType() uint8 { return MsgUpdatePDPContextRequest }

// UpdatePDPContextResponse (type 19), per TS 29.060 §7.3.4.
type UpdatePDPContextResponse struct {
	Header            Header
	Cause             Cause
	Recovery          *Recovery
	TEIDData          *TEIDDataI
	TEIDControl       *TEIDControlPlane
	ChargingID        *ChargingID
	PCO               *PCO
	GGSNAddrControl   *GSNAddress
	GGSNAddrUser      *GSNAddress
	QoSProfile        *QoSProfile
	ULI               *ULI
	EvolvedARP        *EvolvedARP
	APNAMBR           *APNAMBR
	BearerControlMode *BearerControlMode
	PrivateExtension  *PrivateExtension
	Additional        []IE
}

func DecodeUpdatePDPContextResponse(b []byte) (UpdatePDPContextResponse, error) {
	h, body, err := decodeMessageBody(b, MsgUpdatePDPContextResponse)
	if err != nil {
		return UpdatePDPContextResponse{}, err
	}
	m := UpdatePDPContextResponse{Header: h}
	seenCause := false
	gsnCount := 0
	err = decodeIEs(body, func(ie IE) error {
		switch v := ie.(type) {
		case Cause:
			m.Cause = v
			seenCause = true
		case Recovery:
			m.Recovery = &v
		case TEIDDataI:
			m.TEIDData = &v
		case TEIDControlPlane:
			m.TEIDControl = &v
		case ChargingID:
			m.ChargingID = &v
		case PCO:
			m.PCO = &v
		case GSNAddress:
			if gsnCount == 0 {
				m.GGSNAddrControl = &v
			} else {
				m.GGSNAddrUser = &v
			}
			gsnCount++
		case QoSProfile:
			m.QoSProfile = &v
		case ULI:
			m.ULI = &v
		case EvolvedARP:
			m.EvolvedARP = &v
		case APNAMBR:
			m.APNAMBR = &v
		case BearerControlMode:
			m.BearerControlMode = &v
		case PrivateExtension:
			m.PrivateExtension = &v
		default:
			m.Additional = append(m.Additional, ie)
		}
		return nil
	})
	if err != nil {
		return UpdatePDPContextResponse{}, err
	}
	if !seenCause {
		return UpdatePDPContextResponse{}, ieErr(ErrMandatoryIEMissing, IECause)
	}
	return m, nil
}

func (m UpdatePDPContextResponse) Marshal(b []byte) []byte {
	start := len(b)
	m.Header.MsgType = MsgUpdatePDPContextResponse
	b = m.Header.Marshal(b)
	b = m.Cause.Marshal(b)
	if m.Recovery != nil {
		b = m.Recovery.Marshal(b)
	}
	if m.TEIDData != nil {
		b = m.TEIDData.Marshal(b)
	}
	if m.TEIDControl != nil {
		b = m.TEIDControl.Marshal(b)
	}
	if m.ChargingID != nil {
		b = m.ChargingID.Marshal(b)
	}
	if m.PCO != nil {
		b = m.PCO.Marshal(b)
	}
	if m.GGSNAddrControl != nil {
		b = m.GGSNAddrControl.Marshal(b)
	}
	if m.GGSNAddrUser != nil {
		b = m.GGSNAddrUser.Marshal(b)
	}
	if m.QoSProfile != nil {
		b = m.QoSProfile.Marshal(b)
	}
	if m.ULI != nil {
		b = m.ULI.Marshal(b)
	}
	if m.EvolvedARP != nil {
		b = m.EvolvedARP.Marshal(b)
	}
	if m.APNAMBR != nil {
		b = m.APNAMBR.Marshal(b)
	}
	if m.BearerControlMode != nil {
		b = m.BearerControlMode.Marshal(b)
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

func (m UpdatePDPContextResponse) MessageType() uint8 { return MsgUpdatePDPContextResponse }

package gtpv1

// CreatePDPContextRequest (type 16), per TS 29.060 §7.3.1. TEID Data I,
// NSAPI, the two SGSN addresses and the QoS profile are mandatory; the
// remaining elements are conditional or optional.
type CreatePDPContextRequest struct {
	Header                  Header
	IMSI                    *IMSI
	RAI                     *RAI
	Recovery                *Recovery
	SelectionMode           *SelectionMode
	TEIDData                TEIDDataI
	TEIDControl             *TEIDControlPlane
	NSAPI                   NSAPI
	LinkedNSAPI             *NSAPI
	ChargingCharacteristics *ChargingCharacteristics
	TraceReference          *TraceReference
	TraceType               *TraceType
	EndUserAddress          *EndUserAddress
	APN                     *APN
	PCO                     *PCO
	SGSNAddrSignalling      GSNAddress
	SGSNAddrUser            GSNAddress
	MSISDN                  *MSISDN
	QoSProfile              QoSProfile
	TFT                     *TFT
	TriggerID               *TriggerID
	OMCID                   *OMCID
	RATType                 *RATType
	ULI                     *ULI
	IMEI                    *IMEI
	CAMELCIC                *CAMELCIC
	AdditionalTraceInfo     *AdditionalTraceInfo
	CorrelationID           *CorrelationID
	EvolvedARP              *EvolvedARP
	ExtendedCommonFlags     *ExtendedCommonFlags
	UCI                     *UCI
	APNAMBR                 *APNAMBR
	SPI                     *SPI
	MappedUEUsageType       *MappedUEUsageType
	PrivateExtension        *PrivateExtension
	Additional              []IE
}

func DecodeCreatePDPContextRequest(b []byte) (CreatePDPContextRequest, error) {
	h, body, err := decodeMessageBody(b, MsgCreatePDPContextRequest)
	if err != nil {
		return CreatePDPContextRequest{}, err
	}
	m := CreatePDPContextRequest{Header: h}
	var (
		seenTEIDData, seenNSAPI, seenQoS bool
		gsnCount, nsapiCount             int
	)
	err = decodeIEs(body, func(ie IE) error {
		switch v := ie.(type) {
		case IMSI:
			m.IMSI = &v
		case RAI:
			m.RAI = &v
		case Recovery:
			m.Recovery = &v
		case SelectionMode:
			m.SelectionMode = &v
		case TEIDDataI:
			m.TEIDData = v
			seenTEIDData = true
		case TEIDControlPlane:
			m.TEIDControl = &v
		case NSAPI:
			// The first occurrence is the NSAPI of the context being
			// created, the second the linked NSAPI.
			if nsapiCount == 0 {
				m.NSAPI = v
				seenNSAPI = true
			} else {
				m.LinkedNSAPI = &v
			}
			nsapiCount++
		case ChargingCharacteristics:
			m.ChargingCharacteristics = &v
		case TraceReference:
			m.TraceReference = &v
		case TraceType:
			m.TraceType = &v
		case EndUserAddress:
			m.EndUserAddress = &v
		case APN:
			m.APN = &v
		case PCO:
			m.PCO = &v
		case GSNAddress:
			// Signalling address first, user traffic address second.
			if gsnCount == 0 {
				m.SGSNAddrSignalling = v
			} else {
				m.SGSNAddrUser = v
			}
			gsnCount++
		case MSISDN:
			m.MSISDN = &v
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
		case IMEI:
			m.IMEI = &v
		case CAMELCIC:
			m.CAMELCIC = &v
		case AdditionalTraceInfo:
			m.AdditionalTraceInfo = &v
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
		case MappedUEUsageType:
			m.MappedUEUsageType = &v
		case PrivateExtension:
			m.PrivateExtension = &v
		default:
			m.Additional = append(m.Additional, ie)
		}
		return nil
	})
	if err != nil {
		return CreatePDPContextRequest{}, err
	}
	switch {
	case !seenTEIDData:
		return CreatePDPContextRequest{}, ieErr(ErrMandatoryIEMissing, IETEIDDataI)
	case !seenNSAPI:
		return CreatePDPContextRequest{}, ieErr(ErrMandatoryIEMissing, IENSAPI)
	case gsnCount < 2:
		return CreatePDPContextRequest{}, ieErr(ErrMandatoryIEMissing, IEGSNAddress)
	case !seenQoS:
		return CreatePDPContextRequest{}, ieErr(ErrMandatoryIEMissing, IEQoSProfile)
	}
	return m, nil
}

func (m CreatePDPContextRequest) Marshal(b []byte) []byte {
	start := len(b)
	m.Header.MsgType = MsgCreatePDPContextRequest
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
	if m.SelectionMode != nil {
		b = m.SelectionMode.Marshal(b)
	}
	b = m.TEIDData.Marshal(b)
	if m.TEIDControl != nil {
		b = m.TEIDControl.Marshal(b)
	}
	b = m.NSAPI.Marshal(b)
	if m.LinkedNSAPI != nil {
		b = m.LinkedNSAPI.Marshal(b)
	}
	if m.ChargingCharacteristics != nil {
		b = m.ChargingCharacteristics.Marshal(b)
	}
	if m.TraceReference != nil {
		b = m.TraceReference.Marshal(b)
	}
	if m.TraceType != nil {
		b = m.TraceType.Marshal(b)
	}
	if m.EndUserAddress != nil {
		b = m.EndUserAddress.Marshal(b)
	}
	if m.APN != nil {
		b = m.APN.Marshal(b)
	}
	if m.PCO != nil {
		b = m.PCO.Marshal(b)
	}
	b = m.SGSNAddrSignalling.Marshal(b)
	b = m.SGSNAddrUser.Marshal(b)
	if m.MSISDN != nil {
		b = m.MSISDN.Marshal(b)
	}
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
	if m.IMEI != nil {
		b = m.IMEI.Marshal(b)
	}
	if m.CAMELCIC != nil {
		b = m.CAMELCIC.Marshal(b)
	}
	if m.AdditionalTraceInfo != nil {
		b = m.AdditionalTraceInfo.Marshal(b)
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
	if m.MappedUEUsageType != nil {
		b = m.MappedUEUsageType.Marshal(b)
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

func (m CreatePDPContextRequest) MessageType() uint8 { return MsgCreatePDPContextRequest }

// CreatePDPContextResponse (type 17), per TS 29.060 §7.3.2. Cause is
// mandatory; everything else is conditional on the cause value.
type CreatePDPContextResponse struct {
	Header            Header
	Cause             Cause
	ReorderingReq     *ReorderingRequired
	Recovery          *Recovery
	TEIDData          *TEIDDataI
	TEIDControl       *TEIDControlPlane
	NSAPI             *NSAPI
	ChargingID        *ChargingID
	EndUserAddress    *EndUserAddress
	PCO               *PCO
	GGSNAddrControl   *GSNAddress
	GGSNAddrUser      *GSNAddress
	QoSProfile        *QoSProfile
	EvolvedARP        *EvolvedARP
	APNAMBR           *APNAMBR
	BearerControlMode *BearerControlMode
	PrivateExtension  *PrivateExtension
	Additional        []IE
}

func DecodeCreatePDPContextResponse(b []byte) (CreatePDPContextResponse, error) {
	h, body, err := decodeMessageBody(b, MsgCreatePDPContextResponse)
	if err != nil {
		return CreatePDPContextResponse{}, err
	}
	m := CreatePDPContextResponse{Header: h}
	seenCause := false
	gsnCount := 0
	err = decodeIEs(body, func(ie IE) error {
		switch v := ie.(type) {
		case Cause:
			m.Cause = v
			seenCause = true
		case ReorderingRequired:
			m.ReorderingReq = &v
		case Recovery:
			m.Recovery = &v
		case TEIDDataI:
			m.TEIDData = &v
		case TEIDControlPlane:
			m.TEIDControl = &v
		case NSAPI:
			m.NSAPI = &v
		case ChargingID:
			m.ChargingID = &v
		case EndUserAddress:
			m.EndUserAddress = &v
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
		return CreatePDPContextResponse{}, err
	}
	if !seenCause {
		return CreatePDPContextResponse{}, ieErr(ErrMandatoryIEMissing, IECause)
	}
	return m, nil
}

func (m CreatePDPContextResponse) Marshal(b []byte) []byte {
	start := len(b)
	m.Header.MsgType = MsgCreatePDPContextResponse
	b = m.Header.Marshal(b)
	b = m.Cause.Marshal(b)
	if m.ReorderingReq != nil {
		b = m.ReorderingReq.Marshal(b)
	}
	if m.Recovery != nil {
		b = m.Recovery.Marshal(b)
	}
	if m.TEIDData != nil {
		b = m.TEIDData.Marshal(b)
	}
	if m.TEIDControl != nil {
		b = m.TEIDControl.Marshal(b)
	}
	if m.NSAPI != nil {
		b = m.NSAPI.Marshal(b)
	}
	if m.ChargingID != nil {
		b = m.ChargingID.Marshal(b)
	}
	if m.EndUserAddress != nil {
		b = m.EndUserAddress.Marshal(b)
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

func (m CreatePDPContextResponse) MessageType() uint8 { return MsgCreatePDPContextResponse }

package gtpv1

import "encoding/binary"

// GTPv1 information element type codes, per TS 29.060 §7.7. Types with
// the MSB clear are TV encoded with a fixed per-type value length; types
// with the MSB set are TLV encoded with an explicit 2-byte length.
const (
	IECause                   uint8 = 1
	IEIMSI                    uint8 = 2
	IERAI                     uint8 = 3
	IEReorderingRequired      uint8 = 8
	IERecovery                uint8 = 14
	IESelectionMode           uint8 = 15
	IETEIDDataI               uint8 = 16
	IETEIDControlPlane        uint8 = 17
	IETeardownInd             uint8 = 19
	IENSAPI                   uint8 = 20
	IEChargingCharacteristics uint8 = 26
	IETraceReference          uint8 = 27
	IETraceType               uint8 = 28
	IEChargingID              uint8 = 127
	IEEndUserAddress          uint8 = 128
	IEAPN                     uint8 = 131
	IEPCO                     uint8 = 132
	IEGSNAddress              uint8 = 133
	IEMSISDN                  uint8 = 134
	IEQoSProfile              uint8 = 135
	IETFT                     uint8 = 137
	IEExtHeaderTypeList       uint8 = 141
	IETriggerID               uint8 = 142
	IEOMCID                   uint8 = 143
	IERATType                 uint8 = 151
	IEULI                     uint8 = 152
	IEIMEI                    uint8 = 154
	IECAMELCIC                uint8 = 155
	IEAdditionalTraceInfo     uint8 = 162
	IECorrelationID           uint8 = 183
	IEBearerControlMode       uint8 = 184
	IEEvolvedARP              uint8 = 191
	IEExtendedCommonFlags     uint8 = 193
	IEUCI                     uint8 = 194
	IEAPNAMBR                 uint8 = 198
	IESPI                     uint8 = 203
	IEULITimestamp            uint8 = 214
	IEMappedUEUsageType       uint8 = 223
	IEPrivateExtension        uint8 = 255
)

// tvValueSize maps TV-framed types to their fixed value length.
var tvValueSize = map[uint8]int{
	IECause:                   1,
	IEIMSI:                    8,
	IERAI:                     6,
	IEReorderingRequired:      1,
	IERecovery:                1,
	IESelectionMode:           1,
	IETEIDDataI:               4,
	IETEIDControlPlane:        4,
	IETeardownInd:             1,
	IENSAPI:                   1,
	IEChargingCharacteristics: 2,
	IETraceReference:          2,
	IETraceType:               2,
	IEChargingID:              4,
}

// IE is implemented by every GTPv1 information element. Marshal appends
// the full wire representation (type, length for TLV framing, value) and
// back-patches the length field. Len reports the exact encoded size.
type IE interface {
	Marshal(b []byte) []byte
	Type() uint8
	Len() int
	IsEmpty() bool
}

// DecodeIE parses one information element from the start of b, returning
// it together with the number of bytes consumed. TLV types not known to
// the codec decode into Unknown and are preserved; TV types not known to
// the codec cannot be framed and fail with ErrInvalidMessageFormat.
func DecodeIE(b []byte) (IE, int, error) {
	if len(b) == 0 {
		return nil, 0, ErrIEInvalidLength
	}
	t := b[0]
	if t&0x80 == 0 {
		size, ok := tvValueSize[t]
		if !ok {
			return nil, 0, ieErr(ErrInvalidMessageFormat, t)
		}
		if len(b) < size+1 {
			return nil, 0, ieErr(ErrIEInvalidLength, t)
		}
		ie, err := decodeTV(t, b)
		return ie, size + 1, err
	}
	// Extension Header Type List is the lone TLV-range type with a
	// single-byte length octet.
	if t == IEExtHeaderTypeList {
		ie, err := DecodeExtHeaderTypeList(b)
		if err != nil {
			return nil, 0, err
		}
		return ie, ie.Len(), nil
	}
	if len(b) < 3 {
		return nil, 0, ieErr(ErrIEInvalidLength, t)
	}
	length := int(binary.BigEndian.Uint16(b[1:3]))
	if len(b) < length+3 {
		return nil, 0, ieErr(ErrIEInvalidLength, t)
	}
	ie, err := decodeTLV(t, b)
	return ie, length + 3, err
}

func decodeTV(t uint8, b []byte) (IE, error) {
	switch t {
	case IECause:
		return DecodeCause(b)
	case IEIMSI:
		return DecodeIMSI(b)
	case IERAI:
		return DecodeRAI(b)
	case IEReorderingRequired:
		return DecodeReorderingRequired(b)
	case IERecovery:
		return DecodeRecovery(b)
	case IESelectionMode:
		return DecodeSelectionMode(b)
	case IETEIDDataI:
		return DecodeTEIDDataI(b)
	case IETEIDControlPlane:
		return DecodeTEIDControlPlane(b)
	case IETeardownInd:
		return DecodeTeardownInd(b)
	case IENSAPI:
		return DecodeNSAPI(b)
	case IEChargingCharacteristics:
		return DecodeChargingCharacteristics(b)
	case IETraceReference:
		return DecodeTraceReference(b)
	case IETraceType:
		return DecodeTraceType(b)
	case IEChargingID:
		return DecodeChargingID(b)
	}
	return nil, ieErr(ErrInvalidMessageFormat, t)
}

func decodeTLV(t uint8, b []byte) (IE, error) {
	switch t {
	case IEEndUserAddress:
		return DecodeEndUserAddress(b)
	case IEAPN:
		return DecodeAPN(b)
	case IEPCO:
		return DecodePCO(b)
	case IEGSNAddress:
		return DecodeGSNAddress(b)
	case IEMSISDN:
		return DecodeMSISDN(b)
	case IEQoSProfile:
		return DecodeQoSProfile(b)
	case IETFT:
		return DecodeTFT(b)
	case IETriggerID:
		return DecodeTriggerID(b)
	case IEOMCID:
		return DecodeOMCID(b)
	case IERATType:
		return DecodeRATType(b)
	case IEULI:
		return DecodeULI(b)
	case IEIMEI:
		return DecodeIMEI(b)
	case IECAMELCIC:
		return DecodeCAMELCIC(b)
	case IEAdditionalTraceInfo:
		return DecodeAdditionalTraceInfo(b)
	case IECorrelationID:
		return DecodeCorrelationID(b)
	case IEBearerControlMode:
		return DecodeBearerControlMode(b)
	case IEEvolvedARP:
		return DecodeEvolvedARP(b)
	case IEExtendedCommonFlags:
		return DecodeExtendedCommonFlags(b)
	case IEUCI:
		return DecodeUCI(b)
	case IEAPNAMBR:
		return DecodeAPNAMBR(b)
	case IESPI:
		return DecodeSPI(b)
	case IEULITimestamp:
		return DecodeULITimestamp(b)
	case IEMappedUEUsageType:
		return DecodeMappedUEUsageType(b)
	case IEPrivateExtension:
		return DecodePrivateExtension(b)
	}
	return DecodeUnknown(b)
}

// Unknown preserves a TLV information element whose type the codec does
// not recognize, so that messages carrying it round-trip losslessly.
type Unknown struct {
	T      uint8
	Length uint16
	Value  []byte
}

func DecodeUnknown(b []byte) (Unknown, error) {
	if len(b) < 3 {
		return Unknown{}, ieErr(ErrIEInvalidLength, b[0])
	}
	length := binary.BigEndian.Uint16(b[1:3])
	if len(b) < int(length)+3 {
		return Unknown{}, ieErr(ErrIEInvalidLength, b[0])
	}
	return Unknown{T: b[0], Length: length, Value: cloneBytes(b[3 : 3+int(length)])}, nil
}

func (i Unknown) Marshal(b []byte) []byte {
	start := len(b)
	b = append(b, i.T, 0, 0)
	b = append(b, i.Value...)
	setTLVLength(b, start)
	return b
}

func (i Unknown) Type() uint8   { return i.T }
func (i Unknown) Len() int      { return len(i.Value) + 3 }
func (i Unknown) IsEmpty() bool { return len(i.Value) == 0 }

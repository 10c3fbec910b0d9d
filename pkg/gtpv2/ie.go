package gtpv2

import (
	"encoding/binary"
	"sort"
)

// GTPv2 information element type codes, per TS 29.274 §8.1. All IEs use
// the TLIV framing: type, 2-byte length, CR/instance octet, value.
const (
	IEIMSI              uint8 = 1
	IECause             uint8 = 2
	IERecovery          uint8 = 3
	IEAPN               uint8 = 71
	IEAMBR              uint8 = 72
	IEEBI               uint8 = 73
	IEIPAddress         uint8 = 74
	IEMEI               uint8 = 75
	IEMSISDN            uint8 = 76
	IEIndication        uint8 = 77
	IEPCO               uint8 = 78
	IEPAA               uint8 = 79
	IEBearerQoS         uint8 = 80
	IEFlowQoS           uint8 = 81
	IERATType           uint8 = 82
	IEServingNetwork    uint8 = 83
	IEBearerTFT         uint8 = 84
	IETAD               uint8 = 85
	IEULI               uint8 = 86
	IEFTEID             uint8 = 87
	IETMSI              uint8 = 88
	IEDelayValue        uint8 = 92
	IEPTI               uint8 = 100
	IEHopCounter        uint8 = 113
	IEPLMNID            uint8 = 120
	IEPortNumber        uint8 = 126
	IEEmlppPriority     uint8 = 134
	IERFSPIndex         uint8 = 144
	IECSGID             uint8 = 147
	IEServiceIndicator  uint8 = 149
	IEDetachType        uint8 = 150
	IECNOSE             uint8 = 173
	IESequenceNumber    uint8 = 183
	IEMappedUEUsageType uint8 = 200
	IEUPFSIF            uint8 = 202
	IEPrivateExtension  uint8 = 255
)

const minIESize = 4

// IE is implemented by every GTPv2 information element. Marshal appends
// the TLIV encoding and back-patches the length field; Instance returns
// the 4-bit instance that disambiguates repeated types within a message.
type IE interface {
	Marshal(b []byte) []byte
	Type() uint8
	Instance() uint8
	Len() int
	IsEmpty() bool
}

// DecodeIE parses one TLIV information element from the start of b,
// returning it and the number of bytes consumed. Unrecognized types
// decode into Unknown and are preserved.
func DecodeIE(b []byte) (IE, int, error) {
	if len(b) < minIESize {
		return nil, 0, ErrIEInvalidLength
	}
	t := b[0]
	length := int(binary.BigEndian.Uint16(b[1:3]))
	if len(b) < length+minIESize {
		return nil, 0, ieErr(ErrIEInvalidLength, t)
	}
	ie, err := decodeTLIV(t, b)
	if err != nil {
		return nil, 0, err
	}
	return ie, length + minIESize, nil
}

func decodeTLIV(t uint8, b []byte) (IE, error) {
	switch t {
	case IEIMSI:
		return DecodeIMSI(b)
	case IECause:
		return DecodeCause(b)
	case IERecovery:
		return DecodeRecovery(b)
	case IEAPN:
		return DecodeAPN(b)
	case IEAMBR:
		return DecodeAMBR(b)
	case IEEBI:
		return DecodeEBI(b)
	case IEIPAddress:
		return DecodeIPAddress(b)
	case IEMEI:
		return DecodeMEI(b)
	case IEMSISDN:
		return DecodeMSISDN(b)
	case IEIndication:
		return DecodeIndication(b)
	case IEPCO:
		return DecodePCO(b)
	case IEPAA:
		return DecodePAA(b)
	case IEBearerQoS:
		return DecodeBearerQoS(b)
	case IEFlowQoS:
		return DecodeFlowQoS(b)
	case IERATType:
		return DecodeRATType(b)
	case IEServingNetwork:
		return DecodeServingNetwork(b)
	case IEBearerTFT:
		return DecodeBearerTFT(b)
	case IETAD:
		return DecodeTAD(b)
	case IEULI:
		return DecodeULI(b)
	case IEFTEID:
		return DecodeFTEID(b)
	case IETMSI:
		return DecodeTMSI(b)
	case IEDelayValue:
		return DecodeDelayValue(b)
	case IEPTI:
		return DecodePTI(b)
	case IEHopCounter:
		return DecodeHopCounter(b)
	case IEPLMNID:
		return DecodePLMNID(b)
	case IEPortNumber:
		return DecodePortNumber(b)
	case IEEmlppPriority:
		return DecodeEmlppPriority(b)
	case IERFSPIndex:
		return DecodeRFSPIndex(b)
	case IECSGID:
		return DecodeCSGID(b)
	case IEServiceIndicator:
		return DecodeServiceIndicator(b)
	case IEDetachType:
		return DecodeDetachType(b)
	case IECNOSE:
		return DecodeCNOSE(b)
	case IESequenceNumber:
		return DecodeSequenceNumber(b)
	case IEMappedUEUsageType:
		return DecodeMappedUEUsageType(b)
	case IEUPFSIF:
		return DecodeUPFSIF(b)
	case IEPrivateExtension:
		return DecodePrivateExtension(b)
	}
	return DecodeUnknown(b)
}

// sortIEs orders IEs ascending by type, instance ascending within equal
// type, the emission order required of GTPv2 encoders.
func sortIEs(ies []IE) {
	sort.SliceStable(ies, func(a, b int) bool {
		if ies[a].Type() != ies[b].Type() {
			return ies[a].Type() < ies[b].Type()
		}
		return ies[a].Instance() < ies[b].Instance()
	})
}

// marshalIEs emits ies in the canonical ascending order.
func marshalIEs(b []byte, ies []IE) []byte {
	ordered := make([]IE, len(ies))
	copy(ordered, ies)
	sortIEs(ordered)
	for _, ie := range ordered {
		b = ie.Marshal(b)
	}
	return b
}

// Unknown preserves an information element whose type the codec does
// not recognize.
type Unknown struct {
	T     uint8
	Ins   uint8
	Value []byte
}

func DecodeUnknown(b []byte) (Unknown, error) {
	if len(b) < minIESize {
		return Unknown{}, ieErr(ErrIEInvalidLength, b[0])
	}
	length := int(binary.BigEndian.Uint16(b[1:3]))
	if len(b) < length+minIESize {
		return Unknown{}, ieErr(ErrIEInvalidLength, b[0])
	}
	return Unknown{T: b[0], Ins: b[3] & 0x0f, Value: cloneBytes(b[4 : 4+length])}, nil
}

func (i Unknown) Marshal(b []byte) []byte {
	start := len(b)
	b = append(b, i.T, 0, 0, i.Ins&0x0f)
	b = append(b, i.Value...)
	setTLIVLength(b, start)
	return b
}

func (i Unknown) Type() uint8     { return i.T }
func (i Unknown) Instance() uint8 { return i.Ins }
func (i Unknown) Len() int        { return len(i.Value) + minIESize }
func (i Unknown) IsEmpty() bool   { return len(i.Value) == 0 }

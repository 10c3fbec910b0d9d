package gtpv2

import "encoding/binary"

// Cause values commonly used in responses (TS 29.274 §8.4).
const (
	CauseRequestAccepted      uint8 = 16
	CauseContextNotFound      uint8 = 64
	CauseInvalidMessageFormat uint8 = 65
	CauseVersionNotSupported  uint8 = 66
	CauseMandatoryIEMissing   uint8 = 70
)

// Cause IE (type 2), per TS 29.274 §8.4. A 6-octet cause additionally
// identifies the offending IE of the rejected request.
type Cause struct {
	Ins   uint8
	Value uint8
	PCE   bool
	BCE   bool
	CS    bool
	// Offending IE quadruplet, present only when the length is 6.
	OffendingIEType uint8
	HasOffendingIE  bool
}

func DecodeCause(b []byte) (Cause, error) {
	if len(b) < minIESize+2 {
		return Cause{}, ieErr(ErrIEInvalidLength, IECause)
	}
	length := int(binary.BigEndian.Uint16(b[1:3]))
	if length < 2 || len(b) < length+minIESize {
		return Cause{}, ieErr(ErrIEInvalidLength, IECause)
	}
	ie := Cause{
		Ins:   b[3] & 0x0f,
		Value: b[4],
		PCE:   b[5]&0x04 != 0,
		BCE:   b[5]&0x02 != 0,
		CS:    b[5]&0x01 != 0,
	}
	if length == 6 {
		ie.OffendingIEType = b[6]
		ie.HasOffendingIE = true
	}
	return ie, nil
}

func (i Cause) Marshal(b []byte) []byte {
	var flags uint8
	if i.PCE {
		flags |= 0x04
	}
	if i.BCE {
		flags |= 0x02
	}
	if i.CS {
		flags |= 0x01
	}
	start := len(b)
	b = append(b, IECause, 0, 0, i.Ins&0x0f, i.Value, flags)
	if i.HasOffendingIE {
		b = append(b, i.OffendingIEType, 0x00, 0x00, 0x00)
	}
	setTLIVLength(b, start)
	return b
}

func (i Cause) Type() uint8     { return IECause }
func (i Cause) Instance() uint8 { return i.Ins }

func (i Cause) Len() int {
	if i.HasOffendingIE {
		return 6 + minIESize
	}
	return 2 + minIESize
}

func (i Cause) IsEmpty() bool { return false }

// Accepted reports whether the cause value signals acceptance.
func (i Cause) Accepted() bool { return i.Value >= 16 && i.Value <= 63 }

// Recovery IE (type 3), per TS 29.274 §8.5.
type Recovery struct {
	Ins            uint8
	RestartCounter uint8
}

func DecodeRecovery(b []byte) (Recovery, error) {
	if len(b) < minIESize+1 {
		return Recovery{}, ieErr(ErrIEInvalidLength, IERecovery)
	}
	return Recovery{Ins: b[3] & 0x0f, RestartCounter: b[4]}, nil
}

func (i Recovery) Marshal(b []byte) []byte {
	start := len(b)
	b = append(b, IERecovery, 0, 0, i.Ins&0x0f, i.RestartCounter)
	setTLIVLength(b, start)
	return b
}

func (i Recovery) Type() uint8     { return IERecovery }
func (i Recovery) Instance() uint8 { return i.Ins }
func (i Recovery) Len() int        { return 1 + minIESize }
func (i Recovery) IsEmpty() bool   { return false }

// EBI IE (type 73), per TS 29.274 §8.8. Four-bit EPS bearer identity.
type EBI struct {
	Ins   uint8
	Value uint8
}

func DecodeEBI(b []byte) (EBI, error) {
	if len(b) < minIESize+1 {
		return EBI{}, ieErr(ErrIEInvalidLength, IEEBI)
	}
	return EBI{Ins: b[3] & 0x0f, Value: b[4] & 0x0f}, nil
}

func (i EBI) Marshal(b []byte) []byte {
	start := len(b)
	b = append(b, IEEBI, 0, 0, i.Ins&0x0f, i.Value&0x0f)
	setTLIVLength(b, start)
	return b
}

func (i EBI) Type() uint8     { return IEEBI }
func (i EBI) Instance() uint8 { return i.Ins }
func (i EBI) Len() int        { return 1 + minIESize }
func (i EBI) IsEmpty() bool   { return false }

// PTI IE (type 100), per TS 29.274 §8.35.
type PTI struct {
	Ins   uint8
	Value uint8
}

func DecodePTI(b []byte) (PTI, error) {
	if len(b) < minIESize+1 {
		return PTI{}, ieErr(ErrIEInvalidLength, IEPTI)
	}
	return PTI{Ins: b[3] & 0x0f, Value: b[4]}, nil
}

func (i PTI) Marshal(b []byte) []byte {
	start := len(b)
	b = append(b, IEPTI, 0, 0, i.Ins&0x0f, i.Value)
	setTLIVLength(b, start)
	return b
}

func (i PTI) Type() uint8     { return IEPTI }
func (i PTI) Instance() uint8 { return i.Ins }
func (i PTI) Len() int        { return 1 + minIESize }
func (i PTI) IsEmpty() bool   { return false }

// HopCounter IE (type 113), per TS 29.274 §8.40.
type HopCounter struct {
	Ins   uint8
	Value uint8
}

func DecodeHopCounter(b []byte) (HopCounter, error) {
	if len(b) < minIESize+1 {
		return HopCounter{}, ieErr(ErrIEInvalidLength, IEHopCounter)
	}
	return HopCounter{Ins: b[3] & 0x0f, Value: b[4]}, nil
}

func (i HopCounter) Marshal(b []byte) []byte {
	start := len(b)
	b = append(b, IEHopCounter, 0, 0, i.Ins&0x0f, i.Value)
	setTLIVLength(b, start)
	return b
}

func (i HopCounter) Type() uint8     { return IEHopCounter }
func (i HopCounter) Instance() uint8 { return i.Ins }
func (i HopCounter) Len() int        { return 1 + minIESize }
func (i HopCounter) IsEmpty() bool   { return false }

// TMSI IE (type 88), per TS 29.274 §8.23.
type TMSI struct {
	Ins   uint8
	Value uint32
}

func DecodeTMSI(b []byte) (TMSI, error) {
	if len(b) < minIESize+4 {
		return TMSI{}, ieErr(ErrIEInvalidLength, IETMSI)
	}
	return TMSI{Ins: b[3] & 0x0f, Value: binary.BigEndian.Uint32(b[4:8])}, nil
}

func (i TMSI) Marshal(b []byte) []byte {
	start := len(b)
	b = append(b, IETMSI, 0, 0, i.Ins&0x0f)
	b = binary.BigEndian.AppendUint32(b, i.Value)
	setTLIVLength(b, start)
	return b
}

func (i TMSI) Type() uint8     { return IETMSI }
func (i TMSI) Instance() uint8 { return i.Ins }
func (i TMSI) Len() int        { return 4 + minIESize }
func (i TMSI) IsEmpty() bool   { return false }

// DelayValue IE (type 92), per TS 29.274 §8.27. Integer multiples of
// 50 milliseconds, or zero.
type DelayValue struct {
	Ins   uint8
	Value uint8
}

func DecodeDelayValue(b []byte) (DelayValue, error) {
	if len(b) < minIESize+1 {
		return DelayValue{}, ieErr(ErrIEInvalidLength, IEDelayValue)
	}
	return DelayValue{Ins: b[3] & 0x0f, Value: b[4]}, nil
}

func (i DelayValue) Marshal(b []byte) []byte {
	start := len(b)
	b = append(b, IEDelayValue, 0, 0, i.Ins&0x0f, i.Value)
	setTLIVLength(b, start)
	return b
}

func (i DelayValue) Type() uint8     { return IEDelayValue }
func (i DelayValue) Instance() uint8 { return i.Ins }
func (i DelayValue) Len() int        { return 1 + minIESize }
func (i DelayValue) IsEmpty() bool   { return false }

// SequenceNumber IE (type 183), per TS 29.274 §8.55.
type SequenceNumber struct {
	Ins   uint8
	Value uint32
}

func DecodeSequenceNumber(b []byte) (SequenceNumber, error) {
	if len(b) < minIESize+4 {
		return SequenceNumber{}, ieErr(ErrIEInvalidLength, IESequenceNumber)
	}
	return SequenceNumber{Ins: b[3] & 0x0f, Value: binary.BigEndian.Uint32(b[4:8])}, nil
}

func (i SequenceNumber) Marshal(b []byte) []byte {
	start := len(b)
	b = append(b, IESequenceNumber, 0, 0, i.Ins&0x0f)
	b = binary.BigEndian.AppendUint32(b, i.Value)
	setTLIVLength(b, start)
	return b
}

func (i SequenceNumber) Type() uint8     { return IESequenceNumber }
func (i SequenceNumber) Instance() uint8 { return i.Ins }
func (i SequenceNumber) Len() int        { return 4 + minIESize }
func (i SequenceNumber) IsEmpty() bool   { return false }

// RFSPIndex IE (type 144), per TS 29.274 §8.77. Subscriber profile ID
// between 1 and 256.
type RFSPIndex struct {
	Ins   uint8
	Value uint16
}

func DecodeRFSPIndex(b []byte) (RFSPIndex, error) {
	if len(b) < minIESize+2 {
		return RFSPIndex{}, ieErr(ErrIEInvalidLength, IERFSPIndex)
	}
	return RFSPIndex{Ins: b[3] & 0x0f, Value: binary.BigEndian.Uint16(b[4:6])}, nil
}

func (i RFSPIndex) Marshal(b []byte) []byte {
	start := len(b)
	b = append(b, IERFSPIndex, 0, 0, i.Ins&0x0f)
	b = binary.BigEndian.AppendUint16(b, i.Value)
	setTLIVLength(b, start)
	return b
}

func (i RFSPIndex) Type() uint8     { return IERFSPIndex }
func (i RFSPIndex) Instance() uint8 { return i.Ins }
func (i RFSPIndex) Len() int        { return 2 + minIESize }
func (i RFSPIndex) IsEmpty() bool   { return false }

// PortNumber IE (type 126), per TS 29.274 §8.52.
type PortNumber struct {
	Ins  uint8
	Port uint16
}

func DecodePortNumber(b []byte) (PortNumber, error) {
	if len(b) < minIESize+2 {
		return PortNumber{}, ieErr(ErrIEInvalidLength, IEPortNumber)
	}
	return PortNumber{Ins: b[3] & 0x0f, Port: binary.BigEndian.Uint16(b[4:6])}, nil
}

func (i PortNumber) Marshal(b []byte) []byte {
	start := len(b)
	b = append(b, IEPortNumber, 0, 0, i.Ins&0x0f)
	b = binary.BigEndian.AppendUint16(b, i.Port)
	setTLIVLength(b, start)
	return b
}

func (i PortNumber) Type() uint8     { return IEPortNumber }
func (i PortNumber) Instance() uint8 { return i.Ins }
func (i PortNumber) Len() int        { return 2 + minIESize }
func (i PortNumber) IsEmpty() bool   { return false }

// EmlppPriority IE (type 134), per TS 29.274 §8.64. Three-bit priority.
type EmlppPriority struct {
	Ins      uint8
	Priority uint8
}

func DecodeEmlppPriority(b []byte) (EmlppPriority, error) {
	if len(b) < minIESize+1 {
		return EmlppPriority{}, ieErr(ErrIEInvalidLength, IEEmlppPriority)
	}
	return EmlppPriority{Ins: b[3] & 0x0f, Priority: b[4] & 0x07}, nil
}

func (i EmlppPriority) Marshal(b []byte) []byte {
	start := len(b)
	b = append(b, IEEmlppPriority, 0, 0, i.Ins&0x0f, i.Priority&0x07)
	setTLIVLength(b, start)
	return b
}

func (i EmlppPriority) Type() uint8     { return IEEmlppPriority }
func (i EmlppPriority) Instance() uint8 { return i.Ins }
func (i EmlppPriority) Len() int        { return 1 + minIESize }
func (i EmlppPriority) IsEmpty() bool   { return false }

// CSGID IE (type 147), per TS 29.274 §8.74. 27-bit closed subscriber
// group identity.
type CSGID struct {
	Ins   uint8
	Value uint32
}

func DecodeCSGID(b []byte) (CSGID, error) {
	if len(b) < minIESize+4 {
		return CSGID{}, ieErr(ErrIEInvalidLength, IECSGID)
	}
	return CSGID{Ins: b[3] & 0x0f, Value: binary.BigEndian.Uint32(b[4:8]) & 0x07ffffff}, nil
}

func (i CSGID) Marshal(b []byte) []byte {
	start := len(b)
	b = append(b, IECSGID, 0, 0, i.Ins&0x0f)
	b = binary.BigEndian.AppendUint32(b, i.Value&0x07ffffff)
	setTLIVLength(b, start)
	return b
}

func (i CSGID) Type() uint8     { return IECSGID }
func (i CSGID) Instance() uint8 { return i.Ins }
func (i CSGID) Len() int        { return 4 + minIESize }
func (i CSGID) IsEmpty() bool   { return false }

// ServiceIndicator IE (type 149), per TS 29.274 §8.79. 1 is CS call
// indicator, 2 is SMS indicator.
type ServiceIndicator struct {
	Ins   uint8
	Value uint8
}

func DecodeServiceIndicator(b []byte) (ServiceIndicator, error) {
	if len(b) < minIESize+1 {
		return ServiceIndicator{}, ieErr(ErrIEInvalidLength, IEServiceIndicator)
	}
	return ServiceIndicator{Ins: b[3] & 0x0f, Value: b[4]}, nil
}

func (i ServiceIndicator) Marshal(b []byte) []byte {
	start := len(b)
	b = append(b, IEServiceIndicator, 0, 0, i.Ins&0x0f, i.Value)
	setTLIVLength(b, start)
	return b
}

func (i ServiceIndicator) Type() uint8     { return IEServiceIndicator }
func (i ServiceIndicator) Instance() uint8 { return i.Ins }
func (i ServiceIndicator) Len() int        { return 1 + minIESize }
func (i ServiceIndicator) IsEmpty() bool   { return false }

// DetachType IE (type 150), per TS 29.274 §8.80. 1 is PS detach, 2 is
// combined PS/CS detach.
type DetachType struct {
	Ins   uint8
	Value uint8
}

func DecodeDetachType(b []byte) (DetachType, error) {
	if len(b) < minIESize+1 {
		return DetachType{}, ieErr(ErrIEInvalidLength, IEDetachType)
	}
	return DetachType{Ins: b[3] & 0x0f, Value: b[4]}, nil
}

func (i DetachType) Marshal(b []byte) []byte {
	start := len(b)
	b = append(b, IEDetachType, 0, 0, i.Ins&0x0f, i.Value)
	setTLIVLength(b, start)
	return b
}

func (i DetachType) Type() uint8     { return IEDetachType }
func (i DetachType) Instance() uint8 { return i.Ins }
func (i DetachType) Len() int        { return 1 + minIESize }
func (i DetachType) IsEmpty() bool   { return false }

// CNOSE IE (type 173), per TS 29.274 §8.97. Two-bit selection entity
// for the CN operator.
type CNOSE struct {
	Ins   uint8
	Value uint8
}

func DecodeCNOSE(b []byte) (CNOSE, error) {
	if len(b) < minIESize+1 {
		return CNOSE{}, ieErr(ErrIEInvalidLength, IECNOSE)
	}
	return CNOSE{Ins: b[3] & 0x0f, Value: b[4] & 0x03}, nil
}

func (i CNOSE) Marshal(b []byte) []byte {
	start := len(b)
	b = append(b, IECNOSE, 0, 0, i.Ins&0x0f, i.Value&0x03)
	setTLIVLength(b, start)
	return b
}

func (i CNOSE) Type() uint8     { return IECNOSE }
func (i CNOSE) Instance() uint8 { return i.Ins }
func (i CNOSE) Len() int        { return 1 + minIESize }
func (i CNOSE) IsEmpty() bool   { return false }

// MappedUEUsageType IE (type 200), per TS 29.274 §8.130.
type MappedUEUsageType struct {
	Ins       uint8
	UsageType uint16
}

func DecodeMappedUEUsageType(b []byte) (MappedUEUsageType, error) {
	if len(b) < minIESize+2 {
		return MappedUEUsageType{}, ieErr(ErrIEInvalidLength, IEMappedUEUsageType)
	}
	return MappedUEUsageType{Ins: b[3] & 0x0f, UsageType: binary.BigEndian.Uint16(b[4:6])}, nil
}

func (i MappedUEUsageType) Marshal(b []byte) []byte {
	start := len(b)
	b = append(b, IEMappedUEUsageType, 0, 0, i.Ins&0x0f)
	b = binary.BigEndian.AppendUint16(b, i.UsageType)
	setTLIVLength(b, start)
	return b
}

func (i MappedUEUsageType) Type() uint8     { return IEMappedUEUsageType }
func (i MappedUEUsageType) Instance() uint8 { return i.Ins }
func (i MappedUEUsageType) Len() int        { return 2 + minIESize }
func (i MappedUEUsageType) IsEmpty() bool   { return false }

// UPFSIF IE (type 202), per TS 29.274 §8.132. Only the DCNR flag is
// defined.
type UPFSIF struct {
	Ins  uint8
	DCNR bool
}

func DecodeUPFSIF(b []byte) (UPFSIF, error) {
	if len(b) < minIESize+1 {
		return UPFSIF{}, ieErr(ErrIEInvalidLength, IEUPFSIF)
	}
	return UPFSIF{Ins: b[3] & 0x0f, DCNR: b[4]&0x01 != 0}, nil
}

func (i UPFSIF) Marshal(b []byte) []byte {
	var v uint8
	if i.DCNR {
		v = 0x01
	}
	start := len(b)
	b = append(b, IEUPFSIF, 0, 0, i.Ins&0x0f, v)
	setTLIVLength(b, start)
	return b
}

func (i UPFSIF) Type() uint8     { return IEUPFSIF }
func (i UPFSIF) Instance() uint8 { return i.Ins }
func (i UPFSIF) Len() int        { return 1 + minIESize }
func (i UPFSIF) IsEmpty() bool   { return false }

// PrivateExtension IE (type 255), per TS 29.274 §8.67.
type PrivateExtension struct {
	Ins          uint8
	EnterpriseID uint16
	Value        []byte
}

func DecodePrivateExtension(b []byte) (PrivateExtension, error) {
	if len(b) < minIESize+2 {
		return PrivateExtension{}, ieErr(ErrIEInvalidLength, IEPrivateExtension)
	}
	length := int(binary.BigEndian.Uint16(b[1:3]))
	if length < 2 || len(b) < length+minIESize {
		return PrivateExtension{}, ieErr(ErrIEInvalidLength, IEPrivateExtension)
	}
	return PrivateExtension{
		Ins:          b[3] & 0x0f,
		EnterpriseID: binary.BigEndian.Uint16(b[4:6]),
		Value:        cloneBytes(b[6 : 4+length]),
	}, nil
}

func (i PrivateExtension) Marshal(b []byte) []byte {
	start := len(b)
	b = append(b, IEPrivateExtension, 0, 0, i.Ins&0x0f)
	b = binary.BigEndian.AppendUint16(b, i.EnterpriseID)
	b = append(b, i.Value...)
	setTLIVLength(b, start)
	return b
}

func (i PrivateExtension) Type() uint8     { return IEPrivateExtension }
func (i PrivateExtension) Instance() uint8 { return i.Ins }
func (i PrivateExtension) Len() int        { return len(i.Value) + 2 + minIESize }
func (i PrivateExtension) IsEmpty() bool   { return false }

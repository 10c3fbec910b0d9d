package gtpv1

import "encoding/binary"

// RAT type values (TS 29.060 §7.7.50).
const (
	RATTypeUTRAN   uint8 = 1
	RATTypeGERAN   uint8 = 2
	RATTypeWLAN    uint8 = 3
	RATTypeGAN     uint8 = 4
	RATTypeHSPAEvo uint8 = 5
	RATTypeEUTRAN  uint8 = 6
)

// RATType IE (type 151, TLV). Values above EUTRAN are rejected.
type RATType struct {
	RAT uint8
}

func DecodeRATType(b []byte) (RATType, error) {
	if len(b) < 4 {
		return RATType{}, ieErr(ErrIEInvalidLength, IERATType)
	}
	if b[3] > RATTypeEUTRAN {
		return RATType{}, ieErr(ErrIEIncorrect, IERATType)
	}
	return RATType{RAT: b[3]}, nil
}

func (i RATType) Marshal(b []byte) []byte {
	start := len(b)
	b = append(b, IERATType, 0, 0, i.RAT)
	setTLVLength(b, start)
	return b
}

func (i RATType) Type() uint8   { return IERATType }
func (i RATType) Len() int      { return 4 }
func (i RATType) IsEmpty() bool { return false }

// ULI geographic location types (TS 29.060 §7.7.51).
const (
	ULITypeCGI uint8 = 0
	ULITypeSAI uint8 = 1
	ULITypeRAI uint8 = 2
)

// ULI IE (type 152, TLV). User location: PLMN plus LAC and a CI, SAC or
// RAC depending on the location type.
type ULI struct {
	LocationType uint8
	MCC          uint16
	MNC          uint16
	LAC          uint16
	// CI, SAC or RAC depending on LocationType; a RAC occupies only the
	// high octet on the wire.
	Value uint16
}

func DecodeULI(b []byte) (ULI, error) {
	if len(b) < 11 {
		return ULI{}, ieErr(ErrIEInvalidLength, IEULI)
	}
	if b[3] > ULITypeRAI {
		return ULI{}, ieErr(ErrIEIncorrect, IEULI)
	}
	mcc, mnc := mccMncDecode(b[4:7])
	return ULI{
		LocationType: b[3],
		MCC:          mcc,
		MNC:          mnc,
		LAC:          binary.BigEndian.Uint16(b[7:9]),
		Value:        binary.BigEndian.Uint16(b[9:11]),
	}, nil
}

func (i ULI) Marshal(b []byte) []byte {
	start := len(b)
	b = append(b, IEULI, 0, 0, i.LocationType)
	b = append(b, mccMncEncode(i.MCC, i.MNC)...)
	b = binary.BigEndian.AppendUint16(b, i.LAC)
	b = binary.BigEndian.AppendUint16(b, i.Value)
	setTLVLength(b, start)
	return b
}

func (i ULI) Type() uint8   { return IEULI }
func (i ULI) Len() int      { return 11 }
func (i ULI) IsEmpty() bool { return false }

// ULITimestamp IE (type 214, TLV). Seconds since 1900-01-01 00:00:00
// UTC, per TS 29.060 §7.7.114.
type ULITimestamp struct {
	Timestamp uint32
}

func DecodeULITimestamp(b []byte) (ULITimestamp, error) {
	if len(b) < 7 {
		return ULITimestamp{}, ieErr(ErrIEInvalidLength, IEULITimestamp)
	}
	return ULITimestamp{Timestamp: binary.BigEndian.Uint32(b[3:7])}, nil
}

func (i ULITimestamp) Marshal(b []byte) []byte {
	start := len(b)
	b = append(b, IEULITimestamp, 0, 0)
	b = binary.BigEndian.AppendUint32(b, i.Timestamp)
	setTLVLength(b, start)
	return b
}

func (i ULITimestamp) Type() uint8   { return IEULITimestamp }
func (i ULITimestamp) Len() int      { return 7 }
func (i ULITimestamp) IsEmpty() bool { return false }

// ExtendedCommonFlags IE (type 193, TLV). Flag bits per TS 29.060
// §7.7.93, carried as-is.
type ExtendedCommonFlags struct {
	Flags uint8
}

func DecodeExtendedCommonFlags(b []byte) (ExtendedCommonFlags, error) {
	if len(b) < 4 {
		return ExtendedCommonFlags{}, ieErr(ErrIEInvalidLength, IEExtendedCommonFlags)
	}
	return ExtendedCommonFlags{Flags: b[3]}, nil
}

func (i ExtendedCommonFlags) Marshal(b []byte) []byte {
	start := len(b)
	b = append(b, IEExtendedCommonFlags, 0, 0, i.Flags)
	setTLVLength(b, start)
	return b
}

func (i ExtendedCommonFlags) Type() uint8   { return IEExtendedCommonFlags }
func (i ExtendedCommonFlags) Len() int      { return 4 }
func (i ExtendedCommonFlags) IsEmpty() bool { return false }

// UCI IE (type 194, TLV). User CSG information: PLMN, 27-bit CSG ID,
// access mode and membership indication, per TS 29.060 §7.7.94.
type UCI struct {
	MCC        uint16
	MNC        uint16
	CSGID      uint32
	AccessMode uint8
	CMI        bool
}

func DecodeUCI(b []byte) (UCI, error) {
	if len(b) < 11 {
		return UCI{}, ieErr(ErrIEInvalidLength, IEUCI)
	}
	mcc, mnc := mccMncDecode(b[3:6])
	return UCI{
		MCC:        mcc,
		MNC:        mnc,
		CSGID:      binary.BigEndian.Uint32(b[6:10]) & 0x07ffffff,
		AccessMode: b[10] >> 6,
		CMI:        b[10]&0x01 != 0,
	}, nil
}

func (i UCI) Marshal(b []byte) []byte {
	start := len(b)
	b = append(b, IEUCI, 0, 0)
	b = append(b, mccMncEncode(i.MCC, i.MNC)...)
	b = binary.BigEndian.AppendUint32(b, i.CSGID&0x07ffffff)
	v := i.AccessMode << 6
	if i.CMI {
		v |= 0x01
	}
	b = append(b, v)
	setTLVLength(b, start)
	return b
}

func (i UCI) Type() uint8   { return IEUCI }
func (i UCI) Len() int      { return 11 }
func (i UCI) IsEmpty() bool { return false }

// SPI IE (type 203, TLV). Signalling priority indication; only the LAPI
// bit is defined.
type SPI struct {
	LAPI bool
}

func DecodeSPI(b []byte) (SPI, error) {
	if len(b) < 4 {
		return SPI{}, ieErr(ErrIEInvalidLength, IESPI)
	}
	return SPI{LAPI: b[3]&0x01 != 0}, nil
}

func (i SPI) Marshal(b []byte) []byte {
	var v uint8
	if i.LAPI {
		v = 0x01
	}
	start := len(b)
	b = append(b, IESPI, 0, 0, v)
	setTLVLength(b, start)
	return b
}

func (i SPI) Type() uint8   { return IESPI }
func (i SPI) Len() int      { return 4 }
func (i SPI) IsEmpty() bool { return false }

// MappedUEUsageType IE (type 223, TLV).
type MappedUEUsageType struct {
	UsageType uint16
}

func DecodeMappedUEUsageType(b []byte) (MappedUEUsageType, error) {
	if len(b) < 5 {
		return MappedUEUsageType{}, ieErr(ErrIEInvalidLength, IEMappedUEUsageType)
	}
	return MappedUEUsageType{UsageType: binary.BigEndian.Uint16(b[3:5])}, nil
}

func (i MappedUEUsageType) Marshal(b []byte) []byte {
	start := len(b)
	b = append(b, IEMappedUEUsageType, 0, 0)
	b = binary.BigEndian.AppendUint16(b, i.UsageType)
	setTLVLength(b, start)
	return b
}

func (i MappedUEUsageType) Type() uint8   { return IEMappedUEUsageType }
func (i MappedUEUsageType) Len() int      { return 5 }
func (i MappedUEUsageType) IsEmpty() bool { return false }

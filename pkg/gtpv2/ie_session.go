package gtpv2

import (
	"encoding/binary"
	"net"
	"strings"
)

// APN IE (type 71), per TS 29.274 §8.6. Dot-separated labels with
// single-byte length prefixes; a trailing empty label is dropped on
// encode.
type APN struct {
	Ins  uint8
	Name string
}

func DecodeAPN(b []byte) (APN, error) {
	if len(b) < minIESize {
		return APN{}, ieErr(ErrIEInvalidLength, IEAPN)
	}
	length := int(binary.BigEndian.Uint16(b[1:3]))
	if len(b) < length+minIESize {
		return APN{}, ieErr(ErrIEInvalidLength, IEAPN)
	}
	var labels []string
	rest := b[4 : 4+length]
	for len(rest) > 0 {
		n := int(rest[0])
		if n == 0 || n+1 > len(rest) {
			return APN{}, ieErr(ErrIEIncorrect, IEAPN)
		}
		labels = append(labels, string(rest[1:1+n]))
		rest = rest[1+n:]
	}
	return APN{Ins: b[3] & 0x0f, Name: strings.Join(labels, ".")}, nil
}

func (i APN) Marshal(b []byte) []byte {
	start := len(b)
	b = append(b, IEAPN, 0, 0, i.Ins&0x0f)
	for _, label := range strings.Split(strings.TrimSuffix(i.Name, "."), ".") {
		b = append(b, uint8(len(label)))
		b = append(b, label...)
	}
	setTLIVLength(b, start)
	return b
}

func (i APN) Type() uint8     { return IEAPN }
func (i APN) Instance() uint8 { return i.Ins }
func (i APN) Len() int        { return len(strings.TrimSuffix(i.Name, ".")) + 1 + minIESize }
func (i APN) IsEmpty() bool   { return i.Name == "" }

// AMBR IE (type 72), per TS 29.274 §8.7. Aggregate maximum bit rates in
// kilobits per second.
type AMBR struct {
	Ins      uint8
	Uplink   uint32
	Downlink uint32
}

func DecodeAMBR(b []byte) (AMBR, error) {
	if len(b) < minIESize+8 {
		return AMBR{}, ieErr(ErrIEInvalidLength, IEAMBR)
	}
	return AMBR{
		Ins:      b[3] & 0x0f,
		Uplink:   binary.BigEndian.Uint32(b[4:8]),
		Downlink: binary.BigEndian.Uint32(b[8:12]),
	}, nil
}

func (i AMBR) Marshal(b []byte) []byte {
	start := len(b)
	b = append(b, IEAMBR, 0, 0, i.Ins&0x0f)
	b = binary.BigEndian.AppendUint32(b, i.Uplink)
	b = binary.BigEndian.AppendUint32(b, i.Downlink)
	setTLIVLength(b, start)
	return b
}

func (i AMBR) Type() uint8     { return IEAMBR }
func (i AMBR) Instance() uint8 { return i.Ins }
func (i AMBR) Len() int        { return 8 + minIESize }
func (i AMBR) IsEmpty() bool   { return false }

// IPAddress IE (type 74), per TS 29.274 §8.9.
type IPAddress struct {
	Ins uint8
	IP  net.IP
}

func DecodeIPAddress(b []byte) (IPAddress, error) {
	if len(b) < minIESize {
		return IPAddress{}, ieErr(ErrIEInvalidLength, IEIPAddress)
	}
	length := int(binary.BigEndian.Uint16(b[1:3]))
	if len(b) < length+minIESize {
		return IPAddress{}, ieErr(ErrIEInvalidLength, IEIPAddress)
	}
	if length != 4 && length != 16 {
		return IPAddress{}, ieErr(ErrIEIncorrect, IEIPAddress)
	}
	return IPAddress{Ins: b[3] & 0x0f, IP: net.IP(cloneBytes(b[4 : 4+length]))}, nil
}

func (i IPAddress) Marshal(b []byte) []byte {
	start := len(b)
	b = append(b, IEIPAddress, 0, 0, i.Ins&0x0f)
	if v4 := i.IP.To4(); v4 != nil {
		b = append(b, v4...)
	} else {
		b = append(b, i.IP.To16()...)
	}
	setTLIVLength(b, start)
	return b
}

func (i IPAddress) Type() uint8     { return IEIPAddress }
func (i IPAddress) Instance() uint8 { return i.Ins }

func (i IPAddress) Len() int {
	if i.IP.To4() != nil {
		return 4 + minIESize
	}
	return 16 + minIESize
}

func (i IPAddress) IsEmpty() bool { return len(i.IP) == 0 }

// Indication IE (type 77), per TS 29.274 §8.12. The flag octets are
// carried as-is; their count varies with the protocol release.
type Indication struct {
	Ins   uint8
	Flags []byte
}

func DecodeIndication(b []byte) (Indication, error) {
	if len(b) < minIESize {
		return Indication{}, ieErr(ErrIEInvalidLength, IEIndication)
	}
	length := int(binary.BigEndian.Uint16(b[1:3]))
	if length < 1 || len(b) < length+minIESize {
		return Indication{}, ieErr(ErrIEInvalidLength, IEIndication)
	}
	return Indication{Ins: b[3] & 0x0f, Flags: cloneBytes(b[4 : 4+length])}, nil
}

func (i Indication) Marshal(b []byte) []byte {
	start := len(b)
	b = append(b, IEIndication, 0, 0, i.Ins&0x0f)
	b = append(b, i.Flags...)
	setTLIVLength(b, start)
	return b
}

func (i Indication) Type() uint8     { return IEIndication }
func (i Indication) Instance() uint8 { return i.Ins }
func (i Indication) Len() int        { return len(i.Flags) + minIESize }
func (i Indication) IsEmpty() bool   { return len(i.Flags) == 0 }

// PCO IE (type 78), per TS 29.274 §8.13. Carried opaquely; internal
// structure per TS 24.008 §10.5.6.3.
type PCO struct {
	Ins uint8
	PCO []byte
}

func DecodePCO(b []byte) (PCO, error) {
	if len(b) < minIESize {
		return PCO{}, ieErr(ErrIEInvalidLength, IEPCO)
	}
	length := int(binary.BigEndian.Uint16(b[1:3]))
	if len(b) < length+minIESize {
		return PCO{}, ieErr(ErrIEInvalidLength, IEPCO)
	}
	return PCO{Ins: b[3] & 0x0f, PCO: cloneBytes(b[4 : 4+length])}, nil
}

func (i PCO) Marshal(b []byte) []byte {
	start := len(b)
	b = append(b, IEPCO, 0, 0, i.Ins&0x0f)
	b = append(b, i.PCO...)
	setTLIVLength(b, start)
	return b
}

func (i PCO) Type() uint8     { return IEPCO }
func (i PCO) Instance() uint8 { return i.Ins }
func (i PCO) Len() int        { return len(i.PCO) + minIESize }
func (i PCO) IsEmpty() bool   { return len(i.PCO) == 0 }

// PDN types carried in the PAA IE (TS 29.274 §8.14).
const (
	PDNTypeIPv4   uint8 = 1
	PDNTypeIPv6   uint8 = 2
	PDNTypeIPv4v6 uint8 = 3
)

// PAA IE (type 79). PDN address allocation: the IPv6 address carries a
// prefix length octet, and the dual-stack form carries both families.
type PAA struct {
	Ins           uint8
	PDNType       uint8
	IPv4          net.IP
	IPv6          net.IP
	IPv6PrefixLen uint8
}

func DecodePAA(b []byte) (PAA, error) {
	if len(b) < minIESize+1 {
		return PAA{}, ieErr(ErrIEInvalidLength, IEPAA)
	}
	length := int(binary.BigEndian.Uint16(b[1:3]))
	if length < 1 || len(b) < length+minIESize {
		return PAA{}, ieErr(ErrIEInvalidLength, IEPAA)
	}
	ie := PAA{Ins: b[3] & 0x0f, PDNType: b[4] & 0x07}
	v := b[5 : 4+length]
	switch ie.PDNType {
	case PDNTypeIPv4:
		if len(v) != 4 {
			return PAA{}, ieErr(ErrIEIncorrect, IEPAA)
		}
		ie.IPv4 = net.IP(cloneBytes(v))
	case PDNTypeIPv6:
		if len(v) != 17 {
			return PAA{}, ieErr(ErrIEIncorrect, IEPAA)
		}
		ie.IPv6PrefixLen = v[0]
		ie.IPv6 = net.IP(cloneBytes(v[1:17]))
	case PDNTypeIPv4v6:
		if len(v) != 21 {
			return PAA{}, ieErr(ErrIEIncorrect, IEPAA)
		}
		ie.IPv6PrefixLen = v[0]
		ie.IPv6 = net.IP(cloneBytes(v[1:17]))
		ie.IPv4 = net.IP(cloneBytes(v[17:21]))
	default:
		return PAA{}, ieErr(ErrIEIncorrect, IEPAA)
	}
	return ie, nil
}

func (i PAA) Marshal(b []byte) []byte {
	start := len(b)
	b = append(b, IEPAA, 0, 0, i.Ins&0x0f, i.PDNType&0x07)
	switch i.PDNType {
	case PDNTypeIPv4:
		b = append(b, i.IPv4.To4()...)
	case PDNTypeIPv6:
		b = append(b, i.IPv6PrefixLen)
		b = append(b, i.IPv6.To16()...)
	case PDNTypeIPv4v6:
		b = append(b, i.IPv6PrefixLen)
		b = append(b, i.IPv6.To16()...)
		b = append(b, i.IPv4.To4()...)
	}
	setTLIVLength(b, start)
	return b
}

func (i PAA) Type() uint8     { return IEPAA }
func (i PAA) Instance() uint8 { return i.Ins }

func (i PAA) Len() int {
	switch i.PDNType {
	case PDNTypeIPv4:
		return 5 + minIESize
	case PDNTypeIPv6:
		return 18 + minIESize
	case PDNTypeIPv4v6:
		return 22 + minIESize
	}
	return 1 + minIESize
}

func (i PAA) IsEmpty() bool { return false }

// RATType IE (type 82), per TS 29.274 §8.17.
type RATType struct {
	Ins uint8
	RAT uint8
}

func DecodeRATType(b []byte) (RATType, error) {
	if len(b) < minIESize+1 {
		return RATType{}, ieErr(ErrIEInvalidLength, IERATType)
	}
	return RATType{Ins: b[3] & 0x0f, RAT: b[4]}, nil
}

func (i RATType) Marshal(b []byte) []byte {
	start := len(b)
	b = append(b, IERATType, 0, 0, i.Ins&0x0f, i.RAT)
	setTLIVLength(b, start)
	return b
}

func (i RATType) Type() uint8     { return IERATType }
func (i RATType) Instance() uint8 { return i.Ins }
func (i RATType) Len() int        { return 1 + minIESize }
func (i RATType) IsEmpty() bool   { return false }

// ServingNetwork IE (type 83), per TS 29.274 §8.18.
type ServingNetwork struct {
	Ins uint8
	MCC uint16
	MNC uint16
}

func DecodeServingNetwork(b []byte) (ServingNetwork, error) {
	if len(b) < minIESize+3 {
		return ServingNetwork{}, ieErr(ErrIEInvalidLength, IEServingNetwork)
	}
	mcc, mnc := mccMncDecode(b[4:7])
	return ServingNetwork{Ins: b[3] & 0x0f, MCC: mcc, MNC: mnc}, nil
}

func (i ServingNetwork) Marshal(b []byte) []byte {
	start := len(b)
	b = append(b, IEServingNetwork, 0, 0, i.Ins&0x0f)
	b = append(b, mccMncEncode(i.MCC, i.MNC)...)
	setTLIVLength(b, start)
	return b
}

func (i ServingNetwork) Type() uint8     { return IEServingNetwork }
func (i ServingNetwork) Instance() uint8 { return i.Ins }
func (i ServingNetwork) Len() int        { return 3 + minIESize }
func (i ServingNetwork) IsEmpty() bool   { return false }

// PLMNID IE (type 120), per TS 29.274 §8.46.
type PLMNID struct {
	Ins uint8
	MCC uint16
	MNC uint16
}

func DecodePLMNID(b []byte) (PLMNID, error) {
	if len(b) < minIESize+3 {
		return PLMNID{}, ieErr(ErrIEInvalidLength, IEPLMNID)
	}
	mcc, mnc := mccMncDecode(b[4:7])
	return PLMNID{Ins: b[3] & 0x0f, MCC: mcc, MNC: mnc}, nil
}

func (i PLMNID) Marshal(b []byte) []byte {
	start := len(b)
	b = append(b, IEPLMNID, 0, 0, i.Ins&0x0f)
	b = append(b, mccMncEncode(i.MCC, i.MNC)...)
	setTLIVLength(b, start)
	return b
}

func (i PLMNID) Type() uint8     { return IEPLMNID }
func (i PLMNID) Instance() uint8 { return i.Ins }
func (i PLMNID) Len() int        { return 3 + minIESize }
func (i PLMNID) IsEmpty() bool   { return false }

// BearerTFT IE (type 84), per TS 29.274 §8.19. Carried opaquely.
type BearerTFT struct {
	Ins uint8
	TFT []byte
}

func DecodeBearerTFT(b []byte) (BearerTFT, error) {
	if len(b) < minIESize {
		return BearerTFT{}, ieErr(ErrIEInvalidLength, IEBearerTFT)
	}
	length := int(binary.BigEndian.Uint16(b[1:3]))
	if len(b) < length+minIESize {
		return BearerTFT{}, ieErr(ErrIEInvalidLength, IEBearerTFT)
	}
	return BearerTFT{Ins: b[3] & 0x0f, TFT: cloneBytes(b[4 : 4+length])}, nil
}

func (i BearerTFT) Marshal(b []byte) []byte {
	start := len(b)
	b = append(b, IEBearerTFT, 0, 0, i.Ins&0x0f)
	b = append(b, i.TFT...)
	setTLIVLength(b, start)
	return b
}

func (i BearerTFT) Type() uint8     { return IEBearerTFT }
func (i BearerTFT) Instance() uint8 { return i.Ins }
func (i BearerTFT) Len() int        { return len(i.TFT) + minIESize }
func (i BearerTFT) IsEmpty() bool   { return len(i.TFT) == 0 }

// TAD IE (type 85), per TS 29.274 §8.20. Traffic aggregate description,
// same coding as the TFT.
type TAD struct {
	Ins uint8
	TAD []byte
}

func DecodeTAD(b []byte) (TAD, error) {
	if len(b) < minIESize {
		return TAD{}, ieErr(ErrIEInvalidLength, IETAD)
	}
	length := int(binary.BigEndian.Uint16(b[1:3]))
	if len(b) < length+minIESize {
		return TAD{}, ieErr(ErrIEInvalidLength, IETAD)
	}
	return TAD{Ins: b[3] & 0x0f, TAD: cloneBytes(b[4 : 4+length])}, nil
}

func (i TAD) Marshal(b []byte) []byte {
	start := len(b)
	b = append(b, IETAD, 0, 0, i.Ins&0x0f)
	b = append(b, i.TAD...)
	setTLIVLength(b, start)
	return b
}

func (i TAD) Type() uint8     { return IETAD }
func (i TAD) Instance() uint8 { return i.Ins }
func (i TAD) Len() int        { return len(i.TAD) + minIESize }
func (i TAD) IsEmpty() bool   { return len(i.TAD) == 0 }

package gtpv2

import (
	"encoding/binary"
	"net"
)

// putUint40 writes the 5-octet bit rates used by the QoS IEs.
func putUint40(b []byte, v uint64) []byte {
	return append(b, uint8(v>>32), uint8(v>>24), uint8(v>>16), uint8(v>>8), uint8(v))
}

func getUint40(b []byte) uint64 {
	return uint64(b[0])<<32 | uint64(b[1])<<24 | uint64(b[2])<<16 | uint64(b[3])<<8 | uint64(b[4])
}

// BearerQoS IE (type 80), per TS 29.274 §8.15. ARP octet, QCI and four
// 5-octet bit rates in kilobits per second.
type BearerQoS struct {
	Ins           uint8
	PCI           bool
	PriorityLevel uint8
	PVI           bool
	QCI           uint8
	MBRUplink     uint64
	MBRDownlink   uint64
	GBRUplink     uint64
	GBRDownlink   uint64
}

func DecodeBearerQoS(b []byte) (BearerQoS, error) {
	if len(b) < minIESize+22 {
		return BearerQoS{}, ieErr(ErrIEInvalidLength, IEBearerQoS)
	}
	return BearerQoS{
		Ins:           b[3] & 0x0f,
		PCI:           b[4]&0x40 != 0,
		PriorityLevel: b[4] >> 2 & 0x0f,
		PVI:           b[4]&0x01 != 0,
		QCI:           b[5],
		MBRUplink:     getUint40(b[6:11]),
		MBRDownlink:   getUint40(b[11:16]),
		GBRUplink:     getUint40(b[16:21]),
		GBRDownlink:   getUint40(b[21:26]),
	}, nil
}

func (i BearerQoS) Marshal(b []byte) []byte {
	var arp uint8
	if i.PCI {
		arp |= 0x40
	}
	arp |= i.PriorityLevel & 0x0f << 2
	if i.PVI {
		arp |= 0x01
	}
	start := len(b)
	b = append(b, IEBearerQoS, 0, 0, i.Ins&0x0f, arp, i.QCI)
	b = putUint40(b, i.MBRUplink)
	b = putUint40(b, i.MBRDownlink)
	b = putUint40(b, i.GBRUplink)
	b = putUint40(b, i.GBRDownlink)
	setTLIVLength(b, start)
	return b
}

func (i BearerQoS) Type() uint8     { return IEBearerQoS }
func (i BearerQoS) Instance() uint8 { return i.Ins }
func (i BearerQoS) Len() int        { return 22 + minIESize }
func (i BearerQoS) IsEmpty() bool   { return false }

// FlowQoS IE (type 81), per TS 29.274 §8.16.
type FlowQoS struct {
	Ins         uint8
	QCI         uint8
	MBRUplink   uint64
	MBRDownlink uint64
	GBRUplink   uint64
	GBRDownlink uint64
}

func DecodeFlowQoS(b []byte) (FlowQoS, error) {
	if len(b) < minIESize+21 {
		return FlowQoS{}, ieErr(ErrIEInvalidLength, IEFlowQoS)
	}
	return FlowQoS{
		Ins:         b[3] & 0x0f,
		QCI:         b[4],
		MBRUplink:   getUint40(b[5:10]),
		MBRDownlink: getUint40(b[10:15]),
		GBRUplink:   getUint40(b[15:20]),
		GBRDownlink: getUint40(b[20:25]),
	}, nil
}

func (i FlowQoS) Marshal(b []byte) []byte {
	start := len(b)
	b = append(b, IEFlowQoS, 0, 0, i.Ins&0x0f, i.QCI)
	b = putUint40(b, i.MBRUplink)
	b = putUint40(b, i.MBRDownlink)
	b = putUint40(b, i.GBRUplink)
	b = putUint40(b, i.GBRDownlink)
	setTLIVLength(b, start)
	return b
}

func (i FlowQoS) Type() uint8     { return IEFlowQoS }
func (i FlowQoS) Instance() uint8 { return i.Ins }
func (i FlowQoS) Len() int        { return 21 + minIESize }
func (i FlowQoS) IsEmpty() bool   { return false }

// F-TEID interface types (TS 29.274 §8.22, a subset).
const (
	FTEIDIfaceS1UeNodeBGTPU uint8 = 0
	FTEIDIfaceS1USGWGTPU    uint8 = 1
	FTEIDIfaceS5S8SGWGTPU   uint8 = 4
	FTEIDIfaceS5S8PGWGTPU   uint8 = 5
	FTEIDIfaceS5S8SGWGTPC   uint8 = 6
	FTEIDIfaceS5S8PGWGTPC   uint8 = 7
	FTEIDIfaceS11MMEGTPC    uint8 = 10
	FTEIDIfaceS11S4SGWGTPC  uint8 = 11
)

// FTEID IE (type 87), per TS 29.274 §8.22. Fully qualified TEID:
// interface type, TEID and one or both IP addresses.
type FTEID struct {
	Ins       uint8
	Interface uint8
	TEID      uint32
	IPv4      net.IP
	IPv6      net.IP
}

func DecodeFTEID(b []byte) (FTEID, error) {
	if len(b) < minIESize+5 {
		return FTEID{}, ieErr(ErrIEInvalidLength, IEFTEID)
	}
	length := int(binary.BigEndian.Uint16(b[1:3]))
	if len(b) < length+minIESize {
		return FTEID{}, ieErr(ErrIEInvalidLength, IEFTEID)
	}
	ie := FTEID{
		Ins:       b[3] & 0x0f,
		Interface: b[4] & 0x3f,
		TEID:      binary.BigEndian.Uint32(b[5:9]),
	}
	rest := b[9 : 4+length]
	if b[4]&0x80 != 0 {
		if len(rest) < 4 {
			return FTEID{}, ieErr(ErrIEInvalidLength, IEFTEID)
		}
		ie.IPv4 = net.IP(cloneBytes(rest[:4]))
		rest = rest[4:]
	}
	if b[4]&0x40 != 0 {
		if len(rest) < 16 {
			return FTEID{}, ieErr(ErrIEInvalidLength, IEFTEID)
		}
		ie.IPv6 = net.IP(cloneBytes(rest[:16]))
	}
	return ie, nil
}

func (i FTEID) Marshal(b []byte) []byte {
	flags := i.Interface & 0x3f
	if len(i.IPv4) > 0 {
		flags |= 0x80
	}
	if len(i.IPv6) > 0 {
		flags |= 0x40
	}
	start := len(b)
	b = append(b, IEFTEID, 0, 0, i.Ins&0x0f, flags)
	b = binary.BigEndian.AppendUint32(b, i.TEID)
	if len(i.IPv4) > 0 {
		b = append(b, i.IPv4.To4()...)
	}
	if len(i.IPv6) > 0 {
		b = append(b, i.IPv6.To16()...)
	}
	setTLIVLength(b, start)
	return b
}

func (i FTEID) Type() uint8     { return IEFTEID }
func (i FTEID) Instance() uint8 { return i.Ins }

func (i FTEID) Len() int {
	n := 5 + minIESize
	if len(i.IPv4) > 0 {
		n += 4
	}
	if len(i.IPv6) > 0 {
		n += 16
	}
	return n
}

func (i FTEID) IsEmpty() bool { return false }

package gtpv1

import (
	"encoding/binary"
	"net"
	"strings"
)

// EndUserAddress IE (type 128, TLV). PDP type organization and number
// plus the optional PDP address, per TS 29.060 §7.7.27.
type EndUserAddress struct {
	Organization uint8
	PDPType      uint8
	Address      net.IP
}

// NewEndUserAddressIPv4 builds an IETF/IPv4 End User Address.
func NewEndUserAddressIPv4(ip net.IP) EndUserAddress {
	return EndUserAddress{Organization: 0xf1, PDPType: PDPTypeIPv4, Address: ip.To4()}
}

func DecodeEndUserAddress(b []byte) (EndUserAddress, error) {
	if len(b) < 5 {
		return EndUserAddress{}, ieErr(ErrIEInvalidLength, IEEndUserAddress)
	}
	length := int(binary.BigEndian.Uint16(b[1:3]))
	if length < 2 || len(b) < length+3 {
		return EndUserAddress{}, ieErr(ErrIEInvalidLength, IEEndUserAddress)
	}
	ie := EndUserAddress{Organization: b[3], PDPType: b[4]}
	switch addr := b[5 : 3+length]; len(addr) {
	case 0:
	case 4, 16:
		ie.Address = net.IP(cloneBytes(addr))
	default:
		return EndUserAddress{}, ieErr(ErrIEIncorrect, IEEndUserAddress)
	}
	return ie, nil
}

func (i EndUserAddress) Marshal(b []byte) []byte {
	start := len(b)
	b = append(b, IEEndUserAddress, 0, 0, i.Organization, i.PDPType)
	b = append(b, i.Address...)
	setTLVLength(b, start)
	return b
}

func (i EndUserAddress) Type() uint8   { return IEEndUserAddress }
func (i EndUserAddress) Len() int      { return len(i.Address) + 5 }
func (i EndUserAddress) IsEmpty() bool { return false }

// APN IE (type 131, TLV). The network identifier as dot-separated
// labels, each emitted with a single-byte length prefix. A trailing
// empty label is dropped on encode so the wire form never carries a
// trailing dot.
type APN struct {
	Name string
}

func DecodeAPN(b []byte) (APN, error) {
	if len(b) < 3 {
		return APN{}, ieErr(ErrIEInvalidLength, IEAPN)
	}
	length := int(binary.BigEndian.Uint16(b[1:3]))
	if len(b) < length+3 {
		return APN{}, ieErr(ErrIEInvalidLength, IEAPN)
	}
	var labels []string
	rest := b[3 : 3+length]
	for len(rest) > 0 {
		n := int(rest[0])
		if n == 0 || n+1 > len(rest) {
			return APN{}, ieErr(ErrIEIncorrect, IEAPN)
		}
		labels = append(labels, string(rest[1:1+n]))
		rest = rest[1+n:]
	}
	return APN{Name: strings.Join(labels, ".")}, nil
}

func (i APN) Marshal(b []byte) []byte {
	start := len(b)
	b = append(b, IEAPN, 0, 0)
	for _, label := range strings.Split(strings.TrimSuffix(i.Name, "."), ".") {
		b = append(b, uint8(len(label)))
		b = append(b, label...)
	}
	setTLVLength(b, start)
	return b
}

func (i APN) Type() uint8   { return IEAPN }
func (i APN) Len() int      { return len(strings.TrimSuffix(i.Name, ".")) + 4 }
func (i APN) IsEmpty() bool { return i.Name == "" }

// PCO IE (type 132, TLV). Protocol configuration options are carried
// opaquely; their internal structure belongs to TS 24.008 §10.5.6.3.
type PCO struct {
	PCO []byte
}

func DecodePCO(b []byte) (PCO, error) {
	if len(b) < 3 {
		return PCO{}, ieErr(ErrIEInvalidLength, IEPCO)
	}
	length := int(binary.BigEndian.Uint16(b[1:3]))
	if len(b) < length+3 {
		return PCO{}, ieErr(ErrIEInvalidLength, IEPCO)
	}
	return PCO{PCO: cloneBytes(b[3 : 3+length])}, nil
}

func (i PCO) Marshal(b []byte) []byte {
	start := len(b)
	b = append(b, IEPCO, 0, 0)
	b = append(b, i.PCO...)
	setTLVLength(b, start)
	return b
}

func (i PCO) Type() uint8   { return IEPCO }
func (i PCO) Len() int      { return len(i.PCO) + 3 }
func (i PCO) IsEmpty() bool { return len(i.PCO) == 0 }

// GSNAddress IE (type 133, TLV). IPv4 or IPv6 address of a GSN.
type GSNAddress struct {
	IP net.IP
}

func DecodeGSNAddress(b []byte) (GSNAddress, error) {
	if len(b) < 3 {
		return GSNAddress{}, ieErr(ErrIEInvalidLength, IEGSNAddress)
	}
	length := int(binary.BigEndian.Uint16(b[1:3]))
	if len(b) < length+3 {
		return GSNAddress{}, ieErr(ErrIEInvalidLength, IEGSNAddress)
	}
	if length != 4 && length != 16 {
		return GSNAddress{}, ieErr(ErrIEIncorrect, IEGSNAddress)
	}
	return GSNAddress{IP: net.IP(cloneBytes(b[3 : 3+length]))}, nil
}

func (i GSNAddress) Marshal(b []byte) []byte {
	start := len(b)
	b = append(b, IEGSNAddress, 0, 0)
	if v4 := i.IP.To4(); v4 != nil {
		b = append(b, v4...)
	} else {
		b = append(b, i.IP.To16()...)
	}
	setTLVLength(b, start)
	return b
}

func (i GSNAddress) Type() uint8 { return IEGSNAddress }

func (i GSNAddress) Len() int {
	if i.IP.To4() != nil {
		return 7
	}
	return 19
}

func (i GSNAddress) IsEmpty() bool { return len(i.IP) == 0 }

// QoSProfile IE (type 135, TLV). Allocation/retention priority octet
// followed by the TS 24.008 QoS data, carried opaquely. The QoS data
// must be between 3 and 255 octets.
type QoSProfile struct {
	ARP uint8
	QoS []byte
}

func DecodeQoSProfile(b []byte) (QoSProfile, error) {
	if len(b) < 4 {
		return QoSProfile{}, ieErr(ErrIEInvalidLength, IEQoSProfile)
	}
	length := int(binary.BigEndian.Uint16(b[1:3]))
	if length < 1 || len(b) < length+3 {
		return QoSProfile{}, ieErr(ErrIEInvalidLength, IEQoSProfile)
	}
	qos := cloneBytes(b[4 : 3+length])
	if len(qos) < 3 {
		return QoSProfile{}, ieErr(ErrIEIncorrect, IEQoSProfile)
	}
	return QoSProfile{ARP: b[3], QoS: qos}, nil
}

func (i QoSProfile) Marshal(b []byte) []byte {
	start := len(b)
	b = append(b, IEQoSProfile, 0, 0, i.ARP)
	b = append(b, i.QoS...)
	setTLVLength(b, start)
	return b
}

func (i QoSProfile) Type() uint8   { return IEQoSProfile }
func (i QoSProfile) Len() int      { return len(i.QoS) + 4 }
func (i QoSProfile) IsEmpty() bool { return len(i.QoS) == 0 }

// TFT IE (type 137, TLV). Traffic flow template, carried opaquely per
// TS 24.008 §10.5.6.12.
type TFT struct {
	TFT []byte
}

func DecodeTFT(b []byte) (TFT, error) {
	if len(b) < 3 {
		return TFT{}, ieErr(ErrIEInvalidLength, IETFT)
	}
	length := int(binary.BigEndian.Uint16(b[1:3]))
	if len(b) < length+3 {
		return TFT{}, ieErr(ErrIEInvalidLength, IETFT)
	}
	return TFT{TFT: cloneBytes(b[3 : 3+length])}, nil
}

func (i TFT) Marshal(b []byte) []byte {
	start := len(b)
	b = append(b, IETFT, 0, 0)
	b = append(b, i.TFT...)
	setTLVLength(b, start)
	return b
}

func (i TFT) Type() uint8   { return IETFT }
func (i TFT) Len() int      { return len(i.TFT) + 3 }
func (i TFT) IsEmpty() bool { return len(i.TFT) == 0 }

// APNAMBR IE (type 198, TLV). Uplink and downlink aggregate maximum bit
// rates in bits per second.
type APNAMBR struct {
	Uplink   uint32
	Downlink uint32
}

func DecodeAPNAMBR(b []byte) (APNAMBR, error) {
	if len(b) < 11 {
		return APNAMBR{}, ieErr(ErrIEInvalidLength, IEAPNAMBR)
	}
	return APNAMBR{
		Uplink:   binary.BigEndian.Uint32(b[3:7]),
		Downlink: binary.BigEndian.Uint32(b[7:11]),
	}, nil
}

func (i APNAMBR) Marshal(b []byte) []byte {
	start := len(b)
	b = append(b, IEAPNAMBR, 0, 0)
	b = binary.BigEndian.AppendUint32(b, i.Uplink)
	b = binary.BigEndian.AppendUint32(b, i.Downlink)
	setTLVLength(b, start)
	return b
}

func (i APNAMBR) Type() uint8   { return IEAPNAMBR }
func (i APNAMBR) Len() int      { return 11 }
func (i APNAMBR) IsEmpty() bool { return false }

// BearerControlMode IE (type 184, TLV). 0 is MS-only, 1 is MS/NW; other
// values are reserved and rejected.
type BearerControlMode struct {
	Mode uint8
}

func DecodeBearerControlMode(b []byte) (BearerControlMode, error) {
	if len(b) < 4 {
		return BearerControlMode{}, ieErr(ErrIEInvalidLength, IEBearerControlMode)
	}
	if b[3] > 1 {
		return BearerControlMode{}, ieErr(ErrIEIncorrect, IEBearerControlMode)
	}
	return BearerControlMode{Mode: b[3]}, nil
}

func (i BearerControlMode) Marshal(b []byte) []byte {
	start := len(b)
	b = append(b, IEBearerControlMode, 0, 0, i.Mode)
	setTLVLength(b, start)
	return b
}

func (i BearerControlMode) Type() uint8   { return IEBearerControlMode }
func (i BearerControlMode) Len() int      { return 4 }
func (i BearerControlMode) IsEmpty() bool { return false }

// EvolvedARP IE (type 191, TLV). Evolved allocation/retention priority:
// PCI, priority level and PVI packed into one octet per TS 29.060
// §7.7.91.
type EvolvedARP struct {
	PCI           bool
	PriorityLevel uint8
	PVI           bool
}

func DecodeEvolvedARP(b []byte) (EvolvedARP, error) {
	if len(b) < 4 {
		return EvolvedARP{}, ieErr(ErrIEInvalidLength, IEEvolvedARP)
	}
	return EvolvedARP{
		PCI:           b[3]&0x40 != 0,
		PriorityLevel: b[3] >> 2 & 0x0f,
		PVI:           b[3]&0x01 != 0,
	}, nil
}

func (i EvolvedARP) Marshal(b []byte) []byte {
	var v uint8
	if i.PCI {
		v |= 0x40
	}
	v |= i.PriorityLevel & 0x0f << 2
	if i.PVI {
		v |= 0x01
	}
	start := len(b)
	b = append(b, IEEvolvedARP, 0, 0, v)
	setTLVLength(b, start)
	return b
}

func (i EvolvedARP) Type() uint8   { return IEEvolvedARP }
func (i EvolvedARP) Len() int      { return 4 }
func (i EvolvedARP) IsEmpty() bool { return false }

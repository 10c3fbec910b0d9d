package gtpv2

import "encoding/binary"

// ULI location part flag bits (TS 29.274 §8.21).
const (
	uliCGI  = 0x01
	uliSAI  = 0x02
	uliRAI  = 0x04
	uliTAI  = 0x08
	uliECGI = 0x10
	uliLAI  = 0x20
)

// CGI identifies a GERAN cell.
type CGI struct {
	MCC uint16
	MNC uint16
	LAC uint16
	CI  uint16
}

// SAI identifies a UTRAN service area.
type SAI struct {
	MCC uint16
	MNC uint16
	LAC uint16
	SAC uint16
}

// RAI identifies a routeing area.
type RAI struct {
	MCC uint16
	MNC uint16
	LAC uint16
	RAC uint16
}

// TAI identifies an E-UTRAN tracking area.
type TAI struct {
	MCC uint16
	MNC uint16
	TAC uint16
}

// ECGI identifies an E-UTRAN cell (28-bit ECI).
type ECGI struct {
	MCC uint16
	MNC uint16
	ECI uint32
}

// LAI identifies a location area.
type LAI struct {
	MCC uint16
	MNC uint16
	LAC uint16
}

// ULI IE (type 86), per TS 29.274 §8.21. Carries any combination of
// CGI, SAI, RAI, TAI, ECGI and LAI, flagged in the first value octet
// and emitted in that order.
type ULI struct {
	Ins  uint8
	CGI  *CGI
	SAI  *SAI
	RAI  *RAI
	TAI  *TAI
	ECGI *ECGI
	LAI  *LAI
}

func DecodeULI(b []byte) (ULI, error) {
	if len(b) < minIESize+1 {
		return ULI{}, ieErr(ErrIEInvalidLength, IEULI)
	}
	length := int(binary.BigEndian.Uint16(b[1:3]))
	if length < 1 || len(b) < length+minIESize {
		return ULI{}, ieErr(ErrIEInvalidLength, IEULI)
	}
	ie := ULI{Ins: b[3] & 0x0f}
	flags := b[4]
	rest := b[5 : 4+length]
	take := func(n int) ([]byte, bool) {
		if len(rest) < n {
			return nil, false
		}
		part := rest[:n]
		rest = rest[n:]
		return part, true
	}
	if flags&uliCGI != 0 {
		p, ok := take(7)
		if !ok {
			return ULI{}, ieErr(ErrIEInvalidLength, IEULI)
		}
		mcc, mnc := mccMncDecode(p[0:3])
		ie.CGI = &CGI{MCC: mcc, MNC: mnc, LAC: binary.BigEndian.Uint16(p[3:5]), CI: binary.BigEndian.Uint16(p[5:7])}
	}
	if flags&uliSAI != 0 {
		p, ok := take(7)
		if !ok {
			return ULI{}, ieErr(ErrIEInvalidLength, IEULI)
		}
		mcc, mnc := mccMncDecode(p[0:3])
		ie.SAI = &SAI{MCC: mcc, MNC: mnc, LAC: binary.BigEndian.Uint16(p[3:5]), SAC: binary.BigEndian.Uint16(p[5:7])}
	}
	if flags&uliRAI != 0 {
		p, ok := take(7)
		if !ok {
			return ULI{}, ieErr(ErrIEInvalidLength, IEULI)
		}
		mcc, mnc := mccMncDecode(p[0:3])
		ie.RAI = &RAI{MCC: mcc, MNC: mnc, LAC: binary.BigEndian.Uint16(p[3:5]), RAC: binary.BigEndian.Uint16(p[5:7])}
	}
	if flags&uliTAI != 0 {
		p, ok := take(5)
		if !ok {
			return ULI{}, ieErr(ErrIEInvalidLength, IEULI)
		}
		mcc, mnc := mccMncDecode(p[0:3])
		ie.TAI = &TAI{MCC: mcc, MNC: mnc, TAC: binary.BigEndian.Uint16(p[3:5])}
	}
	if flags&uliECGI != 0 {
		p, ok := take(7)
		if !ok {
			return ULI{}, ieErr(ErrIEInvalidLength, IEULI)
		}
		mcc, mnc := mccMncDecode(p[0:3])
		ie.ECGI = &ECGI{MCC: mcc, MNC: mnc, ECI: binary.BigEndian.Uint32(p[3:7]) & 0x0fffffff}
	}
	if flags&uliLAI != 0 {
		p, ok := take(5)
		if !ok {
			return ULI{}, ieErr(ErrIEInvalidLength, IEULI)
		}
		mcc, mnc := mccMncDecode(p[0:3])
		ie.LAI = &LAI{MCC: mcc, MNC: mnc, LAC: binary.BigEndian.Uint16(p[3:5])}
	}
	return ie, nil
}

func (i ULI) Marshal(b []byte) []byte {
	var flags uint8
	if i.CGI != nil {
		flags |= uliCGI
	}
	if i.SAI != nil {
		flags |= uliSAI
	}
	if i.RAI != nil {
		flags |= uliRAI
	}
	if i.TAI != nil {
		flags |= uliTAI
	}
	if i.ECGI != nil {
		flags |= uliECGI
	}
	if i.LAI != nil {
		flags |= uliLAI
	}
	start := len(b)
	b = append(b, IEULI, 0, 0, i.Ins&0x0f, flags)
	if i.CGI != nil {
		b = append(b, mccMncEncode(i.CGI.MCC, i.CGI.MNC)...)
		b = binary.BigEndian.AppendUint16(b, i.CGI.LAC)
		b = binary.BigEndian.AppendUint16(b, i.CGI.CI)
	}
	if i.SAI != nil {
		b = append(b, mccMncEncode(i.SAI.MCC, i.SAI.MNC)...)
		b = binary.BigEndian.AppendUint16(b, i.SAI.LAC)
		b = binary.BigEndian.AppendUint16(b, i.SAI.SAC)
	}
	if i.RAI != nil {
		b = append(b, mccMncEncode(i.RAI.MCC, i.RAI.MNC)...)
		b = binary.BigEndian.AppendUint16(b, i.RAI.LAC)
		b = binary.BigEndian.AppendUint16(b, i.RAI.RAC)
	}
	if i.TAI != nil {
		b = append(b, mccMncEncode(i.TAI.MCC, i.TAI.MNC)...)
		b = binary.BigEndian.AppendUint16(b, i.TAI.TAC)
	}
	if i.ECGI != nil {
		b = append(b, mccMncEncode(i.ECGI.MCC, i.ECGI.MNC)...)
		b = binary.BigEndian.AppendUint32(b, i.ECGI.ECI&0x0fffffff)
	}
	if i.LAI != nil {
		b = append(b, mccMncEncode(i.LAI.MCC, i.LAI.MNC)...)
		b = binary.BigEndian.AppendUint16(b, i.LAI.LAC)
	}
	setTLIVLength(b, start)
	return b
}

func (i ULI) Type() uint8     { return IEULI }
func (i ULI) Instance() uint8 { return i.Ins }

func (i ULI) Len() int {
	n := 1 + minIESize
	if i.CGI != nil {
		n += 7
	}
	if i.SAI != nil {
		n += 7
	}
	if i.RAI != nil {
		n += 7
	}
	if i.TAI != nil {
		n += 5
	}
	if i.ECGI != nil {
		n += 7
	}
	if i.LAI != nil {
		n += 5
	}
	return n
}

func (i ULI) IsEmpty() bool {
	return i.CGI == nil && i.SAI == nil && i.RAI == nil && i.TAI == nil && i.ECGI == nil && i.LAI == nil
}

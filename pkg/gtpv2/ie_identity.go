package gtpv2

import "encoding/binary"

// IMSI IE (type 1), per TS 29.274 §8.3. Up to 15 TBCD digits.
type IMSI struct {
	Ins  uint8
	IMSI string
}

func DecodeIMSI(b []byte) (IMSI, error) {
	if len(b) < minIESize+1 {
		return IMSI{}, ieErr(ErrIEInvalidLength, IEIMSI)
	}
	length := int(binary.BigEndian.Uint16(b[1:3]))
	if len(b) < length+minIESize {
		return IMSI{}, ieErr(ErrIEInvalidLength, IEIMSI)
	}
	return IMSI{Ins: b[3] & 0x0f, IMSI: tbcdDecode(b[4 : 4+length])}, nil
}

func (i IMSI) Marshal(b []byte) []byte {
	digits := i.IMSI
	if len(digits) > 15 {
		digits = digits[:15]
	}
	start := len(b)
	b = append(b, IEIMSI, 0, 0, i.Ins&0x0f)
	b = append(b, tbcdEncode(digits)...)
	setTLIVLength(b, start)
	return b
}

func (i IMSI) Type() uint8     { return IEIMSI }
func (i IMSI) Instance() uint8 { return i.Ins }
func (i IMSI) Len() int        { return (len(i.IMSI)+1)/2 + minIESize }
func (i IMSI) IsEmpty() bool   { return i.IMSI == "" }

// MEI IE (type 75), per TS 29.274 §8.10. IMEI(SV) as TBCD digits.
type MEI struct {
	Ins uint8
	MEI string
}

func DecodeMEI(b []byte) (MEI, error) {
	if len(b) < minIESize+1 {
		return MEI{}, ieErr(ErrIEInvalidLength, IEMEI)
	}
	length := int(binary.BigEndian.Uint16(b[1:3]))
	if len(b) < length+minIESize {
		return MEI{}, ieErr(ErrIEInvalidLength, IEMEI)
	}
	return MEI{Ins: b[3] & 0x0f, MEI: tbcdDecode(b[4 : 4+length])}, nil
}

func (i MEI) Marshal(b []byte) []byte {
	digits := i.MEI
	if len(digits) > 16 {
		digits = digits[:16]
	}
	start := len(b)
	b = append(b, IEMEI, 0, 0, i.Ins&0x0f)
	b = append(b, tbcdEncode(digits)...)
	setTLIVLength(b, start)
	return b
}

func (i MEI) Type() uint8     { return IEMEI }
func (i MEI) Instance() uint8 { return i.Ins }
func (i MEI) Len() int        { return (len(i.MEI)+1)/2 + minIESize }
func (i MEI) IsEmpty() bool   { return i.MEI == "" }

// MSISDN IE (type 76), per TS 29.274 §8.11. International number as
// TBCD digits without a nature-of-address octet.
type MSISDN struct {
	Ins    uint8
	MSISDN string
}

func DecodeMSISDN(b []byte) (MSISDN, error) {
	if len(b) < minIESize+1 {
		return MSISDN{}, ieErr(ErrIEInvalidLength, IEMSISDN)
	}
	length := int(binary.BigEndian.Uint16(b[1:3]))
	if len(b) < length+minIESize {
		return MSISDN{}, ieErr(ErrIEInvalidLength, IEMSISDN)
	}
	return MSISDN{Ins: b[3] & 0x0f, MSISDN: tbcdDecode(b[4 : 4+length])}, nil
}

func (i MSISDN) Marshal(b []byte) []byte {
	start := len(b)
	b = append(b, IEMSISDN, 0, 0, i.Ins&0x0f)
	b = append(b, tbcdEncode(i.MSISDN)...)
	setTLIVLength(b, start)
	return b
}

func (i MSISDN) Type() uint8     { return IEMSISDN }
func (i MSISDN) Instance() uint8 { return i.Ins }
func (i MSISDN) Len() int        { return (len(i.MSISDN)+1)/2 + minIESize }
func (i MSISDN) IsEmpty() bool   { return i.MSISDN == "" }

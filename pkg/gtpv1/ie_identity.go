package gtpv1

import "encoding/binary"

// IMSI IE (type 2, TV). Up to 15 TBCD digits in 8 octets; longer input
// is truncated to the documented maximum.
type IMSI struct {
	IMSI string
}

func DecodeIMSI(b []byte) (IMSI, error) {
	if len(b) < 9 {
		return IMSI{}, ieErr(ErrIEInvalidLength, IEIMSI)
	}
	return IMSI{IMSI: tbcdDecode(b[1:9])}, nil
}

func (i IMSI) Marshal(b []byte) []byte {
	digits := i.IMSI
	if len(digits) > 15 {
		digits = digits[:15]
	}
	b = append(b, IEIMSI)
	enc := tbcdEncode(digits)
	b = append(b, enc...)
	for n := len(enc); n < 8; n++ {
		b = append(b, 0xff)
	}
	return b
}

func (i IMSI) Type() uint8   { return IEIMSI }
func (i IMSI) Len() int      { return 9 }
func (i IMSI) IsEmpty() bool { return i.IMSI == "" }

// MSISDN IE (type 134, TLV). Leading extension/nature-of-address octet
// followed by TBCD digits, per TS 29.060 §7.7.33.
type MSISDN struct {
	Extension uint8
	MSISDN    string
}

// NewMSISDN returns an MSISDN with the usual international E.164
// address octet.
func NewMSISDN(msisdn string) MSISDN {
	return MSISDN{Extension: 0x91, MSISDN: msisdn}
}

func DecodeMSISDN(b []byte) (MSISDN, error) {
	if len(b) < 4 {
		return MSISDN{}, ieErr(ErrIEInvalidLength, IEMSISDN)
	}
	length := int(binary.BigEndian.Uint16(b[1:3]))
	if length < 1 || len(b) < length+3 {
		return MSISDN{}, ieErr(ErrIEInvalidLength, IEMSISDN)
	}
	return MSISDN{Extension: b[3], MSISDN: tbcdDecode(b[4 : 3+length])}, nil
}

func (i MSISDN) Marshal(b []byte) []byte {
	start := len(b)
	b = append(b, IEMSISDN, 0, 0, i.Extension)
	b = append(b, tbcdEncode(i.MSISDN)...)
	setTLVLength(b, start)
	return b
}

func (i MSISDN) Type() uint8 { return IEMSISDN }
func (i MSISDN) Len() int    { return (len(i.MSISDN)+1)/2 + 4 }
func (i MSISDN) IsEmpty() bool {
	return i.MSISDN == ""
}

// IMEI IE (type 154, TLV). IMEI(SV) as 16 TBCD digits in 8 octets.
type IMEI struct {
	IMEI string
}

func DecodeIMEI(b []byte) (IMEI, error) {
	if len(b) < 11 {
		return IMEI{}, ieErr(ErrIEInvalidLength, IEIMEI)
	}
	return IMEI{IMEI: tbcdDecode(b[3:11])}, nil
}

func (i IMEI) Marshal(b []byte) []byte {
	digits := i.IMEI
	if len(digits) > 16 {
		digits = digits[:16]
	}
	start := len(b)
	b = append(b, IEIMEI, 0, 0)
	enc := tbcdEncode(digits)
	b = append(b, enc...)
	for n := len(enc); n < 8; n++ {
		b = append(b, 0xff)
	}
	setTLVLength(b, start)
	return b
}

func (i IMEI) Type() uint8   { return IEIMEI }
func (i IMEI) Len() int      { return 11 }
func (i IMEI) IsEmpty() bool { return i.IMEI == "" }

package gtpv2

import "encoding/binary"

// tbcdEncode packs a digit string into TBCD format, low nibble first,
// padding an odd number of digits with a 0xF filler nibble. Non-digit
// characters are ignored.
func tbcdEncode(digits string) []byte {
	nibbles := make([]uint8, 0, len(digits)+1)
	for _, c := range digits {
		if c >= '0' && c <= '9' {
			nibbles = append(nibbles, uint8(c-'0'))
		}
	}
	if len(nibbles)%2 != 0 {
		nibbles = append(nibbles, 0x0f)
	}
	out := make([]byte, 0, len(nibbles)/2)
	for i := 0; i < len(nibbles); i += 2 {
		out = append(out, nibbles[i+1]<<4|nibbles[i])
	}
	return out
}

// tbcdDecode unpacks a TBCD byte string, dropping filler nibbles.
func tbcdDecode(b []byte) string {
	out := make([]byte, 0, len(b)*2)
	for _, x := range b {
		if lo := x & 0x0f; lo <= 9 {
			out = append(out, '0'+lo)
		}
		if hi := x >> 4; hi <= 9 {
			out = append(out, '0'+hi)
		}
	}
	return string(out)
}

// mccMncEncode packs MCC and MNC into the 3-byte PLMN format of
// TS 29.274 §8.18; a two-digit MNC gets the 0xF filler nibble.
func mccMncEncode(mcc, mnc uint16) []byte {
	m := toDigits(mcc, 3)
	n := toDigits(mnc, 2)
	if mnc > 99 {
		n = toDigits(mnc, 3)
	}
	b := make([]byte, 3)
	b[0] = m[1]<<4 | m[0]
	if len(n) == 2 {
		b[1] = 0xf0 | m[2]
		b[2] = n[1]<<4 | n[0]
	} else {
		b[1] = n[2]<<4 | m[2]
		b[2] = n[1]<<4 | n[0]
	}
	return b
}

// mccMncDecode is the inverse of mccMncEncode.
func mccMncDecode(b []byte) (mcc, mnc uint16) {
	mcc = uint16(b[0]&0x0f)*100 + uint16(b[0]>>4)*10 + uint16(b[1]&0x0f)
	if b[1]>>4 == 0x0f {
		mnc = uint16(b[2]&0x0f)*10 + uint16(b[2]>>4)
	} else {
		mnc = uint16(b[2]&0x0f)*100 + uint16(b[2]>>4)*10 + uint16(b[1]>>4)
	}
	return mcc, mnc
}

func toDigits(v uint16, n int) []uint8 {
	d := make([]uint8, n)
	for i := n - 1; i >= 0; i-- {
		d[i] = uint8(v % 10)
		v /= 10
	}
	return d
}

// setMsgLength back-patches the header length field of the message that
// starts at offset start in b.
func setMsgLength(b []byte, start int) {
	binary.BigEndian.PutUint16(b[start+2:start+4], uint16(len(b)-start-4))
}

// setTLIVLength back-patches the 2-byte length field of the TLIV IE
// that starts at offset start in b. The length excludes the type,
// length and instance octets.
func setTLIVLength(b []byte, start int) {
	binary.BigEndian.PutUint16(b[start+1:start+3], uint16(len(b)-start-4))
}

func cloneBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

package gtpv1

import (
	"bytes"
	"testing"
)

func TestTBCDEncode(t *testing.T) {
	got := tbcdEncode("987432101314063")
	want := []byte{137, 71, 35, 1, 49, 65, 96, 243}
	if !bytes.Equal(got, want) {
		t.Errorf("tbcdEncode = %v, want %v", got, want)
	}
}

func TestTBCDDecode(t *testing.T) {
	got := tbcdDecode([]byte{137, 71, 35, 1, 49, 65, 96, 243})
	if got != "987432101314063" {
		t.Errorf("tbcdDecode = %q, want %q", got, "987432101314063")
	}
}

func TestTBCDEncodeIgnoresNonDigits(t *testing.T) {
	if got, want := tbcdEncode("90-14"), tbcdEncode("9014"); !bytes.Equal(got, want) {
		t.Errorf("tbcdEncode with separator = %v, want %v", got, want)
	}
}

func TestMCCMNCRoundTrip(t *testing.T) {
	cases := []struct {
		mcc, mnc uint16
		enc      []byte
	}{
		{999, 1, []byte{0x99, 0xf9, 0x10}},
		{262, 2, []byte{0x62, 0xf2, 0x20}},
		{310, 410, []byte{0x13, 0x00, 0x14}},
	}
	for _, c := range cases {
		enc := mccMncEncode(c.mcc, c.mnc)
		if !bytes.Equal(enc, c.enc) {
			t.Errorf("mccMncEncode(%d,%d) = %x, want %x", c.mcc, c.mnc, enc, c.enc)
		}
		mcc, mnc := mccMncDecode(c.enc)
		if mcc != c.mcc || mnc != c.mnc {
			t.Errorf("mccMncDecode(%x) = %d,%d, want %d,%d", c.enc, mcc, mnc, c.mcc, c.mnc)
		}
	}
}

func TestSetMsgLength(t *testing.T) {
	b := make([]byte, 20)
	setMsgLength(b, 0)
	if b[2] != 0 || b[3] != 12 {
		t.Errorf("setMsgLength wrote %d %d, want 0 12", b[2], b[3])
	}
}

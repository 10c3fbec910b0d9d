package gtpv2

import (
	"bytes"
	"errors"
	"net"
	"reflect"
	"testing"
)

func marshalIE(ie IE) []byte {
	return ie.Marshal(nil)
}

func TestIMSIRoundTrip(t *testing.T) {
	ie := IMSI{IMSI: "901405101327496"}
	enc := marshalIE(ie)
	want := []byte{0x01, 0x00, 0x08, 0x00, 0x09, 0x41, 0x50, 0x01, 0x31, 0x72, 0x94, 0xf6}
	if !bytes.Equal(enc, want) {
		t.Fatalf("marshal = %x, want %x", enc, want)
	}
	got, err := DecodeIMSI(enc)
	if err != nil {
		t.Fatal(err)
	}
	if got != ie {
		t.Errorf("decode = %+v, want %+v", got, ie)
	}
}

func TestCauseRoundTrip(t *testing.T) {
	ie := Cause{Value: CauseRequestAccepted}
	enc := marshalIE(ie)
	want := []byte{0x02, 0x00, 0x02, 0x00, 0x10, 0x00}
	if !bytes.Equal(enc, want) {
		t.Fatalf("marshal = %x, want %x", enc, want)
	}
	got, err := DecodeCause(enc)
	if err != nil {
		t.Fatal(err)
	}
	if got != ie {
		t.Errorf("decode = %+v, want %+v", got, ie)
	}
	if !got.Accepted() {
		t.Error("Accepted() = false")
	}
}

func TestCauseWithOffendingIE(t *testing.T) {
	ie := Cause{Value: CauseMandatoryIEMissing, OffendingIEType: IEFTEID, HasOffendingIE: true}
	enc := marshalIE(ie)
	if enc[2] != 6 {
		t.Fatalf("length = %d, want 6", enc[2])
	}
	got, err := DecodeCause(enc)
	if err != nil {
		t.Fatal(err)
	}
	if !got.HasOffendingIE || got.OffendingIEType != IEFTEID {
		t.Errorf("decode = %+v", got)
	}
	if re := marshalIE(got); !bytes.Equal(re, enc) {
		t.Errorf("re-marshal = %x", re)
	}
}

func TestRecoveryRoundTrip(t *testing.T) {
	enc := []byte{0x03, 0x00, 0x01, 0x00, 0x64}
	ie, err := DecodeRecovery(enc)
	if err != nil {
		t.Fatal(err)
	}
	if ie.RestartCounter != 100 {
		t.Errorf("restart counter = %d", ie.RestartCounter)
	}
	if got := marshalIE(ie); !bytes.Equal(got, enc) {
		t.Errorf("marshal = %x, want %x", got, enc)
	}
}

func TestEBIRoundTrip(t *testing.T) {
	enc := []byte{0x49, 0x00, 0x01, 0x00, 0x05}
	ie, err := DecodeEBI(enc)
	if err != nil {
		t.Fatal(err)
	}
	if ie.Value != 5 {
		t.Errorf("value = %d", ie.Value)
	}
	if got := marshalIE(ie); !bytes.Equal(got, enc) {
		t.Errorf("marshal = %x, want %x", got, enc)
	}
}

func TestInstanceNibbleMasked(t *testing.T) {
	// CR bits in the upper nibble of the instance octet are masked out.
	enc := []byte{0x49, 0x00, 0x01, 0xf3, 0x05}
	ie, err := DecodeEBI(enc)
	if err != nil {
		t.Fatal(err)
	}
	if ie.Ins != 3 {
		t.Errorf("instance = %d, want 3", ie.Ins)
	}
}

func TestAPNRoundTrip(t *testing.T) {
	ie := APN{Name: "test.net.com"}
	enc := marshalIE(ie)
	want := []byte{0x47, 0x00, 0x0d, 0x00, 0x04, 't', 'e', 's', 't', 0x03, 'n', 'e', 't', 0x03, 'c', 'o', 'm'}
	if !bytes.Equal(enc, want) {
		t.Fatalf("marshal = %x, want %x", enc, want)
	}
	got, err := DecodeAPN(enc)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != ie.Name {
		t.Errorf("name = %q", got.Name)
	}
}

func TestAMBRRoundTrip(t *testing.T) {
	ie := AMBR{Uplink: 50000, Downlink: 150000}
	enc := marshalIE(ie)
	got, err := DecodeAMBR(enc)
	if err != nil {
		t.Fatal(err)
	}
	if got != ie {
		t.Errorf("decode = %+v, want %+v", got, ie)
	}
}

func TestServingNetworkRoundTrip(t *testing.T) {
	enc := []byte{0x53, 0x00, 0x03, 0x00, 0x99, 0xf9, 0x10}
	ie, err := DecodeServingNetwork(enc)
	if err != nil {
		t.Fatal(err)
	}
	want := ServingNetwork{MCC: 999, MNC: 1}
	if ie != want {
		t.Errorf("decode = %+v, want %+v", ie, want)
	}
	if got := marshalIE(ie); !bytes.Equal(got, enc) {
		t.Errorf("marshal = %x, want %x", got, enc)
	}
}

func TestPLMNIDRoundTrip(t *testing.T) {
	enc := []byte{0x78, 0x00, 0x03, 0x00, 0x99, 0xf9, 0x10}
	ie, err := DecodePLMNID(enc)
	if err != nil {
		t.Fatal(err)
	}
	want := PLMNID{MCC: 999, MNC: 1}
	if ie != want {
		t.Errorf("decode = %+v, want %+v", ie, want)
	}
	if got := marshalIE(ie); !bytes.Equal(got, enc) {
		t.Errorf("marshal = %x, want %x", got, enc)
	}
}

func TestPAAVariants(t *testing.T) {
	v4 := PAA{PDNType: PDNTypeIPv4, IPv4: net.IPv4(10, 0, 0, 1).To4()}
	v6 := PAA{PDNType: PDNTypeIPv6, IPv6PrefixLen: 64, IPv6: net.ParseIP("2001:db8::1")}
	dual := PAA{PDNType: PDNTypeIPv4v6, IPv6PrefixLen: 64, IPv6: net.ParseIP("2001:db8::1"), IPv4: net.IPv4(10, 0, 0, 1).To4()}
	for _, ie := range []PAA{v4, v6, dual} {
		enc := marshalIE(ie)
		got, err := DecodePAA(enc)
		if err != nil {
			t.Fatal(err)
		}
		if re := marshalIE(got); !bytes.Equal(re, enc) {
			t.Errorf("re-marshal = %x, want %x", re, enc)
		}
	}
	if _, err := DecodePAA([]byte{0x4f, 0x00, 0x02, 0x00, 0x01, 0x0a}); !errors.Is(err, ErrIEIncorrect) {
		t.Errorf("err = %v, want ErrIEIncorrect", err)
	}
}

func TestBearerQoSRoundTrip(t *testing.T) {
	ie := BearerQoS{
		PCI:           true,
		PriorityLevel: 9,
		PVI:           false,
		QCI:           8,
		MBRUplink:     100000,
		MBRDownlink:   200000,
	}
	enc := marshalIE(ie)
	if int(enc[2]) != 22 {
		t.Fatalf("length = %d, want 22", enc[2])
	}
	got, err := DecodeBearerQoS(enc)
	if err != nil {
		t.Fatal(err)
	}
	if got != ie {
		t.Errorf("decode = %+v, want %+v", got, ie)
	}
}

func TestFlowQoSRoundTrip(t *testing.T) {
	ie := FlowQoS{QCI: 5, MBRUplink: 1 << 33, GBRDownlink: 42}
	enc := marshalIE(ie)
	got, err := DecodeFlowQoS(enc)
	if err != nil {
		t.Fatal(err)
	}
	if got != ie {
		t.Errorf("decode = %+v, want %+v", got, ie)
	}
}

func TestFTEIDVariants(t *testing.T) {
	v4 := FTEID{Interface: FTEIDIfaceS11MMEGTPC, TEID: 0x0a0b0c0d, IPv4: net.IPv4(10, 1, 2, 3).To4()}
	v6 := FTEID{Interface: FTEIDIfaceS5S8PGWGTPC, TEID: 1, IPv6: net.ParseIP("2001:db8::2")}
	dual := FTEID{Interface: FTEIDIfaceS1USGWGTPU, TEID: 2, IPv4: net.IPv4(10, 1, 2, 3).To4(), IPv6: net.ParseIP("2001:db8::2")}
	for _, ie := range []FTEID{v4, v6, dual} {
		enc := marshalIE(ie)
		got, err := DecodeFTEID(enc)
		if err != nil {
			t.Fatal(err)
		}
		if got.TEID != ie.TEID || got.Interface != ie.Interface {
			t.Errorf("decode = %+v, want %+v", got, ie)
		}
		if re := marshalIE(got); !bytes.Equal(re, enc) {
			t.Errorf("re-marshal = %x, want %x", re, enc)
		}
	}
}

func TestULIRoundTrip(t *testing.T) {
	ie := ULI{
		TAI:  &TAI{MCC: 262, MNC: 2, TAC: 0x1234},
		ECGI: &ECGI{MCC: 262, MNC: 2, ECI: 0x0abcdef1},
	}
	enc := marshalIE(ie)
	if enc[4] != uliTAI|uliECGI {
		t.Fatalf("flags = %#x", enc[4])
	}
	got, err := DecodeULI(enc)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, ie) {
		t.Errorf("decode = %+v, want %+v", got, ie)
	}
	if re := marshalIE(got); !bytes.Equal(re, enc) {
		t.Errorf("re-marshal = %x, want %x", re, enc)
	}
}

func TestULITruncatedPart(t *testing.T) {
	enc := []byte{0x56, 0x00, 0x04, 0x00, 0x08, 0x62, 0xf2, 0x20}
	if _, err := DecodeULI(enc); !errors.Is(err, ErrIEInvalidLength) {
		t.Errorf("err = %v, want ErrIEInvalidLength", err)
	}
}

func TestScalarIEVectors(t *testing.T) {
	cases := []struct {
		enc []byte
		ie  IE
	}{
		{[]byte{0x93, 0x00, 0x04, 0x00, 0x07, 0xff, 0xff, 0xff}, CSGID{Value: 0x7ffffff}},
		{[]byte{0x5c, 0x00, 0x01, 0x00, 0xff}, DelayValue{Value: 0xff}},
		{[]byte{0x96, 0x00, 0x01, 0x00, 0x02}, DetachType{Value: 2}},
		{[]byte{0x86, 0x00, 0x01, 0x00, 0x00}, EmlppPriority{Priority: 0}},
		{[]byte{0x71, 0x00, 0x01, 0x00, 0x01}, HopCounter{Value: 1}},
		{[]byte{0x7e, 0x00, 0x02, 0x00, 0xff, 0xff}, PortNumber{Port: 0xffff}},
		{[]byte{0x64, 0x00, 0x01, 0x00, 0x00}, PTI{Value: 0}},
		{[]byte{0x90, 0x00, 0x02, 0x00, 0x01, 0x00}, RFSPIndex{Value: 256}},
		{[]byte{0x95, 0x00, 0x01, 0x00, 0x02}, ServiceIndicator{Value: 2}},
		{[]byte{0xb7, 0x00, 0x04, 0x00, 0xff, 0xaa, 0xee, 0x11}, SequenceNumber{Value: 0xffaaee11}},
		{[]byte{0x58, 0x00, 0x04, 0x00, 0xff, 0xff, 0xff, 0xfa}, TMSI{Value: 0xfffffffa}},
		{[]byte{0xad, 0x00, 0x01, 0x00, 0x02}, CNOSE{Value: 2}},
		{[]byte{0xc8, 0x00, 0x02, 0x00, 0x00, 0x0f}, MappedUEUsageType{UsageType: 15}},
		{[]byte{0xca, 0x00, 0x01, 0x00, 0x01}, UPFSIF{DCNR: true}},
	}
	for _, c := range cases {
		got := marshalIE(c.ie)
		if !bytes.Equal(got, c.enc) {
			t.Errorf("marshal %T = %x, want %x", c.ie, got, c.enc)
			continue
		}
		decoded, n, err := DecodeIE(c.enc)
		if err != nil {
			t.Errorf("decode %x: %v", c.enc, err)
			continue
		}
		if n != len(c.enc) {
			t.Errorf("consumed %d, want %d", n, len(c.enc))
		}
		if !reflect.DeepEqual(decoded, c.ie) {
			t.Errorf("decode %x = %+v, want %+v", c.enc, decoded, c.ie)
		}
	}
}

func TestUnknownIEPreserved(t *testing.T) {
	enc := []byte{0x00, 0x00, 0x03, 0x00, 0x00, 0x0f, 0xff}
	ie, n, err := DecodeIE(enc)
	if err != nil {
		t.Fatal(err)
	}
	if n != len(enc) {
		t.Errorf("consumed = %d", n)
	}
	u, ok := ie.(Unknown)
	if !ok {
		t.Fatalf("type = %T, want Unknown", ie)
	}
	if got := marshalIE(u); !bytes.Equal(got, enc) {
		t.Errorf("marshal = %x, want %x", got, enc)
	}
}

func TestIELengthOverrun(t *testing.T) {
	if _, _, err := DecodeIE([]byte{0x49, 0x00, 0x05, 0x00, 0x05}); !errors.Is(err, ErrIEInvalidLength) {
		t.Errorf("err = %v, want ErrIEInvalidLength", err)
	}
	var ieError *IEError
	_, _, err := DecodeIE([]byte{0x49, 0x00, 0x05, 0x00, 0x05})
	if !errors.As(err, &ieError) || ieError.IEType != IEEBI {
		t.Errorf("err = %v, want *IEError carrying EBI", err)
	}
}

func TestSortIEs(t *testing.T) {
	ies := []IE{
		FTEID{Ins: 1, TEID: 2},
		Recovery{RestartCounter: 1},
		FTEID{Ins: 0, TEID: 1},
		IMSI{IMSI: "1"},
	}
	sortIEs(ies)
	if ies[0].Type() != IEIMSI || ies[1].Type() != IERecovery {
		t.Errorf("order = %v %v", ies[0].Type(), ies[1].Type())
	}
	if ies[2].Instance() != 0 || ies[3].Instance() != 1 {
		t.Errorf("instance order = %d %d", ies[2].Instance(), ies[3].Instance())
	}
}

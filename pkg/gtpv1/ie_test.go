package gtpv1

import (
	"bytes"
	"errors"
	"net"
	"reflect"
	"testing"
)

// marshalIE is a test helper appending to a fresh buffer.
func marshalIE(ie IE) []byte {
	return ie.Marshal(nil)
}

func TestCauseRoundTrip(t *testing.T) {
	enc := []byte{0x01, 0x80}
	ie, err := DecodeCause(enc)
	if err != nil {
		t.Fatal(err)
	}
	if ie.Value != CauseRequestAccepted {
		t.Errorf("value = %d, want %d", ie.Value, CauseRequestAccepted)
	}
	if got := marshalIE(ie); !bytes.Equal(got, enc) {
		t.Errorf("marshal = %x, want %x", got, enc)
	}
}

func TestIMSIRoundTrip(t *testing.T) {
	enc := []byte{0x02, 0x09, 0x41, 0x50, 0x01, 0x31, 0x72, 0x94, 0xf6}
	ie, err := DecodeIMSI(enc)
	if err != nil {
		t.Fatal(err)
	}
	if ie.IMSI != "901405101327496" {
		t.Errorf("imsi = %q, want %q", ie.IMSI, "901405101327496")
	}
	if got := marshalIE(ie); !bytes.Equal(got, enc) {
		t.Errorf("marshal = %x, want %x", got, enc)
	}
}

func TestRAIRoundTrip(t *testing.T) {
	enc := []byte{0x03, 0x99, 0xf9, 0x10, 0x03, 0xe7, 0x43}
	ie, err := DecodeRAI(enc)
	if err != nil {
		t.Fatal(err)
	}
	want := RAI{MCC: 999, MNC: 1, LAC: 999, RAC: 67}
	if ie != want {
		t.Errorf("decode = %+v, want %+v", ie, want)
	}
	if got := marshalIE(ie); !bytes.Equal(got, enc) {
		t.Errorf("marshal = %x, want %x", got, enc)
	}
}

func TestRecoveryRoundTrip(t *testing.T) {
	enc := []byte{0x0e, 0x63}
	ie, err := DecodeRecovery(enc)
	if err != nil {
		t.Fatal(err)
	}
	if ie.RestartCounter != 0x63 {
		t.Errorf("restart counter = %d, want 99", ie.RestartCounter)
	}
	if got := marshalIE(ie); !bytes.Equal(got, enc) {
		t.Errorf("marshal = %x, want %x", got, enc)
	}
}

func TestSelectionModeMarshal(t *testing.T) {
	if got := marshalIE(SelectionMode{Value: 2}); !bytes.Equal(got, []byte{0x0f, 0xfe}) {
		t.Errorf("marshal = %x, want 0ffe", got)
	}
	ie, err := DecodeSelectionMode([]byte{0x0f, 0xfe})
	if err != nil {
		t.Fatal(err)
	}
	if ie.Value != 2 {
		t.Errorf("value = %d, want 2", ie.Value)
	}
}

func TestTEIDRoundTrip(t *testing.T) {
	enc := []byte{0x10, 0x63, 0x41, 0xaf, 0xd7}
	ie, err := DecodeTEIDDataI(enc)
	if err != nil {
		t.Fatal(err)
	}
	if ie.TEID != 0x6341afd7 {
		t.Errorf("teid = %x", ie.TEID)
	}
	if got := marshalIE(ie); !bytes.Equal(got, enc) {
		t.Errorf("marshal = %x, want %x", got, enc)
	}
	ctrl := TEIDControlPlane{TEID: 0x6341afd7}
	if got := marshalIE(ctrl); got[0] != IETEIDControlPlane {
		t.Errorf("control plane type byte = %d", got[0])
	}
}

func TestTeardownIndRejectsReservedValues(t *testing.T) {
	if _, err := DecodeTeardownInd([]byte{0x13, 0x00}); !errors.Is(err, ErrIEIncorrect) {
		t.Errorf("err = %v, want ErrIEIncorrect", err)
	}
	ie, err := DecodeTeardownInd([]byte{0x13, 0xff})
	if err != nil {
		t.Fatal(err)
	}
	if !ie.Teardown {
		t.Error("teardown = false, want true")
	}
}

func TestNSAPIRoundTrip(t *testing.T) {
	enc := []byte{0x14, 0x05}
	ie, err := DecodeNSAPI(enc)
	if err != nil {
		t.Fatal(err)
	}
	if ie.Value != 5 {
		t.Errorf("value = %d, want 5", ie.Value)
	}
	if got := marshalIE(ie); !bytes.Equal(got, enc) {
		t.Errorf("marshal = %x, want %x", got, enc)
	}
}

func TestChargingIDRejectsZero(t *testing.T) {
	if _, err := DecodeChargingID([]byte{0x7f, 0x00, 0x00, 0x00, 0x00}); !errors.Is(err, ErrIEIncorrect) {
		t.Errorf("err = %v, want ErrIEIncorrect", err)
	}
	enc := []byte{0x7f, 0x00, 0x00, 0x00, 0xff}
	ie, err := DecodeChargingID(enc)
	if err != nil {
		t.Fatal(err)
	}
	if got := marshalIE(ie); !bytes.Equal(got, enc) {
		t.Errorf("marshal = %x, want %x", got, enc)
	}
}

func TestTraceReferenceRoundTrip(t *testing.T) {
	enc := []byte{0x1b, 0x03, 0xf2}
	ie, err := DecodeTraceReference(enc)
	if err != nil {
		t.Fatal(err)
	}
	if ie.Value != 0x03f2 {
		t.Errorf("value = %x", ie.Value)
	}
	if got := marshalIE(ie); !bytes.Equal(got, enc) {
		t.Errorf("marshal = %x, want %x", got, enc)
	}
}

func TestAPNRoundTrip(t *testing.T) {
	enc := []byte{0x83, 0x00, 0x0d, 0x04, 't', 'e', 's', 't', 0x03, 'n', 'e', 't', 0x03, 'c', 'o', 'm'}
	ie, err := DecodeAPN(enc)
	if err != nil {
		t.Fatal(err)
	}
	if ie.Name != "test.net.com" {
		t.Errorf("name = %q, want %q", ie.Name, "test.net.com")
	}
	if got := marshalIE(ie); !bytes.Equal(got, enc) {
		t.Errorf("marshal = %x, want %x", got, enc)
	}
}

func TestAPNTrailingDotNormalized(t *testing.T) {
	withDot := marshalIE(APN{Name: "internet."})
	without := marshalIE(APN{Name: "internet"})
	if !bytes.Equal(withDot, without) {
		t.Errorf("trailing dot changed encoding: %x vs %x", withDot, without)
	}
}

func TestAPNAMBRRoundTrip(t *testing.T) {
	enc := []byte{0xc6, 0x00, 0x08, 0x00, 0x00, 0x07, 0xd0, 0x00, 0x00, 0x1f, 0x40}
	ie, err := DecodeAPNAMBR(enc)
	if err != nil {
		t.Fatal(err)
	}
	want := APNAMBR{Uplink: 2000, Downlink: 8000}
	if ie != want {
		t.Errorf("decode = %+v, want %+v", ie, want)
	}
	if got := marshalIE(ie); !bytes.Equal(got, enc) {
		t.Errorf("marshal = %x, want %x", got, enc)
	}
}

func TestQoSProfileRoundTrip(t *testing.T) {
	enc := []byte{0x87, 0x00, 0x0c, 0x03, 0x1b, 0x93, 0x1f, 0x73, 0x96, 0x97, 0x97, 0x44, 0xfb, 0x10, 0x40}
	ie, err := DecodeQoSProfile(enc)
	if err != nil {
		t.Fatal(err)
	}
	if ie.ARP != 3 || len(ie.QoS) != 11 {
		t.Errorf("decode = %+v", ie)
	}
	if got := marshalIE(ie); !bytes.Equal(got, enc) {
		t.Errorf("marshal = %x, want %x", got, enc)
	}
}

func TestQoSProfileRejectsShortQoSData(t *testing.T) {
	enc := []byte{0x87, 0x00, 0x03, 0x03, 0x1b, 0x93}
	if _, err := DecodeQoSProfile(enc); !errors.Is(err, ErrIEIncorrect) {
		t.Errorf("err = %v, want ErrIEIncorrect", err)
	}
}

func TestRATTypeRejectsReserved(t *testing.T) {
	enc := []byte{0x97, 0x00, 0x01, 0x02}
	ie, err := DecodeRATType(enc)
	if err != nil {
		t.Fatal(err)
	}
	if ie.RAT != RATTypeGERAN {
		t.Errorf("rat = %d, want GERAN", ie.RAT)
	}
	if got := marshalIE(ie); !bytes.Equal(got, enc) {
		t.Errorf("marshal = %x, want %x", got, enc)
	}
	if _, err := DecodeRATType([]byte{0x97, 0x00, 0x01, 0x07}); !errors.Is(err, ErrIEIncorrect) {
		t.Errorf("err = %v, want ErrIEIncorrect", err)
	}
}

func TestGSNAddressRoundTrip(t *testing.T) {
	enc := []byte{0x85, 0x00, 0x04, 0x0a, 0x14, 0x1e, 0x28}
	ie, err := DecodeGSNAddress(enc)
	if err != nil {
		t.Fatal(err)
	}
	if !ie.IP.Equal(net.IPv4(10, 20, 30, 40)) {
		t.Errorf("ip = %v", ie.IP)
	}
	if got := marshalIE(ie); !bytes.Equal(got, enc) {
		t.Errorf("marshal = %x, want %x", got, enc)
	}
}

func TestGSNAddressRejectsBadLength(t *testing.T) {
	enc := []byte{0x85, 0x00, 0x03, 0x0a, 0x14, 0x1e}
	if _, err := DecodeGSNAddress(enc); !errors.Is(err, ErrIEIncorrect) {
		t.Errorf("err = %v, want ErrIEIncorrect", err)
	}
}

func TestIMEIRoundTrip(t *testing.T) {
	enc := []byte{0x9a, 0x00, 0x08, 0x53, 0x77, 0x69, 0x01, 0x16, 0x73, 0x06, 0xf0}
	ie, err := DecodeIMEI(enc)
	if err != nil {
		t.Fatal(err)
	}
	if ie.IMEI != "357796106137600" {
		t.Errorf("imei = %q", ie.IMEI)
	}
	if got := marshalIE(ie); !bytes.Equal(got, enc) {
		t.Errorf("marshal = %x, want %x", got, enc)
	}
}

func TestCAMELCICRoundTrip(t *testing.T) {
	enc := []byte{0x9b, 0x00, 0x04, 0x00, 0x00, 0x00, 0x00}
	ie, err := DecodeCAMELCIC(enc)
	if err != nil {
		t.Fatal(err)
	}
	if got := marshalIE(ie); !bytes.Equal(got, enc) {
		t.Errorf("marshal = %x, want %x", got, enc)
	}
}

func TestTriggerIDRoundTrip(t *testing.T) {
	enc := []byte{0x8e, 0x00, 0x02, 0x80, 0x80}
	ie, err := DecodeTriggerID(enc)
	if err != nil {
		t.Fatal(err)
	}
	if got := marshalIE(ie); !bytes.Equal(got, enc) {
		t.Errorf("marshal = %x, want %x", got, enc)
	}
}

func TestOMCIDRoundTrip(t *testing.T) {
	enc := []byte{0x8f, 0x00, 0x02, 0x80, 0x80}
	ie, err := DecodeOMCID(enc)
	if err != nil {
		t.Fatal(err)
	}
	if got := marshalIE(ie); !bytes.Equal(got, enc) {
		t.Errorf("marshal = %x, want %x", got, enc)
	}
}

func TestBearerControlModeRejectsReserved(t *testing.T) {
	if _, err := DecodeBearerControlMode([]byte{0xb8, 0x00, 0x01, 0x02}); !errors.Is(err, ErrIEIncorrect) {
		t.Errorf("err = %v, want ErrIEIncorrect", err)
	}
	enc := []byte{0xb8, 0x00, 0x01, 0x01}
	ie, err := DecodeBearerControlMode(enc)
	if err != nil {
		t.Fatal(err)
	}
	if got := marshalIE(ie); !bytes.Equal(got, enc) {
		t.Errorf("marshal = %x, want %x", got, enc)
	}
}

func TestMappedUEUsageTypeRoundTrip(t *testing.T) {
	enc := []byte{0xdf, 0x00, 0x02, 0x00, 0x0f}
	ie, err := DecodeMappedUEUsageType(enc)
	if err != nil {
		t.Fatal(err)
	}
	if ie.UsageType != 15 {
		t.Errorf("usage type = %d, want 15", ie.UsageType)
	}
	if got := marshalIE(ie); !bytes.Equal(got, enc) {
		t.Errorf("marshal = %x, want %x", got, enc)
	}
}

func TestPrivateExtensionRoundTrip(t *testing.T) {
	enc := []byte{0xff, 0x00, 0x05, 0x00, 0x08, 0x01, 0x02, 0x03}
	ie, err := DecodePrivateExtension(enc)
	if err != nil {
		t.Fatal(err)
	}
	want := PrivateExtension{ExtensionID: 8, ExtensionValue: []byte{1, 2, 3}}
	if !reflect.DeepEqual(ie, want) {
		t.Errorf("decode = %+v, want %+v", ie, want)
	}
	if got := marshalIE(ie); !bytes.Equal(got, enc) {
		t.Errorf("marshal = %x, want %x", got, enc)
	}
}

func TestExtHeaderTypeListRoundTrip(t *testing.T) {
	enc := []byte{0x8d, 0x05, 0x00, 0x01, 0x02, 0x03, 0x04}
	ie, err := DecodeExtHeaderTypeList(enc)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(ie.List, []byte{0, 1, 2, 3, 4}) {
		t.Errorf("list = %v", ie.List)
	}
	if got := marshalIE(ie); !bytes.Equal(got, enc) {
		t.Errorf("marshal = %x, want %x", got, enc)
	}
}

func TestDecodeIEUnknownTLVPreserved(t *testing.T) {
	enc := []byte{0xa9, 0x00, 0x03, 0x01, 0x02, 0x03}
	ie, n, err := DecodeIE(enc)
	if err != nil {
		t.Fatal(err)
	}
	if n != len(enc) {
		t.Errorf("consumed = %d, want %d", n, len(enc))
	}
	u, ok := ie.(Unknown)
	if !ok {
		t.Fatalf("ie = %T, want Unknown", ie)
	}
	if u.T != 0xa9 || !bytes.Equal(u.Value, []byte{1, 2, 3}) {
		t.Errorf("unknown = %+v", u)
	}
	if got := marshalIE(u); !bytes.Equal(got, enc) {
		t.Errorf("marshal = %x, want %x", got, enc)
	}
}

func TestDecodeIEUnknownTVFatal(t *testing.T) {
	if _, _, err := DecodeIE([]byte{0x05, 0x01, 0x02}); !errors.Is(err, ErrInvalidMessageFormat) {
		t.Errorf("err = %v, want ErrInvalidMessageFormat", err)
	}
}

func TestDecodeIELengthOverrun(t *testing.T) {
	if _, _, err := DecodeIE([]byte{0x89, 0x00, 0x05, 0x01}); !errors.Is(err, ErrIEInvalidLength) {
		t.Errorf("err = %v, want ErrIEInvalidLength", err)
	}
}

func TestIEErrorCarriesType(t *testing.T) {
	_, _, err := DecodeIE([]byte{0x89, 0x00, 0x05, 0x01})
	var ieError *IEError
	if !errors.As(err, &ieError) {
		t.Fatalf("err = %v, want *IEError", err)
	}
	if ieError.IEType != IETFT {
		t.Errorf("type = %d, want %d", ieError.IEType, IETFT)
	}
}

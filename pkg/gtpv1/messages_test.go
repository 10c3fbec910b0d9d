package gtpv1

import (
	"bytes"
	"errors"
	"net"
	"reflect"
	"testing"
)

var versionNotSupportedEnc = []byte{
	0x32, 0x03, 0x00, 0x04, 0x00, 0x00, 0x00, 0x00, 0x49, 0xca, 0x00, 0x00,
}

func TestVersionNotSupportedRoundTrip(t *testing.T) {
	m, err := DecodeVersionNotSupported(versionNotSupportedEnc)
	if err != nil {
		t.Fatal(err)
	}
	h := m.Header
	if h.MsgType != 3 || h.Length != 4 || h.TEID != 0 || !h.HasSequence || h.Sequence != 0x49ca {
		t.Errorf("header = %+v", h)
	}
	if got := m.Marshal(nil); !bytes.Equal(got, versionNotSupportedEnc) {
		t.Errorf("marshal = %x, want %x", got, versionNotSupportedEnc)
	}
}

func TestDecodeControlPlaneDispatch(t *testing.T) {
	m, err := DecodeControlPlane(versionNotSupportedEnc)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := m.(VersionNotSupported); !ok {
		t.Errorf("type = %T, want VersionNotSupported", m)
	}
}

func TestTypedDecoderRejectsWrongMessageType(t *testing.T) {
	if _, err := DecodeEchoRequest(versionNotSupportedEnc); !errors.Is(err, ErrIncorrectMessageType) {
		t.Errorf("err = %v, want ErrIncorrectMessageType", err)
	}
}

func TestEchoRoundTrip(t *testing.T) {
	req := EchoRequest{Header: Header{TEID: 0, Sequence: 100, HasSequence: true}}
	enc := req.Marshal(nil)
	got, err := DecodeEchoRequest(enc)
	if err != nil {
		t.Fatal(err)
	}
	if re := got.Marshal(nil); !bytes.Equal(re, enc) {
		t.Errorf("re-marshal = %x, want %x", re, enc)
	}

	resp := EchoResponse{
		Header:   Header{Sequence: 100, HasSequence: true},
		Recovery: Recovery{RestartCounter: 9},
	}
	enc = resp.Marshal(nil)
	gotResp, err := DecodeEchoResponse(enc)
	if err != nil {
		t.Fatal(err)
	}
	if gotResp.Recovery.RestartCounter != 9 {
		t.Errorf("recovery = %+v", gotResp.Recovery)
	}
}

func TestEchoResponseMissingRecovery(t *testing.T) {
	m := EchoRequest{Header: Header{Sequence: 1, HasSequence: true}}
	enc := m.Marshal(nil)
	enc[1] = MsgEchoResponse
	_, err := DecodeEchoResponse(enc)
	if !errors.Is(err, ErrMandatoryIEMissing) {
		t.Fatalf("err = %v, want ErrMandatoryIEMissing", err)
	}
	var ieError *IEError
	if errors.As(err, &ieError) && ieError.IEType != IERecovery {
		t.Errorf("offending type = %d, want %d", ieError.IEType, IERecovery)
	}
}

func TestMessageLengthInvariant(t *testing.T) {
	m := EchoRequest{Header: Header{Sequence: 7, HasSequence: true}}
	enc := m.Marshal(nil)
	if got := int(enc[2])<<8 | int(enc[3]); got != len(enc)-8 {
		t.Errorf("length field = %d, want %d", got, len(enc)-8)
	}
}

func TestTrailingGarbageRejected(t *testing.T) {
	enc := append(cloneBytes(versionNotSupportedEnc), 0xde, 0xad)
	if _, err := DecodeVersionNotSupported(enc); !errors.Is(err, ErrMessageLength) {
		t.Errorf("err = %v, want ErrMessageLength", err)
	}
}

func TestLengthFieldOverrunRejected(t *testing.T) {
	enc := cloneBytes(versionNotSupportedEnc)
	enc[3] = 0x40
	if _, err := DecodeVersionNotSupported(enc); !errors.Is(err, ErrMessageLength) {
		t.Errorf("err = %v, want ErrMessageLength", err)
	}
}

// Error Indication with a UDP Port extension header, TEID-Data and an
// IPv6 peer address.
func TestErrorIndicationRoundTrip(t *testing.T) {
	m := ErrorIndication{
		Header: Header{
			TEID:        4000,
			Sequence:    2000,
			HasSequence: true,
			ExtHeaders:  []ExtHeader{UDPPort{Port: 6511}},
		},
		TEIDData: TEIDDataI{TEID: 5000},
		PeerAddress: GSNAddress{
			IP: net.IP(bytes.Repeat([]byte{0xff}, 16)),
		},
	}
	enc := m.Marshal(nil)
	got, err := DecodeErrorIndication(enc)
	if err != nil {
		t.Fatal(err)
	}
	if got.TEIDData.TEID != 5000 {
		t.Errorf("teid data = %d, want 5000", got.TEIDData.TEID)
	}
	if !got.PeerAddress.IP.Equal(m.PeerAddress.IP) {
		t.Errorf("peer address = %v", got.PeerAddress.IP)
	}
	if got.Header.TEID != 4000 || got.Header.Sequence != 2000 {
		t.Errorf("header = %+v", got.Header)
	}
	if len(got.Header.ExtHeaders) != 1 || got.Header.ExtHeaders[0].(UDPPort).Port != 6511 {
		t.Errorf("ext headers = %+v", got.Header.ExtHeaders)
	}
	if re := got.Marshal(nil); !bytes.Equal(re, enc) {
		t.Errorf("re-marshal = %x, want %x", re, enc)
	}
	if _, err := DecodeUserPlane(enc); err != nil {
		t.Errorf("user plane dispatch: %v", err)
	}
}

func TestErrorIndicationMissingMandatory(t *testing.T) {
	m := ErrorIndication{
		Header:      Header{TEID: 1, Sequence: 1, HasSequence: true},
		TEIDData:    TEIDDataI{TEID: 2},
		PeerAddress: GSNAddress{IP: net.IPv4(1, 2, 3, 4).To4()},
	}
	enc := m.Marshal(nil)
	// Strip the GSN Address IE (last 7 bytes) and fix the length.
	enc = enc[:len(enc)-7]
	setMsgLength(enc, 0)
	_, err := DecodeErrorIndication(enc)
	if !errors.Is(err, ErrMandatoryIEMissing) {
		t.Fatalf("err = %v, want ErrMandatoryIEMissing", err)
	}
	var ieError *IEError
	if errors.As(err, &ieError) && ieError.IEType != IEGSNAddress {
		t.Errorf("offending type = %d, want %d", ieError.IEType, IEGSNAddress)
	}
}

func TestErrorIndicationRequiresSequenceFlag(t *testing.T) {
	m := ErrorIndication{
		Header:      Header{TEID: 1},
		TEIDData:    TEIDDataI{TEID: 2},
		PeerAddress: GSNAddress{IP: net.IPv4(1, 2, 3, 4).To4()},
	}
	enc := m.Marshal(nil)
	// Clear the S flag and drop the trailer to fake a sender that
	// omitted the mandatory sequence number.
	enc = append(enc[:8:8], enc[12:]...)
	enc[0] &^= flagS
	setMsgLength(enc, 0)
	if _, err := DecodeErrorIndication(enc); !errors.Is(err, ErrMandatoryHeaderFlag) {
		t.Errorf("err = %v, want ErrMandatoryHeaderFlag", err)
	}
}

func TestGPDURoundTrip(t *testing.T) {
	payload := []byte{0x45, 0x00, 0x00, 0x14, 0x01, 0x02, 0x03, 0x04}
	m := GPDU{Header: Header{TEID: 0xdeadbeef}, Payload: payload}
	enc := m.Marshal(nil)
	if len(enc) != 8+len(payload) {
		t.Fatalf("len = %d", len(enc))
	}
	got, err := DecodeGPDU(enc)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got.Payload, payload) {
		t.Errorf("payload = %x", got.Payload)
	}
	if re := got.Marshal(nil); !bytes.Equal(re, enc) {
		t.Errorf("re-marshal = %x", re)
	}
}

func TestEndMarkerRoundTrip(t *testing.T) {
	m := EndMarker{Header: Header{TEID: 42}}
	enc := m.Marshal(nil)
	got, err := DecodeEndMarker(enc)
	if err != nil {
		t.Fatal(err)
	}
	if got.Header.TEID != 42 {
		t.Errorf("teid = %d", got.Header.TEID)
	}
}

func TestSupportedExtensionHeadersNotificationRoundTrip(t *testing.T) {
	m := SupportedExtensionHeadersNotification{
		Header: Header{Sequence: 5, HasSequence: true},
		List:   ExtHeaderTypeList{List: []uint8{ExtUDPPort, ExtPDCPPDUNumber}},
	}
	enc := m.Marshal(nil)
	got, err := DecodeSupportedExtensionHeadersNotification(enc)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got.List.List, m.List.List) {
		t.Errorf("list = %v", got.List.List)
	}
	if re := got.Marshal(nil); !bytes.Equal(re, enc) {
		t.Errorf("re-marshal = %x", re)
	}
}

func newCreatePDPContextRequest() CreatePDPContextRequest {
	imsi := IMSI{IMSI: "901405101327496"}
	apn := APN{Name: "internet.mnc001.mcc901.gprs"}
	selMode := SelectionMode{Value: 0}
	eua := NewEndUserAddressIPv4(nil)
	return CreatePDPContextRequest{
		Header:             Header{TEID: 0, Sequence: 0x1234, HasSequence: true},
		IMSI:               &imsi,
		SelectionMode:      &selMode,
		TEIDData:           TEIDDataI{TEID: 0x01020304},
		NSAPI:              NSAPI{Value: 5},
		EndUserAddress:     &eua,
		APN:                &apn,
		SGSNAddrSignalling: GSNAddress{IP: net.IPv4(10, 0, 0, 1).To4()},
		SGSNAddrUser:       GSNAddress{IP: net.IPv4(10, 0, 0, 2).To4()},
		QoSProfile:         QoSProfile{ARP: 3, QoS: []byte{0x1b, 0x93, 0x1f}},
	}
}

func TestCreatePDPContextRequestRoundTrip(t *testing.T) {
	m := newCreatePDPContextRequest()
	enc := m.Marshal(nil)
	got, err := DecodeCreatePDPContextRequest(enc)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, func() CreatePDPContextRequest {
		want := m
		want.Header.MsgType = MsgCreatePDPContextRequest
		want.Header.Length = uint16(len(enc) - 8)
		return want
	}()) {
		t.Errorf("decode = %+v", got)
	}
	if re := got.Marshal(nil); !bytes.Equal(re, enc) {
		t.Errorf("re-marshal = %x, want %x", re, enc)
	}
}

func TestCreatePDPContextRequestMissingMandatory(t *testing.T) {
	m := newCreatePDPContextRequest()
	full := m.Marshal(nil)

	cases := []struct {
		name   string
		strip  func([]byte) []byte
		ieType uint8
	}{
		{
			"missing QoS",
			func(b []byte) []byte {
				qos := QoSProfile{ARP: 3, QoS: []byte{0x1b, 0x93, 0x1f}}.Marshal(nil)
				idx := bytes.Index(b, qos)
				return append(b[:idx:idx], b[idx+len(qos):]...)
			},
			IEQoSProfile,
		},
		{
			"missing TEID Data",
			func(b []byte) []byte {
				teid := TEIDDataI{TEID: 0x01020304}.Marshal(nil)
				idx := bytes.Index(b, teid)
				return append(b[:idx:idx], b[idx+len(teid):]...)
			},
			IETEIDDataI,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			enc := c.strip(cloneBytes(full))
			setMsgLength(enc, 0)
			_, err := DecodeCreatePDPContextRequest(enc)
			if !errors.Is(err, ErrMandatoryIEMissing) {
				t.Fatalf("err = %v, want ErrMandatoryIEMissing", err)
			}
			var ieError *IEError
			if errors.As(err, &ieError) && ieError.IEType != c.ieType {
				t.Errorf("offending type = %d, want %d", ieError.IEType, c.ieType)
			}
		})
	}
}

func TestCreatePDPContextResponseRoundTrip(t *testing.T) {
	reorder := ReorderingRequired{Required: false}
	recovery := Recovery{RestartCounter: 1}
	teidData := TEIDDataI{TEID: 0x55667788}
	teidCtrl := TEIDControlPlane{TEID: 0x99aabbcc}
	charging := ChargingID{Value: 0x12345678}
	ggsnCtrl := GSNAddress{IP: net.IPv4(192, 168, 0, 1).To4()}
	ggsnUser := GSNAddress{IP: net.IPv4(192, 168, 0, 2).To4()}
	qos := QoSProfile{ARP: 2, QoS: []byte{0x23, 0x62, 0x1f}}
	m := CreatePDPContextResponse{
		Header:          Header{TEID: 0x01020304, Sequence: 0x4321, HasSequence: true},
		Cause:           Cause{Value: CauseRequestAccepted},
		ReorderingReq:   &reorder,
		Recovery:        &recovery,
		TEIDData:        &teidData,
		TEIDControl:     &teidCtrl,
		ChargingID:      &charging,
		GGSNAddrControl: &ggsnCtrl,
		GGSNAddrUser:    &ggsnUser,
		QoSProfile:      &qos,
	}
	enc := m.Marshal(nil)
	got, err := DecodeCreatePDPContextResponse(enc)
	if err != nil {
		t.Fatal(err)
	}
	if got.Cause.Value != CauseRequestAccepted || got.ChargingID.Value != 0x12345678 {
		t.Errorf("decode = %+v", got)
	}
	if got.GGSNAddrControl == nil || got.GGSNAddrUser == nil {
		t.Fatal("GGSN addresses not binned")
	}
	if !got.GGSNAddrUser.IP.Equal(net.IPv4(192, 168, 0, 2)) {
		t.Errorf("user addr = %v", got.GGSNAddrUser.IP)
	}
	if re := got.Marshal(nil); !bytes.Equal(re, enc) {
		t.Errorf("re-marshal = %x, want %x", re, enc)
	}
}

func TestCreatePDPContextResponseMissingCause(t *testing.T) {
	m := CreatePDPContextResponse{
		Header: Header{Sequence: 1, HasSequence: true},
		Cause:  Cause{Value: CauseRequestAccepted},
	}
	enc := m.Marshal(nil)
	// Strip the leading Cause IE.
	enc = append(enc[:12:12], enc[14:]...)
	setMsgLength(enc, 0)
	if _, err := DecodeCreatePDPContextResponse(enc); !errors.Is(err, ErrMandatoryIEMissing) {
		t.Errorf("err = %v, want ErrMandatoryIEMissing", err)
	}
}

func TestUpdatePDPContextRoundTrip(t *testing.T) {
	req := UpdatePDPContextRequest{
		Header:             Header{TEID: 7, Sequence: 2, HasSequence: true},
		TEIDData:           TEIDDataI{TEID: 0x10203040},
		NSAPI:              NSAPI{Value: 6},
		SGSNAddrSignalling: GSNAddress{IP: net.IPv4(172, 16, 0, 1).To4()},
		SGSNAddrUser:       GSNAddress{IP: net.IPv4(172, 16, 0, 2).To4()},
		QoSProfile:         QoSProfile{ARP: 1, QoS: []byte{0x0b, 0x92, 0x1f}},
	}
	enc := req.Marshal(nil)
	got, err := DecodeUpdatePDPContextRequest(enc)
	if err != nil {
		t.Fatal(err)
	}
	if re := got.Marshal(nil); !bytes.Equal(re, enc) {
		t.Errorf("re-marshal mismatch")
	}

	resp := UpdatePDPContextResponse{
		Header: Header{TEID: 8, Sequence: 2, HasSequence: true},
		Cause:  Cause{Value: CauseRequestAccepted},
	}
	enc = resp.Marshal(nil)
	gotResp, err := DecodeUpdatePDPContextResponse(enc)
	if err != nil {
		t.Fatal(err)
	}
	if gotResp.Cause.Value != CauseRequestAccepted {
		t.Errorf("cause = %+v", gotResp.Cause)
	}
}

func TestDeletePDPContextRoundTrip(t *testing.T) {
	teardown := TeardownInd{Teardown: true}
	req := DeletePDPContextRequest{
		Header:      Header{TEID: 9, Sequence: 3, HasSequence: true},
		TeardownInd: &teardown,
		NSAPI:       NSAPI{Value: 5},
	}
	enc := req.Marshal(nil)
	got, err := DecodeDeletePDPContextRequest(enc)
	if err != nil {
		t.Fatal(err)
	}
	if got.TeardownInd == nil || !got.TeardownInd.Teardown {
		t.Errorf("teardown = %+v", got.TeardownInd)
	}
	if re := got.Marshal(nil); !bytes.Equal(re, enc) {
		t.Errorf("re-marshal mismatch")
	}

	resp := DeletePDPContextResponse{
		Header: Header{TEID: 9, Sequence: 3, HasSequence: true},
		Cause:  Cause{Value: CauseNonExistent},
	}
	enc = resp.Marshal(nil)
	gotResp, err := DecodeDeletePDPContextResponse(enc)
	if err != nil {
		t.Fatal(err)
	}
	if gotResp.Cause.Value != CauseNonExistent {
		t.Errorf("cause = %+v", gotResp.Cause)
	}
}

func TestUnknownIEPreservedInMessage(t *testing.T) {
	m := EchoRequest{Header: Header{Sequence: 4, HasSequence: true}}
	enc := m.Marshal(nil)
	unknown := Unknown{T: 0xa9, Value: []byte{0x01, 0x02}}
	enc = unknown.Marshal(enc)
	setMsgLength(enc, 0)
	got, err := DecodeEchoRequest(enc)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Additional) != 1 {
		t.Fatalf("additional = %+v", got.Additional)
	}
	if re := got.Marshal(nil); !bytes.Equal(re, enc) {
		t.Errorf("re-marshal = %x, want %x", re, enc)
	}
}

func TestDecodeControlPlaneRejectsUserPlaneOnly(t *testing.T) {
	m := EndMarker{Header: Header{TEID: 1}}
	enc := m.Marshal(nil)
	if _, err := DecodeControlPlane(enc); !errors.Is(err, ErrMessageNotSupported) {
		t.Errorf("err = %v, want ErrMessageNotSupported", err)
	}
}

func TestZeroLengthBuffer(t *testing.T) {
	if _, err := DecodeControlPlane(nil); !errors.Is(err, ErrHeaderInvalidLength) {
		t.Errorf("err = %v, want ErrHeaderInvalidLength", err)
	}
}

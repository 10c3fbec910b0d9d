package gtpv2

import (
	"bytes"
	"errors"
	"testing"
)

var versionNotSupportedEnc = []byte{0x40, 0x03, 0x00, 0x04, 0x2d, 0xcc, 0x38, 0x00}

func TestVersionNotSupportedRoundTrip(t *testing.T) {
	m, err := DecodeVersionNotSupported(versionNotSupportedEnc)
	if err != nil {
		t.Fatal(err)
	}
	h := m.Header
	if h.MsgType != 3 || h.Length != 4 || h.HasTEID || h.Sequence != 0x2dcc38 {
		t.Errorf("header = %+v", h)
	}
	if got := m.Marshal(nil); !bytes.Equal(got, versionNotSupportedEnc) {
		t.Errorf("marshal = %x, want %x", got, versionNotSupportedEnc)
	}
}

func TestDecodeDispatch(t *testing.T) {
	m, err := Decode(versionNotSupportedEnc)
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

func TestEchoRequestRoundTrip(t *testing.T) {
	m := EchoRequest{
		Header:   Header{Sequence: 0x2dcc38},
		Recovery: Recovery{RestartCounter: 17},
	}
	enc := m.Marshal(nil)
	if enc[0] != 0x40 {
		t.Errorf("flags = %#x, want 0x40", enc[0])
	}
	if got := int(enc[2])<<8 | int(enc[3]); got != len(enc)-4 {
		t.Errorf("length field = %d, want %d", got, len(enc)-4)
	}
	got, err := DecodeEchoRequest(enc)
	if err != nil {
		t.Fatal(err)
	}
	if got.Recovery.RestartCounter != 17 || got.Header.Sequence != 0x2dcc38 {
		t.Errorf("decode = %+v", got)
	}
	if re := got.Marshal(nil); !bytes.Equal(re, enc) {
		t.Errorf("re-marshal = %x, want %x", re, enc)
	}
}

func TestEchoRequestRejectsTEID(t *testing.T) {
	m := EchoRequest{Recovery: Recovery{RestartCounter: 1}}
	enc := m.Marshal(nil)
	// Force the T flag with a TEID spliced in.
	withTEID := append([]byte{enc[0] | 0x08, enc[1], 0, 0}, 0xde, 0xad, 0xbe, 0xef)
	withTEID = append(withTEID, enc[4:]...)
	setMsgLength(withTEID, 0)
	if _, err := DecodeEchoRequest(withTEID); !errors.Is(err, ErrHeaderFlagError) {
		t.Errorf("err = %v, want ErrHeaderFlagError", err)
	}
}

func TestEchoMissingRecovery(t *testing.T) {
	m := EchoRequest{Recovery: Recovery{RestartCounter: 1}}
	enc := m.Marshal(nil)
	enc = enc[:8]
	setMsgLength(enc, 0)
	_, err := DecodeEchoRequest(enc)
	if !errors.Is(err, ErrMandatoryIEMissing) {
		t.Fatalf("err = %v, want ErrMandatoryIEMissing", err)
	}
	var ieError *IEError
	if errors.As(err, &ieError) && ieError.IEType != IERecovery {
		t.Errorf("offending type = %d, want %d", ieError.IEType, IERecovery)
	}
}

func TestEchoResponseRoundTrip(t *testing.T) {
	pe := PrivateExtension{EnterpriseID: 0x1234, Value: []byte{0x01}}
	m := EchoResponse{
		Header:           Header{Sequence: 0x0000ff},
		Recovery:         Recovery{RestartCounter: 3},
		PrivateExtension: &pe,
	}
	enc := m.Marshal(nil)
	got, err := DecodeEchoResponse(enc)
	if err != nil {
		t.Fatal(err)
	}
	if got.PrivateExtension == nil || got.PrivateExtension.EnterpriseID != 0x1234 {
		t.Errorf("private extension = %+v", got.PrivateExtension)
	}
	if re := got.Marshal(nil); !bytes.Equal(re, enc) {
		t.Errorf("re-marshal = %x, want %x", re, enc)
	}
}

func TestEncoderEmitsAscendingOrder(t *testing.T) {
	m := EchoRequest{
		Header:   Header{Sequence: 1},
		Recovery: Recovery{RestartCounter: 1},
		Additional: []IE{
			Unknown{T: 0xf0, Value: []byte{1}},
			Unknown{T: 0x20, Value: []byte{2}},
			Unknown{T: 0x20, Ins: 1, Value: []byte{3}},
		},
	}
	enc := m.Marshal(nil)
	body := enc[8:]
	var lastType, lastIns = uint8(0), uint8(0)
	for len(body) > 0 {
		ie, n, err := DecodeIE(body)
		if err != nil {
			t.Fatal(err)
		}
		if ie.Type() < lastType || (ie.Type() == lastType && ie.Instance() < lastIns) {
			t.Fatalf("IE order violated: %d/%d after %d/%d", ie.Type(), ie.Instance(), lastType, lastIns)
		}
		lastType, lastIns = ie.Type(), ie.Instance()
		body = body[n:]
	}
}

func TestDecoderToleratesAnyOrder(t *testing.T) {
	// Recovery after a higher-typed IE still decodes.
	b := Header{MsgType: MsgEchoRequest, Sequence: 2}.Marshal(nil)
	b = Unknown{T: 0xf0, Value: []byte{1}}.Marshal(b)
	b = Recovery{RestartCounter: 5}.Marshal(b)
	setMsgLength(b, 0)
	got, err := DecodeEchoRequest(b)
	if err != nil {
		t.Fatal(err)
	}
	if got.Recovery.RestartCounter != 5 {
		t.Errorf("recovery = %+v", got.Recovery)
	}
}

func TestTrailingGarbageRejected(t *testing.T) {
	enc := append(cloneBytes(versionNotSupportedEnc), 0x00)
	if _, err := DecodeVersionNotSupported(enc); !errors.Is(err, ErrMessageLength) {
		t.Errorf("err = %v, want ErrMessageLength", err)
	}
}

func TestPiggybackPair(t *testing.T) {
	first := EchoRequest{
		Header:   Header{Sequence: 1, Piggyback: true},
		Recovery: Recovery{RestartCounter: 1},
	}
	second := EchoResponse{
		Header:   Header{Sequence: 2},
		Recovery: Recovery{RestartCounter: 2},
	}
	enc := first.Marshal(nil)
	enc = second.Marshal(enc)

	a, b, err := DecodePiggyback(enc)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := a.(EchoRequest); !ok {
		t.Errorf("first = %T", a)
	}
	resp, ok := b.(EchoResponse)
	if !ok {
		t.Fatalf("second = %T", b)
	}
	if resp.Recovery.RestartCounter != 2 {
		t.Errorf("second recovery = %+v", resp.Recovery)
	}

	// Single-message decode of the same buffer returns the first
	// message; without the P flag the trailing bytes are an error.
	if _, err := Decode(enc); err != nil {
		t.Errorf("Decode with piggyback flag: %v", err)
	}
	noFlag := cloneBytes(enc)
	noFlag[0] &^= flagP
	if _, err := Decode(noFlag); !errors.Is(err, ErrMessageLength) {
		t.Errorf("err = %v, want ErrMessageLength", err)
	}
}

func TestPiggybackRequiresFlag(t *testing.T) {
	first := EchoRequest{Header: Header{Sequence: 1}, Recovery: Recovery{RestartCounter: 1}}
	second := EchoResponse{Header: Header{Sequence: 2}, Recovery: Recovery{RestartCounter: 2}}
	enc := first.Marshal(nil)
	end := len(enc)
	enc = second.Marshal(enc)
	// Only the first message, which lacks the P flag: DecodePiggyback
	// rejects a buffer whose first message is not flagged.
	if _, _, err := DecodePiggyback(enc[:end]); err == nil {
		t.Error("expected error for missing piggyback flag")
	}
}

func TestMessagePriorityRoundTrip(t *testing.T) {
	h := Header{MsgType: MsgEchoRequest, Sequence: 9, MessagePriority: 0x0a, HasMessagePriority: true}
	enc := h.Marshal(nil)
	if enc[0]&flagMP == 0 {
		t.Fatalf("MP flag missing, flags = %#x", enc[0])
	}
	if enc[7] != 0xa0 {
		t.Errorf("priority octet = %#x, want 0xa0", enc[7])
	}
	got, _, err := DecodeHeader(enc)
	if err != nil {
		t.Fatal(err)
	}
	if !got.HasMessagePriority || got.MessagePriority != 0x0a {
		t.Errorf("decode = %+v", got)
	}
}

func TestHeaderWithTEIDRoundTrip(t *testing.T) {
	h := Header{MsgType: 32, TEID: 0x11223344, HasTEID: true, Sequence: 0x0a0b0c}
	enc := h.Marshal(nil)
	if len(enc) != 12 {
		t.Fatalf("len = %d, want 12", len(enc))
	}
	got, n, err := DecodeHeader(enc)
	if err != nil {
		t.Fatal(err)
	}
	if n != 12 || got.TEID != 0x11223344 || got.Sequence != 0x0a0b0c {
		t.Errorf("decode = %+v consumed %d", got, n)
	}
}

func TestDecodeRejectsUnknownMessage(t *testing.T) {
	enc := cloneBytes(versionNotSupportedEnc)
	enc[1] = 200
	if _, err := Decode(enc); !errors.Is(err, ErrMessageNotSupported) {
		t.Errorf("err = %v, want ErrMessageNotSupported", err)
	}
}

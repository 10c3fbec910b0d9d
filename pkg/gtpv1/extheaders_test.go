package gtpv1

import (
	"bytes"
	"errors"
	"reflect"
	"testing"
)

func TestUDPPortExtHeaderRoundTrip(t *testing.T) {
	enc := []byte{0x40, 0x01, 0x10, 0x00}
	e, n, err := decodeExtHeader(enc[0], enc)
	if err != nil {
		t.Fatal(err)
	}
	if n != 4 {
		t.Errorf("consumed = %d, want 4", n)
	}
	port, ok := e.(UDPPort)
	if !ok {
		t.Fatalf("type = %T, want UDPPort", e)
	}
	if port.Port != 4096 {
		t.Errorf("port = %d, want 4096", port.Port)
	}
	if got := e.Marshal(nil); !bytes.Equal(got, enc) {
		t.Errorf("marshal = %x, want %x", got, enc)
	}
}

func TestPDCPPDUNumberExtHeaderRoundTrip(t *testing.T) {
	enc := []byte{0xc0, 0x01, 0x10, 0x00}
	e, _, err := decodeExtHeader(enc[0], enc)
	if err != nil {
		t.Fatal(err)
	}
	if e.(PDCPPDUNumber).Value != 4096 {
		t.Errorf("value = %d, want 4096", e.(PDCPPDUNumber).Value)
	}
	if got := e.Marshal(nil); !bytes.Equal(got, enc) {
		t.Errorf("marshal = %x, want %x", got, enc)
	}
}

func TestSCIExtHeaderRoundTrip(t *testing.T) {
	enc := []byte{0x20, 0x01, 0x09, 0x00}
	e, _, err := decodeExtHeader(enc[0], enc)
	if err != nil {
		t.Fatal(err)
	}
	if e.(ServiceClassIndicator).Value != 9 {
		t.Errorf("sci = %d, want 9", e.(ServiceClassIndicator).Value)
	}
	if got := e.Marshal(nil); !bytes.Equal(got, enc) {
		t.Errorf("marshal = %x, want %x", got, enc)
	}
}

func TestContainerExtHeadersRoundTrip(t *testing.T) {
	cases := []struct {
		enc  []byte
		want ExtHeader
	}{
		{[]byte{0x81, 0x02, 0x00, 0x01, 0x02, 0x03, 0x04, 0x05}, RANContainer{Length: 2, Container: []byte{0, 1, 2, 3, 4, 5}}},
		{[]byte{0x83, 0x02, 0x00, 0x01, 0x02, 0x03, 0x04, 0x05}, XwRANContainer{Length: 2, Container: []byte{0, 1, 2, 3, 4, 5}}},
		{[]byte{0x84, 0x02, 0x00, 0x01, 0x02, 0x03, 0x04, 0x05}, NRRANContainer{Length: 2, Container: []byte{0, 1, 2, 3, 4, 5}}},
	}
	for _, c := range cases {
		e, _, err := decodeExtHeader(c.enc[0], c.enc)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(e, c.want) {
			t.Errorf("decode %x = %+v, want %+v", c.enc, e, c.want)
		}
		if got := e.Marshal(nil); !bytes.Equal(got, c.enc) {
			t.Errorf("marshal = %x, want %x", got, c.enc)
		}
	}
}

func TestSuspendExtHeaders(t *testing.T) {
	for _, enc := range [][]byte{{0xc1, 0x01, 0xff, 0xff}, {0xc2, 0x01, 0xff, 0xff}} {
		e, _, err := decodeExtHeader(enc[0], enc)
		if err != nil {
			t.Fatal(err)
		}
		if got := e.Marshal(nil); !bytes.Equal(got, enc) {
			t.Errorf("marshal = %x, want %x", got, enc)
		}
	}
}

func TestUnknownExtHeaderPreserved(t *testing.T) {
	enc := []byte{0xfa, 0x01, 0xff, 0xff}
	e, _, err := decodeExtHeader(enc[0], enc)
	if err != nil {
		t.Fatal(err)
	}
	want := UnknownExtHeader{Type: 0xfa, Length: 1, Value: []byte{0xff, 0xff}}
	if !reflect.DeepEqual(e, want) {
		t.Errorf("decode = %+v, want %+v", e, want)
	}
	if got := e.Marshal(nil); !bytes.Equal(got, enc) {
		t.Errorf("marshal = %x, want %x", got, enc)
	}
}

func TestZeroLengthExtHeaderRejected(t *testing.T) {
	if _, _, err := decodeExtHeader(0x40, []byte{0x40, 0x00, 0x10, 0x00}); !errors.Is(err, ErrExtHeaderInvalidLength) {
		t.Errorf("err = %v, want ErrExtHeaderInvalidLength", err)
	}
}

func TestExtHeaderChainTwoUDPPorts(t *testing.T) {
	chain := []ExtHeader{UDPPort{Port: 6511}, UDPPort{Port: 2152}}
	enc := marshalExtHeaderChain(nil, chain)
	// The next-extension-type octet between the two records is the UDP
	// Port type; the chain ends with the zero terminator.
	want := []byte{0x40, 0x01, 0x19, 0x6f, 0x40, 0x01, 0x08, 0x68, 0x00}
	if !bytes.Equal(enc, want) {
		t.Fatalf("chain = %x, want %x", enc, want)
	}
	decoded, n, err := decodeExtHeaderChain(enc)
	if err != nil {
		t.Fatal(err)
	}
	if n != len(enc) {
		t.Errorf("consumed = %d, want %d", n, len(enc))
	}
	if !reflect.DeepEqual(decoded, chain) {
		t.Errorf("decode = %+v, want %+v", decoded, chain)
	}
}

func TestExtHeaderChainTruncated(t *testing.T) {
	if _, _, err := decodeExtHeaderChain([]byte{0x40, 0x01, 0x19}); !errors.Is(err, ErrExtHeaderInvalidLength) {
		t.Errorf("err = %v, want ErrExtHeaderInvalidLength", err)
	}
}

package gtpv1

import "encoding/binary"

// Cause values commonly used in responses (TS 29.060 §7.7.1).
const (
	CauseRequestAccepted      uint8 = 128
	CauseNonExistent          uint8 = 192
	CauseInvalidMessageFormat uint8 = 193
	CauseIMSINotKnown         uint8 = 194
	CauseMSGPRSDetached       uint8 = 195
	CauseNoResourcesAvailable uint8 = 199
	CauseVersionNotSupported  uint8 = 202
)

// Cause IE (type 1, TV).
type Cause struct {
	Value uint8
}

func DecodeCause(b []byte) (Cause, error) {
	if len(b) < 2 {
		return Cause{}, ieErr(ErrIEInvalidLength, IECause)
	}
	return Cause{Value: b[1]}, nil
}

func (i Cause) Marshal(b []byte) []byte { return append(b, IECause, i.Value) }
func (i Cause) Type() uint8             { return IECause }
func (i Cause) Len() int                { return 2 }
func (i Cause) IsEmpty() bool           { return false }

// Recovery IE (type 14, TV). Carries the restart counter of the sending
// node.
type Recovery struct {
	RestartCounter uint8
}

func DecodeRecovery(b []byte) (Recovery, error) {
	if len(b) < 2 {
		return Recovery{}, ieErr(ErrIEInvalidLength, IERecovery)
	}
	return Recovery{RestartCounter: b[1]}, nil
}

func (i Recovery) Marshal(b []byte) []byte { return append(b, IERecovery, i.RestartCounter) }
func (i Recovery) Type() uint8             { return IERecovery }
func (i Recovery) Len() int                { return 2 }
func (i Recovery) IsEmpty() bool           { return false }

// ReorderingRequired IE (type 8, TV). Only the low bit is meaningful;
// the spare bits are emitted as ones per TS 29.060 §7.7.6.
type ReorderingRequired struct {
	Required bool
}

func DecodeReorderingRequired(b []byte) (ReorderingRequired, error) {
	if len(b) < 2 {
		return ReorderingRequired{}, ieErr(ErrIEInvalidLength, IEReorderingRequired)
	}
	return ReorderingRequired{Required: b[1]&0x01 == 0x01}, nil
}

func (i ReorderingRequired) Marshal(b []byte) []byte {
	v := uint8(0xfe)
	if i.Required {
		v = 0xff
	}
	return append(b, IEReorderingRequired, v)
}

func (i ReorderingRequired) Type() uint8   { return IEReorderingRequired }
func (i ReorderingRequired) Len() int      { return 2 }
func (i ReorderingRequired) IsEmpty() bool { return false }

// SelectionMode IE (type 15, TV). Two-bit value, upper six bits emitted
// as ones per TS 29.060 §7.7.12.
type SelectionMode struct {
	Value uint8
}

func DecodeSelectionMode(b []byte) (SelectionMode, error) {
	if len(b) < 2 {
		return SelectionMode{}, ieErr(ErrIEInvalidLength, IESelectionMode)
	}
	return SelectionMode{Value: b[1] & 0x03}, nil
}

func (i SelectionMode) Marshal(b []byte) []byte {
	return append(b, IESelectionMode, 0xfc|i.Value&0x03)
}

func (i SelectionMode) Type() uint8   { return IESelectionMode }
func (i SelectionMode) Len() int      { return 2 }
func (i SelectionMode) IsEmpty() bool { return false }

// TEIDDataI IE (type 16, TV). Tunnel endpoint for user traffic.
type TEIDDataI struct {
	TEID uint32
}

func DecodeTEIDDataI(b []byte) (TEIDDataI, error) {
	if len(b) < 5 {
		return TEIDDataI{}, ieErr(ErrIEInvalidLength, IETEIDDataI)
	}
	return TEIDDataI{TEID: binary.BigEndian.Uint32(b[1:5])}, nil
}

func (i TEIDDataI) Marshal(b []byte) []byte {
	b = append(b, IETEIDDataI)
	return binary.BigEndian.AppendUint32(b, i.TEID)
}

func (i TEIDDataI) Type() uint8   { return IETEIDDataI }
func (i TEIDDataI) Len() int      { return 5 }
func (i TEIDDataI) IsEmpty() bool { return false }

// TEIDControlPlane IE (type 17, TV). Tunnel endpoint for signalling.
type TEIDControlPlane struct {
	TEID uint32
}

func DecodeTEIDControlPlane(b []byte) (TEIDControlPlane, error) {
	if len(b) < 5 {
		return TEIDControlPlane{}, ieErr(ErrIEInvalidLength, IETEIDControlPlane)
	}
	return TEIDControlPlane{TEID: binary.BigEndian.Uint32(b[1:5])}, nil
}

func (i TEIDControlPlane) Marshal(b []byte) []byte {
	b = append(b, IETEIDControlPlane)
	return binary.BigEndian.AppendUint32(b, i.TEID)
}

func (i TEIDControlPlane) Type() uint8   { return IETEIDControlPlane }
func (i TEIDControlPlane) Len() int      { return 5 }
func (i TEIDControlPlane) IsEmpty() bool { return false }

// TeardownInd IE (type 19, TV). Only 0xff (teardown) and 0xfe are legal
// on the wire; anything else is rejected.
type TeardownInd struct {
	Teardown bool
}

func DecodeTeardownInd(b []byte) (TeardownInd, error) {
	if len(b) < 2 {
		return TeardownInd{}, ieErr(ErrIEInvalidLength, IETeardownInd)
	}
	switch b[1] {
	case 0xff:
		return TeardownInd{Teardown: true}, nil
	case 0xfe:
		return TeardownInd{Teardown: false}, nil
	}
	return TeardownInd{}, ieErr(ErrIEIncorrect, IETeardownInd)
}

func (i TeardownInd) Marshal(b []byte) []byte {
	v := uint8(0xfe)
	if i.Teardown {
		v = 0xff
	}
	return append(b, IETeardownInd, v)
}

func (i TeardownInd) Type() uint8   { return IETeardownInd }
func (i TeardownInd) Len() int      { return 2 }
func (i TeardownInd) IsEmpty() bool { return false }

// NSAPI IE (type 20, TV). Four-bit value.
type NSAPI struct {
	Value uint8
}

func DecodeNSAPI(b []byte) (NSAPI, error) {
	if len(b) < 2 {
		return NSAPI{}, ieErr(ErrIEInvalidLength, IENSAPI)
	}
	return NSAPI{Value: b[1] & 0x0f}, nil
}

func (i NSAPI) Marshal(b []byte) []byte { return append(b, IENSAPI, i.Value&0x0f) }
func (i NSAPI) Type() uint8             { return IENSAPI }
func (i NSAPI) Len() int                { return 2 }
func (i NSAPI) IsEmpty() bool           { return false }

// RAI IE (type 3, TV). Routeing Area Identity: PLMN + LAC + RAC.
type RAI struct {
	MCC uint16
	MNC uint16
	LAC uint16
	RAC uint8
}

func DecodeRAI(b []byte) (RAI, error) {
	if len(b) < 7 {
		return RAI{}, ieErr(ErrIEInvalidLength, IERAI)
	}
	mcc, mnc := mccMncDecode(b[1:4])
	return RAI{
		MCC: mcc,
		MNC: mnc,
		LAC: binary.BigEndian.Uint16(b[4:6]),
		RAC: b[6],
	}, nil
}

func (i RAI) Marshal(b []byte) []byte {
	b = append(b, IERAI)
	b = append(b, mccMncEncode(i.MCC, i.MNC)...)
	b = binary.BigEndian.AppendUint16(b, i.LAC)
	return append(b, i.RAC)
}

func (i RAI) Type() uint8   { return IERAI }
func (i RAI) Len() int      { return 7 }
func (i RAI) IsEmpty() bool { return false }

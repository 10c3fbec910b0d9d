package gtpv1

import "encoding/binary"

// TraceReference IE (type 27, TV).
type TraceReference struct {
	Value uint16
}

func DecodeTraceReference(b []byte) (TraceReference, error) {
	if len(b) < 3 {
		return TraceReference{}, ieErr(ErrIEInvalidLength, IETraceReference)
	}
	return TraceReference{Value: binary.BigEndian.Uint16(b[1:3])}, nil
}

func (i TraceReference) Marshal(b []byte) []byte {
	b = append(b, IETraceReference)
	return binary.BigEndian.AppendUint16(b, i.Value)
}

func (i TraceReference) Type() uint8   { return IETraceReference }
func (i TraceReference) Len() int      { return 3 }
func (i TraceReference) IsEmpty() bool { return false }

// TraceType IE (type 28, TV).
type TraceType struct {
	Value uint16
}

func DecodeTraceType(b []byte) (TraceType, error) {
	if len(b) < 3 {
		return TraceType{}, ieErr(ErrIEInvalidLength, IETraceType)
	}
	return TraceType{Value: binary.BigEndian.Uint16(b[1:3])}, nil
}

func (i TraceType) Marshal(b []byte) []byte {
	b = append(b, IETraceType)
	return binary.BigEndian.AppendUint16(b, i.Value)
}

func (i TraceType) Type() uint8   { return IETraceType }
func (i TraceType) Len() int      { return 3 }
func (i TraceType) IsEmpty() bool { return false }

// TriggerID IE (type 142, TLV). Identifies the entity that initiated a
// trace.
type TriggerID struct {
	TriggerID []byte
}

func DecodeTriggerID(b []byte) (TriggerID, error) {
	if len(b) < 3 {
		return TriggerID{}, ieErr(ErrIEInvalidLength, IETriggerID)
	}
	length := int(binary.BigEndian.Uint16(b[1:3]))
	if len(b) < length+3 {
		return TriggerID{}, ieErr(ErrIEInvalidLength, IETriggerID)
	}
	return TriggerID{TriggerID: cloneBytes(b[3 : 3+length])}, nil
}

func (i TriggerID) Marshal(b []byte) []byte {
	start := len(b)
	b = append(b, IETriggerID, 0, 0)
	b = append(b, i.TriggerID...)
	setTLVLength(b, start)
	return b
}

func (i TriggerID) Type() uint8   { return IETriggerID }
func (i TriggerID) Len() int      { return len(i.TriggerID) + 3 }
func (i TriggerID) IsEmpty() bool { return len(i.TriggerID) == 0 }

// OMCID IE (type 143, TLV).
type OMCID struct {
	OMCID []byte
}

func DecodeOMCID(b []byte) (OMCID, error) {
	if len(b) < 3 {
		return OMCID{}, ieErr(ErrIEInvalidLength, IEOMCID)
	}
	length := int(binary.BigEndian.Uint16(b[1:3]))
	if len(b) < length+3 {
		return OMCID{}, ieErr(ErrIEInvalidLength, IEOMCID)
	}
	return OMCID{OMCID: cloneBytes(b[3 : 3+length])}, nil
}

func (i OMCID) Marshal(b []byte) []byte {
	start := len(b)
	b = append(b, IEOMCID, 0, 0)
	b = append(b, i.OMCID...)
	setTLVLength(b, start)
	return b
}

func (i OMCID) Type() uint8   { return IEOMCID }
func (i OMCID) Len() int      { return len(i.OMCID) + 3 }
func (i OMCID) IsEmpty() bool { return len(i.OMCID) == 0 }

// AdditionalTraceInfo IE (type 162, TLV). Opaque per TS 32.422.
type AdditionalTraceInfo struct {
	Value []byte
}

func DecodeAdditionalTraceInfo(b []byte) (AdditionalTraceInfo, error) {
	if len(b) < 3 {
		return AdditionalTraceInfo{}, ieErr(ErrIEInvalidLength, IEAdditionalTraceInfo)
	}
	length := int(binary.BigEndian.Uint16(b[1:3]))
	if len(b) < length+3 {
		return AdditionalTraceInfo{}, ieErr(ErrIEInvalidLength, IEAdditionalTraceInfo)
	}
	return AdditionalTraceInfo{Value: cloneBytes(b[3 : 3+length])}, nil
}

func (i AdditionalTraceInfo) Marshal(b []byte) []byte {
	start := len(b)
	b = append(b, IEAdditionalTraceInfo, 0, 0)
	b = append(b, i.Value...)
	setTLVLength(b, start)
	return b
}

func (i AdditionalTraceInfo) Type() uint8   { return IEAdditionalTraceInfo }
func (i AdditionalTraceInfo) Len() int      { return len(i.Value) + 3 }
func (i AdditionalTraceInfo) IsEmpty() bool { return len(i.Value) == 0 }

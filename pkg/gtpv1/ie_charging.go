package gtpv1

import "encoding/binary"

// Charging Characteristics IE (type 26, TV). Profile bits per
// TS 32.251 Annex A: normal 0b1000, prepaid 0b0100, flat rate 0b0010,
// hot billing 0b0001.
type ChargingCharacteristics struct {
	Value uint16
}

func DecodeChargingCharacteristics(b []byte) (ChargingCharacteristics, error) {
	if len(b) < 3 {
		return ChargingCharacteristics{}, ieErr(ErrIEInvalidLength, IEChargingCharacteristics)
	}
	return ChargingCharacteristics{Value: binary.BigEndian.Uint16(b[1:3])}, nil
}

func (i ChargingCharacteristics) Marshal(b []byte) []byte {
	b = append(b, IEChargingCharacteristics)
	return binary.BigEndian.AppendUint16(b, i.Value)
}

func (i ChargingCharacteristics) Type() uint8   { return IEChargingCharacteristics }
func (i ChargingCharacteristics) Len() int      { return 3 }
func (i ChargingCharacteristics) IsEmpty() bool { return false }

// ChargingID IE (type 127, TV). Zero is a reserved value and rejected.
type ChargingID struct {
	Value uint32
}

func DecodeChargingID(b []byte) (ChargingID, error) {
	if len(b) < 5 {
		return ChargingID{}, ieErr(ErrIEInvalidLength, IEChargingID)
	}
	v := binary.BigEndian.Uint32(b[1:5])
	if v == 0 {
		return ChargingID{}, ieErr(ErrIEIncorrect, IEChargingID)
	}
	return ChargingID{Value: v}, nil
}

func (i ChargingID) Marshal(b []byte) []byte {
	b = append(b, IEChargingID)
	return binary.BigEndian.AppendUint32(b, i.Value)
}

func (i ChargingID) Type() uint8   { return IEChargingID }
func (i ChargingID) Len() int      { return 5 }
func (i ChargingID) IsEmpty() bool { return i.Value == 0 }

// CAMELCIC IE (type 155, TLV). Opaque CAMEL charging information
// container.
type CAMELCIC struct {
	Container []byte
}

func DecodeCAMELCIC(b []byte) (CAMELCIC, error) {
	if len(b) < 3 {
		return CAMELCIC{}, ieErr(ErrIEInvalidLength, IECAMELCIC)
	}
	length := int(binary.BigEndian.Uint16(b[1:3]))
	if len(b) < length+3 {
		return CAMELCIC{}, ieErr(ErrIEInvalidLength, IECAMELCIC)
	}
	return CAMELCIC{Container: cloneBytes(b[3 : 3+length])}, nil
}

func (i CAMELCIC) Marshal(b []byte) []byte {
	start := len(b)
	b = append(b, IECAMELCIC, 0, 0)
	b = append(b, i.Container...)
	setTLVLength(b, start)
	return b
}

func (i CAMELCIC) Type() uint8   { return IECAMELCIC }
func (i CAMELCIC) Len() int      { return len(i.Container) + 3 }
func (i CAMELCIC) IsEmpty() bool { return len(i.Container) == 0 }

// CorrelationID IE (type 183, TLV).
type CorrelationID struct {
	Value uint8
}

func DecodeCorrelationID(b []byte) (CorrelationID, error) {
	if len(b) < 4 {
		return CorrelationID{}, ieErr(ErrIEInvalidLength, IECorrelationID)
	}
	return CorrelationID{Value: b[3]}, nil
}

func (i CorrelationID) Marshal(b []byte) []byte {
	start := len(b)
	b = append(b, IECorrelationID, 0, 0, i.Value)
	setTLVLength(b, start)
	return b
}

func (i CorrelationID) Type() uint8   { return IECorrelationID }
func (i CorrelationID) Len() int      { return 4 }
func (i CorrelationID) IsEmpty() bool { return false }

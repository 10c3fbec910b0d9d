package gtpv1

import "encoding/binary"

// ExtHeaderTypeList IE (type 141). Single-byte length holding the raw
// byte count of the list, per TS 29.281 §8.1. The control-plane variant
// of TS 29.060 historically counted in groups of five; this codec uses
// the raw byte count in both dialects.
type ExtHeaderTypeList struct {
	List []uint8
}

func DecodeExtHeaderTypeList(b []byte) (ExtHeaderTypeList, error) {
	if len(b) < 2 {
		return ExtHeaderTypeList{}, ieErr(ErrIEInvalidLength, IEExtHeaderTypeList)
	}
	length := int(b[1])
	if length == 0 {
		return ExtHeaderTypeList{}, ieErr(ErrIEIncorrect, IEExtHeaderTypeList)
	}
	if len(b) < length+2 {
		return ExtHeaderTypeList{}, ieErr(ErrIEInvalidLength, IEExtHeaderTypeList)
	}
	return ExtHeaderTypeList{List: cloneBytes(b[2 : 2+length])}, nil
}

func (i ExtHeaderTypeList) Marshal(b []byte) []byte {
	b = append(b, IEExtHeaderTypeList, uint8(len(i.List)))
	return append(b, i.List...)
}

func (i ExtHeaderTypeList) Type() uint8   { return IEExtHeaderTypeList }
func (i ExtHeaderTypeList) Len() int      { return len(i.List) + 2 }
func (i ExtHeaderTypeList) IsEmpty() bool { return len(i.List) == 0 }

// PrivateExtension IE (type 255, TLV). Vendor extension identified by
// an extension identifier followed by opaque bytes.
type PrivateExtension struct {
	ExtensionID    uint16
	ExtensionValue []byte
}

func DecodePrivateExtension(b []byte) (PrivateExtension, error) {
	if len(b) < 5 {
		return PrivateExtension{}, ieErr(ErrIEInvalidLength, IEPrivateExtension)
	}
	length := int(binary.BigEndian.Uint16(b[1:3]))
	if length < 2 || len(b) < length+3 {
		return PrivateExtension{}, ieErr(ErrIEInvalidLength, IEPrivateExtension)
	}
	return PrivateExtension{
		ExtensionID:    binary.BigEndian.Uint16(b[3:5]),
		ExtensionValue: cloneBytes(b[5 : 3+length]),
	}, nil
}

func (i PrivateExtension) Marshal(b []byte) []byte {
	start := len(b)
	b = append(b, IEPrivateExtension, 0, 0)
	b = binary.BigEndian.AppendUint16(b, i.ExtensionID)
	b = append(b, i.ExtensionValue...)
	setTLVLength(b, start)
	return b
}

func (i PrivateExtension) Type() uint8   { return IEPrivateExtension }
func (i PrivateExtension) Len() int      { return len(i.ExtensionValue) + 5 }
func (i PrivateExtension) IsEmpty() bool { return false }

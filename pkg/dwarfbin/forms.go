package dwarfbin

import "fmt"

// ValueKind discriminates the variant carried by an AttrValue.
type ValueKind int

const (
	ValueAddress ValueKind = iota
	ValueUnsigned
	ValueSigned
	ValueString
	ValueBlock
	ValueReference
)

// AttrValue is a decoded attribute value, tagged by the form's semantic
// variant (spec.md §3 "Attribute value").
type AttrValue struct {
	Kind   ValueKind
	Uint   uint64
	Int    int64
	Str    string
	Block  []byte
	Ref    int // byte offset into .debug_info
}

// skipForm advances cur past one attribute value of the given form without
// decoding it, per the byte-width table in spec.md §4.A. unitRef and str
// are only needed by decodeForm, not by skipping.
func skipForm(cur *Cursor, form Form) error {
	switch form {
	case FormAddr:
		cur.Pos += cur.AddrSize
	case FormRefAddr:
		cur.Pos += cur.AddrSize
	case FormData1, FormRef1, FormFlag:
		cur.Pos += 1
	case FormData2, FormRef2:
		cur.Pos += 2
	case FormData4, FormRef4, FormStrp:
		cur.Pos += 4
	case FormData8, FormRef8:
		cur.Pos += 8
	case FormUdata, FormSdata, FormRefUdata:
		if _, err := cur.ReadULEB128(); err != nil {
			return err
		}
	case FormString:
		n := stringLen(cur.Data, cur.Pos)
		cur.Pos += n + 1
	case FormBlock:
		n, err := cur.ReadULEB128()
		if err != nil {
			return err
		}
		cur.Pos += int(n)
	case FormBlock1:
		n, err := cur.ReadU8()
		if err != nil {
			return err
		}
		cur.Pos += int(n)
	case FormBlock2:
		n, err := cur.ReadU16()
		if err != nil {
			return err
		}
		cur.Pos += int(n)
	case FormBlock4:
		n, err := cur.ReadU32()
		if err != nil {
			return err
		}
		cur.Pos += int(n)
	default:
		return fmt.Errorf("dwarfbin: unknown form 0x%x", form)
	}
	if cur.Pos > cur.End {
		return fmt.Errorf("%w: form 0x%x ran past end", ErrTruncated, form)
	}
	return nil
}

// decodeForm reads one attribute value of the given form starting at pos
// (absolute offset into infoData) without disturbing any unrelated cursor.
// unitRefBase is added to reference-form raw offsets per spec.md §3
// ("reference ... computed as unit_ref_base + raw"); for DWARF 2
// ref1/ref2/ref4/ref8/ref_udata that base is the compilation unit's start
// offset in .debug_info, while ref_addr is already absolute.
func decodeForm(infoData, strData []byte, pos int, form Form, addrSize, unitRefBase int) (AttrValue, int, error) {
	cur := &Cursor{Data: infoData, Pos: pos, End: len(infoData), AddrSize: addrSize}
	switch form {
	case FormAddr:
		v, err := cur.ReadAddress()
		return AttrValue{Kind: ValueAddress, Uint: v}, cur.Pos, err
	case FormData1:
		v, err := cur.ReadU8()
		return AttrValue{Kind: ValueUnsigned, Uint: uint64(v)}, cur.Pos, err
	case FormData2:
		v, err := cur.ReadU16()
		return AttrValue{Kind: ValueUnsigned, Uint: uint64(v)}, cur.Pos, err
	case FormData4:
		v, err := cur.ReadU32()
		return AttrValue{Kind: ValueUnsigned, Uint: uint64(v)}, cur.Pos, err
	case FormData8:
		// 64-bit data on a 32-bit address space is out of scope; record a
		// zero value rather than guessing, per spec.md §7's
		// "64-bit-unsupported" taxonomy entry.
		cur.Pos += 8
		if cur.Pos > cur.End {
			return AttrValue{}, cur.Pos, fmt.Errorf("%w: data8", ErrTruncated)
		}
		return AttrValue{Kind: ValueUnsigned, Uint: 0}, cur.Pos, nil
	case FormSdata:
		v, err := cur.ReadSLEB128()
		return AttrValue{Kind: ValueSigned, Int: v}, cur.Pos, err
	case FormUdata:
		v, err := cur.ReadULEB128()
		return AttrValue{Kind: ValueUnsigned, Uint: v}, cur.Pos, err
	case FormFlag:
		v, err := cur.ReadU8()
		return AttrValue{Kind: ValueUnsigned, Uint: uint64(v)}, cur.Pos, err
	case FormString:
		s, err := cur.ReadString()
		return AttrValue{Kind: ValueString, Str: s}, cur.Pos, err
	case FormStrp:
		off, err := cur.ReadU32()
		if err != nil {
			return AttrValue{}, cur.Pos, err
		}
		if int(off) >= len(strData) {
			return AttrValue{}, cur.Pos, fmt.Errorf("dwarfbin: strp offset %d out of range", off)
		}
		s := stringAt(strData, int(off))
		return AttrValue{Kind: ValueString, Str: s}, cur.Pos, nil
	case FormBlock, FormBlock1, FormBlock2, FormBlock4:
		var n uint64
		var err error
		switch form {
		case FormBlock:
			n, err = cur.ReadULEB128()
		case FormBlock1:
			var b uint8
			b, err = cur.ReadU8()
			n = uint64(b)
		case FormBlock2:
			var b uint16
			b, err = cur.ReadU16()
			n = uint64(b)
		case FormBlock4:
			var b uint32
			b, err = cur.ReadU32()
			n = uint64(b)
		}
		if err != nil {
			return AttrValue{}, cur.Pos, err
		}
		if cur.Pos+int(n) > cur.End {
			return AttrValue{}, cur.Pos, fmt.Errorf("%w: block of %d bytes", ErrTruncated, n)
		}
		block := infoData[cur.Pos : cur.Pos+int(n)]
		cur.Pos += int(n)
		return AttrValue{Kind: ValueBlock, Block: block}, cur.Pos, nil
	case FormRefAddr:
		off, err := cur.ReadU32()
		return AttrValue{Kind: ValueReference, Ref: int(off)}, cur.Pos, err
	case FormRef1:
		v, err := cur.ReadU8()
		return AttrValue{Kind: ValueReference, Ref: unitRefBase + int(v)}, cur.Pos, err
	case FormRef2:
		v, err := cur.ReadU16()
		return AttrValue{Kind: ValueReference, Ref: unitRefBase + int(v)}, cur.Pos, err
	case FormRef4:
		v, err := cur.ReadU32()
		return AttrValue{Kind: ValueReference, Ref: unitRefBase + int(v)}, cur.Pos, err
	case FormRef8:
		cur.Pos += 8
		if cur.Pos > cur.End {
			return AttrValue{}, cur.Pos, fmt.Errorf("%w: ref8", ErrTruncated)
		}
		return AttrValue{Kind: ValueReference, Ref: 0}, cur.Pos, nil
	case FormRefUdata:
		v, err := cur.ReadULEB128()
		return AttrValue{Kind: ValueReference, Ref: unitRefBase + int(v)}, cur.Pos, err
	default:
		return AttrValue{}, pos, fmt.Errorf("dwarfbin: unknown form 0x%x", form)
	}
}

func stringAt(data []byte, off int) string {
	n := stringLen(data, off)
	return string(data[off : off+n])
}

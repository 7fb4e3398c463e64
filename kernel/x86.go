package kernel

// X86State is the mutable bit-history a x86 codec carries between calls
// (spec.md §3). It lives inside the X86Kernel itself — one kernel per
// codec, never shared — and is mutated only by X86Kernel.Transform.
type X86State struct {
	PrevMask uint32
	PrevPos  int64
}

// NewX86State returns the state a freshly constructed x86 codec starts
// from: prev_mask=0, prev_pos=-1 (spec.md §3).
func NewX86State() *X86State {
	return &X86State{PrevMask: 0, PrevPos: -1}
}

// maskToAllowedStatus and maskToBitNumber are the false-positive lookup
// tables the reference x86 BCJ filter uses to decide, from the 3-bit
// register history in prev_mask, whether a second candidate so close to the
// last accepted one is still worth rewriting (spec.md §4.2). The values
// must match the reference bit-for-bit; they are not tunable.
var maskToAllowedStatus = [8]bool{true, true, true, false, true, false, false, false}
var maskToBitNumber = [8]uint32{0, 1, 2, 2, 3, 3, 3, 3}

func test86MSByte(b byte) bool {
	return b == 0x00 || b == 0xFF
}

// X86Kernel is the stateful, 5-byte-window BCJ filter for x86 CALL
// (0xE8) and near JMP (0xE9) rel32 operands (spec.md §4.2).
type X86Kernel struct {
	State *X86State
}

// NewX86Kernel creates a kernel with fresh state.
func NewX86Kernel() *X86Kernel {
	return &X86Kernel{State: NewX86State()}
}

func (k *X86Kernel) Window() int { return 5 }

func (k *X86Kernel) Transform(buf []byte, ip uint64, dir Direction) int {
	n := len(buf)
	if n < k.Window() {
		return 0
	}

	limit := n - 5
	pos := 0
	st := k.State

	for pos <= limit {
		if buf[pos]&0xFE != 0xE8 {
			pos++
			continue
		}

		p := int64(ip) + int64(pos)
		if p-st.PrevPos > 5 {
			st.PrevMask = 0
		} else {
			st.PrevMask = (st.PrevMask << uint(p-st.PrevPos)) & 0x7
		}

		top := buf[pos+4]
		accept := test86MSByte(top) &&
			(st.PrevMask == 0 || maskToAllowedStatus[(st.PrevMask>>1)&0x7])
		if !accept {
			// Reject: record that an unconverted E8/E9 candidate sat here
			// so a nearby future candidate gets the stricter scrutiny too.
			st.PrevMask |= 1
			pos++
			continue
		}

		src := uint32(top)<<24 | uint32(buf[pos+3])<<16 | uint32(buf[pos+2])<<8 | uint32(buf[pos+1])
		base := uint32(p) + 5

		var dest uint32
		for {
			if dir == Encode {
				dest = src + base
			} else {
				dest = src - base
			}

			if st.PrevMask == 0 {
				break
			}

			idx := maskToBitNumber[st.PrevMask>>1]
			b := byte(dest >> (24 - idx*8))
			if !test86MSByte(b) {
				break
			}
			src = dest ^ ((uint32(1) << (32 - idx*8)) - 1)
		}

		buf[pos+4] = byte(^(((dest >> 24) & 1) - 1))
		buf[pos+3] = byte(dest >> 16)
		buf[pos+2] = byte(dest >> 8)
		buf[pos+1] = byte(dest)

		st.PrevPos = p + 5
		st.PrevMask = 0
		pos += 5
	}

	return pos
}

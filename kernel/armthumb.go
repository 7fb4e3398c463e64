package kernel

// ARMTKernel rewrites the 22-bit displacement of a Thumb BL/BLX long-branch
// halfword pair between PC-relative and absolute form (spec.md §4.4). The
// pair is two little-endian 16-bit halfwords; the first has top 5 bits
// 11110, the second 11111 (BL). A BLX second halfword (11101) is not
// matched and passes through unchanged.
type ARMTKernel struct{}

func NewARMTKernel() *ARMTKernel { return &ARMTKernel{} }

func (k *ARMTKernel) Window() int { return 4 }

func (k *ARMTKernel) Transform(buf []byte, ip uint64, dir Direction) int {
	n := len(buf)
	if n < k.Window() {
		return 0
	}

	limit := n - 4
	pos := 0

	for pos <= limit {
		h0 := uint16(buf[pos]) | uint16(buf[pos+1])<<8
		h1 := uint16(buf[pos+2]) | uint16(buf[pos+3])<<8

		if h0&0xF800 != 0xF000 || h1&0xF800 != 0xF800 {
			pos += 2
			continue
		}

		imm11Hi := uint32(h0 & 0x07FF)
		imm11Lo := uint32(h1 & 0x07FF)

		raw := (imm11Hi << 11) | imm11Lo
		// Sign-extend the 22-bit field before scaling.
		if raw&0x200000 != 0 {
			raw |= 0xFFC00000
		}

		pc := uint32(ip) + uint32(pos) + 4

		var next uint32
		if dir == Encode {
			next = (raw << 1) + pc
		} else {
			next = (raw << 1) - pc
		}
		next >>= 1

		h0 = uint16(0xF000) | uint16((next>>11)&0x07FF)
		h1 = uint16(0xF800) | uint16(next&0x07FF)

		buf[pos] = byte(h0)
		buf[pos+1] = byte(h0 >> 8)
		buf[pos+2] = byte(h1)
		buf[pos+3] = byte(h1 >> 8)
		pos += 4
	}

	return pos
}

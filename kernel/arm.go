package kernel

// ARMKernel rewrites the 24-bit displacement of an ARM (A32) BL
// (branch-and-link) instruction between PC-relative and absolute form
// (spec.md §4.3). Words are little-endian and always 4 bytes; BL is
// identified by its top byte, 0xEB.
type ARMKernel struct{}

func NewARMKernel() *ARMKernel { return &ARMKernel{} }

func (k *ARMKernel) Window() int { return 4 }

func (k *ARMKernel) Transform(buf []byte, ip uint64, dir Direction) int {
	n := len(buf)
	if n < k.Window() {
		return 0
	}

	limit := n - 4
	pos := 0

	for pos <= limit {
		if buf[pos+3] != 0xEB {
			pos += 4
			continue
		}

		raw := uint32(buf[pos]) | uint32(buf[pos+1])<<8 | uint32(buf[pos+2])<<16
		pc := ip + uint64(pos) + 8

		var next uint32
		if dir == Encode {
			next = (raw << 2) + uint32(pc)
			next >>= 2
		} else {
			next = ((raw << 2) - uint32(pc)) >> 2
		}

		next &= 0x00FFFFFF
		buf[pos] = byte(next)
		buf[pos+1] = byte(next >> 8)
		buf[pos+2] = byte(next >> 16)
		pos += 4
	}

	return pos
}

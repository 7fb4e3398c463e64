package kernel

// SparcKernel rewrites the 30-bit word-aligned displacement of a SPARC
// format-2 CALL instruction between PC-relative and absolute form
// (spec.md §4.5). SPARC code in the binary image is big-endian; CALL is
// recognised by its top two opcode bits (01) together with the sign pattern
// of the following byte.
type SparcKernel struct{}

func NewSparcKernel() *SparcKernel { return &SparcKernel{} }

func (k *SparcKernel) Window() int { return 4 }

func (k *SparcKernel) Transform(buf []byte, ip uint64, dir Direction) int {
	n := len(buf)
	if n < k.Window() {
		return 0
	}

	limit := n - 4
	pos := 0

	for pos <= limit {
		positive := buf[pos] == 0x40 && buf[pos+1]&0xC0 == 0x00
		negative := buf[pos] == 0x7F && buf[pos+1]&0xC0 == 0xC0
		if !positive && !negative {
			pos += 4
			continue
		}

		src := uint32(buf[pos])<<24 | uint32(buf[pos+1])<<16 | uint32(buf[pos+2])<<8 | uint32(buf[pos+3])
		src <<= 2

		pc := uint32(ip) + uint32(pos)
		var dest uint32
		if dir == Encode {
			dest = pc + src
		} else {
			dest = src - pc
		}
		dest >>= 2

		dest = (0x40000000 - (dest & 0x400000)) | 0x40000000 | (dest & 0x3FFFFF)

		buf[pos] = byte(dest >> 24)
		buf[pos+1] = byte(dest >> 16)
		buf[pos+2] = byte(dest >> 8)
		buf[pos+3] = byte(dest)
		pos += 4
	}

	return pos
}

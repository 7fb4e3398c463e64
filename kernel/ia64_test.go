package kernel

import "testing"

// buildIA64Bundle packs a single branch-unit instruction (opcode 5) with a
// given 21-bit signed immediate into slot 2 of a template-16 bundle, the
// only slot branchSlotMask marks as branch-capable for that template.
func buildIA64Bundle(imm21 uint32) [16]byte {
	var bundle [16]byte
	bundle[0] = 16 // template 16: mask 0x4, slot 2 branch-capable

	instr := uint64(5) << 37
	instr |= uint64(imm21&0xFFFFF) << 13
	if imm21&0x100000 != 0 {
		instr |= uint64(1) << 36
	}

	base := 5 + 2*41
	for i := 0; i < 41; i++ {
		bitPos := base + i
		byteIdx := bitPos / 8
		bitIdx := uint(bitPos % 8)
		if instr&(1<<uint(i)) != 0 {
			bundle[byteIdx] |= 1 << bitIdx
		}
	}
	return bundle
}

func TestIA64RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		imm21 uint32
	}{
		{"forward", 0x000010},
		{"backward", 0x1FFFF0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			bundle := buildIA64Bundle(tc.imm21)
			original := bundle[:]

			enc := append([]byte(nil), original...)
			NewIA64Kernel().Transform(enc, 0xA000, Encode)

			dec := append([]byte(nil), enc...)
			NewIA64Kernel().Transform(dec, 0xA000, Decode)

			for i := range original {
				if original[i] != dec[i] {
					t.Fatalf("round trip mismatch at byte %d: want %#x got %#x", i, original[i], dec[i])
				}
			}
		})
	}
}

func TestIA64NonBranchTemplatePassesThrough(t *testing.T) {
	buf := make([]byte, 16) // template 0: no slot is branch-capable
	want := append([]byte(nil), buf...)
	NewIA64Kernel().Transform(buf, 0, Encode)
	for i := range want {
		if buf[i] != want[i] {
			t.Fatalf("non-branch-template bundle changed at byte %d", i)
		}
	}
}

func TestIA64ShortBufferReturnsZero(t *testing.T) {
	buf := make([]byte, 15)
	if consumed := NewIA64Kernel().Transform(buf, 0, Encode); consumed != 0 {
		t.Fatalf("expected 0 consumed for sub-window buffer, got %d", consumed)
	}
}

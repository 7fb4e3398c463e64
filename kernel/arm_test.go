package kernel

import "testing"

func TestARMRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		raw  uint32
	}{
		{"forward_branch", 0x000100},
		{"backward_branch", 0xFFFF00},
		{"zero", 0x000000},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			original := []byte{byte(tc.raw), byte(tc.raw >> 8), byte(tc.raw >> 16), 0xEB}

			enc := append([]byte(nil), original...)
			NewARMKernel().Transform(enc, 0x1000, Encode)

			dec := append([]byte(nil), enc...)
			NewARMKernel().Transform(dec, 0x1000, Decode)

			for i := range original {
				if original[i] != dec[i] {
					t.Fatalf("round trip mismatch at byte %d: want %#x got %#x", i, original[i], dec[i])
				}
			}
		})
	}
}

func TestARMNonBLPassesThrough(t *testing.T) {
	buf := []byte{0x01, 0x02, 0x03, 0x04}
	want := append([]byte(nil), buf...)
	consumed := NewARMKernel().Transform(buf, 0, Encode)
	if consumed != 4 {
		t.Fatalf("expected 4 bytes consumed, got %d", consumed)
	}
	for i := range want {
		if buf[i] != want[i] {
			t.Fatalf("non-BL word changed at byte %d: want %#x got %#x", i, want[i], buf[i])
		}
	}
}

func TestARMShortBufferReturnsZero(t *testing.T) {
	buf := []byte{0x00, 0x00, 0xEB}
	if consumed := NewARMKernel().Transform(buf, 0, Encode); consumed != 0 {
		t.Fatalf("expected 0 consumed for sub-window buffer, got %d", consumed)
	}
}

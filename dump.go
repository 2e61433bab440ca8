package bytekit

import (
	"fmt"
	"strings"
)

// HexDump renders p in the classic offset / hex / ASCII layout, 16 bytes
// per line, for debugging and diagnostics output.
func HexDump(p []byte) string {
	var sb strings.Builder
	for base := 0; base < len(p); base += 16 {
		fmt.Fprintf(&sb, "%08x  ", base)
		for i := 0; i < 16; i++ {
			if i == 8 {
				sb.WriteByte(' ')
			}
			if base+i < len(p) {
				fmt.Fprintf(&sb, "%02x ", p[base+i])
			} else {
				sb.WriteString("   ")
			}
		}
		sb.WriteString(" |")
		for i := 0; i < 16 && base+i < len(p); i++ {
			c := p[base+i]
			if c < 0x20 || c > 0x7E {
				c = '.'
			}
			sb.WriteByte(c)
		}
		sb.WriteString("|\n")
	}
	return sb.String()
}

// Dump renders the readable region of b without moving the cursors.
func (b *Bytes) Dump() string {
	p, err := b.ToSlice()
	if err != nil {
		return fmt.Sprintf("bytekit: dump failed: %v", err)
	}
	return HexDump(p)
}

package soinspect

import (
	"bytes"
	"debug/elf"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTestELF synthesizes a minimal shared object whose dynamic symbol
// table exports "uname", imports "missing" (undefined) and hides
// "localsym" (local binding).
func writeTestELF(t *testing.T) string {
	t.Helper()

	dynstr := []byte("\x00uname\x00missing\x00localsym\x00")
	shstrtab := []byte("\x00.dynsym\x00.dynstr\x00.shstrtab\x00")

	syms := []elf.Sym64{
		{},
		{Name: 1, Info: byte(elf.STB_GLOBAL)<<4 | byte(elf.STT_FUNC), Shndx: 1, Value: 0x1000},
		{Name: 7, Info: byte(elf.STB_GLOBAL)<<4 | byte(elf.STT_FUNC), Shndx: uint16(elf.SHN_UNDEF)},
		{Name: 15, Info: byte(elf.STB_LOCAL)<<4 | byte(elf.STT_FUNC), Shndx: 1, Value: 0x2000},
	}

	const ehSize = 64
	const symSize = 24
	dynsymOff := uint64(ehSize)
	dynsymSize := uint64(len(syms) * symSize)
	dynstrOff := dynsymOff + dynsymSize
	shstrtabOff := dynstrOff + uint64(len(dynstr))
	shOff := shstrtabOff + uint64(len(shstrtab))
	if rem := shOff % 8; rem != 0 {
		shOff += 8 - rem
	}

	hdr := elf.Header64{
		Ident:     [16]byte{0x7f, 'E', 'L', 'F', 2, 1, 1},
		Type:      uint16(elf.ET_DYN),
		Machine:   uint16(elf.EM_X86_64),
		Version:   1,
		Shoff:     shOff,
		Ehsize:    ehSize,
		Shentsize: 64,
		Shnum:     4,
		Shstrndx:  3,
	}
	sections := []elf.Section64{
		{},
		{Name: 1, Type: uint32(elf.SHT_DYNSYM), Flags: uint64(elf.SHF_ALLOC),
			Off: dynsymOff, Size: dynsymSize, Link: 2, Info: 1, Addralign: 8, Entsize: symSize},
		{Name: 9, Type: uint32(elf.SHT_STRTAB), Off: dynstrOff, Size: uint64(len(dynstr)), Addralign: 1},
		{Name: 17, Type: uint32(elf.SHT_STRTAB), Off: shstrtabOff, Size: uint64(len(shstrtab)), Addralign: 1},
	}

	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, hdr))
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, syms))
	buf.Write(dynstr)
	buf.Write(shstrtab)
	for uint64(buf.Len()) < shOff {
		buf.WriteByte(0)
	}
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, sections))

	path := filepath.Join(t.TempDir(), "libsynth.so")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestExportsSynthesizedELF(t *testing.T) {
	path := writeTestELF(t)
	insp := New()

	ok, err := insp.Exports(path, "uname")
	require.NoError(t, err)
	assert.True(t, ok, "defined global symbol must be reported as exported")

	for _, sym := range []string{"missing", "localsym", "never_there"} {
		ok, err = insp.Exports(path, sym)
		require.NoError(t, err)
		assert.False(t, ok, "%s must not be reported as exported", sym)
	}
}

func TestExportsMissingFile(t *testing.T) {
	_, err := Exports("/nonexistent/libmissing.so", "uname")
	require.Error(t, err)
}

func TestExportsRejectsNonObject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-an-object")
	require.NoError(t, os.WriteFile(path, []byte("plain text, no magic"), 0o644))
	_, err := Exports(path, "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not an ELF or Mach-O")
}

func TestExportsSystemLibc(t *testing.T) {
	candidates := []string{
		"/lib/x86_64-linux-gnu/libc.so.6",
		"/lib/aarch64-linux-gnu/libc.so.6",
		"/usr/lib64/libc.so.6",
		"/usr/lib/libc.so.6",
		"/usr/lib/libSystem.B.dylib",
	}
	var path string
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			path = c
			break
		}
	}
	if path == "" {
		t.Skip("no known system libc on this machine")
	}

	insp := New()

	ok, err := insp.Exports(path, "uname")
	require.NoError(t, err)
	assert.True(t, ok, "expected %s to export uname", path)

	ok, err = insp.Exports(path, "interpose_definitely_not_a_libc_symbol")
	require.NoError(t, err)
	assert.False(t, ok)
}

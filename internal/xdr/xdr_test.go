package xdr

import "testing"

func TestReaderReadUint32(t *testing.T) {
	r := NewReader([]byte{0x00, 0x00, 0x00, 0x2a, 0xff})
	v, err := r.ReadUint32()
	if err != nil {
		t.Fatalf("ReadUint32: %v", err)
	}
	if v != 42 {
		t.Errorf("ReadUint32 = %d, want 42", v)
	}
	if r.Pos() != 4 {
		t.Errorf("Pos = %d, want 4", r.Pos())
	}
}

func TestReaderShortBuffer(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02})
	if _, err := r.ReadUint32(); err != ErrShortBuffer {
		t.Errorf("ReadUint32 on short buffer = %v, want ErrShortBuffer", err)
	}
}

func TestReaderReadBytesAliases(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5}
	r := NewReader(data)
	b, err := r.ReadBytes(3)
	if err != nil {
		t.Fatalf("ReadBytes: %v", err)
	}
	if len(b) != 3 || b[0] != 1 || b[2] != 3 {
		t.Errorf("ReadBytes = %v, want [1 2 3]", b)
	}
}

func TestReaderSkipAndSetPos(t *testing.T) {
	r := NewReader([]byte{1, 2, 3, 4})
	if err := r.Skip(2); err != nil {
		t.Fatalf("Skip: %v", err)
	}
	if r.Pos() != 2 {
		t.Errorf("Pos = %d, want 2", r.Pos())
	}
	if err := r.SetPos(0); err != nil {
		t.Fatalf("SetPos: %v", err)
	}
	if err := r.SetPos(100); err != ErrShortBuffer {
		t.Errorf("SetPos out of range = %v, want ErrShortBuffer", err)
	}
}

func TestWriterRoundtrip(t *testing.T) {
	w := NewWriter(16)
	w.WriteUint32(0xdeadbeef)
	w.WriteUint16(0x1234)
	w.WriteByte(0x99)

	r := NewReader(w.Bytes())
	u32, err := r.ReadUint32()
	if err != nil || u32 != 0xdeadbeef {
		t.Errorf("ReadUint32 = %#x, %v, want 0xdeadbeef", u32, err)
	}
	u16, err := r.ReadUint16()
	if err != nil || u16 != 0x1234 {
		t.Errorf("ReadUint16 = %#x, %v, want 0x1234", u16, err)
	}
	b, err := r.ReadByte()
	if err != nil || b != 0x99 {
		t.Errorf("ReadByte = %#x, %v, want 0x99", b, err)
	}
}

func FuzzReaderReadUint32(f *testing.F) {
	f.Add([]byte{0, 0, 0, 0})
	f.Add([]byte{0xff, 0xff, 0xff, 0xff})
	f.Add([]byte{})
	f.Fuzz(func(t *testing.T, data []byte) {
		r := NewReader(data)
		_, _ = r.ReadUint32()
	})
}

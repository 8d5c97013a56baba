package packet

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Writer builds a packet. All multi-byte writes are little-endian.
type Writer struct {
	buf []byte
}

func NewWriterWithOpcode(opcode byte) *Writer {
	w := &Writer{buf: make([]byte, 0, 64)}
	w.WriteC(opcode)
	return w
}

// WriteC writes 1 byte.
func (w *Writer) WriteC(v byte) {
	w.buf = append(w.buf, v)
}

// WriteH writes 2 bytes.
func (w *Writer) WriteH(v uint16) {
	w.buf = binary.LittleEndian.AppendUint16(w.buf, v)
}

// WriteDU writes 4 bytes unsigned.
func (w *Writer) WriteDU(v uint32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}

// WriteF writes a float64.
func (w *Writer) WriteF(v float64) {
	w.buf = binary.LittleEndian.AppendUint64(w.buf, math.Float64bits(v))
}

// WriteS writes a null-terminated string.
func (w *Writer) WriteS(s string) {
	w.buf = append(w.buf, s...)
	w.buf = append(w.buf, 0)
}

func (w *Writer) Bytes() []byte {
	return w.buf
}

func (w *Writer) Len() int {
	return len(w.buf)
}

// BuildWelcome acknowledges a hello.
func BuildWelcome(session uint64, tickMillis uint16) []byte {
	w := NewWriterWithOpcode(S_OPCODE_WELCOME)
	w.WriteDU(uint32(session))
	w.WriteH(tickMillis)
	return w.Bytes()
}

// BuildReject tells the client why it is being dropped.
func BuildReject(reason string) []byte {
	w := NewWriterWithOpcode(S_OPCODE_REJECT)
	w.WriteS(reason)
	return w.Bytes()
}

func BuildAttach(handle uint32, visual string) []byte {
	w := NewWriterWithOpcode(S_OPCODE_ATTACH)
	w.WriteDU(handle)
	w.WriteS(visual)
	return w.Bytes()
}

func BuildSync(handle uint32, pos mgl64.Vec3, orient mgl64.Quat) []byte {
	w := NewWriterWithOpcode(S_OPCODE_SYNC)
	w.WriteDU(handle)
	w.WriteF(pos.X())
	w.WriteF(pos.Y())
	w.WriteF(pos.Z())
	w.WriteF(orient.W)
	w.WriteF(orient.X())
	w.WriteF(orient.Y())
	w.WriteF(orient.Z())
	return w.Bytes()
}

func BuildDetach(handle uint32) []byte {
	w := NewWriterWithOpcode(S_OPCODE_DETACH)
	w.WriteDU(handle)
	return w.Bytes()
}

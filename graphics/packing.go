package graphics

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/korin"
	"github.com/gogpu/korin/linear"
)

// packer serializes uniform and instance data into the little-endian
// layout the shaders expect. Each drawer owns one and resets it per
// frame, so the backing array is reused across frames.
type packer struct {
	buf []byte
}

func (p *packer) reset() {
	p.buf = p.buf[:0]
}

func (p *packer) f32(v float32) {
	p.buf = binary.LittleEndian.AppendUint32(p.buf, math.Float32bits(v))
}

func (p *packer) u32(v uint32) {
	p.buf = binary.LittleEndian.AppendUint32(p.buf, v)
}

func (p *packer) u64(v uint64) {
	p.buf = binary.LittleEndian.AppendUint64(p.buf, v)
}

func (p *packer) vec2(v linear.Vec2) {
	p.f32(v.X)
	p.f32(v.Y)
}

func (p *packer) vec4(v linear.Vec4) {
	p.f32(v.X)
	p.f32(v.Y)
	p.f32(v.Z)
	p.f32(v.W)
}

func (p *packer) mat4(m linear.Mat4) {
	for _, v := range m {
		p.f32(v)
	}
}

func (p *packer) color(c korin.Color) {
	p.f32(c.R)
	p.f32(c.G)
	p.f32(c.B)
	p.f32(c.A)
}

// pad appends zero bytes until the buffer length is a multiple of n.
// Uniform blocks need 16-byte alignment.
func (p *packer) pad(n int) {
	for len(p.buf)%n != 0 {
		p.buf = append(p.buf, 0)
	}
}

func (p *packer) bytes() []byte { return p.buf }

package vmath

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Checksum accumulates a platform-independent hash of fixed-point state
// Lockstep peers compare Sum64 per frame to detect desync
// Values are fed as little-endian raw bits, so equal states always hash equal
type Checksum struct {
	d   *xxhash.Digest
	buf [8]byte
}

func NewChecksum() *Checksum {
	return &Checksum{d: xxhash.New()}
}

func (c *Checksum) WriteFixed(f Fixed) {
	binary.LittleEndian.PutUint64(c.buf[:], uint64(f))
	_, _ = c.d.Write(c.buf[:])
}

func (c *Checksum) WriteVec2(v Vec2) {
	c.WriteFixed(v.X)
	c.WriteFixed(v.Y)
}

func (c *Checksum) WriteVec3(v Vec3) {
	c.WriteFixed(v.X)
	c.WriteFixed(v.Y)
	c.WriteFixed(v.Z)
}

func (c *Checksum) Sum64() uint64 { return c.d.Sum64() }

func (c *Checksum) Reset() { c.d.Reset() }

// Hash returns the checksum of a single vector
func (v Vec2) Hash() uint64 {
	c := NewChecksum()
	c.WriteVec2(v)
	return c.Sum64()
}

func (v Vec3) Hash() uint64 {
	c := NewChecksum()
	c.WriteVec3(v)
	return c.Sum64()
}

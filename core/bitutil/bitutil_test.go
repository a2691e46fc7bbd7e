package bitutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHighestSetBit(t *testing.T) {
	cases := []struct {
		k    uint64
		want uint
	}{
		{0, 0},
		{1, 0},
		{2, 1},
		{3, 1},
		{4, 2},
		{0xff, 7},
		{0x100, 8},
		{1 << 63, 63},
		{^uint64(0), 63},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, HighestSetBit(c.k), "k=%d", c.k)
	}
}

func TestHighestSetBitNarrowerTypes(t *testing.T) {
	assert.Equal(t, uint(7), HighestSetBit(uint8(0xff)))
	assert.Equal(t, uint(15), HighestSetBit(uint16(0x8000)))
	assert.Equal(t, uint(31), HighestSetBit(uint32(0xffffffff)))
	assert.Equal(t, uint(0), HighestSetBit(uint8(0)))
}

package voxflat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentityApply(t *testing.T) {
	v := [3]int32{3, -4, 5}
	assert.Equal(t, v, Identity().Apply(v))
}

func TestComposeWithIdentityIsNoop(t *testing.T) {
	custom := Transform{Cols: [3]int{1, 2, 0}, Signs: [3]int32{-1, 1, 1}, Translation: [3]int32{2, 3, 4}}
	assert.Equal(t, custom, Identity().Compose(custom))
	assert.Equal(t, custom, custom.Compose(Identity()))
}

func TestComposeMatchesSequentialApply(t *testing.T) {
	a := Transform{Cols: [3]int{1, 0, 2}, Signs: [3]int32{1, -1, 1}, Translation: [3]int32{1, 2, 3}}
	b := Transform{Cols: [3]int{0, 2, 1}, Signs: [3]int32{-1, 1, -1}, Translation: [3]int32{-1, 0, 5}}
	v := [3]int32{7, -2, 9}

	composed := a.Compose(b).Apply(v)
	sequential := a.Apply(b.Apply(v))
	assert.Equal(t, sequential, composed)
}

func TestModelTransformCentersPositiveSign(t *testing.T) {
	parent := Identity()
	child := ModelTransform(parent, [3]uint32{4, 4, 4})
	assert.Equal(t, [3]int32{-2, -2, -2}, child.Translation)
}

func TestModelTransformCenteringNegativeSignExtraUnit(t *testing.T) {
	parent := Transform{Cols: [3]int{0, 1, 2}, Signs: [3]int32{-1, 1, 1}}
	child := ModelTransform(parent, [3]uint32{4, 4, 4})
	// size/2 = 2; for the negative-signed axis, one extra unit is
	// subtracted beyond the positive-sign case.
	assert.Equal(t, int32(1), child.Translation[0])
	assert.Equal(t, int32(-2), child.Translation[1])
}

func TestDecodeRotationAxisSwap(t *testing.T) {
	// code bits [1:0]=1 (col0=1), bits [3:2]=0 (col1=0) -> col2=3-1-0=2.
	// sign bit 0x10 set negates row 0.
	code := uint(1) | 0x10
	tr := decodeRotation(Identity(), code)
	assert.Equal(t, [3]int{1, 0, 2}, tr.Cols)
	assert.Equal(t, [3]int32{-1, 1, 1}, tr.Signs)
}

func TestDecodeRotationOutOfRangeClampsToTwo(t *testing.T) {
	// code bits clamp col0 and col1 to 2 each, leaving raw = 3-2-2 = -1;
	// the reference implementation computes this in unsigned arithmetic,
	// where -1 wraps to a huge value that is then clamped to 2, so any
	// out-of-range result, negative included, yields col2 = 2.
	code := uint(3) | (3 << 2)
	tr := decodeRotation(Identity(), code)
	assert.Equal(t, 2, tr.Cols[2])
}

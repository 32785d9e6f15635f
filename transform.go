package voxflat

// Transform represents a rigid coordinate transform as a signed axis
// permutation plus an integer translation: each output axis i takes
// its value from input axis Cols[i], negated if Signs[i] is -1, and
// then Translation[i] is added.
type Transform struct {
	Cols        [3]int
	Signs       [3]int32
	Translation [3]int32
}

// Identity returns the identity transform: cols=(0,1,2), signs=(+1,+1,+1),
// translation=(0,0,0).
func Identity() Transform {
	return Transform{
		Cols:  [3]int{0, 1, 2},
		Signs: [3]int32{1, 1, 1},
	}
}

// Apply maps model/child-local coordinates v through t, producing
// world/parent-local coordinates.
func (t Transform) Apply(v [3]int32) [3]int32 {
	var w [3]int32
	for i := 0; i < 3; i++ {
		w[i] = v[t.Cols[i]]*t.Signs[i] + t.Translation[i]
	}
	return w
}

// Compose returns the transform equivalent to first applying b, then
// applying a to the result (a.Compose(b).Apply(v) equals
// a.Apply(b.Apply(v))) -- i.e. the transform a child frame should
// use when its own local frame is defined by b relative to a parent
// positioned at a. This matches how nTRN frames stack as traversal
// descends: Compose(parent, frame) is the transform handed to the
// frame's child.
func (a Transform) Compose(b Transform) Transform {
	var c Transform
	for i := 0; i < 3; i++ {
		c.Cols[i] = b.Cols[a.Cols[i]]
		c.Signs[i] = a.Signs[i] * b.Signs[a.Cols[i]]
		c.Translation[i] = a.Translation[i] + b.Translation[a.Cols[i]]*a.Signs[i]
	}
	return c
}

// ModelTransform derives the transform to apply to a model's raw
// voxel coordinates from the parent transform and the model's size,
// applying the model-centering rule: the model's local origin is
// shifted so the model is centered in its bounding box.
func ModelTransform(parent Transform, size [3]uint32) Transform {
	child := parent
	for i := 0; i < 3; i++ {
		half := int32(size[parent.Cols[i]] / 2)
		child.Translation[i] -= half * parent.Signs[i]
		if parent.Signs[i] < 0 {
			child.Translation[i]--
		}
	}
	return child
}

// decodeRotation decodes a MagicaVoxel "_r" rotation code into t's
// Cols/Signs, tolerating malformed encodings by clamping column
// indices into the valid 0..2 range rather than failing (spec §9).
func decodeRotation(t Transform, code uint) Transform {
	col0 := clampCol(code & 0x3)
	col1 := clampCol((code >> 2) & 0x3)
	// The reference implementation computes this as an unsigned
	// subtraction clamped from above only; a negative result wraps to
	// a huge unsigned value and is clamped the same way an
	// out-of-range positive one would be.
	raw := 3 - col0 - col1
	col2 := 2
	if raw >= 0 && raw <= 2 {
		col2 = raw
	}
	t.Cols = [3]int{col0, col1, col2}

	sign := func(bit uint) int32 {
		if code&bit != 0 {
			return -1
		}
		return 1
	}
	t.Signs = [3]int32{sign(0x10), sign(0x20), sign(0x40)}
	return t
}

func clampCol(v uint) int {
	if v > 2 {
		return 2
	}
	return int(v)
}

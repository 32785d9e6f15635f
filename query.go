package voxflat

// CountVoxels returns the total number of visible voxels in the
// scene, including duplicates introduced by multiple shape instances
// of the same model. It is a pure read over the in-memory scene graph
// and never touches the byte source.
func CountVoxels(s *Scene) uint64 {
	return countVoxelsNode(s, 0)
}

func countVoxelsNode(s *Scene, idx int) uint64 {
	n := &s.Nodes[idx]
	switch n.Kind {
	case NodeShape:
		return uint64(s.Models[n.ModelIndex].VoxelCount)
	case NodeTransform:
		if n.IsHidden || (n.LayerIndex >= 0 && s.Layers[n.LayerIndex].IsHidden) {
			return 0
		}
		return countVoxelsNode(s, n.ChildNodeIndex)
	case NodeGroup:
		var total uint64
		for _, c := range s.GroupChildren[n.ChildStart:n.ChildEnd] {
			total += countVoxelsNode(s, c)
		}
		return total
	default:
		return 0
	}
}

// Bounds is an axis-aligned bounding box in world coordinates, with
// Min and Max inclusive.
type Bounds struct {
	Min, Max [3]int32
}

// CalculateBounds returns the scene's visible bounding box, or the
// zero Bounds if the scene has no visible voxels.
func CalculateBounds(s *Scene) Bounds {
	b := Bounds{}
	empty := true
	extend := func(p [3]int32) {
		if empty {
			b.Min, b.Max = p, p
			empty = false
			return
		}
		for i := 0; i < 3; i++ {
			if p[i] < b.Min[i] {
				b.Min[i] = p[i]
			}
			if p[i] > b.Max[i] {
				b.Max[i] = p[i]
			}
		}
	}
	boundsNode(s, 0, Identity(), extend)
	return b
}

func boundsNode(s *Scene, idx int, parent Transform, extend func([3]int32)) {
	n := &s.Nodes[idx]
	switch n.Kind {
	case NodeShape:
		size := s.ModelSizes[n.ModelIndex]
		t := ModelTransform(parent, [3]uint32{size.SX, size.SY, size.SZ})
		extend(t.Apply([3]int32{0, 0, 0}))
		extend(t.Apply([3]int32{
			int32(clampExtent(size.SX)) - 1,
			int32(clampExtent(size.SY)) - 1,
			int32(clampExtent(size.SZ)) - 1,
		}))
	case NodeTransform:
		if n.IsHidden || (n.LayerIndex >= 0 && s.Layers[n.LayerIndex].IsHidden) {
			return
		}
		boundsNode(s, n.ChildNodeIndex, parent.Compose(n.FrameTransform), extend)
	case NodeGroup:
		for _, c := range s.GroupChildren[n.ChildStart:n.ChildEnd] {
			boundsNode(s, c, parent, extend)
		}
	}
}

// clampExtent clamps a model extent into [1,256], the valid range a
// SIZE chunk's dimensions are assumed to fall within when computing
// bounds (per spec §4.6).
func clampExtent(v uint32) uint32 {
	if v < 1 {
		return 1
	}
	if v > 256 {
		return 256
	}
	return v
}

package voxflat

import (
	"sort"
)

// Model locates a model's voxel payload in the original byte source.
// The payload itself is never read at scene-build time: it is
// VoxelCount tuples of (x, y, z, color_index), each a 4-byte
// little-endian record, read lazily during traversal.
type Model struct {
	VoxelCount uint32
	payload    mark
}

// ModelSize gives a model's extents along each axis.
type ModelSize struct {
	SX, SY, SZ uint32
}

// NodeKind tags which variant a Node holds.
type NodeKind int

const (
	NodeGroup NodeKind = iota
	NodeShape
	NodeTransform
)

// Node is the validated, index-remapped scene-graph node: one of
// Group, Shape, or Transform, tagged by Kind. Height is the longest
// path to a leaf in edges, computed by the validator; 0 for shapes and
// empty groups.
type Node struct {
	Kind NodeKind
	Name string

	// Group
	ChildStart, ChildEnd int // range into Scene.GroupChildren

	// Shape
	ModelIndex int

	// Transform
	ChildNodeIndex int
	LayerIndex     int // -1 if the transform has no layer
	IsHidden       bool
	FrameTransform Transform

	Height int

	id int32 // raw file id, used only during validation
}

// Layer is a MagicaVoxel layer: a visibility tag that nTRN nodes may
// reference.
type Layer struct {
	Name     string
	IsHidden bool

	id int32
}

// Scene is the fully validated, immutable in-memory scene graph
// produced by building a parsedFile. Node index 0 is always the root.
type Scene struct {
	Palette   Palette
	Materials map[int]Material

	Models     []Model
	ModelSizes []ModelSize

	Nodes         []Node
	GroupChildren []int // shared child-index array; Node.ChildStart/End slice into it
	Layers        []Layer
}

// RootHeight is Nodes[0].Height, the depth of the traversal stack the
// traversal engine needs.
func (s *Scene) RootHeight() int {
	if len(s.Nodes) == 0 {
		return 0
	}
	return s.Nodes[0].Height
}

// buildScene turns a parsedFile into a validated Scene, per spec
// §4.4: implicit root synthesis, ID remapping by sort + binary search,
// then a cycle check that also assigns node heights.
func buildScene(pf *parsedFile) *Scene {
	s := &Scene{
		Palette:    pf.palette,
		Materials:  pf.materials,
		Models:     pf.models,
		ModelSizes: pf.modelSizes,
	}
	if !pf.hasRGBA {
		s.Palette = DefaultPalette()
	}
	if len(s.Models) == 0 || len(s.Models) != len(s.ModelSizes) {
		fail(ErrInvalidScene)
	}

	nodes := pf.nodes
	if len(nodes) == 0 {
		// Implicit root: a legacy flat file with a single model and no
		// scene graph at all.
		nodes = []rawNode{{id: 0, kind: rawShape, modelIndex: 0}}
	}

	sort.Slice(nodes, func(i, j int) bool { return nodes[i].id < nodes[j].id })
	layers := append([]rawLayer(nil), pf.layers...)
	sort.Slice(layers, func(i, j int) bool { return layers[i].id < layers[j].id })

	findNode := func(id int32) int {
		i := sort.Search(len(nodes), func(i int) bool { return nodes[i].id >= id })
		if i < len(nodes) && nodes[i].id == id {
			return i
		}
		fail(ErrInvalidScene)
		return -1
	}
	findLayer := func(id int32) int {
		i := sort.Search(len(layers), func(i int) bool { return layers[i].id >= id })
		if i < len(layers) && layers[i].id == id {
			return i
		}
		fail(ErrInvalidScene)
		return -1
	}

	s.Layers = make([]Layer, len(layers))
	for i, l := range layers {
		s.Layers[i] = Layer{Name: l.name, IsHidden: l.hidden, id: l.id}
	}

	s.Nodes = make([]Node, len(nodes))
	for i, rn := range nodes {
		n := Node{id: rn.id, Name: rn.name}
		switch rn.kind {
		case rawGroup:
			n.Kind = NodeGroup
			start := len(s.GroupChildren)
			for _, childID := range pf.groupChildren[rn.childStart:rn.childEnd] {
				s.GroupChildren = append(s.GroupChildren, findNode(childID))
			}
			n.ChildStart, n.ChildEnd = start, len(s.GroupChildren)
		case rawShape:
			n.Kind = NodeShape
			n.ModelIndex = rn.modelIndex
		case rawTransform:
			n.Kind = NodeTransform
			n.ChildNodeIndex = findNode(rn.childID)
			n.IsHidden = rn.isHidden
			n.FrameTransform = rn.frameXfrm
			n.LayerIndex = -1
			if rn.hasLayer {
				n.LayerIndex = findLayer(rn.layerID)
			}
		}
		s.Nodes[i] = n
	}

	checkSceneGraph(s)
	return s
}

// Three-state marker for the cycle check: heightUnvisited,
// heightInProgress, or a value >= 0 once the node is done. The
// per-node state slice doubles as this marker and as the node's
// computed height once it is done.
const (
	heightUnvisited = -1
	heightInProgress = -2
)

// checkSceneGraph runs a DFS from node 0, rejecting cycles and
// assigning each node's height. Re-entering a node already marked done
// is legal (shared subtrees); re-entering one marked in-progress is a
// cycle and fails InvalidScene.
func checkSceneGraph(s *Scene) {
	if len(s.Nodes) == 0 {
		fail(ErrInvalidScene)
	}
	state := make([]int, len(s.Nodes))
	for i := range state {
		state[i] = heightUnvisited
	}
	var visit func(idx int) int
	visit = func(idx int) int {
		switch state[idx] {
		case heightInProgress:
			fail(ErrInvalidScene)
		default:
			if state[idx] >= 0 {
				return state[idx]
			}
		}
		state[idx] = heightInProgress
		n := &s.Nodes[idx]
		height := 0
		switch n.Kind {
		case NodeShape:
			if n.ModelIndex < 0 || n.ModelIndex >= len(s.Models) {
				fail(ErrInvalidScene)
			}
		case NodeGroup:
			for _, c := range s.GroupChildren[n.ChildStart:n.ChildEnd] {
				if h := visit(c) + 1; h > height {
					height = h
				}
			}
		case NodeTransform:
			height = visit(n.ChildNodeIndex) + 1
		}
		n.Height = height
		state[idx] = height
		return height
	}
	visit(0)
}

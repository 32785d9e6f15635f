package voxflat

import "image/color"

// rawNodeKind tags a node parsed straight off the chunk stream, before
// scene validation has remapped its IDs to array indices.
type rawNodeKind int

const (
	rawGroup rawNodeKind = iota
	rawShape
	rawTransform
)

// rawNode is a node as read from an nGRP/nSHP/nTRN chunk: child/layer
// references are still the file's raw, possibly sparse uint32 IDs.
type rawNode struct {
	id   int32
	kind rawNodeKind
	name string

	modelIndex int // shape

	childStart, childEnd int // group: range into parsedFile.groupChildren

	childID   int32 // transform
	hasLayer  bool
	layerID   int32
	isHidden  bool
	frameXfrm Transform
}

type rawLayer struct {
	id     int32
	name   string
	hidden bool
}

// parsedFile is the flat result of walking a .vox byte stream: every
// chunk recognized by spec §4.2 in file order, with node/layer
// references still in raw file-ID space. SceneBuilder turns this into
// a validated scene graph.
type parsedFile struct {
	models     []Model
	modelSizes []ModelSize
	palette    Palette
	hasRGBA    bool
	materials  map[int]Material

	nodes         []rawNode
	groupChildren []int32 // raw file IDs; node.childStart/End index into this
	layers        []rawLayer
}

func fourCC(b []byte) string { return string(b) }

// parseVox reads the full .vox prologue and MAIN children, calling
// fail(...) on any structural problem. It never touches scene-graph
// validation -- that is SceneBuilder's job.
func parseVox(src byteSource) *parsedFile {
	header := src.get(20)
	if fourCC(header[0:4]) != "VOX " || fourCC(header[8:12]) != "MAIN" {
		fail(ErrUnrecognizedFileFormat)
	}
	mainContentSize := leUint32(header[12:16])
	src.skip(int(mainContentSize))

	pf := &parsedFile{materials: map[int]Material{}}
	parseMainChildren(src, pf)
	return pf
}

func leUint32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

// parseMainChildren reads child chunks until the byte source runs dry,
// deliberately ignoring the MAIN chunk's declared children size (spec
// §9: this sidesteps the 32-bit size-field cap and tolerates appended
// or truncated trailing data).
func parseMainChildren(src byteSource, pf *parsedFile) {
	for {
		header, ok := src.tryGet(12)
		if !ok {
			return
		}
		id := fourCC(header[0:4])
		contentSize := leUint32(header[4:8])
		childrenSize := leUint32(header[8:12])

		src.resetReadCount()
		dispatchChunk(src, pf, id, int(contentSize))
		if src.readCount() != int64(contentSize) {
			fail(ErrInvalidFileStructure)
		}
		src.skip(int(childrenSize))
	}
}

func dispatchChunk(src byteSource, pf *parsedFile, id string, contentSize int) {
	switch id {
	case "SIZE":
		parseSizeChunk(src, pf)
	case "XYZI":
		parseXYZIChunk(src, pf)
	case "RGBA":
		parseRGBAChunk(src, pf)
	case "nSHP":
		parseShapeChunk(src, pf)
	case "nGRP":
		parseGroupChunk(src, pf)
	case "nTRN":
		parseTransformChunk(src, pf)
	case "LAYR":
		parseLayerChunk(src, pf)
	case "MATL":
		parseMatlChunkTolerant(src, pf)
	default:
		src.skip(contentSize)
	}
}

func parseSizeChunk(src byteSource, pf *parsedFile) {
	sx := readUint32(src)
	sy := readUint32(src)
	sz := readUint32(src)
	pf.modelSizes = append(pf.modelSizes, ModelSize{sx, sy, sz})
}

func parseXYZIChunk(src byteSource, pf *parsedFile) {
	count := readUint32(src)
	bookmark := src.bookmark()
	pf.models = append(pf.models, Model{VoxelCount: count, payload: bookmark})
	src.skip(4 * int(count))
}

func parseRGBAChunk(src byteSource, pf *parsedFile) {
	data := src.get(256 * 4)
	var p Palette
	for i := 0; i < 255; i++ {
		p[i+1] = color.RGBA{R: data[i*4], G: data[i*4+1], B: data[i*4+2], A: data[i*4+3]}
	}
	pf.palette = p
	pf.hasRGBA = true
}

func parseShapeChunk(src byteSource, pf *parsedFile) {
	id := readInt32(src)
	_, name := readNodeDict(src)
	modelCount := readUint32(src)
	if modelCount == 0 {
		fail(ErrInvalidFileStructure)
	}
	node := rawNode{id: id, kind: rawShape, name: name}
	for i := uint32(0); i < modelCount; i++ {
		modelIndex := readInt32(src)
		if i == 0 {
			node.modelIndex = int(modelIndex)
		}
		skipDict(src)
	}
	pf.nodes = append(pf.nodes, node)
}

func parseGroupChunk(src byteSource, pf *parsedFile) {
	id := readInt32(src)
	_, name := readNodeDict(src)
	childCount := readUint32(src)
	start := len(pf.groupChildren)
	for i := uint32(0); i < childCount; i++ {
		pf.groupChildren = append(pf.groupChildren, readInt32(src))
	}
	pf.nodes = append(pf.nodes, rawNode{
		id:         id,
		kind:       rawGroup,
		name:       name,
		childStart: start,
		childEnd:   len(pf.groupChildren),
	})
}

func parseTransformChunk(src byteSource, pf *parsedFile) {
	id := readInt32(src)
	isHidden, name := readNodeDict(src)

	data := src.get(16)
	childID := int32(leUint32(data[0:4]))
	// data[4:8] is reserved, unused.
	layerValue := int32(leUint32(data[8:12]))
	frameCount := leUint32(data[12:16])
	if frameCount < 1 {
		fail(ErrInvalidFileStructure)
	}

	frameXfrm := readTransformFrameDict(src)
	for i := uint32(1); i < frameCount; i++ {
		skipDict(src)
	}

	pf.nodes = append(pf.nodes, rawNode{
		id:        id,
		kind:      rawTransform,
		name:      name,
		childID:   childID,
		hasLayer:  layerValue >= 0,
		layerID:   layerValue,
		isHidden:  isHidden,
		frameXfrm: frameXfrm,
	})
}

func parseLayerChunk(src byteSource, pf *parsedFile) {
	id := readInt32(src)
	hidden, name := readNodeDict(src)
	src.skip(4) // reserved
	pf.layers = append(pf.layers, rawLayer{id: id, name: name, hidden: hidden})
}

// parseMatlChunkTolerant never fails the open on a malformed or
// out-of-range material; see SPEC_FULL.md's materials supplement.
func parseMatlChunkTolerant(src byteSource, pf *parsedFile) {
	idx, mat, ok := parseMatlChunk(src)
	if ok {
		pf.materials[idx] = mat
	}
}

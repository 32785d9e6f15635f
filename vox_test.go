package voxflat

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenMemoryUnrecognizedMagic(t *testing.T) {
	data := append([]byte("NOPE"), make([]byte, 16)...)
	_, err := OpenMemory(data)
	require.Error(t, err)
	verr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, ErrUnrecognizedFileFormat, verr.Kind)
}

func TestReadOnNilHandleReturnsInvalidArgument(t *testing.T) {
	var h *Handle

	xyz := make([][3]int32, 1)
	rgba := make([]color.RGBA, 1)
	n, err := h.ReadXYZRGBA(xyz, rgba)
	assert.Equal(t, 0, n)
	require.Error(t, err)
	assert.Equal(t, ErrInvalidArgument, err.(*Error).Kind)

	colorIdx := make([]uint8, 1)
	n2, err2 := h.ReadXYZColorIndex(xyz, colorIdx)
	assert.Equal(t, 0, n2)
	require.Error(t, err2)
	assert.Equal(t, ErrInvalidArgument, err2.(*Error).Kind)
}

func TestFlatLegacyFileResumableRead(t *testing.T) {
	data := voxFile(
		sizeChunk(2, 2, 2),
		xyziChunk([][4]uint8{{0, 0, 0, 1}, {1, 1, 1, 2}, {0, 1, 0, 3}}),
	)
	h, err := OpenMemory(data)
	require.NoError(t, err)
	defer h.Close()

	assert.EqualValues(t, 3, h.CountVoxels())

	xyz := make([][3]int32, 5)
	rgba := make([]color.RGBA, 5)
	n, err := h.ReadXYZRGBA(xyz, rgba)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n2, err := h.ReadXYZRGBA(xyz, rgba)
	require.NoError(t, err)
	assert.Equal(t, 0, n2)
}

func TestTruncatedPayloadStickyEOF(t *testing.T) {
	// The chunk header declares the content size a well-formed writer
	// would produce for 10 records (as if the whole payload were
	// present), but the byte stream is physically cut off after only
	// 6 -- a file truncated by something other than this reader. Open
	// only reads the count field and bookmarks the payload, so it
	// still succeeds; the short read surfaces lazily, on the first
	// traversal into the model.
	var children bytes.Buffer
	children.Write(sizeChunk(16, 16, 16))
	children.WriteString("XYZI")
	u32le(&children, 4+4*10)
	u32le(&children, 0)
	u32le(&children, 10)
	for i := 0; i < 6; i++ {
		children.Write([]byte{byte(i), 0, 0, 1})
	}

	var file bytes.Buffer
	file.WriteString("VOX ")
	u32le(&file, 150)
	file.WriteString("MAIN")
	u32le(&file, 0)
	u32le(&file, uint32(children.Len()))
	file.Write(children.Bytes())

	h, err := OpenMemory(file.Bytes())
	require.NoError(t, err)
	defer h.Close()

	xyz := make([][3]int32, 20)
	rgba := make([]color.RGBA, 20)
	n, err := h.ReadXYZRGBA(xyz, rgba)
	assert.Equal(t, 0, n)
	require.Error(t, err)
	verr := err.(*Error)
	assert.Equal(t, ErrUnexpectedEOF, verr.Kind)

	n2, err2 := h.ReadXYZRGBA(xyz, rgba)
	assert.Equal(t, 0, n2)
	assert.Equal(t, err, err2)
}

func TestMultipleInstancesOfOneModel(t *testing.T) {
	data := voxFile(
		sizeChunk(1, 1, 1),
		xyziChunk([][4]uint8{{0, 0, 0, 1}}),
		groupChunk(1, 2, 3),
		shapeChunk(2, 0),
		shapeChunk(3, 0),
	)
	h, err := OpenMemory(data)
	require.NoError(t, err)
	defer h.Close()
	assert.EqualValues(t, 2, h.CountVoxels())
}

func TestRotatedInstanceTranslation(t *testing.T) {
	// model is 2x1x1; _r=17 encodes cols (1,0,2), signs (-1,+1,+1).
	data := voxFile(
		sizeChunk(2, 1, 1),
		xyziChunk([][4]uint8{{0, 0, 0, 5}, {1, 0, 0, 5}}),
		transformChunk(1, 2, -1, false, "_r", "17", "_t", "2 3 4"),
		shapeChunk(2, 0),
	)
	h, err := OpenMemory(data)
	require.NoError(t, err)
	defer h.Close()

	xyz := make([][3]int32, 2)
	rgba := make([]color.RGBA, 2)
	n, err := h.ReadXYZRGBA(xyz, rgba)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	assert.Equal(t, [3]int32{1, 2, 4}, xyz[0])
	assert.Equal(t, [3]int32{1, 3, 4}, xyz[1])
}

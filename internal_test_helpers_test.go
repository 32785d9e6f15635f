package voxflat

import (
	"bytes"
	"encoding/binary"
)

// The package ships no binary .vox fixtures; every test synthesizes
// the bytes it needs with this small chunk writer.

func u32le(buf *bytes.Buffer, v uint32) { binary.Write(buf, binary.LittleEndian, v) }
func i32le(buf *bytes.Buffer, v int32)  { binary.Write(buf, binary.LittleEndian, v) }

func writeVoxString(buf *bytes.Buffer, s string) {
	u32le(buf, uint32(len(s)))
	buf.WriteString(s)
}

// voxDict writes a dict in file order; pairs must have an even length
// (key, value, key, value, ...).
func voxDict(buf *bytes.Buffer, pairs ...string) {
	u32le(buf, uint32(len(pairs)/2))
	for i := 0; i+1 < len(pairs); i += 2 {
		writeVoxString(buf, pairs[i])
		writeVoxString(buf, pairs[i+1])
	}
}

func voxChunk(id string, content []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString(id)
	u32le(&buf, uint32(len(content)))
	u32le(&buf, 0)
	buf.Write(content)
	return buf.Bytes()
}

// voxFile assembles a full .vox byte stream from a sequence of
// already-framed chunks (each produced by voxChunk), all nested
// directly under MAIN as siblings.
func voxFile(chunks ...[]byte) []byte {
	var children bytes.Buffer
	for _, c := range chunks {
		children.Write(c)
	}

	var out bytes.Buffer
	out.WriteString("VOX ")
	u32le(&out, 150)
	out.WriteString("MAIN")
	u32le(&out, 0) // MAIN content size
	u32le(&out, uint32(children.Len()))
	out.Write(children.Bytes())
	return out.Bytes()
}

func sizeChunk(sx, sy, sz uint32) []byte {
	var buf bytes.Buffer
	u32le(&buf, sx)
	u32le(&buf, sy)
	u32le(&buf, sz)
	return voxChunk("SIZE", buf.Bytes())
}

func xyziChunk(voxels [][4]uint8) []byte {
	var buf bytes.Buffer
	u32le(&buf, uint32(len(voxels)))
	for _, v := range voxels {
		buf.Write(v[:])
	}
	return voxChunk("XYZI", buf.Bytes())
}

func shapeChunk(id, modelIndex int32) []byte {
	var buf bytes.Buffer
	i32le(&buf, id)
	voxDict(&buf)
	u32le(&buf, 1)
	i32le(&buf, modelIndex)
	voxDict(&buf)
	return voxChunk("nSHP", buf.Bytes())
}

func groupChunk(id int32, children ...int32) []byte {
	var buf bytes.Buffer
	i32le(&buf, id)
	voxDict(&buf)
	u32le(&buf, uint32(len(children)))
	for _, c := range children {
		i32le(&buf, c)
	}
	return voxChunk("nGRP", buf.Bytes())
}

// transformChunk builds an nTRN chunk. layerID < 0 means "no layer".
func transformChunk(id, childID, layerID int32, hidden bool, dictPairs ...string) []byte {
	var buf bytes.Buffer
	i32le(&buf, id)
	hiddenVal := "0"
	if hidden {
		hiddenVal = "1"
	}
	voxDict(&buf, "_hidden", hiddenVal)
	i32le(&buf, childID)
	u32le(&buf, 0) // reserved
	i32le(&buf, layerID)
	u32le(&buf, 1) // frame count
	voxDict(&buf, dictPairs...)
	return voxChunk("nTRN", buf.Bytes())
}

func layerChunk(id int32, hidden bool) []byte {
	var buf bytes.Buffer
	i32le(&buf, id)
	hiddenVal := "0"
	if hidden {
		hiddenVal = "1"
	}
	voxDict(&buf, "_hidden", hiddenVal)
	u32le(&buf, 0) // reserved
	return voxChunk("LAYR", buf.Bytes())
}

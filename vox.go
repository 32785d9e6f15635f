// Package voxflat is a streaming reader for the MagicaVoxel .vox
// binary scene format. A Scene is built once at Open time from a
// byte source; voxel payloads are re-read lazily from that source as
// callers drain ReadXYZRGBA/ReadXYZColorIndex in batches.
package voxflat

import (
	"image/color"
	"io"
	"os"
)

// Handle is an open .vox scene: the validated scene graph plus the
// resumable traversal state used by ReadXYZRGBA/ReadXYZColorIndex.
// Create one with OpenFile, OpenReader, or OpenMemory; release it with
// Close.
type Handle struct {
	scene *Scene
	trav  *traversal

	src    byteSource
	closer io.Closer // non-nil only if this Handle owns the stream
}

// OpenFile opens the named file and parses it as a .vox scene. The
// underlying file is closed when the returned Handle is closed.
func OpenFile(name string) (h *Handle, err error) {
	defer recoverError(&err)
	f, openErr := os.Open(name)
	if openErr != nil {
		failCause(ErrFileOpen, openErr)
	}
	return buildHandle(newStreamSource(f), f), nil
}

// OpenReader parses r as a .vox scene. r must remain valid until the
// returned Handle is closed; Close never closes r.
func OpenReader(r io.ReadSeeker) (h *Handle, err error) {
	defer recoverError(&err)
	return buildHandle(newStreamSource(r), nil), nil
}

// OpenMemory parses buf as a .vox scene. buf must remain valid and
// unmodified until the returned Handle is closed.
func OpenMemory(buf []byte) (h *Handle, err error) {
	defer recoverError(&err)
	return buildHandle(newMemorySource(buf), nil), nil
}

func buildHandle(src byteSource, closer io.Closer) *Handle {
	pf := parseVox(src)
	scene := buildScene(pf)
	return &Handle{
		scene:  scene,
		trav:   newTraversal(scene, src),
		src:    src,
		closer: closer,
	}
}

// Close releases the scene. If the Handle was opened with OpenFile, it
// also closes the underlying file.
func (h *Handle) Close() error {
	if h.closer != nil {
		return h.closer.Close()
	}
	return nil
}

// GetPalette returns h's palette, or the default palette if h is nil.
func (h *Handle) GetPalette() Palette {
	if h == nil {
		return DefaultPalette()
	}
	return h.scene.Palette
}

// CountVoxels returns the total number of visible voxels in h's scene.
func (h *Handle) CountVoxels() uint64 {
	return CountVoxels(h.scene)
}

// CalculateBounds returns h's scene's visible bounding box.
func (h *Handle) CalculateBounds() Bounds {
	return CalculateBounds(h.scene)
}

// ReadXYZRGBA fills xyz and rgba, which must be equal length, with up
// to len(xyz) more voxels from the scene in deterministic DFS order,
// returning how many were written. n < len(xyz) (including n == 0)
// signals end-of-stream or a sticky error; once read returns a
// non-nil error, every subsequent call returns the same error.
func (h *Handle) ReadXYZRGBA(xyz [][3]int32, rgba []color.RGBA) (n int, err error) {
	if h == nil {
		return 0, &Error{Kind: ErrInvalidArgument}
	}
	return h.trav.read(viewRGBA, xyz, rgba, nil)
}

// ReadXYZColorIndex is ReadXYZRGBA's palette-index counterpart: the
// same coordinates and the same traversal order, but each voxel's raw
// palette index instead of its resolved RGBA color.
func (h *Handle) ReadXYZColorIndex(xyz [][3]int32, colorIdx []uint8) (n int, err error) {
	if h == nil {
		return 0, &Error{Kind: ErrInvalidArgument}
	}
	return h.trav.read(viewColorIndex, xyz, nil, colorIdx)
}

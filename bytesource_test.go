package voxflat

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySourceGetAndSkip(t *testing.T) {
	s := newMemorySource([]byte("hello world"))
	assert.Equal(t, []byte("hello"), s.get(5))
	s.skip(1)
	assert.Equal(t, []byte("world"), s.get(5))
	assert.EqualValues(t, 11, s.readCount())
}

func TestMemorySourceGetPastEndFails(t *testing.T) {
	s := newMemorySource([]byte("abc"))
	var caught *Error
	func() {
		defer func() {
			if r := recover(); r != nil {
				caught = r.(*Error)
			}
		}()
		s.get(4)
	}()
	require.NotNil(t, caught)
	assert.Equal(t, ErrUnexpectedEOF, caught.Kind)
}

func TestMemorySourceTryGet(t *testing.T) {
	s := newMemorySource([]byte("abcd"))
	b, ok := s.tryGet(4)
	assert.True(t, ok)
	assert.Equal(t, []byte("abcd"), b)

	_, ok = s.tryGet(1)
	assert.False(t, ok)
}

func TestMemorySourceBookmarkRoundtrip(t *testing.T) {
	s := newMemorySource([]byte("0123456789"))
	s.get(3)
	m := s.bookmark()
	s.get(4)
	s.seekTo(m)
	assert.Equal(t, []byte("345"), s.get(3))
}

func TestStreamSourceMatchesMemorySource(t *testing.T) {
	data := []byte("the quick brown fox")
	ms := newMemorySource(append([]byte(nil), data...))
	ss := newStreamSource(bytes.NewReader(append([]byte(nil), data...)))

	assert.Equal(t, ms.get(3), ss.get(3))
	m := ss.bookmark()
	assert.Equal(t, ms.get(6), ss.get(6))
	ss.seekTo(m)
	assert.Equal(t, []byte(" quick"), ss.get(6))

	_, ok := ss.tryGet(100)
	assert.False(t, ok)
}

package store

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreGetFull(t *testing.T) {
	m := NewMemoryStore()
	m.Put("clip.mp4", []byte("0123456789"))

	obj, err := m.Get(context.Background(), "clip.mp4", nil)
	require.NoError(t, err)
	defer obj.Body.Close()

	assert.Equal(t, int64(10), obj.Size)
	assert.Equal(t, int64(10), obj.ContentLength)

	body, err := io.ReadAll(obj.Body)
	require.NoError(t, err)
	assert.Equal(t, "0123456789", string(body))
}

func TestMemoryStoreGetRange(t *testing.T) {
	m := NewMemoryStore()
	m.Put("clip.mp4", []byte("0123456789"))

	obj, err := m.Get(context.Background(), "clip.mp4", &ByteRange{Start: 2, End: 5})
	require.NoError(t, err)
	defer obj.Body.Close()

	assert.Equal(t, int64(10), obj.Size)
	assert.Equal(t, int64(4), obj.ContentLength)

	body, err := io.ReadAll(obj.Body)
	require.NoError(t, err)
	assert.Equal(t, "2345", string(body))
}

func TestMemoryStoreGetRangeTruncatesPastEnd(t *testing.T) {
	m := NewMemoryStore()
	m.Put("clip.mp4", []byte("0123456789"))

	obj, err := m.Get(context.Background(), "clip.mp4", &ByteRange{Start: 8, End: 99})
	require.NoError(t, err)
	defer obj.Body.Close()

	body, err := io.ReadAll(obj.Body)
	require.NoError(t, err)
	assert.Equal(t, "89", string(body))
	assert.Equal(t, int64(2), obj.ContentLength)
	assert.Equal(t, int64(10), obj.Size)
}

func TestMemoryStoreGetRangeUnsatisfiable(t *testing.T) {
	m := NewMemoryStore()
	m.Put("clip.mp4", []byte("0123456789"))

	_, err := m.Get(context.Background(), "clip.mp4", &ByteRange{Start: 10, End: 20})
	assert.ErrorIs(t, err, ErrRangeNotSatisfiable)

	_, err = m.Get(context.Background(), "clip.mp4", &ByteRange{Start: 5, End: 2})
	assert.ErrorIs(t, err, ErrRangeNotSatisfiable)
}

func TestMemoryStoreGetMissing(t *testing.T) {
	m := NewMemoryStore()

	_, err := m.Get(context.Background(), "nope.mp4", nil)
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestMemoryStoreHead(t *testing.T) {
	m := NewMemoryStore()
	m.Put("clip.mp4", []byte("x"))

	ok, err := m.Head(context.Background(), "clip.mp4")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = m.Head(context.Background(), "nope.mp4")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestByteRangeHeaderValue(t *testing.T) {
	br := ByteRange{Start: 0, End: 99}
	assert.Equal(t, "bytes=0-99", br.HeaderValue())
}

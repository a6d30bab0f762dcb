package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arrio/arrio/buffer"
	"github.com/arrio/arrio/dtype"
)

type fakeCodec struct {
	name string
	exts []string
}

func (f *fakeCodec) Peek(string) (dtype.Typeinfo, error)  { return dtype.Typeinfo{}, nil }
func (f *fakeCodec) Load(string) (*buffer.Buffer, error)  { return nil, nil }
func (f *fakeCodec) Save(string, *buffer.Buffer) error    { return nil }
func (f *fakeCodec) Name() string                         { return f.name }
func (f *fakeCodec) Extensions() []string                 { return f.exts }

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry()
	mat := &fakeCodec{name: "matlab.array.binary", exts: []string{".mat"}}
	r.Register(mat)

	c, err := r.ByExtension("/data/values.mat")
	require.NoError(t, err)
	assert.Same(t, mat, c.(*fakeCodec))

	c, err = r.ByName("matlab.array.binary")
	require.NoError(t, err)
	assert.Same(t, mat, c.(*fakeCodec))
}

func TestRegistryUnsupported(t *testing.T) {
	r := NewRegistry()
	_, err := r.ByExtension("values.npz")
	require.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = r.ByName("nope")
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestRegistryCaseSensitiveExtension(t *testing.T) {
	r := NewRegistry()
	r.Register(&fakeCodec{name: "a", exts: []string{".mat"}})
	_, err := r.ByExtension("values.MAT")
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestRegistryLastRegistrationWins(t *testing.T) {
	r := NewRegistry()
	first := &fakeCodec{name: "first", exts: []string{".bin"}}
	second := &fakeCodec{name: "second", exts: []string{".bin"}}
	r.Register(first)
	r.Register(second)

	c, err := r.ByExtension("x.bin")
	require.NoError(t, err)
	assert.Equal(t, "second", c.Name())

	// Both remain resolvable by name.
	_, err = r.ByName("first")
	require.NoError(t, err)
}

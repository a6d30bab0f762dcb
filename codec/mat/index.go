package mat

import (
	"io"
	"regexp"
	"strconv"

	"github.com/arrio/arrio/buffer"
	"github.com/arrio/arrio/codec"
	"github.com/arrio/arrio/dtype"
	"github.com/arrio/arrio/matfile"
)

// indexedName matches the naming convention for indexed variables within
// one container file: array_<N>, N a base-10 non-negative integer (leading
// zeros permitted). Any other name is ignored by the scan.
var indexedName = regexp.MustCompile(`^array_(\d+)$`)

// Entry is one indexed variable: its stored name and descriptor.
type Entry struct {
	Name string
	Info dtype.Typeinfo
}

// PeekSet scans the file's variables (metadata only) until the first one
// matching the indexed naming convention and returns its descriptor. It
// fails with ErrUninitialized when no variable matches.
func (c *Codec) PeekSet(path string) (dtype.Typeinfo, error) {
	f, err := matfile.Open(path)
	if err != nil {
		return dtype.Typeinfo{}, codec.NewFileNotReadable(path, err)
	}
	defer f.Close()

	for {
		v, err := f.ReadNextInfo()
		if err == io.EOF {
			return dtype.Typeinfo{}, codec.ErrUninitialized
		}
		if err != nil {
			return dtype.Typeinfo{}, err
		}
		if indexedName.MatchString(v.Name) {
			return describe(v)
		}
	}
}

// ListVariables builds the full ordinal index of one container file.
//
// The first matching variable is read fully to establish a reliable
// descriptor; every further match is scanned metadata-only and recorded
// under the same cached descriptor rather than one derived from its own
// metadata. This trusts shape and type continuity across the set in
// exchange for a much cheaper scan. A later variable with an already seen
// ordinal overwrites the earlier entry.
func (c *Codec) ListVariables(path string) (map[int]Entry, error) {
	f, err := matfile.Open(path)
	if err != nil {
		return nil, codec.NewFileNotReadable(path, err)
	}
	defer f.Close()

	// find the anchor variable with a full read
	var anchor *matfile.Variable
	for {
		v, err := f.ReadNext()
		if err == io.EOF {
			return nil, codec.ErrUninitialized
		}
		if err != nil {
			return nil, err
		}
		if indexedName.MatchString(v.Name) {
			anchor = v
			break
		}
	}

	cached, err := describe(anchor)
	if err != nil {
		return nil, err
	}

	entries := map[int]Entry{}
	id, err := parseOrdinal(anchor.Name)
	if err != nil {
		return nil, err
	}
	entries[id] = Entry{Name: anchor.Name, Info: cached}

	for {
		v, err := f.ReadNextInfo()
		if err == io.EOF {
			return entries, nil
		}
		if err != nil {
			return nil, err
		}
		if !indexedName.MatchString(v.Name) {
			continue
		}
		id, err := parseOrdinal(v.Name)
		if err != nil {
			return nil, err
		}
		entries[id] = Entry{Name: v.Name, Info: cached}
	}
}

// WriteIndexed appends the buffer as variable array_<id>, creating the file
// when absent. Existing variables are never rewritten; a duplicate ordinal
// shadows the earlier one on listing.
func (c *Codec) WriteIndexed(path string, id int, b *buffer.Buffer) error {
	if id < 0 {
		return codec.ErrUninitialized
	}
	v, err := buildVariable("array_"+strconv.Itoa(id), b)
	if err != nil {
		return err
	}

	var opts []matfile.WriterOption
	if c.compress {
		opts = append(opts, matfile.WithCompression())
	}
	w, err := matfile.Append(path, opts...)
	if err != nil {
		return codec.NewFileNotReadable(path, err)
	}
	if err := w.Write(v); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func parseOrdinal(name string) (int, error) {
	m := indexedName.FindStringSubmatch(name)
	return strconv.Atoi(m[1])
}

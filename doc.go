// Package arrio provides typed, multi-format persistence for 1- to
// 4-dimensional arrays.
//
// An Array is either inline (its data resident in an exclusively owned
// buffer) or external (backed by a file plus the codec responsible for that
// file's format, with only the shape/type metadata cached in memory).
// Data-reading operations on an external array load it through the codec;
// saving routes the buffer through the codec selected by the destination
// filename's extension.
//
// # Quick start
//
//	a, _ := arrio.FromFloat64s([]int{2, 3}, []float64{1, 2, 3, 4, 5, 6})
//	_ = a.Save("values.mat") // a is now external, backed by values.mat
//
//	b, _ := arrio.FromFile("values.mat") // metadata only, no data read
//	_ = b.Load()                         // materialize
//	vals, _ := b.Float64s()
//
// # Formats
//
// Importing this package registers three codecs in the default registry:
// the MATLAB-compatible container (".mat"), the legacy flat-binary format
// (".bindata") and the self-describing tensor archive (".tsr"). Additional
// formats implement codec.Codec and register themselves; neither the Array
// type nor the registry changes.
//
// # Remote files
//
// Array files kept in object storage are fetched through a
// blobstore.BlobStore with Fetch, which caches them locally and opens them
// like any other file.
//
// # Concurrency
//
// Operations are synchronous and single-threaded. Confine an Array (and any
// two Arrays referencing the same file) to one goroutine or serialize access
// externally. The codec registry is populated during init and read-only
// afterwards, so lookups need no synchronization.
package arrio

import (
	_ "github.com/arrio/arrio/codec/mat"
	_ "github.com/arrio/arrio/codec/t3"
	_ "github.com/arrio/arrio/codec/tsr"
)

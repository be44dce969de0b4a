package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// SetSerialized serializes data and puts it into contract storage.
func SetSerialized(ctx storage.Context, key any, value any) {
	data := std.Serialize(value)
	storage.Put(ctx, key, data)
}

// HasPrefix checks whether contract storage contains at least one item
// with the given key prefix.
func HasPrefix(ctx storage.Context, prefix []byte) bool {
	it := storage.Find(ctx, prefix, storage.KeysOnly)
	return iterator.Next(it)
}

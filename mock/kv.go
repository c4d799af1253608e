package mock

import (
	"context"
	"sync"

	"github.com/dosTaiyaki/linklist"
)

var _ linklist.KeyValue = (*KeyValue)(nil)

// KeyValue is a mock implementation of linklist.KeyValue.
type KeyValue struct {
	GetFn   func(ctx context.Context, key string) ([]byte, error)
	SetFn   func(ctx context.Context, key string, value []byte) error
	CloseFn func() error
}

func (kv *KeyValue) Get(ctx context.Context, key string) ([]byte, error) {
	return kv.GetFn(ctx, key)
}

func (kv *KeyValue) Set(ctx context.Context, key string, value []byte) error {
	return kv.SetFn(ctx, key, value)
}

func (kv *KeyValue) Close() error {
	return kv.CloseFn()
}

// NewMemoryKeyValue returns a KeyValue whose functions read and write a
// map. Tests can replace individual functions to inject failures.
func NewMemoryKeyValue() *KeyValue {
	var mu sync.Mutex
	data := make(map[string][]byte)
	return &KeyValue{
		GetFn: func(_ context.Context, key string) ([]byte, error) {
			mu.Lock()
			defer mu.Unlock()
			v, ok := data[key]
			if !ok {
				return nil, linklist.Errorf(linklist.ENOTFOUND, "key %q not found", key)
			}
			return append([]byte(nil), v...), nil
		},
		SetFn: func(_ context.Context, key string, value []byte) error {
			mu.Lock()
			defer mu.Unlock()
			data[key] = append([]byte(nil), value...)
			return nil
		},
		CloseFn: func() error { return nil },
	}
}

package handle

import (
	"cmp"
	"fmt"
	"unsafe"
)

// noCopy makes go vet's copylocks check flag handles copied by value.
// A by-value copy would duplicate a stake without counting it.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// comparePtr orders payloads by address. Go's collector does not move heap
// objects, so the order is stable for the lifetime of both payloads.
func comparePtr[T any](a, b *T) int {
	return cmp.Compare(uintptr(unsafe.Pointer(a)), uintptr(unsafe.Pointer(b)))
}

func formatPtr[T any](p *T) string {
	return fmt.Sprintf("%p", p)
}

func typeName[T any]() string {
	return fmt.Sprintf("%T", (*T)(nil))
}

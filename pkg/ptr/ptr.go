// Package ptr holds the single helper that Go keeps making us write.
package ptr

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

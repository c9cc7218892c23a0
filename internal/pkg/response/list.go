package response

// List returns items ready to be encoded as a JSON array.
// A nil slice becomes an empty one so the body is [] rather than null.
func List[T any](items []T) []T {
	if items == nil {
		return make([]T, 0)
	}
	return items
}

package utils

// Value dereferences v; nil yields the zero value
func Value[T any](v *T) T {
	var zero T
	if v != nil {
		return *v
	}
	return zero
}

func Ptr[T any](v T) *T {
	return &v
}

// Empty reports whether an optional token field is missing or blank
func Empty(s *string) bool {
	return s == nil || *s == ""
}

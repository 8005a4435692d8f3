package utils

func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

func Contains[T comparable](slice []T, item T) bool {
	return FindIndex(slice, item) >= 0
}

// Pick returns a if cond holds, b otherwise.
func Pick[T any](cond bool, a, b T) T {
	if cond {
		return a
	}
	return b
}

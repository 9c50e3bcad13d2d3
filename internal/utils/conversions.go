package utils

// ToStringSlice keeps the string elements of a decoded JSON array
func ToStringSlice(slice []any) []string {
	stringSlice := make([]string, 0)
	for _, v := range slice {
		if s, ok := v.(string); ok {
			stringSlice = append(stringSlice, s)
		}
	}
	return stringSlice
}

// FirstString returns the first string element, or fallback when there is none
func FirstString(slice []any, fallback string) string {
	if s := ToStringSlice(slice); len(s) > 0 {
		return s[0]
	}
	return fallback
}


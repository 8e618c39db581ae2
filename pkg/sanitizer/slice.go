package sanitizer

// NormalizeStringSlice maps items through normalizer, dropping empties and
// duplicates while preserving first-seen order.
func NormalizeStringSlice(items []string, normalizer Strategy) []string {
	if len(items) == 0 {
		return []string{}
	}

	seen := make(map[string]bool)
	result := make([]string, 0, len(items))

	for _, item := range items {
		normalized := normalizer(item)

		if normalized == "" {
			continue
		}

		if seen[normalized] {
			continue
		}

		seen[normalized] = true
		result = append(result, normalized)
	}

	return result
}

func NormalizeSpecialties(specialties []string) []string {
	return NormalizeStringSlice(specialties, TrimAndNormalize)
}

func NormalizeWorkingDays(days []string) []string {
	return NormalizeStringSlice(days, NormalizeDayToken)
}

package common

import "regexp"

// MatchRegex compiles pattern and reports whether it matches any of texts.
// An empty pattern matches everything. Returns an error if the pattern is
// invalid.
func MatchRegex(pattern string, texts ...string) (bool, error) {
	if pattern == "" {
		return true, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false, err
	}
	for _, text := range texts {
		if re.MatchString(text) {
			return true, nil
		}
	}
	return false, nil
}

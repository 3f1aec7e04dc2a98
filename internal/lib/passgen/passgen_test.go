package passgen

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var suggestionPattern = regexp.MustCompile(`^[a-z]+-[a-z]+-[1-9][0-9]$`)

func TestSuggest_Pattern(t *testing.T) {
	for i := 0; i < 100; i++ {
		s := Suggest()
		assert.Regexp(t, suggestionPattern, s)
		assert.GreaterOrEqual(t, len(s), 4)
	}
}

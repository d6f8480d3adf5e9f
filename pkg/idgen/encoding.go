package idgen

import (
	"fmt"
	"regexp"

	"github.com/outofforest/euid"
)

// RE is a (fragment of) a regular expression that matches a possible ID.
var RE = regexp.MustCompile(fmt.Sprintf("[%s]{%d}", euid.Alphabet, euid.EncodedSize))

// Find returns all the valid identifiers found in text, in order of appearance.
// Candidates failing checksum verification are skipped.
func Find(text string) []euid.EUID {
	var ids []euid.EUID
	for _, m := range RE.FindAllString(text, -1) {
		if id, err := euid.Parse(m); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

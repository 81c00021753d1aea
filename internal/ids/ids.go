// Package ids generates record identifiers of the form
// <prefix>_<unix millis>_<random hex>.
package ids

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Prefixes used for the persisted collections.
const (
	PrefixUser       = "user"
	PrefixNote       = "note"
	PrefixQuiz       = "quiz"
	PrefixAssignment = "assign"
	PrefixSubmission = "sub"
)

var now = time.Now

// New returns an identifier that is unique for practical purposes. The random
// part is taken from a v4 UUID, so two calls in the same millisecond collide
// with probability 2^-48. Identifiers are not secrets.
func New(prefix string) string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return prefix + "_" + strconv.FormatInt(now().UnixMilli(), 10) + "_" + random
}

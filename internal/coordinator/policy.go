package coordinator

import (
	"strings"

	"github.com/spacekeep/capture-service/internal/domain"
)

// Policy decides whether a draft is savable. Implementations must be
// pure: no side effects, no I/O.
type Policy interface {
	IsSavable(fields map[string]string) bool
}

// TitlePolicy is the default policy: the trimmed title must be
// non-empty, every other field is unconstrained.
type TitlePolicy struct{}

func (TitlePolicy) IsSavable(fields map[string]string) bool {
	return strings.TrimSpace(fields[domain.FieldTitle]) != ""
}

var _ Policy = TitlePolicy{}

// Package none is the spell backend used when spelling is switched off. Every check fails,
// so documents are scored with spelling marked unavailable.
package none

import (
	"context"
	"errors"

	"github.com/kirillkom/resume-quality-checker/internal/core/domain"
)

const Name = "none"

var ErrDisabled = errors.New("spell checking disabled")

type Checker struct{}

func New() Checker {
	return Checker{}
}

func (Checker) Name() string {
	return Name
}

func (Checker) Check(context.Context, string) (domain.SpellingReport, error) {
	return domain.SpellingReport{}, ErrDisabled
}

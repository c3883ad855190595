package providers

import (
	"errors"
	"strings"

	"github.com/gookit/validate"

	"futsald/internal/structures"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if v.Validate() {
		return nil
	}

	var msgs []string
	for field, errs := range v.Errors.All() {
		for _, msg := range errs {
			msgs = append(msgs, field+": "+msg)
		}
	}
	return errors.New("invalid config: " + strings.Join(msgs, "; "))
}

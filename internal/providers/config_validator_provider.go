package providers

import (
	"errors"
	"github.com/gookit/validate"
	"puzzlestats/internal/structures"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

// Validate checks every config section against its struct tags.
func (v *CnfValidator) Validate() error {
	sections := []interface{}{
		&v.conf.WebServer,
		&v.conf.Persistence,
		&v.conf.Logger,
		&v.conf.Game,
	}
	for _, s := range sections {
		val := validate.Struct(s)
		if !val.Validate() {
			return errors.New(val.Errors.One())
		}
	}
	if v.conf.Cache.Enabled && v.conf.Cache.Size <= 0 {
		return errors.New("cache.size must be positive when the cache is enabled")
	}
	return nil
}

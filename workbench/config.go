package workbench

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/go-playground/validator/v10"
)

// Config controls how definitions are loaded.
type Config struct {
	// MinimizeOnLoad replaces every loaded automaton by its minimized form.
	MinimizeOnLoad bool `json:"minimizeOnLoad" yaml:"minimizeOnLoad"`
	// RemoveDeadStates also drops dead states when minimizing.
	RemoveDeadStates bool `json:"removeDeadStates" yaml:"removeDeadStates"`
	// Concurrency bounds the number of automatons MinimizeAll works on at once.
	Concurrency int `json:"concurrency" yaml:"concurrency" validate:"min=1,max=1024"`
}

// DefaultConfig minimizes on load, keeps dead states and uses one worker per CPU.
func DefaultConfig() Config {
	return Config{
		MinimizeOnLoad: true,
		Concurrency:    runtime.GOMAXPROCS(0),
	}
}

var configValidator = validator.New()

// Validate checks the bounds of every field.
func (c Config) Validate() error {
	if err := configValidator.Struct(c); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) && len(ve) > 0 {
			fe := ve[0]
			return fmt.Errorf("invalid config: %s must satisfy %s=%s, got %v", fe.Field(), fe.Tag(), fe.Param(), fe.Value())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

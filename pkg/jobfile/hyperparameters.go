// SPDX-License-Identifier: MPL-2.0

package jobfile

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	// ErrInvalidHyperparameterKey is the sentinel error wrapped by InvalidHyperparameterKeyError.
	ErrInvalidHyperparameterKey = errors.New("invalid hyperparameter key")

	// ErrUnsupportedHyperparameterValue is the sentinel error wrapped by
	// UnsupportedHyperparameterValueError.
	ErrUnsupportedHyperparameterValue = errors.New("unsupported hyperparameter value")

	// hyperparameterKeyRegex validates hyperparameter keys. Keys become
	// command-line flags verbatim, so they must start with a letter and may
	// contain letters, digits, underscores, dashes, and dots.
	hyperparameterKeyRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_.-]*$`)
)

type (
	// Hyperparameters is the named parameter mapping supplied by the caller.
	// Each key maps to exactly one scalar value (string, bool, int, or float).
	// The mapping is immutable during a launch; keys are unique by construction.
	Hyperparameters map[string]any

	// InvalidHyperparameterKeyError is returned when a key cannot become a
	// well-formed command-line flag.
	InvalidHyperparameterKeyError struct {
		Key string
	}

	// UnsupportedHyperparameterValueError is returned when a value is not a
	// scalar and therefore cannot be serialized as a command-line token.
	UnsupportedHyperparameterValueError struct {
		Key   string
		Value any
	}
)

// Error implements the error interface.
func (e *InvalidHyperparameterKeyError) Error() string {
	return fmt.Sprintf("invalid hyperparameter key %q (must match [A-Za-z][A-Za-z0-9_.-]*)", e.Key)
}

// Unwrap returns ErrInvalidHyperparameterKey for errors.Is compatibility.
func (e *InvalidHyperparameterKeyError) Unwrap() error { return ErrInvalidHyperparameterKey }

// Error implements the error interface.
func (e *UnsupportedHyperparameterValueError) Error() string {
	return fmt.Sprintf("hyperparameter %q has unsupported value of type %T (scalar required)", e.Key, e.Value)
}

// Unwrap returns ErrUnsupportedHyperparameterValue for errors.Is compatibility.
func (e *UnsupportedHyperparameterValueError) Unwrap() error {
	return ErrUnsupportedHyperparameterValue
}

// SortedKeys returns the keys in lexicographic order. Go map iteration order
// is randomized, so every consumer that derives external state (argv, env)
// must go through this to keep the convention deterministic.
func (h Hyperparameters) SortedKeys() []string {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// StringValue serializes the value for key as a single command-line token.
// Returns an UnsupportedHyperparameterValueError for non-scalar values.
func (h Hyperparameters) StringValue(key string) (string, error) {
	return formatScalar(key, h[key])
}

// Validate checks every key and value, returning all problems found.
func (h Hyperparameters) Validate() []error {
	var errs []error
	seen := make(map[string]string, len(h))
	for _, key := range h.SortedKeys() {
		if !hyperparameterKeyRegex.MatchString(key) {
			errs = append(errs, &InvalidHyperparameterKeyError{Key: key})
		}
		if _, err := formatScalar(key, h[key]); err != nil {
			errs = append(errs, err)
		}

		// Distinct keys must stay distinct after the SM_HP_<KEY> transform
		// (uppercase, '-' and '.' folded to '_').
		suffix := EnvSuffixForKey(key)
		if prev, ok := seen[suffix]; ok {
			errs = append(errs, fmt.Errorf("hyperparameters %q and %q collide on environment variable suffix %q", prev, key, suffix))
		} else {
			seen[suffix] = key
		}
	}
	return errs
}

// EnvSuffixForKey returns the uppercase transform used in SM_HP_<KEY>:
// '-' and '.' fold to '_'. Distinct valid keys may collide here, which
// Validate reports as an error.
func EnvSuffixForKey(key string) string {
	upper := strings.ToUpper(key)
	upper = strings.ReplaceAll(upper, "-", "_")
	return strings.ReplaceAll(upper, ".", "_")
}

// formatScalar converts a decoded CUE scalar into its token form. CUE decodes
// numbers into int/int64/float64 depending on the value, so all three are
// handled explicitly.
func formatScalar(key string, value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32), nil
	default:
		return "", &UnsupportedHyperparameterValueError{Key: key, Value: value}
	}
}

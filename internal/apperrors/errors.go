package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrProvider indicates that a reachable rate provider returned no usable data.
// The fetch orchestrator absorbs this error and moves on to the next provider;
// it is never surfaced to API callers.
var ErrProvider = errors.New("provider error")

// ErrConfiguration indicates a structurally broken provider configuration
// (unknown resource type, malformed endpoint description). It signals an
// operator mistake and always propagates.
var ErrConfiguration = errors.New("configuration error")

// ErrDataIntegrity indicates corrupted or inconsistent rate data: a zero rate
// used as a divisor, a missing rebasing denominator in stored data, or a
// provider returning a currency code the system does not know. It always
// propagates.
var ErrDataIntegrity = errors.New("data integrity error")

/*
Copyright 2025 Trident Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package uri

import "errors"

var (
	// ErrInvalidEncoding reports input that could not be decoded by the
	// preprocessor's decoder.
	ErrInvalidEncoding = errors.New("invalid multibyte encoding")
	// ErrSyntax reports a string the grammar rejects.
	ErrSyntax = errors.New("invalid URI syntax")
	// ErrMerge reports a reference that could not be resolved against its
	// base.
	ErrMerge = errors.New("cannot resolve against base")
	// ErrComponent reports a component that could not be read from a URI,
	// which only happens once the URI has been destroyed.
	ErrComponent = errors.New("component unavailable")
)

var errDestroyed = errors.New("use of destroyed URI")

// Error describes a failed operation. Kind is one of the Err* values of this
// package and Err is the underlying cause.
type Error struct {
	Op   string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Op + ": " + e.Kind.Error()
	}
	return e.Op + ": " + e.Kind.Error() + ": " + e.Err.Error()
}

// Is matches the kind of the error.
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

// Unwrap returns the cause of the error.
func (e *Error) Unwrap() error {
	return e.Err
}

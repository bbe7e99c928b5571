/*
   Copyright 2025 The DIRPX Authors.

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

package apis

// Getter reads an accessor property. this is the receiver the read was
// performed on (nil when the getter is called detached).
type Getter func(this any) (any, error)

// Setter writes an accessor property.
type Setter func(this any, value any) error

// PropertyDescriptor describes a single own property.
//
// A data descriptor has a non-nil Value; an accessor descriptor has Get
// and/or Set. Value is a thunk rather than a plain field so that a derived
// descriptor can compute the value on read instead of at construction.
type PropertyDescriptor struct {
	// Value yields the stored value of a data property.
	Value Deferred
	// Get is the getter of an accessor property.
	Get Getter
	// Set is the setter of an accessor property.
	Set Setter

	Writable     bool
	Enumerable   bool
	Configurable bool
}

// NewDataDescriptor returns a writable, enumerable, configurable data
// descriptor holding v.
func NewDataDescriptor(v any) *PropertyDescriptor {
	return &PropertyDescriptor{
		Value:        func() (any, error) { return v, nil },
		Writable:     true,
		Enumerable:   true,
		Configurable: true,
	}
}

// NewAccessorDescriptor returns an enumerable, configurable accessor
// descriptor. Either get or set may be nil.
func NewAccessorDescriptor(get Getter, set Setter) *PropertyDescriptor {
	return &PropertyDescriptor{
		Get:          get,
		Set:          set,
		Enumerable:   true,
		Configurable: true,
	}
}

// IsData reports whether d describes a data property.
func (d *PropertyDescriptor) IsData() bool {
	return d != nil && d.Value != nil
}

// IsAccessor reports whether d describes an accessor property.
func (d *PropertyDescriptor) IsAccessor() bool {
	return d != nil && d.Value == nil && (d.Get != nil || d.Set != nil)
}

// Clone returns a shallow copy of d.
func (d *PropertyDescriptor) Clone() *PropertyDescriptor {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}

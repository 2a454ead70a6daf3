// This file is part of GopherDMG.
//
// GopherDMG is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherDMG is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherDMG.  If not, see <https://www.gnu.org/licenses/>.

package prefs

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

// Value represents the actual Go preference value.
type Value interface{}

// pref is implemented by all the preference types in the package.
type pref interface {
	fmt.Stringer
	Set(value Value) error
	Get() Value
	Reset() error
	freeze()
}

// Frozen is the error pattern returned when an attempt is made to set a
// preference that has been frozen.
const Frozen = "prefs: value is frozen"

// frozen is embedded in each preference type.
type frozen struct {
	frozen atomic.Bool
}

func (f *frozen) freeze() {
	f.frozen.Store(true)
}

func (f *frozen) isFrozen() error {
	if f.frozen.Load() {
		return errors.New(Frozen)
	}
	return nil
}

// Bool implements a boolean type in the prefs system.
type Bool struct {
	frozen
	value    atomic.Value // bool
	hookPost func(value Value) error
}

func (p *Bool) String() string {
	return fmt.Sprintf("%v", p.Get())
}

// Set new value to Bool type. New value must be of type bool or string. A
// string value of anything other than "true" (case insensitive) will set the
// value to false.
func (p *Bool) Set(v Value) error {
	if err := p.isFrozen(); err != nil {
		return err
	}

	var nv bool
	switch v := v.(type) {
	case bool:
		nv = v
	case string:
		nv = strings.ToLower(strings.TrimSpace(v)) == "true"
	default:
		return fmt.Errorf("prefs: cannot convert %T to prefs.Bool", v)
	}

	p.value.Store(nv)

	if p.hookPost != nil {
		return p.hookPost(nv)
	}

	return nil
}

// Get returns the raw pref value.
func (p *Bool) Get() Value {
	ov := p.value.Load()
	if ov == nil {
		return false
	}
	return ov.(bool)
}

// Value returns the pref as a bool.
func (p *Bool) Value() bool {
	return p.Get().(bool)
}

// Reset sets the boolean value to false.
func (p *Bool) Reset() error {
	return p.Set(false)
}

// SetHookPost sets the callback function to be called just after the value is
// changed.
func (p *Bool) SetHookPost(f func(value Value) error) {
	p.hookPost = f
}

// String implements a string type in the prefs system.
type String struct {
	frozen
	value    atomic.Value // string
	hookPre  func(value Value) error
	hookPost func(value Value) error
}

func (p *String) String() string {
	ov := p.value.Load()
	if ov == nil {
		return ""
	}
	return ov.(string)
}

// Set new value to String type. New value must be of type string. Leading
// and trailing white space is removed.
func (p *String) Set(v Value) error {
	if err := p.isFrozen(); err != nil {
		return err
	}

	nv, ok := v.(string)
	if !ok {
		return fmt.Errorf("prefs: cannot convert %T to prefs.String", v)
	}
	nv = strings.TrimSpace(nv)

	if p.hookPre != nil {
		if err := p.hookPre(nv); err != nil {
			return err
		}
	}

	p.value.Store(nv)

	if p.hookPost != nil {
		return p.hookPost(nv)
	}

	return nil
}

// Get returns the raw pref value.
func (p *String) Get() Value {
	return p.String()
}

// Reset sets the string value to the empty string.
func (p *String) Reset() error {
	return p.Set("")
}

// SetHookPre sets the callback function to be called just before the value is
// changed. If the callback returns an error the value is not changed.
func (p *String) SetHookPre(f func(value Value) error) {
	p.hookPre = f
}

// SetHookPost sets the callback function to be called just after the value is
// changed.
func (p *String) SetHookPost(f func(value Value) error) {
	p.hookPost = f
}

// Int implements an integer type in the prefs system.
type Int struct {
	frozen
	value    atomic.Value // int
	hookPre  func(value Value) error
	hookPost func(value Value) error
}

func (p *Int) String() string {
	return fmt.Sprintf("%d", p.Get().(int))
}

// Set new value to Int type. New value can be an int or string.
func (p *Int) Set(v Value) error {
	if err := p.isFrozen(); err != nil {
		return err
	}

	var nv int
	switch v := v.(type) {
	case int64:
		nv = int(v)
	case int32:
		nv = int(v)
	case int:
		nv = v
	case string:
		var err error
		nv, err = strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("prefs: cannot convert %T to prefs.Int: %w", v, err)
		}
	default:
		return fmt.Errorf("prefs: cannot convert %T to prefs.Int", v)
	}

	if p.hookPre != nil {
		if err := p.hookPre(nv); err != nil {
			return err
		}
	}

	p.value.Store(nv)

	if p.hookPost != nil {
		return p.hookPost(nv)
	}

	return nil
}

// Get returns the raw pref value.
func (p *Int) Get() Value {
	ov := p.value.Load()
	if ov == nil {
		return 0
	}
	return ov.(int)
}

// Value returns the pref as an int.
func (p *Int) Value() int {
	return p.Get().(int)
}

// Reset sets the int value to zero.
func (p *Int) Reset() error {
	return p.Set(0)
}

// SetHookPre sets the callback function to be called just before the value is
// changed. If the callback returns an error the value is not changed.
func (p *Int) SetHookPre(f func(value Value) error) {
	p.hookPre = f
}

// SetHookPost sets the callback function to be called just after the value is
// changed.
func (p *Int) SetHookPost(f func(value Value) error) {
	p.hookPost = f
}

// Duration implements a time.Duration type in the prefs system.
type Duration struct {
	frozen
	value    atomic.Value // time.Duration
	hookPre  func(value Value) error
	hookPost func(value Value) error
}

func (p *Duration) String() string {
	return p.Value().String()
}

// Set new value to Duration type. New value can be a time.Duration or a
// string in the format accepted by time.ParseDuration().
func (p *Duration) Set(v Value) error {
	if err := p.isFrozen(); err != nil {
		return err
	}

	var nv time.Duration
	switch v := v.(type) {
	case time.Duration:
		nv = v
	case string:
		var err error
		nv, err = time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("prefs: cannot convert %T to prefs.Duration: %w", v, err)
		}
	default:
		return fmt.Errorf("prefs: cannot convert %T to prefs.Duration", v)
	}

	if p.hookPre != nil {
		if err := p.hookPre(nv); err != nil {
			return err
		}
	}

	p.value.Store(nv)

	if p.hookPost != nil {
		return p.hookPost(nv)
	}

	return nil
}

// Get returns the raw pref value.
func (p *Duration) Get() Value {
	return p.Value()
}

// Value returns the pref as a time.Duration.
func (p *Duration) Value() time.Duration {
	ov := p.value.Load()
	if ov == nil {
		return 0
	}
	return ov.(time.Duration)
}

// Reset sets the duration to zero.
func (p *Duration) Reset() error {
	return p.Set(time.Duration(0))
}

// SetHookPre sets the callback function to be called just before the value is
// changed. If the callback returns an error the value is not changed.
func (p *Duration) SetHookPre(f func(value Value) error) {
	p.hookPre = f
}

// SetHookPost sets the callback function to be called just after the value is
// changed.
func (p *Duration) SetHookPost(f func(value Value) error) {
	p.hookPost = f
}

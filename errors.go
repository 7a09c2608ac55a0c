/*
 * errors.go, part of molbuild.
 *
 * Copyright 2024 The molbuild developers
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package molbuild

//Kind classifies an Error. Every failure in the library belongs to exactly
//one of these classes, so callers can branch with errors.Is against the
//Err* values below without inspecting messages.
type Kind string

func (k Kind) Error() string { return string(k) }

//The failure classes of the library.
const (
	ErrInvalidArgument Kind = "molbuild: invalid argument"
	ErrLookup          Kind = "molbuild: not found"
	ErrNetwork         Kind = "molbuild: download failed"
	ErrParse           Kind = "molbuild: malformed data"
	ErrExecution       Kind = "molbuild: external program failed"
)

//Error is the error type returned by this package. The Decorate method
//allows adding information to the error as it is passed up the call stack
//without changing its type. Unwrap exposes the Kind, so errors.Is works
//against the Err* constants.
type Error struct {
	kind     Kind
	info     string
	deco     []string
	critical bool
}

func newError(kind Kind, info string) *Error {
	return &Error{kind: kind, info: info, critical: true}
}

//Error returns a string with an error message.
func (err *Error) Error() string {
	if err.info == "" {
		return string(err.kind)
	}
	return string(err.kind) + ": " + err.info
}

//Unwrap returns the Kind of the error, for use with errors.Is.
func (err *Error) Unwrap() error { return err.kind }

//Decorate adds dec to the decoration slice of the error and returns the
//resulting slice. An empty string only returns the current value.
func (err *Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical reports whether the error can be ignored.
func (err *Error) Critical() bool { return err.critical }

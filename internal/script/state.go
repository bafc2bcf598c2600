// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package script

import (
	"context"

	"github.com/samber/oops"
	lua "github.com/yuin/gopher-lua"
)

// safeLibrary is a Lua library that may be loaded into a sandboxed state.
type safeLibrary struct {
	name string
	fn   lua.LGFunction
}

// Safe: base, table, string, math. Blocked: os, io, debug, package.
func defaultSafeLibraries() []safeLibrary {
	return []safeLibrary{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	}
}

// unsafeBaseFunctions reach the filesystem or compile arbitrary chunks.
var unsafeBaseFunctions = []string{"dofile", "loadfile", "loadstring", "load"}

// StateFactory creates sandboxed Lua states.
type StateFactory struct {
	libraries []safeLibrary
}

// NewStateFactory creates a factory loading only the safe libraries.
func NewStateFactory() *StateFactory {
	return &StateFactory{libraries: defaultSafeLibraries()}
}

// NewState creates a fresh sandboxed state bound to ctx.
func (f *StateFactory) NewState(ctx context.Context) (*lua.LState, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})

	for _, lib := range f.libraries {
		if err := L.CallByParam(lua.P{
			Fn:      L.NewFunction(lib.fn),
			NRet:    0,
			Protect: true,
		}, lua.LString(lib.name)); err != nil {
			L.Close()
			return nil, oops.Code(CodeFailed).With("library", lib.name).Wrapf(err, "open library")
		}
	}
	for _, fn := range unsafeBaseFunctions {
		L.SetGlobal(fn, lua.LNil)
	}

	L.SetContext(ctx)
	return L, nil
}

package codegen

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"
)

// addBuiltins declares the libc functions the lowered code calls.
func addBuiltins(m *ir.Module) (ret map[string]*ir.Func) {
	ret = make(map[string]*ir.Func)

	funcs := []func(*ir.Module) (string, *ir.Func){
		addPrintf,
		addStrcmp,
	}
	for _, fn := range funcs {
		k, v := fn(m)
		ret[k] = v
	}

	return
}

func addPrintf(m *ir.Module) (string, *ir.Func) {
	fn := m.NewFunc("printf", types.I32, ir.NewParam("format", String))
	fn.Sig.Variadic = true

	return "printf", fn
}

func addStrcmp(m *ir.Module) (string, *ir.Func) {
	fn := m.NewFunc("strcmp", types.I32, ir.NewParam("a", String), ir.NewParam("b", String))

	return "strcmp", fn
}

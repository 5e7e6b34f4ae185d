package codegen

import (
	"encoding/json"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"

	"github.com/wyzer-lang/wyzer/ast"
)

// TypeInfoSymbol names the global holding the JSON encoded TypeInfo.
const TypeInfoSymbol = "__wyzer_types"

type TypeInfo struct {
	Functions map[string]string `json:"functions"`
}

func typeInfoOf(p *ast.Program) TypeInfo {
	t := TypeInfo{Functions: map[string]string{}}
	for _, fn := range p.Declarations {
		t.Functions[fn.Name] = fn.String()
	}
	return t
}

func registerTypeInfoWithModule(t TypeInfo, m *ir.Module) {
	data, err := json.Marshal(t)
	if err != nil {
		panic(err)
	}

	g := m.NewGlobalDef(TypeInfoSymbol, constant.NewCharArray(append(data, 0)))
	g.Immutable = true
}

// ParseTypeInfo decodes the contents of the type info global.
func ParseTypeInfo(data string) (t TypeInfo, err error) {
	err = json.Unmarshal([]byte(data), &t)
	return
}

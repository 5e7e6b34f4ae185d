// Package reader extracts the type info table from a built wyzer shared
// object.
package reader

import (
	"fmt"

	"github.com/coreos/pkg/dlopen"

	"github.com/wyzer-lang/wyzer/codegen"
)

import "C"

func ReadTypeInfo(from string) (string, error) {
	handle, err := dlopen.GetHandle([]string{from})
	if err != nil {
		return "", err
	}
	defer handle.Close()

	sym, err := handle.GetSymbolPointer(codegen.TypeInfoSymbol)
	if err != nil {
		return "", fmt.Errorf("%s: %w", from, err)
	}

	str := C.GoString((*C.char)(sym))
	return str, nil
}

// Read decodes the type info table of the shared object at path.
func Read(path string) (codegen.TypeInfo, error) {
	data, err := ReadTypeInfo(path)
	if err != nil {
		return codegen.TypeInfo{}, err
	}
	return codegen.ParseTypeInfo(data)
}

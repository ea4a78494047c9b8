// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

//go:build js && wasm

package main

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"syscall/js"

	"carvel.dev/yaml2json/pkg/cmd"
	"carvel.dev/yaml2json/pkg/cmd/ui"
	"carvel.dev/yaml2json/pkg/files"
)

type jsFunc func(js.Value, []js.Value) interface{}

func registerFunc(name string, fn jsFunc) {
	js.Global().Set(name, js.FuncOf(fn))
	fmt.Printf("Registered \"%s\" with Global.\n", name)
}

// convert is exposed as yaml2json(yamlString, pretty?) and returns the JSON
// output, with failed documents replaced by {"yaml-error": ...} objects.
func convert(this js.Value, args []js.Value) interface{} {
	if len(args) == 0 {
		return "expected YAML string argument"
	}

	opts := cmd.NewConvertOptions()
	opts.Output = "json"
	opts.Indent = 2
	opts.Pretty = len(args) > 1 && args[1].Truthy()

	err := opts.ErrorFlag.Set("json")
	if err != nil {
		return err.Error()
	}

	var stdout, stderr bytes.Buffer
	src := files.NewBytesSource("input.yml", []byte(args[0].String()))

	err = opts.RunWithSources(context.Background(), []files.Source{src}, ui.NewCustomWriterTTY(false, &stdout, &stderr))
	if err != nil {
		return strings.TrimSpace(stdout.String() + "\n" + err.Error())
	}
	return stdout.String()
}

func main() {
	registerFunc("yaml2json", convert)

	// Go-based WASM modules must remain running to be available to the runtime.
	<-make(chan int)
}

// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package pkg is the collection of packages that make up the implementation of yaml2json.

Packages are layered so that each depends on the others only as much as
required. In the inventory below, each package is named alongside its
coupling with the rest of the codebase:

	(# of dependents) => <package name> => (# of dependencies)

# Entry Point

yaml2json is built into three executable formats:

	./cmd/yaml2json            // a command-line tool
	./cmd/yaml2json-lambda     // an AWS Lambda function behind a load balancer
	./cmd/yaml2json-wasm       // a function registered with a browser's JS runtime

# Commands

The root command converts files, URLs and standard input; "serve" exposes the
same conversion over HTTP.

	(3) => pkg/cmd => (5)
	(1) => pkg/website => (0)
	(2) => pkg/files => (0)

# Splitting

The heart of yaml2json is a single-pass scanner that cuts a YAML stream into
the exact text of its documents without parsing them. It tracks just enough
lexical state (quoted scalars, block scalars, flow collections) to tell a
real "---" or "..." marker from one that is part of a value.

	(2) => pkg/yamlsplit => (1)
	(2) => pkg/filepos => (0)

# Conversion

Each document is decoded with the de facto standard YAML library
(https://github.com/go-yaml/yaml/tree/v3) and re-encoded as JSON or TOML.
Scanning and conversion run concurrently, one document apart.

	(2) => pkg/yaml2json => (4)
	(1) => pkg/orderedmap => (0)

# Utilities

	(3) => pkg/cmd/ui => (0)
	(2) => pkg/version => (0)
	(0) => pkg/filetests => (3)

# Dependencies

Each package's dependencies on other packages within this module are as follows
(if a package is not listed, it has no dependencies on other packages within
this module):

	pkg/cmd:
	- pkg/website
	- pkg/yaml2json
	- pkg/version
	- pkg/files
	- pkg/cmd/ui
	pkg/yaml2json:
	- pkg/yamlsplit
	- pkg/orderedmap
	- pkg/cmd/ui
	- pkg/filepos
	pkg/yamlsplit:
	- pkg/filepos
	pkg/filetests:
	- pkg/yaml2json
	- pkg/yamlsplit
	- pkg/version
*/
package pkg

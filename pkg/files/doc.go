// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package files provides primitives for enumerating and opening the YAML
streams to convert: local files and directories, standard input, HTTP URLs
and in-memory bytes.

Every Source is opened as an io.ReadCloser so that content is read lazily
while it is being split into documents, rather than loaded up front.
*/
package files

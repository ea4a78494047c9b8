// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package yamlsplit splits a stream of YAML into its individual documents without
parsing it.

A DocumentIterator reads lines from an io.Reader and yields one Document at a
time. Each Document holds the verbatim bytes of one document so that it can be
handed, unmodified, to a YAML deserializer. Concatenating every yielded
Document reproduces the input exactly.

Document markers ("---" and "...") are only honoured at the start of a line
and only outside of quoted and block scalars. To know where it is, the
iterator carries a Mode from one line to the next:

	Normal          not inside a multi-line scalar
	BlockScalar     inside the body of a "|" or ">" scalar
	SingleQuote     inside a '...' scalar spanning lines
	DoubleQuote     inside a "..." scalar spanning lines

Step is the single transition function: given the Mode at the start of a
line and the line itself, it reports the line's LineClass and the Mode at
the start of the next line.

Lines that precede a document's "---" marker (blank lines, comments and
"%" directives) belong to that document, as do directives in YAML.
*/
package yamlsplit

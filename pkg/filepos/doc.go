// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package filepos provides the concept of Position: a stream name (usually a file)
and line number within that stream.

Every document split out of a YAML stream remembers the Position of its first
line. The YAML deserializer only sees the one document, so the line numbers in
its errors are document relative; StreamLine turns them back into lines of the
original stream.

The zero-value of Position (can be created using NewUnknownPosition()) represents
a document whose origin is not known.
*/
package filepos

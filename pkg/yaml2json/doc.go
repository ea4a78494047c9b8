// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package yaml2json converts a stream of YAML documents into a stream of JSON
(or TOML) values, one output value per input document.

The stream is cut into documents by yamlsplit and each document is decoded on
its own, so a malformed document only costs its own output: the failure is
routed through an ErrorPrinter and conversion carries on with the next one.
*/
package yaml2json

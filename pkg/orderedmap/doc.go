// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package orderedmap provides a map implementation where the order of keys is
maintained (unlike the native Go map).

YAML mappings are decoded into this map so that the JSON emitted for a
document lists keys in the order they were written.
*/
package orderedmap

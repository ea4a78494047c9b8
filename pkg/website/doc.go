// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

// Package website serves conversion over HTTP: POST a YAML stream to /convert
// and receive one JSON value per document.
package website

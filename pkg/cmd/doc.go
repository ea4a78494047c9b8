// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package cmd is home to the full set of yaml2json's "commands" -- instances of cobra.Command
(not to be confused with ./cmd which contains the bootstrapping for executing yaml2json in various environments).

A cobra.Command is the starting point of execution.

For a list of commands run:

	$ yaml2json help

The root command converts the YAML streams named by its arguments (standard input when none are given).
*/
package cmd

// SPDX-License-Identifier: Apache-2.0
// Package errors defines the error kinds surfaced by firestarter.
package errors

import "errors"

var (
	// Resolution errors 🔍
	ErrJarNotFound      = errors.New("❌ jar not found")
	ErrFilesystemAccess = errors.New("❌ filesystem access failed")

	// Configuration errors 📄
	ErrConfigInvalid     = errors.New("❌ invalid configuration")
	ErrEnvironmentNotSet = errors.New("❌ environment variable not set")

	// Invocation errors 🚀
	ErrInvalidArgs = errors.New("❌ invalid arguments")
)

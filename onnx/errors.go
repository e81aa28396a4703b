// SPDX-License-Identifier: EPL-2.0

package onnx

import "errors"

var (
	// ErrModelNotFound indicates that the model file does not exist.
	ErrModelNotFound = errors.New("onnx: model file not found")

	// ErrNotInitialized indicates a session created before Init.
	ErrNotInitialized = errors.New("onnx: runtime environment is not initialized")

	// ErrInputSize indicates a signal whose length differs from the model input.
	ErrInputSize = errors.New("onnx: signal length does not match model input")

	// ErrClosed indicates a call on a closed session.
	ErrClosed = errors.New("onnx: session is closed")
)

// SPDX-License-Identifier: EPL-2.0

package onnx

import (
	"fmt"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

var (
	envMu   sync.Mutex
	envRefs int
)

// Init loads the ONNX Runtime shared library from libPath and initializes the
// process wide environment. An empty libPath keeps the library's default
// lookup. Calls are reference counted and each successful Init must be
// paired with Shutdown.
func Init(libPath string) error {
	envMu.Lock()
	defer envMu.Unlock()

	if envRefs > 0 {
		envRefs++
		return nil
	}

	if libPath != "" {
		ort.SetSharedLibraryPath(libPath)
	}
	if err := ort.InitializeEnvironment(); err != nil {
		return fmt.Errorf("onnx: initialize environment: %w", err)
	}
	envRefs = 1

	return nil
}

// Shutdown releases one Init reference and tears the environment down with
// the last one. Sessions must be closed first.
func Shutdown() error {
	envMu.Lock()
	defer envMu.Unlock()

	if envRefs == 0 {
		return nil
	}

	envRefs--
	if envRefs > 0 {
		return nil
	}

	if err := ort.DestroyEnvironment(); err != nil {
		return fmt.Errorf("onnx: destroy environment: %w", err)
	}

	return nil
}

// Initialized reports whether Init has succeeded and Shutdown has not yet
// released it.
func Initialized() bool {
	envMu.Lock()
	defer envMu.Unlock()

	return envRefs > 0
}

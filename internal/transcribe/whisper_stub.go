//go:build !cgo

package transcribe

import "fmt"

// newWhisperHandle without cgo reports the backend as unavailable, which
// the selector turns into a network-engine fallback. Keeps the module
// building on CGO_ENABLED=0.
func newWhisperHandle(modelPath string) (modelHandle, error) {
	return nil, fmt.Errorf("%w: whisper backend requires cgo", ErrUnavailable)
}

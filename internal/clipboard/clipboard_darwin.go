//go:build darwin

package clipboard

import "errors"

func selectBackend() (backend, error) {
	if _, err := lookPath("pbcopy"); err != nil {
		return nil, errors.New("missing pbcopy")
	}
	return cmdBackend{copyCmd: "pbcopy"}, nil
}

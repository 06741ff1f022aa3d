//go:build !linux

package nowplaying

import (
	"log"

	"mediarelay/internal/mediakey"
)

// Registrar is a no-op on platforms without a now-playing routing facility
// we can claim; the key-capture pathway still works there.
type Registrar struct{}

func New(_ func(func()), _ func(mediakey.Key)) *Registrar {
	return &Registrar{}
}

func (r *Registrar) Start() error {
	log.Println("Now-playing registration not supported on this platform.")
	return nil
}

func (r *Registrar) Stop() {}

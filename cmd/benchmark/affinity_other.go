//go:build !linux

package main

import "errors"

func pinToCore(int) error {
	return errors.New("core pinning not implemented on this platform")
}

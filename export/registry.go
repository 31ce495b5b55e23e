// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package export

import (
	"fmt"
	"image"
	"io"
	"sort"
	"sync"
)

// Encoder writes img to w in one image format.
type Encoder func(w io.Writer, img image.Image) error

// Format describes a registered export format.
type Format struct {
	// Name is the registry key, e.g. "png".
	Name string
	// Ext is the file extension without the dot.
	Ext string
	// MIMEType is sent as Content-Type by HTTP frontends.
	MIMEType string

	encode Encoder
}

// Registry state - protected by mutex for thread-safe access.
var (
	registryMu sync.RWMutex
	formats    = make(map[string]Format)
)

// Register registers an encoder under name, following the database/sql
// driver pattern. Built-in formats register themselves in init.
//
// Register panics if:
//   - enc is nil
//   - a format with the same name is already registered
func Register(name, ext, mimeType string, enc Encoder) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if enc == nil {
		panic("export: Register encoder is nil")
	}
	if _, dup := formats[name]; dup {
		panic("export: Register called twice for " + name)
	}
	formats[name] = Format{Name: name, Ext: ext, MIMEType: mimeType, encode: enc}
}

// Unregister removes a format from the registry.
// This is primarily useful for testing. Unknown names are a no-op.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(formats, name)
}

// Lookup returns the format registered under name.
func Lookup(name string) (Format, error) {
	registryMu.RLock()
	f, ok := formats[name]
	registryMu.RUnlock()

	if !ok {
		return Format{}, fmt.Errorf("%w %q", ErrUnknownFormat, name)
	}
	return f, nil
}

// Formats returns a sorted list of registered format names.
func Formats() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(formats))
	for name := range formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered checks if a format with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := formats[name]
	return ok
}

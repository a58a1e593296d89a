package utils

import (
	"crypto/rand"
	"encoding/hex"
	"path/filepath"
	"strings"
)

// NewID returns a short random identifier, unique enough for a single
// document session's annotation collection.
func NewID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	return hex.EncodeToString(b[:])
}

// AnnotatedOutputPath derives the default export path for an input PDF:
// "notes.pdf" becomes "notes_annotated.pdf" alongside the original.
func AnnotatedOutputPath(inputPath string) string {
	ext := filepath.Ext(inputPath)
	stem := strings.TrimSuffix(inputPath, ext)
	return stem + "_annotated" + ext
}

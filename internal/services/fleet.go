package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrInvalidStatus     = errors.New("unknown status")
	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrValidation        = errors.New("validation failed")
)

const (
	defaultPageLimit = 25
	maxPageLimit     = 100
)

// clampPage normalizes list pagination: limit defaults to 25, caps at
// 100, offset floors at 0.
func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// newNumber builds a human-readable document number like
// WO-20260115-A3F2. The random suffix keeps concurrent inserts off the
// unique index.
func newNumber(prefix string) string {
	suffix := make([]byte, 2)
	rand.Read(suffix)
	return fmt.Sprintf("%s-%s-%s", prefix, time.Now().Format("20060102"), strings.ToUpper(hex.EncodeToString(suffix)))
}

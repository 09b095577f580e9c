package utils

import (
	"io"

	"github.com/MrSnakeDoc/linkvault/internal/logger"
)

// Close closes c and ignores any error.
// Use for best-effort cleanup in defer where error handling is not critical.
func Close(c io.Closer) {
	_ = c.Close()
}

// MustClose closes c and logs any error under name.
func MustClose(c io.Closer, name string, log logger.Logger) {
	if err := c.Close(); err != nil {
		log.Warn("failed to close", logger.String("resource", name), logger.Error(err))
		return
	}
	log.Debug("closed", logger.String("resource", name))
}

// Closers closes a stack of resources in reverse order of Push.
type Closers struct {
	names []string
	items []io.Closer
}

// Push adds c to the stack.
func (s *Closers) Push(name string, c io.Closer) {
	s.names = append(s.names, name)
	s.items = append(s.items, c)
}

// CloseAll closes every pushed resource, newest first, logging failures.
func (s *Closers) CloseAll(log logger.Logger) {
	for i := len(s.items) - 1; i >= 0; i-- {
		MustClose(s.items[i], s.names[i], log)
	}
	s.names, s.items = nil, nil
}

package eventlog

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// ringCap bounds the in-memory history; the log file keeps everything.
const ringCap = 2000

var (
	mu    sync.Mutex
	lines []string
	file  *os.File
)

// Open attaches the file sink. The ring works without it, so a missing
// logs directory only costs file persistence.
func Open(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	mu.Lock()
	if file != nil {
		file.Close()
	}
	file = f
	mu.Unlock()
	return nil
}

// Logf records a timestamped event in the bounded ring and appends it to
// the log file. Process-scoped; no request owns the ring.
func Logf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	line := fmt.Sprintf("[%s] %s", time.Now().UTC().Format("2006-01-02 15:04:05"), msg)

	mu.Lock()
	lines = append(lines, line)
	if len(lines) > ringCap {
		lines = lines[len(lines)-ringCap:]
	}
	if file != nil {
		if _, err := file.WriteString(line + "\n"); err != nil {
			log.Printf("event log write failed: %v", err)
		}
	}
	mu.Unlock()

	log.Println(msg)
}

// Recent returns up to n of the newest events, oldest first.
func Recent(n int) []string {
	mu.Lock()
	defer mu.Unlock()
	if n <= 0 || n > len(lines) {
		n = len(lines)
	}
	out := make([]string, n)
	copy(out, lines[len(lines)-n:])
	return out
}

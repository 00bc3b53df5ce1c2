// Package rtreelog is a small thread-safe, leveled logger used as an
// optional observability hook by the rtree package. It is not specific to
// spatial indexing; it is a general-purpose logging utility, adapted from
// the logger used elsewhere in this codebase's lineage.
package rtreelog

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"
	"time"
)

// log message importance
const (
	Debug   int = 9 // temporary or possibly interesting
	Info    int = 7 // interesting
	Warning int = 5 // temporary or client error
	Error   int = 3 // permanent degradation
	Fatal   int = 1 // irrecoverable error
)

// fatalExitCode is the code Logger aborts the process with if a fatal-level
// message is logged.
const fatalExitCode int = 3

// Logger is a thread-safe, level-thresholded logger.
// Should not be dereferenced or moved as it contains a mutex.
type Logger struct {
	writeTo   io.Writer
	writeLock sync.Mutex
	Threshold int
}

// New creates a new Logger that only writes messages at or below level (the
// numerically lower levels are the more important ones: Fatal=1 ... Debug=9).
func New(writeTo io.Writer, level int) *Logger {
	return &Logger{writeTo: writeTo, Threshold: level}
}

func (l *Logger) prefixMessage(level int) {
	if l.Threshold < Debug {
		fmt.Fprint(l.writeTo, time.Now().Format("2006-01-02 15:04:05: "))
	}
	switch level {
	case Warning:
		fmt.Fprint(l.writeTo, "WARNING: ")
	case Error:
		fmt.Fprint(l.writeTo, "ERROR: ")
	case Fatal:
		if l.Threshold != Debug {
			fmt.Fprint(l.writeTo, "FATAL: ")
		}
	}
}

// Log writes the message if it passes the logger's importance threshold.
func (l *Logger) Log(level int, format string, args ...interface{}) {
	if l == nil || level > l.Threshold {
		return
	}
	l.writeLock.Lock()
	defer l.writeLock.Unlock()
	l.prefixMessage(level)
	if len(args) == 0 {
		fmt.Fprint(l.writeTo, format)
	} else {
		fmt.Fprintf(l.writeTo, format, args...)
	}
	fmt.Fprintln(l.writeTo)
	if level == Fatal {
		os.Exit(fatalExitCode)
	}
}

// Wrappers around Log()

func (l *Logger) Debug(format string, args ...interface{})   { l.Log(Debug, format, args...) }
func (l *Logger) Info(format string, args ...interface{})    { l.Log(Info, format, args...) }
func (l *Logger) Warning(format string, args ...interface{}) { l.Log(Warning, format, args...) }
func (l *Logger) Error(format string, args ...interface{})   { l.Log(Error, format, args...) }
func (l *Logger) Fatal(format string, args ...interface{})   { l.Log(Fatal, format, args...) }

// Composer lets you split a long message into multiple write statements
// while holding the lock. End the message by calling Close() or Finish().
type Composer struct {
	writeTo  io.Writer // nil if the level is below threshold
	heldLock *sync.Mutex
}

// Compose starts a composed message at the given level, returning a
// Composer that holds the logger's write lock until Close()/Finish().
func (l *Logger) Compose(level int) Composer {
	c := Composer{}
	if level <= l.Threshold {
		c.writeTo = l.writeTo
		c.heldLock = &l.writeLock
		l.writeLock.Lock()
		l.prefixMessage(level)
	}
	return c
}

// Write writes formatted text without a newline.
func (c *Composer) Write(format string, args ...interface{}) {
	if c.writeTo == nil {
		return
	}
	if len(args) == 0 {
		fmt.Fprint(c.writeTo, format)
	} else {
		fmt.Fprintf(c.writeTo, format, args...)
	}
}

// Close releases the lock on the logger.
func (c *Composer) Close() {
	if c.writeTo == nil {
		return
	}
	fmt.Fprintln(c.writeTo)
	c.heldLock.Unlock()
	c.writeTo = nil
}

// Finish writes a formatted line and then closes the composer.
func (c *Composer) Finish(format string, args ...interface{}) {
	c.Write(format, args...)
	c.Close()
}

// SiMultiple scales n down to Kilo, Mega, Giga, ..., or Yotta (at most
// maxUnit), rounding half up at the last step, and appends the unit letter. multipleOf can be 1000 or 1024 (or anything
// >= 256).
func SiMultiple(n, multipleOf uint64, maxUnit byte) string {
	var steps, rem uint64
	units := " KMGTPEZY"
	for n >= multipleOf && units[steps] != maxUnit {
		rem = n % multipleOf
		n /= multipleOf
		steps++
	}
	if rem%multipleOf >= multipleOf/2 {
		n++ // round the last
	}
	s := strconv.FormatUint(n, 10)
	if steps > 0 {
		s += units[steps : steps+1]
	}
	return s
}

// RoundDuration removes excessive precision for printing.
func RoundDuration(d, to time.Duration) string {
	d = d - (d % to)
	return d.String()
}

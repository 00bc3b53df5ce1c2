package rtreelog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogRespectsThreshold(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, Warning)

	l.Debug("should not appear")
	assert.Empty(t, buf.String())

	l.Warning("disk at %d%%", 90)
	assert.True(t, strings.Contains(buf.String(), "WARNING: disk at 90%"))
}

func TestComposeWritesOneMessage(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, Debug)

	c := l.Compose(Info)
	c.Write("part-a ")
	c.Write("part-b")
	c.Close()

	assert.True(t, strings.Contains(buf.String(), "part-a part-b"))
}

func TestSiMultiple(t *testing.T) {
	assert.Equal(t, "1K", SiMultiple(1000, 1000, 'Y'))
	assert.Equal(t, "999", SiMultiple(999, 1000, 'Y'))
}

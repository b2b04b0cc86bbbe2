package calendar

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
)

const (
	fallbackBase   = "https://meet.google.com/"
	slugLength     = 11
	base36Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// FallbackLinks produces meeting links that are stored when no calendar event
// could be created. The links are not registered with any provider.
type FallbackLinks struct {
	now func() time.Time
}

func NewFallbackLinks() *FallbackLinks {
	return &FallbackLinks{now: time.Now}
}

// Link returns https://meet.google.com/<random base36>-<base36 unix millis>.
// It is safe for concurrent use.
func (f *FallbackLinks) Link() string {
	var b strings.Builder

	b.WriteString(fallbackBase)
	for range slugLength {
		b.WriteByte(base36Alphabet[rand.IntN(len(base36Alphabet))])
	}
	b.WriteByte('-')
	b.WriteString(strconv.FormatInt(f.now().UnixMilli(), 36))

	return b.String()
}

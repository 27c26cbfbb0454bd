package serial

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const eventPrefix = "[EVT] "

// ErrNotEvent is returned by ParseEvent for lines that are not event records
var ErrNotEvent = errors.New("not an event line")

// Event is one decoded event ring record as printed by the controller
type Event struct {
	Name   string
	Second uint32
	Value1 uint32
	Value2 uint32
}

func (e Event) String() string {
	return fmt.Sprintf("%s t=%d v1=%d v2=%d", e.Name, e.Second, e.Value1, e.Value2)
}

// ParseEvent decodes a line of the form "[EVT] NAME t=S v1=A v2=B".
// Header and overflow lines of an event dump return ErrNotEvent.
func ParseEvent(line string) (Event, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(line), eventPrefix)
	if !ok {
		return Event{}, ErrNotEvent
	}
	fields := strings.Fields(rest)
	if len(fields) != 4 {
		return Event{}, ErrNotEvent
	}

	evt := Event{Name: fields[0]}
	for i, dst := range []*uint32{&evt.Second, &evt.Value1, &evt.Value2} {
		key, val, found := strings.Cut(fields[i+1], "=")
		if !found || key != [...]string{"t", "v1", "v2"}[i] {
			return Event{}, ErrNotEvent
		}
		n, err := strconv.ParseUint(val, 10, 32)
		if err != nil {
			return Event{}, fmt.Errorf("bad %s value %q: %w", key, val, err)
		}
		*dst = uint32(n)
	}
	return evt, nil
}

// Console splits the controller's debug output into lines
type Console struct {
	scanner *bufio.Scanner
}

// NewConsole reads lines from r; CRLF and LF endings are both accepted
func NewConsole(r io.Reader) *Console {
	return &Console{scanner: bufio.NewScanner(r)}
}

// ReadLine blocks for the next non-empty line. It returns io.EOF when the
// port closes.
func (c *Console) ReadLine() (string, error) {
	for c.scanner.Scan() {
		line := strings.TrimRight(c.scanner.Text(), "\r")
		if line != "" {
			return line, nil
		}
	}
	if err := c.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

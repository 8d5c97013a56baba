package main

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/l1jgo/arena/internal/core/event"
	"github.com/l1jgo/arena/internal/world"
	"go.uber.org/zap"
)

// readConsole turns stdin lines into input: "hold forward", "release jump",
// "look 40 -10", "attack", "attack mine", "alt". It runs on its own
// goroutine and only ever writes the input bucket.
func readConsole(r io.Reader, input *world.InputState, log *zap.Logger) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if err := applyCommand(sc.Text(), input); err != nil {
			log.Warn("console", zap.Error(err))
		}
	}
}

type commandError struct {
	line string
	msg  string
}

func (e *commandError) Error() string { return e.msg + ": " + strconv.Quote(e.line) }

func applyCommand(line string, input *world.InputState) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	switch fields[0] {
	case "hold", "release":
		if len(fields) != 2 {
			return &commandError{line, "usage: hold|release <action>"}
		}
		input.SetHeld(fields[1], fields[0] == "hold")
	case "look":
		if len(fields) != 3 {
			return &commandError{line, "usage: look <dx> <dy>"}
		}
		dx, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return &commandError{line, "bad dx"}
		}
		dy, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return &commandError{line, "bad dy"}
		}
		input.AddPointerDelta(dx, dy)
	case "attack":
		a := event.Action{Name: world.ActionAttack, Phase: event.ActionStart}
		if len(fields) > 1 {
			a.Payload = fields[1]
		}
		input.PushAction(a)
	case "alt":
		input.PushAction(event.Action{Name: world.ActionAltFire, Phase: event.ActionStart})
	default:
		return &commandError{line, "unknown command"}
	}
	return nil
}

package hint

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/mj1618/undecorate/internal/platform"
)

// DefaultXpropTimeout bounds a single xprop invocation.
const DefaultXpropTimeout = 2 * time.Second

// XpropSetter sets hints by running the xprop utility:
//
//	xprop -id <id> -f _MOTIF_WM_HINTS 32c -set _MOTIF_WM_HINTS "<payload>"
type XpropSetter struct {
	Path    string // defaults to "xprop" on $PATH
	Timeout time.Duration
}

// NewXpropSetter returns a setter using xprop from $PATH.
func NewXpropSetter() *XpropSetter {
	return &XpropSetter{Path: "xprop", Timeout: DefaultXpropTimeout}
}

// Args returns the xprop arguments for a window id and payload.
func (x *XpropSetter) Args(windowID uint32, payload string) []string {
	return []string{
		"-id", fmt.Sprintf("%d", windowID),
		"-f", platform.MotifHintsProperty, "32c",
		"-set", platform.MotifHintsProperty, payload,
	}
}

func (x *XpropSetter) SetMotifHints(windowID uint32, payload string) error {
	timeout := x.Timeout
	if timeout <= 0 {
		timeout = DefaultXpropTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	path := x.Path
	if path == "" {
		path = "xprop"
	}
	cmd := exec.CommandContext(ctx, path, x.Args(windowID, payload)...)
	var errb bytes.Buffer
	cmd.Stderr = &errb
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(errb.String())
		if msg == "" {
			msg = err.Error()
		}
		return fmt.Errorf("xprop -id %d: %s", windowID, msg)
	}
	return nil
}

// Package motion answers whether the environment asks for reduced motion.
//
// The answer is read once, when a component is constructed. It is never
// watched: a component built with full motion keeps full motion.
package motion

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Policy reports the reduced-motion preference.
type Policy interface {
	PrefersReducedMotion() bool
}

// Static is a fixed answer.
type Static bool

// PrefersReducedMotion implements Policy.
func (s Static) PrefersReducedMotion() bool {
	return bool(s)
}

// Mode values accepted by Detect.
const (
	ModeAuto = "auto"
	ModeOn   = "on"
	ModeOff  = "off"
)

// EnvVars are consulted in order by ModeAuto. The first parseable value wins.
var EnvVars = []string{"FESTIVE_REDUCED_MOTION", "REDUCED_MOTION"}

// LookupFunc matches os.LookupEnv.
type LookupFunc func(string) (string, bool)

// Detect resolves the policy for mode. In auto mode the environment is read
// through lookup (os.LookupEnv when nil) and the result is frozen.
func Detect(mode string, lookup LookupFunc) Policy {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case ModeOn, "true", "reduce":
		return Static(true)
	case ModeOff, "false":
		return Static(false)
	case "", ModeAuto:
	default:
		slog.Warn("motion: unknown mode, using auto", "mode", mode)
	}

	if lookup == nil {
		lookup = os.LookupEnv
	}
	for _, name := range EnvVars {
		raw, ok := lookup(name)
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(raw), "reduce") {
			return Static(true)
		}
		v, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			slog.Warn("motion: ignoring unparseable preference", "var", name, "value", raw)
			continue
		}
		return Static(v)
	}
	return Static(false)
}

package game

// Options holds run settings that come from the command line rather than
// the config file.
type Options struct {
	Seed      int64
	LogStats  bool
	OutputDir string
	// MaxFrames stops the run after N host frames (0 = unlimited)
	MaxFrames int
}

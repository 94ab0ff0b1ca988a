// Package input models the pointer, touch and viewport event stream that is
// broadcast to every animated component.
package input

// Kind identifies an event type.
type Kind uint8

const (
	PointerDown Kind = iota
	PointerMove
	PointerUp
	TouchStart
	TouchMove
	TouchEnd
	Resize
)

var kindNames = [...]string{
	PointerDown: "pointer_down",
	PointerMove: "pointer_move",
	PointerUp:   "pointer_up",
	TouchStart:  "touch_start",
	TouchMove:   "touch_move",
	TouchEnd:    "touch_end",
	Resize:      "resize",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Point is a position in viewport (CSS-like logical) pixels.
type Point struct {
	X, Y float64
}

// Event is one entry of the input stream.
//
// Pointer events carry Pos. Touch events carry every active touch point in
// Touches; Pos mirrors the first one. Resize carries the new viewport size.
type Event struct {
	Kind    Kind
	Pos     Point
	Touches []Point
	Width   float64
	Height  float64
}

// Pointer builds a pointer event.
func Pointer(k Kind, x, y float64) Event {
	return Event{Kind: k, Pos: Point{X: x, Y: y}}
}

// Touch builds a touch event from the active touch points.
func Touch(k Kind, touches ...Point) Event {
	ev := Event{Kind: k, Touches: touches}
	if len(touches) > 0 {
		ev.Pos = touches[0]
	}
	return ev
}

// Resized builds a viewport resize event.
func Resized(w, h float64) Event {
	return Event{Kind: Resize, Width: w, Height: h}
}

// IsTouch reports whether the event came from a touch surface.
func (e Event) IsTouch() bool {
	return e.Kind == TouchStart || e.Kind == TouchMove || e.Kind == TouchEnd
}

// SingleTouch reports whether exactly one touch point is active.
func (e Event) SingleTouch() bool {
	return len(e.Touches) == 1
}

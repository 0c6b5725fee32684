// Package bridge coordinates the area editor, the unit converter and the
// streaming client.
//
// In setup mode pointer events edit the area; in play mode pointer events
// inside the area are normalized and sent to the peer. The numeric fields
// (width and height in millimeters) are kept in step with the rectangle: they
// are refreshed when setup starts, when a drag gesture ends and after a
// numeric apply.
package bridge

import (
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"

	"touchbridge/internal/area"
	"touchbridge/internal/editor"
	"touchbridge/internal/stream"
	"touchbridge/internal/units"
)

// Mode is the surface mode.
type Mode int

const (
	ModePlay Mode = iota
	ModeSetup
)

func (m Mode) String() string {
	if m == ModeSetup {
		return "SETUP"
	}
	return "PLAY"
}

// Sender delivers protocol lines to the peer without blocking.
type Sender interface {
	Send(line string)
}

// AreaStore persists the active area.
type AreaStore interface {
	// Load returns the saved rectangle, or ok == false when none is saved.
	Load() (r area.Rect, ok bool, err error)
	Save(r area.Rect) error
}

// Fields holds the numeric-input text. Rev changes whenever the coordinator
// rewrites the text, so a view can tell when to refresh its inputs.
type Fields struct {
	Width  string
	Height string
	Rev    int
}

// Options configures a Coordinator.
type Options struct {
	MinSize      float64
	HandleRadius float64
	Converter    units.Converter
	Sender       Sender
	Store        AreaStore
}

// Coordinator owns the UI-side state: the area, the editor, the mode and the
// setup snapshot. It must only be used from the UI goroutine.
type Coordinator struct {
	area   *area.Area
	editor *editor.Editor
	conv   units.Converter
	sender Sender
	store  AreaStore

	mode        Mode
	snapshot    area.Rect
	hasSnapshot bool
	needDefault bool
	fields      Fields
}

// New returns a Coordinator in play mode. Call Restore and Resize before
// handling pointer events.
func New(opts Options) *Coordinator {
	a := area.New(0, 0, opts.MinSize)
	return &Coordinator{
		area:        a,
		editor:      editor.New(a, opts.HandleRadius),
		conv:        opts.Converter,
		sender:      opts.Sender,
		store:       opts.Store,
		needDefault: true,
	}
}

func (c *Coordinator) Mode() Mode                 { return c.mode }
func (c *Coordinator) Rect() area.Rect            { return c.area.Rect() }
func (c *Coordinator) EditMode() editor.Mode      { return c.editor.Mode() }
func (c *Coordinator) Fields() Fields             { return c.fields }
func (c *Coordinator) Converter() units.Converter { return c.conv }
func (c *Coordinator) HandleRadius() float64      { return c.editor.HandleRadius() }

// Bounds returns the surface size in device units.
func (c *Coordinator) Bounds() (width, height float64) { return c.area.Bounds() }

// Restore loads the saved area. Without one, the default area is computed
// on the first Resize with a non-empty surface.
func (c *Coordinator) Restore() error {
	if c.store == nil {
		return nil
	}
	r, ok, err := c.store.Load()
	if err != nil {
		return fmt.Errorf("restore area: %w", err)
	}
	if !ok {
		log.Println("No saved area, using default")
		return nil
	}
	log.Printf("Restored area %v", r)
	c.area.Set(r)
	c.needDefault = false
	return nil
}

// Resize records the surface size.
func (c *Coordinator) Resize(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	if c.needDefault {
		c.area.SetBounds(width, height)
		c.area.Set(area.Default(width, height))
		c.needDefault = false
		c.syncFields()
		return
	}
	c.area.SetBounds(width, height)
}

// HandlePointer routes one pointer event and reports whether it was used.
func (c *Coordinator) HandlePointer(p editor.Pointer) bool {
	if c.mode == ModeSetup {
		consumed := c.editor.Handle(p)
		select {
		case r := <-c.editor.Finished():
			log.Printf("Area dragged to %v", r)
			c.syncFields()
		default:
		}
		return consumed
	}
	return c.emit(p)
}

// emit normalizes an event inside the area and sends it to the peer.
func (c *Coordinator) emit(p editor.Pointer) bool {
	r := c.area.Rect()
	if !r.Contains(p.X, p.Y) || c.sender == nil {
		return false
	}
	var action stream.Action
	switch p.Kind {
	case editor.PointerDown:
		action = stream.ActionDown
	case editor.PointerMove:
		action = stream.ActionMove
	case editor.PointerUp:
		action = stream.ActionUp
	default:
		return false
	}
	nx, ny := r.Normalize(p.X, p.Y)
	c.sender.Send(stream.FormatEvent(action, nx, ny))
	return true
}

// EnterSetup switches to setup mode and remembers the area for Cancel.
func (c *Coordinator) EnterSetup() {
	if c.mode == ModeSetup {
		return
	}
	c.mode = ModeSetup
	c.snapshot = c.area.Rect()
	c.hasSnapshot = true
	c.editor.SetActive(true)
	c.syncFields()
}

// Save persists the current area and returns to play mode. On a store error
// setup mode is kept so the user can retry or cancel.
func (c *Coordinator) Save() error {
	if c.mode != ModeSetup {
		return nil
	}
	r := c.area.Rect()
	if c.store != nil {
		if err := c.store.Save(r); err != nil {
			return fmt.Errorf("save area: %w", err)
		}
	}
	log.Printf("Saved area %v", r)
	c.hasSnapshot = false
	c.exitSetup()
	return nil
}

// Cancel restores the area from before setup and returns to play mode.
func (c *Coordinator) Cancel() {
	if c.mode != ModeSetup {
		return
	}
	if c.hasSnapshot {
		c.area.Set(c.snapshot)
		c.hasSnapshot = false
	}
	c.exitSetup()
}

func (c *Coordinator) exitSetup() {
	c.mode = ModePlay
	c.editor.SetActive(false)
}

// ApplySize resizes the area around its center from millimeter text. Both
// fields must be non-empty; text that is not a finite number counts as zero,
// which the area's minimum-size rule then rejects for that dimension. It
// reports whether a resize was attempted.
func (c *Coordinator) ApplySize(widthText, heightText string) bool {
	widthText, heightText = strings.TrimSpace(widthText), strings.TrimSpace(heightText)
	if widthText == "" || heightText == "" {
		return false
	}
	w := c.conv.ToDeviceUnits(parseMillimeters(widthText))
	h := c.conv.ToDeviceUnits(parseMillimeters(heightText))
	c.area.ResizeAroundCenter(w, h)
	log.Printf("Area resized to %s x %s mm: %v", widthText, heightText, c.area.Rect())
	c.syncFields()
	return true
}

func parseMillimeters(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func (c *Coordinator) syncFields() {
	r := c.area.Rect()
	c.fields = Fields{
		Width:  c.conv.FormatMillimeters(r.Width()),
		Height: c.conv.FormatMillimeters(r.Height()),
		Rev:    c.fields.Rev + 1,
	}
}

// Summary describes the area in device units and millimeters.
func (c *Coordinator) Summary() string {
	r := c.area.Rect()
	return fmt.Sprintf("area %s units, %s x %s mm",
		r, c.conv.FormatMillimeters(r.Width()), c.conv.FormatMillimeters(r.Height()))
}

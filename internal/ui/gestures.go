package ui

import (
	"math"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

// GestureType represents different types of gestures
type GestureType int

const (
	GestureNone GestureType = iota
	GestureTap
	GestureSwipeLeft
	GestureSwipeRight
	GestureSwipeUp
	GestureSwipeDown
	GestureLongPress
)

// Gesture thresholds constants
const (
	DefaultSwipeThreshold    float32 = 50.0
	DefaultLongPressDuration         = 500 * time.Millisecond
)

// classifyGesture maps a finished touch to a gesture. Movement wins over
// duration so a slow swipe is still a swipe.
func classifyGesture(dx, dy float32, duration time.Duration, threshold float32, longPress time.Duration) GestureType {
	distance := float32(math.Hypot(float64(dx), float64(dy)))
	if distance >= threshold {
		return swipeDirection(dx, dy)
	}
	if duration >= longPress {
		return GestureLongPress
	}
	return GestureTap
}

// swipeDirection determines the primary direction of a swipe
func swipeDirection(dx, dy float32) GestureType {
	if abs32(dx) > abs32(dy) {
		if dx > 0 {
			return GestureSwipeRight
		}
		return GestureSwipeLeft
	}
	if dy > 0 {
		return GestureSwipeDown
	}
	return GestureSwipeUp
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// GestureHandler tracks one touch or drag at a time
type GestureHandler struct {
	onGesture func(GestureType)

	touchStartTime time.Time
	touchStartPos  fyne.Position
	dragDelta      fyne.Delta
	dragging       bool

	swipeThreshold    float32
	longPressDuration time.Duration
	now               func() time.Time
}

// NewGestureHandler creates a new gesture handler
func NewGestureHandler(onGesture func(GestureType)) *GestureHandler {
	return &GestureHandler{
		onGesture:         onGesture,
		swipeThreshold:    DefaultSwipeThreshold,
		longPressDuration: DefaultLongPressDuration,
		now:               time.Now,
	}
}

// TouchDown handles touch down events for gesture detection
func (gh *GestureHandler) TouchDown(event *mobile.TouchEvent) {
	gh.touchStartTime = gh.now()
	gh.touchStartPos = event.Position
}

// TouchUp handles touch up events for gesture detection
func (gh *GestureHandler) TouchUp(event *mobile.TouchEvent) {
	if gh.touchStartTime.IsZero() {
		return
	}
	dx := event.Position.X - gh.touchStartPos.X
	dy := event.Position.Y - gh.touchStartPos.Y
	gh.trigger(classifyGesture(dx, dy, gh.now().Sub(gh.touchStartTime), gh.swipeThreshold, gh.longPressDuration))
	gh.touchStartTime = time.Time{}
}

// TouchCancel handles touch cancel events
func (gh *GestureHandler) TouchCancel(*mobile.TouchEvent) {
	gh.touchStartTime = time.Time{}
}

// Dragged accumulates mouse drags on desktop
func (gh *GestureHandler) Dragged(event *fyne.DragEvent) {
	if !gh.dragging {
		gh.dragging = true
		gh.dragDelta = fyne.Delta{}
		gh.touchStartTime = gh.now()
	}
	gh.dragDelta.DX += event.Dragged.DX
	gh.dragDelta.DY += event.Dragged.DY
}

// DragEnd reports a swipe when the drag was long enough
func (gh *GestureHandler) DragEnd() {
	if !gh.dragging {
		return
	}
	gh.dragging = false
	g := classifyGesture(gh.dragDelta.DX, gh.dragDelta.DY, gh.now().Sub(gh.touchStartTime), gh.swipeThreshold, gh.longPressDuration)
	gh.touchStartTime = time.Time{}
	// a short drag is not a tap
	if g == GestureTap || g == GestureLongPress {
		return
	}
	gh.trigger(g)
}

func (gh *GestureHandler) trigger(gesture GestureType) {
	if gh.onGesture != nil && gesture != GestureNone {
		gh.onGesture(gesture)
	}
}

// SwipeArea wraps content and reports swipes over it. It handles touches on
// mobile and mouse drags on desktop.
type SwipeArea struct {
	widget.BaseWidget
	content fyne.CanvasObject
	handler *GestureHandler
}

var (
	_ mobile.Touchable = (*SwipeArea)(nil)
	_ fyne.Draggable   = (*SwipeArea)(nil)
)

// NewSwipeArea creates a new swipe area over content
func NewSwipeArea(content fyne.CanvasObject, onGesture func(GestureType)) *SwipeArea {
	sa := &SwipeArea{
		content: content,
		handler: NewGestureHandler(onGesture),
	}
	sa.ExtendBaseWidget(sa)
	return sa
}

// CreateRenderer creates the widget renderer
func (sa *SwipeArea) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(sa.content)
}

// TouchDown handles touch down events
func (sa *SwipeArea) TouchDown(event *mobile.TouchEvent) { sa.handler.TouchDown(event) }

// TouchUp handles touch up events
func (sa *SwipeArea) TouchUp(event *mobile.TouchEvent) { sa.handler.TouchUp(event) }

// TouchCancel handles touch cancel events
func (sa *SwipeArea) TouchCancel(event *mobile.TouchEvent) { sa.handler.TouchCancel(event) }

// Dragged handles drag events
func (sa *SwipeArea) Dragged(event *fyne.DragEvent) { sa.handler.Dragged(event) }

// DragEnd handles the end of a drag
func (sa *SwipeArea) DragEnd() { sa.handler.DragEnd() }

package frameshow

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/tanema/gween/ease"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Params receives the named scalars the scene publishes every tick for an
// expression evaluator: _frame (tick counter), frame (current keyframe),
// _mx and _my (pointer in graph space).
type Params interface {
	Set(name string, value float64)
}

// MapParams is a Params backed by a map.
type MapParams map[string]float64

// Set stores value under name.
func (p MapParams) Set(name string, value float64) { p[name] = value }

// SceneConfig holds the layout and timing settings of a scene.
type SceneConfig struct {
	// Viewport is the screen rectangle the camera projects into.
	Viewport Rect
	// GridSize is the number of pixels per graph unit at zoom 1.
	GridSize float64
	// TransitionSteps is the tick count of a presenting transition.
	TransitionSteps int
	// EditTPS and PresentTPS are the tick rates requested from the driver.
	EditTPS    int
	PresentTPS int
	// Ease is the transition curve. Nil selects the logistic curve.
	Ease ease.TweenFunc
}

// DefaultSceneConfig returns the default settings for a 1920x1080 viewport.
func DefaultSceneConfig() SceneConfig {
	return SceneConfig{
		Viewport:        Rect{Width: 1920, Height: 1080},
		GridSize:        DefaultGridSize,
		TransitionSteps: DefaultTransitionSteps,
		EditTPS:         DefaultEditTPS,
		PresentTPS:      DefaultPresentTPS,
	}
}

// Scene is the aggregate root: it owns the objects, the frame counters, the
// camera, the pen and the transition controller. All mutation happens on the
// caller's goroutine inside Update or between ticks; nothing is locked.
type Scene struct {
	cfg SceneConfig

	objects []*Object
	nextID  uint32

	numFrames int
	frame     int
	ticks     int64

	camera     *Camera
	pen        *Pen
	transition Transition

	// Instant makes Next, Prev and GoTo complete without animation, like a
	// held modifier key in the editor.
	Instant bool
	// CopyMode turns GoTo into "copy the current frame onto the target".
	CopyMode bool

	presenting bool
	pointer    Vec2
	params     Params
	autoplay   *Autoplay

	log     zerolog.Logger
	debug   bool
	metrics *tickMetrics
}

// NewScene creates a scene with one frame, a default camera and an empty pen.
func NewScene(cfg SceneConfig) *Scene {
	def := DefaultSceneConfig()
	if cfg.GridSize <= 0 {
		cfg.GridSize = def.GridSize
	}
	if cfg.TransitionSteps < 0 {
		cfg.TransitionSteps = def.TransitionSteps
	}
	if cfg.EditTPS <= 0 {
		cfg.EditTPS = def.EditTPS
	}
	if cfg.PresentTPS <= 0 {
		cfg.PresentTPS = def.PresentTPS
	}
	return &Scene{
		cfg:        cfg,
		numFrames:  1,
		frame:      1,
		camera:     NewCamera(cfg.Viewport, cfg.GridSize),
		pen:        NewPen(),
		log:        zerolog.Nop(),
		metrics:    newTickMetrics(otel.Meter(meterName)),
		transition: Transition{Ease: cfg.Ease},
	}
}

// SetLogger replaces the scene logger. The default discards everything.
func (s *Scene) SetLogger(l zerolog.Logger) { s.log = l }

// SetMeter replaces the meter the tick metrics are recorded with.
func (s *Scene) SetMeter(m metric.Meter) { s.metrics = newTickMetrics(m) }

// SetDebugMode enables per-tick timing logs at debug level.
func (s *Scene) SetDebugMode(enabled bool) { s.debug = enabled }

// SetParams attaches the expression evaluator the scene publishes to.
func (s *Scene) SetParams(p Params) { s.params = p }

// SetAutoplay attaches a script that is stepped once per Update.
func (s *Scene) SetAutoplay(a *Autoplay) { s.autoplay = a }

// Config returns the scene settings.
func (s *Scene) Config() SceneConfig { return s.cfg }

// Camera returns the scene camera.
func (s *Scene) Camera() *Camera { return s.camera }

// Pen returns the freehand pen.
func (s *Scene) Pen() *Pen { return s.pen }

// Transition returns the transition controller.
func (s *Scene) Transition() *Transition { return &s.transition }

// Frame returns the current keyframe.
func (s *Scene) Frame() int { return s.frame }

// NumFrames returns the number of keyframes.
func (s *Scene) NumFrames() int { return s.numFrames }

// Ticks returns the number of Updates run so far.
func (s *Scene) Ticks() int64 { return s.ticks }

// Objects returns the scene objects in draw order. The returned slice MUST NOT be mutated.
func (s *Scene) Objects() []*Object { return s.objects }

// Add appends an object created at the current frame. Its keyframe moves to
// the current frame and, when that is after frame 1, a transparent copy is
// written at frame 1 so the object fades in when playback reaches it.
func (s *Scene) Add(o *Object) *Object {
	s.nextID++
	o.ID = s.nextID
	if s.frame > 1 {
		if snap, err := o.Properties.Get(1); err == nil {
			o.Properties = NewPropertyStore(s.frame, snap)
			_ = o.Properties.Copy(s.frame, 1)
		}
	}
	o.display, _ = o.Properties.Get(s.frame)
	o.renderable = true
	s.objects = append(s.objects, o)
	return o
}

// SetPresenting switches between editing and presenting.
func (s *Scene) SetPresenting(on bool) { s.presenting = on }

// Presenting reports whether the scene is in presentation mode.
func (s *Scene) Presenting() bool { return s.presenting }

// TickRate returns the number of Updates per second the driver should run:
// lower while editing to save power, higher while presenting.
func (s *Scene) TickRate() int {
	if s.presenting {
		return s.cfg.PresentTPS
	}
	return s.cfg.EditTPS
}

// SetPointer records the pointer position in screen space.
func (s *Scene) SetPointer(sx, sy float64) {
	s.pointer = s.camera.ScreenToGraph(sx, sy)
}

// Pointer returns the last pointer position in graph space.
func (s *Scene) Pointer() Vec2 { return s.pointer }

// --- Frames ---

// LoopFrame wraps f into 1..NumFrames.
func (s *Scene) LoopFrame(f int) int {
	if f > s.numFrames {
		return 1
	}
	if f < 1 {
		return s.numFrames
	}
	return f
}

// AppendFrame adds an empty frame at the end; it inherits the last keyframes.
func (s *Scene) AppendFrame() int {
	s.numFrames++
	return s.numFrames
}

// InsertFrame opens a new frame at the current position. Every keyframe at
// or after the current frame, camera included, moves one frame later.
func (s *Scene) InsertFrame() error {
	if s.transition.Running() {
		return ErrTransitionRunning
	}
	s.numFrames++
	for _, o := range s.objects {
		o.Properties.InsertAt(s.frame)
	}
	s.camera.Properties.InsertAt(s.frame)
	return nil
}

// CopyFrame copies every object's keyframe at from onto to.
func (s *Scene) CopyFrame(from, to int) {
	for _, o := range s.objects {
		if err := o.CopyProperties(from, to); err != nil {
			s.log.Warn().Err(err).Uint32("object", o.ID).Msg("copy frame")
		}
	}
}

// Next moves to the following frame, wrapping to the first.
func (s *Scene) Next() error { return s.GoTo(s.LoopFrame(s.frame + 1)) }

// Prev moves to the previous frame, wrapping to the last.
func (s *Scene) Prev() error { return s.GoTo(s.LoopFrame(s.frame - 1)) }

// GoTo moves to frame next. It animates only while presenting and Instant is
// not set; in CopyMode it copies the current frame onto next instead.
func (s *Scene) GoTo(next int) error {
	if s.CopyMode {
		if s.transition.Running() {
			return ErrTransitionRunning
		}
		if next < 1 || next > s.numFrames {
			return fmt.Errorf("%w: %d", ErrFrameRange, next)
		}
		s.CopyMode = false
		s.CopyFrame(s.frame, next)
		return nil
	}
	steps := s.cfg.TransitionSteps
	if !s.presenting || s.Instant {
		steps = 0
	}
	return s.TransitionTo(next, steps)
}

// TransitionTo starts a transition to next lasting steps ticks. Both
// endpoints are materialized in every store first; objects whose paths
// cannot blend are logged and will cut over at the midpoint.
func (s *Scene) TransitionTo(next, steps int) error {
	if s.transition.Running() {
		return ErrTransitionRunning
	}
	if next < 1 || next > s.numFrames {
		return fmt.Errorf("%w: %d", ErrFrameRange, next)
	}

	for _, o := range s.objects {
		if err := o.Properties.Prepare(s.frame, next); err != nil {
			s.log.Warn().Err(err).Uint32("object", o.ID).Str("kind", o.Kind.String()).Msg("prepare transition")
			continue
		}
		a, _ := o.Properties.Get(s.frame)
		b, _ := o.Properties.Get(next)
		if err := CheckInterpolable(a, b); err != nil {
			s.log.Warn().Err(err).Uint32("object", o.ID).Int("from", s.frame).Int("to", next).
				Msg("falling back to hard cut")
		}
	}
	if err := s.camera.Properties.Prepare(s.frame, next); err != nil {
		s.log.Warn().Err(err).Msg("prepare camera transition")
	}

	s.metrics.transition(steps)
	s.transition.Run(steps, next, s.completeTransition)
	return nil
}

func (s *Scene) completeTransition(target int) {
	s.frame = target
	if s.params != nil {
		s.params.Set("frame", float64(target))
	}
	s.log.Debug().Int("frame", target).Msg("transition complete")
}

// --- Tick ---

// Update runs one logical tick: publish params, update the camera, compute
// every displayed snapshot, run eval hooks, drop deleted objects and advance
// the transition. A failing object is skipped for the tick and logged; it
// never stops the others.
func (s *Scene) Update() {
	start := time.Now()
	var stats tickStats

	if s.autoplay != nil {
		s.autoplay.step(s)
	}
	s.publishParams()

	running := s.transition.Running()
	next := s.transition.Target()
	tEase := s.transition.TEase()

	if err := s.camera.Update(s.frame, next, tEase, running); err != nil {
		s.log.Warn().Err(err).Int("frame", s.frame).Msg("camera update")
	}
	if s.debug {
		stats.cameraTime = time.Since(start)
	}

	t0 := time.Now()
	for _, o := range s.objects {
		s.evaluate(o, running, next, tEase)
		if o.renderable {
			stats.renderable++
		}
	}
	stats.objects = len(s.objects)
	if s.debug {
		stats.evalTime = time.Since(t0)
	}

	stats.removed = s.sweep()
	s.transition.Tick()
	s.ticks++

	stats.total = time.Since(start)
	s.metrics.tick(stats.total, s.tickBudget())
	if s.debug {
		s.debugLog(stats)
	}
}

func (s *Scene) evaluate(o *Object, running bool, next int, tEase float64) {
	a, err := o.Properties.Get(s.frame)
	if err != nil {
		if o.renderable {
			s.log.Warn().Err(err).Uint32("object", o.ID).Str("kind", o.Kind.String()).
				Int("frame", s.frame).Msg("object not renderable")
		}
		o.renderable = false
		return
	}
	if running {
		if b, err := o.Properties.Get(next); err == nil {
			a = Interpolate(a, &b, tEase)
		}
	}
	o.display = a
	o.renderable = true
	if err := o.Eval(); err != nil {
		s.log.Warn().Err(err).Uint32("object", o.ID).Msg("eval")
	}
}

// sweep removes deleted objects after the evaluation pass.
func (s *Scene) sweep() int {
	kept := s.objects[:0]
	for _, o := range s.objects {
		if !o.deleted {
			kept = append(kept, o)
		}
	}
	removed := len(s.objects) - len(kept)
	for i := len(kept); i < len(s.objects); i++ {
		s.objects[i] = nil
	}
	s.objects = kept
	return removed
}

func (s *Scene) publishParams() {
	if s.params == nil {
		return
	}
	s.params.Set("_frame", float64(s.ticks))
	s.params.Set("frame", float64(s.frame))
	s.params.Set("_mx", s.pointer.X)
	s.params.Set("_my", s.pointer.Y)
}

func (s *Scene) tickBudget() time.Duration {
	return time.Second / time.Duration(s.TickRate())
}

// --- Drawing ---

var (
	gridColor = Color{R: 0.87, G: 0.87, B: 0.87, A: 1}
	axisColor = [3]Color{{R: 1, A: 1}, {G: 1, A: 1}, {B: 1, A: 1}}
)

// Draw renders the coordinate axes, every renderable object and the pen
// strokes of the current frame.
func (s *Scene) Draw(dst Surface) {
	s.drawAxes(dst)
	for _, o := range s.objects {
		o.Render(dst)
	}
	s.pen.Draw(dst, s.frame)
}

func (s *Scene) drawAxes(dst Surface) {
	style, alpha := s.camera.AxesBlend()
	if style != Style3D && style != StyleFlat {
		return
	}
	grid := gridColor
	grid.A *= alpha
	lines := s.camera.GridLines()
	var seg [2]Vec2
	for j := 0; j+1 < len(lines); j += 2 {
		seg[0] = Vec2{X: lines[j][0], Y: lines[j][1]}
		seg[1] = Vec2{X: lines[j+1][0], Y: lines[j+1][1]}
		dst.StrokePath(seg[:], grid, false)
	}
	axes := s.camera.Axes()
	origin := Vec2{X: axes[0][0], Y: axes[0][1]}
	for i := 1; i < len(axes); i++ {
		c := axisColor[(i-1)%3]
		c.A *= alpha
		seg[0] = origin
		seg[1] = Vec2{X: axes[i][0], Y: axes[i][1]}
		dst.StrokePath(seg[:], c, false)
	}
}

// --- Selection ---

// SelectInRect updates every object's selection from a screen rectangle and
// returns the selected objects.
func (s *Scene) SelectInRect(r Rect) []*Object {
	var sel []*Object
	for _, o := range s.objects {
		if o.InRect(r) {
			sel = append(sel, o)
		}
	}
	return sel
}

// Selected returns the currently selected objects.
func (s *Scene) Selected() []*Object {
	var sel []*Object
	for _, o := range s.objects {
		if o.selected {
			sel = append(sel, o)
		}
	}
	return sel
}

// ClearSelection deselects every object.
func (s *Scene) ClearSelection() {
	for _, o := range s.objects {
		o.selected = false
	}
}

// DeleteSelected marks every selected object for removal at the end of the
// next Update and returns how many were marked.
func (s *Scene) DeleteSelected() int {
	n := 0
	for _, o := range s.objects {
		if o.selected {
			o.deleted = true
			n++
		}
	}
	return n
}

// --- Persistence ---

// MarshalJSON writes the persisted document. The encoding is canonical:
// equal scenes produce identical bytes.
func (s *Scene) MarshalJSON() ([]byte, error) {
	recs := make([]ObjectRecord, len(s.objects))
	for i, o := range s.objects {
		recs[i] = ObjectRecord{Type: o.Kind.String(), Properties: o.Properties}
	}
	return json.Marshal(Document{
		NumFrames: s.numFrames,
		Frame:     s.frame,
		Objs:      recs,
		Cam:       &CameraRecord{Properties: s.camera.Properties},
		Pen:       s.pen,
	})
}

// Load replaces the scene content with persisted data. Loading is all or
// nothing: on error the scene is left untouched. Objects, camera and pen are
// rebuilt; selection and any running transition are reset.
func (s *Scene) Load(data []byte) error {
	doc, err := decodeDocument(data)
	if err != nil {
		return err
	}
	objs, err := objectsFromRecords(doc.Objs, true)
	if err != nil {
		return &SerializationError{Op: "load objects", Err: err}
	}

	numFrames, frame := s.numFrames, s.frame
	if doc.NumFrames > 0 {
		numFrames = doc.NumFrames
	}
	if doc.Frame > 0 {
		frame = doc.Frame
	}
	if frame > numFrames {
		frame = numFrames
	}

	camera := s.camera
	if doc.Cam != nil && doc.Cam.Properties != nil {
		camera = newCameraWithStore(s.cfg.Viewport, s.cfg.GridSize, doc.Cam.Properties)
	}
	pen := s.pen
	if doc.Pen != nil {
		pen = NewPen()
		pen.Drawings = doc.Pen.Drawings
		if pen.Drawings == nil {
			pen.Drawings = []Stroke{}
		}
	}

	s.objects = s.objects[:0]
	s.nextID = 0
	for _, o := range objs {
		s.nextID++
		o.ID = s.nextID
		s.objects = append(s.objects, o)
	}
	s.numFrames, s.frame = numFrames, frame
	s.camera, s.pen = camera, pen
	s.transition = Transition{Ease: s.transition.Ease}
	_ = s.camera.Update(s.frame, s.frame, 0, false)
	for _, o := range s.objects {
		s.evaluate(o, false, s.frame, 0)
	}
	return nil
}

// ExportSelection encodes the selected objects with only their current
// keyframe, stored as frame 1, for pasting into another scene or frame.
func (s *Scene) ExportSelection() ([]byte, error) {
	recs := make([]ObjectRecord, 0)
	for _, o := range s.objects {
		if !o.selected {
			continue
		}
		snap, err := o.Properties.Get(s.frame)
		if err != nil {
			return nil, err
		}
		recs = append(recs, ObjectRecord{Type: o.Kind.String(), Properties: NewPropertyStore(1, snap)})
	}
	return json.Marshal(recs)
}

// Import appends objects encoded as a JSON array of records. With
// keepAnimation the keyframes are kept; otherwise each object's frame 1
// keyframe is placed on the current frame and the new objects are selected.
func (s *Scene) Import(data []byte, keepAnimation bool) ([]*Object, error) {
	var recs []ObjectRecord
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, &SerializationError{Op: "decode objects", Err: err}
	}
	if err := validateRecords(recs); err != nil {
		return nil, &SerializationError{Op: "decode objects", Err: err}
	}
	objs, err := objectsFromRecords(recs, keepAnimation)
	if err != nil {
		return nil, &SerializationError{Op: "decode objects", Err: err}
	}
	for _, o := range objs {
		if keepAnimation {
			s.nextID++
			o.ID = s.nextID
			s.objects = append(s.objects, o)
			continue
		}
		s.Add(o)
	}
	return objs, nil
}

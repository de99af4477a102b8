// Package animator provides the beat-driven scheduling model: scenes made
// of generators, advanced one beat at a time by the frame loop, with
// beat-indexed events switching scenes on and off.
package animator

// Condition decides whether a generator runs on a given scene-local beat
type Condition func(beat int) bool

// Hook runs once when a generator's scene starts
type Hook func(g *Generator)

// Request produces (or clears) one beat's worth of writes
type Request func(g *Generator, beat int)

// Generator creates one visual effect within a scene. It draws every beat
// its condition matches, and is asked to clear its previous beat's output
// before drawing the next.
type Generator struct {
	Store

	StartBeat    int
	Condition    Condition
	OnCreate     Hook
	Request      Request
	RequestClear Request

	manager *Manager
	scene   *Scene
}

// NewGenerator builds a generator. Nil hooks are replaced with no-ops.
func NewGenerator(startBeat int, cond Condition, onCreate Hook, request, requestClear Request) *Generator {
	g := &Generator{
		StartBeat:    startBeat,
		Condition:    cond,
		OnCreate:     onCreate,
		Request:      request,
		RequestClear: requestClear,
	}
	if g.Condition == nil {
		g.Condition = Always()
	}
	if g.OnCreate == nil {
		g.OnCreate = NoCreate()
	}
	if g.Request == nil {
		g.Request = NoRequest()
	}
	if g.RequestClear == nil {
		g.RequestClear = NoRequest()
	}
	return g
}

// Manager returns the owning scene manager, nil before the scene starts
func (g *Generator) Manager() *Manager {
	return g.manager
}

// Scene returns the owning scene, nil before the scene starts
func (g *Generator) Scene() *Scene {
	return g.scene
}

// Scene is a named group of generators sharing a beat counter
type Scene struct {
	Store

	name       string
	generators []*Generator

	startBeat    int
	internalBeat int
	manager      *Manager
}

// NewScene creates a scene from its generators
func NewScene(name string, generators ...*Generator) *Scene {
	return &Scene{name: name, generators: generators}
}

// Name returns the scene's registry name
func (s *Scene) Name() string {
	return s.name
}

// Generators returns the scene's generator list
func (s *Scene) Generators() []*Generator {
	return s.generators
}

// Beat returns the scene-local beat counter
func (s *Scene) Beat() int {
	return s.internalBeat
}

// RequestFrame runs one beat: each eligible generator clears its previous
// output, then draws. The scene-local beat advances regardless of render.
func (s *Scene) RequestFrame(render bool) {
	beat := s.internalBeat
	if render {
		for _, g := range s.generators {
			if beat >= g.StartBeat && g.Condition(beat) {
				if beat != s.startBeat && beat != g.StartBeat {
					g.RequestClear(g, beat-1)
				}
				g.Request(g, beat)
			}
		}
	}
	s.internalBeat++
}

// start wires the scene's generators to the manager, runs their creation
// hooks and draws the first frame
func (s *Scene) start(m *Manager, at int) {
	for _, g := range s.generators {
		g.manager = m
		g.scene = s
		g.OnCreate(g)
	}
	s.startBeat = at
	s.internalBeat = at
	s.RequestFrame(true)
}

// Event fires an action when the global beat reaches Beat
type Event struct {
	Beat int
	Do   func(m *Manager)
}

// SwapScene returns an action replacing the primary scene
func SwapScene(name string, at int) func(*Manager) {
	return func(m *Manager) { m.StartScene(name, at) }
}

// LayerScene returns an action stacking a scene on top
func LayerScene(name string, at int) func(*Manager) {
	return func(m *Manager) { m.AddScene(name, at) }
}

// UnlayerScene returns an action removing a stacked scene
func UnlayerScene(name string) func(*Manager) {
	return func(m *Manager) { m.RemoveScene(name) }
}

// Manager owns the scene registry, the beat-indexed event timeline and the
// stack of currently active scenes. One primary scene occupies the bottom
// of the stack; further scenes layer on top.
type Manager struct {
	Store

	scenes map[string]*Scene
	events map[int][]Event
	active []*Scene
	beat   int
}

// NewManager registers scenes and groups events by beat
func NewManager(scenes []*Scene, events []Event) *Manager {
	m := &Manager{
		scenes: make(map[string]*Scene, len(scenes)),
		events: make(map[int][]Event),
		beat:   -1,
	}
	for _, s := range scenes {
		s.manager = m
		m.scenes[s.name] = s
	}
	for _, e := range events {
		m.events[e.Beat] = append(m.events[e.Beat], e)
	}
	return m
}

// Beat returns the global beat counter
func (m *Manager) Beat() int {
	return m.beat
}

// ActiveScenes returns the active scene stack, bottom first
func (m *Manager) ActiveScenes() []*Scene {
	return m.active
}

// StartScene makes the named scene the primary scene, starting it at the
// given scene-local beat. Unknown names are ignored.
func (m *Manager) StartScene(name string, at int) {
	s, ok := m.scenes[name]
	if !ok {
		return
	}
	if len(m.active) == 0 {
		m.active = append(m.active, nil)
	}
	m.active[0] = s
	s.start(m, at)
}

// AddScene stacks the named scene on top of the active scenes
func (m *Manager) AddScene(name string, at int) {
	s, ok := m.scenes[name]
	if !ok {
		return
	}
	m.active = append(m.active, s)
	s.start(m, at)
}

// RemoveScene drops the named scene from the active stack
func (m *Manager) RemoveScene(name string) {
	for i, s := range m.active {
		if s != nil && s.name == name {
			m.active = append(m.active[:i], m.active[i+1:]...)
			return
		}
	}
}

// RequestNext runs one beat on every active scene, then advances the
// global beat and fires any events due at it
func (m *Manager) RequestNext(render bool) {
	for _, s := range m.active {
		if s != nil {
			s.RequestFrame(render)
		}
	}
	m.nextBeat()
}

func (m *Manager) nextBeat() {
	m.beat++
	for _, e := range m.events[m.beat] {
		e.Do(m)
	}
}

// SetSceneData sets data on a registered scene by name
func (m *Manager) SetSceneData(scene string, pairs ...any) {
	if s, ok := m.scenes[scene]; ok {
		s.Set(pairs...)
	}
}

// SetGeneratorData sets data on one generator of a registered scene
func (m *Manager) SetGeneratorData(scene string, generator int, pairs ...any) {
	s, ok := m.scenes[scene]
	if !ok || generator < 0 || generator >= len(s.generators) {
		return
	}
	s.generators[generator].Set(pairs...)
}

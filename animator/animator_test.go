package animator

import "testing"

type callLog struct {
	requests []int
	clears   []int
	created  int
}

func loggedGenerator(log *callLog, startBeat int, cond Condition) *Generator {
	return NewGenerator(startBeat, cond,
		func(g *Generator) { log.created++ },
		func(g *Generator, beat int) { log.requests = append(log.requests, beat) },
		func(g *Generator, beat int) { log.clears = append(log.clears, beat) },
	)
}

func TestSceneFrameSequence(t *testing.T) {
	var log callLog
	scene := NewScene("test", loggedGenerator(&log, 0, Always()))
	m := NewManager([]*Scene{scene}, nil)
	m.StartScene("test", 0)

	// StartScene draws the first frame; two more beats follow
	m.RequestNext(true)
	m.RequestNext(true)

	wantRequests := []int{0, 1, 2}
	if len(log.requests) != len(wantRequests) {
		t.Fatalf("Expected %d requests, got %d", len(wantRequests), len(log.requests))
	}
	for i, b := range wantRequests {
		if log.requests[i] != b {
			t.Errorf("Request %d: expected beat %d, got %d", i, b, log.requests[i])
		}
	}

	// The first frame must not be preceded by a clear; later frames clear
	// the previous beat
	wantClears := []int{0, 1}
	if len(log.clears) != len(wantClears) {
		t.Fatalf("Expected %d clears, got %d", len(wantClears), len(log.clears))
	}
	for i, b := range wantClears {
		if log.clears[i] != b {
			t.Errorf("Clear %d: expected beat %d, got %d", i, b, log.clears[i])
		}
	}

	if log.created != 1 {
		t.Errorf("Expected OnCreate once, got %d", log.created)
	}
}

func TestGeneratorStartBeat(t *testing.T) {
	var log callLog
	scene := NewScene("test", loggedGenerator(&log, 2, Always()))
	m := NewManager([]*Scene{scene}, nil)
	m.StartScene("test", 0)

	for i := 0; i < 3; i++ {
		m.RequestNext(true)
	}

	// Beats 0 and 1 are skipped, the first run at beat 2 skips the clear
	want := []int{2, 3}
	if len(log.requests) != len(want) {
		t.Fatalf("Expected %d requests, got %v", len(want), log.requests)
	}
	if len(log.clears) != 1 || log.clears[0] != 2 {
		t.Errorf("Expected single clear of beat 2, got %v", log.clears)
	}
}

func TestEventsFireOnBeat(t *testing.T) {
	var fired []int
	events := []Event{
		{Beat: 0, Do: func(m *Manager) { fired = append(fired, 0) }},
		{Beat: 2, Do: func(m *Manager) { fired = append(fired, 2) }},
		{Beat: 2, Do: func(m *Manager) { fired = append(fired, 2) }},
	}
	m := NewManager(nil, events)

	for i := 0; i < 4; i++ {
		m.RequestNext(true)
	}

	want := []int{0, 2, 2}
	if len(fired) != len(want) {
		t.Fatalf("Expected events %v, got %v", want, fired)
	}
	for i := range want {
		if fired[i] != want[i] {
			t.Errorf("Event %d: expected beat %d, got %d", i, want[i], fired[i])
		}
	}
	if m.Beat() != 3 {
		t.Errorf("Expected global beat 3, got %d", m.Beat())
	}
}

func TestSwapAndLayerScenes(t *testing.T) {
	var aLog, bLog callLog
	a := NewScene("a", loggedGenerator(&aLog, 0, Always()))
	b := NewScene("b", loggedGenerator(&bLog, 0, Always()))

	events := []Event{
		{Beat: 1, Do: LayerScene("b", 0)},
		{Beat: 3, Do: UnlayerScene("b")},
	}
	m := NewManager([]*Scene{a, b}, events)
	m.StartScene("a", 0)

	for i := 0; i < 4; i++ {
		m.RequestNext(true)
	}

	if len(m.ActiveScenes()) != 1 {
		t.Errorf("Expected only scene a active at the end, got %d scenes", len(m.ActiveScenes()))
	}
	if len(bLog.requests) == 0 {
		t.Error("Expected layered scene b to have drawn")
	}
	// a keeps running underneath the layered scene
	if len(aLog.requests) != 5 {
		t.Errorf("Expected scene a to draw every beat (5 total with start frame), got %d", len(aLog.requests))
	}
}

func TestUnknownSceneIgnored(t *testing.T) {
	m := NewManager(nil, nil)
	m.StartScene("ghost", 0)
	m.AddScene("ghost", 0)
	m.RemoveScene("ghost")

	if len(m.ActiveScenes()) != 0 {
		t.Errorf("Expected no active scenes, got %d", len(m.ActiveScenes()))
	}
}

func TestSetGeneratorData(t *testing.T) {
	g := NewGenerator(0, Always(), nil, nil, nil)
	scene := NewScene("test", g)
	m := NewManager([]*Scene{scene}, nil)

	m.SetGeneratorData("test", 0, "text", "lyrics", "offset", 0)
	if got := g.GetString("text", ""); got != "lyrics" {
		t.Errorf("Expected generator data set, got %q", got)
	}

	// Out-of-range generator index and unknown scene are no-ops
	m.SetGeneratorData("test", 5, "text", "x")
	m.SetGeneratorData("ghost", 0, "text", "x")
}

func TestStartSceneAtBeat(t *testing.T) {
	var log callLog
	scene := NewScene("test", loggedGenerator(&log, 0, Always()))
	m := NewManager([]*Scene{scene}, nil)
	m.StartScene("test", 10)

	if scene.Beat() != 11 {
		t.Errorf("Expected scene beat 11 after the start frame, got %d", scene.Beat())
	}
	if len(log.requests) != 1 || log.requests[0] != 10 {
		t.Errorf("Expected first request at beat 10, got %v", log.requests)
	}
	if len(log.clears) != 0 {
		t.Errorf("Expected no clear on the start frame, got %v", log.clears)
	}
}

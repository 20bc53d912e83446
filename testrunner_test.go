package recdeck

import "testing"

func TestLoadTestScript(t *testing.T) {
	data := []byte(`{"steps": [
		{"action": "key", "key": "next"},
		{"action": "move", "x": 120, "y": 200},
		{"action": "wait", "frames": 30},
		{"action": "snapshot", "label": "path"}
	]}`)
	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(runner.steps) != 4 {
		t.Fatalf("steps = %d, want 4", len(runner.steps))
	}
	if runner.steps[0].Key != "next" || runner.steps[2].Frames != 30 || runner.steps[3].Label != "path" {
		t.Errorf("steps parsed wrong: %+v", runner.steps)
	}
}

func TestLoadTestScript_Invalid(t *testing.T) {
	if _, err := LoadTestScript([]byte(`{not json`)); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestLoadTestScript_Empty(t *testing.T) {
	if _, err := LoadTestScript([]byte(`{"steps": []}`)); err == nil {
		t.Error("expected error for empty steps")
	}
}

func TestLoadTestScript_UnknownAction(t *testing.T) {
	if _, err := LoadTestScript([]byte(`{"steps": [{"action": "teleport"}]}`)); err == nil {
		t.Error("expected error for unknown action")
	}
}

func TestRunnerStep_Click(t *testing.T) {
	s := NewScene(400, 400)
	n := interactiveCircle("n", 50, 50, 20)
	clicked := false
	n.OnClick = func(PointerContext) { clicked = true }
	s.Root().AddChild(n)

	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "click", "x": 50, "y": 50}]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(runner)

	// Frame 1 queues press and release, then consumes the press.
	s.Update(1.0 / 60)
	if runner.Done() {
		t.Error("runner should not be done while injections are pending")
	}
	// Frame 2 consumes the release.
	s.Update(1.0 / 60)
	// Frame 3 sees an empty queue and finishes.
	s.Update(1.0 / 60)

	if !clicked {
		t.Error("scripted click did not reach the node")
	}
	if !runner.Done() {
		t.Error("runner should be done after the queue drained")
	}
}

func TestRunnerStep_Wait(t *testing.T) {
	s := NewScene(100, 100)
	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "wait", "frames": 3},
		{"action": "snapshot", "label": "done"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		runner.step(s)
		if runner.Done() {
			t.Fatalf("done during wait at frame %d", i+1)
		}
	}
	runner.step(s)
	if !runner.Done() {
		t.Error("runner should be done after the snapshot step")
	}
	if len(s.snapshotQueue) != 1 || s.snapshotQueue[0] != "done" {
		t.Errorf("snapshotQueue = %v, want [done]", s.snapshotQueue)
	}
}

func TestRunnerStep_Drag(t *testing.T) {
	s := NewScene(400, 400)
	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "drag", "fromX": 10, "fromY": 10, "toX": 200, "toY": 200, "frames": 4}]}`))
	if err != nil {
		t.Fatal(err)
	}
	runner.step(s)
	if len(s.injectQueue) != 4 {
		t.Fatalf("queued = %d, want 4", len(s.injectQueue))
	}
}

func TestRunnerStep_Key(t *testing.T) {
	s := NewScene(100, 100)
	var keys []string
	s.OnKey(func(k string) { keys = append(keys, k) })
	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "key", "key": "next"}, {"action": "key", "key": "prev"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(runner)

	s.Update(1.0 / 60)
	s.Update(1.0 / 60)

	if len(keys) != 2 || keys[0] != "next" || keys[1] != "prev" {
		t.Errorf("keys = %v, want [next prev]", keys)
	}
	if !runner.Done() {
		t.Error("runner should be done")
	}
}

func TestRunnerWaitsForInjectQueue(t *testing.T) {
	s := NewScene(100, 100)
	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "click", "x": 50, "y": 50},
		{"action": "snapshot", "label": "after"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}

	runner.step(s)
	runner.step(s)
	if runner.cursor != 1 {
		t.Errorf("cursor = %d, want 1 while the queue is not drained", runner.cursor)
	}

	s.injectQueue = s.injectQueue[:0]
	runner.step(s)
	if len(s.snapshotQueue) != 1 || s.snapshotQueue[0] != "after" {
		t.Errorf("snapshotQueue = %v, want [after]", s.snapshotQueue)
	}
	if !runner.Done() {
		t.Error("runner should be done")
	}
}

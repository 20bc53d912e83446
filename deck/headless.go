package deck

import (
	"fmt"
	"os"

	"github.com/phanxgames/recdeck"
)

// headlessDT is the fixed frame step used without a window.
const headlessDT = float32(1.0 / 60)

// RunScript drives the deck with a JSON script without opening a window,
// writing the script's snapshots to dir. It stops after maxFrames even if
// the script has not finished.
func (d *Deck) RunScript(script []byte, dir string, maxFrames int) error {
	runner, err := recdeck.LoadTestScript(script)
	if err != nil {
		return err
	}
	d.Scene.SnapshotDir = dir
	d.Scene.SetTestRunner(runner)

	for i := 0; i < maxFrames; i++ {
		if err := d.Scene.Update(headlessDT); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		d.Scene.FlushSnapshots()
		if runner.Done() {
			d.log.Info().Int("frames", i+1).Str("dir", dir).Msg("script finished")
			return nil
		}
	}
	return fmt.Errorf("script not finished after %d frames", maxFrames)
}

// SnapshotAll writes one SVG per slide to dir, letting each slide settle
// for the given number of frames first.
func (d *Deck) SnapshotAll(dir string, settle int) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	d.Scene.SnapshotDir = dir
	for i := range d.slides {
		d.Go(i)
		for f := 0; f < settle; f++ {
			if err := d.Scene.Update(headlessDT); err != nil {
				return fmt.Errorf("slide %d: %w", i, err)
			}
		}
		d.Scene.Snapshot(fmt.Sprintf("slide%d-%s", i, d.slides[i].View))
		d.Scene.FlushSnapshots()
	}
	return nil
}

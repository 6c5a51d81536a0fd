package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/nathoo/dundork/engine"
	"github.com/nathoo/dundork/rng"
	"github.com/nathoo/dundork/types"
)

func testWorld() *types.World {
	a := &types.Location{ID: types.StartRoomID, Story: "The entrance hall.", Desc: "the hall", Tag: types.TagSafe}
	b := &types.Location{ID: 2, Story: "A dusty corridor.", Desc: "the corridor", Tag: types.TagSafe}
	a.SetExit(types.East, 2)
	b.SetExit(types.West, types.StartRoomID)
	w := &types.World{
		Locations: []*types.Location{a, b},
		Items:     []*types.Item{{ID: types.ItemTorch, Name: "Torch", Desc: "a torch"}},
	}
	w.Reindex()
	return w
}

func runSession(t *testing.T, input string) string {
	t.Helper()
	var out bytes.Buffer
	c := New(nil)
	c.In = strings.NewReader(input)
	c.Out = &out

	eng := engine.New(engine.Config{
		World: testWorld(),
		RNG:   rng.New(3),
		IO:    c.IO(),
	})
	c.Run(eng)
	return out.String()
}

func TestRunShowsIntroAndRoom(t *testing.T) {
	out := runSession(t, "quit\ny\n")
	if !strings.Contains(out, "collect 3 relics") {
		t.Fatal("instruction banner missing")
	}
	if !strings.Contains(out, "The entrance hall.") {
		t.Fatal("starting room story missing")
	}
	if !strings.Contains(out, "Goodbye.") {
		t.Fatal("missing sign-off")
	}
}

func TestMovementAndLook(t *testing.T) {
	out := runSession(t, "e\nquit\ny\n")
	if !strings.Contains(out, "A dusty corridor.") {
		t.Fatal("movement east not reflected in output")
	}
}

func TestEOFQuitsCleanly(t *testing.T) {
	out := runSession(t, "look\n")
	if !strings.Contains(out, "Goodbye.") {
		t.Fatal("EOF must end the session cleanly")
	}
}

func TestMetaCommands(t *testing.T) {
	out := runSession(t, "/state\n/meta\n/bogus\nquit\ny\n")
	if !strings.Contains(out, "Run: ") {
		t.Fatal("/state output missing")
	}
	if !strings.Contains(out, "Unlocked classes") {
		t.Fatal("/meta output missing")
	}
	if !strings.Contains(out, "Unknown command") {
		t.Fatal("unknown meta-command not reported")
	}
}

func TestCommentLinesSkipped(t *testing.T) {
	out := runSession(t, "# scripted playback\nquit\ny\n")
	if strings.Contains(out, "do not understand") {
		t.Fatal("comment line reached the parser")
	}
}

func TestLongLinesWrapped(t *testing.T) {
	var out bytes.Buffer
	c := New(nil)
	c.Out = &out
	c.Width = 20
	c.printLine("one two three four five six seven eight nine ten")
	for _, line := range strings.Split(strings.TrimRight(out.String(), "\n"), "\n") {
		if len(line) > 20 {
			t.Fatalf("line longer than width: %q", line)
		}
	}
}

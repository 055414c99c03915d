package pokeclock

import (
	"testing"
	"time"

	"github.com/tanema/gween/ease"

	"github.com/xyzrian/PokeClock/model"
)

var (
	green = model.Color{G: 255}
	blue  = model.Color{B: 255}
	epoch = time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)
)

func TestAnimationStartEmpty(t *testing.T) {
	anim := NewHorizontal("empty", nil, Left, 5*time.Second, 6, 0)
	anim.Start(epoch)

	if anim.Active() || anim.Started() {
		t.Error("Expected an animation without frames to stay inactive")
	}
	if anim.UpdateAndDraw(model.NewFrame(8, 8), epoch) {
		t.Error("Expected nothing to be drawn")
	}
}

func TestAnimationUnstarted(t *testing.T) {
	anim := NewHorizontal("idle", frameSet(2, 2, red), Left, time.Second, 6, 0)
	if anim.UpdateAndDraw(model.NewFrame(8, 8), epoch) {
		t.Error("Expected an unstarted animation to draw nothing")
	}
}

func TestAnimationExpires(t *testing.T) {
	anim := NewHorizontal("short", frameSet(2, 2, red), Left, time.Second, 6, 0)
	anim.Start(epoch)

	if !anim.UpdateAndDraw(model.NewFrame(8, 8), epoch.Add(500*time.Millisecond)) {
		t.Fatal("Expected the animation to draw within its duration")
	}

	f := model.NewFrame(8, 8)
	before := snapshot(f)
	if anim.UpdateAndDraw(f, epoch.Add(time.Second)) {
		t.Error("Expected the animation to finish once its duration elapsed")
	}
	if anim.Active() || anim.Started() {
		t.Error("Expected a finished animation to reset itself")
	}
	if !equalPix(before, f.Pix()) {
		t.Error("Expected nothing to be drawn on the tick the animation finishes")
	}
}

func TestAnimationReset(t *testing.T) {
	anim := NewHorizontal("reset", frameSet(2, 2, red), Left, time.Second, 6, 0)
	anim.Start(epoch)
	anim.Reset()

	if anim.Active() || anim.Started() {
		t.Error("Expected reset to clear the animation")
	}
}

func TestHorizontalSlide(t *testing.T) {
	tests := []struct {
		name    string
		dir     Direction
		elapsed time.Duration
		wantX   int
	}{
		// 64 wide canvas, 8 wide sprite, 72 pixels covered in 4 seconds
		{"left start", Left, 0, 64},
		{"left middle", Left, 2 * time.Second, 28},
		{"left late", Left, 3 * time.Second, 10},
		{"right start", Right, 0, -8},
		{"right middle", Right, 2 * time.Second, 28},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			anim := NewHorizontal("slide", frameSet(8, 4, red), tt.dir, 4*time.Second, 6, 3)
			anim.Start(epoch)

			f := model.NewFrame(64, 32)
			if !anim.UpdateAndDraw(f, epoch.Add(tt.elapsed)) {
				t.Fatal("Expected the animation to be drawn")
			}

			// Find the leftmost column holding the sprite
			x := -1
			for col := 0; col < 64 && x < 0; col++ {
				if f.Pixel(col, 3) == red {
					x = col
				}
			}
			wantVisible := tt.wantX
			if wantVisible < 0 {
				wantVisible = 0
			}
			if tt.wantX+8 <= 0 || tt.wantX >= 64 {
				wantVisible = -1
			}
			if x != wantVisible {
				t.Errorf("Expected sprite at column %d, found %d", wantVisible, x)
			}
			if wantVisible >= 0 && (f.Pixel(wantVisible, 2) == red || f.Pixel(wantVisible, 7) == red) {
				t.Error("Expected the sprite to occupy rows 3 to 6 only")
			}
		})
	}
}

func TestSlidePositionTruncates(t *testing.T) {
	tests := []struct {
		spriteW  int
		duration time.Duration
		elapsed  time.Duration
		want     int
	}{
		// 64 - 70 * (3.6 / 7) sits just below 28
		{6, 7 * time.Second, 3600 * time.Millisecond, 27},
		{8, 4 * time.Second, 1 * time.Second, 46},
		{10, 5 * time.Second, 4999 * time.Millisecond, -9},
	}

	canvas := model.NewFrame(64, 32)
	for _, tt := range tests {
		anim := NewHorizontal("slide", frameSet(tt.spriteW, 4, red), Left, tt.duration, 6, 0)
		if x, _ := anim.horizontal(canvas, tt.elapsed); x != tt.want {
			t.Errorf("Sprite %d wide after %v of %v, expected x %d, got %d", tt.spriteW, tt.elapsed, tt.duration, tt.want, x)
		}
	}
}

func TestSlideEasing(t *testing.T) {
	anim := NewHorizontal("eased", frameSet(8, 4, red), Left, 4*time.Second, 6, 0)
	anim.Ease = ease.InQuad

	canvas := model.NewFrame(64, 32)
	tests := []struct {
		elapsed time.Duration
		want    int
	}{
		{0, 64},
		{2 * time.Second, 46}, // a quarter of the way at half time
		{3 * time.Second, 23},
	}
	for _, tt := range tests {
		if x, _ := anim.horizontal(canvas, tt.elapsed); x != tt.want {
			t.Errorf("After %v expected x %d, got %d", tt.elapsed, tt.want, x)
		}
	}
}

func TestThreePhaseTallSprite(t *testing.T) {
	anim := NewThreePhase("giant", frameSet(10, 33, red), 2*time.Second, 3*time.Second, 8)
	if _, y := anim.threePhase(model.NewFrame(64, 32), 3*time.Second); y != -1 {
		t.Errorf("Expected a sprite one row taller than the canvas to start at row -1, got %d", y)
	}
}

func TestFrameIndexCycles(t *testing.T) {
	anim := NewHorizontal("cycle", frameSet(1, 1, red, green, blue), Left, time.Minute, 2, 0)

	tests := []struct {
		elapsed time.Duration
		want    model.Color
	}{
		{0, red},
		{499 * time.Millisecond, red},
		{500 * time.Millisecond, green},
		{1200 * time.Millisecond, blue},
		{1500 * time.Millisecond, red},
		{59 * time.Second, green},
	}

	for _, tt := range tests {
		c, _ := anim.frame(tt.elapsed).At(0, 0)
		if c != tt.want {
			t.Errorf("At %v expected frame color %v, got %v", tt.elapsed, tt.want, c)
		}
	}
}

func TestThreePhaseSlide(t *testing.T) {
	anim := NewThreePhase("haunter", frameSet(10, 8, red), 2*time.Second, 3*time.Second, 8)
	if anim.Duration != 7*time.Second {
		t.Fatalf("Expected a 7s duration, got %v", anim.Duration)
	}

	canvas := model.NewFrame(64, 32)
	tests := []struct {
		name    string
		elapsed time.Duration
		wantX   int
	}{
		{"entering", 0, 64},
		{"half in", time.Second, 59},
		{"resting", 2 * time.Second, 54},
		{"holding", 4 * time.Second, 54},
		{"half out", 6 * time.Second, 59},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := anim.threePhase(canvas, tt.elapsed)
			if x != tt.wantX {
				t.Errorf("Expected x %d, got %d", tt.wantX, x)
			}
			if y != 12 {
				t.Errorf("Expected the sprite to be centered at row 12, got %d", y)
			}
		})
	}

	anim.Start(epoch)
	if anim.UpdateAndDraw(canvas, epoch.Add(7*time.Second)) {
		t.Error("Expected the three phase animation to finish after 7s")
	}
}

func newChain(durations ...time.Duration) *Chain {
	members := []*Animation{}
	for i, d := range durations {
		members = append(members, NewHorizontal("member", frameSet(2, 2, model.Color{R: uint8(i + 1)}), Left, d, 6, 0))
	}
	return NewChain(members...)
}

func TestChainAdvances(t *testing.T) {
	chain := newChain(time.Second, time.Second, time.Second)
	canvas := model.NewFrame(8, 8)

	for i := 0; i < 3; i++ {
		now := epoch.Add(time.Duration(i) * time.Second)
		if !chain.UpdateAndDraw(canvas, now) {
			t.Fatalf("Expected tick %d to draw", i)
		}
		if chain.Cursor() != i {
			t.Fatalf("Expected cursor %d, got %d", i, chain.Cursor())
		}
		active := 0
		for idx, anim := range chain.Members() {
			if anim.Active() {
				active++
				if idx != i {
					t.Errorf("Expected member %d to be the active one, found %d", i, idx)
				}
			}
		}
		if active != 1 {
			t.Errorf("Expected exactly one active member, found %d", active)
		}
	}

	if chain.UpdateAndDraw(canvas, epoch.Add(3*time.Second)) {
		t.Error("Expected the chain to be exhausted")
	}
	if chain.Cursor() != 3 || !chain.Exhausted() {
		t.Errorf("Expected cursor 3, got %d", chain.Cursor())
	}
	if chain.UpdateAndDraw(canvas, epoch.Add(10*time.Second)) {
		t.Error("Expected an exhausted chain to stay exhausted")
	}
}

func TestChainNoGapTick(t *testing.T) {
	chain := newChain(time.Second, time.Second)
	canvas := model.NewFrame(8, 8)

	chain.UpdateAndDraw(canvas, epoch)
	if !chain.UpdateAndDraw(canvas, epoch.Add(time.Second)) {
		t.Fatal("Expected the second member to draw on the tick the first finished")
	}
	second := chain.Members()[1]
	if !second.Active() || chain.Cursor() != 1 {
		t.Error("Expected the second member to have been started")
	}
}

func TestChainSkipsEmptyMembers(t *testing.T) {
	chain := NewChain(
		NewHorizontal("missing", nil, Left, time.Second, 6, 0),
		NewHorizontal("present", frameSet(2, 2, red), Left, time.Second, 6, 0),
	)
	if !chain.UpdateAndDraw(model.NewFrame(8, 8), epoch) {
		t.Fatal("Expected the chain to move past a member without frames")
	}
	if chain.Cursor() != 1 {
		t.Errorf("Expected cursor 1, got %d", chain.Cursor())
	}
}

func TestChainReset(t *testing.T) {
	chain := newChain(time.Second, time.Second, time.Second)
	canvas := model.NewFrame(8, 8)

	chain.UpdateAndDraw(canvas, epoch)
	chain.UpdateAndDraw(canvas, epoch.Add(1500*time.Millisecond))
	chain.Reset()

	if chain.Cursor() != 0 {
		t.Errorf("Expected cursor 0 after reset, got %d", chain.Cursor())
	}
	for i, anim := range chain.Members() {
		if anim.Active() || anim.Started() {
			t.Errorf("Expected member %d to be reset", i)
		}
	}

	if !chain.UpdateAndDraw(canvas, epoch.Add(5*time.Second)) || chain.Cursor() != 0 {
		t.Error("Expected the chain to play again from the first member")
	}
}

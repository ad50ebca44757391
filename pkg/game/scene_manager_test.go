package game

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// recordingScene 记录调用的测试场景
type recordingScene struct {
	updates   int
	draws     int
	deltaTime float64
}

func (s *recordingScene) Update(deltaTime float64) {
	s.updates++
	s.deltaTime = deltaTime
}

func (s *recordingScene) Draw(screen *ebiten.Image) {
	s.draws++
}

// resizableScene 额外记录 Resize 调用
type resizableScene struct {
	recordingScene
	sizes [][2]int
}

func (s *resizableScene) Resize(width, height int) {
	s.sizes = append(s.sizes, [2]int{width, height})
}

func TestSceneManager_NoSceneIsNoop(t *testing.T) {
	sm := NewSceneManager()
	if sm.GetCurrentScene() != nil {
		t.Fatal("new manager should have no scene")
	}

	// 没有场景时不应 panic
	sm.Update(1.0 / 60)
	sm.Draw(ebiten.NewImage(4, 4))
	sm.Resize(640, 480)

	if w, h := sm.Size(); w != 640 || h != 480 {
		t.Errorf("size should be recorded without a scene, got %dx%d", w, h)
	}
}

func TestSceneManager_ForwardsToCurrentScene(t *testing.T) {
	sm := NewSceneManager()
	loading := &recordingScene{}
	spawner := &recordingScene{}

	sm.SwitchTo(loading)
	sm.Update(0.016)
	sm.Draw(ebiten.NewImage(4, 4))

	sm.SwitchTo(spawner)
	sm.Update(0.016)
	sm.Update(0.016)

	if loading.updates != 1 || loading.draws != 1 {
		t.Errorf("loading scene: updates=%d draws=%d, want 1/1", loading.updates, loading.draws)
	}
	if spawner.updates != 2 || spawner.draws != 0 {
		t.Errorf("spawner scene: updates=%d draws=%d, want 2/0", spawner.updates, spawner.draws)
	}
	if spawner.deltaTime != 0.016 {
		t.Errorf("deltaTime not forwarded, got %v", spawner.deltaTime)
	}
}

func TestSceneManager_SwitchByName(t *testing.T) {
	sm := NewSceneManager()
	created := 0
	sm.RegisterScene("spawner", func() Scene {
		created++
		return &recordingScene{}
	})
	sm.RegisterScene("broken", func() Scene { return nil })

	tests := []struct {
		name string
		want bool
	}{
		{"spawner", true},
		{"missing", false},
		{"broken", false},
	}
	for _, tt := range tests {
		if got := sm.Switch(tt.name); got != tt.want {
			t.Errorf("Switch(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}

	if created != 1 {
		t.Errorf("factory should run once, ran %d times", created)
	}
	if _, ok := sm.GetCurrentScene().(*recordingScene); !ok {
		t.Error("failed switches should keep the previous scene")
	}
}

func TestSceneManager_Resize(t *testing.T) {
	sm := NewSceneManager()
	scene := &resizableScene{}

	// 尚未收到尺寸时切换不通知
	sm.SwitchTo(scene)
	if len(scene.sizes) != 0 {
		t.Fatalf("no size known yet, got %v", scene.sizes)
	}

	sm.Resize(1280, 720)
	sm.Resize(1280, 720) // 尺寸未变化
	sm.Resize(800, 600)

	next := &resizableScene{}
	sm.SwitchTo(next)

	want := [][2]int{{1280, 720}, {800, 600}}
	if len(scene.sizes) != len(want) {
		t.Fatalf("expected %v, got %v", want, scene.sizes)
	}
	for i := range want {
		if scene.sizes[i] != want[i] {
			t.Errorf("resize %d: expected %v, got %v", i, want[i], scene.sizes[i])
		}
	}
	if len(next.sizes) != 1 || next.sizes[0] != [2]int{800, 600} {
		t.Errorf("new scene should receive the current size, got %v", next.sizes)
	}
}

package systems

import (
	"testing"

	"github.com/decker502/pomburst/pkg/components"
)

func TestSpritePool_AcquireCreatesFreeObject(t *testing.T) {
	pool := NewSpritePool(fakeFrames{"char_01": 12})

	id, obj, ok := pool.Acquire("char_01", false)
	if !ok {
		t.Fatal("Acquire should succeed for a key with frames")
	}
	if obj.Key != "char_01" || obj.TotalFrames != 12 {
		t.Errorf("unexpected object %+v", obj)
	}
	if obj.State != components.StateFree {
		t.Errorf("acquired object must not be active yet, got %s", obj.State)
	}
	if pool.Get(id) != obj {
		t.Error("Get should return the acquired object")
	}
	if pool.Len() != 1 || pool.Count("char_01") != 1 {
		t.Errorf("expected 1 pooled object, got len=%d count=%d", pool.Len(), pool.Count("char_01"))
	}
}

func TestSpritePool_AcquireWithoutActivateReturnsSameObject(t *testing.T) {
	pool := NewSpritePool(fakeFrames{"char_01": 12})

	id1, _, _ := pool.Acquire("char_01", false)
	id2, _, _ := pool.Acquire("char_01", false)
	if id1 != id2 {
		t.Errorf("unactivated object should be handed out again, got %d and %d", id1, id2)
	}
	if pool.Len() != 1 {
		t.Errorf("pool should not grow, got %d", pool.Len())
	}
}

func TestSpritePool_ActiveObjectIsNotReused(t *testing.T) {
	pool := NewSpritePool(fakeFrames{"char_01": 12})

	id1, _, _ := pool.Acquire("char_01", false)
	if !pool.Activate(id1) {
		t.Fatal("Activate should succeed")
	}
	id2, _, _ := pool.Acquire("char_01", false)
	if id1 == id2 {
		t.Fatal("active object must not be returned by Acquire")
	}
	if pool.Len() != 2 {
		t.Errorf("expected pool to grow to 2, got %d", pool.Len())
	}
	if pool.Activate(id1) {
		t.Error("activating an active object should fail")
	}
}

func TestSpritePool_MissingAssetIsSoftFailure(t *testing.T) {
	pool := NewSpritePool(fakeFrames{"char_01": 0})

	for _, key := range []string{"char_01", "unknown"} {
		id, obj, ok := pool.Acquire(key, false)
		if ok || obj != nil || id != 0 {
			t.Errorf("Acquire(%q) should fail softly, got id=%d ok=%v", key, id, ok)
		}
	}
	if pool.Len() != 0 {
		t.Errorf("failed acquisitions must not grow the pool, got %d", pool.Len())
	}
}

func TestSpritePool_RetiredObjectIsReusedByKey(t *testing.T) {
	pool := NewSpritePool(fakeFrames{"char_01": 12, "shockwave": 8})

	charID, _, _ := pool.Acquire("char_01", false)
	pool.Activate(charID)
	pool.markFree(charID, components.RetireAnimationDone)

	// 其它 Key 不会复用该对象
	waveID, wave, _ := pool.Acquire("shockwave", true)
	if waveID == charID {
		t.Fatal("object created for char_01 must not be reused for shockwave")
	}
	if !wave.IsShockwave {
		t.Error("shockwave flag should be set on creation")
	}

	reusedID, reused, ok := pool.Acquire("char_01", false)
	if !ok || reusedID != charID {
		t.Fatalf("expected retired object %d to be reused, got %d", charID, reusedID)
	}
	if reused.LastRetire != components.RetireAnimationDone {
		t.Errorf("expected last retire reason to be kept, got %s", reused.LastRetire)
	}
	if pool.Count("char_01") != 1 {
		t.Errorf("expected a single char_01 object, got %d", pool.Count("char_01"))
	}
}

func TestSpritePool_MarkFreeIsIdempotent(t *testing.T) {
	pool := NewSpritePool(fakeFrames{"char_01": 12})

	id, _, _ := pool.Acquire("char_01", false)
	pool.Activate(id)
	pool.markFree(id, components.RetireOutOfBounds)
	pool.markFree(id, components.RetireFault)

	if n := pool.FreeCount("char_01"); n != 1 {
		t.Errorf("double retirement must not duplicate the free entry, got %d", n)
	}
	if reason := pool.Get(id).LastRetire; reason != components.RetireOutOfBounds {
		t.Errorf("second retirement should be ignored, got %s", reason)
	}
}

func TestSpritePool_ActiveCount(t *testing.T) {
	pool := NewSpritePool(fakeFrames{"char_01": 12})

	for i := 0; i < 3; i++ {
		id, _, _ := pool.Acquire("char_01", false)
		pool.Activate(id)
	}
	id, _, _ := pool.Acquire("char_01", false)
	pool.Activate(id)
	pool.markFree(id, components.RetireAnimationDone)

	if n := pool.ActiveCount(); n != 3 {
		t.Errorf("expected 3 active objects, got %d", n)
	}
}

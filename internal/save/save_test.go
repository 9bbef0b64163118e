package save

import (
	"path/filepath"
	"testing"
	"time"

	"sparselife/internal/geom"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "saves.json"))
}

func TestMissingFileIsEmpty(t *testing.T) {
	st := tempStore(t)
	saves, err := st.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(saves) != 0 {
		t.Fatalf("fresh store listed %d saves", len(saves))
	}
}

func TestAddListRoundTrip(t *testing.T) {
	st := tempStore(t)
	snap := Snapshot{
		Cells:   []geom.Point{geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(-3, 7)},
		Scale:   0.1,
		Offset:  geom.V(0.25, -1.5),
		Created: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Name:    "glider ramp",
	}
	if err := st.Add(snap); err != nil {
		t.Fatalf("Add: %v", err)
	}

	saves, err := st.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(saves) != 1 {
		t.Fatalf("listed %d saves, expected 1", len(saves))
	}
	got := saves[0]
	if got.Name != snap.Name || got.Scale != snap.Scale || got.Offset != snap.Offset {
		t.Fatalf("round-tripped snapshot %+v, expected %+v", got, snap)
	}
	if !got.Created.Equal(snap.Created) {
		t.Fatalf("created = %v, expected %v", got.Created, snap.Created)
	}

	set := got.LivingSet()
	if set.Count() != 3 || !set.Contains(geom.Pt(-3, 7)) {
		t.Fatalf("living set %v, expected the 3 saved cells", set)
	}
}

func TestDelete(t *testing.T) {
	st := tempStore(t)
	for _, name := range []string{"a", "b", "c"} {
		if err := st.Add(Snapshot{Name: name, Created: time.Now()}); err != nil {
			t.Fatalf("Add %q: %v", name, err)
		}
	}

	if ok, err := st.Delete(5); err != nil || ok {
		t.Fatalf("Delete(5) = (%v, %v), expected (false, nil)", ok, err)
	}
	if ok, err := st.Delete(1); err != nil || !ok {
		t.Fatalf("Delete(1) = (%v, %v), expected (true, nil)", ok, err)
	}

	saves, err := st.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(saves) != 2 || saves[0].Name != "a" || saves[1].Name != "c" {
		t.Fatalf("after delete saves = %v, expected [a c]", saves)
	}
}

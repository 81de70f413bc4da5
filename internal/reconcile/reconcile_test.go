package reconcile

import (
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

type line struct {
	id  string
	qty int
}

func lineKey(l line) string { return l.id }

func maxQty(remote, local line) line {
	if local.qty > remote.qty {
		return local
	}
	return remote
}

func TestUnion(t *testing.T) {
	tests := []struct {
		name    string
		remote  []line
		local   []line
		combine func(line, line) line
		want    []line
	}{
		{
			name:   "disjoint sets are concatenated",
			remote: []line{{"a", 1}},
			local:  []line{{"b", 2}},
			want:   []line{{"a", 1}, {"b", 2}},
		},
		{
			name:   "shared key keeps remote without combine",
			remote: []line{{"a", 1}, {"b", 1}},
			local:  []line{{"b", 5}, {"c", 1}},
			want:   []line{{"a", 1}, {"b", 1}, {"c", 1}},
		},
		{
			name:    "shared key combined",
			remote:  []line{{"a", 1}, {"b", 1}},
			local:   []line{{"b", 5}},
			combine: maxQty,
			want:    []line{{"a", 1}, {"b", 5}},
		},
		{
			name:   "duplicates inside one side collapse",
			remote: []line{{"a", 1}, {"a", 2}},
			local:  []line{{"c", 1}, {"c", 3}},
			want:   []line{{"a", 1}, {"c", 1}},
		},
		{
			name: "both empty",
			want: []line{},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := Union(test.remote, test.local, lineKey, test.combine)
			if diff := cmp.Diff(test.want, got, cmp.AllowUnexported(line{})); diff != "" {
				t.Errorf("Union() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUnionIsIdempotent(t *testing.T) {
	remote := []line{{"a", 1}, {"b", 2}}
	local := []line{{"b", 3}, {"c", 1}}

	once := Union(remote, local, lineKey, maxQty)
	twice := Union(once, local, lineKey, maxQty)

	assert.Equal(t, once, twice)
}

func TestMissing(t *testing.T) {
	got := Missing([]line{{"a", 1}, {"b", 1}}, []line{{"b", 1}, {"c", 1}, {"c", 2}}, lineKey)
	assert.Equal(t, []line{{"c", 1}}, got)

	assert.Empty(t, Missing([]line{{"a", 1}}, nil, lineKey))
}

func TestGate(t *testing.T) {
	g := NewGate(time.Hour)
	first := Key{SessionID: "s1", UserID: "u1", SignInID: "jti-1"}
	assert.False(t, g.Done(first))

	g.Mark(first)
	assert.True(t, g.Done(first))
	assert.False(t, g.Done(Key{SessionID: "s2", UserID: "u1", SignInID: "jti-1"}))
	assert.False(t, g.Done(Key{SessionID: "s1", UserID: "u2", SignInID: "jti-1"}))

	t.Run("given a new sign-in on the same session should merge again", func(t *testing.T) {
		assert.False(t, g.Done(Key{SessionID: "s1", UserID: "u1", SignInID: "jti-2"}))
	})

	g.Reset(first)
	assert.False(t, g.Done(first))
}

func TestGateExpiry(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	g := NewGate(time.Hour)
	g.now = func() time.Time { return now }

	old := Key{SessionID: "s1", UserID: "u1", SignInID: "jti-1"}
	g.Mark(old)
	assert.True(t, g.Done(old))

	now = now.Add(time.Hour)
	assert.False(t, g.Done(old))

	g.Mark(Key{SessionID: "s2", UserID: "u1", SignInID: "jti-2"})
	assert.Equal(t, 1, g.Len())
}

func TestGateConcurrentMark(t *testing.T) {
	g := NewGate(time.Hour)
	k := Key{SessionID: "s", UserID: "u", SignInID: "j"}
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g.Mark(k)
			_ = g.Done(k)
		}()
	}
	wg.Wait()
	assert.True(t, g.Done(k))
}

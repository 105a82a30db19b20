//go:build aurumdebug

package cellguard

import "testing"

func TestReentrantEnterPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on reentrant Enter")
		}
	}()
	var g Guard
	g.Enter()
	g.Enter()
}

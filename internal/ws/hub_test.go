package ws

import (
	"testing"
	"time"
)

func TestHubCloseUnblocksLateClients(t *testing.T) {
	// The run loop is already gone; a client upgrading after shutdown
	// must not hang on the hub
	h := NewHub()
	h.Close()
	released := make(chan struct{})
	go func() {
		h.Register(nil)
		h.Unregister(nil)
		h.Broadcast([]byte(`{"type":"noop"}`))
		close(released)
	}()

	select {
	case <-released:
	case <-time.After(time.Second):
		t.Fatal("register/unregister blocked after hub shutdown")
	}
}

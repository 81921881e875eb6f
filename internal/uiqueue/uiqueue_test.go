package uiqueue_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pkroam/pkroam/internal/uiqueue"
)

func TestQueue_RunsCommandsInOrder(t *testing.T) {
	q := uiqueue.New(8)
	var order []int

	for i := 0; i < 5; i++ {
		i := i
		q.Submit(func() {
			order = append(order, i)
		})
	}
	q.Terminate()

	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestQueue_TerminateStopsWorker(t *testing.T) {
	q := uiqueue.New(1)
	done := make(chan struct{})
	go func() {
		q.Terminate()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Terminate did not return in time")
	}
}

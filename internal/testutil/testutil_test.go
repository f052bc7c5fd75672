package testutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/recordq/internal/record"
)

func TestSequence_NextIncrementsFromOne(t *testing.T) {
	seq := NewSequence()
	assert.Equal(t, int64(0), seq.Current())
	assert.Equal(t, int64(1), seq.Next())
	assert.Equal(t, int64(2), seq.Next())
	assert.Equal(t, int64(2), seq.Current())
}

func TestSequence_Reset(t *testing.T) {
	seq := NewSequence()
	seq.Next()
	seq.Next()
	seq.Reset()
	assert.Equal(t, int64(0), seq.Current())
	assert.Equal(t, int64(1), seq.Next())
}

func TestSequence_Concurrent(t *testing.T) {
	seq := NewSequence()
	const workers, calls = 50, 100

	seen := make(chan int64, workers*calls)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < calls; j++ {
				seen <- seq.Next()
			}
		}()
	}
	wg.Wait()
	close(seen)

	unique := make(map[int64]bool)
	for v := range seen {
		require.False(t, unique[v], "duplicate value %d", v)
		unique[v] = true
	}
	assert.Equal(t, int64(workers*calls), seq.Current())
}

func TestEmployees_FreshCopy(t *testing.T) {
	a := Employees()
	*a[0].Age = 99
	b := Employees()
	assert.Equal(t, int64(30), *b[0].Age)
	assert.Equal(t, []int64{1, 2, 3}, record.IDs(b))
}

func TestWithout(t *testing.T) {
	rec := Employees()[0]

	noAge := WithoutAge(rec)
	assert.Nil(t, noAge.Age)
	assert.NotNil(t, rec.Age)

	noID := WithoutID(rec)
	assert.False(t, noID.HasID())
	assert.True(t, rec.HasID())
}

package tgbotbase

import (
	"context"
	"math/rand"
	"sync/atomic"
	"testing"
	"time"
)

type testCronCountingJob struct {
	count          atomic.Int32
	repeat         time.Duration
	repeatMaxCount int32
}

func (j *testCronCountingJob) Do(t time.Time, c Cron) {
	n := j.count.Add(1)
	if j.repeat > 0 && n < j.repeatMaxCount {
		c.AddJob(t.Add(j.repeat), j)
	}
}

func newTestCron(t *testing.T) Cron {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return NewCron(ctx)
}

func TestCallOnce(t *testing.T) {
	c := newTestCron(t)
	j := &testCronCountingJob{}
	c.AddJob(time.Now(), j)
	time.Sleep(100 * time.Millisecond)
	if n := j.count.Load(); n != 1 {
		t.Fatal(n)
	}
}

func TestCallXTimes(t *testing.T) {
	c := newTestCron(t)
	j := &testCronCountingJob{}

	now := time.Now()
	n := 5 + rand.Int31n(5)
	for i := int32(0); i < n; i++ {
		c.AddJob(now, j)
	}

	time.Sleep(100 * time.Millisecond)
	if got := j.count.Load(); got != n {
		t.Fatal(got, n)
	}
}

func testDifferentTimes(t *testing.T, steps []int) {
	c := newTestCron(t)
	j := &testCronCountingJob{}
	now := time.Now()
	for _, s := range steps {
		c.AddJob(now.Add(time.Duration(s)*100*time.Millisecond), j)
	}
	time.Sleep(time.Duration(len(steps)+1) * 100 * time.Millisecond)
	if n := j.count.Load(); n != int32(len(steps)) {
		t.Fatal(n, len(steps))
	}
}

func TestDifferentTimesRandom(t *testing.T) {
	steps := []int{1, 2, 3, 4, 5, 6, 7}
	rand.Shuffle(len(steps), func(i int, j int) {
		steps[i], steps[j] = steps[j], steps[i]
	})
	testDifferentTimes(t, steps)
}

func TestDifferentTimesAsc(t *testing.T) {
	testDifferentTimes(t, []int{1, 2, 3, 4, 5, 6, 7})
}

func TestDifferentTimesDesc(t *testing.T) {
	testDifferentTimes(t, []int{7, 6, 5, 4, 3, 2, 1})
}

func TestRepeatXTimes(t *testing.T) {
	c := newTestCron(t)
	repeatN := 3 + rand.Int31n(3)
	j := &testCronCountingJob{
		repeat:         100 * time.Millisecond,
		repeatMaxCount: repeatN}

	c.AddJob(time.Now(), j)

	time.Sleep(time.Second)
	if n := j.count.Load(); n != repeatN {
		t.Fatal(n, repeatN)
	}
}

func TestStoppedCronSkipsJobs(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	c := NewCron(ctx)
	j := &testCronCountingJob{}
	c.AddJob(time.Now().Add(200*time.Millisecond), j)
	cancel()

	time.Sleep(300 * time.Millisecond)
	c.AddJob(time.Now(), j)
	if n := j.count.Load(); n != 0 {
		t.Fatal(n)
	}
}

func TestCalcNextTimeFromMidnight(t *testing.T) {
	loc := time.UTC
	tests := []struct {
		now  time.Time
		from time.Duration
		want time.Time
	}{
		{time.Date(2020, 4, 1, 8, 0, 0, 0, loc), 9*time.Hour + 30*time.Minute, time.Date(2020, 4, 1, 9, 30, 0, 0, loc)},
		{time.Date(2020, 4, 1, 10, 0, 0, 0, loc), 9*time.Hour + 30*time.Minute, time.Date(2020, 4, 2, 9, 30, 0, 0, loc)},
		{time.Date(2020, 4, 1, 9, 30, 0, 0, loc), 9*time.Hour + 30*time.Minute, time.Date(2020, 4, 1, 9, 30, 0, 0, loc)},
		{time.Date(2020, 12, 31, 23, 0, 0, 0, loc), 0, time.Date(2021, 1, 1, 0, 0, 0, 0, loc)},
	}
	for _, tt := range tests {
		if got := CalcNextTimeFromMidnight(tt.now, tt.from); !got.Equal(tt.want) {
			t.Errorf("CalcNextTimeFromMidnight(%s, %s) = %s, want %s", tt.now, tt.from, got, tt.want)
		}
	}
}

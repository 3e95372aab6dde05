package triptic_test

import (
	"errors"
	"testing"

	"triptic/internal/triptic"
)

func TestJobTracker(t *testing.T) {
	t.Run("begin then get returns processing job", func(t *testing.T) {
		tracker := triptic.NewJobTracker()
		tracker.Begin("tok", "cats", triptic.SlotLeft)

		job, err := tracker.Get("tok")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if job.State != triptic.JobProcessing {
			t.Errorf("State = %v, want processing", job.State)
		}
		if job.GroupID != "cats" || job.Slot != triptic.SlotLeft {
			t.Errorf("job = %+v, want group cats slot left", job)
		}
	})

	t.Run("complete records content ref", func(t *testing.T) {
		tracker := triptic.NewJobTracker()
		tracker.Begin("tok", "cats", triptic.SlotLeft)
		tracker.Complete("tok", "content-1")

		job, err := tracker.Get("tok")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if job.State != triptic.JobComplete {
			t.Errorf("State = %v, want complete", job.State)
		}
		if job.ContentRef != "content-1" {
			t.Errorf("ContentRef = %v, want content-1", job.ContentRef)
		}
	})

	t.Run("fail records error message", func(t *testing.T) {
		tracker := triptic.NewJobTracker()
		tracker.Begin("tok", "cats", triptic.SlotLeft)
		tracker.Fail("tok", errors.New("render backend down"))

		job, err := tracker.Get("tok")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if job.State != triptic.JobError {
			t.Errorf("State = %v, want error", job.State)
		}
		if job.Err != "render backend down" {
			t.Errorf("Err = %v, want render backend down", job.Err)
		}
	})

	t.Run("unknown token returns ErrNotFound", func(t *testing.T) {
		tracker := triptic.NewJobTracker()
		if _, err := tracker.Get("missing"); !errors.Is(err, triptic.ErrNotFound) {
			t.Errorf("Get() error = %v, want ErrNotFound", err)
		}
	})
}

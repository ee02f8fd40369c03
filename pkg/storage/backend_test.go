package storage

import (
	"bytes"
	"errors"
	"testing"
)

// backendTestSuite runs the same checks against any Backend implementation
func backendTestSuite(t *testing.T, newBackend func() (Backend, func(), error)) {
	open := func(t *testing.T) Backend {
		t.Helper()
		backend, cleanup, err := newBackend()
		if err != nil {
			t.Fatalf("failed to create backend: %v", err)
		}
		t.Cleanup(cleanup)
		return backend
	}

	t.Run("CreateBucketIsIdempotent", func(t *testing.T) {
		backend := open(t)

		if err := backend.CreateBucket([]byte("runs")); err != nil {
			t.Fatalf("CreateBucket failed: %v", err)
		}
		if err := backend.Put([]byte("runs"), []byte("a"), []byte("1")); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		if err := backend.CreateBucket([]byte("runs")); err != nil {
			t.Errorf("CreateBucket should be idempotent: %v", err)
		}

		got, err := backend.Get([]byte("runs"), []byte("a"))
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if !bytes.Equal(got, []byte("1")) {
			t.Errorf("re-creating a bucket must keep its contents, got %q", got)
		}
	})

	t.Run("PutAndGet", func(t *testing.T) {
		backend := open(t)
		backend.CreateBucket([]byte("runs"))

		value := []byte("value")
		if err := backend.Put([]byte("runs"), []byte("key"), value); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		value[0] = 'X'

		got, err := backend.Get([]byte("runs"), []byte("key"))
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if !bytes.Equal(got, []byte("value")) {
			t.Errorf("expected %q, got %q", "value", got)
		}

		missing, err := backend.Get([]byte("runs"), []byte("missing"))
		if err != nil {
			t.Fatalf("Get of missing key failed: %v", err)
		}
		if missing != nil {
			t.Errorf("expected nil for missing key, got %q", missing)
		}
	})

	t.Run("MissingBucket", func(t *testing.T) {
		backend := open(t)

		if err := backend.Put([]byte("nope"), []byte("k"), []byte("v")); !errors.Is(err, ErrBucketNotFound) {
			t.Errorf("Put: expected ErrBucketNotFound, got %v", err)
		}
		if _, err := backend.Get([]byte("nope"), []byte("k")); !errors.Is(err, ErrBucketNotFound) {
			t.Errorf("Get: expected ErrBucketNotFound, got %v", err)
		}
		err := backend.ForEach([]byte("nope"), func(k, v []byte) error { return nil })
		if !errors.Is(err, ErrBucketNotFound) {
			t.Errorf("ForEach: expected ErrBucketNotFound, got %v", err)
		}
	})

	t.Run("ForEachInKeyOrder", func(t *testing.T) {
		backend := open(t)
		backend.CreateBucket([]byte("cases"))

		for _, k := range []string{"run/0003", "run/0001", "run/0002"} {
			if err := backend.Put([]byte("cases"), []byte(k), []byte(k)); err != nil {
				t.Fatalf("Put failed: %v", err)
			}
		}

		var keys []string
		err := backend.ForEach([]byte("cases"), func(k, v []byte) error {
			if !bytes.Equal(k, v) {
				t.Errorf("value mismatch for %q: %q", k, v)
			}
			keys = append(keys, string(k))
			return nil
		})
		if err != nil {
			t.Fatalf("ForEach failed: %v", err)
		}

		want := []string{"run/0001", "run/0002", "run/0003"}
		if len(keys) != len(want) {
			t.Fatalf("expected %d keys, got %d", len(want), len(keys))
		}
		for i := range want {
			if keys[i] != want[i] {
				t.Errorf("key %d: expected %q, got %q", i, want[i], keys[i])
			}
		}
	})

	t.Run("ForEachStopsOnError", func(t *testing.T) {
		backend := open(t)
		backend.CreateBucket([]byte("cases"))
		backend.Put([]byte("cases"), []byte("a"), []byte("1"))
		backend.Put([]byte("cases"), []byte("b"), []byte("2"))

		stop := errors.New("stop")
		visited := 0
		err := backend.ForEach([]byte("cases"), func(k, v []byte) error {
			visited++
			return stop
		})
		if !errors.Is(err, stop) {
			t.Errorf("expected callback error, got %v", err)
		}
		if visited != 1 {
			t.Errorf("expected 1 visit, got %d", visited)
		}
	})

	t.Run("JSON", func(t *testing.T) {
		backend := open(t)
		backend.CreateBucket([]byte("meta"))

		type record struct {
			Name  string `json:"name"`
			Count int    `json:"count"`
		}

		if err := PutJSON(backend, []byte("meta"), []byte("r"), record{Name: "x", Count: 3}); err != nil {
			t.Fatalf("PutJSON failed: %v", err)
		}

		var got record
		found, err := GetJSON(backend, []byte("meta"), []byte("r"), &got)
		if err != nil || !found {
			t.Fatalf("GetJSON failed: found=%v err=%v", found, err)
		}
		if got != (record{Name: "x", Count: 3}) {
			t.Errorf("unexpected record %+v", got)
		}

		found, err = GetJSON(backend, []byte("meta"), []byte("missing"), &got)
		if err != nil || found {
			t.Errorf("expected not found, got found=%v err=%v", found, err)
		}
	})
}

// Copyright 2026 The ptaxml Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time abstraction for testability.
//
// The export pipeline reads wall-clock time in two places (the
// finalization timestamp and the run's start time for logging) and
// pauses in two places (retry backoff and the courtesy pause between
// submission batches). Both go through a Clock so tests can pin the
// finalization timestamp and observe pauses without waiting for them.
//
// In production:
//
//	client, _ := pintia.NewClient(pintia.Config{Clock: clock.Real()})
//
// In tests:
//
//	fake := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	client, _ := pintia.NewClient(pintia.Config{Clock: fake})
//	// ... run ...
//	fake.Sleeps() // every pause requested, in order
//
// The fake never blocks: Sleep and After advance fake time by the
// requested duration immediately. The pipeline is single-threaded, so
// there is no second goroutine that could drive time forward.
package clock

package domain

import "time"

// Outcome distinguishes how an aggregate was obtained.
type Outcome string

const (
	OutcomeHit      Outcome = "hit"      // served from a fresh cache envelope
	OutcomeFetched  Outcome = "fetched"  // fetched from upstream on a miss
	OutcomeDegraded Outcome = "degraded" // fetch failed, empty aggregate returned
)

// Result is the internal outcome of resolving the aggregate.
// Callers outside the service only ever see Result.Data.
type Result struct {
	Outcome   Outcome
	Data      AppData
	Reason    error     // set only for OutcomeDegraded
	FetchedAt time.Time // write time of the data, zero when degraded
}

// Hit builds a cache-hit result.
func Hit(env CacheEnvelope) Result {
	return Result{
		Outcome:   OutcomeHit,
		Data:      env.Data.Normalize(),
		FetchedAt: env.WrittenAt(),
	}
}

// Fetched builds a result for freshly fetched data.
func Fetched(data AppData, at time.Time) Result {
	return Result{
		Outcome:   OutcomeFetched,
		Data:      data.Normalize(),
		FetchedAt: at,
	}
}

// Degraded builds a result carrying the empty aggregate and the failure reason.
func Degraded(reason error) Result {
	return Result{
		Outcome: OutcomeDegraded,
		Data:    EmptyAppData(),
		Reason:  reason,
	}
}

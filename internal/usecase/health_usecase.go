package usecase

import (
	"context"
	"sort"
	"time"
)

// HealthCheck probes one dependency; a nil error means it is reachable.
type HealthCheck func(ctx context.Context) error

type HealthUsecase interface {
	Check(ctx context.Context) (healthy bool, report map[string]string)
}

type healthUsecase struct {
	checks  map[string]HealthCheck
	timeout time.Duration
}

func NewHealthUsecase(checks map[string]HealthCheck) HealthUsecase {
	return &healthUsecase{checks: checks, timeout: 2 * time.Second}
}

// Check runs every probe and reports "up" or "down" per dependency.
func (u *healthUsecase) Check(ctx context.Context) (bool, map[string]string) {
	report := map[string]string{"status": "ok"}
	healthy := true

	names := make([]string, 0, len(u.checks))
	for name := range u.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		cctx, cancel := context.WithTimeout(ctx, u.timeout)
		err := u.checks[name](cctx)
		cancel()
		if err != nil {
			report[name] = "down"
			healthy = false
			continue
		}
		report[name] = "up"
	}

	if !healthy {
		report["status"] = "degraded"
	}
	return healthy, report
}

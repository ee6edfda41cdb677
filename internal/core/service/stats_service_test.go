package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ineludible/trazos-api/internal/core/domain"
)

func TestStatsService_Resync_RecomputesFromSnapshot(t *testing.T) {
	users := newStubUserRepo()
	activities := newStubActivityRepo()
	bonuses := newStubBonusRepo()
	cache := newStubRankingCache()

	u := users.seed(&domain.User{Signature: "#luna", TotalTraces: 999, TotalWords: 999, TotalActivities: 9})
	activities.Insert(context.Background(), &domain.Activity{UserID: u.ID, WordCount: 700, Traces: 300})
	activities.Insert(context.Background(), &domain.Activity{UserID: u.ID, WordCount: 150, Traces: 150})

	svc := NewStatsService(users, activities, bonuses, cache, zerolog.Nop())

	if err := svc.Resync(context.Background(), u.ID); err != nil {
		t.Fatalf("resync: %v", err)
	}

	got, _ := users.FindByID(context.Background(), u.ID)
	if got.TotalTraces != 450 || got.TotalWords != 850 || got.TotalActivities != 2 {
		t.Fatalf("unexpected totals: %d/%d/%d", got.TotalTraces, got.TotalWords, got.TotalActivities)
	}
	if cache.invalidated != 1 {
		t.Fatalf("expected one cache invalidation, got %d", cache.invalidated)
	}
}

func TestStatsService_Resync_FoldsBonuses(t *testing.T) {
	users := newStubUserRepo()
	activities := newStubActivityRepo()
	bonuses := newStubBonusRepo()

	u := users.seed(&domain.User{Signature: "#luna"})
	activities.Insert(context.Background(), &domain.Activity{UserID: u.ID, WordCount: 700, Traces: 300})
	bonuses.Insert(context.Background(), &domain.BonusAward{UserID: u.ID, Category: domain.BonusBirthday, Amount: 100})
	bonuses.Insert(context.Background(), &domain.BonusAward{UserID: u.ID, Category: domain.BonusPromo, Amount: 50})

	svc := NewStatsService(users, activities, bonuses, nil, zerolog.Nop())

	if err := svc.Resync(context.Background(), u.ID); err != nil {
		t.Fatalf("resync: %v", err)
	}

	got, _ := users.FindByID(context.Background(), u.ID)
	if got.TotalTraces != 450 {
		t.Fatalf("bonuses must survive the resync: expected 450, got %d", got.TotalTraces)
	}
	if got.TotalActivities != 1 {
		t.Fatalf("bonuses must not count as activities, got %d", got.TotalActivities)
	}
}

func TestStatsService_Resync_Idempotent(t *testing.T) {
	users := newStubUserRepo()
	activities := newStubActivityRepo()
	bonuses := newStubBonusRepo()

	u := users.seed(&domain.User{Signature: "#luna"})
	activities.Insert(context.Background(), &domain.Activity{UserID: u.ID, WordCount: 150, Traces: 150})

	svc := NewStatsService(users, activities, bonuses, nil, zerolog.Nop())

	for i := 0; i < 3; i++ {
		if err := svc.Resync(context.Background(), u.ID); err != nil {
			t.Fatalf("resync #%d: %v", i+1, err)
		}
	}

	got, _ := users.FindByID(context.Background(), u.ID)
	if got.TotalTraces != 150 || got.TotalWords != 150 || got.TotalActivities != 1 {
		t.Fatalf("repeated resyncs must settle on the same totals: %d/%d/%d",
			got.TotalTraces, got.TotalWords, got.TotalActivities)
	}
}

func TestStatsService_Resync_ZeroActivities(t *testing.T) {
	users := newStubUserRepo()
	u := users.seed(&domain.User{Signature: "#luna", TotalTraces: 300, TotalWords: 700, TotalActivities: 1})

	svc := NewStatsService(users, newStubActivityRepo(), newStubBonusRepo(), nil, zerolog.Nop())

	if err := svc.Resync(context.Background(), u.ID); err != nil {
		t.Fatalf("resync: %v", err)
	}

	got, _ := users.FindByID(context.Background(), u.ID)
	if got.TotalTraces != 0 || got.TotalWords != 0 || got.TotalActivities != 0 {
		t.Fatalf("expected all-zero totals, got %d/%d/%d", got.TotalTraces, got.TotalWords, got.TotalActivities)
	}
}

func TestStatsService_Resync_MissingUserIsSwallowed(t *testing.T) {
	users := newStubUserRepo()
	svc := NewStatsService(users, newStubActivityRepo(), newStubBonusRepo(), nil, zerolog.Nop())

	if err := svc.Resync(context.Background(), 42); err != nil {
		t.Fatalf("missing user must not fail the caller: %v", err)
	}
	if users.updateCalls != 0 {
		t.Fatalf("no totals should be written for a missing user")
	}
}

func TestStatsService_Resync_PropagatesStoreFailure(t *testing.T) {
	users := newStubUserRepo()
	activities := newStubActivityRepo()
	activities.listErr = errors.New("mongo down")

	u := users.seed(&domain.User{Signature: "#luna"})

	svc := NewStatsService(users, activities, newStubBonusRepo(), nil, zerolog.Nop())

	if err := svc.Resync(context.Background(), u.ID); err == nil {
		t.Fatalf("expected error when the activity snapshot cannot be read")
	}
}

func TestStatsService_ResyncAll_ContinuesPastFailures(t *testing.T) {
	users := newStubUserRepo()
	activities := newStubActivityRepo()
	bonuses := newStubBonusRepo()

	a := users.seed(&domain.User{Signature: "#a"})
	b := users.seed(&domain.User{Signature: "#b"})
	activities.Insert(context.Background(), &domain.Activity{UserID: a.ID, WordCount: 700, Traces: 300})
	activities.Insert(context.Background(), &domain.Activity{UserID: b.ID, WordCount: 150, Traces: 150})

	svc := NewStatsService(users, activities, bonuses, nil, zerolog.Nop())

	refreshed, err := svc.ResyncAll(context.Background())
	if err != nil {
		t.Fatalf("resync all: %v", err)
	}
	if refreshed != 2 {
		t.Fatalf("expected 2 refreshed users, got %d", refreshed)
	}

	gotA, _ := users.FindByID(context.Background(), a.ID)
	gotB, _ := users.FindByID(context.Background(), b.ID)
	if gotA.TotalTraces != 300 || gotB.TotalTraces != 150 {
		t.Fatalf("unexpected totals after bulk resync: %d / %d", gotA.TotalTraces, gotB.TotalTraces)
	}
}

package reconcile

import (
	"context"
	"errors"
	"testing"

	"github.com/danmuck/megactl/internal/megaverse"
	"github.com/danmuck/megactl/internal/testutil/testlog"
)

func TestServiceRunSingleCreate(t *testing.T) {
	testlog.Start(t)
	goal := emptyGrid(3, 3)
	goal[1][1] = megaverse.Object{Kind: megaverse.Polyanet}
	client := &stubClient{current: emptyGrid(3, 3), goal: goal}

	svc := NewServiceWithConfig(client, ServiceConfig{VerifyConvergence: false})
	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if report.Attempted != 1 || report.Succeeded != 1 || report.Failed != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if len(client.calls) != 1 || client.calls[0] != "create polyanet (1,1)" {
		t.Fatalf("unexpected calls: %v", client.calls)
	}
}

func TestServiceRunAlreadyConverged(t *testing.T) {
	testlog.Start(t)
	g := emptyGrid(2, 2)
	g[0][0] = megaverse.Object{Kind: megaverse.Cometh, Direction: megaverse.DirectionLeft}
	client := &stubClient{current: g, goal: g}

	report, err := NewService(client).Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if report.Attempted != 0 || client.mutationCalls != 0 {
		t.Fatalf("converged run issued mutations: %+v", report)
	}
	if client.currentFetches != 1 {
		t.Fatalf("converged run should skip verification refetch, got %d fetches", client.currentFetches)
	}
}

func TestServiceRunVerificationRefetches(t *testing.T) {
	testlog.Start(t)
	goal := emptyGrid(2, 2)
	goal[0][1] = megaverse.Object{Kind: megaverse.Soloon, Color: megaverse.ColorWhite}
	client := &stubClient{current: emptyGrid(2, 2), goal: goal}

	svc := NewServiceWithConfig(client, ServiceConfig{VerifyConvergence: true})
	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if report.Succeeded != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if client.currentFetches != 2 {
		t.Fatalf("expected verification refetch, got %d fetches", client.currentFetches)
	}
}

func TestServiceRunFetchErrorIsFatal(t *testing.T) {
	testlog.Start(t)
	fetchErr := errors.New("megaverse unreachable")
	client := &stubClient{fetchErr: fetchErr}

	if _, err := NewService(client).Run(context.Background()); !errors.Is(err, fetchErr) {
		t.Fatalf("expected fetch error, got %v", err)
	}
	if client.mutationCalls != 0 {
		t.Fatalf("fatal fetch must not mutate, got %d calls", client.mutationCalls)
	}
}

func TestServiceRunDimensionMismatchIsFatal(t *testing.T) {
	testlog.Start(t)
	client := &stubClient{current: emptyGrid(2, 2), goal: emptyGrid(3, 3)}

	if _, err := NewService(client).Run(context.Background()); !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}
	if client.mutationCalls != 0 {
		t.Fatalf("fatal diff must not mutate, got %d calls", client.mutationCalls)
	}
}

package e2e

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/dealdash/dealdash/internal/cache"
	"github.com/dealdash/dealdash/internal/crm"
	"github.com/dealdash/dealdash/internal/hierarchy"
	"github.com/dealdash/dealdash/internal/storage"
	"github.com/dealdash/dealdash/internal/storage/postgres"
)

func TestMain(m *testing.M) {
	ctx := context.Background()
	testLogger = zap.NewNop()

	pgDSN, pgCleanup, err := startPostgres(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "postgres: %v\n", err)
		os.Exit(1)
	}
	defer pgCleanup()

	testStore, err = postgres.New(ctx, pgDSN, testLogger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pg store: %v\n", err)
		os.Exit(1)
	}
	defer testStore.Close()

	if err := testStore.Migrate(ctx, "../../migrations"); err != nil {
		fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
		os.Exit(1)
	}

	redisURL, redisCleanup, err := startRedis(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "redis: %v\n", err)
		os.Exit(1)
	}
	defer redisCleanup()

	testCache, err = cache.New(redisURL, time.Minute, testStore, testLogger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cache: %v\n", err)
		os.Exit(1)
	}
	defer testCache.Close()

	os.Exit(m.Run())
}

func TestSchemaVerifies(t *testing.T) {
	ctx := context.Background()
	if err := testStore.VerifyActivityHierarchy(ctx); err != nil {
		t.Fatalf("hierarchy schema: %v", err)
	}

	// Dropping the parent FK must fail verification; re-running the
	// migrations restores it.
	if _, err := testStore.Pool().Exec(ctx, `ALTER TABLE activities DROP CONSTRAINT fk_parent_activity`); err != nil {
		t.Fatalf("drop constraint: %v", err)
	}
	err := testStore.VerifyActivityHierarchy(ctx)
	if err == nil || !strings.Contains(err.Error(), "fk_parent_activity") {
		t.Fatalf("expected fk_parent_activity verification failure, got %v", err)
	}
	if err := testStore.Migrate(ctx, "../../migrations"); err != nil {
		t.Fatalf("re-migrate: %v", err)
	}
	if err := testStore.VerifyActivityHierarchy(ctx); err != nil {
		t.Fatalf("hierarchy schema after re-migrate: %v", err)
	}
}

func TestPostgresDealRoundTrip(t *testing.T) {
	ctx := context.Background()

	d, err := testStore.CreateDeal(ctx, crm.DealCreate{
		CompanyName: "Roundtrip GmbH", Revenue: "500000", Stage: "prospect", Owner: "ops",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer testStore.DeleteDeal(ctx, d.ID)

	got, err := testStore.Deal(ctx, d.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.CompanyName != "Roundtrip GmbH" || got.Priority != "medium" {
		t.Errorf("unexpected deal back: %+v", got)
	}

	stage := "loi"
	updated, err := testStore.UpdateDeal(ctx, d.ID, crm.DealUpdate{Stage: &stage})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Stage != "loi" || updated.Revenue != "500000" {
		t.Errorf("patch semantics broken: %+v", updated)
	}

	if _, err := testStore.Deal(ctx, "00000000-0000-0000-0000-000000000000"); err != storage.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

// Lists come back in creation order on every backend, matching the
// in-memory store's insertion order.
func TestPostgresListOrdering(t *testing.T) {
	ctx := context.Background()

	first, err := testStore.CreateDeal(ctx, crm.DealCreate{
		CompanyName: "Older Deal", Revenue: "100", Stage: "prospect", Owner: "ops",
	})
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	defer testStore.DeleteDeal(ctx, first.ID)

	second, err := testStore.CreateDeal(ctx, crm.DealCreate{
		CompanyName: "Newer Deal", Revenue: "200", Stage: "prospect", Owner: "ops",
	})
	if err != nil {
		t.Fatalf("create second: %v", err)
	}
	defer testStore.DeleteDeal(ctx, second.ID)

	deals, err := testStore.Deals(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	firstIdx, secondIdx := -1, -1
	for i, d := range deals {
		switch d.ID {
		case first.ID:
			firstIdx = i
		case second.ID:
			secondIdx = i
		}
	}
	if firstIdx == -1 || secondIdx == -1 {
		t.Fatalf("created deals missing from list")
	}
	if firstIdx > secondIdx {
		t.Errorf("older deal listed after newer one: %d > %d", firstIdx, secondIdx)
	}
}

func TestPostgresActivityHierarchy(t *testing.T) {
	ctx := context.Background()

	root, err := testStore.CreateActivity(ctx, crm.ActivityCreate{Type: "task", Title: "pg root"})
	if err != nil {
		t.Fatalf("create root: %v", err)
	}
	child, err := testStore.CreateActivity(ctx, crm.ActivityCreate{
		Type: "task", Title: "pg child", ParentActivityID: &root.ID,
	})
	if err != nil {
		t.Fatalf("create child: %v", err)
	}
	defer testStore.DeleteActivity(ctx, root.ID)

	snapshot, err := testStore.Activities(ctx)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	desc := hierarchy.Descendants(snapshot, root.ID)
	if len(desc) != 1 || desc[0].ID != child.ID {
		t.Errorf("expected child below root, got %+v", desc)
	}
	if hierarchy.Depth(snapshot, child.ID) != 1 {
		t.Errorf("expected depth 1 for child")
	}

	// Deleting the parent nulls the child's reference (ON DELETE SET NULL),
	// turning the child into a root instead of an orphan.
	if err := testStore.DeleteActivity(ctx, root.ID); err != nil {
		t.Fatalf("delete root: %v", err)
	}
	defer testStore.DeleteActivity(ctx, child.ID)

	snapshot, err = testStore.Activities(ctx)
	if err != nil {
		t.Fatalf("snapshot after delete: %v", err)
	}
	for _, a := range hierarchy.Roots(snapshot) {
		if a.ID == child.ID {
			return
		}
	}
	t.Error("expected child promoted to root after parent delete")
}

func TestPostgresNDAQuery(t *testing.T) {
	ctx := context.Background()

	d, err := testStore.CreateDeal(ctx, crm.DealCreate{
		CompanyName: "NDA Co", Revenue: "1", Stage: "marketing", Owner: "o",
	})
	if err != nil {
		t.Fatal(err)
	}
	defer testStore.DeleteDeal(ctx, d.ID)

	signed, err := testStore.CreateBuyingParty(ctx, crm.BuyingPartyCreate{Name: "Signed Partner"})
	if err != nil {
		t.Fatal(err)
	}
	defer testStore.DeleteBuyingParty(ctx, signed.ID)
	unsigned, err := testStore.CreateBuyingParty(ctx, crm.BuyingPartyCreate{Name: "Unsigned Partner"})
	if err != nil {
		t.Fatal(err)
	}
	defer testStore.DeleteBuyingParty(ctx, unsigned.ID)

	// Agreements are written directly; the API has no agreement mutation yet.
	db := testStore.Pool()
	if _, err := db.Exec(ctx, `
		INSERT INTO agreements (id, deal_id, buying_party_id, type, status, created_at)
		VALUES (gen_random_uuid(), $1, $2, 'NDA', 'Signed', now()),
		       (gen_random_uuid(), $1, $3, 'nda', 'sent', now())`,
		d.ID, signed.ID, unsigned.ID); err != nil {
		t.Fatalf("seed agreements: %v", err)
	}

	parties, err := testStore.BuyersWithSignedNDA(ctx, d.ID)
	if err != nil {
		t.Fatalf("nda query: %v", err)
	}
	if len(parties) != 1 || parties[0].ID != signed.ID {
		t.Errorf("expected only the signed party, got %+v", parties)
	}
}

func TestCacheReadThroughAndInvalidation(t *testing.T) {
	ctx := context.Background()

	// Prime the cache
	before, err := testCache.Deals(ctx)
	if err != nil {
		t.Fatalf("prime: %v", err)
	}

	// A write through the cache must invalidate, so the next read sees it.
	d, err := testCache.CreateDeal(ctx, crm.DealCreate{
		CompanyName: "Cache Broker", Revenue: "9", Stage: "prospect", Owner: "o",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer testCache.DeleteDeal(ctx, d.ID)

	after, err := testCache.Deals(ctx)
	if err != nil {
		t.Fatalf("read after write: %v", err)
	}
	if len(after) != len(before)+1 {
		t.Errorf("expected cache invalidated: before=%d after=%d", len(before), len(after))
	}

	found := false
	for _, deal := range after {
		if deal.ID == d.ID {
			found = true
		}
	}
	if !found {
		t.Error("expected new deal visible through cache")
	}
}

package pricing

import (
	"testing"
	"time"

	"github.com/tindahan/pricing-service/internal/model"
	"github.com/tindahan/pricing-service/internal/money"
)

var now = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func date(d string) *time.Time {
	t, err := time.Parse("2006-01-02", d)
	if err != nil {
		panic(err)
	}
	return &t
}

func batch(id string, qty float64, exp *time.Time) model.Batch {
	return model.Batch{
		BaseModel:      model.BaseModel{ID: id},
		Quantity:       qty,
		UnitAbbrev:     "pc",
		Cost:           money.MustParse("100"),
		ExpirationDate: exp,
	}
}

func TestSelectActiveBatch(t *testing.T) {
	tests := []struct {
		name    string
		batches []model.Batch
		want    string // expected batch ID, "" for nil
	}{
		{"no batches", nil, ""},
		{"all depleted", []model.Batch{batch("a", 0, nil), batch("b", 0, date("2026-04-01"))}, ""},
		{"depleted skipped for stocked", []model.Batch{batch("a", 0, nil), batch("b", 5, date("2026-03-22"))}, "b"},
		{"earliest expiration wins", []model.Batch{
			batch("a", 3, date("2026-05-01")),
			batch("b", 3, date("2026-04-01")),
			batch("c", 3, date("2026-06-01")),
		}, "b"},
		{"dated beats undated", []model.Batch{batch("a", 3, nil), batch("b", 3, date("2026-09-01"))}, "b"},
		{"no dates falls back to FIFO", []model.Batch{batch("a", 3, nil), batch("b", 3, nil)}, "a"},
		{"expired batch still selectable", []model.Batch{batch("a", 3, date("2026-01-01"))}, "a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectActiveBatch(tt.batches)
			switch {
			case tt.want == "" && got != nil:
				t.Fatalf("got batch %s, want nil", got.ID)
			case tt.want != "" && got == nil:
				t.Fatalf("got nil, want batch %s", tt.want)
			case tt.want != "" && got.ID != tt.want:
				t.Fatalf("got batch %s, want %s", got.ID, tt.want)
			}
		})
	}
}

func TestSelectActiveBatchDeterministic(t *testing.T) {
	batches := []model.Batch{
		batch("a", 2, date("2026-04-10")),
		batch("b", 4, date("2026-04-10")),
		batch("c", 1, nil),
	}
	first := SelectActiveBatch(batches)
	for i := 0; i < 10; i++ {
		if got := SelectActiveBatch(batches); got.ID != first.ID {
			t.Fatalf("call %d selected %s, first call selected %s", i, got.ID, first.ID)
		}
	}
}

func TestExpiryPredicates(t *testing.T) {
	if IsExpired(batch("a", 1, nil), now) {
		t.Fatal("undated batch reported expired")
	}
	if !IsExpired(batch("a", 1, date("2026-03-01")), now) {
		t.Fatal("past-dated batch not expired")
	}
	if IsExpired(batch("a", 1, date("2026-04-01")), now) {
		t.Fatal("future-dated batch expired")
	}

	if !ExpiresWithin(batch("a", 1, date("2026-03-20")), now, 7) {
		t.Fatal("batch expiring in 5 days not within 7-day window")
	}
	if ExpiresWithin(batch("a", 1, date("2026-04-20")), now, 7) {
		t.Fatal("batch expiring in 36 days within 7-day window")
	}
	if ExpiresWithin(batch("a", 1, date("2026-03-01")), now, 7) {
		t.Fatal("already-expired batch counted as expiring soon")
	}
	if ExpiresWithin(batch("a", 1, nil), now, 7) {
		t.Fatal("undated batch counted as expiring soon")
	}
}

func TestStockStatusPriority(t *testing.T) {
	policy := DefaultStatusPolicy()

	tests := []struct {
		name    string
		batches []model.Batch
		want    StockStatus
	}{
		{"nil batches", nil, StatusNoBatches},
		{"all depleted", []model.Batch{batch("a", 0, nil)}, StatusOutOfStock},
		{"active expired", []model.Batch{batch("a", 5, date("2026-03-01"))}, StatusExpired},
		{"expiring soon outranks low stock", []model.Batch{batch("a", 2, date("2026-03-18"))}, StatusExpiringSoon},
		{"low stock", []model.Batch{batch("a", 3, date("2026-09-01"))}, StatusLowStock},
		{"available", []model.Batch{batch("a", 50, nil)}, StatusAvailable},
		{"remaining quantity sums across batches", []model.Batch{
			batch("a", 6, date("2026-09-01")),
			batch("b", 6, date("2026-10-01")),
		}, StatusAvailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := policy.Status(tt.batches, now); got != tt.want {
				t.Fatalf("Status = %s, want %s", got, tt.want)
			}
		})
	}
}

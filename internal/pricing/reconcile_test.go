package pricing

import (
	"testing"

	"github.com/tindahan/pricing-service/internal/money"
)

func TestReconcileEditPrice(t *testing.T) {
	q := Quote{Cost: money.MustParse("50"), Price: money.MustParse("80")}
	q = Reconcile(q, FieldPrice)

	if !q.ProfitAmount.Equal(money.MustParse("30")) {
		t.Fatalf("profit amount = %s, want 30", q.ProfitAmount)
	}
	if !q.PercentAvailable || !q.ProfitPercent.Equal(money.MustParse("60")) {
		t.Fatalf("profit percent = %s (available=%v), want 60", q.ProfitPercent, q.PercentAvailable)
	}
	if !q.Price.Equal(money.MustParse("80")) {
		t.Fatalf("price moved to %s on price edit", q.Price)
	}
}

func TestReconcileEditPercentAfterPrice(t *testing.T) {
	// Scenario from the storefront: cost 50, price edited to 80, then the
	// percentage bumped to 100.
	q := Quote{Cost: money.MustParse("50"), Price: money.MustParse("80")}
	q = Reconcile(q, FieldPrice)

	q.ProfitPercent = money.MustParse("100")
	q = Reconcile(q, FieldProfitPercent)

	if !q.Price.Equal(money.MustParse("100")) {
		t.Fatalf("price = %s, want 100", q.Price)
	}
	if !q.ProfitAmount.Equal(money.MustParse("50")) {
		t.Fatalf("profit amount = %s, want 50", q.ProfitAmount)
	}
}

func TestReconcileEditProfitAmount(t *testing.T) {
	q := Quote{Cost: money.MustParse("40"), ProfitAmount: money.MustParse("10")}
	q = Reconcile(q, FieldProfitAmount)

	if !q.Price.Equal(money.MustParse("50")) {
		t.Fatalf("price = %s, want 50", q.Price)
	}
	if !q.ProfitPercent.Equal(money.MustParse("25")) {
		t.Fatalf("profit percent = %s, want 25", q.ProfitPercent)
	}
}

func TestReconcileZeroCost(t *testing.T) {
	// Zero cost must never leak NaN/Inf; the percentage is flagged
	// unavailable and profit equals price.
	q := Quote{Cost: money.Zero, Price: money.MustParse("80")}
	q = Reconcile(q, FieldPrice)

	if q.PercentAvailable {
		t.Fatal("percentage reported available at zero cost")
	}
	if !q.ProfitAmount.Equal(money.MustParse("80")) {
		t.Fatalf("profit amount = %s, want 80", q.ProfitAmount)
	}
	if !q.ProfitPercent.IsZero() {
		t.Fatalf("profit percent = %s, want 0 sentinel", q.ProfitPercent)
	}

	q.ProfitPercent = money.MustParse("60")
	q = Reconcile(q, FieldProfitPercent)
	if q.PercentAvailable {
		t.Fatal("percent edit at zero cost reported available")
	}
	if !q.Price.IsZero() || !q.ProfitAmount.IsZero() {
		t.Fatalf("percent edit at zero cost gave price=%s profit=%s", q.Price, q.ProfitAmount)
	}
}

func TestReconcileStableUnderRepetition(t *testing.T) {
	// Re-reconciling an already-consistent quote must not drift.
	q := Quote{Cost: money.MustParse("33.33"), Price: money.MustParse("49.99")}
	q = Reconcile(q, FieldPrice)

	for i := 0; i < 100; i++ {
		next := Reconcile(q, FieldPrice)
		if !next.ProfitAmount.Equal(q.ProfitAmount) || !next.ProfitPercent.Equal(q.ProfitPercent) {
			t.Fatalf("pass %d drifted: %+v vs %+v", i, next, q)
		}
		q = next
	}
}

func TestReconcileConsistency(t *testing.T) {
	// For any edited field, profitAmount must equal price - cost afterwards.
	costs := []string{"1", "12.5", "50", "199.99", "0.04"}
	for _, c := range costs {
		cost := money.MustParse(c)

		q := Reconcile(Quote{Cost: cost, Price: cost.MulFloat(1.75)}, FieldPrice)
		if !q.ProfitAmount.Equal(q.Price.Sub(q.Cost)) {
			t.Fatalf("cost %s price edit: profit %s != %s", c, q.ProfitAmount, q.Price.Sub(q.Cost))
		}

		q = Reconcile(Quote{Cost: cost, ProfitAmount: money.MustParse("5")}, FieldProfitAmount)
		if !q.ProfitAmount.Equal(q.Price.Sub(q.Cost)) {
			t.Fatalf("cost %s amount edit: profit %s != %s", c, q.ProfitAmount, q.Price.Sub(q.Cost))
		}

		q = Reconcile(Quote{Cost: cost, ProfitPercent: money.MustParse("40")}, FieldProfitPercent)
		if !q.ProfitAmount.Equal(q.Price.Sub(q.Cost)) {
			t.Fatalf("cost %s percent edit: profit %s != %s", c, q.ProfitAmount, q.Price.Sub(q.Cost))
		}
	}
}

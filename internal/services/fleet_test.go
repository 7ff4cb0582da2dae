package services

import (
	"regexp"
	"testing"

	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/models"
	"github.com/stretchr/testify/require"
)

func TestClampPage(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		limit      int
		offset     int
		wantLimit  int
		wantOffset int
	}{
		{"zero limit gets default", 0, 0, 25, 0},
		{"negative limit gets default", -5, 0, 25, 0},
		{"limit capped at 100", 500, 10, 100, 10},
		{"negative offset floors at zero", 10, -3, 10, 0},
		{"in-range values pass through", 50, 200, 50, 200},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			limit, offset := clampPage(tc.limit, tc.offset)
			require.Equal(t, tc.wantLimit, limit)
			require.Equal(t, tc.wantOffset, offset)
		})
	}
}

func TestNewNumberFormat(t *testing.T) {
	t.Parallel()

	pattern := regexp.MustCompile(`^WO-\d{8}-[0-9A-F]{4}$`)
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		n := newNumber("WO")
		require.Regexp(t, pattern, n)
		seen[n] = true
	}
	// random suffix should make collisions rare even within one day
	require.Greater(t, len(seen), 40)
}

func TestWorkOrderTransitions(t *testing.T) {
	t.Parallel()

	allowed := []struct{ from, to string }{
		{models.WorkOrderStatusOpen, models.WorkOrderStatusInProgress},
		{models.WorkOrderStatusOpen, models.WorkOrderStatusCancelled},
		{models.WorkOrderStatusInProgress, models.WorkOrderStatusCompleted},
		{models.WorkOrderStatusInProgress, models.WorkOrderStatusCancelled},
	}
	for _, tc := range allowed {
		require.True(t, workOrderTransitionAllowed(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}

	denied := []struct{ from, to string }{
		{models.WorkOrderStatusOpen, models.WorkOrderStatusCompleted},
		{models.WorkOrderStatusCompleted, models.WorkOrderStatusOpen},
		{models.WorkOrderStatusCompleted, models.WorkOrderStatusInProgress},
		{models.WorkOrderStatusCancelled, models.WorkOrderStatusOpen},
		{models.WorkOrderStatusInProgress, models.WorkOrderStatusOpen},
	}
	for _, tc := range denied {
		require.False(t, workOrderTransitionAllowed(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestInvoiceTransitions(t *testing.T) {
	t.Parallel()

	require.True(t, invoiceTransitionAllowed(models.InvoiceStatusDraft, models.InvoiceStatusSent))
	require.True(t, invoiceTransitionAllowed(models.InvoiceStatusDraft, models.InvoiceStatusVoid))
	require.True(t, invoiceTransitionAllowed(models.InvoiceStatusSent, models.InvoiceStatusPaid))
	require.True(t, invoiceTransitionAllowed(models.InvoiceStatusSent, models.InvoiceStatusVoid))

	require.False(t, invoiceTransitionAllowed(models.InvoiceStatusDraft, models.InvoiceStatusPaid))
	require.False(t, invoiceTransitionAllowed(models.InvoiceStatusPaid, models.InvoiceStatusDraft))
	require.False(t, invoiceTransitionAllowed(models.InvoiceStatusPaid, models.InvoiceStatusVoid))
	require.False(t, invoiceTransitionAllowed(models.InvoiceStatusVoid, models.InvoiceStatusDraft))
}

func TestRoundCents(t *testing.T) {
	t.Parallel()

	require.Equal(t, 10.35, roundCents(10.3451))
	require.Equal(t, 0.1, roundCents(0.1+0.000001))
	require.Equal(t, 100.0, roundCents(99.999))
}

package services

import (
	"context"
	"testing"
	"time"

	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/utils/tests"
)

// sqlRecorder captures every statement GORM builds, in order.
type sqlRecorder struct {
	statements []string
}

func (r *sqlRecorder) LogMode(logger.LogLevel) logger.Interface { return r }
func (r *sqlRecorder) Info(context.Context, string, ...interface{}) {}
func (r *sqlRecorder) Warn(context.Context, string, ...interface{}) {}
func (r *sqlRecorder) Error(context.Context, string, ...interface{}) {}
func (r *sqlRecorder) Trace(_ context.Context, _ time.Time, fc func() (string, int64), _ error) {
	sql, _ := fc()
	r.statements = append(r.statements, sql)
}

func recordedDB(t *testing.T) (*gorm.DB, *sqlRecorder) {
	t.Helper()
	rec := &sqlRecorder{}
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true, Logger: rec})
	require.NoError(t, err)
	return db, rec
}

func TestDeleteTruckTreeCoversEveryDependent(t *testing.T) {
	t.Parallel()

	db, rec := recordedDB(t)
	truckIDs := []uuid.UUID{uuid.New(), uuid.New()}

	require.NoError(t, deleteTruckTree(db, truckIDs))

	// children strictly before parents, trucks last
	require.Len(t, rec.statements, 7)
	require.Contains(t, rec.statements[0], "truck_notes")
	require.Contains(t, rec.statements[1], "chat_messages")
	require.Contains(t, rec.statements[2], "chat_sessions")
	require.Contains(t, rec.statements[3], "work_order_line_items")
	require.Contains(t, rec.statements[4], "invoices")
	require.Contains(t, rec.statements[5], "work_orders")
	require.NotContains(t, rec.statements[5], "line_items")
	require.Contains(t, rec.statements[6], "trucks")

	// grandchildren are resolved through their parent tables, not left behind
	require.Contains(t, rec.statements[1], "chat_sessions")
	require.Contains(t, rec.statements[3], "work_orders")
	require.Contains(t, rec.statements[4], "work_orders")

	// soft-delete models are tombstoned, hard-delete children dropped
	require.Contains(t, rec.statements[6], "deleted_at")
	require.Contains(t, rec.statements[1], "DELETE")
}

func TestDeleteTruckTreeNoTrucksIsNoop(t *testing.T) {
	t.Parallel()

	db, rec := recordedDB(t)

	require.NoError(t, deleteTruckTree(db, nil))
	require.Empty(t, rec.statements)
}

func TestTruckStatusesMatchModelConstants(t *testing.T) {
	t.Parallel()

	for _, status := range []string{
		models.TruckStatusActive,
		models.TruckStatusInShop,
		models.TruckStatusOutOfService,
	} {
		require.True(t, truckStatuses[status], status)
	}
	require.False(t, truckStatuses["scrapped"])
}

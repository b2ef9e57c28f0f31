package mongo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"pravaah/internal/domain"
	mongostore "pravaah/internal/repository/mongo"
)

func TestLogStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("append", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		store := mongostore.NewLogStore(mt.DB, "processed_logs")

		err := store.Append(context.Background(), domain.LogRecord{
			ID: "rec-1", Timestamp: time.Now().UTC(), DocType: domain.DocTypeInvoice,
			VendorName: "Acme", TotalAmount: 10, InvoiceDate: "N/A",
		})
		assert.NoError(t, err)
	})

	mt.Run("append write error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index: 0, Code: 11000, Message: "duplicate key error",
		}))
		store := mongostore.NewLogStore(mt.DB, "")

		err := store.Append(context.Background(), domain.LogRecord{ID: "rec-1"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "logStore.Append")
	})

	mt.Run("list", func(mt *mtest.T) {
		ns := mt.DB.Name() + ".processed_logs"
		first := mtest.CreateCursorResponse(1, ns, mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: "a"},
				{Key: "doc_type", Value: "Invoice"},
				{Key: "vendor_name", Value: "Acme"},
				{Key: "total_amount", Value: 250.5},
				{Key: "invoice_date", Value: "2024-01-02"},
			})
		second := mtest.CreateCursorResponse(0, ns, mtest.NextBatch,
			bson.D{
				{Key: "_id", Value: "b"},
				{Key: "doc_type", Value: "Inspection Report"},
				{Key: "vendor_name", Value: "N/A"},
				{Key: "total_amount", Value: 0.0},
				{Key: "invoice_date", Value: "N/A"},
			})
		mt.AddMockResponses(first, second)
		store := mongostore.NewLogStore(mt.DB, "processed_logs")

		got, err := store.List(context.Background())
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Acme", got[0].VendorName)
		assert.Equal(t, 250.5, got[0].TotalAmount)
		assert.Equal(t, domain.DocTypeInspectionReport, got[1].DocType)
	})
}

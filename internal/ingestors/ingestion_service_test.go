package ingestors_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"fabric-ledger/internal/events"
	"fabric-ledger/internal/ingestors"
	"fabric-ledger/internal/shared/svcerrors"
	"fabric-ledger/internal/stores"
	storemocks "fabric-ledger/internal/stores/mocks"
	streammocks "fabric-ledger/internal/streams/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const validLogJSON = `[
	{"invocationId":"inv-1","epoch":3,"sequence":0,"message":"token=0 started","emittedAt":"2026-10-19T09:12:44.120Z"},
	{"invocationId":"inv-1","epoch":3,"sequence":1,"message":"done","emittedAt":"2026-10-19T09:12:44.302+02:00"},
	{"invocationId":"inv-2","message":"token=1 started","emittedAt":"2026-10-19T09:12:45Z"}
]`

func TestIngestBatch_ErrValidationFailed_InvalidFormat(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)

	batchStore := storemocks.NewMockLogBatchStore(ctrl)
	logChannel := streammocks.NewMockLogChannel(ctrl)
	service := ingestors.NewIngestionService(batchStore, logChannel)

	result, err := service.IngestBatch(context.Background(), "key1", "xml", bytes.NewReader([]byte(`{}`)))

	require.Error(t, err, "expected error")
	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok, "expected ServiceError")
	assert.Equal(t, "ING_1000", svcErr.Code)
	assert.Equal(t, "invalid_argument", svcErr.Category)
	assert.Nil(t, result, "expected nil result on error")
}

func TestIngestBatch_ErrValidationFailed_BatchTooLarge(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)

	batchStore := storemocks.NewMockLogBatchStore(ctrl)
	logChannel := streammocks.NewMockLogChannel(ctrl)
	service := ingestors.NewIngestionService(batchStore, logChannel)

	largeBody := make([]byte, 2*1024*1024+1)
	_, err := service.IngestBatch(context.Background(), "key1", "json", bytes.NewReader(largeBody))

	require.Error(t, err, "expected error")
	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok, "expected ServiceError")
	assert.Equal(t, "ING_1000", svcErr.Code)
	assert.Equal(t, "batch too large: must be <= 2MB", svcErr.Message)
}

func TestIngestBatch_ErrValidationFailed_LogRecordValidation(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)

	// neither the store nor the channel may be touched
	batchStore := storemocks.NewMockLogBatchStore(ctrl)
	logChannel := streammocks.NewMockLogChannel(ctrl)
	service := ingestors.NewIngestionService(batchStore, logChannel)

	tests := []struct {
		name string
		json string
	}{
		{name: "invalid json", json: `{invalid json}`},
		{name: "empty records", json: `[]`},
		{name: "missing invocationId", json: `[{"message":"m","emittedAt":"2026-10-19T09:12:44.120Z"}]`},
		{name: "blank invocationId", json: `[{"invocationId":"  ","message":"m","emittedAt":"2026-10-19T09:12:44.120Z"}]`},
		{name: "missing message", json: `[{"invocationId":"i","emittedAt":"2026-10-19T09:12:44.120Z"}]`},
		{name: "message not a string", json: `[{"invocationId":"i","message":42,"emittedAt":"2026-10-19T09:12:44.120Z"}]`},
		{name: "missing emittedAt", json: `[{"invocationId":"i","message":"m"}]`},
		{name: "invalid emittedAt", json: `[{"invocationId":"i","message":"m","emittedAt":"yesterday"}]`},
		{name: "negative epoch", json: `[{"invocationId":"i","message":"m","emittedAt":"2026-10-19T09:12:44.120Z","epoch":-1}]`},
		{name: "fractional sequence", json: `[{"invocationId":"i","message":"m","emittedAt":"2026-10-19T09:12:44.120Z","sequence":1.5}]`},
		{name: "epoch as string", json: `[{"invocationId":"i","message":"m","emittedAt":"2026-10-19T09:12:44.120Z","epoch":"3"}]`},
		{
			name: "invocationId exceeds max length",
			json: `[{"invocationId":"` + strings.Repeat("a", 129) + `","message":"m","emittedAt":"2026-10-19T09:12:44.120Z"}]`,
		},
		{
			name: "message exceeds max length",
			json: `[{"invocationId":"i","message":"` + strings.Repeat("a", 8193) + `","emittedAt":"2026-10-19T09:12:44.120Z"}]`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			result, err := service.IngestBatch(context.Background(), "key1", "json", bytes.NewReader([]byte(tt.json)))

			require.Error(t, err, "expected error")
			svcErr, ok := svcerrors.AsServiceError(err)
			require.True(t, ok, "expected ServiceError")
			assert.Equal(t, "ING_1000", svcErr.Code)
			assert.Nil(t, result, "expected nil result on error")
		})
	}
}

func TestIngestBatch_ErrBatchPutFailed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		putError         error
		expectedCode     string
		expectedCategory string
	}{
		{
			name:             "log batch already exists",
			putError:         stores.ErrLogBatchAlreadyExist,
			expectedCode:     "ING_1001",
			expectedCategory: "resource_conflict",
		},
		{
			name:             "log batch put failed",
			putError:         assert.AnError,
			expectedCode:     "ING_9000",
			expectedCategory: "internal",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			batchStore := storemocks.NewMockLogBatchStore(ctrl)
			// a rejected batch is never published
			logChannel := streammocks.NewMockLogChannel(ctrl)

			batchStore.EXPECT().Put(gomock.Any(), gomock.Any()).Return(tt.putError)

			service := ingestors.NewIngestionService(batchStore, logChannel)
			result, err := service.IngestBatch(context.Background(), "key1", "json", strings.NewReader(validLogJSON))

			require.Error(t, err, "expected error")
			svcErr, ok := svcerrors.AsServiceError(err)
			require.True(t, ok, "expected ServiceError")
			assert.Equal(t, tt.expectedCode, svcErr.Code)
			assert.Equal(t, tt.expectedCategory, svcErr.Category)
			assert.ErrorIs(t, err, tt.putError)
			assert.Nil(t, result, "expected nil result on error")
		})
	}
}

func TestIngestBatch_ErrLogChannelPublishFailed(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)

	batchStore := storemocks.NewMockLogBatchStore(ctrl)
	logChannel := streammocks.NewMockLogChannel(ctrl)

	var archived *events.LogBatch
	var published []events.LogRecord
	publishOK := func(ctx context.Context, record events.LogRecord) error {
		// the request ctx below is already canceled; publishing must not inherit that
		assert.NoError(t, ctx.Err())
		published = append(published, record)
		return nil
	}

	gomock.InOrder(
		batchStore.EXPECT().Put(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, batch *events.LogBatch) error {
				archived = batch
				return nil
			}),
		logChannel.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(publishOK),
		logChannel.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(assert.AnError),

		// the retry resumes from the archived copy at the first unpublished record
		batchStore.EXPECT().Put(gomock.Any(), gomock.Any()).Return(stores.ErrLogBatchAlreadyExist),
		batchStore.EXPECT().Get(gomock.Any(), "key1").DoAndReturn(func(ctx context.Context, batchID string) (*events.LogBatch, error) {
			return archived, nil
		}),
		logChannel.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(publishOK).Times(2),

		// once fully published, the key is spent
		batchStore.EXPECT().Put(gomock.Any(), gomock.Any()).Return(stores.ErrLogBatchAlreadyExist),
	)

	service := ingestors.NewIngestionService(batchStore, logChannel)

	requestCtx, cancel := context.WithCancel(context.Background())
	cancel()
	result, err := service.IngestBatch(requestCtx, "key1", "json", strings.NewReader(validLogJSON))

	require.Error(t, err, "expected error")
	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok, "expected ServiceError")
	assert.Equal(t, "ING_9001", svcErr.Code)
	assert.Equal(t, "internal", svcErr.Category)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Nil(t, result, "expected nil result on error")
	require.Len(t, published, 1)

	result, err = service.IngestBatch(context.Background(), "key1", "json", strings.NewReader(validLogJSON))
	require.NoError(t, err)
	assert.Equal(t, "key1", result.BatchID)
	assert.Equal(t, 3, result.AcceptedCount)
	require.NotNil(t, archived)
	assert.Equal(t, archived.Records, published)

	_, err = service.IngestBatch(context.Background(), "key1", "json", strings.NewReader(validLogJSON))
	svcErr, ok = svcerrors.AsServiceError(err)
	require.True(t, ok, "expected ServiceError")
	assert.Equal(t, "ING_1001", svcErr.Code)
}

func TestIngestBatch_ResumeArchiveReadFailed(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)

	batchStore := storemocks.NewMockLogBatchStore(ctrl)
	logChannel := streammocks.NewMockLogChannel(ctrl)

	gomock.InOrder(
		batchStore.EXPECT().Put(gomock.Any(), gomock.Any()).Return(nil),
		logChannel.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(assert.AnError),
		batchStore.EXPECT().Put(gomock.Any(), gomock.Any()).Return(stores.ErrLogBatchAlreadyExist),
		batchStore.EXPECT().Get(gomock.Any(), "key1").Return(nil, stores.ErrLogBatchNotFound),
		// the failed read keeps the batch claimable
		batchStore.EXPECT().Put(gomock.Any(), gomock.Any()).Return(stores.ErrLogBatchAlreadyExist),
		batchStore.EXPECT().Get(gomock.Any(), "key1").Return(nil, stores.ErrLogBatchNotFound),
	)

	service := ingestors.NewIngestionService(batchStore, logChannel)
	_, err := service.IngestBatch(context.Background(), "key1", "json", strings.NewReader(validLogJSON))
	require.Error(t, err)

	for i := 0; i < 2; i++ {
		_, err = service.IngestBatch(context.Background(), "key1", "json", strings.NewReader(validLogJSON))
		svcErr, ok := svcerrors.AsServiceError(err)
		require.True(t, ok, "expected ServiceError")
		assert.Equal(t, "ING_9000", svcErr.Code)
		assert.ErrorIs(t, err, stores.ErrLogBatchNotFound)
	}
}

func TestIngestBatch_Success(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)

	batchStore := storemocks.NewMockLogBatchStore(ctrl)
	logChannel := streammocks.NewMockLogChannel(ctrl)

	var storedBatch *events.LogBatch
	var published []events.LogRecord

	storeCall := batchStore.EXPECT().Put(gomock.Any(), gomock.Any()).
		Do(func(ctx context.Context, batch *events.LogBatch) {
			storedBatch = batch
		}).
		Return(nil)
	logChannel.EXPECT().Publish(gomock.Any(), gomock.Any()).
		Do(func(ctx context.Context, record events.LogRecord) {
			published = append(published, record)
		}).
		Return(nil).
		Times(3).
		After(storeCall)

	service := ingestors.NewIngestionService(batchStore, logChannel)
	result, err := service.IngestBatch(context.Background(), " key1 ", "application/json", strings.NewReader(validLogJSON))

	require.NoError(t, err, "unexpected error")
	require.NotNil(t, result, "expected non-nil result")
	assert.Equal(t, "key1", result.BatchID)
	assert.Equal(t, 3, result.AcceptedCount)

	require.NotNil(t, storedBatch)
	assert.Equal(t, "key1", storedBatch.BatchID)
	assert.False(t, storedBatch.ReceivedAt.IsZero())
	assert.Equal(t, storedBatch.Records, published)

	assert.Equal(t, events.LogRecord{
		InvocationID: "inv-1",
		Epoch:        3,
		Sequence:     1,
		Text:         "done",
		EmittedAt:    time.Date(2026, 10, 19, 7, 12, 44, 302000000, time.UTC),
	}, published[1])
	// untagged records keep epoch 0
	assert.Equal(t, uint64(0), published[2].Epoch)
	assert.Equal(t, "token=1 started", published[2].Text)
}

func TestIngestBatch_GeneratesBatchIDWithoutIdempotencyKey(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)

	batchStore := storemocks.NewMockLogBatchStore(ctrl)
	logChannel := streammocks.NewMockLogChannel(ctrl)
	batchStore.EXPECT().Put(gomock.Any(), gomock.Any()).Return(nil)
	logChannel.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).Times(3)

	service := ingestors.NewIngestionService(batchStore, logChannel)
	result, err := service.IngestBatch(context.Background(), "", "json", strings.NewReader(validLogJSON))

	require.NoError(t, err)
	assert.Len(t, result.BatchID, 26)
}

package service

import (
	"context"
	"testing"
	"time"

	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/pkg/apperror"
	"ai-chat-be/pkg/stream"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedDocument(uow *fakeUnitOfWork, kind entity.DocumentKind, content string) *entity.Document {
	doc := &entity.Document{
		Id:        uuid.New(),
		CreatedAt: time.Now().Add(-time.Hour),
		Title:     "Essay",
		Content:   &content,
		Kind:      kind,
		UserId:    uuid.New(),
	}
	uow.documents.documents = append(uow.documents.documents, doc)
	return doc
}

func TestUpdateDocumentTextStreamsAndPersists(t *testing.T) {
	uow := newFakeUnitOfWork()
	doc := seedDocument(uow, entity.DocumentKindText, "old draft")

	provider := &fakeLLM{textFragments: []string{"A fresh ", "take on ", "the topic."}}
	svc := NewDocumentUpdaterService(&fakeFactory{uow: uow}, provider, nopLogger{})

	recorder := &stream.Recorder{}
	res, err := svc.UpdateDocument(context.Background(), doc.UserId, &dto.UpdateDocumentRequest{
		Id:          doc.Id,
		Description: "make it fresher",
	}, recorder)

	require.NoError(t, err)
	assert.True(t, res.Persisted)
	assert.Equal(t, doc.Id, res.Id)
	assert.Equal(t, "Essay", res.Title)

	// clear, one delta per fragment, finish.
	assert.Equal(t, []stream.EventType{
		stream.EventClear,
		stream.EventTextDelta, stream.EventTextDelta, stream.EventTextDelta,
		stream.EventFinish,
	}, recorder.Types())

	// The persisted content equals the concatenation of the streamed deltas.
	latest, _ := uow.documents.FindLatest(context.Background(), doc.Id)
	require.NotNil(t, latest.Content)
	assert.Equal(t, "A fresh take on the topic.", *latest.Content)
	assert.Equal(t, entity.DocumentKindText, latest.Kind)

	// A new version was appended; the old one survives.
	versions, _ := uow.documents.FindVersions(context.Background(), doc.Id)
	assert.Len(t, versions, 2)
}

func TestUpdateDocumentCodeStreamsFullSnapshots(t *testing.T) {
	uow := newFakeUnitOfWork()
	doc := seedDocument(uow, entity.DocumentKindCode, "print(1)")

	provider := &fakeLLM{codeSnapshots: []string{
		"print(",
		"print(2)",
		"print(2)\nprint(3)",
	}}
	svc := NewDocumentUpdaterService(&fakeFactory{uow: uow}, provider, nopLogger{})

	recorder := &stream.Recorder{}
	res, err := svc.UpdateDocument(context.Background(), doc.UserId, &dto.UpdateDocumentRequest{
		Id:          doc.Id,
		Description: "count higher",
	}, recorder)

	require.NoError(t, err)
	assert.True(t, res.Persisted)

	assert.Equal(t, []stream.EventType{
		stream.EventClear,
		stream.EventCodeDelta, stream.EventCodeDelta, stream.EventCodeDelta,
		stream.EventFinish,
	}, recorder.Types())

	// Only the last snapshot survives; snapshots replace, never append.
	latest, _ := uow.documents.FindLatest(context.Background(), doc.Id)
	require.NotNil(t, latest.Content)
	assert.Equal(t, "print(2)\nprint(3)", *latest.Content)
}

func TestUpdateDocumentMissingDocument(t *testing.T) {
	uow := newFakeUnitOfWork()
	svc := NewDocumentUpdaterService(&fakeFactory{uow: uow}, &fakeLLM{}, nopLogger{})

	recorder := &stream.Recorder{}
	_, err := svc.UpdateDocument(context.Background(), uuid.New(), &dto.UpdateDocumentRequest{
		Id:          uuid.New(),
		Description: "anything",
	}, recorder)

	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
	// Nothing was streamed before the lookup failed.
	assert.Empty(t, recorder.Events)
}

func TestUpdateDocumentAnonymousSkipsPersistence(t *testing.T) {
	uow := newFakeUnitOfWork()
	doc := seedDocument(uow, entity.DocumentKindText, "old")

	provider := &fakeLLM{textFragments: []string{"new content"}}
	svc := NewDocumentUpdaterService(&fakeFactory{uow: uow}, provider, nopLogger{})

	recorder := &stream.Recorder{}
	res, err := svc.UpdateDocument(context.Background(), uuid.Nil, &dto.UpdateDocumentRequest{
		Id:          doc.Id,
		Description: "rewrite",
	}, recorder)

	require.NoError(t, err)
	assert.False(t, res.Persisted)
	assert.Equal(t, "The document has been updated successfully.", res.Message)

	// The full stream still went out.
	assert.Equal(t, []stream.EventType{
		stream.EventClear, stream.EventTextDelta, stream.EventFinish,
	}, recorder.Types())

	// No new version.
	versions, _ := uow.documents.FindVersions(context.Background(), doc.Id)
	assert.Len(t, versions, 1)
}

func TestUpdateDocumentWriteFailureAbortsAndSkipsPersistence(t *testing.T) {
	uow := newFakeUnitOfWork()
	doc := seedDocument(uow, entity.DocumentKindText, "old")

	provider := &fakeLLM{textFragments: []string{"a", "b", "c"}}
	svc := NewDocumentUpdaterService(&fakeFactory{uow: uow}, provider, nopLogger{})

	// Fails on the third write: clear and the first delta succeed, the second
	// delta hits the closed stream.
	recorder := &stream.Recorder{FailAt: 3}
	_, err := svc.UpdateDocument(context.Background(), doc.UserId, &dto.UpdateDocumentRequest{
		Id:          doc.Id,
		Description: "rewrite",
	}, recorder)

	require.Error(t, err)
	assert.ErrorIs(t, err, stream.ErrClosed)
	assert.True(t, apperror.IsKind(err, apperror.KindStorage))

	// Consumption stopped at the failed write and nothing was persisted.
	assert.Equal(t, []stream.EventType{stream.EventClear, stream.EventTextDelta}, recorder.Types())
	versions, _ := uow.documents.FindVersions(context.Background(), doc.Id)
	assert.Len(t, versions, 1)
}

func TestUpdateDocumentModelFailure(t *testing.T) {
	uow := newFakeUnitOfWork()
	doc := seedDocument(uow, entity.DocumentKindText, "old")

	provider := &fakeLLM{streamErr: assert.AnError}
	svc := NewDocumentUpdaterService(&fakeFactory{uow: uow}, provider, nopLogger{})

	recorder := &stream.Recorder{}
	_, err := svc.UpdateDocument(context.Background(), doc.UserId, &dto.UpdateDocumentRequest{
		Id:          doc.Id,
		Description: "rewrite",
	}, recorder)

	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindUpstreamModel))

	versions, _ := uow.documents.FindVersions(context.Background(), doc.Id)
	assert.Len(t, versions, 1)
}

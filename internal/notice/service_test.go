package notice

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "bfcms/pkg/domain-errors"
	"bfcms/pkg/requestcontext"
)

func newService() (*Service, context.Context) {
	ctx := requestcontext.WithTime(context.Background(), time.Date(2025, 8, 1, 8, 0, 0, 0, time.UTC))
	ctx = requestcontext.WithActor(ctx, requestcontext.ActorInfo{UserID: "sec-1", FullName: "The Secretary"})
	return NewService(NewInMemoryStore(), slog.New(slog.DiscardHandler)), ctx
}

func TestInferAttachmentType(t *testing.T) {
	assert.Equal(t, AttachmentImage, InferAttachmentType("poster.PNG"))
	assert.Equal(t, AttachmentImage, InferAttachmentType("photo.jpeg"))
	assert.Equal(t, AttachmentPDF, InferAttachmentType("minutes.pdf"))
	assert.Equal(t, AttachmentFile, InferAttachmentType("schedule.xlsx"))
	assert.Equal(t, AttachmentFile, InferAttachmentType("README"))
	assert.Equal(t, AttachmentType(""), InferAttachmentType(""))
}

func TestCreateNormalizesBroadcastTarget(t *testing.T) {
	service, ctx := newService()

	n, err := service.Create(ctx, CreateRequest{Title: "Rehearsal", Content: "Saturday 2pm", TargetDepartment: "all"})
	require.NoError(t, err)
	assert.Empty(t, n.TargetDepartment)
	assert.Equal(t, "The Secretary", n.CreatedByName)
}

func TestListIncludesBroadcasts(t *testing.T) {
	service, ctx := newService()

	_, err := service.Create(ctx, CreateRequest{Title: "Everyone", Content: "AGM", TargetDepartment: ""})
	require.NoError(t, err)
	_, err = service.Create(ctx, CreateRequest{Title: "Sopranos only", Content: "Sectionals", TargetDepartment: "soprano"})
	require.NoError(t, err)
	_, err = service.Create(ctx, CreateRequest{Title: "Basses only", Content: "Sectionals", TargetDepartment: "bass"})
	require.NoError(t, err)

	visible, err := service.List(ctx, "soprano")
	require.NoError(t, err)
	require.Len(t, visible, 2)

	all, err := service.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestListStripsNonImageAttachmentData(t *testing.T) {
	service, ctx := newService()

	_, err := service.Create(ctx, CreateRequest{
		Title: "Minutes", Content: "Attached", AttachmentName: "minutes.pdf", AttachmentData: "cGRmLWJ5dGVz",
	})
	require.NoError(t, err)
	_, err = service.Create(ctx, CreateRequest{
		Title: "Poster", Content: "Attached", AttachmentName: "poster.png", AttachmentData: "cG5nLWJ5dGVz",
	})
	require.NoError(t, err)

	notices, err := service.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, notices, 2)
	for _, n := range notices {
		switch n.AttachmentType {
		case AttachmentPDF:
			assert.True(t, n.HasAttachment)
			assert.Empty(t, n.AttachmentData)
		case AttachmentImage:
			assert.Equal(t, "cG5nLWJ5dGVz", n.AttachmentData)
		}
	}
}

func TestGetAttachmentReturnsFullPayload(t *testing.T) {
	service, ctx := newService()
	created, err := service.Create(ctx, CreateRequest{
		Title: "Minutes", Content: "Attached", AttachmentName: "minutes.pdf", AttachmentData: "cGRmLWJ5dGVz",
	})
	require.NoError(t, err)

	att, err := service.GetAttachment(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "minutes.pdf", att.FileName)
	assert.Equal(t, AttachmentPDF, att.FileType)
	assert.Equal(t, "cGRmLWJ5dGVz", att.FileData)
}

func TestGetAttachmentMissing(t *testing.T) {
	service, ctx := newService()
	created, err := service.Create(ctx, CreateRequest{Title: "Plain", Content: "No file"})
	require.NoError(t, err)

	_, err = service.GetAttachment(ctx, created.ID)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestUpdateReplacesAndStamps(t *testing.T) {
	service, ctx := newService()
	created, err := service.Create(ctx, CreateRequest{Title: "Old", Content: "Old content"})
	require.NoError(t, err)

	updated, err := service.Update(ctx, created.ID, CreateRequest{Title: "New", Content: "New content", TargetDepartment: "alto"})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, "alto", updated.TargetDepartment)
	require.NotNil(t, updated.UpdatedAt)
	assert.Equal(t, created.CreatedByName, updated.CreatedByName)
}

func TestDeleteUnknown(t *testing.T) {
	service, ctx := newService()
	err := service.Delete(ctx, "no-such-notice")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

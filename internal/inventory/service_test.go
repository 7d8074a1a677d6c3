package inventory

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
	ctx := requestcontext.WithTime(context.Background(), time.Date(2025, 4, 2, 11, 0, 0, 0, time.UTC))
	ctx = requestcontext.WithActor(ctx, requestcontext.ActorInfo{UserID: "officer-1"})
	return NewService(NewInMemoryStore(), slog.New(slog.DiscardHandler)), ctx
}

func TestCreateGeneratesPerCategoryCodes(t *testing.T) {
	service, ctx := newService()

	keyboard, err := service.Create(ctx, CreateRequest{
		Name: "Yamaha Keyboard", Category: "instruments", Quantity: 1, Condition: ConditionGood,
	})
	require.NoError(t, err)
	assert.Equal(t, "INS-0001", keyboard.ItemCode)

	mic, err := service.Create(ctx, CreateRequest{
		Name: "Shure Microphone", Category: "instruments", Quantity: 4, Condition: ConditionExcellent,
	})
	require.NoError(t, err)
	assert.Equal(t, "INS-0002", mic.ItemCode)

	robe, err := service.Create(ctx, CreateRequest{
		Name: "Choir Robe", Category: "uniforms", Quantity: 40, Condition: ConditionFair,
	})
	require.NoError(t, err)
	assert.Equal(t, "UNI-0001", robe.ItemCode)
}

func TestCreateValidation(t *testing.T) {
	service, ctx := newService()

	_, err := service.Create(ctx, CreateRequest{Name: "X", Category: "ab", Quantity: 1, Condition: ConditionGood})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))

	_, err = service.Create(ctx, CreateRequest{Name: "X", Category: "abc", Quantity: 0, Condition: ConditionGood})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestUpdateKeepsCode(t *testing.T) {
	service, ctx := newService()
	item, err := service.Create(ctx, CreateRequest{
		Name: "Yamaha Keyboard", Category: "instruments", Quantity: 1, Condition: ConditionGood,
	})
	require.NoError(t, err)

	poor := ConditionPoor
	assignee := "Peter Mwangi"
	updated, err := service.Update(ctx, item.ID, UpdateRequest{Condition: &poor, AssignedTo: &assignee})
	require.NoError(t, err)
	assert.Equal(t, "INS-0001", updated.ItemCode)
	assert.Equal(t, ConditionPoor, updated.Condition)
	assert.Equal(t, "Peter Mwangi", updated.AssignedTo)
}

func TestListFilters(t *testing.T) {
	service, ctx := newService()
	_, err := service.Create(ctx, CreateRequest{Name: "Keyboard", Category: "instruments", Quantity: 1, Condition: ConditionGood})
	require.NoError(t, err)
	_, err = service.Create(ctx, CreateRequest{Name: "Robe", Category: "uniforms", Quantity: 40, Condition: ConditionPoor})
	require.NoError(t, err)

	poorItems, err := service.List(ctx, Filter{Condition: "poor"})
	require.NoError(t, err)
	require.Len(t, poorItems, 1)
	assert.Equal(t, "Robe", poorItems[0].Name)
}

func TestDeleteUnknown(t *testing.T) {
	service, ctx := newService()
	err := service.Delete(ctx, "no-such-item")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

package services

import (
	"testing"

	"github.com/dommaster/backend/internal/apperr"
	"github.com/dommaster/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validOrderInput(serviceID uint) CreateOrderInput {
	return CreateOrderInput{
		ServiceItemID: serviceID,
		Quantity:      2,
		Phone:         "+70001112233",
		Address:       "Main street 1",
		Note:          "ring twice",
	}
}

func TestCreateOrderCapturesPrice(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db)
	user := createTestUser(t, db, "o@x.com", true)
	svc := createTestService(t, db, "Plumbing", 800, true)

	order, err := orders.Create(user.ID, validOrderInput(svc.ID))
	require.NoError(t, err)

	assert.Equal(t, models.StatusNew, order.Status)
	assert.Equal(t, user.ID, order.UserID)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.EqualValues(t, 800, order.Items[0].Price)
	assert.EqualValues(t, 1600, order.Items[0].Total())

	// Changing the catalog price afterwards must not touch the order.
	require.NoError(t, db.Model(&models.ServiceItem{}).Where("id = ?", svc.ID).
		Update("min_price", 9999).Error)

	var item models.OrderItem
	require.NoError(t, db.Where("order_id = ?", order.ID).First(&item).Error)
	assert.EqualValues(t, 800, item.Price)
}

func TestCreateOrderValidation(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db)
	user := createTestUser(t, db, "v@x.com", true)
	svc := createTestService(t, db, "Electrics", 1000, true)

	in := validOrderInput(svc.ID)
	in.Quantity = 0
	_, err := orders.Create(user.ID, in)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	in = validOrderInput(svc.ID)
	in.Phone = " "
	_, err = orders.Create(user.ID, in)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	in = validOrderInput(svc.ID)
	in.Address = ""
	_, err = orders.Create(user.ID, in)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestCreateOrderUnknownService(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db)
	user := createTestUser(t, db, "u@x.com", true)

	_, err := orders.Create(user.ID, validOrderInput(12345))
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestCreateOrderAllowsInactiveService(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db)
	user := createTestUser(t, db, "i@x.com", true)
	svc := createTestService(t, db, "Retired", 500, false)

	order, err := orders.Create(user.ID, validOrderInput(svc.ID))
	require.NoError(t, err)
	assert.EqualValues(t, 500, order.Items[0].Price)
}

func TestListForUserNewestFirst(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db)
	user := createTestUser(t, db, "l@x.com", true)
	other := createTestUser(t, db, "other@x.com", true)
	svc := createTestService(t, db, "Assembly", 600, true)

	first, err := orders.Create(user.ID, validOrderInput(svc.ID))
	require.NoError(t, err)
	second, err := orders.Create(user.ID, validOrderInput(svc.ID))
	require.NoError(t, err)
	_, err = orders.Create(other.ID, validOrderInput(svc.ID))
	require.NoError(t, err)

	got, err := orders.ListForUser(user.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, second.ID, got[0].ID)
	assert.Equal(t, first.ID, got[1].ID)

	// Items and their services are loaded.
	require.Len(t, got[0].Items, 1)
	assert.Equal(t, "Assembly", got[0].Items[0].ServiceItem.Name)
}

func TestCancelOrder(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db)
	owner := createTestUser(t, db, "own@x.com", true)
	stranger := createTestUser(t, db, "str@x.com", true)
	svc := createTestService(t, db, "Painting", 900, true)

	order, err := orders.Create(owner.ID, validOrderInput(svc.ID))
	require.NoError(t, err)

	t.Run("unknown order", func(t *testing.T) {
		err := orders.Cancel(owner.ID, 99999)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})

	t.Run("non-owner is rejected before any state change", func(t *testing.T) {
		err := orders.Cancel(stranger.ID, order.ID)
		assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

		var stored models.Order
		require.NoError(t, db.First(&stored, order.ID).Error)
		assert.Equal(t, models.StatusNew, stored.Status)
	})

	t.Run("owner cancels", func(t *testing.T) {
		require.NoError(t, orders.Cancel(owner.ID, order.ID))

		var stored models.Order
		require.NoError(t, db.First(&stored, order.ID).Error)
		assert.Equal(t, models.StatusCancelled, stored.Status)
	})

	t.Run("second cancel is a no-op", func(t *testing.T) {
		require.NoError(t, orders.Cancel(owner.ID, order.ID))
	})
}

func TestCancelCompletedOrderIsNoOp(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db)
	owner := createTestUser(t, db, "done@x.com", true)
	svc := createTestService(t, db, "Appliances", 1200, true)

	order, err := orders.Create(owner.ID, validOrderInput(svc.ID))
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.Order{}).Where("id = ?", order.ID).
		Update("status", models.StatusCompleted).Error)

	require.NoError(t, orders.Cancel(owner.ID, order.ID))

	var stored models.Order
	require.NoError(t, db.First(&stored, order.ID).Error)
	assert.Equal(t, models.StatusCompleted, stored.Status)
}

func TestCancelInProgressOrder(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db)
	owner := createTestUser(t, db, "wip@x.com", true)
	svc := createTestService(t, db, "Electrics", 1000, true)

	order, err := orders.Create(owner.ID, validOrderInput(svc.ID))
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.Order{}).Where("id = ?", order.ID).
		Update("status", models.StatusInProgress).Error)

	require.NoError(t, orders.Cancel(owner.ID, order.ID))

	var stored models.Order
	require.NoError(t, db.First(&stored, order.ID).Error)
	assert.Equal(t, models.StatusCancelled, stored.Status)
}

func TestOrderStatusTerminal(t *testing.T) {
	assert.False(t, models.StatusDraft.Terminal())
	assert.False(t, models.StatusNew.Terminal())
	assert.False(t, models.StatusInProgress.Terminal())
	assert.True(t, models.StatusCompleted.Terminal())
	assert.True(t, models.StatusCancelled.Terminal())
}

package services

import (
	"testing"

	"storefront-service/common/errors"
	"storefront-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWishlist_AnonymousNeedsLogin(t *testing.T) {
	svc := NewWishlistService(new(mockAPI))
	v := &models.VisitorState{}

	err := svc.Add(ctx, v, nil, "p1")
	assert.ErrorIs(t, err, errors.ErrLoginRequired)
	assert.Equal(t, MsgWishlistLogin, v.Flashes[0].Message)
	assert.Empty(t, svc.IDs(ctx, nil))
}

func TestWishlist_Toggle(t *testing.T) {
	api := new(mockAPI)
	api.On("GetWishlist", ctx, "tok-alice").
		Return(&models.WishlistResponse{Data: []models.Product{{ID: "p1"}}}, nil)
	api.On("RemoveFromWishlist", ctx, "tok-alice", "p1").
		Return(&models.WishlistMutation{Status: "success"}, nil)
	api.On("AddToWishlist", ctx, "tok-alice", "p2").
		Return(&models.WishlistMutation{Status: "success", Data: []string{"p1", "p2"}}, nil)
	svc := NewWishlistService(api)

	v := &models.VisitorState{}
	in, err := svc.Toggle(ctx, v, alice(), "p1")
	require.NoError(t, err)
	assert.False(t, in)
	assert.Equal(t, MsgWishlistRemoved, v.Flashes[0].Message)

	in, err = svc.Toggle(ctx, v, alice(), "p2")
	require.NoError(t, err)
	assert.True(t, in)
	assert.Equal(t, MsgWishlistAdded, v.Flashes[1].Message)
}

func TestWishlist_AddFailure(t *testing.T) {
	api := new(mockAPI)
	api.On("AddToWishlist", ctx, "tok-alice", "p1").Return(nil, assertErr)

	v := &models.VisitorState{}
	require.Error(t, NewWishlistService(api).Add(ctx, v, alice(), "p1"))
	assert.Equal(t, MsgWishlistAddFailed, v.Flashes[0].Message)
}
